package mqttcore

import (
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/gonzalop/mqttcore/internal/packets"
	"github.com/gonzalop/mqttcore/session"
)

// Client is the application-facing handle onto a session engine: it owns
// packet-id allocation and the small amount of state (keepalive,
// statistics) that sits above the wire protocol, and forwards everything
// else straight through to the underlying session.Engine.
//
// Like the engine it wraps, Client is single-threaded cooperative: one
// goroutine must own Feed and the enqueue operations (Connect, Publish,
// Subscribe, Unsubscribe, Disconnect). The Stats counters are the only
// part safe to read from another goroutine concurrently.
type Client struct {
	engine *session.Engine
	opts   Options
	nextID uint32

	Stats Stats
}

// New constructs a Client over the two caller-owned scratch buffers and a
// clock function, per session.New. opts configures construction-time
// behavior such as the QoS-2 pending-set capacity and the topic/payload
// limits Publish, Subscribe and Unsubscribe validate against.
func New(opts Options, inbound, outbound []byte, clock func() time.Time) (*Client, error) {
	capacity := opts.PendingCapacity
	if capacity <= 0 {
		capacity = session.DefaultPendingCapacity
	}
	eng, err := session.NewWithPendingCapacity(inbound, outbound, clock, capacity)
	if err != nil {
		return nil, errors.Wrap(err, "mqttcore: construct session engine")
	}
	return &Client{engine: eng, opts: opts}, nil
}

// Feed advances the underlying engine. See session.Engine.Feed and the
// package doc comment for the host loop this drives.
func (c *Client) Feed(input []byte) session.Event {
	ev := c.engine.Feed(input)
	if ev.Tag == session.EventIncomingPacket {
		c.Stats.packetsReceived.Add(1)
	}
	return ev
}

// nextPacketID returns the next non-zero packet id, wrapping a 16-bit
// counter and skipping the reserved value 0. The underlying increment is
// atomic so concurrent callers (e.g. a worker publishing while a network
// goroutine calls Feed) still observe unique ids, per the engine's
// concurrency model — only packet-id allocation is safe under
// contention, Feed and the other enqueue operations are not.
func (c *Client) nextPacketID() uint16 {
	for {
		if id := uint16(atomic.AddUint32(&c.nextID, 1)); id != 0 {
			return id
		}
	}
}

func (c *Client) enqueue(p packets.Packet) error {
	before := c.engine.OutboundLen()
	if err := c.engine.Enqueue(p); err != nil {
		return err
	}
	c.Stats.packetsEnqueued.Add(1)
	c.Stats.bytesEnqueued.Add(uint64(c.engine.OutboundLen() - before))
	return nil
}

// Connect enqueues a CONNECT built from opts and records its keepalive
// interval with the engine. opts is validated against c's Options before
// any packet is built; see Options.Validate.
func (c *Client) Connect(opts ConnectOptions) error {
	if err := c.opts.Validate(opts); err != nil {
		return err
	}
	pkt := c.opts.connectPacket(opts)
	if err := c.enqueue(pkt); err != nil {
		return err
	}
	c.engine.SetKeepalive(opts.KeepAlive)
	return nil
}

// Publish enqueues a PUBLISH. For qos == AtMostOnce the returned packet
// id is always 0 (the wire packet carries none); for AtLeastOnce and
// ExactlyOnce it is the freshly allocated id the host should correlate
// against the eventual PUBACK/PUBCOMP.
func (c *Client) Publish(topic, payload []byte, qos QoS, retain bool) (uint16, error) {
	if err := ValidatePublishTopic(string(topic), c.opts); err != nil {
		return 0, err
	}
	if err := ValidatePayload(payload, c.opts); err != nil {
		return 0, err
	}
	pkt := packets.PublishPacket{
		QoS:     qos,
		Retain:  retain,
		Topic:   topic,
		Payload: payload,
	}
	var id uint16
	if qos != packets.QoS0 {
		id = c.nextPacketID()
		pkt.PacketID = id
	}
	if err := c.enqueue(pkt); err != nil {
		return 0, err
	}
	return id, nil
}

// Subscribe enqueues a SUBSCRIBE and returns its packet id for
// correlation with the eventual SUBACK.
func (c *Client) Subscribe(topics []packets.SubscribeTopic) (uint16, error) {
	if len(topics) == 0 {
		return 0, ErrEmptyTopics
	}
	for _, t := range topics {
		if err := ValidateSubscribeTopic(string(t.Filter), c.opts); err != nil {
			return 0, err
		}
	}
	id := c.nextPacketID()
	pkt := packets.SubscribePacket{PacketID: id, Topics: topics}
	if err := c.enqueue(pkt); err != nil {
		return 0, err
	}
	return id, nil
}

// Unsubscribe enqueues an UNSUBSCRIBE and returns its packet id for
// correlation with the eventual UNSUBACK.
func (c *Client) Unsubscribe(topicFilters [][]byte) (uint16, error) {
	if len(topicFilters) == 0 {
		return 0, ErrEmptyTopicFilters
	}
	for _, f := range topicFilters {
		if err := ValidateSubscribeTopic(string(f), c.opts); err != nil {
			return 0, err
		}
	}
	id := c.nextPacketID()
	pkt := packets.UnsubscribePacket{PacketID: id, TopicFilters: topicFilters}
	if err := c.enqueue(pkt); err != nil {
		return 0, err
	}
	return id, nil
}

// Disconnect enqueues a DISCONNECT, the final packet a well-behaved
// client sends before the host closes the transport.
func (c *Client) Disconnect() error {
	return c.enqueue(packets.DisconnectPacket{})
}
