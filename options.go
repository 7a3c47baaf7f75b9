package mqttcore

import (
	"fmt"

	"github.com/gonzalop/mqttcore/internal/packets"
)

// Will is the Last Will and Testament the broker publishes on the
// client's behalf if it disconnects without a clean DISCONNECT. Only the
// MQTT 3.1.1 will fields are modeled; there is no will-properties layer
// (that is an MQTT 5.0 addition and out of scope here).
type Will struct {
	Topic   []byte
	Message []byte
	QoS     QoS
	Retain  bool
}

// ConnectOptions configures a CONNECT operation.
type ConnectOptions struct {
	ClientID []byte

	// CleanSession requests the broker discard any prior session state
	// for ClientID. Defaults to false (the MQTT 3.1.1 wire default) when
	// left unset; callers wanting a clean session must set it explicitly.
	CleanSession bool

	// KeepAlive is the maximum number of seconds the engine will let the
	// connection sit idle before queuing a PINGREQ. 0 disables keepalive.
	KeepAlive uint16

	Will     *Will
	Username []byte
	Password []byte
}

// Options configures the Client's construction-time behavior.
type Options struct {
	// PendingCapacity bounds the QoS-2 receiver's pending-PUBREC set. 0
	// selects session.DefaultPendingCapacity.
	PendingCapacity int

	// MaxTopicLength bounds topic and topic-filter length. 0 selects
	// DefaultMaxTopicLength.
	MaxTopicLength int

	// MaxPayloadSize bounds an outgoing PUBLISH payload. 0 selects
	// DefaultMaxPayloadSize.
	MaxPayloadSize int
}

// Validate checks opts against the MQTT 3.1.1 CONNECT rules and o's
// configured topic/payload limits before a CONNECT packet is ever built.
// It is a pre-flight check layered above internal/packets' own hard
// InvalidQoS/InvalidWillQoS decode-time errors, not a replacement for
// them: those still apply to bytes arriving off the wire, this applies
// to what the host is about to send.
func (o Options) Validate(opts ConnectOptions) error {
	if len(opts.ClientID) == 0 && !opts.CleanSession {
		return fmt.Errorf("mqttcore: client id cannot be empty unless clean_session is set")
	}
	if opts.Will != nil {
		if opts.Will.QoS > packets.QoS2 {
			return fmt.Errorf("mqttcore: will QoS %d is not a valid QoS level", opts.Will.QoS)
		}
		if err := ValidatePublishTopic(string(opts.Will.Topic), o); err != nil {
			return fmt.Errorf("mqttcore: invalid will topic: %w", err)
		}
		if err := ValidatePayload(opts.Will.Message, o); err != nil {
			return fmt.Errorf("mqttcore: invalid will message: %w", err)
		}
	}
	return nil
}

func (o Options) connectPacket(opts ConnectOptions) packets.ConnectPacket {
	pkt := packets.ConnectPacket{
		CleanSession: opts.CleanSession,
		KeepAlive:    opts.KeepAlive,
		ClientID:     opts.ClientID,
		Username:     opts.Username,
		Password:     opts.Password,
	}
	if opts.Will != nil {
		pkt.Will = &packets.Will{
			Topic:   opts.Will.Topic,
			Message: opts.Will.Message,
			QoS:     opts.Will.QoS,
			Retain:  opts.Will.Retain,
		}
	}
	return pkt
}
