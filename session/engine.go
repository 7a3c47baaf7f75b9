// Package session implements the sans-I/O MQTT 3.1.1 protocol engine: an
// inbound parse state machine, an outbound byte buffer, keepalive timing,
// and QoS-2 receiver bookkeeping. It performs no I/O of its own; the host
// feeds it bytes read from a transport and writes back whatever bytes it
// is handed in return.
package session

import (
	"time"

	"github.com/gonzalop/mqttcore/internal/packets"
)

type parseState uint8

const (
	stateParseTypeFlags parseState = iota
	stateParseRemainingLength
	stateAccumulate
	stateDiscard
)

// maxRemainingLengthMultiplier is the threshold the remaining-length
// multiplier must not exceed; a fifth continuation byte always indicates a
// malformed stream.
const maxRemainingLengthMultiplier = 2097152

// Engine is a single-threaded, allocation-free MQTT session. It is not
// safe for concurrent use; one goroutine must own Feed and the enqueue
// operations, per the engine's cooperative scheduling model.
type Engine struct {
	inbound  []byte
	outbound []byte
	outLen   int

	now           func() time.Time
	keepaliveSecs uint16
	lastOutgoing  time.Time

	pending pendingSet

	state    parseState
	curKind  packets.Kind
	curFlags byte

	lenAccum      int
	lenMultiplier int

	bodyTarget int
	bodyUsed   int

	discardRemaining int
}

// New constructs an Engine over the two caller-owned scratch buffers.
// inbound bounds the largest packet body the engine will accept; outbound
// bounds how many enqueued bytes may accumulate before being drained by
// Feed. clock must return a monotonic-for-practical-purposes time source;
// a nil clock is rejected with ErrNoClock.
func New(inbound, outbound []byte, clock func() time.Time) (*Engine, error) {
	return NewWithPendingCapacity(inbound, outbound, clock, DefaultPendingCapacity)
}

// NewWithPendingCapacity is like New but lets the host size the QoS-2
// receiver's pending-PUBREC set explicitly.
func NewWithPendingCapacity(inbound, outbound []byte, clock func() time.Time, pendingCapacity int) (*Engine, error) {
	if clock == nil {
		return nil, ErrNoClock
	}
	return &Engine{
		inbound:      inbound,
		outbound:     outbound,
		now:          clock,
		pending:      newPendingSet(pendingCapacity),
		lastOutgoing: clock(),
	}, nil
}

// SetKeepalive records the keepalive interval negotiated at CONNECT. A
// value of 0 disables keepalive. The idle clock restarts from the moment
// SetKeepalive is called.
func (e *Engine) SetKeepalive(seconds uint16) {
	e.keepaliveSecs = seconds
	e.lastOutgoing = e.now()
}

// OutboundLen reports how many bytes are currently buffered awaiting
// drain by Feed. Hosts that want to track bytes enqueued (e.g. for
// metrics) can diff this before and after a call to Enqueue.
func (e *Engine) OutboundLen() int {
	return e.outLen
}

// Enqueue serializes p onto the outbound buffer for the host to drain via
// a subsequent Feed call. It is the primitive the application-facing
// operations (Connect, Publish, Subscribe, ...) build on.
func (e *Engine) Enqueue(p packets.Packet) error {
	return e.appendOutbound(p)
}

func (e *Engine) appendOutbound(p packets.Packet) error {
	need, err := packets.SerializedLength(p)
	if err != nil {
		return err
	}
	if e.outLen+int(need) > cap(e.outbound) {
		return packets.ErrTooBig
	}
	buf, err := packets.Serialize(p, e.outbound[:e.outLen])
	if err != nil {
		return err
	}
	e.outLen = len(buf)
	e.lastOutgoing = e.now()
	return nil
}

// appendOutboundBestEffort enqueues an automatic acknowledgement,
// swallowing failure: the remote broker will retransmit, and our
// duplicate suppression handles re-delivery.
func (e *Engine) appendOutboundBestEffort(p packets.Packet) {
	_ = e.appendOutbound(p)
}

// Feed advances the engine with input and returns the next Event. A
// single call reports at most one packet, one outbound buffer, or one
// error; the host is expected to call Feed again with input sliced past
// Consumed until it observes EventNone.
func (e *Engine) Feed(input []byte) Event {
	e.maybeSendKeepalive()
	if e.outLen > 0 {
		buf := e.outbound[:e.outLen]
		e.outLen = 0
		return outgoingEvent(buf)
	}

	consumed := 0
	for {
		switch e.state {
		case stateParseTypeFlags:
			if consumed >= len(input) {
				return noneEvent(consumed)
			}
			b := input[consumed]
			consumed++
			e.curKind = packets.Kind(b >> 4)
			e.curFlags = b & 0x0F
			e.lenAccum = 0
			e.lenMultiplier = 1
			e.state = stateParseRemainingLength

		case stateParseRemainingLength:
			if consumed >= len(input) {
				return noneEvent(consumed)
			}
			b := input[consumed]
			consumed++
			e.lenAccum += int(b&0x7F) * e.lenMultiplier
			if b&0x80 != 0 {
				e.lenMultiplier *= 128
				if e.lenMultiplier > maxRemainingLengthMultiplier {
					e.state = stateParseTypeFlags
					return errEvent(consumed, KindInvalidLength)
				}
				continue
			}
			if e.lenAccum > len(e.inbound) {
				e.discardRemaining = e.lenAccum
				e.state = stateDiscard
				return errEvent(consumed, KindOutOfMemory)
			}
			e.bodyTarget = e.lenAccum
			e.bodyUsed = 0
			e.state = stateAccumulate

		case stateAccumulate:
			if e.bodyTarget == 0 {
				return e.finish(e.completePacket(), consumed)
			}
			if consumed >= len(input) {
				return noneEvent(consumed)
			}
			n := len(input) - consumed
			if remain := e.bodyTarget - e.bodyUsed; n > remain {
				n = remain
			}
			copy(e.inbound[e.bodyUsed:], input[consumed:consumed+n])
			e.bodyUsed += n
			consumed += n
			if e.bodyUsed == e.bodyTarget {
				ev := e.completePacket()
				if ev.Tag == EventNone {
					// A suppressed QoS-2 delivery has nothing to report;
					// keep parsing whatever input remains.
					continue
				}
				return e.finish(ev, consumed)
			}
			return noneEvent(consumed)

		case stateDiscard:
			if consumed >= len(input) {
				return noneEvent(consumed)
			}
			n := len(input) - consumed
			if n > e.discardRemaining {
				n = e.discardRemaining
			}
			e.discardRemaining -= n
			consumed += n
			if e.discardRemaining == 0 {
				e.state = stateParseTypeFlags
				continue
			}
			return noneEvent(consumed)
		}
	}
}

func (e *Engine) finish(ev Event, consumed int) Event {
	ev.Consumed = consumed
	return ev
}

// completePacket parses the accumulated body, applies the automatic QoS
// receiver behavior, and resets the inbound state machine for the next
// packet. Slices inside the returned event alias e.inbound and stay valid
// only until the next Feed call.
func (e *Engine) completePacket() Event {
	kind, flags, body := e.curKind, e.curFlags, e.inbound[:e.bodyUsed]
	e.state = stateParseTypeFlags

	if packets.ClientToBrokerOnly(kind) {
		return Event{Tag: EventErr, Err: KindUnhandledPacket}
	}

	pkt, err := packets.Parse(kind, flags, body)
	if err != nil {
		return Event{Tag: EventErr, Err: kindFromPacketError(err)}
	}

	switch p := pkt.(type) {
	case packets.PublishPacket:
		return e.handleIncomingPublish(p)
	case packets.PubrelPacket:
		e.appendOutboundBestEffort(packets.PubcompPacket{PacketID: p.PacketID})
		e.pending.remove(p.PacketID)
		return Event{Tag: EventIncomingPacket, Packet: pkt}
	default:
		return Event{Tag: EventIncomingPacket, Packet: pkt}
	}
}

// handleIncomingPublish implements Method B of the QoS-2 delivery protocol
// on the receiving side: a message is delivered to the application once,
// on first receipt, and later broker retransmissions are re-acknowledged
// silently.
func (e *Engine) handleIncomingPublish(p packets.PublishPacket) Event {
	switch p.QoS {
	case packets.QoS1:
		e.appendOutboundBestEffort(packets.PubackPacket{PacketID: p.PacketID})
		return Event{Tag: EventIncomingPacket, Packet: p}

	case packets.QoS2:
		wasPending := e.pending.has(p.PacketID)
		inserted := e.pending.insert(p.PacketID)
		e.appendOutboundBestEffort(packets.PubrecPacket{PacketID: p.PacketID})
		if wasPending || !inserted {
			return Event{Tag: EventNone}
		}
		return Event{Tag: EventIncomingPacket, Packet: p}

	default:
		return Event{Tag: EventIncomingPacket, Packet: p}
	}
}

func (e *Engine) maybeSendKeepalive() {
	if e.keepaliveSecs == 0 {
		return
	}
	if e.now().Sub(e.lastOutgoing) > time.Duration(e.keepaliveSecs)*time.Second {
		e.appendOutboundBestEffort(packets.PingreqPacket{})
	}
}
