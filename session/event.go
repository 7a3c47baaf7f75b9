package session

import "github.com/gonzalop/mqttcore/internal/packets"

// EventTag discriminates the payload carried by an Event.
type EventTag uint8

const (
	// EventNone means the input was fully consumed and there is nothing
	// to report.
	EventNone EventTag = iota
	// EventIncomingPacket carries a fully parsed packet. Any byte slices
	// reachable from Packet borrow the inbound scratch buffer and are
	// only valid until the next call to Feed.
	EventIncomingPacket
	// EventOutgoingBuf carries bytes the host must write to the
	// transport. The outbound scratch buffer is considered reset once
	// the next Feed call returns.
	EventOutgoingBuf
	// EventErr carries a non-fatal Kind. Consumed still reflects bytes
	// advanced before the error was detected.
	EventErr
)

// Event is the result of a single Feed call. Exactly one of Packet, Buf, or
// Err is meaningful, selected by Tag.
type Event struct {
	Tag      EventTag
	Consumed int
	Packet   packets.Packet
	Buf      []byte
	Err      Kind
}

func noneEvent(consumed int) Event {
	return Event{Tag: EventNone, Consumed: consumed}
}

func packetEvent(consumed int, p packets.Packet) Event {
	return Event{Tag: EventIncomingPacket, Consumed: consumed, Packet: p}
}

func outgoingEvent(buf []byte) Event {
	return Event{Tag: EventOutgoingBuf, Buf: buf}
}

func errEvent(consumed int, kind Kind) Event {
	return Event{Tag: EventErr, Consumed: consumed, Err: kind}
}
