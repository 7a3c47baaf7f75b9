package session

import (
	"errors"
	"fmt"

	"github.com/gonzalop/mqttcore/internal/packets"
)

// Kind identifies the category of a non-fatal engine error surfaced through
// an Err event. The engine never panics on malformed input; every parse or
// resource failure is reported as a Kind and the stream keeps flowing.
type Kind uint8

const (
	// KindInvalidLength covers a malformed variable-length integer or a
	// remaining-length field that overflows the four-byte encoding.
	KindInvalidLength Kind = iota + 1
	// KindOutOfMemory is reported when a packet body exceeds the capacity
	// of the inbound scratch buffer. The engine discards the body and
	// resumes parsing at the next packet boundary.
	KindOutOfMemory
	KindInvalidProtocolName
	KindInvalidProtocolLevel
	KindInvalidQoS
	KindInvalidWillQoS
	KindInvalidReturnCode
	KindEmptyTopics
	KindEmptyTopicFilters
	KindUnexpectedEndOfInput
	KindUnhandledPacket
	// KindNoClock names the construction failure New reports as the
	// ErrNoClock sentinel (the host supplied no clock); Feed never
	// reports it.
	KindNoClock
)

var kindNames = map[Kind]string{
	KindInvalidLength:        "invalid length",
	KindOutOfMemory:          "out of memory",
	KindInvalidProtocolName:  "invalid protocol name",
	KindInvalidProtocolLevel: "invalid protocol level",
	KindInvalidQoS:           "invalid qos",
	KindInvalidWillQoS:       "invalid will qos",
	KindInvalidReturnCode:    "invalid return code",
	KindEmptyTopics:          "empty topics",
	KindEmptyTopicFilters:    "empty topic filters",
	KindUnexpectedEndOfInput: "unexpected end of input",
	KindUnhandledPacket:      "unhandled packet",
	KindNoClock:              "no clock",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ErrNoClock is returned by New when constructed without a usable clock.
var ErrNoClock = errors.New("session: no monotonic clock supplied")

// Error wraps a Kind, with an optional underlying cause, in the error
// interface.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("session: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("session: %s", e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// kindFromPacketError maps an internal/packets sentinel to the Kind the
// engine surfaces to the host, so the wire-level taxonomy and the
// engine-level one stay in lockstep.
func kindFromPacketError(err error) Kind {
	switch {
	case errors.Is(err, packets.ErrInvalidLength):
		return KindInvalidLength
	case errors.Is(err, packets.ErrInvalidProtocolName):
		return KindInvalidProtocolName
	case errors.Is(err, packets.ErrInvalidProtocolLevel):
		return KindInvalidProtocolLevel
	case errors.Is(err, packets.ErrInvalidQoS):
		return KindInvalidQoS
	case errors.Is(err, packets.ErrInvalidWillQoS):
		return KindInvalidWillQoS
	case errors.Is(err, packets.ErrInvalidReturnCode):
		return KindInvalidReturnCode
	case errors.Is(err, packets.ErrEmptyTopics):
		return KindEmptyTopics
	case errors.Is(err, packets.ErrEmptyTopicFilters):
		return KindEmptyTopicFilters
	case errors.Is(err, packets.ErrUnexpectedEndOfInput):
		return KindUnexpectedEndOfInput
	case errors.Is(err, packets.ErrUnhandledPacket):
		return KindUnhandledPacket
	default:
		return KindInvalidLength
	}
}
