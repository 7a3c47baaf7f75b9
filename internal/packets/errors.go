package packets

import "errors"

// Decode/encode error taxonomy for the MQTT 3.1.1 wire format. These are
// sentinel values so callers (and the session engine, which reclassifies
// them into its own event Kind) can compare with errors.Is.
var (
	// ErrInvalidLength covers both directions: a remaining-length that would
	// need a 5th continuation byte on decode, and a body that would encode
	// past the 268,435,455 ceiling.
	ErrInvalidLength = errors.New("packets: invalid remaining length")

	// ErrInvalidProtocolName is returned when a CONNECT protocol name is not "MQTT".
	ErrInvalidProtocolName = errors.New("packets: invalid protocol name")

	// ErrInvalidProtocolLevel is returned when a CONNECT protocol level is not 4.
	ErrInvalidProtocolLevel = errors.New("packets: invalid protocol level")

	// ErrInvalidQoS is returned when a PUBLISH or SUBSCRIBE entry carries the
	// reserved QoS value 3.
	ErrInvalidQoS = errors.New("packets: invalid QoS")

	// ErrInvalidWillQoS is returned when a CONNECT will QoS is the reserved value 3.
	ErrInvalidWillQoS = errors.New("packets: invalid will QoS")

	// ErrInvalidReturnCode is returned when a SUBACK byte is not in {0,1,2,0x80},
	// or when a CONNACK return code is above ReturnCodeUnauthorized.
	ErrInvalidReturnCode = errors.New("packets: invalid return code")

	// ErrEmptyTopics is returned by a SUBSCRIBE with no topic filters.
	ErrEmptyTopics = errors.New("packets: SUBSCRIBE carries no topics")

	// ErrEmptyTopicFilters is returned by an UNSUBSCRIBE with no topic filters.
	ErrEmptyTopicFilters = errors.New("packets: UNSUBSCRIBE carries no topic filters")

	// ErrUnexpectedEndOfInput is returned when a body slice is shorter than a
	// field it is asked to yield.
	ErrUnexpectedEndOfInput = errors.New("packets: unexpected end of input")

	// ErrUnhandledPacket is returned by Parse for a kind value outside the
	// fourteen known control packet types. It is also what the session
	// engine reports when ClientToBrokerOnly flags an incoming kind as one
	// this client only ever sends (direction is a concern Parse itself is
	// not in a position to judge, since it does not know which side of the
	// connection its caller is; see ClientToBrokerOnly).
	ErrUnhandledPacket = errors.New("packets: unhandled packet type")

	// ErrTooBig is returned by Serialize when the packet's body would exceed
	// the 268,435,455 byte remaining-length ceiling.
	ErrTooBig = errors.New("packets: packet too big to encode")
)
