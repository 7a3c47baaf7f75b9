package mqttcore

import (
	"errors"
	"fmt"

	"github.com/gonzalop/mqttcore/internal/packets"
)

// ConnectError wraps a non-accepted CONNACK return code. The engine
// itself never disconnects on a rejection — §7 of the design leaves that
// decision to the application — so AsConnectError turns a CONNACK's return
// code into this error for the caller to act on however it sees fit.
type ConnectError struct {
	ReturnCode packets.ReturnCode
}

func (e *ConnectError) Error() string {
	name, ok := connectReturnCodeNames[e.ReturnCode]
	if !ok {
		return fmt.Sprintf("mqttcore: connect refused: unrecognized return code 0x%02x", uint8(e.ReturnCode))
	}
	return fmt.Sprintf("mqttcore: connect refused: %s", name)
}

// Is lets callers match a ConnectError against one of the package
// sentinels below via errors.Is, without needing the concrete type.
func (e *ConnectError) Is(target error) bool {
	return connectReturnCodeSentinels[e.ReturnCode] == target
}

var connectReturnCodeNames = map[packets.ReturnCode]string{
	packets.ReturnCodeUnacceptableProtoVersion: "unacceptable protocol version",
	packets.ReturnCodeIdentifierRejected:       "identifier rejected",
	packets.ReturnCodeServerUnavailable:        "server unavailable",
	packets.ReturnCodeBadCredentials:           "bad username or password",
	packets.ReturnCodeUnauthorized:             "not authorized",
}

// Sentinel errors applications can match against with errors.Is, without
// caring about the ConnectError wrapper.
var (
	ErrUnacceptableProtocolVersion = errors.New("mqttcore: unacceptable protocol version")
	ErrIdentifierRejected          = errors.New("mqttcore: identifier rejected")
	ErrServerUnavailable           = errors.New("mqttcore: server unavailable")
	ErrBadCredentials              = errors.New("mqttcore: bad username or password")
	ErrUnauthorized                = errors.New("mqttcore: not authorized")
)

var connectReturnCodeSentinels = map[packets.ReturnCode]error{
	packets.ReturnCodeUnacceptableProtoVersion: ErrUnacceptableProtocolVersion,
	packets.ReturnCodeIdentifierRejected:       ErrIdentifierRejected,
	packets.ReturnCodeServerUnavailable:        ErrServerUnavailable,
	packets.ReturnCodeBadCredentials:           ErrBadCredentials,
	packets.ReturnCodeUnauthorized:             ErrUnauthorized,
}

// AsConnectError converts a non-accepted CONNACK return code into an
// error, or nil if rc is ReturnCodeAccepted.
func AsConnectError(rc packets.ReturnCode) error {
	if rc == packets.ReturnCodeAccepted {
		return nil
	}
	return &ConnectError{ReturnCode: rc}
}

// ErrEmptyTopics is returned by Subscribe when called with no topics.
var ErrEmptyTopics = packets.ErrEmptyTopics

// ErrEmptyTopicFilters is returned by Unsubscribe when called with no filters.
var ErrEmptyTopicFilters = packets.ErrEmptyTopicFilters
