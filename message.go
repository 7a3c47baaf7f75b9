package mqttcore

import "github.com/gonzalop/mqttcore/internal/packets"

// Message is a PUBLISH delivered to the application, with its Topic and
// Payload copied out of the engine's inbound scratch buffer. A
// packets.PublishPacket returned directly from Feed only borrows that
// buffer and becomes invalid at the next Feed call; Message exists so
// host code has something safe to pass to a handler, queue, or log line
// after that point.
type Message struct {
	Topic     string
	Payload   []byte
	QoS       QoS
	Retained  bool
	Duplicate bool
}

// NewMessage copies p's borrowed fields into a Message that outlives the
// next Feed call.
func NewMessage(p packets.PublishPacket) Message {
	payload := make([]byte, len(p.Payload))
	copy(payload, p.Payload)
	return Message{
		Topic:     string(p.Topic),
		Payload:   payload,
		QoS:       p.QoS,
		Retained:  p.Retain,
		Duplicate: p.Duplicate,
	}
}
