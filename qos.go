package mqttcore

import "github.com/gonzalop/mqttcore/internal/packets"

// QoS is the Quality-of-Service level for a published message or a
// subscription entry. It is an alias of packets.QoS so application code
// never has to import the internal codec package directly.
type QoS = packets.QoS

const (
	// AtMostOnce (QoS 0): fire and forget, no acknowledgment.
	AtMostOnce = packets.QoS0

	// AtLeastOnce (QoS 1): the receiver PUBACKs; duplicates are possible
	// when the sender retransmits (sender-side retransmission is outside
	// this core — see SPEC_FULL.md).
	AtLeastOnce = packets.QoS1

	// ExactlyOnce (QoS 2): the four-message PUBLISH/PUBREC/PUBREL/PUBCOMP
	// handshake. The session engine's receiver side suppresses duplicate
	// deliveries automatically.
	ExactlyOnce = packets.QoS2
)
