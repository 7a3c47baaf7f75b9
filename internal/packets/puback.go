package packets

// PubackPacket represents an MQTT PUBACK control packet: a QoS 1 receiver's
// acknowledgment of a PUBLISH.
type PubackPacket struct {
	PacketID uint16
}

func (p PubackPacket) Kind() Kind   { return Puback }
func (p PubackPacket) flags() byte  { return 0 }
func (p PubackPacket) bodyLen() int { return 2 }

func (p PubackPacket) appendBody(dst []byte) []byte {
	return appendPacketID(dst, p.PacketID)
}
