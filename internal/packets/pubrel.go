package packets

// PubrelPacket represents an MQTT PUBREL control packet: the third message
// of the QoS 2 handshake. Per spec it is always serialized with fixed
// header flag nibble 0b0010.
type PubrelPacket struct {
	PacketID uint16
}

func (p PubrelPacket) Kind() Kind   { return Pubrel }
func (p PubrelPacket) flags() byte  { return pubrelSubFlags }
func (p PubrelPacket) bodyLen() int { return 2 }

func (p PubrelPacket) appendBody(dst []byte) []byte {
	return appendPacketID(dst, p.PacketID)
}
