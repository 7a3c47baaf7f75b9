package packets

// PubcompPacket represents an MQTT PUBCOMP control packet: the fourth and
// final message of the QoS 2 handshake.
type PubcompPacket struct {
	PacketID uint16
}

func (p PubcompPacket) Kind() Kind   { return Pubcomp }
func (p PubcompPacket) flags() byte  { return 0 }
func (p PubcompPacket) bodyLen() int { return 2 }

func (p PubcompPacket) appendBody(dst []byte) []byte {
	return appendPacketID(dst, p.PacketID)
}
