package packets

// UnsubackPacket represents an MQTT UNSUBACK control packet.
type UnsubackPacket struct {
	PacketID uint16
}

func (p UnsubackPacket) Kind() Kind   { return Unsuback }
func (p UnsubackPacket) flags() byte  { return 0 }
func (p UnsubackPacket) bodyLen() int { return 2 }

func (p UnsubackPacket) appendBody(dst []byte) []byte {
	return appendPacketID(dst, p.PacketID)
}
