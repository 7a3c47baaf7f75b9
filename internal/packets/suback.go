package packets

// SubackCode is one payload byte of a SUBACK packet: either a granted QoS
// (0, 1, or 2) or the failure sentinel 0x80.
type SubackCode byte

// Failure reports whether this code signals a rejected subscription.
func (c SubackCode) Failure() bool { return c == SubackFailure }

// QoS returns the granted QoS level. Only meaningful when !Failure().
func (c SubackCode) QoS() QoS { return QoS(c) }

// SubackPacket represents an MQTT SUBACK control packet.
type SubackPacket struct {
	PacketID    uint16
	ReturnCodes []SubackCode
}

func (p SubackPacket) Kind() Kind   { return Suback }
func (p SubackPacket) flags() byte  { return 0 }
func (p SubackPacket) bodyLen() int { return 2 + len(p.ReturnCodes) }

func (p SubackPacket) appendBody(dst []byte) []byte {
	dst = appendPacketID(dst, p.PacketID)
	for _, c := range p.ReturnCodes {
		dst = append(dst, byte(c))
	}
	return dst
}

func decodeSuback(buf []byte) (Packet, error) {
	pid, err := decodePacketID(buf)
	if err != nil {
		return nil, err
	}
	buf = buf[2:]

	codes := make([]SubackCode, 0, len(buf))
	for _, b := range buf {
		if b != 0x00 && b != 0x01 && b != 0x02 && b != SubackFailure {
			return nil, ErrInvalidReturnCode
		}
		codes = append(codes, SubackCode(b))
	}

	return SubackPacket{PacketID: pid, ReturnCodes: codes}, nil
}
