package packets

// PublishPacket represents an MQTT PUBLISH control packet.
//
// PacketID is only meaningful (and only present on the wire) when QoS is 1
// or 2; per spec invariant, a QoS 0 PUBLISH never carries one. Topic and
// Payload alias the inbound scratch buffer when this value came from Parse
// — see the session package's borrowing rule.
type PublishPacket struct {
	Duplicate bool
	QoS       QoS
	Retain    bool
	Topic     []byte
	PacketID  uint16
	Payload   []byte
}

func (p PublishPacket) Kind() Kind { return Publish }

func (p PublishPacket) flags() byte {
	var f byte
	if p.Duplicate {
		f |= 0x08
	}
	f |= (byte(p.QoS) & 0x03) << 1
	if p.Retain {
		f |= 0x01
	}
	return f
}

func (p PublishPacket) bodyLen() int {
	n := 2 + len(p.Topic)
	if p.QoS != QoS0 {
		n += 2
	}
	return n + len(p.Payload)
}

func (p PublishPacket) appendBody(dst []byte) []byte {
	dst = appendMQTTString(dst, p.Topic)
	if p.QoS != QoS0 {
		dst = appendPacketID(dst, p.PacketID)
	}
	return append(dst, p.Payload...)
}

// decodePublish decodes a PUBLISH body. flags is the fixed header's flag
// nibble, already isolated by the caller (the session engine, or Parse's
// caller when testing directly against a full packet buffer).
func decodePublish(flags byte, buf []byte) (Packet, error) {
	qos := QoS((flags >> 1) & 0x03)
	if !qos.IsValid() {
		return nil, ErrInvalidQoS
	}

	topic, n, err := decodeMQTTString(buf)
	if err != nil {
		return nil, err
	}
	buf = buf[n:]

	pkt := PublishPacket{
		Duplicate: flags&0x08 != 0,
		QoS:       qos,
		Retain:    flags&0x01 != 0,
		Topic:     topic,
	}

	if qos != QoS0 {
		pid, err := decodePacketID(buf)
		if err != nil {
			return nil, err
		}
		pkt.PacketID = pid
		buf = buf[2:]
	}

	pkt.Payload = buf
	return pkt, nil
}
