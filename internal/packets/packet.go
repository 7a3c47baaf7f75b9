package packets

// Packet is the interface every decoded MQTT control packet value
// implements. Concrete types (ConnectPacket, PublishPacket, ...) are a
// tagged variant keyed by Kind(), not a class hierarchy: callers are
// expected to type-switch on the concrete type, the idiomatic Go
// equivalent of a discriminated union.
type Packet interface {
	// Kind returns the packet's MQTT control packet type.
	Kind() Kind

	// flags returns the fixed-header flag nibble this packet must be
	// serialized with.
	flags() byte

	// bodyLen returns the length in bytes of the variable header plus
	// payload, i.e. everything the fixed header's remaining-length covers.
	bodyLen() int

	// appendBody appends the variable header and payload to dst.
	appendBody(dst []byte) []byte
}

// SerializedLength returns the number of bytes Serialize would produce for
// p, including the fixed header. bodyLen() is cheap (no allocation), so
// the fixed header's remaining-length can be computed once, up front,
// without a second encoding pass.
func SerializedLength(p Packet) (uint32, error) {
	n := p.bodyLen()
	if n > maxRemainingLength {
		return 0, ErrTooBig
	}
	return uint32(1 + varIntLen(n) + n), nil
}

// Serialize appends the wire encoding of p (fixed header, variable header,
// payload) to dst and returns the extended slice. It fails with ErrTooBig
// rather than encode a packet whose body exceeds the remaining-length
// ceiling.
func Serialize(p Packet, dst []byte) ([]byte, error) {
	n := p.bodyLen()
	if n > maxRemainingLength {
		return dst, ErrTooBig
	}
	header := FixedHeader{Kind: p.Kind(), Flags: p.flags(), RemainingLength: n}
	dst, err := header.AppendTo(dst)
	if err != nil {
		return dst, err
	}
	return p.appendBody(dst), nil
}

// ClientToBrokerOnly reports whether kind is a packet type this client
// only ever sends and should never receive (CONNECT, SUBSCRIBE,
// UNSUBSCRIBE, PINGREQ, DISCONNECT). Parse itself decodes any of the
// fourteen kinds on request — it has no notion of which side of the
// connection is asking — so callers that know they only ever receive
// broker-to-client traffic (the session engine) use this to reject a
// wrong-direction kind with ErrUnhandledPacket before calling Parse.
func ClientToBrokerOnly(kind Kind) bool {
	switch kind {
	case Connect, Subscribe, Unsubscribe, Pingreq, Disconnect:
		return true
	default:
		return false
	}
}

// Parse decodes a packet body given its already-parsed fixed header kind
// and flags. body must be exactly the fixed header's remaining-length
// bytes; Parse never reads past it. Parse performs no direction
// validation of its own (see ClientToBrokerOnly for that); an unknown
// kind value is rejected with ErrUnhandledPacket.
func Parse(kind Kind, flags byte, body []byte) (Packet, error) {
	switch kind {
	case Connect:
		return decodeConnect(body)
	case Connack:
		return decodeConnack(body)
	case Publish:
		return decodePublish(flags, body)
	case Puback:
		pid, err := decodePacketID(body)
		if err != nil {
			return nil, err
		}
		return PubackPacket{PacketID: pid}, nil
	case Pubrec:
		pid, err := decodePacketID(body)
		if err != nil {
			return nil, err
		}
		return PubrecPacket{PacketID: pid}, nil
	case Pubrel:
		pid, err := decodePacketID(body)
		if err != nil {
			return nil, err
		}
		return PubrelPacket{PacketID: pid}, nil
	case Pubcomp:
		pid, err := decodePacketID(body)
		if err != nil {
			return nil, err
		}
		return PubcompPacket{PacketID: pid}, nil
	case Subscribe:
		return decodeSubscribe(body)
	case Suback:
		return decodeSuback(body)
	case Unsubscribe:
		return decodeUnsubscribe(body)
	case Unsuback:
		pid, err := decodePacketID(body)
		if err != nil {
			return nil, err
		}
		return UnsubackPacket{PacketID: pid}, nil
	case Pingreq:
		return PingreqPacket{}, nil
	case Pingresp:
		return PingrespPacket{}, nil
	case Disconnect:
		return DisconnectPacket{}, nil
	default:
		return nil, ErrUnhandledPacket
	}
}

// decodePacketID reads the 2-byte big-endian packet identifier shared by
// PUBACK, PUBREC, PUBREL, PUBCOMP, and UNSUBACK bodies.
func decodePacketID(body []byte) (uint16, error) {
	if len(body) < 2 {
		return 0, ErrUnexpectedEndOfInput
	}
	return uint16(body[0])<<8 | uint16(body[1]), nil
}

func appendPacketID(dst []byte, id uint16) []byte {
	return append(dst, byte(id>>8), byte(id))
}
