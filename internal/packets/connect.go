package packets

// protocolName is the literal MQTT 3.1.1 protocol name a CONNECT packet
// always carries. protocolLevel is the accompanying level byte.
var protocolName = []byte("MQTT")

const protocolLevel = 4

// Will describes the message a broker publishes on the client's behalf if
// it disconnects unexpectedly.
type Will struct {
	Topic   []byte
	Message []byte
	Retain  bool
	QoS     QoS
}

// ConnectPacket represents an MQTT CONNECT control packet.
type ConnectPacket struct {
	CleanSession bool
	KeepAlive    uint16
	ClientID     []byte
	Will         *Will
	Username     []byte // nil if not present
	Password     []byte // nil if not present; only meaningful when Username is set
}

func (p ConnectPacket) Kind() Kind  { return Connect }
func (p ConnectPacket) flags() byte { return 0 }

func (p ConnectPacket) bodyLen() int {
	n := 2 + len(protocolName) + 1 + 1 + 2 // protocol name + level + flags byte + keepalive
	n += 2 + len(p.ClientID)
	if p.Will != nil {
		n += 2 + len(p.Will.Topic)
		n += 2 + len(p.Will.Message)
	}
	if p.Username != nil {
		n += 2 + len(p.Username)
	}
	if p.Password != nil {
		n += 2 + len(p.Password)
	}
	return n
}

func (p ConnectPacket) appendBody(dst []byte) []byte {
	dst = appendMQTTString(dst, protocolName)
	dst = append(dst, protocolLevel)

	var flags byte
	if p.CleanSession {
		flags |= 0x02
	}
	if p.Will != nil {
		flags |= 0x04
		flags |= (byte(p.Will.QoS) & 0x03) << 3
		if p.Will.Retain {
			flags |= 0x20
		}
	}
	if p.Password != nil {
		flags |= 0x40
	}
	if p.Username != nil {
		flags |= 0x80
	}
	dst = append(dst, flags)
	dst = append(dst, byte(p.KeepAlive>>8), byte(p.KeepAlive))

	dst = appendMQTTString(dst, p.ClientID)
	if p.Will != nil {
		dst = appendMQTTString(dst, p.Will.Topic)
		dst = appendMQTTString(dst, p.Will.Message)
	}
	if p.Username != nil {
		dst = appendMQTTString(dst, p.Username)
	}
	if p.Password != nil {
		dst = appendMQTTString(dst, p.Password)
	}
	return dst
}

// decodeConnect decodes a CONNECT packet body. It is the only decoder that
// validates protocol name/level/will-QoS, since those fields only appear
// here.
func decodeConnect(buf []byte) (Packet, error) {
	name, n, err := decodeMQTTString(buf)
	if err != nil {
		return nil, err
	}
	if string(name) != string(protocolName) {
		return nil, ErrInvalidProtocolName
	}
	buf = buf[n:]

	if len(buf) < 1 {
		return nil, ErrUnexpectedEndOfInput
	}
	level := buf[0]
	buf = buf[1:]
	if level != protocolLevel {
		return nil, ErrInvalidProtocolLevel
	}

	if len(buf) < 1 {
		return nil, ErrUnexpectedEndOfInput
	}
	connectFlags := buf[0]
	buf = buf[1:]

	cleanSession := connectFlags&0x02 != 0
	willFlag := connectFlags&0x04 != 0
	willQoS := QoS((connectFlags >> 3) & 0x03)
	willRetain := connectFlags&0x20 != 0
	passwordFlag := connectFlags&0x40 != 0
	usernameFlag := connectFlags&0x80 != 0

	if willFlag && !willQoS.IsValid() {
		return nil, ErrInvalidWillQoS
	}

	if len(buf) < 2 {
		return nil, ErrUnexpectedEndOfInput
	}
	keepAlive := uint16(buf[0])<<8 | uint16(buf[1])
	buf = buf[2:]

	clientID, n, err := decodeMQTTString(buf)
	if err != nil {
		return nil, err
	}
	buf = buf[n:]

	pkt := ConnectPacket{
		CleanSession: cleanSession,
		KeepAlive:    keepAlive,
		ClientID:     clientID,
	}

	if willFlag {
		willTopic, n, err := decodeMQTTString(buf)
		if err != nil {
			return nil, err
		}
		buf = buf[n:]

		willMessage, n, err := decodeMQTTString(buf)
		if err != nil {
			return nil, err
		}
		buf = buf[n:]

		pkt.Will = &Will{Topic: willTopic, Message: willMessage, Retain: willRetain, QoS: willQoS}
	}

	if usernameFlag {
		username, n, err := decodeMQTTString(buf)
		if err != nil {
			return nil, err
		}
		buf = buf[n:]
		pkt.Username = username
	}

	if passwordFlag {
		password, _, err := decodeMQTTString(buf)
		if err != nil {
			return nil, err
		}
		pkt.Password = password
	}

	return pkt, nil
}
