package packets

// DisconnectPacket represents an MQTT DISCONNECT control packet, the final
// packet a client sends to cleanly end a session. It carries no variable
// header or payload in v3.1.1.
type DisconnectPacket struct{}

func (p DisconnectPacket) Kind() Kind            { return Disconnect }
func (p DisconnectPacket) flags() byte           { return 0 }
func (p DisconnectPacket) bodyLen() int          { return 0 }
func (p DisconnectPacket) appendBody(dst []byte) []byte { return dst }
