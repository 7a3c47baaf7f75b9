// Package mqttcore implements the application-facing surface of a sans-I/O
// MQTT 3.1.1 protocol core: Connect, Publish, Subscribe, Unsubscribe, and
// Disconnect operations that enqueue serialized packets onto a session
// engine (package session) without ever touching a socket.
//
// # Design
//
// The core never performs I/O. A host drives it with a loop:
//
//	n, err := conn.Read(readBuf)
//	for i := 0; ; {
//	    ev := client.Feed(readBuf[i:n])
//	    switch ev.Tag {
//	    case session.EventOutgoingBuf:
//	        conn.Write(ev.Buf)
//	    case session.EventIncomingPacket:
//	        handleIncoming(ev.Packet)
//	    case session.EventErr:
//	        log.Warn("mqtt", "err", ev.Err)
//	    }
//	    i += ev.Consumed
//	    if ev.Tag == session.EventNone {
//	        break
//	    }
//	}
//
// QoS 1 and 2 receiver-side acknowledgement is automatic; QoS 1/2
// sender-side retransmission is intentionally out of scope (see
// SPEC_FULL.md) and is left to the host or a higher-level library.
//
// # Example
//
//	client, err := mqttcore.New(mqttcore.Options{},
//	    make([]byte, 4096), make([]byte, 0, 4096), time.Now)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := client.Connect(mqttcore.ConnectOptions{
//	    ClientID:  []byte("sensor-1"),
//	    KeepAlive: 30,
//	}); err != nil {
//	    log.Fatal(err)
//	}
package mqttcore
