package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonzalop/mqttcore/internal/packets"
)

func newTestEngine(t *testing.T, inboundSize int) (*Engine, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Unix(0, 0)}
	e, err := New(make([]byte, inboundSize), make([]byte, 0, 4096), clock.Now)
	require.NoError(t, err)
	return e, clock
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestNewRejectsNilClock(t *testing.T) {
	_, err := New(make([]byte, 16), make([]byte, 0, 16), nil)
	assert.ErrorIs(t, err, ErrNoClock)
}

func TestFeedParsesMinimalConnack(t *testing.T) {
	e, _ := newTestEngine(t, 256)
	ev := e.Feed([]byte{0x20, 0x02, 0x01, 0x00})
	require.Equal(t, EventIncomingPacket, ev.Tag)
	assert.Equal(t, 4, ev.Consumed)
	connack, ok := ev.Packet.(packets.ConnackPacket)
	require.True(t, ok)
	assert.True(t, connack.SessionPresent)
	assert.Equal(t, packets.ReturnCodeAccepted, connack.ReturnCode)
}

func TestFeedQoS1PublishTriggersPuback(t *testing.T) {
	e, _ := newTestEngine(t, 256)
	input := []byte{0x32, 0x0E, 0x00, 0x07, 'f', 'o', 'o', '/', 'b', 'a', 'r', 0x00, 0x2A, 'b', 'a', 'z'}

	ev := e.Feed(input)
	require.Equal(t, EventIncomingPacket, ev.Tag)
	pub, ok := ev.Packet.(packets.PublishPacket)
	require.True(t, ok)
	assert.Equal(t, "foo/bar", string(pub.Topic))
	assert.EqualValues(t, 42, pub.PacketID)

	next := e.Feed(nil)
	require.Equal(t, EventOutgoingBuf, next.Tag)
	assert.Equal(t, []byte{0x40, 0x02, 0x00, 0x2A}, next.Buf)

	done := e.Feed(nil)
	assert.Equal(t, EventNone, done.Tag)
}

func TestFeedQoS2DuplicateSuppression(t *testing.T) {
	e, _ := newTestEngine(t, 256)
	publish := []byte{0x34, 0x0E, 0x00, 0x07, 'f', 'o', 'o', '/', 'b', 'a', 'r', 0x00, 0x2A, 'b', 'a', 'z'}
	dup := []byte{0x3C, 0x0E, 0x00, 0x07, 'f', 'o', 'o', '/', 'b', 'a', 'r', 0x00, 0x2A, 'b', 'a', 'z'}
	pubrel := []byte{0x62, 0x02, 0x00, 0x2A}

	ev := e.Feed(publish)
	require.Equal(t, EventIncomingPacket, ev.Tag)

	pubrec := e.Feed(nil)
	require.Equal(t, EventOutgoingBuf, pubrec.Tag)
	assert.Equal(t, []byte{0x50, 0x02, 0x00, 0x2A}, pubrec.Buf)

	again := e.Feed(dup)
	assert.Equal(t, EventNone, again.Tag)

	pubrec2 := e.Feed(nil)
	require.Equal(t, EventOutgoingBuf, pubrec2.Tag)
	assert.Equal(t, []byte{0x50, 0x02, 0x00, 0x2A}, pubrec2.Buf)

	relEv := e.Feed(pubrel)
	require.Equal(t, EventIncomingPacket, relEv.Tag)
	_, ok := relEv.Packet.(packets.PubrelPacket)
	require.True(t, ok)

	pubcomp := e.Feed(nil)
	require.Equal(t, EventOutgoingBuf, pubcomp.Tag)
	assert.Equal(t, []byte{0x70, 0x02, 0x00, 0x2A}, pubcomp.Buf)

	assert.False(t, e.pending.has(42))
}

func TestFeedOversizeDiscard(t *testing.T) {
	e, _ := newTestEngine(t, 8)
	header := []byte{0x30, 14}
	body := []byte("0123456789abcd")

	ev := e.Feed(header)
	require.Equal(t, EventErr, ev.Tag)
	assert.Equal(t, KindOutOfMemory, ev.Err)
	assert.Equal(t, 2, ev.Consumed)

	next := e.Feed(body)
	assert.Equal(t, EventNone, next.Tag)
	assert.Equal(t, 14, next.Consumed)

	resumed := e.Feed([]byte{0xD0, 0x00})
	require.Equal(t, EventIncomingPacket, resumed.Tag)
	_, ok := resumed.Packet.(packets.PingrespPacket)
	require.True(t, ok)
}

func TestFeedSplitAcrossChunks(t *testing.T) {
	whole := []byte{0x20, 0x02, 0x01, 0x00}

	e1, _ := newTestEngine(t, 256)
	whole_ev := e1.Feed(whole)

	e2, _ := newTestEngine(t, 256)
	var lastEv Event
	for _, b := range whole {
		lastEv = e2.Feed([]byte{b})
	}

	assert.Equal(t, whole_ev.Tag, lastEv.Tag)
	assert.Equal(t, whole_ev.Packet, lastEv.Packet)
}

func TestKeepaliveEmitsPingreq(t *testing.T) {
	e, clock := newTestEngine(t, 256)
	e.SetKeepalive(5)

	clock.Advance(6 * time.Second)
	ev := e.Feed(nil)
	require.Equal(t, EventOutgoingBuf, ev.Tag)
	assert.Equal(t, []byte{0xC0, 0x00}, ev.Buf)
}

func TestKeepaliveDisabledWhenZero(t *testing.T) {
	e, clock := newTestEngine(t, 256)
	e.SetKeepalive(0)
	clock.Advance(time.Hour)
	ev := e.Feed(nil)
	assert.Equal(t, EventNone, ev.Tag)
}

func TestFeedRejectsBrokerSentClientOnlyKind(t *testing.T) {
	e, _ := newTestEngine(t, 256)
	// A CONNECT fixed header (kind 1, flags 0) with a zero-length body:
	// a broker must never send this, only a client does.
	ev := e.Feed([]byte{0x10, 0x00})
	require.Equal(t, EventErr, ev.Tag)
	assert.Equal(t, KindUnhandledPacket, ev.Err)
}

func TestEnqueueRejectsOversizeOutbound(t *testing.T) {
	e, err := New(make([]byte, 256), make([]byte, 0, 4), (&fakeClock{t: time.Unix(0, 0)}).Now)
	require.NoError(t, err)
	err = e.Enqueue(packets.PublishPacket{Topic: []byte("topic"), Payload: []byte("x")})
	assert.ErrorIs(t, err, packets.ErrTooBig)
}
