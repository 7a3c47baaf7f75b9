package mqttcore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonzalop/mqttcore/internal/packets"
	"github.com/gonzalop/mqttcore/session"
)

func newTestClient(t *testing.T, opts Options) *Client {
	t.Helper()
	clock := time.Unix(0, 0)
	c, err := New(opts, make([]byte, 4096), make([]byte, 0, 4096), func() time.Time { return clock })
	require.NoError(t, err)
	return c
}

func TestNewRejectsNilClock(t *testing.T) {
	_, err := New(Options{}, make([]byte, 16), make([]byte, 0, 16), nil)
	assert.ErrorIs(t, err, session.ErrNoClock)
}

func TestConnectEnqueuesConnectPacket(t *testing.T) {
	c := newTestClient(t, Options{})
	err := c.Connect(ConnectOptions{ClientID: []byte("foobar"), KeepAlive: 30})
	require.NoError(t, err)

	ev := c.Feed(nil)
	require.Equal(t, session.EventOutgoingBuf, ev.Tag)
	assert.Equal(t, byte(0x10), ev.Buf[0])

	snap := c.Stats.Load()
	assert.EqualValues(t, 1, snap.PacketsEnqueued)
	assert.True(t, snap.BytesEnqueued > 0)
}

func TestPublishQoS0ReturnsZeroID(t *testing.T) {
	c := newTestClient(t, Options{})
	id, err := c.Publish([]byte("a/b"), []byte("x"), AtMostOnce, false)
	require.NoError(t, err)
	assert.EqualValues(t, 0, id)
}

func TestPublishQoS1AllocatesPacketID(t *testing.T) {
	c := newTestClient(t, Options{})
	id1, err := c.Publish([]byte("a/b"), []byte("x"), AtLeastOnce, false)
	require.NoError(t, err)
	assert.NotZero(t, id1)

	id2, err := c.Publish([]byte("a/b"), []byte("y"), AtLeastOnce, false)
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)
}

func TestPublishRejectsWildcardTopic(t *testing.T) {
	c := newTestClient(t, Options{})
	_, err := c.Publish([]byte("a/+"), []byte("x"), AtMostOnce, false)
	assert.Error(t, err)
}

func TestPublishRejectsOversizePayload(t *testing.T) {
	c := newTestClient(t, Options{MaxPayloadSize: 4})
	_, err := c.Publish([]byte("a/b"), []byte("too big"), AtMostOnce, false)
	assert.Error(t, err)
}

func TestSubscribeRejectsEmpty(t *testing.T) {
	c := newTestClient(t, Options{})
	_, err := c.Subscribe(nil)
	assert.ErrorIs(t, err, ErrEmptyTopics)
}

func TestSubscribeRejectsBadFilterAndAllocatesID(t *testing.T) {
	c := newTestClient(t, Options{})
	_, err := c.Subscribe([]packets.SubscribeTopic{{Filter: []byte("a/#/b"), QoS: packets.QoS1}})
	assert.Error(t, err)

	id, err := c.Subscribe([]packets.SubscribeTopic{{Filter: []byte("a/+/b"), QoS: packets.QoS1}})
	require.NoError(t, err)
	assert.NotZero(t, id)
}

func TestUnsubscribeRejectsEmpty(t *testing.T) {
	c := newTestClient(t, Options{})
	_, err := c.Unsubscribe(nil)
	assert.ErrorIs(t, err, ErrEmptyTopicFilters)
}

func TestDisconnectEnqueuesPacket(t *testing.T) {
	c := newTestClient(t, Options{})
	require.NoError(t, c.Disconnect())
	ev := c.Feed(nil)
	require.Equal(t, session.EventOutgoingBuf, ev.Tag)
	assert.Equal(t, []byte{0xE0, 0x00}, ev.Buf)
}

func TestFeedTracksPacketsReceived(t *testing.T) {
	c := newTestClient(t, Options{})
	ev := c.Feed([]byte{0x20, 0x02, 0x01, 0x00})
	require.Equal(t, session.EventIncomingPacket, ev.Tag)
	assert.EqualValues(t, 1, c.Stats.Load().PacketsReceived)
}

func TestAsConnectErrorMapsReturnCodes(t *testing.T) {
	assert.Nil(t, AsConnectError(packets.ReturnCodeAccepted))
	assert.ErrorIs(t, AsConnectError(packets.ReturnCodeBadCredentials), ErrBadCredentials)
	assert.ErrorIs(t, AsConnectError(packets.ReturnCodeIdentifierRejected), ErrIdentifierRejected)
}
