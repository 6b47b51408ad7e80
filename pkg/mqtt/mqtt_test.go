package mqtt

import (
	"io"
	"net"
	"sync"
	"testing"
	"time"

	mqttv2 "github.com/mochi-mqtt/server/v2"
	"github.com/mochi-mqtt/server/v2/packets"
	"github.com/nergy-se/agilerun/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish(t *testing.T) {
	b, err := Start("", "agilerun")
	require.NoError(t, err)
	defer b.Close()

	var mu sync.Mutex
	var once sync.Once
	received := map[string]string{}
	done := make(chan struct{})
	err = b.server.Subscribe("agilerun/#", 1, func(cl *mqttv2.Client, sub packets.Subscription, pk packets.Packet) {
		mu.Lock()
		defer mu.Unlock()
		received[pk.TopicName] = string(pk.Payload)
		if len(received) == 4 {
			once.Do(func() { close(done) })
		}
	})
	require.NoError(t, err)

	err = b.Publish(state.State{
		Slot:        time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		PriceIncVat: state.Pointer(12.5),
		PriceExcVat: state.Pointer(10.0),
		PriceFound:  state.Pointer(true),
	})
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for messages")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, map[string]string{
		"agilerun/slot":        "2024-01-01T12:00:00Z",
		"agilerun/priceIncVat": "12.5",
		"agilerun/priceExcVat": "10",
		"agilerun/priceFound":  "1",
	}, received)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "0.1", format(0.1))
	assert.Equal(t, "-3", format(int64(-3)))
	assert.Equal(t, "auto", format("auto"))
	assert.Equal(t, "true", format(true))
}

func freeAddress(t *testing.T) string {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestStartAcceptsClients(t *testing.T) {
	addr := freeAddress(t)
	b, err := Start(addr, "agilerun")
	require.NoError(t, err)
	defer b.Close()

	conn, err := net.DialTimeout("tcp", addr, time.Second)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetDeadline(time.Now().Add(2*time.Second)))

	// MQTT 3.1.1 CONNECT, clean session, client id "c1"
	_, err = conn.Write([]byte{
		0x10, 0x0e,
		0x00, 0x04, 'M', 'Q', 'T', 'T', 0x04, 0x02, 0x00, 0x3c,
		0x00, 0x02, 'c', '1',
	})
	require.NoError(t, err)

	connack := make([]byte, 4)
	_, err = io.ReadFull(conn, connack)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x20, 0x02, 0x00, 0x00}, connack)
}

func TestStartAddressInUse(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	b, err := Start(l.Addr().String(), "agilerun")
	assert.Error(t, err)
	assert.Nil(t, b)
}
