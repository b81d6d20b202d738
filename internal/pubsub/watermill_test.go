package pubsub

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatermillBridge_PublishSubscribe(t *testing.T) {
	bridge := NewWatermillBridge()
	defer bridge.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan Message, 1)
	err := bridge.Subscribe(ctx, "test.topic", func(ctx context.Context, msg Message) error {
		received <- msg
		return nil
	})
	require.NoError(t, err)

	err = bridge.Publish(ctx, Message{Topic: "test.topic", Payload: []byte("hello")})
	require.NoError(t, err)

	select {
	case msg := <-received:
		assert.Equal(t, "test.topic", msg.Topic)
		assert.Equal(t, []byte("hello"), msg.Payload)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}

func TestTypedEvent_RoundTrip(t *testing.T) {
	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	event := NewEvent[payload]("test.typed")

	bridge := NewWatermillBridge()
	defer bridge.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu       sync.Mutex
		received []payload
	)
	err := Subscribe(ctx, bridge, event, func(ctx context.Context, p payload) error {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, p)
		return nil
	})
	require.NoError(t, err)

	err = Publish(ctx, bridge, event, payload{Name: "tech", Count: 3})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 1 && received[0] == (payload{Name: "tech", Count: 3})
	}, 2*time.Second, 10*time.Millisecond)
}

func TestTracingPublisher_DelegatesToInner(t *testing.T) {
	bridge := NewWatermillBridge()
	defer bridge.Close()
	traced := NewTracingPublisher(bridge)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan Message, 1)
	err := bridge.Subscribe(ctx, "test.traced", func(ctx context.Context, msg Message) error {
		received <- msg
		return nil
	})
	require.NoError(t, err)

	err = traced.Publish(ctx, Message{Topic: "test.traced", Payload: []byte("x")})
	require.NoError(t, err)

	select {
	case msg := <-received:
		assert.Equal(t, []byte("x"), msg.Payload)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for traced message")
	}
}
