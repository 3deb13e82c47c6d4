package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestPayload struct {
	ID      string
	Message string
}

func TestQueue(t *testing.T) {
	queue := NewQueue[TestPayload](DefaultConfig())
	ctx := context.Background()
	payload := TestPayload{ID: "test-1", Message: "Hello"}

	require.NoError(t, queue.Publish(ctx, &payload))
	assert.Equal(t, 1, queue.Size())

	message, err := queue.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, queue.Size())
	assert.NotEmpty(t, message.ID())
	assert.Equal(t, payload, *message.T())

	assert.NoError(t, message.Ack())
	assert.Error(t, message.Ack())
}

func TestQueue_Order(t *testing.T) {
	queue := NewQueue[TestPayload](DefaultConfig())
	ctx := context.Background()
	for _, id := range []string{"1", "2", "3"} {
		require.NoError(t, queue.Publish(ctx, &TestPayload{ID: id}))
	}
	var got []string
	for i := 0; i < 3; i++ {
		message, err := queue.Consume(ctx)
		require.NoError(t, err)
		got = append(got, message.T().ID)
	}
	assert.Equal(t, []string{"1", "2", "3"}, got)
}

func TestQueue_DropWhenFull(t *testing.T) {
	queue := NewQueue[TestPayload](Config{QueueBuffer: 1, DropWhenFull: true})
	ctx := context.Background()
	require.NoError(t, queue.Publish(ctx, &TestPayload{ID: "1"}))
	err := queue.Publish(ctx, &TestPayload{ID: "2"})
	assert.ErrorIs(t, err, ErrQueueFull)
	assert.Equal(t, 1, queue.Dropped())
}

func TestQueue_BlockingPublishHonoursContext(t *testing.T) {
	queue := NewQueue[TestPayload](Config{QueueBuffer: 1})
	require.NoError(t, queue.Publish(context.Background(), &TestPayload{ID: "1"}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := queue.Publish(ctx, &TestPayload{ID: "2"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestQueue_Nack(t *testing.T) {
	queue := NewQueue[TestPayload](Config{QueueBuffer: 4, MaxRedeliveries: 1})
	ctx := context.Background()
	require.NoError(t, queue.Publish(ctx, &TestPayload{ID: "retry"}))

	first, err := queue.Consume(ctx)
	require.NoError(t, err)
	require.NoError(t, first.Nack(errors.New("boom")))
	assert.Equal(t, 1, queue.Size())

	second, err := queue.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID(), second.ID())
	require.NoError(t, second.Nack(errors.New("boom again")))
	assert.Equal(t, 0, queue.Size())
	assert.Equal(t, 1, queue.Dropped())
}

func TestQueue_ConsumeCancelled(t *testing.T) {
	queue := NewQueue[TestPayload](DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := queue.Consume(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
