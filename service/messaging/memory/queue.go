package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/viant/bidflow/internal/idgen"
	"github.com/viant/bidflow/service/messaging"
)

// ErrQueueFull is returned by Publish when the queue drops on overflow.
var ErrQueueFull = errors.New("queue full")

// Config for memory queue implementation
type Config struct {
	// QueueBuffer is the channel capacity
	QueueBuffer int
	// DropWhenFull makes Publish fail fast instead of blocking on a full buffer
	DropWhenFull bool
	// MaxRedeliveries bounds how many times a nacked message is requeued
	MaxRedeliveries int
}

// DefaultConfig returns a standard configuration for memory queue
func DefaultConfig() Config {
	return Config{
		QueueBuffer:     256,
		DropWhenFull:    true,
		MaxRedeliveries: 0,
	}
}

// Message implements messaging.Message for the in-memory queue
type Message[T any] struct {
	id         string
	payload    T
	queue      *Queue[T]
	deliveries int
	mu         sync.Mutex
	processed  bool
	createdAt  time.Time
}

// ID returns message id
func (m *Message[T]) ID() string { return m.id }

// T returns the message payload
func (m *Message[T]) T() *T {
	return &m.payload
}

// Ack acknowledges the message as processed successfully
func (m *Message[T]) Ack() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return fmt.Errorf("message %s already processed", m.id)
	}
	m.processed = true
	return nil
}

// Nack marks the message failed and requeues it while redeliveries remain.
func (m *Message[T]) Nack(err error) error {
	m.mu.Lock()
	if m.processed {
		m.mu.Unlock()
		return fmt.Errorf("message %s already processed", m.id)
	}
	m.processed = true
	deliveries := m.deliveries + 1
	m.mu.Unlock()

	if deliveries > m.queue.config.MaxRedeliveries {
		m.queue.dropped.Add(1)
		return nil
	}
	redelivery := &Message[T]{
		id:         m.id,
		payload:    m.payload,
		queue:      m.queue,
		deliveries: deliveries,
		createdAt:  time.Now(),
	}
	return m.queue.enqueue(context.Background(), redelivery)
}

// Queue implements an in-memory messaging.Queue
type Queue[T any] struct {
	messages chan *Message[T]
	config   Config
	dropped  atomic.Int64
}

// NewQueue creates a new in-memory queue
func NewQueue[T any](config Config) *Queue[T] {
	if config.QueueBuffer <= 0 {
		config.QueueBuffer = DefaultConfig().QueueBuffer
	}
	return &Queue[T]{
		messages: make(chan *Message[T], config.QueueBuffer),
		config:   config,
	}
}

// Publish adds a new item to the queue
func (q *Queue[T]) Publish(ctx context.Context, t *T) error {
	if t == nil {
		return fmt.Errorf("nil payload")
	}
	msg := &Message[T]{
		id:        idgen.New(),
		payload:   *t,
		queue:     q,
		createdAt: time.Now(),
	}
	return q.enqueue(ctx, msg)
}

func (q *Queue[T]) enqueue(ctx context.Context, msg *Message[T]) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if q.config.DropWhenFull {
		select {
		case q.messages <- msg:
			return nil
		default:
			q.dropped.Add(1)
			return ErrQueueFull
		}
	}
	select {
	case q.messages <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Consume retrieves a single item from the queue
func (q *Queue[T]) Consume(ctx context.Context) (messaging.Message[T], error) {
	select {
	case msg := <-q.messages:
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Size returns the current number of messages in the queue
func (q *Queue[T]) Size() int {
	return len(q.messages)
}

// Dropped returns the number of messages discarded on overflow or after
// exhausting redeliveries.
func (q *Queue[T]) Dropped() int {
	return int(q.dropped.Load())
}

// ensure Queue implements messaging.Queue interface
var _ messaging.Queue[any] = (*Queue[any])(nil)
