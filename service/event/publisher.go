package event

import (
	"context"

	"github.com/viant/bidflow/service/messaging"
)

// Publisher publishes typed events to a queue
type Publisher[T any] struct {
	queue messaging.Queue[Event[T]]
}

// NewPublisher creates a publisher
func NewPublisher[T any](queue messaging.Queue[Event[T]]) *Publisher[T] {
	return &Publisher[T]{queue: queue}
}

// Publish sends an event. A nil publisher discards events.
func (p *Publisher[T]) Publish(ctx context.Context, event *Event[T]) error {
	if p == nil || p.queue == nil {
		return nil
	}
	return p.queue.Publish(ctx, event)
}

// Consume returns the next acknowledged event
func (p *Publisher[T]) Consume(ctx context.Context) (*Event[T], error) {
	msg, err := p.queue.Consume(ctx)
	if err != nil || msg == nil {
		return nil, err
	}
	if err = msg.Ack(); err != nil {
		return nil, err
	}
	return msg.T(), nil
}

// Pending returns the number of queued events, or 0 when the queue cannot
// report its size.
func (p *Publisher[T]) Pending() int {
	if p == nil || p.queue == nil {
		return 0
	}
	if sized, ok := p.queue.(interface{ Size() int }); ok {
		return sized.Size()
	}
	return 0
}
