package event

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// drainTimeout bounds waiting for a queued event another consumer took
const drainTimeout = 100 * time.Millisecond

// Listener drains a publisher on a background goroutine and hands every
// event to the handler, in publication order.
type Listener[T any] struct {
	publisher *Publisher[T]
	handler   func(*Event[T])
	logger    *slog.Logger
	cancel    context.CancelFunc
	done      chan struct{}
	once      sync.Once
}

// NewListener creates a listener
func NewListener[T any](publisher *Publisher[T], handler func(*Event[T])) *Listener[T] {
	return &Listener[T]{
		publisher: publisher,
		handler:   handler,
		logger:    slog.Default(),
		done:      make(chan struct{}),
	}
}

// Start begins consuming until ctx is cancelled or Stop is called
func (l *Listener[T]) Start(ctx context.Context) {
	ctx, l.cancel = context.WithCancel(ctx)
	go func() {
		defer close(l.done)
		for {
			event, err := l.publisher.Consume(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					l.drain()
					return
				}
				l.logger.Warn("failed to consume event", "error", err)
				continue
			}
			if event != nil {
				l.handler(event)
			}
		}
	}()
}

// drain hands over the events already queued when consumption stops.
func (l *Listener[T]) drain() {
	for l.publisher.Pending() > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
		event, err := l.publisher.Consume(ctx)
		cancel()
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return
			}
			l.logger.Warn("failed to consume event", "error", err)
			continue
		}
		if event != nil {
			l.handler(event)
		}
	}
}

// Stop cancels consumption, delivers the events queued so far and waits for
// the goroutine to exit
func (l *Listener[T]) Stop() {
	l.once.Do(func() {
		if l.cancel != nil {
			l.cancel()
			<-l.done
		}
	})
}
