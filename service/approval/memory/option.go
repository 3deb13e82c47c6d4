package memory

import (
	"log/slog"

	approval "github.com/viant/bidflow/service/approval"
	"github.com/viant/bidflow/service/messaging"
)

type Option func(*service)

// WithQueue replaces the default in-memory decision event queue.
func WithQueue(queue messaging.Queue[approval.Event]) Option {
	return func(s *service) {
		if queue != nil {
			s.events = queue
		}
	}
}

// WithLogger sets the logger reporting dropped decision events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}
