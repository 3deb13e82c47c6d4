package workflow

import (
	"context"
	"log/slog"

	"github.com/viant/bidflow/progress"
	"github.com/viant/bidflow/service/approval"
	"github.com/viant/bidflow/service/document"
	"github.com/viant/bidflow/service/event"
	"github.com/viant/bidflow/service/export"
	"github.com/viant/bidflow/service/playback"
)

// Exporter stores a generated proposal
type Exporter interface {
	Export(ctx context.Context, doc *document.Document) (*export.Result, error)
}

// Option customises a Machine
type Option func(m *Machine)

// WithPlayer sets the log player.
func WithPlayer(player *playback.Player) Option {
	return func(m *Machine) {
		if player != nil {
			m.player = player
		}
	}
}

// WithExporter sets the proposal exporter.
func WithExporter(exporter Exporter) Option {
	return func(m *Machine) {
		m.exporter = exporter
	}
}

// WithLedger sets the decision ledger.
func WithLedger(ledger approval.Service) Option {
	return func(m *Machine) {
		m.ledger = ledger
	}
}

// WithPublisher sets the notification publisher.
func WithPublisher(publisher *event.Publisher[Notification]) Option {
	return func(m *Machine) {
		m.publisher = publisher
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithBranding sets the proposal branding.
func WithBranding(branding document.Branding) Option {
	return func(m *Machine) {
		m.branding = branding
	}
}

// WithProgressListener registers a callback receiving replay progress of
// every run.
func WithProgressListener(fn func(progress.Progress)) Option {
	return func(m *Machine) {
		m.onProgress = fn
	}
}
