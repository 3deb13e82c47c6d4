package bidflow

import (
	"log/slog"
	"net/http"

	"github.com/viant/afs"
	"github.com/viant/bidflow/progress"
	"github.com/viant/bidflow/service/document"
	"github.com/viant/bidflow/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises a Service
type Option func(s *Service)

// WithLogger sets the logger shared by all components
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFS sets the storage service used for config, uploads and exports
func WithFS(fs afs.Service) Option {
	return func(s *Service) {
		if fs != nil {
			s.fs = fs
		}
	}
}

// WithHTTPClient sets the HTTP client used to reach the backend
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) {
		s.httpClient = client
	}
}

// WithBranding sets the proposal branding
func WithBranding(branding document.Branding) Option {
	return func(s *Service) {
		s.branding = branding
	}
}

// WithProgressListener receives replay progress of every processing run
func WithProgressListener(fn func(progress.Progress)) Option {
	return func(s *Service) {
		s.onProgress = fn
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom
// SpanExporter. The first successful initialisation wins.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
