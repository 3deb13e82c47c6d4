package tracing

import (
	"context"
	"io"
	"os"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// instrumentation scope used for every tracer
const scope = "github.com/viant/bidflow"

// Span kinds accepted by StartSpan
const (
	KindInternal = "INTERNAL"
	KindClient   = "CLIENT"
)

var (
	providerOnce sync.Once
	providerErr  error
	provider     *sdktrace.TracerProvider
)

// Init configures OpenTelemetry with the stdout exporter. If outputFile is an
// empty string the exporter writes to os.Stdout. The first successful call
// wins; subsequent calls return its error.
func Init(serviceName, serviceVersion, outputFile string) error {
	var w io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return err
		}
		w = f
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return err
	}
	return InitWithExporter(serviceName, serviceVersion, exporter)
}

// InitWithExporter installs the supplied exporter as the global provider.
func InitWithExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) error {
	if exporter == nil {
		return nil
	}
	providerOnce.Do(func() {
		res, err := resource.New(context.Background(),
			resource.WithAttributes(
				attribute.String("service.name", serviceName),
				attribute.String("service.version", serviceVersion),
			),
		)
		if err != nil {
			providerErr = err
			return
		}
		provider = sdktrace.NewTracerProvider(
			sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
			sdktrace.WithResource(res),
		)
		otel.SetTracerProvider(provider)
	})
	return providerErr
}

// Shutdown flushes and stops the provider installed by Init.
func Shutdown(ctx context.Context) error {
	if provider == nil {
		return nil
	}
	return provider.Shutdown(ctx)
}

// Span wraps an OpenTelemetry span
type Span struct {
	span trace.Span
}

// WithAttributes attaches string attributes to the span.
func (s *Span) WithAttributes(attrs map[string]string) *Span {
	if s == nil || len(attrs) == 0 {
		return s
	}
	otelAttrs := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		otelAttrs = append(otelAttrs, attribute.String(k, v))
	}
	s.span.SetAttributes(otelAttrs...)
	return s
}

// WithInt attaches an integer attribute.
func (s *Span) WithInt(key string, value int) *Span {
	if s == nil {
		return s
	}
	s.span.SetAttributes(attribute.Int(key, value))
	return s
}

// SetStatus records an error status, or OK when err is nil.
func (s *Span) SetStatus(err error) {
	if s == nil {
		return
	}
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
		return
	}
	s.span.SetStatus(codes.Ok, "")
}

// SetStatusFromHTTPCode sets the span status based on an HTTP response code.
func (s *Span) SetStatusFromHTTPCode(code int) {
	if s == nil {
		return
	}
	s.span.SetAttributes(attribute.Int("http.status_code", code))
	switch {
	case code >= 100 && code < 400:
		s.span.SetStatus(codes.Ok, "")
	case code >= 400 && code < 500:
		s.span.SetStatus(codes.Error, "client error")
	case code >= 500:
		s.span.SetStatus(codes.Error, "server error")
	default:
		s.span.SetStatus(codes.Unset, "")
	}
}

// StartSpan starts a child span of whatever span ctx carries.
func StartSpan(ctx context.Context, name, kind string) (context.Context, *Span) {
	spanKind := trace.SpanKindInternal
	if kind == KindClient {
		spanKind = trace.SpanKindClient
	}
	ctx, span := otel.Tracer(scope).Start(ctx, name, trace.WithSpanKind(spanKind))
	return ctx, &Span{span: span}
}

// EndSpan records the error status (if any) and ends the span.
func EndSpan(sp *Span, err error) {
	if sp == nil {
		return
	}
	if err != nil {
		sp.SetStatus(err)
	}
	sp.span.End()
}
