// Package tracing wraps OpenTelemetry so that remote calls and workflow runs
// can be instrumented without importing the SDK everywhere. When tracing is
// not initialised the global no-op provider makes every span free.
package tracing
