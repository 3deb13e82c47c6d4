package bidflow

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/bidflow/internal/expand"
	"github.com/viant/bidflow/service/document"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding configuration values
const (
	EnvBaseURL   = "BIDFLOW_BASE_URL"
	EnvExportURL = "BIDFLOW_EXPORT_URL"
	EnvLogLevel  = "BIDFLOW_LOG_LEVEL"
)

// Config is a serialisable representation of the client configuration. The
// zero-value of a nested field inherits its default.
type Config struct {
	Remote   RemoteConfig   `json:"remote" yaml:"remote"`
	Playback PlaybackConfig `json:"playback" yaml:"playback"`
	Export   ExportConfig   `json:"export" yaml:"export"`
	Tracing  TracingConfig  `json:"tracing" yaml:"tracing"`
	LogLevel string         `json:"logLevel" yaml:"logLevel"`
}

// RemoteConfig addresses the bid backend
type RemoteConfig struct {
	BaseURL   string `json:"baseURL" yaml:"baseURL"`
	TimeoutMs int    `json:"timeoutMs" yaml:"timeoutMs"`
}

// Timeout returns the per call timeout
func (c *RemoteConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// PlaybackConfig paces the agent log replay
type PlaybackConfig struct {
	IntervalMs int `json:"intervalMs" yaml:"intervalMs"`
}

// Interval returns the pause between two log entries
func (c *PlaybackConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

// ExportConfig controls where and how proposals are written
type ExportConfig struct {
	// BaseURL is any afs URL; empty means the working directory
	BaseURL string `json:"baseURL" yaml:"baseURL"`
	// Format is pdf or md
	Format string `json:"format" yaml:"format"`
}

// TracingConfig enables OpenTelemetry stdout tracing
type TracingConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	OutputFile string `json:"outputFile" yaml:"outputFile"`
}

// DefaultConfig returns a Config populated with default values.
func DefaultConfig() *Config {
	return &Config{
		Remote:   RemoteConfig{BaseURL: "http://localhost:8000", TimeoutMs: 60000},
		Playback: PlaybackConfig{IntervalMs: 100},
		Export:   ExportConfig{Format: string(document.FormatPDF)},
		LogLevel: "info",
	}
}

// ApplyEnv overrides values with the BIDFLOW_* environment variables.
func (c *Config) ApplyEnv() {
	if value := strings.TrimSpace(os.Getenv(EnvBaseURL)); value != "" {
		c.Remote.BaseURL = value
	}
	if value := strings.TrimSpace(os.Getenv(EnvExportURL)); value != "" {
		c.Export.BaseURL = value
	}
	if value := strings.TrimSpace(os.Getenv(EnvLogLevel)); value != "" {
		c.LogLevel = value
	}
}

// Validate returns an error describing the first invalid setting or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	parsed, err := url.Parse(c.Remote.BaseURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("remote.baseURL must be an absolute http(s) URL, got %q", c.Remote.BaseURL)
	}
	if c.Remote.TimeoutMs < 0 {
		return fmt.Errorf("remote.timeoutMs must be >= 0")
	}
	if c.Playback.IntervalMs < 0 {
		return fmt.Errorf("playback.intervalMs must be >= 0")
	}
	switch document.Format(c.Export.Format) {
	case document.FormatPDF, document.FormatMarkdown:
	default:
		return fmt.Errorf("export.format must be %q or %q, got %q", document.FormatPDF, document.FormatMarkdown, c.Export.Format)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLogLevel maps debug, info, warn and error to slog levels; empty means
// info.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("logLevel must be one of debug, info, warn, error, got %q", level)
}

// LoadConfig reads a YAML config from any afs URL, applies it over the
// defaults and the environment, and validates the result. ${env.KEY} and
// ${env.KEY|fallback} expressions are expanded before decoding.
func LoadConfig(ctx context.Context, fs afs.Service, URL string, options ...storage.Option) (*Config, error) {
	if fs == nil {
		fs = afs.New()
	}
	data, err := fs.DownloadWithURL(ctx, URL, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	ret := DefaultConfig()
	if err = yaml.Unmarshal([]byte(expand.Env(string(data))), ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %v: %w", URL, err)
	}
	ret.ApplyEnv()
	if err = ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}
