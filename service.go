package bidflow

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/bidflow/progress"
	"github.com/viant/bidflow/service/approval"
	approvalmem "github.com/viant/bidflow/service/approval/memory"
	"github.com/viant/bidflow/service/document"
	"github.com/viant/bidflow/service/event"
	"github.com/viant/bidflow/service/export"
	qmem "github.com/viant/bidflow/service/messaging/memory"
	"github.com/viant/bidflow/service/playback"
	"github.com/viant/bidflow/service/remote"
	"github.com/viant/bidflow/service/workflow"
	"github.com/viant/bidflow/tracing"
)

// Name and Version identify the client in traces
const (
	Name    = "bidflow"
	Version = "0.1.0"
)

// Service wires the backend client, state machine, exporter and ledger.
type Service struct {
	config        *Config
	fs            afs.Service
	logger        *slog.Logger
	httpClient    *http.Client
	branding      document.Branding
	onProgress    func(progress.Progress)
	client        *remote.Client
	exporter      *export.Service
	ledger        approval.Service
	notifications *event.Publisher[workflow.Notification]
	machine       *workflow.Machine
}

// Config returns the effective configuration
func (s *Service) Config() *Config { return s.config }

// Client returns the backend client
func (s *Service) Client() *remote.Client { return s.client }

// Machine returns the review state machine
func (s *Service) Machine() *workflow.Machine { return s.machine }

// Exporter returns the proposal exporter
func (s *Service) Exporter() *export.Service { return s.exporter }

// Ledger returns the decision ledger
func (s *Service) Ledger() approval.Service { return s.ledger }

// Notifications returns the session notification publisher
func (s *Service) Notifications() *event.Publisher[workflow.Notification] {
	return s.notifications
}

// Listen starts a listener delivering session notifications to handler.
// Stop the returned listener when done. Once the notification buffer is
// full, runs wait for the listener rather than dropping entries.
func (s *Service) Listen(ctx context.Context, handler func(*event.Event[workflow.Notification])) *event.Listener[workflow.Notification] {
	listener := event.NewListener(s.notifications, handler)
	listener.Start(ctx)
	return listener
}

// WatchDecisions delivers decision ledger events to handler until stop is
// called or ctx is done.
func (s *Service) WatchDecisions(ctx context.Context, handler func(*approval.Event)) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		queue := s.ledger.Queue()
		for {
			msg, err := queue.Consume(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				s.logger.Warn("failed to consume decision event", "error", err)
				continue
			}
			if err = msg.Ack(); err != nil {
				continue
			}
			handler(msg.T())
		}
	}()
	return func() {
		cancel()
		<-done
	}
}

// LoadFile reads an upload candidate from a local path or afs URL.
func (s *Service) LoadFile(ctx context.Context, location string) (*remote.File, error) {
	if !strings.Contains(location, "://") {
		abs, err := filepath.Abs(location)
		if err != nil {
			return nil, err
		}
		location = "file://localhost" + filepath.ToSlash(abs)
	}
	return remote.LoadFile(ctx, s.fs, location)
}

// Shutdown cancels the in-flight run and flushes traces.
func (s *Service) Shutdown(ctx context.Context) error {
	s.machine.Close()
	return tracing.Shutdown(ctx)
}

func (s *Service) init(options []Option) error {
	for _, option := range options {
		option(s)
	}
	if s.config.Tracing.Enabled {
		if err := tracing.Init(Name, Version, s.config.Tracing.OutputFile); err != nil {
			return fmt.Errorf("failed to init tracing: %w", err)
		}
	}
	clientOptions := []remote.Option{remote.WithTimeout(s.config.Remote.Timeout()), remote.WithLogger(s.logger)}
	if s.httpClient != nil {
		clientOptions = append(clientOptions, remote.WithHTTPClient(s.httpClient))
	}
	s.client = remote.New(s.config.Remote.BaseURL, clientOptions...)

	exportURL := s.config.Export.BaseURL
	if exportURL == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		exportURL = "file://localhost" + filepath.ToSlash(wd)
	}
	renderer := document.NewRenderer(document.Format(s.config.Export.Format), s.branding)
	s.exporter = export.New(exportURL, renderer, s.fs)
	s.ledger = approvalmem.New(approvalmem.WithLogger(s.logger))
	s.notifications = event.NewPublisher[workflow.Notification](qmem.NewQueue[event.Event[workflow.Notification]](notificationQueueConfig()))
	s.machine = workflow.New(s.client,
		workflow.WithPlayer(playback.New(s.config.Playback.Interval())),
		workflow.WithExporter(s.exporter),
		workflow.WithLedger(s.ledger),
		workflow.WithPublisher(s.notifications),
		workflow.WithLogger(s.logger),
		workflow.WithBranding(s.branding),
		workflow.WithProgressListener(s.onProgress),
	)
	return nil
}

// notificationQueueConfig blocks publishers on a full buffer so a slow
// listener never loses log entries.
func notificationQueueConfig() qmem.Config {
	config := qmem.DefaultConfig()
	config.DropWhenFull = false
	return config
}

// New creates a service from the configuration; nil means DefaultConfig.
func New(config *Config, options ...Option) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	ret := &Service{
		config:   config,
		fs:       afs.New(),
		logger:   slog.Default(),
		branding: document.DefaultBranding(),
	}
	if err := ret.init(options); err != nil {
		return nil, err
	}
	return ret, nil
}
