package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/bidflow"
)

var (
	configURL string
	baseURL   string
	logLevel  string
	app       *bidflow.Service
)

var rootCmd = &cobra.Command{
	Use:           "bidflow",
	Short:         "Review AI generated procurement bids",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.Context())
		if err != nil {
			return err
		}
		level, err := bidflow.ParseLogLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		app, err = bidflow.New(cfg)
		if err != nil {
			return fmt.Errorf("init: %w", err)
		}
		slog.Debug("bidflow configured", "base_url", cfg.Remote.BaseURL, "export_url", app.Exporter().BaseURL(), "format", cfg.Export.Format)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if app == nil {
			return nil
		}
		return app.Shutdown(context.Background())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configURL, "config", "", "config file path or URL (YAML)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "bid backend address, overrides config and "+bidflow.EnvBaseURL)
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
}

func loadConfig(ctx context.Context) (*bidflow.Config, error) {
	cfg := bidflow.DefaultConfig()
	if configURL != "" {
		location := configURL
		if !strings.Contains(location, "://") {
			abs, err := filepath.Abs(location)
			if err != nil {
				return nil, err
			}
			location = "file://localhost" + filepath.ToSlash(abs)
		}
		loaded, err := bidflow.LoadConfig(ctx, afs.New(), location)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg.ApplyEnv()
	}
	if baseURL != "" {
		cfg.Remote.BaseURL = baseURL
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, cfg.Validate()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
