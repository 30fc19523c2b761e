package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vovakirdan/wirechat-broker/internal/app"
	"github.com/vovakirdan/wirechat-broker/internal/config"
	applog "github.com/vovakirdan/wirechat-broker/internal/log"
)

func main() {
	cfg := config.Default()
	var configPath string

	root := &cobra.Command{
		Use:   "wirechat-broker",
		Short: "JSON-framed chat relay broker",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg, configPath, cmd.Flags())
		},
	}

	flags := root.Flags()
	flags.StringVar(&cfg.Hostname, "hostname", cfg.Hostname, "listen hostname")
	flags.IntVar(&cfg.Port, "port", cfg.Port, "listen port")
	flags.StringVar(&cfg.LogPath, "log", cfg.LogPath, "path to also write logs to (stdout is always written)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&configPath, "config", "", "path to a YAML config file")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg config.Config, configPath string, flags *pflag.FlagSet) error {
	bootstrap, err := applog.New(cfg.LogLevel, cfg.LogPath)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	resolved, _, err := config.Load(bootstrap, configPath, flags)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Rebuild the logger from the fully resolved config: the bootstrap
	// logger above only reflects defaults and CLI flags, not log_level/
	// log_path set via the config file or WIRECHAT_ env vars.
	logger, err := applog.New(resolved.LogLevel, resolved.LogPath)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.New(resolved, logger)

	logger.Info().Str("addr", resolved.Addr()).Msg("starting wirechat broker")
	if err := application.Run(ctx); err != nil {
		return fmt.Errorf("broker exited with error: %w", err)
	}
	logger.Info().Msg("broker stopped")
	return nil
}
