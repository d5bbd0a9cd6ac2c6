package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/adapter/cli/availability"
	"github.com/felixgeelhaar/tempo/adapter/cli/insights"
	"github.com/felixgeelhaar/tempo/adapter/cli/review"
	"github.com/felixgeelhaar/tempo/adapter/cli/schedule"
	"github.com/felixgeelhaar/tempo/internal/app"
	"github.com/felixgeelhaar/tempo/pkg/config"
	"github.com/felixgeelhaar/tempo/pkg/observability"
	"github.com/google/uuid"
)

func main() {
	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		cfg = &config.Config{AppEnv: "development", LocalMode: true}
	}

	logCfg := observability.LogConfig{
		Level:       observability.LogLevel(cfg.LogLevel),
		Format:      observability.LogFormatText,
		ServiceName: "tempo",
	}
	if cfg.IsDevelopment() {
		logCfg.Level = observability.LogLevelDebug
	}
	logger := observability.NewLogger(logCfg)
	cli.SetLogger(logger)

	// Try to initialize the full container
	var cliApp *cli.App
	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		if cfg.IsDevelopment() {
			logger.Warn("failed to initialize container, running in limited mode", "error", err)
			// In development, allow CLI to run without database
			cliApp = nil
		} else {
			logger.Error("failed to initialize container", "error", err)
			os.Exit(1)
		}
	} else {
		defer container.Close()

		cliApp = cli.NewApp(container)

		userID, err := uuid.Parse(cfg.UserID)
		if err != nil {
			logger.Error("invalid TEMPO_USER_ID", "error", err)
			os.Exit(1)
		}
		cliApp.SetCurrentUserID(userID)
	}

	// Set the CLI app
	cli.SetApp(cliApp)

	// Register commands
	cli.AddCommand(schedule.Cmd)
	cli.AddCommand(review.Cmd)
	cli.AddCommand(insights.Cmd)
	cli.AddCommand(availability.Cmd)

	// Execute CLI
	cli.Execute()
}
