package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	analyticsCommands "github.com/felixgeelhaar/tempo/internal/analytics/application/commands"
	"github.com/felixgeelhaar/tempo/internal/app"
	plannerPersistence "github.com/felixgeelhaar/tempo/internal/planner/infrastructure/persistence"
	"github.com/felixgeelhaar/tempo/pkg/config"
	"github.com/felixgeelhaar/tempo/pkg/observability"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	// The worker always runs against the server database.
	cfg.LocalMode = false

	logCfg := observability.LogConfig{
		Level:       observability.LogLevel(cfg.LogLevel),
		Format:      observability.LogFormatJSON,
		ServiceName: "tempo-worker",
	}
	if cfg.IsDevelopment() {
		logCfg.Level = observability.LogLevelDebug
		logCfg.Format = observability.LogFormatText
	}
	logger := observability.NewLogger(logCfg)

	logger.Info("starting tempo worker")

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()
	logger.Info("connected to database")

	// ActiveUserIDs is a worker-only query, so the worker talks to the
	// concrete repository rather than the domain interface.
	blocks := plannerPersistence.NewPostgresTimeBlockRepository(container.DB)

	run := func() {
		runOnce(ctx, cfg, container, blocks, logger)
	}
	run()

	ticker := time.NewTicker(cfg.WorkerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("worker stopped")
			return
		case <-ticker.C:
			run()
		}
	}
}

// runOnce computes yesterday's reviews for every active user,
// regenerates insights when enabled, and prunes long-expired insights.
// Review computation is idempotent, so overlapping runs only refresh
// the same numbers.
func runOnce(ctx context.Context, cfg *config.Config, container *app.Container, blocks *plannerPersistence.PostgresTimeBlockRepository, logger *slog.Logger) {
	loc := cfg.Location()
	now := time.Now().In(loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -1)
	dayEnd := dayStart.AddDate(0, 0, 1)

	users, err := blocks.ActiveUserIDs(ctx, dayStart, dayEnd)
	if err != nil {
		logger.Error("failed to list active users", "error", err)
		return
	}
	logger.Info("computing daily reviews", "date", dayStart.Format("2006-01-02"), "users", len(users))

	for _, userID := range users {
		if _, err := container.ComputeDailyReviewHandler.Handle(ctx, analyticsCommands.ComputeDailyReviewCommand{
			UserID: userID,
			Date:   dayStart,
		}); err != nil {
			logger.Error("failed to compute review", "user_id", userID, "error", err)
			continue
		}

		if cfg.WorkerInsights && container.GenerateInsightsHandler != nil {
			if _, err := container.GenerateInsightsHandler.Handle(ctx, analyticsCommands.GenerateInsightsCommand{
				UserID: userID,
			}); err != nil {
				logger.Error("failed to generate insights", "user_id", userID, "error", err)
			}
		}
	}

	if container.InsightRepo != nil {
		cutoff := now.AddDate(0, 0, -cfg.InsightRetentionDays)
		purged, err := container.InsightRepo.PurgeExpired(ctx, cutoff)
		if err != nil {
			logger.Error("failed to purge expired insights", "error", err)
		} else if purged > 0 {
			logger.Info("purged expired insights", "count", purged, "retention_days", cfg.InsightRetentionDays)
		}
	}
}
