// Package app wires configuration, infrastructure and handlers into a
// single container the binaries share.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	analyticsCommands "github.com/felixgeelhaar/tempo/internal/analytics/application/commands"
	analyticsQueries "github.com/felixgeelhaar/tempo/internal/analytics/application/queries"
	analyticsServices "github.com/felixgeelhaar/tempo/internal/analytics/application/services"
	analyticsDomain "github.com/felixgeelhaar/tempo/internal/analytics/domain"
	analyticsPersistence "github.com/felixgeelhaar/tempo/internal/analytics/infrastructure/persistence"
	identityDomain "github.com/felixgeelhaar/tempo/internal/identity/domain"
	identityPersistence "github.com/felixgeelhaar/tempo/internal/identity/infrastructure/persistence"
	plannerCommands "github.com/felixgeelhaar/tempo/internal/planner/application/commands"
	plannerQueries "github.com/felixgeelhaar/tempo/internal/planner/application/queries"
	plannerServices "github.com/felixgeelhaar/tempo/internal/planner/application/services"
	plannerDomain "github.com/felixgeelhaar/tempo/internal/planner/domain"
	plannerPersistence "github.com/felixgeelhaar/tempo/internal/planner/infrastructure/persistence"
	sharedApplication "github.com/felixgeelhaar/tempo/internal/shared/application"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/cache"
	sqlitedb "github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/migrations"
	sharedPersistence "github.com/felixgeelhaar/tempo/internal/shared/infrastructure/persistence"
	tasksDomain "github.com/felixgeelhaar/tempo/internal/tasks/domain"
	tasksPersistence "github.com/felixgeelhaar/tempo/internal/tasks/infrastructure/persistence"
	"github.com/felixgeelhaar/tempo/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Infrastructure
	DB          *pgxpool.Pool // nil in local mode
	LocalDB     *sql.DB       // nil outside local mode
	RedisClient *redis.Client
	Cache       cache.Cache
	Publisher   eventbus.Publisher
	UnitOfWork  sharedApplication.UnitOfWork

	// Repositories
	BlockRepo    plannerDomain.TimeBlockRepository
	PolicyRepo   plannerDomain.BreakPolicyRepository
	TemplateRepo plannerDomain.AvailabilityTemplateRepository
	EventRepo    plannerDomain.CalendarEventRepository
	ReviewRepo   analyticsDomain.DailyReviewRepository
	InsightRepo  analyticsDomain.ProductivityInsightRepository
	GoalRepo     analyticsDomain.WorkGoalRepository
	TaskSource   tasksDomain.Source
	TeamResolver identityDomain.TeamResolver

	// Services
	Availability     *plannerServices.AvailabilityResolver
	Prioritizer      *plannerServices.Prioritizer
	Packer           *plannerServices.Packer
	Scheduler        *plannerServices.Scheduler
	ReviewCalculator *analyticsServices.ReviewCalculator
	InsightGenerator *analyticsServices.InsightGenerator

	// Planner handlers
	CommitScheduleHandler     *plannerCommands.CommitScheduleHandler
	ReplanHandler             *plannerCommands.ReplanHandler
	SetBreakPolicyHandler     *plannerCommands.SetBreakPolicyHandler
	AddTemplateHandler        *plannerCommands.AddAvailabilityTemplateHandler
	RemoveTemplateHandler     *plannerCommands.RemoveAvailabilityTemplateHandler
	AddCalendarEventHandler   *plannerCommands.AddCalendarEventHandler
	CompleteBlockHandler      *plannerCommands.CompleteBlockHandler
	PreviewScheduleHandler    *plannerQueries.PreviewScheduleHandler
	ListBlocksHandler         *plannerQueries.ListBlocksHandler
	ListEventsHandler         *plannerQueries.ListEventsHandler
	ListTemplatesHandler      *plannerQueries.ListTemplatesHandler

	// Analytics handlers
	ComputeDailyReviewHandler *analyticsCommands.ComputeDailyReviewHandler
	GenerateInsightsHandler   *analyticsCommands.GenerateInsightsHandler
	RecalcGoalProgressHandler *analyticsCommands.RecalcGoalProgressHandler
	WriteJournalHandler       *analyticsCommands.WriteJournalHandler
	CreateWorkGoalHandler     *analyticsCommands.CreateWorkGoalHandler
	GetStatsHandler           *analyticsQueries.GetStatsHandler
	GetInsightsHandler        *analyticsQueries.GetInsightsHandler
	GetReviewHandler          *analyticsQueries.GetReviewHandler
}

// NewContainer builds the container. Local mode runs everything on the
// embedded SQLite database with in-process fallbacks; otherwise Postgres,
// Redis and RabbitMQ are wired, with development fallbacks for the last
// two.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	if cfg.LocalMode {
		if err := c.wireLocal(ctx); err != nil {
			return nil, err
		}
	} else {
		if err := c.wireRemote(ctx); err != nil {
			return nil, err
		}
	}

	c.wireApplication()
	return c, nil
}

func (c *Container) wireRemote(ctx context.Context) error {
	cfg, logger := c.Config, c.Logger

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("ping database: %w", err)
	}
	c.DB = pool
	logger.Info("connected to database")

	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return fmt.Errorf("run migrations: %w", err)
	}

	// Redis backs the preview cache; optional in development.
	c.Cache = cache.NewMemoryCache()
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			if !cfg.IsDevelopment() {
				pool.Close()
				return fmt.Errorf("parse Redis URL: %w", err)
			}
			logger.Warn("invalid Redis URL, preview cache runs in memory", "error", err)
		} else {
			client := redis.NewClient(opt)
			if err := client.Ping(ctx).Err(); err != nil {
				if !cfg.IsDevelopment() {
					pool.Close()
					return fmt.Errorf("connect to Redis: %w", err)
				}
				logger.Warn("Redis not available, preview cache runs in memory", "error", err)
			} else {
				c.RedisClient = client
				c.Cache = cache.NewRedisCache(client, "tempo", logger)
				logger.Info("connected to Redis")
			}
		}
	}

	publisher, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
	if err != nil {
		if !cfg.IsDevelopment() {
			pool.Close()
			return fmt.Errorf("connect to RabbitMQ: %w", err)
		}
		logger.Warn("RabbitMQ not available, using noop publisher")
		c.Publisher = eventbus.NewNoopPublisher(logger)
	} else {
		c.Publisher = publisher
	}

	c.UnitOfWork = sharedPersistence.NewPostgresUnitOfWork(pool)
	c.BlockRepo = plannerPersistence.NewPostgresTimeBlockRepository(pool)
	c.PolicyRepo = plannerPersistence.NewPostgresBreakPolicyRepository(pool)
	c.TemplateRepo = plannerPersistence.NewPostgresAvailabilityTemplateRepository(pool)
	c.EventRepo = plannerPersistence.NewPostgresCalendarEventRepository(pool)
	c.ReviewRepo = analyticsPersistence.NewPostgresDailyReviewRepository(pool)
	c.InsightRepo = analyticsPersistence.NewPostgresInsightRepository(pool)
	c.GoalRepo = analyticsPersistence.NewPostgresWorkGoalRepository(pool)
	c.TaskSource = tasksPersistence.NewPostgresTaskSource(pool)
	c.TeamResolver = identityPersistence.NewPostgresTeamResolver(pool)
	return nil
}

func (c *Container) wireLocal(ctx context.Context) error {
	cfg, logger := c.Config, c.Logger

	db, err := sqlitedb.Open(ctx, cfg.SQLitePath)
	if err != nil {
		return fmt.Errorf("open local database: %w", err)
	}
	c.LocalDB = db
	logger.Info("local mode", "path", cfg.SQLitePath)

	c.Cache = cache.NewMemoryCache()
	c.Publisher = eventbus.NewNoopPublisher(logger)
	c.UnitOfWork = sharedApplication.NoopUnitOfWork{}
	c.BlockRepo = plannerPersistence.NewSQLiteTimeBlockRepository(db)
	c.PolicyRepo = plannerPersistence.NewSQLiteBreakPolicyRepository(db)
	c.TemplateRepo = plannerPersistence.NewSQLiteAvailabilityTemplateRepository(db)
	c.EventRepo = plannerPersistence.NewSQLiteCalendarEventRepository(db)
	c.ReviewRepo = analyticsPersistence.NewSQLiteDailyReviewRepository(db)
	c.TaskSource = tasksPersistence.NewSQLiteTaskSource(db)
	c.TeamResolver = identityDomain.NewStaticTeamResolver(nil)
	// Insights and goals stay server-side; local mode schedules with
	// defaults.
	c.InsightRepo = nil
	c.GoalRepo = nil
	return nil
}

func (c *Container) wireApplication() {
	cfg, logger := c.Config, c.Logger

	c.Availability = plannerServices.NewAvailabilityResolver(c.TemplateRepo, c.EventRepo, c.TeamResolver, cfg.Location())
	c.Prioritizer = plannerServices.NewPrioritizer(c.TaskSource)
	c.Packer = plannerServices.NewPacker()

	var insights plannerServices.InsightProvider
	if c.InsightRepo != nil {
		insights = analyticsServices.NewInsightProvider(c.InsightRepo)
	}
	c.Scheduler = plannerServices.NewScheduler(c.Availability, c.Prioritizer, c.Packer, c.PolicyRepo, insights, c.Cache, logger)

	c.ReviewCalculator = analyticsServices.NewReviewCalculator(c.ReviewRepo, c.BlockRepo, c.TaskSource, logger)
	if c.InsightRepo != nil {
		c.InsightGenerator = analyticsServices.NewInsightGenerator(c.ReviewRepo, c.InsightRepo, c.BlockRepo, c.TaskSource, logger)
	}

	c.CommitScheduleHandler = plannerCommands.NewCommitScheduleHandler(c.Scheduler, c.BlockRepo, c.UnitOfWork, c.Publisher, logger)
	c.ReplanHandler = plannerCommands.NewReplanHandler(c.Scheduler, c.BlockRepo, c.TaskSource, c.UnitOfWork, c.Publisher, logger)
	c.SetBreakPolicyHandler = plannerCommands.NewSetBreakPolicyHandler(c.PolicyRepo)
	c.AddTemplateHandler = plannerCommands.NewAddAvailabilityTemplateHandler(c.TemplateRepo)
	c.RemoveTemplateHandler = plannerCommands.NewRemoveAvailabilityTemplateHandler(c.TemplateRepo)
	c.AddCalendarEventHandler = plannerCommands.NewAddCalendarEventHandler(c.EventRepo)
	c.CompleteBlockHandler = plannerCommands.NewCompleteBlockHandler(c.BlockRepo)
	c.PreviewScheduleHandler = plannerQueries.NewPreviewScheduleHandler(c.Scheduler)
	c.ListBlocksHandler = plannerQueries.NewListBlocksHandler(c.BlockRepo)
	c.ListEventsHandler = plannerQueries.NewListEventsHandler(c.EventRepo, c.TeamResolver)
	c.ListTemplatesHandler = plannerQueries.NewListTemplatesHandler(c.TemplateRepo)

	c.ComputeDailyReviewHandler = analyticsCommands.NewComputeDailyReviewHandler(c.ReviewCalculator)
	if c.InsightGenerator != nil {
		c.GenerateInsightsHandler = analyticsCommands.NewGenerateInsightsHandler(c.InsightGenerator, c.Publisher, logger)
	}
	if c.GoalRepo != nil {
		c.RecalcGoalProgressHandler = analyticsCommands.NewRecalcGoalProgressHandler(c.GoalRepo, c.TaskSource)
		c.CreateWorkGoalHandler = analyticsCommands.NewCreateWorkGoalHandler(c.GoalRepo)
	}
	c.WriteJournalHandler = analyticsCommands.NewWriteJournalHandler(c.ReviewRepo)
	c.GetStatsHandler = analyticsQueries.NewGetStatsHandler(c.ReviewRepo)
	if c.InsightRepo != nil {
		c.GetInsightsHandler = analyticsQueries.NewGetInsightsHandler(c.InsightRepo)
	}
	c.GetReviewHandler = analyticsQueries.NewGetReviewHandler(c.ReviewRepo)
}

// Close releases infrastructure resources.
func (c *Container) Close() {
	if c.Publisher != nil {
		if err := c.Publisher.Close(); err != nil {
			c.Logger.Warn("closing publisher", "error", err)
		}
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("closing redis client", "error", err)
		}
	}
	if c.LocalDB != nil {
		if err := c.LocalDB.Close(); err != nil {
			c.Logger.Warn("closing local database", "error", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
