// Package app wires the application's dependencies together.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/taskflow/taskflow/internal/identity/application/auth"
	identityDomain "github.com/taskflow/taskflow/internal/identity/domain"
	identityPersistence "github.com/taskflow/taskflow/internal/identity/infrastructure/persistence"
	"github.com/taskflow/taskflow/internal/shared/infrastructure/cache"
	"github.com/taskflow/taskflow/internal/shared/infrastructure/database"
	"github.com/taskflow/taskflow/internal/shared/infrastructure/eventbus"
	"github.com/taskflow/taskflow/internal/shared/infrastructure/migrations"
	taskCommands "github.com/taskflow/taskflow/internal/tasks/application/commands"
	taskQueries "github.com/taskflow/taskflow/internal/tasks/application/queries"
	"github.com/taskflow/taskflow/internal/tasks/domain/task"
	taskPersistence "github.com/taskflow/taskflow/internal/tasks/infrastructure/persistence"
	"github.com/taskflow/taskflow/pkg/config"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Database. Exactly one of Pool and SQLiteDB is set.
	DBDriver database.Driver
	Pool     *pgxpool.Pool
	SQLiteDB *sql.DB

	// Optional infrastructure
	RedisClient *redis.Client
	Cache       cache.Cache
	Publisher   eventbus.Publisher

	// Repositories
	TaskRepo task.Repository
	UserRepo identityDomain.UserRepository

	// Identity
	AuthService *auth.Service

	// Task command handlers
	CreateTaskHandler *taskCommands.CreateTaskHandler
	UpdateTaskHandler *taskCommands.UpdateTaskHandler
	ToggleTaskHandler *taskCommands.ToggleTaskHandler
	DeleteTaskHandler *taskCommands.DeleteTaskHandler

	// Task query handlers
	ListTasksHandler *taskQueries.ListTasksHandler
	GetTaskHandler   *taskQueries.GetTaskHandler
}

// NewContainer creates the dependency container: database with
// migrations, optional Redis cache and RabbitMQ publisher, then
// repositories and handlers.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Container{
		Config:    cfg,
		Logger:    logger,
		Cache:     cache.Noop{},
		Publisher: eventbus.NoopPublisher{},
	}

	if err := c.initDatabase(ctx, cfg); err != nil {
		return nil, err
	}

	c.initRedis(ctx, cfg)
	c.initRabbitMQ(cfg)
	c.initServices(cfg)

	return c, nil
}

func (c *Container) initDatabase(ctx context.Context, cfg *config.Config) error {
	c.DBDriver = database.DetectDriver(cfg.DatabaseURL)

	switch c.DBDriver {
	case database.DriverPostgres:
		pool, err := database.NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		c.Pool = pool
		c.TaskRepo = taskPersistence.NewPostgresTaskRepository(pool)
		c.UserRepo = identityPersistence.NewPostgresUserRepository(pool)

	case database.DriverSQLite:
		path := cfg.DatabaseURL
		if path == "" {
			path = database.DefaultSQLitePath()
		}
		path = strings.TrimPrefix(path, "sqlite://")

		db, err := database.NewSQLiteDB(ctx, path)
		if err != nil {
			return fmt.Errorf("failed to open sqlite database: %w", err)
		}
		if err := migrations.RunSQLiteMigrations(ctx, db); err != nil {
			db.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		c.SQLiteDB = db
		c.TaskRepo = taskPersistence.NewSQLiteTaskRepository(db)
		c.UserRepo = identityPersistence.NewSQLiteUserRepository(db)

	default:
		return fmt.Errorf("unsupported database driver: %s", c.DBDriver)
	}

	c.Logger.Info("database initialized", "driver", c.DBDriver.String())
	return nil
}

// initRedis connects the optional list cache. A missing or unreachable
// Redis degrades to reading the store directly.
func (c *Container) initRedis(ctx context.Context, cfg *config.Config) {
	if cfg.RedisURL == "" {
		return
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		c.Logger.Warn("invalid REDIS_URL, caching disabled", "error", err)
		return
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		c.Logger.Warn("redis unreachable, caching disabled", "error", err)
		client.Close()
		return
	}

	c.RedisClient = client
	c.Cache = cache.NewRedisCache(client, c.Logger)
	c.Logger.Info("redis cache initialized")
}

// initRabbitMQ connects the optional event publisher. Mutations still
// succeed when RabbitMQ is absent; events are simply not published.
func (c *Container) initRabbitMQ(cfg *config.Config) {
	if cfg.RabbitMQURL == "" {
		return
	}

	publisher, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, c.Logger)
	if err != nil {
		c.Logger.Warn("rabbitmq unreachable, event publishing disabled", "error", err)
		return
	}

	c.Publisher = publisher
	c.Logger.Info("rabbitmq publisher initialized")
}

func (c *Container) initServices(cfg *config.Config) {
	c.AuthService = auth.NewService(
		c.UserRepo,
		auth.NewPasswordHasher(),
		auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL, cfg.JWTIssuer),
		c.Publisher,
		c.Logger,
	)

	c.CreateTaskHandler = taskCommands.NewCreateTaskHandler(c.TaskRepo, c.Publisher, c.Cache, c.Logger)
	c.UpdateTaskHandler = taskCommands.NewUpdateTaskHandler(c.TaskRepo, c.Publisher, c.Cache, c.Logger)
	c.ToggleTaskHandler = taskCommands.NewToggleTaskHandler(c.TaskRepo, c.Publisher, c.Cache, c.Logger)
	c.DeleteTaskHandler = taskCommands.NewDeleteTaskHandler(c.TaskRepo, c.Publisher, c.Cache, c.Logger)

	c.ListTasksHandler = taskQueries.NewListTasksHandler(c.TaskRepo, c.Cache, c.Logger)
	c.GetTaskHandler = taskQueries.NewGetTaskHandler(c.TaskRepo)
}

// Close releases all held resources.
func (c *Container) Close() {
	if c.Publisher != nil {
		if err := c.Publisher.Close(); err != nil {
			c.Logger.Warn("failed to close publisher", "error", err)
		}
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("failed to close redis client", "error", err)
		}
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
	if c.SQLiteDB != nil {
		if err := c.SQLiteDB.Close(); err != nil {
			c.Logger.Warn("failed to close sqlite database", "error", err)
		}
	}
}
