package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"catalog/internal/cache"
	"catalog/internal/config"
	"catalog/internal/database"
	"catalog/internal/events"
	"catalog/internal/graph"
	"catalog/internal/handlers"
	"catalog/internal/logging"
	"catalog/internal/repositories"
	"catalog/internal/response"
	"catalog/internal/services"
	"catalog/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Server owns every long-lived resource of a running catalog.
type Server struct {
	App *fiber.App
	Bus *events.MemoryBus

	cfg    *config.Config
	logger *slog.Logger
	db     *gorm.DB
	cache  cache.Cache
	broker *rabbitmq.Client
	graph  *graph.Handler
}

// NewServer connects to the configured backends and wires the application.
// Resources opened before a failure are released.
func NewServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *Server, err error) {
	s := &Server{cfg: cfg, logger: logger}
	defer func() {
		if err != nil {
			_ = s.Close()
		}
	}()

	// --- Database ---
	s.db, err = database.Open(cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	if cfg.Database.AutoMigrate {
		if err = database.Migrate(s.db); err != nil {
			return nil, err
		}
	}

	// --- Cache ---
	if cfg.Cache.RedisURL != "" {
		var redisCache *cache.RedisCache
		if redisCache, err = cache.NewRedisCacheFromURL(ctx, cfg.Cache.RedisURL); err != nil {
			return nil, err
		}
		s.cache = redisCache
		logger.Info("using redis cache")
	} else {
		s.cache = cache.NewMemoryCache()
		logger.Info("using in-memory cache")
	}

	// --- Event bus, optionally mirrored to RabbitMQ ---
	busOpts := []events.Option{events.WithLogger(logger)}
	if cfg.Events.RabbitMQURL != "" {
		s.broker, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.Events.RabbitMQURL, Exchange: cfg.Events.Exchange}, logger)
		if err != nil {
			return nil, err
		}
		busOpts = append(busOpts, events.WithForwarder(s.broker))
	}
	s.Bus = events.NewMemoryBus(cfg.Events.BufferSize, busOpts...)

	// --- Services ---
	svcOpts := []services.Option{services.WithCache(s.cache, cfg.Cache.TTL), services.WithLogger(logger)}
	products := services.NewProductService(repositories.NewGORMProductRepository(s.db), s.Bus, svcOpts...)
	users := services.NewUserService(repositories.NewGORMUserRepository(s.db), s.Bus, svcOpts...)

	// --- GraphQL ---
	schema, err := graph.NewSchema(graph.NewResolver(products, users, s.Bus, logger))
	if err != nil {
		return nil, fmt.Errorf("failed to build GraphQL schema: %w", err)
	}
	s.graph = graph.NewHandler(schema, logger)

	// --- HTTP ---
	// Access lines are info level.
	var accessLog io.Writer
	if logging.ParseLevel(cfg.Log.Level) <= slog.LevelInfo {
		accessLog = os.Stdout
	}
	s.App = handlers.NewApp(handlers.AppDeps{
		Products:  products,
		Users:     users,
		Responses: response.NewBuilder(cfg.App.Version),
		Logger:    logger,
		Ping:      func(ctx context.Context) error { return database.Ping(ctx, s.db) },
		AccessLog: accessLog,
		LogFormat: cfg.Log.Format,
		Extra:     []handlers.RouteRegistrar{s.graph},
	})

	return s, nil
}

// Run serves HTTP until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.App.Listen(s.cfg.App.Port)
	}()
	s.logger.Info("server started", "addr", s.cfg.App.Port)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	// Open subscription streams would otherwise hold the shutdown until its timeout.
	s.graph.Close()
	if err := s.App.ShutdownWithTimeout(s.cfg.App.ShutdownTimeout); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}
	s.logger.Info("server gracefully stopped")
	return nil
}

// Close releases the bus, the cache, the broker and the database.
func (s *Server) Close() error {
	var errs []error
	if s.graph != nil {
		s.graph.Close()
	}
	if s.Bus != nil {
		s.Bus.Close()
	}
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("cache: %w", err))
		}
	}
	if s.broker != nil {
		if err := s.broker.Close(); err != nil {
			errs = append(errs, fmt.Errorf("broker: %w", err))
		}
	}
	if s.db != nil {
		if err := database.Close(s.db); err != nil {
			errs = append(errs, fmt.Errorf("database: %w", err))
		}
	}
	return errors.Join(errs...)
}
