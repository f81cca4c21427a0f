package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"catalog-backend/internal/config"
	authorHandler "catalog-backend/internal/domains/author/handler"
	authorRepo "catalog-backend/internal/domains/author/repository"
	authorService "catalog-backend/internal/domains/author/service"
	bookRepo "catalog-backend/internal/domains/book/repository"
	infraCache "catalog-backend/internal/infrastructure/cache"
	"catalog-backend/internal/infrastructure/database"
	"catalog-backend/internal/infrastructure/surreal"
	"catalog-backend/pkg/cache"
	"catalog-backend/pkg/logger"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	// Only the connections the configured store driver needs are set.

	Config  *config.Config
	DB      *database.PostgresDB
	Surreal *surreal.Client
	Cache   cache.Cache

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================

	AuthorRepo authorRepo.RepositoryInterface
	BookRepo   bookRepo.RepositoryInterface

	// ========================================
	// SERVICE LAYER (BUSINESS LOGIC)
	// ========================================

	AuthorService authorService.ServiceInterface

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================

	AuthorHandler *authorHandler.AuthorHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the graph in dependency order:
// 1. Infrastructure (store, cache) from cfg
// 2. Repositories
// 3. Services
// 4. Handlers
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Info().Str("driver", cfg.Store.Driver).Msg("[CONTAINER] Initializing...")

	c := &Container{Config: cfg, Cache: cache.Noop{}}

	// ========================================
	// STEP 1: INITIALIZE INFRASTRUCTURE
	// ========================================
	if err := c.initInfrastructure(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}

	// ========================================
	// STEP 2: INITIALIZE REPOSITORIES
	// ========================================
	c.initRepositories()

	// ========================================
	// STEP 3: INITIALIZE SERVICES
	// ========================================
	c.initServices()

	// ========================================
	// STEP 4: INITIALIZE HANDLERS
	// ========================================
	c.initHandlers()

	log.Info().Msg("[CONTAINER] Initialized")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initInfrastructure(ctx context.Context) error {
	cfg := c.Config

	switch cfg.Store.Driver {
	case config.DriverPostgres:
		db := database.NewPostgresDB(cfg.Database.DBConfig())

		connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		if err := db.Connect(connectCtx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		c.DB = db

		if err := db.HealthCheck(ctx); err != nil {
			return fmt.Errorf("database health check failed: %w", err)
		}
		if err := db.EnsureSchema(ctx); err != nil {
			return err
		}

		c.initCache(ctx)

	case config.DriverSurrealDB:
		client := surreal.New(cfg.Surreal.ClientConfig())
		if err := client.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to surrealdb: %w", err)
		}
		c.Surreal = client

	case config.DriverMemory:
		log.Warn().Msg("[CONTAINER] Using in-memory store; data is lost on restart")

	default:
		return fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	return nil
}

// initCache connects Redis. A Redis failure is not critical: look-ups fall
// back to the store on every request.
func (c *Container) initCache(ctx context.Context) {
	if !c.Config.Redis.Enabled {
		log.Info().Msg("[CONTAINER] Redis cache disabled")
		return
	}

	rc := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := rc.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("[CONTAINER] Redis connection failed (non-critical), caching disabled")
		_ = rc.Close()
		return
	}
	c.Cache = rc
}

func (c *Container) initRepositories() {
	switch c.Config.Store.Driver {
	case config.DriverPostgres:
		c.AuthorRepo = authorRepo.NewPostgresRepository(c.DB.Pool, c.Cache, c.Config.Redis.TTL)
		c.BookRepo = bookRepo.NewPostgresRepository(c.DB.Pool)
	case config.DriverSurrealDB:
		c.AuthorRepo = authorRepo.NewSurrealRepository(c.Surreal)
		c.BookRepo = bookRepo.NewSurrealRepository(c.Surreal)
	default:
		c.AuthorRepo = authorRepo.NewMemoryRepository()
		c.BookRepo = bookRepo.NewMemoryRepository()
	}
}

func (c *Container) initServices() {
	c.AuthorService = authorService.NewAuthorService(
		c.AuthorRepo,
		c.BookRepo,
		logger.NewEventRecorder(log.Logger),
	)
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
}

// ========================================
// HELPER METHODS
// ========================================

// Ping checks the configured store and, when in use, the cache.
func (c *Container) Ping(ctx context.Context) map[string]error {
	checks := map[string]error{}

	switch {
	case c.DB != nil:
		checks["database"] = c.DB.Ping(ctx)
	case c.Surreal != nil:
		checks["surrealdb"] = c.Surreal.Ping(ctx)
	default:
		checks["memory"] = nil
	}

	if _, isRedis := c.Cache.(*infraCache.RedisCache); isRedis {
		checks["redis"] = c.Cache.Ping(ctx)
	}

	return checks
}

// Cleanup closes every connection the container opened. Safe to call on a
// partially built container.
func (c *Container) Cleanup() {
	log.Info().Msg("[CONTAINER] Cleaning up resources...")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("[CONTAINER] Failed to close database")
		}
	}

	if c.Surreal != nil {
		if err := c.Surreal.Close(); err != nil {
			log.Warn().Err(err).Msg("[CONTAINER] Failed to close surrealdb")
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("[CONTAINER] Failed to close Redis")
		}
	}

	log.Info().Msg("[CONTAINER] Cleanup completed")
}
