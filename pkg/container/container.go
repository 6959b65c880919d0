package container

import (
	"context"
	"fmt"
	"time"

	"catalog-backend/internal/config"
	infraCache "catalog-backend/internal/infrastructure/cache"
	"catalog-backend/internal/infrastructure/database"
	"catalog-backend/pkg/cache"
	"catalog-backend/pkg/jwt"

	"catalog-backend/internal/domains/category"
	categoryHandler "catalog-backend/internal/domains/category/handler"
	categoryRepo "catalog-backend/internal/domains/category/repository"
	categoryService "catalog-backend/internal/domains/category/service"

	productHandler "catalog-backend/internal/domains/product/handler"
	productRepo "catalog-backend/internal/domains/product/repository"
	productService "catalog-backend/internal/domains/product/service"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton wired once at startup; a failed wire aborts the process.
type Container struct {
	// ========================================
	// INFRASTRUCTURE
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	JWTManager  *jwt.Manager
	AsynqClient *asynq.Client

	// ========================================
	// REPOSITORIES
	// ========================================
	CategoryRepo  category.Repository
	ProductRepo   productRepo.ProductRepository
	ImportJobRepo productRepo.ImportJobRepository

	// ========================================
	// SERVICES
	// ========================================
	CategoryService category.Service
	ProductService  productService.ProductService
	ImportService   productService.ImportService
	ExportService   productService.ExportService

	// ========================================
	// HANDLERS
	// ========================================
	CategoryHandler *categoryHandler.CategoryHandler
	ProductHandler  *productHandler.ProductHandler
	ImportHandler   *productHandler.ImportHandler
	ExportHandler   *productHandler.ExportHandler
}

// NewContainer wires the graph in dependency order: config, infrastructure,
// repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	// ========================================
	// 1. CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("Config loaded")

	// ========================================
	// 2. INFRASTRUCTURE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	c.DB = database.NewPostgresDB(dbConfig)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		// The app degrades to uncached operation rather than refusing to start.
		log.Warn().Err(err).Msg("Redis unavailable, running without cache")
		c.Cache = nil
	} else {
		c.Cache = redisCache
	}

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// ========================================
	// 3. REPOSITORIES
	// ========================================
	c.CategoryRepo = categoryRepo.NewPostgresRepository(c.DB.Pool)
	c.ProductRepo = productRepo.NewPostgresRepository(c.DB.Pool)
	c.ImportJobRepo = productRepo.NewImportJobRepository(c.DB.Pool)

	// ========================================
	// 4. SERVICES
	// ========================================
	c.CategoryService = categoryService.NewService(c.CategoryRepo, c.Cache)
	c.ProductService = productService.NewProductService(c.ProductRepo, c.CategoryService, c.Cache)
	c.ImportService = productService.NewImportService(c.ProductRepo, c.ImportJobRepo, c.CategoryService, c.AsynqClient, cfg.Import)
	c.ExportService = productService.NewExportService(c.ProductRepo)

	// ========================================
	// 5. HANDLERS
	// ========================================
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.ProductHandler = productHandler.NewProductHandler(c.ProductService)
	c.ImportHandler = productHandler.NewImportHandler(c.ImportService)
	c.ExportHandler = productHandler.NewExportHandler(c.ExportService)

	log.Info().Msg("Container initialized")
	return c, nil
}

// Cleanup releases infrastructure resources in reverse wire order.
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close asynq client")
		}
	}
	if closer, ok := c.Cache.(interface{ Close() error }); ok && closer != nil {
		if err := closer.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close cache")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	log.Info().Msg("Container cleaned up")
}
