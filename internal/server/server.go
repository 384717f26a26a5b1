package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"kitchen-inventory/internal/config"
	custommiddleware "kitchen-inventory/internal/middleware"
	"kitchen-inventory/internal/repository"
	"kitchen-inventory/internal/service"
	"kitchen-inventory/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.Server.Env != "production"))

	var redisClient *redis.Client
	if cfg.RateLimit.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.RequestsPerMinute,
			Window:            time.Minute,
			KeyPrefix:         "rate_limit",
		}, logger))
	}

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize repositories bound to the pool, plus a transaction
	// runner for write paths.
	repos := repository.NewRepos(db)
	txRunner := repository.NewTxRunner(db)

	// Initialize services
	locationService := service.NewLocationService(repos, txRunner)
	storeService := service.NewStoreService(repos, txRunner)
	productService := service.NewProductService(repos, txRunner)
	inventoryService := service.NewInventoryService(repos, txRunner)
	shoppingListService := service.NewShoppingListService(repos, txRunner)

	// Initialize handlers
	locationHandler := transport.NewLocationHandler(locationService, inventoryService, logger)
	storeHandler := transport.NewStoreHandler(storeService, logger)
	productHandler := transport.NewProductHandler(productService, logger)
	inventoryHandler := transport.NewInventoryHandler(inventoryService, logger)
	shoppingListHandler := transport.NewShoppingListHandler(shoppingListService, logger)

	// Register routes
	locationHandler.RegisterRoutes(router)
	storeHandler.RegisterRoutes(router)
	productHandler.RegisterRoutes(router)
	inventoryHandler.RegisterRoutes(router)
	shoppingListHandler.RegisterRoutes(router)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
