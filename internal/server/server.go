package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/Zeeshan2106/zeeshan-mean-stack-backend/internal/config"
	custommiddleware "github.com/Zeeshan2106/zeeshan-mean-stack-backend/internal/middleware"
	"github.com/Zeeshan2106/zeeshan-mean-stack-backend/internal/repository"
	"github.com/Zeeshan2106/zeeshan-mean-stack-backend/internal/service"
	"github.com/Zeeshan2106/zeeshan-mean-stack-backend/internal/transport"
)

type Server struct {
	*http.Server
	config      *config.Config
	logger      *zap.Logger
	mongoClient *mongo.Client
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, mongoClient *mongo.Client, pgPool *pgxpool.Pool, redisClient *redis.Client) *Server {
	router := chi.NewRouter()

	// Basic middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env == "development"))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(chimiddleware.Compress(5))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	mongoDB := mongoClient.Database(cfg.Mongo.Database)

	// Initialize repositories
	productRepo := repository.NewProductRepository(mongoDB)
	orderRepo := repository.NewOrderRepository(mongoDB)
	userRepo := repository.NewUserRepository(pgPool)

	// Initialize services
	productService := service.NewProductService(productRepo)
	orderService := service.NewOrderService(orderRepo, productRepo)
	userService := service.NewUserService(userRepo)
	weatherService := service.NewWeatherService(cfg.Weather)

	// Initialize handlers
	productHandler := transport.NewProductHandler(productService, logger)
	orderHandler := transport.NewOrderHandler(orderService, logger)
	userHandler := transport.NewUserHandler(userService, logger)
	weatherHandler := transport.NewWeatherHandler(weatherService, logger)

	// Credential endpoints are rate limited
	rateLimit := custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: 20,
		Window:            time.Minute,
		KeyPrefix:         "ratelimit:auth",
	}, logger)

	// Register routes
	router.Route("/api", func(r chi.Router) {
		productHandler.RegisterRoutes(r)
		orderHandler.RegisterRoutes(r)
		userHandler.RegisterRoutes(r, rateLimit)
		weatherHandler.RegisterRoutes(r)
	})

	return &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:      cfg,
		logger:      logger,
		mongoClient: mongoClient,
		pgPool:      pgPool,
		redisClient: redisClient,
	}
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.pgPool != nil {
		s.pgPool.Close()
	}

	if s.mongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.mongoClient.Disconnect(ctx); err != nil {
			s.logger.Error("Failed to disconnect mongo client", zap.Error(err))
		}
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
