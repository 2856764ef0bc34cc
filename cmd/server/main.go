package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roadassist/internal/config"
	handlers "roadassist/internal/handlers/shared"
	"roadassist/internal/middleware"
	mongorepo "roadassist/internal/repositories/mongodb"
	"roadassist/internal/services"
	"roadassist/pkg/cache"
	"roadassist/pkg/database"
	"roadassist/pkg/logger"
	"roadassist/pkg/weather"
	"roadassist/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: "json",
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// MongoDB
	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	if err := database.NewMigrator(db.Database).Up(); err != nil {
		appLogger.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis is optional; without it weather lookups are simply uncached.
	var weatherCache weather.ConditionCache
	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.Warnf("Redis unavailable, weather caching disabled: %v", err)
	} else {
		defer redisCache.Close()
		weatherCache = redisCache
	}

	// Weather provider with caching decorator
	openWeather := weather.NewOpenWeatherProvider(
		cfg.Weather.OpenWeather.APIKey,
		cfg.Weather.OpenWeather.BaseURL,
		cfg.Weather.Timeout,
	)
	weatherProvider := weather.NewCachedProvider(openWeather, weatherCache, cfg.Weather.CacheTTL)

	// Repositories
	requestRepo := mongorepo.NewServiceRequestRepository(db.Database)

	// Services
	pricingService := services.NewPricingService(
		config.LoadServiceCatalog(),
		cfg.Pricing,
		weatherProvider,
		cfg.Weather.Timeout,
		appLogger,
		nil,
	)
	serviceRequestService := services.NewServiceRequestService(requestRepo, pricingService, appLogger)

	// Handlers
	serviceHandler := handlers.NewServiceHandler(serviceRequestService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(appLogger))

	v1 := router.Group("/api/v1")
	{
		routes.SetupServiceRoutes(v1, serviceHandler, cfg.Security.JWTSecret)
	}

	router.GET("/health", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "database unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": cfg.App.Version,
		})
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		appLogger.Infof("Starting %s on port %d", cfg.App.Name, cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Errorf("Forced shutdown: %v", err)
	}
}
