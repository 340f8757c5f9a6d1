package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"task-tracker/internal/cache"
	"task-tracker/internal/config"
	"task-tracker/internal/database"
	"task-tracker/internal/handlers"
	"task-tracker/internal/middleware"
	"task-tracker/internal/monitoring"
	"task-tracker/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	taskService, redisCache := buildTaskService(cfg)
	if redisCache != nil {
		defer redisCache.Close()
	}

	router := buildRouter(cfg, db, taskService)

	server := &http.Server{
		Addr:         cfg.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	startServer(server, cfg)
}

func buildTaskService(cfg *config.Config) (services.TaskService, *cache.RedisCache) {
	taskService := services.NewTaskService()
	if !cfg.Cache.Enabled {
		return taskService, nil
	}

	redisCache := cache.New(cache.Config{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Cache.Password,
		DB:           cfg.Cache.DB,
		PoolSize:     cfg.Cache.PoolSize,
		DialTimeout:  cfg.Cache.DialTimeout,
		ReadTimeout:  cfg.Cache.ReadTimeout,
		WriteTimeout: cfg.Cache.WriteTimeout,
	})
	if err := redisCache.Health(); err != nil {
		log.Printf("Cache unreachable, continuing without it: %v", err)
		redisCache.Close()
		return taskService, nil
	}

	log.Printf("Read-through cache enabled at %s (ttl %v)", cfg.GetRedisAddr(), cfg.Cache.TTL)
	return services.NewCachedTaskService(taskService, redisCache, cfg.Cache.TTL), redisCache
}

func buildRouter(cfg *config.Config, db *gorm.DB, taskService services.TaskService) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RecoveryWithLog())
	router.Use(middleware.CORS(cfg.CORS))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMin, cfg.RateLimit.BurstSize).Middleware())
	}

	metrics := monitoring.NewMetrics()
	router.Use(metrics.Middleware())
	router.GET("/metrics", metrics.Handler)

	handlers.RegisterRoutes(router, handlers.NewTaskHandler(db, taskService))
	return router
}

func startServer(server *http.Server, cfg *config.Config) {
	go func() {
		log.Printf("Starting task tracker on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}
