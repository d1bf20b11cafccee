package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rishtahub/rishta_backend/internal/config"
	"github.com/rishtahub/rishta_backend/internal/database"
	"github.com/rishtahub/rishta_backend/internal/handlers"
	"github.com/rishtahub/rishta_backend/internal/realtime"
	"github.com/rishtahub/rishta_backend/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Initialize logger
	logger.Init()
	defer logger.Sync()

	logger.Info("Starting Rishta backend...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", err)
	}

	// Validate production security settings
	if cfg.AppEnv == "production" {
		if err := cfg.ValidateProductionSecurity(); err != nil {
			logger.Fatal("Production security validation failed", err)
		}
		logger.Info("Production security validation passed")
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}

	// Run GORM auto-migration
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Realtime plumbing: hub for local sockets, Redis for cross-instance fan-out
	hub := realtime.NewHub()
	presence := realtime.NewPresence()

	bus, err := realtime.NewRedisBus(cfg.RedisURL, hub)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", err)
	}

	busCtx, cancelBus := context.WithCancel(context.Background())
	go bus.Run(busCtx)

	router := handlers.NewRouter(cfg, db, hub, presence, bus)

	server := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // websocket connections stay open indefinitely
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server listening", "port", cfg.AppPort, "env", cfg.AppEnv)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	cancelBus()
	hub.Close()
	if err := bus.Close(); err != nil {
		logger.Warn("Redis close error", "error", err)
	}

	logger.Info("Server stopped")
}
