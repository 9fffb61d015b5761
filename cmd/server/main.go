package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/khelsetu/assessment-service/internal/config"
	"github.com/khelsetu/assessment-service/internal/engine"
	"github.com/khelsetu/assessment-service/internal/events"
	"github.com/khelsetu/assessment-service/internal/export"
	"github.com/khelsetu/assessment-service/internal/handlers"
	"github.com/khelsetu/assessment-service/internal/leaderboard"
	"github.com/khelsetu/assessment-service/internal/services"
	"github.com/khelsetu/assessment-service/internal/storage"
	"github.com/khelsetu/assessment-service/internal/validator"
	"github.com/khelsetu/assessment-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	kv, cleanup, err := newKV(cfg)
	if err != nil {
		logger.Error("failed to initialize store backend", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer cleanup()

	publisher, err := newPublisher(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	v := validator.New()
	store := storage.New(kv, v, logger)
	board := leaderboard.New(store, logger)
	eng := engine.New(store, board, publisher, logger)
	profiles := services.NewProfileService(store, logger, v)
	exporter := export.New(profiles, logger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	hm := handlers.NewHandlerManager(eng, profiles, board, exporter, logger)
	hm.SetupRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "store_backend", cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.Environment == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newKV(cfg *config.Config) (storage.KV, func(), error) {
	switch cfg.StoreBackend {
	case "redis":
		client, err := pkg.NewRedisClient(cfg)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewRedisKV(client), func() { client.Close() }, nil
	case "postgres":
		db, err := pkg.InitDatabase(cfg)
		if err != nil {
			return nil, nil, err
		}
		kv, err := storage.NewGormKV(db)
		if err != nil {
			return nil, nil, err
		}
		return kv, func() {}, nil
	case "memory":
		return storage.NewMemoryKV(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func newPublisher(cfg *config.Config, logger *slog.Logger) (events.Publisher, error) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("no kafka brokers configured, events disabled")
		return events.NopPublisher{}, nil
	}
	return events.NewKafkaPublisher(events.PublisherConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaTopic,
		Logger:  logger,
	})
}
