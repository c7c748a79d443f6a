package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dcf_fanchart/pkg/api/server"
	"dcf_fanchart/pkg/core/cache"
	"dcf_fanchart/pkg/core/config"
	"dcf_fanchart/pkg/logger"
)

func main() {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		fmt.Printf("[FATAL] %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	logger.SetGlobalLogger(log)

	model, err := config.LoadModel(cfg.ConfigPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.ConfigPath).Msg("Failed to load model config")
	}
	log.Info().
		Str("config", cfg.ConfigPath).
		Int("horizon", model.Pipeline.Horizon.Periods()).
		Int("scenarios", len(model.Pipeline.Offsets)).
		Msg("Model loaded")

	var repo cache.Repository
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisCache(cfg.RedisAddr, cfg.CacheTTL)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := redisCache.Ping(ctx)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("Failed to connect to Redis")
		}
		defer redisCache.Close()
		repo = redisCache
		log.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.CacheTTL).Msg("Using Redis cache")
	} else {
		repo = cache.NewMemoryCache(cfg.CacheTTL)
		log.Info().Dur("ttl", cfg.CacheTTL).Msg("Using in-memory cache")
	}

	srv := server.New(server.Config{
		Addr:    cfg.Addr(),
		Log:     log,
		Model:   model,
		Cache:   repo,
		DevMode: cfg.LogPretty,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	fmt.Printf("API server listening on %s\n", cfg.Addr())
	fmt.Println("  - GET  /health")
	fmt.Println("  - GET  /api/assumptions/reference")
	fmt.Println("  - POST /api/fanchart")
	fmt.Println("  - POST /api/fanchart/report  (?format=markdown, ?title=)")
	fmt.Println("  - POST /api/valuation/dcf")
	fmt.Println("  - POST /api/valuation/football-field")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server stopped")
}
