package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"vanilla-bot/internal/bot"
	"vanilla-bot/internal/config"
	"vanilla-bot/internal/storage"
	"vanilla-bot/pkg/api"
	"vanilla-bot/pkg/logger"
	"vanilla-bot/pkg/redis"

	"go.uber.org/zap"
)

// ENTRY POINT

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	zapLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	redisClient := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
	defer redisClient.Close()

	if err := redisClient.Ping(ctx); err != nil {
		zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	pgStorage, err := storage.NewPostgresStorage(ctx, cfg.Database, redisClient, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to init PostgreSQL storage", zap.Error(err))
	}
	defer pgStorage.Close()

	var rates bot.RateSource
	if cfg.Rates.APIURL != "" {
		rates = api.NewClient(cfg.Rates.APIURL, cfg.Rates.APIToken, cfg.Rates.APITimeout, cfg.Rates.CacheTTL, zapLogger)
		zapLogger.Info("Live exchange rates enabled", zap.String("url", cfg.Rates.APIURL))
	}

	tgBot, err := bot.New(cfg, redisClient, pgStorage, rates, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to create bot", zap.Error(err))
	}

	if err := tgBot.Start(ctx); err != nil {
		zapLogger.Fatal("Bot stopped with error", zap.Error(err))
	}

	zapLogger.Info("Bot shutdown gracefully")
}
