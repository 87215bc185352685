package bot

import (
	"context"
	"time"

	"vanilla-bot/internal/storage"
	"vanilla-bot/pkg/api"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the part of the Telegram API the handlers talk to.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Journal records calculations and enforces the per-chat rate limit.
type Journal interface {
	SaveCalculation(ctx context.Context, c storage.Calculation) (int64, error)
	GetCalculation(ctx context.Context, id int64) (*storage.Calculation, error)
	ListCalculations(ctx context.Context, chatID int64, limit int) ([]storage.Calculation, error)
	ListAllCalculations(ctx context.Context) ([]storage.Calculation, error)
	GetStatistics(ctx context.Context) (*storage.Statistics, error)
	CheckRateLimit(ctx context.Context, userID int64, action string, limit int64, window time.Duration) (bool, error)
}

// RateSource supplies live exchange rates for the default answer buttons.
type RateSource interface {
	LatestRate(ctx context.Context, from, to string) (float64, error)
}

var (
	_ Sender     = (*tgbotapi.BotAPI)(nil)
	_ Journal    = (*storage.PostgresStorage)(nil)
	_ RateSource = (*api.Client)(nil)
)
