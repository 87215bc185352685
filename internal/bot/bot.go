package bot

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"vanilla-bot/internal/calculator"
	"vanilla-bot/internal/config"
	"vanilla-bot/pkg/redis"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Bot struct {
	api      *tgbotapi.BotAPI
	sender   Sender
	logger   *zap.Logger
	state    *StateStorage
	journal  Journal
	rates    RateSource
	calc     *calculator.Calculator
	cfg      *config.Config
	mu       sync.Mutex
	handlers map[string]func(context.Context, int64, string)
}

func New(
	cfg *config.Config,
	redisClient *redis.Client,
	journal Journal,
	rates RateSource,
	logger *zap.Logger,
) (*Bot, error) {
	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	botAPI.Debug = cfg.LogLevel == "debug"

	logger.Info("Bot authorized",
		zap.String("username", botAPI.Self.UserName),
		zap.Int64("id", botAPI.Self.ID))

	b := newBot(botAPI, cfg, redisClient, journal, logger)
	b.api = botAPI
	b.rates = rates
	return b, nil
}

func newBot(sender Sender, cfg *config.Config, redisClient *redis.Client, journal Journal, logger *zap.Logger) *Bot {
	b := &Bot{
		sender:  sender,
		logger:  logger,
		state:   NewStateStorage(redisClient),
		journal: journal,
		calc:    calculator.New(calculator.WithMinRate(cfg.Rates.MinRate)),
		cfg:     cfg,
	}
	b.registerHandlers()
	return b
}

func (b *Bot) registerHandlers() {
	b.handlers = map[string]func(context.Context, int64, string){
		StepVariant:   b.handleVariant,
		StepBeanCount: b.handleBeanCount,
		StepFolds:     b.handleFolds,
		StepBasePrice: b.handleBasePrice,
		StepUSDToBRL:  b.handleUSDToBRL,
		StepEURToUSD:  b.handleEURToUSD,
		StepEURToBRL:  b.handleEURToBRL,
	}
}

func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("Starting bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Shutting down bot")
			b.api.StopReceivingUpdates()
			return nil

		case update := <-updates:
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if update.Message != nil {
		b.processMessage(ctx, update.Message)
	} else if update.CallbackQuery != nil {
		b.processCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) processMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	b.logger.Debug("Processing message",
		zap.Int64("chat_id", chatID),
		zap.String("text", msg.Text))

	if msg.IsCommand() {
		b.handleCommand(ctx, chatID, msg.Command(), strings.Fields(msg.CommandArguments()))
		return
	}

	switch msg.Text {
	case btnNewCalculation:
		b.handleNew(ctx, chatID)
		return
	case btnCancel:
		b.handleCancel(ctx, chatID)
		return
	}

	state, err := b.state.Get(ctx, chatID)
	if err != nil {
		b.logger.Error("Failed to get user state",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	if handler, exists := b.handlers[state.Step]; exists {
		handler(ctx, chatID, msg.Text)
	} else {
		b.handleDefault(ctx, chatID)
	}
}

func (b *Bot) processCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil {
		return
	}
	chatID := callback.Message.Chat.ID

	b.logger.Debug("Processing callback",
		zap.Int64("chat_id", chatID),
		zap.String("data", callback.Data))

	if _, err := b.sender.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.logger.Warn("Failed to answer callback",
			zap.String("callback_id", callback.ID),
			zap.Error(err))
	}

	switch {
	case callback.Data == callbackNew:
		b.handleNew(ctx, chatID)
	case strings.HasPrefix(callback.Data, callbackExport):
		b.handleExportCallback(ctx, chatID, strings.TrimPrefix(callback.Data, callbackExport))
	default:
		b.logger.Warn("Unknown callback", zap.String("data", callback.Data))
	}
}

func (b *Bot) sendMessage(msg tgbotapi.MessageConfig) {
	if _, err := b.sender.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Int64("chat_id", msg.ChatID),
			zap.String("text", msg.Text),
			zap.Error(err))
	}
}

func (b *Bot) sendError(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, "❌ "+text)
	b.sendMessage(msg)
}
