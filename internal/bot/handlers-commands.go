package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const historyLimit = 10

func (b *Bot) handleCommand(ctx context.Context, chatID int64, command string, args []string) {
	switch command {
	case "start":
		b.handleStart(ctx, chatID)
	case "new":
		b.handleNew(ctx, chatID)
	case "cancel":
		b.handleCancel(ctx, chatID)
	case "help":
		b.handleHelp(ctx, chatID)
	case "history":
		b.handleHistory(ctx, chatID)
	case "stats", "export":
		b.handleAdminCommand(ctx, chatID, command, args)
	default:
		b.handleUnknownCommand(ctx, chatID)
	}
}

func (b *Bot) handleStart(ctx context.Context, chatID int64) {
	b.sendMessage(tgbotapi.NewMessage(chatID, `Hi! 🌿

I turn a count of vanilla beans and a fold strength into an extract pricing worksheet: volumes, alcohol and water, prices in USD and BRL and, if you like, land and curing costs.`))
	b.handleNew(ctx, chatID)
}

func (b *Bot) handleNew(ctx context.Context, chatID int64) {
	if err := b.state.Reset(ctx, chatID, StepVariant); err != nil {
		b.logger.Error("Failed to reset state",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
	b.prompt(ctx, chatID, StepVariant)
}

func (b *Bot) handleCancel(ctx context.Context, chatID int64) {
	if err := b.state.Clear(ctx, chatID); err != nil {
		b.logger.Error("Failed to clear state on cancel",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}

	msg := tgbotapi.NewMessage(chatID, "❌ Calculation cancelled.")
	msg.ReplyMarkup = b.createResultKeyboard()
	b.sendMessage(msg)
}

func (b *Bot) handleHistory(ctx context.Context, chatID int64) {
	calcs, err := b.journal.ListCalculations(ctx, chatID, historyLimit)
	if err != nil {
		b.logger.Error("Failed to list calculations",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Could not load your calculations")
		return
	}
	b.sendMessage(tgbotapi.NewMessage(chatID, FormatHistory(calcs)))
}

func (b *Bot) handleDefault(ctx context.Context, chatID int64) {
	b.sendError(chatID, "I don't understand that. Use /new to start a calculation.")
}

func (b *Bot) handleUnknownCommand(ctx context.Context, chatID int64) {
	b.sendError(chatID, "Unknown command. Use /help to see what I can do.")
}

func (b *Bot) handleHelp(ctx context.Context, chatID int64) {
	helpText := `Commands:
/start - Welcome and a new calculation
/new - Start a new calculation
/cancel - Cancel the current calculation
/history - Your last calculations
/help - Show this help

Decimals may use a comma or a dot.`
	b.sendMessage(tgbotapi.NewMessage(chatID, helpText))
}
