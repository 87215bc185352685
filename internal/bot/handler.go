package bot

import (
	"context"
	"fmt"
	"math"

	"vanilla-bot/internal/calculator"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// prompt asks the question of step and moves the chat to it.
func (b *Bot) prompt(ctx context.Context, chatID int64, step string) {
	var msg tgbotapi.MessageConfig

	switch step {
	case StepVariant:
		msg = tgbotapi.NewMessage(chatID, "Which worksheet do you need?\n\n"+
			"Basic: you set the extract price per ounce\n"+
			"Priced: price per ounce follows the fold level\n"+
			"Extended: priced plus land, curing and producer costs")
		msg.ReplyMarkup = b.createVariantKeyboard()
	case StepBeanCount:
		msg = tgbotapi.NewMessage(chatID, "How many vanilla beans do you have?")
		msg.ReplyMarkup = b.createValueKeyboard(btnDefaultBeans)
	case StepFolds:
		msg = tgbotapi.NewMessage(chatID, "How many folds should the extract be?")
		msg.ReplyMarkup = b.createFoldsKeyboard()
	case StepBasePrice:
		msg = tgbotapi.NewMessage(chatID, "Base price of the extract per ounce, in USD:")
		p, _ := calculator.FoldPrice(calculator.ReferenceFold)
		msg.ReplyMarkup = b.createValueKeyboard(formatNumber(p))
	case StepUSDToBRL:
		msg = tgbotapi.NewMessage(chatID, "USD → BRL exchange rate:")
		msg.ReplyMarkup = b.createRateKeyboard(b.defaultRate(ctx, "USD", "BRL", b.cfg.Rates.DefaultUSDToBRL, b.cfg.Rates.MinRate))
	case StepEURToUSD:
		msg = tgbotapi.NewMessage(chatID, "EUR → USD exchange rate:")
		msg.ReplyMarkup = b.createRateKeyboard(b.defaultRate(ctx, "EUR", "USD", b.cfg.Rates.DefaultEURToUSD, 0))
	case StepEURToBRL:
		msg = tgbotapi.NewMessage(chatID, "EUR → BRL exchange rate:")
		msg.ReplyMarkup = b.createRateKeyboard(b.defaultRate(ctx, "EUR", "BRL", b.cfg.Rates.DefaultEURToBRL, b.cfg.Rates.MinRate))
	default:
		b.logger.Error("Prompt for unknown step", zap.String("step", step))
		return
	}

	b.sendMessage(msg)
	if err := b.state.SetStep(ctx, chatID, step); err != nil {
		b.logger.Error("Failed to set step",
			zap.Int64("chat_id", chatID),
			zap.String("step", step),
			zap.Error(err))
	}
}

// update stores an answer and returns the new state. Failures are
// reported to the chat.
func (b *Bot) update(ctx context.Context, chatID int64, fn func(*UserState)) (UserState, bool) {
	state, err := b.state.Update(ctx, chatID, fn)
	if err != nil {
		b.logger.Error("Failed to save answer",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Could not save your answer, please try again")
		return UserState{}, false
	}
	return state, true
}

func (b *Bot) handleVariant(ctx context.Context, chatID int64, text string) {
	variant, err := calculator.ParseVariant(text)
	if err != nil {
		b.sendError(chatID, "Please choose Basic, Priced or Extended")
		return
	}

	if _, ok := b.update(ctx, chatID, func(s *UserState) {
		*s = UserState{Variant: variant.String()}
	}); !ok {
		return
	}
	b.prompt(ctx, chatID, StepBeanCount)
}

func (b *Bot) handleBeanCount(ctx context.Context, chatID int64, text string) {
	beans, err := ParseBeanCount(text)
	if err != nil {
		b.sendError(chatID, err.Error())
		return
	}

	if _, ok := b.update(ctx, chatID, func(s *UserState) { s.BeanCount = beans }); !ok {
		return
	}
	b.prompt(ctx, chatID, StepFolds)
}

func (b *Bot) handleFolds(ctx context.Context, chatID int64, text string) {
	folds, err := ParseFolds(text)
	if err != nil {
		b.sendError(chatID, err.Error())
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

	variant := calculator.Variant(state.Variant)
	if variant != calculator.Basic {
		if _, ok := calculator.FoldPrice(folds); !ok {
			b.sendError(chatID, fmt.Sprintf("%s worksheets only have prices for 1, 2 or 3 folds", variant.Title()))
			return
		}
	}

	if _, ok := b.update(ctx, chatID, func(s *UserState) { s.Folds = folds }); !ok {
		return
	}

	if variant == calculator.Basic {
		b.prompt(ctx, chatID, StepBasePrice)
		return
	}
	b.prompt(ctx, chatID, StepUSDToBRL)
}

func (b *Bot) handleBasePrice(ctx context.Context, chatID int64, text string) {
	price, err := ParseDecimal(text)
	if err != nil {
		b.sendError(chatID, err.Error())
		return
	}
	if price < 0 {
		b.sendError(chatID, "The price cannot be negative")
		return
	}

	if _, ok := b.update(ctx, chatID, func(s *UserState) { s.BasePrice = &price }); !ok {
		return
	}
	b.prompt(ctx, chatID, StepUSDToBRL)
}

func (b *Bot) handleUSDToBRL(ctx context.Context, chatID int64, text string) {
	rate, ok := b.parseRate(chatID, text, b.cfg.Rates.MinRate)
	if !ok {
		return
	}

	state, ok := b.update(ctx, chatID, func(s *UserState) { s.USDToBRL = rate })
	if !ok {
		return
	}

	if calculator.Variant(state.Variant) == calculator.Extended {
		b.prompt(ctx, chatID, StepEURToUSD)
		return
	}
	b.calculate(ctx, chatID, state)
}

func (b *Bot) handleEURToUSD(ctx context.Context, chatID int64, text string) {
	rate, ok := b.parseRate(chatID, text, 0)
	if !ok {
		return
	}

	if _, ok := b.update(ctx, chatID, func(s *UserState) { s.EURToUSD = rate }); !ok {
		return
	}
	b.prompt(ctx, chatID, StepEURToBRL)
}

func (b *Bot) handleEURToBRL(ctx context.Context, chatID int64, text string) {
	rate, ok := b.parseRate(chatID, text, b.cfg.Rates.MinRate)
	if !ok {
		return
	}

	state, ok := b.update(ctx, chatID, func(s *UserState) { s.EURToBRL = rate })
	if !ok {
		return
	}
	b.calculate(ctx, chatID, state)
}

// defaultRate offers the live rate when a rate source is configured and
// the rate is at least min, otherwise fallback.
func (b *Bot) defaultRate(ctx context.Context, from, to string, fallback, min float64) float64 {
	if b.rates == nil {
		return fallback
	}

	rate, err := b.rates.LatestRate(ctx, from, to)
	if err != nil {
		b.logger.Warn("Failed to fetch exchange rate, using default",
			zap.String("from", from),
			zap.String("to", to),
			zap.Error(err))
		return fallback
	}
	rate = math.Round(rate*100) / 100
	if rate <= 0 || rate < min {
		return fallback
	}
	return rate
}

// parseRate accepts a positive rate of at least min. Only the BRL rates
// carry a minimum.
func (b *Bot) parseRate(chatID int64, text string, min float64) (float64, bool) {
	rate, err := ParseDecimal(text)
	if err != nil {
		b.sendError(chatID, err.Error())
		return 0, false
	}
	if rate <= 0 {
		b.sendError(chatID, "The exchange rate must be positive")
		return 0, false
	}
	if rate < min {
		b.sendError(chatID, fmt.Sprintf("The exchange rate must be at least %s", formatNumber(min)))
		return 0, false
	}
	return rate, true
}
