package bot

import (
	"strconv"

	"vanilla-bot/internal/calculator"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BOT KEYBOARDS

const (
	btnCancel         = "❌ Cancel"
	btnNewCalculation = "🔁 New calculation"
	btnDefaultBeans   = "333"
)

func (b *Bot) createVariantKeyboard() tgbotapi.ReplyKeyboardMarkup {
	var row []tgbotapi.KeyboardButton
	for _, v := range calculator.Variants() {
		row = append(row, tgbotapi.NewKeyboardButton(v.Title()))
	}
	return tgbotapi.NewReplyKeyboard(row)
}

func (b *Bot) createValueKeyboard(values ...string) tgbotapi.ReplyKeyboardMarkup {
	var row []tgbotapi.KeyboardButton
	for _, v := range values {
		row = append(row, tgbotapi.NewKeyboardButton(v))
	}
	return tgbotapi.NewReplyKeyboard(
		row,
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
}

func (b *Bot) createFoldsKeyboard() tgbotapi.ReplyKeyboardMarkup {
	var values []string
	for _, f := range calculator.Folds() {
		values = append(values, strconv.Itoa(f))
	}
	return b.createValueKeyboard(values...)
}

func (b *Bot) createRateKeyboard(rate float64) tgbotapi.ReplyKeyboardMarkup {
	return b.createValueKeyboard(formatNumber(rate))
}

func (b *Bot) createResultKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnNewCalculation),
		),
	)
}

// createResultInlineKeyboard offers the xlsx download of a saved
// calculation and a new calculation. id 0 means nothing was saved.
func createResultInlineKeyboard(calculationID int64) tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	if calculationID != 0 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("📊 Excel", callbackExport+strconv.FormatInt(calculationID, 10)))
	}
	row = append(row, tgbotapi.NewInlineKeyboardButtonData(btnNewCalculation, callbackNew))
	return tgbotapi.NewInlineKeyboardMarkup(row)
}
