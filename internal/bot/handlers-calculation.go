package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"vanilla-bot/internal/calculator"
	"vanilla-bot/internal/report"
	"vanilla-bot/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	callbackExport = "xlsx:"
	callbackNew    = "new"
	actionCalc     = "calc"
)

// stepForField maps a rejected calculator field back to the dialog step
// that asks for it.
var stepForField = map[string]string{
	calculator.FieldVariant:   StepVariant,
	calculator.FieldBeanCount: StepBeanCount,
	calculator.FieldFolds:     StepFolds,
	calculator.FieldBasePrice: StepBasePrice,
	calculator.FieldUSDToBRL:  StepUSDToBRL,
	calculator.FieldEURToUSD:  StepEURToUSD,
	calculator.FieldEURToBRL:  StepEURToBRL,
}

func (b *Bot) calculate(ctx context.Context, chatID int64, state UserState) {
	limited, err := b.journal.CheckRateLimit(ctx, chatID, actionCalc, b.cfg.Limits.CalcRateLimit, b.cfg.Limits.CalcRateWindow)
	if err != nil {
		b.logger.Warn("Rate limit check failed",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
	if limited {
		b.sendError(chatID, "Too many calculations, please wait a minute and send the value again")
		return
	}

	res, err := b.calc.Calculate(state.Input())
	if err != nil {
		b.logger.Info("Calculation rejected",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, err.Error())

		step, ok := stepForField[calculator.Field(err)]
		if !ok {
			step = StepVariant
		}
		b.prompt(ctx, chatID, step)
		return
	}

	id, err := b.journal.SaveCalculation(ctx, storage.NewCalculation(chatID, res))
	if err != nil {
		b.logger.Error("Failed to save calculation",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}

	msg := tgbotapi.NewMessage(chatID, FormatResult(res))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = createResultInlineKeyboard(id)
	b.sendMessage(msg)

	done := tgbotapi.NewMessage(chatID, "Done! Start again any time.")
	done.ReplyMarkup = b.createResultKeyboard()
	b.sendMessage(done)

	if _, err := b.state.Update(ctx, chatID, func(s *UserState) {
		s.Step = StepDone
		s.LastCalculationID = id
	}); err != nil {
		b.logger.Error("Failed to finish dialog",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}

	b.logger.Info("Calculation completed",
		zap.Int64("chat_id", chatID),
		zap.Int64("calculation_id", id),
		zap.String("variant", res.Input.Variant.String()),
		zap.Int("beans", res.Input.BeanCount),
		zap.Int("folds", res.Input.Folds),
		zap.Float64("price_usd", res.PriceUSD))
}

func (b *Bot) handleExportCallback(ctx context.Context, chatID int64, data string) {
	id, err := strconv.ParseInt(data, 10, 64)
	if err != nil {
		b.sendError(chatID, "Unknown calculation")
		return
	}
	b.sendWorksheet(ctx, chatID, id)
}

// sendWorksheet recomputes calculation id and sends it as an xlsx file.
// Only the owner chat and admins may fetch a calculation.
func (b *Bot) sendWorksheet(ctx context.Context, chatID int64, id int64) {
	c, err := b.journal.GetCalculation(ctx, id)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			b.logger.Error("Failed to get calculation",
				zap.Int64("calculation_id", id),
				zap.Error(err))
		}
		b.sendError(chatID, "Calculation not found")
		return
	}
	if c.ChatID != chatID && !b.cfg.IsAdmin(chatID) {
		b.sendError(chatID, "Calculation not found")
		return
	}

	res, err := b.calc.Calculate(c.Input())
	if err != nil {
		b.logger.Error("Stored calculation no longer valid",
			zap.Int64("calculation_id", id),
			zap.Error(err))
		b.sendError(chatID, "This calculation can no longer be exported")
		return
	}

	data, err := report.WorksheetBytes(res)
	if err != nil {
		b.logger.Error("Failed to build worksheet",
			zap.Int64("calculation_id", id),
			zap.Error(err))
		b.sendError(chatID, "Failed to build the Excel file")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("vanilla_worksheet_%d.xlsx", id),
		Bytes: data,
	})
	doc.Caption = fmt.Sprintf("📊 Worksheet #%d", id)
	if _, err := b.sender.Send(doc); err != nil {
		b.logger.Error("Failed to send worksheet",
			zap.Int64("chat_id", chatID),
			zap.Int64("calculation_id", id),
			zap.Error(err))
	}
}
