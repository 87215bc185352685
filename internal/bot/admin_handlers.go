package bot

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"vanilla-bot/internal/report"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (b *Bot) handleAdminCommand(ctx context.Context, chatID int64, cmd string, args []string) {
	if !b.cfg.IsAdmin(chatID) {
		b.handleUnknownCommand(ctx, chatID)
		return
	}

	switch cmd {
	case "export":
		if len(args) == 0 {
			b.handleExportAll(ctx, chatID)
			return
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			b.sendError(chatID, "Invalid calculation ID")
			return
		}
		b.sendWorksheet(ctx, chatID, id)
	case "stats":
		b.handleStats(ctx, chatID)
	}
}

func (b *Bot) handleStats(ctx context.Context, chatID int64) {
	stats, err := b.journal.GetStatistics(ctx)
	if err != nil {
		b.logger.Error("Failed to get statistics", zap.Error(err))
		b.sendError(chatID, "Failed to load statistics")
		return
	}
	b.sendMessage(tgbotapi.NewMessage(chatID, FormatStatistics(stats)))
}

// handleExportAll sends the whole journal and keeps a copy in the reports
// directory.
func (b *Bot) handleExportAll(ctx context.Context, chatID int64) {
	calcs, err := b.journal.ListAllCalculations(ctx)
	if err != nil {
		b.logger.Error("Failed to fetch calculations", zap.Error(err))
		b.sendError(chatID, "Failed to export calculations")
		return
	}

	name := fmt.Sprintf("calculations_%s", time.Now().Format("20060102_1504"))
	if path, err := report.SaveJournal(b.cfg.ReportsDir, name, calcs); err != nil {
		b.logger.Warn("Failed to save journal copy", zap.Error(err))
	} else {
		b.logger.Info("Journal exported", zap.String("path", path), zap.Int("rows", len(calcs)))
	}

	var buf bytes.Buffer
	if err := report.WriteJournal(&buf, calcs); err != nil {
		b.logger.Error("Failed to build journal", zap.Error(err))
		b.sendError(chatID, "Failed to export calculations")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name + ".xlsx", Bytes: buf.Bytes()})
	doc.Caption = fmt.Sprintf("📊 %d calculations", len(calcs))
	if _, err := b.sender.Send(doc); err != nil {
		b.logger.Error("Failed to send Excel file", zap.Error(err))
		b.sendError(chatID, "Failed to send exported file")
	}
}
