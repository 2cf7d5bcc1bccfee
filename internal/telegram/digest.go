package telegram

import (
	"context"
	"fmt"
	"log"
	"time"

	"newsgenie/internal/analytics"
)

// SendDailyDigest pushes yesterday's usage stats plus today's general
// headlines to the configured digest chat. Wired into the cron
// scheduler from cmd/bot.
func (b *Bot) SendDailyDigest(ctx context.Context) error {
	if b.digestChatID == 0 {
		log.Println("digest chat not configured, skipping daily digest")
		return nil
	}
	if b.rec == nil {
		return fmt.Errorf("audit recorder not configured")
	}

	events, err := b.rec.LoadInteractions()
	if err != nil {
		return fmt.Errorf("load audit events: %w", err)
	}

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	stats := analytics.AnalyzeDailyLogs(events, yesterday)

	headlines := b.assistant.Headlines(ctx, "general")

	text := stats.GenerateReportSummary() + "\n" + headlines
	b.sendMessage(b.digestChatID, text)
	return nil
}
