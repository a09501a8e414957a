package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier sends degradation alerts to a Telegram chat.
// Alerts for the same reason are suppressed within the cooldown window
// to stay under Telegram's per-chat rate limit.
type TelegramNotifier struct {
	bot      *tgbotapi.BotAPI
	chatID   int64
	cooldown time.Duration

	mu       sync.Mutex
	lastSent map[string]time.Time
}

// NewTelegramNotifier creates a notifier and verifies the bot token.
// Returns nil on any setup failure; a nil notifier is a valid no-op.
func NewTelegramNotifier(token string, chatID int64, cooldown time.Duration) *TelegramNotifier {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		slog.Error("Failed to create telegram bot", "error", err)
		return nil
	}

	bot.Debug = false

	if _, err := bot.GetMe(); err != nil {
		slog.Error("Failed to get bot info", "error", err)
		return nil
	}

	return &TelegramNotifier{
		bot:      bot,
		chatID:   chatID,
		cooldown: cooldown,
		lastSent: make(map[string]time.Time),
	}
}

// NotifyDegraded sends an alert unless the same reason fired within the
// cooldown window.
func (n *TelegramNotifier) NotifyDegraded(ctx context.Context, reason string) {
	if n == nil {
		return
	}

	n.mu.Lock()
	last, seen := n.lastSent[reason]
	now := time.Now()
	if seen && now.Sub(last) < n.cooldown {
		n.mu.Unlock()
		return
	}
	n.lastSent[reason] = now
	n.mu.Unlock()

	text := fmt.Sprintf("⚠️ betboard degraded: %s\n%s", reason, now.UTC().Format(time.RFC3339))
	msg := tgbotapi.NewMessage(n.chatID, text)

	if _, err := n.bot.Send(msg); err != nil {
		slog.Error("Failed to send telegram alert", "error", err, "reason", reason)
	}
}
