// Package api provides clients for external messaging APIs
package api

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/abelzeko/dino-velocity/internal/entities"
)

// maxMessageLength is the Telegram limit for a text message.
const maxMessageLength = 4096

// TelegramNotifier sends rankings to a Telegram chat
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	log    *zap.SugaredLogger
}

// NewTelegramNotifier authorizes the bot token and creates a notifier for chatID.
// An empty apiEndpoint uses the public Bot API.
func NewTelegramNotifier(botToken string, chatID int64, apiEndpoint string, log *zap.Logger) (*TelegramNotifier, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if apiEndpoint == "" {
		apiEndpoint = tgbotapi.APIEndpoint
	}

	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(botToken, apiEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	n := &TelegramNotifier{
		bot:    bot,
		chatID: chatID,
		log:    log.Sugar(),
	}
	n.log.Infof("Authorized on Telegram account %s", bot.Self.UserName)
	return n, nil
}

// NotifyRanking sends the ranking as a single message
func (t *TelegramNotifier) NotifyRanking(ctx context.Context, stance string, ranking []entities.Dinosaur) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(t.chatID, FormatRanking(stance, ranking))
	t.log.Infof("Sending ranking of %d %s dinosaurs to chat %d", len(ranking), stance, t.chatID)
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send ranking to chat %d: %w", t.chatID, err)
	}
	return nil
}

// FormatRanking formats a ranking for display, one numbered line per
// dinosaur, truncated to fit a single Telegram message.
func FormatRanking(stance string, ranking []entities.Dinosaur) string {
	if len(ranking) == 0 {
		return fmt.Sprintf("No %s dinosaurs found.", stance)
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("🦖 Fastest %s dinosaurs:\n\n", stance))

	for i, d := range ranking {
		name := d.Name().String
		if !d.Name().Valid {
			name = "(unnamed)"
		}
		line := fmt.Sprintf("%d. %s (%s)\n", i+1, name, d.Velocity())

		more := fmt.Sprintf("…and %d more\n", len(ranking)-i)
		if result.Len()+len(line)+len(more) > maxMessageLength {
			result.WriteString(more)
			break
		}
		result.WriteString(line)
	}

	return strings.TrimSuffix(result.String(), "\n")
}
