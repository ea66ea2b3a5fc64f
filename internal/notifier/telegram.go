package notifier

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// TelegramNotifier delivers raised rockfall alerts to a Telegram chat.
// It is push-only: the bot sends alert messages and does not listen for
// updates.
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

// NewTelegramNotifier creates a notifier for the given bot token and chat.
// Returns (nil, nil) when the token is empty, meaning notifications are
// disabled.
func NewTelegramNotifier(token string, chatID int64, logger *zap.Logger) (*TelegramNotifier, error) {
	if token == "" {
		logger.Info("Telegram alert notifications are disabled (empty token)")
		return nil, nil
	}

	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot API: %w", err)
	}

	logger.Info("Telegram alert notifier authorized", zap.String("username", botAPI.Self.UserName))

	return &TelegramNotifier{
		api:    botAPI,
		chatID: chatID,
		logger: logger,
	}, nil
}

// NotifyAlert sends the alert message to the configured chat.
func (n *TelegramNotifier) NotifyAlert(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(n.chatID, message)
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send alert notification: %w", err)
	}

	n.logger.Info("Alert notification sent", zap.Int64("chat_id", n.chatID))
	return nil
}
