// Package notify delivers triggered kitchen alerts to a Telegram channel so
// staff away from the dashboard still hear about new orders.
package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type TelegramAlerter struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramAlerter(token string, chatID int64) (*TelegramAlerter, error) {
	if token == "" || chatID == 0 {
		return nil, fmt.Errorf("kitchen bot token and chat id are required")
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &TelegramAlerter{api: api, chatID: chatID}, nil
}

// Alert implements services.Alerter.
func (t *TelegramAlerter) Alert(_ context.Context, reason string) error {
	msg := tgbotapi.NewMessage(t.chatID, "🔔 New Order Alert!\n"+reason)
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("send kitchen alert: %w", err)
	}
	return nil
}
