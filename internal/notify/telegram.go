// Package notify delivers rendered reminders.
package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// chattableSender is the part of *tgbotapi.BotAPI used for delivery.
type chattableSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramSender posts reminders to a single chat as HTML messages.
type TelegramSender struct {
	api    chattableSender
	chatID int64
}

// NewTelegramSender authorizes the bot token and targets chatID.
func NewTelegramSender(token string, chatID int64, log zerolog.Logger) (*TelegramSender, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Info().Str("account", api.Self.UserName).Int64("chat_id", chatID).Msg("telegram bot authorized")

	return &TelegramSender{api: api, chatID: chatID}, nil
}

func (s *TelegramSender) Send(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(s.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := s.api.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}
