package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
	"github.com/portfolio/backend/internal/model"
)

// botSender is the part of *tgbotapi.BotAPI used here.
type botSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram pings the site owner's chat when a contact message arrives.
type Telegram struct {
	bot    botSender
	chatID int64
}

var _ Notifier = (*Telegram)(nil)

// NewTelegram authorises the bot with token. With an empty token or chat id the
// returned notifier is unconfigured and never touches the network.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	if token == "" || chatID == 0 {
		return &Telegram{}, nil
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: init bot: %w", err)
	}
	return &Telegram{bot: api, chatID: chatID}, nil
}

func (t *Telegram) Notify(_ context.Context, msg *model.ContactMessage) error {
	if t.bot == nil {
		return ErrNotConfigured
	}
	text := fmt.Sprintf("New portfolio message\n\nFrom: %s <%s>\n\n%s", msg.Name, msg.Email, msg.Message)
	if _, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, text)); err != nil {
		return fmt.Errorf("telegram: send: %w", err)
	}
	return nil
}
