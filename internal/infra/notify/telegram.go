// internal/infra/notify/telegram.go
package notify

import (
	"context"
	"log"

	"gopkg.in/telebot.v3"

	"vessel_briefing_bot/internal/domain/briefing"
)

// MessageSender is the slice of the telebot API the notifier needs. It keeps
// the channel testable without a live bot.
type MessageSender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// TelegramNotifier is the optional third channel, enabled only when a bot
// token and chat ID are configured.
type TelegramNotifier struct {
	bot    MessageSender
	chatID int64
	logger *log.Logger
}

func NewTelegramNotifier(bot MessageSender, chatID int64, logger *log.Logger) *TelegramNotifier {
	return &TelegramNotifier{bot: bot, chatID: chatID, logger: logger}
}

func (n *TelegramNotifier) Channel() briefing.Channel {
	return briefing.ChannelTelegram
}

func (n *TelegramNotifier) Send(_ context.Context, _ string, body string) briefing.NotifyResult {
	if n.bot == nil || n.chatID == 0 {
		return failure(briefing.ChannelTelegram, "Missing Telegram chat configuration")
	}
	if _, err := n.bot.Send(&telebot.Chat{ID: n.chatID}, body); err != nil {
		n.logger.Printf("ERROR: Telegram send failed: %v", err)
		return failure(briefing.ChannelTelegram, errText(err))
	}
	return success(briefing.ChannelTelegram)
}
