package notify

import (
	"fmt"
	"sync"

	"gitremind/internal/domain/alert"

	"gopkg.in/telebot.v3"
)

// TelegramNotifier delivers alerts to a single chat. Showing an alert for an
// id that already has a visible message deletes the old message first, so
// the chat carries at most one live alert per reminder.
type TelegramNotifier struct {
	bot    *telebot.Bot
	chatID int64

	mu   sync.Mutex
	sent map[string]*telebot.Message // alert id -> last delivered message
}

func NewTelegramNotifier(bot *telebot.Bot, chatID int64) *TelegramNotifier {
	return &TelegramNotifier{
		bot:    bot,
		chatID: chatID,
		sent:   make(map[string]*telebot.Message),
	}
}

func (t *TelegramNotifier) Show(a alert.Alert) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if prev, ok := t.sent[a.ID]; ok {
		// Best effort; the user may have removed the message already.
		_ = t.bot.Delete(prev)
		delete(t.sent, a.ID)
	}

	marker := "⏰"
	if a.Urgency == alert.UrgencyCritical {
		marker = "🚨"
	}
	text := fmt.Sprintf("%s %s", marker, a.Title)
	if a.Body != "" {
		text += "\n\n" + a.Body
	}

	recipient := &telebot.User{ID: t.chatID}
	opts := &telebot.SendOptions{DisableNotification: !a.Sound}
	msg, err := t.bot.Send(recipient, text, opts)
	if err != nil {
		return fmt.Errorf("failed to send alert %s: %w", a.ID, err)
	}
	t.sent[a.ID] = msg
	return nil
}

func (t *TelegramNotifier) Dismiss(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if prev, ok := t.sent[id]; ok {
		_ = t.bot.Delete(prev)
		delete(t.sent, id)
	}
}
