package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"newsgenie/internal/assistant"
	"newsgenie/internal/news"
	"newsgenie/internal/storage"
)

const categoryCallbackPrefix = "cat:"

type Bot struct {
	api          *tgbotapi.BotAPI
	s            sender
	assistant    *assistant.Assistant
	rec          storage.Recorder // optional, feeds the daily digest
	digestChatID int64
}

func New(botToken string, asst *assistant.Assistant, rec storage.Recorder, digestChatID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:          api,
		s:            botAPISender{api: api},
		assistant:    asst,
		rec:          rec,
		digestChatID: digestChatID,
	}, nil
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.Message != nil {
			b.handleIncomingMessage(ctx, update.Message)
			continue
		}
		if update.CallbackQuery != nil {
			b.handleCallback(ctx, update.CallbackQuery)
			continue
		}
	}
}

// sessionID derives the opaque per-chat session key.
func sessionID(chatID int64) string {
	return fmt.Sprintf("tg-%d", chatID)
}

func (b *Bot) handleIncomingMessage(ctx context.Context, msg *tgbotapi.Message) {
	log.Printf("incoming message from chat %d: %q", msg.Chat.ID, msg.Text)

	switch msg.Command() {
	case "start":
		b.sendWelcome(msg.Chat.ID)
		return
	case "news":
		b.sendCategoryKeyboard(msg.Chat.ID)
		return
	case "history":
		b.sendHistory(msg.Chat.ID)
		return
	case "clear":
		b.clearHistory(msg.Chat.ID)
		return
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		b.sendMessage(msg.Chat.ID, "Please enter a question or pick a news category with /news.")
		return
	}

	response := b.assistant.Process(ctx, text, sessionID(msg.Chat.ID), "")
	b.sendMessage(msg.Chat.ID, response)
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if !strings.HasPrefix(cb.Data, categoryCallbackPrefix) {
		return
	}
	category := strings.TrimPrefix(cb.Data, categoryCallbackPrefix)
	if !news.ValidCategory(category) {
		log.Printf("callback with unknown category %q", category)
		return
	}

	// Category-only request: empty query, explicit category.
	response := b.assistant.Process(ctx, "", sessionID(cb.Message.Chat.ID), category)
	b.sendMessage(cb.Message.Chat.ID, response)
}

func (b *Bot) sendWelcome(chatID int64) {
	b.sendMessage(chatID, "Hi! I am NewsGenie. Ask me anything, tell me to search the web, "+
		"or pick a news category with /news. Use /history to review this chat and /clear to start over.")
}

func (b *Bot) sendCategoryKeyboard(chatID int64) {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for i, c := range news.Categories {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(news.TitleCase(c), categoryCallbackPrefix+c))
		if (i+1)%3 == 0 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	msg := tgbotapi.NewMessage(chatID, "Pick a news category:")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send category keyboard: %v", err)
	}
}

func (b *Bot) sendHistory(chatID int64) {
	interactions, err := b.assistant.History(sessionID(chatID), assistant.HistoryDisplayLimit)
	if err != nil {
		log.Printf("failed to load history for chat %d: %v", chatID, err)
		b.sendMessage(chatID, "Could not load session history.")
		return
	}
	if len(interactions) == 0 {
		b.sendMessage(chatID, "No history yet. Your recent queries and news updates will appear here.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Session history (newest first):\n")
	for _, in := range interactions {
		label := in.Query
		if label == "" {
			label = "(category request)"
		}
		fmt.Fprintf(&sb, "\n%s [%s] %s", in.Timestamp.Local().Format("2006-01-02 15:04"), in.Route, label)
	}
	b.sendMessage(chatID, sb.String())
}

func (b *Bot) clearHistory(chatID int64) {
	if err := b.assistant.ClearSession(sessionID(chatID)); err != nil {
		log.Printf("failed to clear session for chat %d: %v", chatID, err)
		b.sendMessage(chatID, "Could not clear session history.")
		return
	}
	b.sendMessage(chatID, "Session history cleared.")
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}
