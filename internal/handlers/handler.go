package handlers

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"telegram-prayer-tracker/internal/config"
	"telegram-prayer-tracker/internal/prayertimes"
	"telegram-prayer-tracker/internal/scheduler"
	"telegram-prayer-tracker/internal/selection"
	"telegram-prayer-tracker/internal/storage"
)

type Handler struct {
	Bot   *tgbotapi.BotAPI
	Store *storage.Store
	Times *prayertimes.Client
	Sched *scheduler.Scheduler
	Flow  *selection.Manager
	Log   *zap.Logger

	city    string
	country string
	loc     *time.Location
}

func New(bot *tgbotapi.BotAPI, store *storage.Store, times *prayertimes.Client,
	sched *scheduler.Scheduler, flow *selection.Manager, log *zap.Logger,
	cfg config.Config, loc *time.Location) *Handler {
	return &Handler{
		Bot:     bot,
		Store:   store,
		Times:   times,
		Sched:   sched,
		Flow:    flow,
		Log:     log,
		city:    cfg.City,
		country: cfg.Country,
		loc:     loc,
	}
}

// HandleUpdate routes one Telegram update.
func (h *Handler) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	switch {
	case upd.Message != nil:
		msg := upd.Message
		if msg.Location != nil {
			h.HandleLocation(ctx, msg)
			return
		}
		if msg.IsCommand() {
			h.HandleCommand(ctx, msg)
			return
		}
		h.HandleText(ctx, msg)

	case upd.CallbackQuery != nil:
		h.HandleCallback(ctx, upd.CallbackQuery)
	}
}

func (h *Handler) today() string {
	return time.Now().In(h.loc).Format("2006-01-02")
}

func (h *Handler) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.Bot.Send(msg); err != nil {
		h.Log.Warn("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (h *Handler) sendMarkdown(chatID int64, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if kb != nil {
		msg.ReplyMarkup = *kb
	}
	if _, err := h.Bot.Send(msg); err != nil {
		h.Log.Warn("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (h *Handler) edit(chatID int64, messageID int, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	var cfg tgbotapi.EditMessageTextConfig
	if kb != nil {
		cfg = tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, *kb)
	} else {
		cfg = tgbotapi.NewEditMessageText(chatID, messageID, text)
	}
	cfg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := h.Bot.Request(cfg); err != nil {
		h.Log.Warn("edit failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
