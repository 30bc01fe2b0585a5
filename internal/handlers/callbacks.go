package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"telegram-prayer-tracker/internal/checklist"
	"telegram-prayer-tracker/internal/models"
	"telegram-prayer-tracker/internal/quran"
)

func (h *Handler) HandleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	// Ack right away so the button stops spinning.
	if _, err := h.Bot.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		h.Log.Debug("callback ack failed", zap.Error(err))
	}
	if cq.Message == nil {
		return
	}
	chatID := cq.Message.Chat.ID
	messageID := cq.Message.MessageID
	data := cq.Data

	switch {
	case strings.HasPrefix(data, "toggle_"):
		h.handleToggle(ctx, chatID, messageID, strings.TrimPrefix(data, "toggle_"))

	case data == "refresh":
		h.refreshTracker(ctx, chatID, messageID)

	case data == "tilawah:update":
		h.Flow.Start(chatID)
		kb := buildSurahKeyboard(0)
		h.edit(chatID, messageID, buildSurahPickerText(0), &kb)

	case strings.HasPrefix(data, "surah:page:"):
		page, err := strconv.Atoi(strings.TrimPrefix(data, "surah:page:"))
		if err != nil {
			return
		}
		sess, ok := h.Flow.Navigate(chatID, page)
		if !ok {
			return
		}
		kb := buildSurahKeyboard(sess.Page)
		h.edit(chatID, messageID, buildSurahPickerText(sess.Page), &kb)

	case strings.HasPrefix(data, "surah:pick:"):
		n, err := strconv.Atoi(strings.TrimPrefix(data, "surah:pick:"))
		if err != nil {
			return
		}
		if _, ok := h.Flow.Choose(chatID, n); !ok {
			return
		}
		h.edit(chatID, messageID,
			fmt.Sprintf("📖 *%s* dipilih.\n\nKetik nomor ayat terakhir yang kamu baca:", quran.Name(n)), nil)

	case data == "surah:cancel":
		h.Flow.Cancel(chatID)
		h.edit(chatID, messageID, "Dibatalkan. Ketik /tilawah kalau mau update lagi.", nil)
	}
}

func (h *Handler) handleToggle(ctx context.Context, chatID int64, messageID int, prayer string) {
	day := h.today()
	rec, err := h.Store.Update(chatID, func(r *models.UserRecord) {
		st := checklist.GetOrInit(r, day)
		// Unknown names are a no-op, never an error to the user.
		if err := checklist.Toggle(st, prayer); err != nil {
			h.Log.Debug("toggle ignored", zap.String("prayer", prayer), zap.Error(err))
		}
	})
	if err != nil {
		h.send(chatID, txtStorageErr)
		return
	}
	h.renderTracker(ctx, rec, chatID, messageID)
}

func (h *Handler) refreshTracker(ctx context.Context, chatID int64, messageID int) {
	day := h.today()
	rec, err := h.Store.Update(chatID, func(r *models.UserRecord) {
		checklist.GetOrInit(r, day)
	})
	if err != nil {
		h.send(chatID, txtStorageErr)
		return
	}
	h.renderTracker(ctx, rec, chatID, messageID)
}

func (h *Handler) renderTracker(ctx context.Context, rec models.UserRecord, chatID int64, messageID int) {
	times := h.fetchTimes(ctx, rec.Location)
	st := rec.DailyChecklist[h.today()]
	kb := buildTrackerKeyboard(st)
	h.edit(chatID, messageID, buildTrackerText(st, times, h.placeLabel(rec), time.Now().In(h.loc)), &kb)
}
