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
	"telegram-prayer-tracker/internal/scheduler"
)

const (
	txtStorageErr    = "Waduh, ada gangguan. Coba lagi nanti ya 🙏"
	txtScheduleErr   = "Gagal ambil jadwal solat. Coba lagi nanti."
	txtRemindersErr  = "Gagal setup pengingat. Coba lagi nanti."
	txtBadTarget     = "Formatnya: /target 20 (jumlah ayat per hari, 0 untuk hapus)"
	txtBadClock      = "Formatnya: /ingatkan_tilawah 05:30"
	txtShareLocation = "Bagikan lokasimu supaya jadwal solat sesuai tempatmu 👇"
)

func (h *Handler) HandleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		h.send(chatID, startText)
	case "solat":
		h.handleSolat(ctx, chatID)
	case "jadwal":
		h.handleJadwal(ctx, chatID)
	case "rekap":
		h.handleRekap(chatID)
	case "ingatkan":
		h.handleIngatkan(ctx, chatID)
	case "lokasi":
		h.handleLokasi(chatID)
	case "tilawah":
		h.handleTilawah(chatID)
	case "target":
		h.handleTarget(chatID, msg.CommandArguments())
	case "ingatkan_tilawah":
		h.handleReadingReminder(chatID, msg.CommandArguments())
	case "batal":
		h.handleBatal(chatID)
	}
}

// fetchTimes gets today's schedule for the user's stored location, falling
// back to the configured city. Failures degrade to nil ("-" in the UI).
func (h *Handler) fetchTimes(ctx context.Context, loc *models.Location) map[string]string {
	times, err := h.Times.FetchTimes(ctx, time.Now().In(h.loc), loc, h.city, h.country)
	if err != nil {
		h.Log.Warn("fetch times failed", zap.Error(err))
		return nil
	}
	return times
}

func (h *Handler) placeLabel(rec models.UserRecord) string {
	if rec.Location != nil && rec.Location.PlaceLabel != "" {
		return rec.Location.PlaceLabel
	}
	return h.city
}

func (h *Handler) handleSolat(ctx context.Context, chatID int64) {
	day := h.today()
	rec, err := h.Store.Update(chatID, func(r *models.UserRecord) {
		checklist.GetOrInit(r, day)
	})
	if err != nil {
		h.Log.Error("load record failed", zap.Int64("chat_id", chatID), zap.Error(err))
		h.send(chatID, txtStorageErr)
		return
	}

	times := h.fetchTimes(ctx, rec.Location)
	st := rec.DailyChecklist[day]
	kb := buildTrackerKeyboard(st)
	h.sendMarkdown(chatID, buildTrackerText(st, times, h.placeLabel(rec), time.Now().In(h.loc)), &kb)
}

func (h *Handler) handleJadwal(ctx context.Context, chatID int64) {
	rec, _, err := h.Store.Get(chatID)
	if err != nil {
		h.send(chatID, txtStorageErr)
		return
	}
	times, fetchErr := h.Times.FetchTimes(ctx, time.Now().In(h.loc), rec.Location, h.city, h.country)
	if fetchErr != nil {
		h.Log.Warn("fetch times failed", zap.Error(fetchErr))
		h.send(chatID, txtScheduleErr)
		return
	}
	h.sendMarkdown(chatID, buildScheduleText(times, h.placeLabel(rec), time.Now().In(h.loc)), nil)
}

func (h *Handler) handleRekap(chatID int64) {
	day := h.today()
	rec, err := h.Store.Update(chatID, func(r *models.UserRecord) {
		checklist.GetOrInit(r, day)
	})
	if err != nil {
		h.send(chatID, txtStorageErr)
		return
	}
	h.sendMarkdown(chatID, buildRekapText(checklist.Summarize(rec.DailyChecklist[day])), nil)
}

func (h *Handler) handleIngatkan(ctx context.Context, chatID int64) {
	rec, _, err := h.Store.Get(chatID)
	if err != nil {
		h.send(chatID, txtStorageErr)
		return
	}
	times, fetchErr := h.Times.FetchTimes(ctx, time.Now().In(h.loc), rec.Location, h.city, h.country)
	if fetchErr != nil {
		h.Log.Warn("fetch times failed", zap.Error(fetchErr))
		h.send(chatID, txtRemindersErr)
		return
	}

	scheduled, err := h.Sched.ScheduleEventReminders(chatID, times, h.SendPrayerReminder)
	if err != nil {
		h.Log.Warn("schedule reminders failed", zap.Int64("chat_id", chatID), zap.Error(err))
		h.send(chatID, txtRemindersErr)
		return
	}
	if len(scheduled) == 0 {
		h.send(chatID, "Semua waktu solat hari ini sudah lewat. Coba lagi besok!")
		return
	}

	var lines []string
	for _, p := range scheduled {
		lines = append(lines, fmt.Sprintf("%s %s (%s)", checklist.Emoji[p], p, times[p]))
	}
	h.send(chatID, "✅ Pengingat solat aktif untuk hari ini!\n\n"+strings.Join(lines, "\n"))
}

func (h *Handler) handleLokasi(chatID int64) {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonLocation("📍 Bagikan lokasi"),
		),
	)
	kb.OneTimeKeyboard = true
	msg := tgbotapi.NewMessage(chatID, txtShareLocation)
	msg.ReplyMarkup = kb
	if _, err := h.Bot.Send(msg); err != nil {
		h.Log.Warn("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (h *Handler) handleTilawah(chatID int64) {
	rec, _, err := h.Store.Get(chatID)
	if err != nil {
		h.send(chatID, txtStorageErr)
		return
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📖 Update posisi", "tilawah:update"),
		),
	)
	h.sendMarkdown(chatID, buildReadingText(rec), &kb)
}

func (h *Handler) handleTarget(chatID int64, args string) {
	n, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil || n < 0 {
		h.send(chatID, txtBadTarget)
		return
	}
	if _, err := h.Store.Update(chatID, func(r *models.UserRecord) {
		r.Reading.DailyTarget = n
	}); err != nil {
		h.send(chatID, txtStorageErr)
		return
	}
	if n == 0 {
		h.send(chatID, "Target harian dihapus.")
		return
	}
	h.send(chatID, fmt.Sprintf("🎯 Target harian diset: %d ayat. Semangat!", n))
}

func (h *Handler) handleReadingReminder(chatID int64, args string) {
	at := strings.TrimSpace(args)
	if _, _, err := scheduler.ParseClock(at); err != nil {
		h.send(chatID, txtBadClock)
		return
	}
	// Persist the intent first so it survives a restart, then register.
	if _, err := h.Store.Update(chatID, func(r *models.UserRecord) {
		r.Reading.ReminderAt = at
	}); err != nil {
		h.send(chatID, txtStorageErr)
		return
	}
	if err := h.Sched.ScheduleReadingReminder(chatID, at, h.SendReadingReminder); err != nil {
		h.Log.Warn("schedule reading reminder failed", zap.Int64("chat_id", chatID), zap.Error(err))
		h.send(chatID, txtRemindersErr)
		return
	}
	h.send(chatID, fmt.Sprintf("⏰ Oke, aku ingatkan tilawah tiap hari jam %s.", at))
}

func (h *Handler) handleBatal(chatID int64) {
	if h.Flow.Cancel(chatID) {
		h.send(chatID, "Oke, dibatalkan.")
		return
	}
	h.send(chatID, "Tidak ada yang perlu dibatalkan.")
}
