package handlers

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"telegram-prayer-tracker/internal/models"
	"telegram-prayer-tracker/internal/quran"
)

// HandleText consumes free-form input, which only matters mid-flow:
// the typed ayah number after a surah was picked.
func (h *Handler) HandleText(_ context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	sess, ok := h.Flow.Active(chatID)
	if !ok {
		return
	}

	switch sess.Stage {
	case models.StageChoosingSurah:
		h.send(chatID, "Pilih surah lewat tombol dulu ya, atau /batal.")

	case models.StageAwaitingAyah:
		surah, ayah, err := h.Flow.SubmitAyah(chatID, msg.Text)
		if err != nil {
			// Self-loop: session stays, user retries.
			h.send(chatID, "Ketik angka ayat yang benar ya (contoh: 12), atau /batal.")
			return
		}
		if _, err := h.Store.Update(chatID, func(r *models.UserRecord) {
			r.Reading.LastPosition = models.ReadingPosition{Surah: surah, Ayah: ayah}
			r.Reading.UpdatedAt = time.Now().Unix()
		}); err != nil {
			h.send(chatID, txtStorageErr)
			return
		}
		h.sendMarkdown(chatID,
			fmt.Sprintf("✅ Posisi tilawah disimpan: *%s* ayat %d. Barakallahu fiik! 🤲", quran.Name(surah), ayah), nil)
	}
}

// HandleLocation stores a shared location, reverse-geocoded to a place label
// when the geocoder is reachable.
func (h *Handler) HandleLocation(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	lat := msg.Location.Latitude
	lon := msg.Location.Longitude

	label, err := h.Times.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		// Keep the coordinates anyway; schedules work without a label.
		h.Log.Warn("reverse geocode failed", zap.Int64("chat_id", chatID), zap.Error(err))
		label = ""
	}

	if _, err := h.Store.Update(chatID, func(r *models.UserRecord) {
		r.Location = &models.Location{Latitude: lat, Longitude: lon, PlaceLabel: label}
	}); err != nil {
		h.send(chatID, txtStorageErr)
		return
	}

	text := "📍 Lokasi disimpan. Jadwal solat sekarang pakai lokasimu."
	if label != "" {
		text = fmt.Sprintf("📍 Lokasi disimpan: %s. Jadwal solat sekarang pakai lokasimu.", label)
	}
	reply := tgbotapi.NewMessage(chatID, text)
	reply.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	if _, err := h.Bot.Send(reply); err != nil {
		h.Log.Warn("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
