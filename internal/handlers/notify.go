package handlers

import (
	"fmt"

	"go.uber.org/zap"

	"telegram-prayer-tracker/internal/checklist"
	"telegram-prayer-tracker/internal/quran"
)

// SendPrayerReminder fires from a one-shot timer. It gets only the chat and
// prayer name and composes everything else from config.
func (h *Handler) SendPrayerReminder(chatID int64, prayer string) {
	emoji := checklist.Emoji[prayer]
	h.sendMarkdown(chatID,
		fmt.Sprintf("%s Waktunya *%s*! 🕌\n\nJangan lupa solat ya. Ketik /solat untuk tandai. 🤲", emoji, prayer), nil)
}

// SendReadingReminder fires from the recurring daily timer. It reloads the
// record so the message reflects the position and target as of fire time,
// not as of scheduling.
func (h *Handler) SendReadingReminder(chatID int64) {
	rec, _, err := h.Store.Get(chatID)
	if err != nil {
		h.Log.Error("load record for reading reminder failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}

	text := "📖 Waktunya tilawah! "
	if pos := rec.Reading.LastPosition; pos.Surah > 0 {
		text += fmt.Sprintf("Lanjut dari *%s* ayat %d.", quran.Name(pos.Surah), pos.Ayah)
	} else {
		text += "Yuk mulai dari *Al-Fatihah*."
	}
	if rec.Reading.DailyTarget > 0 {
		text += fmt.Sprintf(" Target hari ini: %d ayat. 💪", rec.Reading.DailyTarget)
	}
	h.sendMarkdown(chatID, text, nil)
}
