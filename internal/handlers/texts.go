package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-prayer-tracker/internal/checklist"
	"telegram-prayer-tracker/internal/models"
	"telegram-prayer-tracker/internal/quran"
)

const startText = "Assalamu'alaikum! 🕌\n\n" +
	"Aku bot tracker solat & tilawah kamu.\n\n" +
	"Perintah yang tersedia:\n" +
	"/solat — lihat tracker & tandai solat\n" +
	"/jadwal — lihat jadwal solat hari ini\n" +
	"/rekap — rekap solat hari ini\n" +
	"/ingatkan — aktifkan pengingat solat\n" +
	"/lokasi — atur lokasi untuk jadwal\n" +
	"/tilawah — status & update posisi tilawah\n" +
	"/target N — atur target tilawah harian (ayat)\n" +
	"/ingatkan_tilawah HH:MM — pengingat tilawah harian\n" +
	"/batal — batalkan pilihan surah\n\n" +
	"Semoga istiqomah! 🤲"

func statusBox(done bool) string {
	if done {
		return "✅"
	}
	return "⬜"
}

func buildTrackerText(st models.DayStatus, times map[string]string, place string, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🕌 *Tracker Solat — %s*\n", now.Format("Monday, 02 January 2006"))
	fmt.Fprintf(&b, "📍 %s | ✅ %d/5 solat\n\n", place, checklist.Summarize(st).Done)
	b.WriteString("*Jadwal & Status Hari Ini:*\n")
	for _, p := range checklist.Prayers {
		t, ok := times[p]
		if !ok {
			t = "-"
		}
		fmt.Fprintf(&b, "%s %s *%s* — %s\n", statusBox(st[p]), checklist.Emoji[p], p, t)
	}
	b.WriteString("\nTap tombol di bawah untuk tandai sudah solat 👇")
	return b.String()
}

func buildTrackerKeyboard(st models.DayStatus) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, p := range checklist.Prayers {
		label := fmt.Sprintf("%s %s %s", statusBox(st[p]), checklist.Emoji[p], p)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "toggle_"+p),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔄 Refresh", "refresh"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func buildScheduleText(times map[string]string, place string, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🕌 *Jadwal Solat %s*\n📅 %s\n\n", place, now.Format("02 January 2006"))
	for _, p := range checklist.Prayers {
		t, ok := times[p]
		if !ok {
			t = "-"
		}
		fmt.Fprintf(&b, "%s *%s*: %s\n", checklist.Emoji[p], p, t)
	}
	return b.String()
}

func buildRekapText(sum checklist.Summary) string {
	joinOrDash := func(names []string) string {
		if len(names) == 0 {
			return "-"
		}
		return strings.Join(names, ", ")
	}

	var b strings.Builder
	b.WriteString("📊 *Rekap Solat Hari Ini*\n\n")
	fmt.Fprintf(&b, "✅ Sudah solat (%d): %s\n", len(sum.DoneNames), joinOrDash(sum.DoneNames))
	fmt.Fprintf(&b, "⬜ Belum solat (%d): %s\n\n", len(sum.MissedNames), joinOrDash(sum.MissedNames))

	switch {
	case sum.Done == len(checklist.Prayers):
		b.WriteString("MasyaAllah, solat hari ini lengkap! 🎉🤲")
	case sum.Done >= 3:
		b.WriteString("Semangat, masih ada waktu untuk solat yang tertinggal! 💪")
	default:
		b.WriteString("Yuk kejar solat yang belum! Semoga Allah mudahkan 🤲")
	}
	return b.String()
}

func buildReadingText(rec models.UserRecord) string {
	var b strings.Builder
	b.WriteString("📖 *Tilawah*\n\n")
	pos := rec.Reading.LastPosition
	if pos.Surah > 0 {
		fmt.Fprintf(&b, "Posisi terakhir: *%s* ayat %d\n", quran.Name(pos.Surah), pos.Ayah)
		if rec.Reading.UpdatedAt > 0 {
			fmt.Fprintf(&b, "Diupdate: %s\n", time.Unix(rec.Reading.UpdatedAt, 0).Format("02 Jan 2006 15:04"))
		}
	} else {
		b.WriteString("Belum ada posisi tersimpan. Yuk mulai dari Al-Fatihah!\n")
	}
	if rec.Reading.DailyTarget > 0 {
		fmt.Fprintf(&b, "Target harian: %d ayat\n", rec.Reading.DailyTarget)
	}
	if rec.Reading.ReminderAt != "" {
		fmt.Fprintf(&b, "Pengingat harian: %s\n", rec.Reading.ReminderAt)
	}
	return b.String()
}

func buildSurahPickerText(page int) string {
	return fmt.Sprintf("📖 Pilih surah (hal %d/%d):", page+1, quran.PageCount())
}

func buildSurahKeyboard(page int) tgbotapi.InlineKeyboardMarkup {
	page = quran.ClampPage(page)
	lo, hi := quran.PageBounds(page)

	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for n := lo; n <= hi; n++ {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%d. %s", n, quran.Name(n)),
			"surah:pick:"+strconv.Itoa(n),
		))
		if len(row) == 2 {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(row...))
	}

	// Boundary pages omit the unavailable control entirely.
	var nav []tgbotapi.InlineKeyboardButton
	if page > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("⬅️", "surah:page:"+strconv.Itoa(page-1)))
	}
	nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("❌ Batal", "surah:cancel"))
	if page < quran.PageCount()-1 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("➡️", "surah:page:"+strconv.Itoa(page+1)))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(nav...))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
