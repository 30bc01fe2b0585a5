package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-prayer-tracker/internal/checklist"
	"telegram-prayer-tracker/internal/models"
)

func dayWith(done ...string) models.DayStatus {
	rec := models.UserRecord{}
	st := checklist.GetOrInit(&rec, "2026-08-28")
	for _, p := range done {
		st[p] = true
	}
	return st
}

func TestBuildTrackerTextMissingTimesShowDash(t *testing.T) {
	now := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)
	text := buildTrackerText(dayWith("Subuh"), nil, "Bekasi", now)

	assert.Contains(t, text, "1/5 solat")
	assert.Contains(t, text, "*Subuh* — -")
	assert.Contains(t, text, "📍 Bekasi")
}

func TestBuildRekapTextTiers(t *testing.T) {
	all := buildRekapText(checklist.Summarize(dayWith(checklist.Prayers...)))
	assert.Contains(t, all, "lengkap")

	three := buildRekapText(checklist.Summarize(dayWith("Subuh", "Dzuhur", "Ashar")))
	assert.Contains(t, three, "Semangat")
	assert.Contains(t, three, "Maghrib, Isya")

	none := buildRekapText(checklist.Summarize(dayWith()))
	assert.Contains(t, none, "Yuk kejar")
	assert.Contains(t, none, "(0): -")
}

func TestBuildSurahKeyboardFirstPageOmitsPrev(t *testing.T) {
	kb := buildSurahKeyboard(0)
	nav := kb.InlineKeyboard[len(kb.InlineKeyboard)-1]

	for _, btn := range nav {
		require.NotNil(t, btn.CallbackData)
		assert.NotEqual(t, "surah:page:-1", *btn.CallbackData)
	}
	// Cancel and next only.
	assert.Len(t, nav, 2)
	assert.Equal(t, "surah:cancel", *nav[0].CallbackData)
	assert.Equal(t, "surah:page:1", *nav[1].CallbackData)
}

func TestBuildSurahKeyboardLastPage(t *testing.T) {
	kb := buildSurahKeyboard(11)

	// Four surahs on the last page: two rows of two, plus the nav row.
	require.Len(t, kb.InlineKeyboard, 3)
	var picks []string
	for _, row := range kb.InlineKeyboard[:2] {
		for _, btn := range row {
			picks = append(picks, *btn.CallbackData)
		}
	}
	assert.Equal(t, []string{"surah:pick:111", "surah:pick:112", "surah:pick:113", "surah:pick:114"}, picks)

	nav := kb.InlineKeyboard[2]
	// Prev and cancel only, no next past the last page.
	require.Len(t, nav, 2)
	assert.Equal(t, "surah:page:10", *nav[0].CallbackData)
	assert.Equal(t, "surah:cancel", *nav[1].CallbackData)
}

func TestBuildSurahKeyboardMiddlePageHasBothNav(t *testing.T) {
	kb := buildSurahKeyboard(5)
	nav := kb.InlineKeyboard[len(kb.InlineKeyboard)-1]
	require.Len(t, nav, 3)
	assert.Equal(t, "surah:page:4", *nav[0].CallbackData)
	assert.Equal(t, "surah:cancel", *nav[1].CallbackData)
	assert.Equal(t, "surah:page:6", *nav[2].CallbackData)
}

func TestBuildReadingText(t *testing.T) {
	empty := buildReadingText(models.UserRecord{})
	assert.Contains(t, empty, "Al-Fatihah")

	rec := models.UserRecord{Reading: models.ReadingState{
		LastPosition: models.ReadingPosition{Surah: 18, Ayah: 45},
		DailyTarget:  20,
		ReminderAt:   "05:30",
	}}
	text := buildReadingText(rec)
	assert.Contains(t, text, "Al-Kahf")
	assert.Contains(t, text, "ayat 45")
	assert.Contains(t, text, "20 ayat")
	assert.Contains(t, text, "05:30")
}
