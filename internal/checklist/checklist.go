// Package checklist owns the five-prayers-per-day sub-record of a user.
package checklist

import (
	"errors"

	"telegram-prayer-tracker/internal/models"
)

// Prayers is the canonical order of the five daily prayers.
var Prayers = []string{"Subuh", "Dzuhur", "Ashar", "Maghrib", "Isya"}

// Emoji per prayer, used in tracker and reminder messages.
var Emoji = map[string]string{
	"Subuh":   "🌅",
	"Dzuhur":  "☀️",
	"Ashar":   "🌤️",
	"Maghrib": "🌇",
	"Isya":    "🌙",
}

var ErrUnknownPrayer = errors.New("unknown prayer")

// Known reports whether name is one of the five canonical prayers.
func Known(name string) bool {
	_, ok := Emoji[name]
	return ok
}

// GetOrInit returns the status for day, creating it with all five prayers
// unset the first time that date is touched. Already-toggled entries are
// never reset.
func GetOrInit(rec *models.UserRecord, day string) models.DayStatus {
	if rec.DailyChecklist == nil {
		rec.DailyChecklist = make(map[string]models.DayStatus)
	}
	if st, ok := rec.DailyChecklist[day]; ok {
		return st
	}
	st := make(models.DayStatus, len(Prayers))
	for _, p := range Prayers {
		st[p] = false
	}
	rec.DailyChecklist[day] = st
	return st
}

// Toggle flips one prayer's done flag in place.
func Toggle(st models.DayStatus, prayer string) error {
	if !Known(prayer) {
		return ErrUnknownPrayer
	}
	st[prayer] = !st[prayer]
	return nil
}

// Summary of one day, names in canonical order.
type Summary struct {
	Done        int
	DoneNames   []string
	MissedNames []string
}

func Summarize(st models.DayStatus) Summary {
	var s Summary
	for _, p := range Prayers {
		if st[p] {
			s.Done++
			s.DoneNames = append(s.DoneNames, p)
		} else {
			s.MissedNames = append(s.MissedNames, p)
		}
	}
	return s
}
