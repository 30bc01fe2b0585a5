package scheduler

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestScheduler(t *testing.T, hh, mm int) *Scheduler {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	// Far-future date so one-shot instants are valid regardless of when
	// the tests actually run.
	now := time.Date(2030, time.August, 28, hh, mm, 0, 0, loc)
	s, err := New(loc, zap.NewNop(), WithClock(clockwork.NewFakeClockAt(now)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Shutdown() })
	return s
}

func fullDay(subuh, dzuhur, ashar, maghrib, isya string) map[string]string {
	return map[string]string{
		"Subuh": subuh, "Dzuhur": dzuhur, "Ashar": ashar, "Maghrib": maghrib, "Isya": isya,
	}
}

func TestParseClock(t *testing.T) {
	for _, tc := range []struct {
		in     string
		hh, mm int
		ok     bool
	}{
		{"05:30", 5, 30, true},
		{"5:30", 5, 30, true},
		{"23:59", 23, 59, true},
		{"00:00", 0, 0, true},
		{"24:00", 0, 0, false},
		{"12:60", 0, 0, false},
		{"noon", 0, 0, false},
		{"", 0, 0, false},
		{"12:3", 0, 0, false},
	} {
		hh, mm, err := ParseClock(tc.in)
		if !tc.ok {
			assert.ErrorIs(t, err, ErrInvalidTime, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.hh, hh)
		assert.Equal(t, tc.mm, mm)
	}
}

func TestSkipPastTimes(t *testing.T) {
	s := newTestScheduler(t, 12, 0)

	scheduled, err := s.ScheduleEventReminders(1, fullDay("06:00", "11:55", "15:10", "18:02", "23:59"),
		func(int64, string) {})
	require.NoError(t, err)

	// Subuh and Dzuhur are already past: skipped, never fired late.
	assert.Equal(t, []string{"Ashar", "Maghrib", "Isya"}, scheduled)
	assert.Equal(t, 3, s.live(1, PurposeEventOneShot))
}

func TestAllTimesPast(t *testing.T) {
	s := newTestScheduler(t, 23, 59)

	scheduled, err := s.ScheduleEventReminders(1, fullDay("04:36", "11:55", "15:10", "18:02", "19:14"),
		func(int64, string) {})
	require.NoError(t, err)
	assert.Empty(t, scheduled)
	assert.Equal(t, 0, s.live(1, PurposeEventOneShot))
}

func TestRescheduleReplacesTimers(t *testing.T) {
	s := newTestScheduler(t, 5, 0)
	times := fullDay("05:30", "11:55", "15:10", "18:02", "19:14")

	for i := 0; i < 3; i++ {
		_, err := s.ScheduleEventReminders(1, times, func(int64, string) {})
		require.NoError(t, err)
	}
	// At most one live timer per prayer no matter how often we reschedule.
	assert.Equal(t, 5, s.live(1, PurposeEventOneShot))
}

func TestReschedulePerOwnerIsolated(t *testing.T) {
	s := newTestScheduler(t, 5, 0)
	times := fullDay("05:30", "11:55", "15:10", "18:02", "19:14")

	_, err := s.ScheduleEventReminders(1, times, func(int64, string) {})
	require.NoError(t, err)
	_, err = s.ScheduleEventReminders(2, times, func(int64, string) {})
	require.NoError(t, err)

	assert.Equal(t, 5, s.live(1, PurposeEventOneShot))
	assert.Equal(t, 5, s.live(2, PurposeEventOneShot))
}

func TestGarbledTimeLeavesExistingTimers(t *testing.T) {
	s := newTestScheduler(t, 5, 0)

	_, err := s.ScheduleEventReminders(1, fullDay("05:30", "11:55", "15:10", "18:02", "19:14"),
		func(int64, string) {})
	require.NoError(t, err)

	_, err = s.ScheduleEventReminders(1, fullDay("05:30", "garbled", "15:10", "18:02", "19:14"),
		func(int64, string) {})
	assert.ErrorIs(t, err, ErrInvalidTime)

	// Prior registration untouched: no cancel without a valid replacement.
	assert.Equal(t, 5, s.live(1, PurposeEventOneShot))
}

func TestMissingPrayerIsInvalid(t *testing.T) {
	s := newTestScheduler(t, 5, 0)

	_, err := s.ScheduleEventReminders(1, map[string]string{"Subuh": "05:30"}, func(int64, string) {})
	assert.ErrorIs(t, err, ErrInvalidTime)
	assert.Equal(t, 0, s.live(1, PurposeEventOneShot))
}

func TestReadingReminderSingleTimer(t *testing.T) {
	s := newTestScheduler(t, 5, 0)

	require.NoError(t, s.ScheduleReadingReminder(1, "06:00", func(int64) {}))
	require.NoError(t, s.ScheduleReadingReminder(1, "21:30", func(int64) {}))
	assert.Equal(t, 1, s.live(1, PurposeReadingDaily))

	s.CancelReadingReminder(1)
	assert.Equal(t, 0, s.live(1, PurposeReadingDaily))
}

func TestReadingReminderBadClock(t *testing.T) {
	s := newTestScheduler(t, 5, 0)
	err := s.ScheduleReadingReminder(1, "25:00", func(int64) {})
	assert.ErrorIs(t, err, ErrInvalidTime)
}

func TestReadingReminderIndependentOfEvents(t *testing.T) {
	s := newTestScheduler(t, 5, 0)

	require.NoError(t, s.ScheduleReadingReminder(1, "06:00", func(int64) {}))
	_, err := s.ScheduleEventReminders(1, fullDay("05:30", "11:55", "15:10", "18:02", "19:14"),
		func(int64, string) {})
	require.NoError(t, err)

	// Rescheduling events must not cancel the reading reminder.
	assert.Equal(t, 1, s.live(1, PurposeReadingDaily))
	assert.Equal(t, 5, s.live(1, PurposeEventOneShot))
}
