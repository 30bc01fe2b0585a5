// Package scheduler keeps at most one live timer per (chat, purpose, prayer).
// One-shot prayer reminders are anchored to today in the configured zone;
// the reading reminder recurs daily at a wall-clock time. Registration always
// cancels the previous timer for the same key first, under a lock, so no
// caller can observe two live timers mid-reschedule.
package scheduler

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"telegram-prayer-tracker/internal/checklist"
)

// ErrInvalidTime is returned for clock strings that are not "HH:MM".
var ErrInvalidTime = errors.New("invalid time format")

var clockRx = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)

// ParseClock parses "HH:MM" into hour and minute.
func ParseClock(s string) (hh, mm int, err error) {
	m := clockRx.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	hh, _ = strconv.Atoi(m[1])
	mm, _ = strconv.Atoi(m[2])
	return hh, mm, nil
}

// Purpose tags what a timer is for.
type Purpose int

const (
	PurposeEventOneShot Purpose = iota
	PurposeReadingDaily
)

// EventFunc is invoked with only the chat and prayer name; it must reload
// whatever state it needs.
type EventFunc func(chatID int64, prayer string)

// ReadingFunc is invoked with only the chat id.
type ReadingFunc func(chatID int64)

type timerKey struct {
	chatID  int64
	purpose Purpose
	prayer  string // empty for PurposeReadingDaily
}

type Scheduler struct {
	cron  gocron.Scheduler
	clock clockwork.Clock
	loc   *time.Location
	log   *zap.Logger

	mu   sync.Mutex
	jobs map[timerKey]uuid.UUID
}

type Option func(*Scheduler)

// WithClock substitutes the wall clock, for tests.
func WithClock(clk clockwork.Clock) Option {
	return func(s *Scheduler) { s.clock = clk }
}

func New(loc *time.Location, log *zap.Logger, opts ...Option) (*Scheduler, error) {
	s := &Scheduler{
		clock: clockwork.NewRealClock(),
		loc:   loc,
		log:   log,
		jobs:  make(map[timerKey]uuid.UUID),
	}
	for _, o := range opts {
		o(s)
	}
	cron, err := gocron.NewScheduler(
		gocron.WithLocation(loc),
		gocron.WithClock(s.clock),
	)
	if err != nil {
		return nil, err
	}
	s.cron = cron
	return s, nil
}

func (s *Scheduler) Start()          { s.cron.Start() }
func (s *Scheduler) Shutdown() error { return s.cron.Shutdown() }

// ScheduleEventReminders replaces all one-shot prayer timers for the chat
// with timers for today's times that are still ahead of now. Past times are
// skipped, never fired late. All five strings are validated before anything
// is cancelled, so a garbled schedule leaves existing timers untouched.
// The registered prayer names are returned in canonical order.
func (s *Scheduler) ScheduleEventReminders(chatID int64, times map[string]string, notify EventFunc) ([]string, error) {
	instants, err := s.eventInstants(times)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked(chatID, PurposeEventOneShot)

	var scheduled []string
	for _, prayer := range checklist.Prayers {
		at, ok := instants[prayer]
		if !ok {
			continue
		}
		k := timerKey{chatID: chatID, purpose: PurposeEventOneShot, prayer: prayer}
		p := prayer
		job, err := s.cron.NewJob(
			gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(at)),
			gocron.NewTask(func() {
				s.forget(k)
				notify(chatID, p)
			}),
		)
		if err != nil {
			// Undo this partial batch; earlier timers for the chat are
			// already gone, but no half-registered set survives.
			s.cancelLocked(chatID, PurposeEventOneShot)
			return nil, err
		}
		s.jobs[k] = job.ID()
		scheduled = append(scheduled, prayer)
	}
	return scheduled, nil
}

// ScheduleReadingReminder replaces the chat's recurring reading timer with
// one firing every day at the given "HH:MM".
func (s *Scheduler) ScheduleReadingReminder(chatID int64, at string, notify ReadingFunc) error {
	hh, mm, err := ParseClock(at)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked(chatID, PurposeReadingDaily)

	k := timerKey{chatID: chatID, purpose: PurposeReadingDaily}
	job, err := s.cron.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(hh), uint(mm), 0))),
		gocron.NewTask(func() { notify(chatID) }),
	)
	if err != nil {
		return err
	}
	s.jobs[k] = job.ID()
	return nil
}

// CancelReadingReminder removes the chat's recurring reading timer, if any.
func (s *Scheduler) CancelReadingReminder(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(chatID, PurposeReadingDaily)
}

// eventInstants validates all five clock strings and keeps only those still
// in the future today.
func (s *Scheduler) eventInstants(times map[string]string) (map[string]time.Time, error) {
	now := s.clock.Now().In(s.loc)
	instants := make(map[string]time.Time, len(checklist.Prayers))
	for _, prayer := range checklist.Prayers {
		raw, ok := times[prayer]
		if !ok {
			return nil, fmt.Errorf("%w: missing %s", ErrInvalidTime, prayer)
		}
		hh, mm, err := ParseClock(raw)
		if err != nil {
			return nil, err
		}
		at := time.Date(now.Year(), now.Month(), now.Day(), hh, mm, 0, 0, s.loc)
		if at.After(now) {
			instants[prayer] = at
		}
	}
	return instants, nil
}

func (s *Scheduler) cancelLocked(chatID int64, purpose Purpose) {
	for k, id := range s.jobs {
		if k.chatID != chatID || k.purpose != purpose {
			continue
		}
		if err := s.cron.RemoveJob(id); err != nil && !errors.Is(err, gocron.ErrJobNotFound) {
			s.log.Warn("remove job", zap.Int64("chat_id", chatID), zap.Error(err))
		}
		delete(s.jobs, k)
	}
}

func (s *Scheduler) forget(k timerKey) {
	s.mu.Lock()
	delete(s.jobs, k)
	s.mu.Unlock()
}

// live reports how many timers exist for the chat and purpose.
func (s *Scheduler) live(chatID int64, purpose Purpose) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k := range s.jobs {
		if k.chatID == chatID && k.purpose == purpose {
			n++
		}
	}
	return n
}
