// Package selection drives the two-step "pick a surah, then type an ayah"
// flow. Sessions live in memory only; a restart simply drops any flow in
// progress and the user starts over.
package selection

import (
	"errors"
	"strconv"
	"strings"
	"sync"

	"telegram-prayer-tracker/internal/models"
	"telegram-prayer-tracker/internal/quran"
)

// ErrInvalidAyah is returned for input that is not a positive integer.
// The session stays in place so the user can retry.
var ErrInvalidAyah = errors.New("ayah must be a positive number")

// Session is one chat's position in the flow.
type Session struct {
	Stage models.Stage
	Surah int // set once chosen
	Page  int // picker page, 0-based
}

type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[int64]*Session)}
}

// Start begins a fresh flow for the chat, discarding any previous session.
func (m *Manager) Start(chatID int64) Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &Session{Stage: models.StageChoosingSurah}
	m.sessions[chatID] = s
	return *s
}

// Active returns a copy of the chat's session, if one exists.
func (m *Manager) Active(chatID int64) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[chatID]
	if !ok {
		return Session{}, false
	}
	return *s, true
}

// Navigate moves the picker to page (clamped). It is a self-loop: the flow
// stays in the choosing stage.
func (m *Manager) Navigate(chatID int64, page int) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[chatID]
	if !ok || s.Stage != models.StageChoosingSurah {
		return Session{}, false
	}
	s.Page = quran.ClampPage(page)
	return *s, true
}

// Choose records the picked surah and advances to the ayah prompt.
func (m *Manager) Choose(chatID int64, surah int) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[chatID]
	if !ok || s.Stage != models.StageChoosingSurah {
		return Session{}, false
	}
	if surah < 1 || surah > quran.Count() {
		return Session{}, false
	}
	s.Surah = surah
	s.Stage = models.StageAwaitingAyah
	return *s, true
}

// SubmitAyah parses the typed value. On success the session is finished and
// destroyed; on ErrInvalidAyah it is left untouched for a retry.
func (m *Manager) SubmitAyah(chatID int64, input string) (surah, ayah int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[chatID]
	if !ok || s.Stage != models.StageAwaitingAyah {
		return 0, 0, ErrInvalidAyah
	}
	n, convErr := strconv.Atoi(strings.TrimSpace(input))
	if convErr != nil || n < 1 {
		return 0, 0, ErrInvalidAyah
	}
	delete(m.sessions, chatID)
	return s.Surah, n, nil
}

// Cancel discards the chat's session. Returns false when there was none.
func (m *Manager) Cancel(chatID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[chatID]; !ok {
		return false
	}
	delete(m.sessions, chatID)
	return true
}
