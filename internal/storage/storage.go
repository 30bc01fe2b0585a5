// Package storage persists user records in sqlite, one row per chat with the
// record serialized as JSON. Every mutation goes through Update, which holds
// the store lock across load-mutate-save so concurrent requests for the same
// user cannot lose writes.
package storage

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"telegram-prayer-tracker/internal/models"
)

//go:embed schema.sql
var ddl embed.FS

// ErrStorage wraps any read/write failure of the backing database.
var ErrStorage = errors.New("storage unavailable")

type Store struct {
	db *sql.DB
	mu sync.Mutex
}

func New(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	b, err := ddl.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.Exec(string(b))
	return err
}

func (s *Store) Close() error { return s.db.Close() }

// Load reads every user record. An empty table yields an empty map.
func (s *Store) Load() (map[int64]models.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save replaces the whole stored mapping in one transaction.
func (s *Store) Save(records map[int64]models.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(records)
}

// Update loads the mapping, applies fn to one record (creating it if absent)
// and writes the mapping back, all under the store lock. The committed record
// is returned.
func (s *Store) Update(chatID int64, fn func(*models.UserRecord)) (models.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return models.UserRecord{}, err
	}
	rec := records[chatID]
	fn(&rec)
	records[chatID] = rec
	if err := s.save(records); err != nil {
		return models.UserRecord{}, err
	}
	return rec, nil
}

// Get returns one record; ok is false when the user has none yet.
func (s *Store) Get(chatID int64) (models.UserRecord, bool, error) {
	records, err := s.Load()
	if err != nil {
		return models.UserRecord{}, false, err
	}
	rec, ok := records[chatID]
	return rec, ok, nil
}

func (s *Store) load() (map[int64]models.UserRecord, error) {
	rows, err := s.db.Query(`SELECT chat_id, record FROM users`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	defer rows.Close()

	records := make(map[int64]models.UserRecord)
	for rows.Next() {
		var chatID int64
		var blob string
		if err := rows.Scan(&chatID, &blob); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		var rec models.UserRecord
		// Unknown fields are dropped, missing ones zero-default, so old
		// rows stay readable as the record grows.
		if err := json.Unmarshal([]byte(blob), &rec); err != nil {
			return nil, fmt.Errorf("%w: chat %d: %v", ErrStorage, chatID, err)
		}
		records[chatID] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return records, nil
}

func (s *Store) save(records map[int64]models.UserRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM users`); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	for chatID, rec := range records {
		blob, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("%w: chat %d: %v", ErrStorage, chatID, err)
		}
		if _, err := tx.Exec(`INSERT INTO users (chat_id, record) VALUES (?, ?)`, chatID, string(blob)); err != nil {
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}
