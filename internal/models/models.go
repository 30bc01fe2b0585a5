package models

// Location is where the user prays, shared through Telegram.
// A nil Location means the configured default city is used instead.
type Location struct {
	Latitude   float64 `json:"lat"`
	Longitude  float64 `json:"lon"`
	PlaceLabel string  `json:"place"`
}

// DayStatus maps a canonical prayer name to whether it was performed.
type DayStatus map[string]bool

// ReadingPosition marks last-read progress through the Quran.
type ReadingPosition struct {
	Surah int `json:"surah"` // 1..114
	Ayah  int `json:"ayah"`  // >= 1
}

// ReadingState holds tilawah progress and reminder settings.
type ReadingState struct {
	LastPosition ReadingPosition `json:"last_position"`
	UpdatedAt    int64           `json:"updated_at"`            // unix seconds
	DailyTarget  int             `json:"daily_target"`          // ayat per day, 0 = unset
	ReminderAt   string          `json:"reminder_at,omitempty"` // "HH:MM", empty = no reminder
}

// UserRecord is everything persisted for one chat. New optional fields
// must default on decode so older rows stay readable.
type UserRecord struct {
	Location       *Location            `json:"location,omitempty"`
	DailyChecklist map[string]DayStatus `json:"daily_checklist"` // ISO date -> status
	Reading        ReadingState         `json:"reading"`
}
