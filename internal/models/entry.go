package models

// Fix represents one raw GPS reading reported by a device. A fix is
// ephemeral: it is only persisted once it passes the dedup rule.
type Fix struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Speed      float32 `json:"speed"`
	Accuracy   float32 `json:"accuracy"`
	CapturedAt int64   `json:"capturedAt"` // Unix timestamp in milliseconds
}

// LogEntry represents one persisted, immutable location record. Entries are
// created exactly once and never mutated or deleted.
type LogEntry struct {
	ID        string  `json:"id" db:"entry_id"`
	UserID    string  `json:"-" db:"user_id"`
	Day       string  `json:"-" db:"day"` // Format: 2025-06-07
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
	Timestamp int64   `json:"timestamp" db:"timestamp"` // Unix timestamp in milliseconds
	Speed     float32 `json:"speed" db:"speed"`
	Accuracy  float32 `json:"accuracy" db:"accuracy"`
}

// OutcomeStatus is the decision taken for a considered fix
type OutcomeStatus string

const (
	// OutcomeAppended means the fix was persisted as a new entry
	OutcomeAppended OutcomeStatus = "appended"
	// OutcomeSkipped means the fix was too close to the last entry of its
	// day bucket and no write was performed
	OutcomeSkipped OutcomeStatus = "skipped"
)

// Outcome is the result of considering one fix against the log
type Outcome struct {
	Status         OutcomeStatus `json:"outcome"`
	DistanceMeters float64       `json:"distanceMeters"` // 0 on bucket bootstrap
	Entry          *LogEntry     `json:"entry,omitempty"`
}

// DayEntriesResponse represents the entries of one day bucket, newest first
type DayEntriesResponse struct {
	Day     string     `json:"day"`
	Entries []LogEntry `json:"entries"`
	Count   int        `json:"count"`
}

// DaysResponse represents the calendar days that hold at least one entry.
// Today is the viewer's default selected date, derived with the same
// timezone as write-side bucketing.
type DaysResponse struct {
	Days  []string `json:"days"`
	Count int      `json:"count"`
	Today string   `json:"today"`
}
