package repository

import (
	"database/sql"
	"fmt"

	"github.com/mapmysteps/location-backend-go/internal/models"
)

// EntryRepository handles database operations for persisted location entries.
// The table mirrors the document layout locations/{userId}/{day}/{entryId}.
type EntryRepository struct {
	db *sql.DB
}

// NewEntryRepository creates a new entry repository
func NewEntryRepository(db *sql.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// Append inserts a new immutable entry under its (user, day) bucket
func (r *EntryRepository) Append(entry *models.LogEntry) error {
	query := `INSERT INTO locations (entry_id, user_id, day, latitude, longitude, timestamp, speed, accuracy)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Exec(query,
		entry.ID, entry.UserID, entry.Day,
		entry.Latitude, entry.Longitude, entry.Timestamp,
		entry.Speed, entry.Accuracy,
	)
	if err != nil {
		return fmt.Errorf("failed to append entry: %w", err)
	}

	return nil
}

// LatestForDay retrieves the most recent entry of a (user, day) bucket.
// Returns nil when the bucket is empty.
func (r *EntryRepository) LatestForDay(userID, day string) (*models.LogEntry, error) {
	query := `SELECT entry_id, user_id, day, latitude, longitude, timestamp, speed, accuracy
		FROM locations
		WHERE user_id = ? AND day = ?
		ORDER BY timestamp DESC
		LIMIT 1`

	var e models.LogEntry
	err := r.db.QueryRow(query, userID, day).Scan(
		&e.ID, &e.UserID, &e.Day, &e.Latitude, &e.Longitude, &e.Timestamp, &e.Speed, &e.Accuracy,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest entry: %w", err)
	}

	return &e, nil
}

// ListForDay retrieves all entries of a (user, day) bucket, newest first
func (r *EntryRepository) ListForDay(userID, day string) ([]models.LogEntry, error) {
	query := `SELECT entry_id, user_id, day, latitude, longitude, timestamp, speed, accuracy
		FROM locations
		WHERE user_id = ? AND day = ?
		ORDER BY timestamp DESC`

	rows, err := r.db.Query(query, userID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query day entries: %w", err)
	}
	defer rows.Close()

	var entries []models.LogEntry
	for rows.Next() {
		var e models.LogEntry
		err := rows.Scan(&e.ID, &e.UserID, &e.Day, &e.Latitude, &e.Longitude, &e.Timestamp, &e.Speed, &e.Accuracy)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate day entries: %w", err)
	}

	return entries, nil
}

// ListDays retrieves the day keys that hold at least one entry for the user,
// newest first
func (r *EntryRepository) ListDays(userID string) ([]string, error) {
	query := `SELECT DISTINCT day FROM locations WHERE user_id = ? ORDER BY day DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query days: %w", err)
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("failed to scan day: %w", err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate days: %w", err)
	}

	return days, nil
}

// LatestOverall retrieves the most recent entry of the most recent non-empty
// day bucket. Returns nil when the user has no entries at all.
func (r *EntryRepository) LatestOverall(userID string) (*models.LogEntry, error) {
	query := `SELECT entry_id, user_id, day, latitude, longitude, timestamp, speed, accuracy
		FROM locations
		WHERE user_id = ?
		ORDER BY day DESC, timestamp DESC
		LIMIT 1`

	var e models.LogEntry
	err := r.db.QueryRow(query, userID).Scan(
		&e.ID, &e.UserID, &e.Day, &e.Latitude, &e.Longitude, &e.Timestamp, &e.Speed, &e.Accuracy,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest overall entry: %w", err)
	}

	return &e, nil
}

// CountForDay returns the number of entries in a (user, day) bucket
func (r *EntryRepository) CountForDay(userID, day string) (int64, error) {
	var count int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM locations WHERE user_id = ? AND day = ?", userID, day).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count day entries: %w", err)
	}
	return count, nil
}
