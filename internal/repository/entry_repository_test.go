package repository

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/mapmysteps/location-backend-go/internal/database"
	"github.com/mapmysteps/location-backend-go/internal/models"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "locations.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	return db
}

func testEntry(userID, day string, timestamp int64, lat, lon float64) *models.LogEntry {
	return &models.LogEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Day:       day,
		Latitude:  lat,
		Longitude: lon,
		Timestamp: timestamp,
		Speed:     1.5,
		Accuracy:  10,
	}
}

func TestAppendAndLatestForDay(t *testing.T) {
	repo := NewEntryRepository(testDB(t))

	latest, err := repo.LatestForDay("user-1", "2025-06-07")
	if err != nil {
		t.Fatalf("LatestForDay on empty bucket: %v", err)
	}
	if latest != nil {
		t.Fatalf("LatestForDay on empty bucket = %+v, want nil", latest)
	}

	first := testEntry("user-1", "2025-06-07", 1749290000000, 37.0, -122.0)
	if err := repo.Append(first); err != nil {
		t.Fatalf("Append: %v", err)
	}
	second := testEntry("user-1", "2025-06-07", 1749293600000, 37.1, -122.0)
	if err := repo.Append(second); err != nil {
		t.Fatalf("Append: %v", err)
	}

	latest, err = repo.LatestForDay("user-1", "2025-06-07")
	if err != nil {
		t.Fatalf("LatestForDay: %v", err)
	}
	if latest == nil || latest.ID != second.ID {
		t.Fatalf("LatestForDay = %+v, want entry %s", latest, second.ID)
	}

	// Other users and other days stay isolated
	if e, err := repo.LatestForDay("user-2", "2025-06-07"); err != nil || e != nil {
		t.Fatalf("LatestForDay other user = %+v, %v; want nil, nil", e, err)
	}
	if e, err := repo.LatestForDay("user-1", "2025-06-08"); err != nil || e != nil {
		t.Fatalf("LatestForDay other day = %+v, %v; want nil, nil", e, err)
	}
}

func TestAppendDuplicateID(t *testing.T) {
	repo := NewEntryRepository(testDB(t))

	entry := testEntry("user-1", "2025-06-07", 1749290000000, 37.0, -122.0)
	if err := repo.Append(entry); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := repo.Append(entry); err == nil {
		t.Fatal("appending the same entry id twice should fail, entries are immutable")
	}
}

func TestListForDay(t *testing.T) {
	repo := NewEntryRepository(testDB(t))

	entries, err := repo.ListForDay("user-1", "2025-06-07")
	if err != nil {
		t.Fatalf("ListForDay empty: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("ListForDay empty = %d entries, want 0", len(entries))
	}

	for i, ts := range []int64{1749290000000, 1749293600000, 1749297200000} {
		e := testEntry("user-1", "2025-06-07", ts, 37.0+float64(i)*0.05, -122.0)
		if err := repo.Append(e); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}

	entries, err = repo.ListForDay("user-1", "2025-06-07")
	if err != nil {
		t.Fatalf("ListForDay: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("ListForDay = %d entries, want 3", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Timestamp < entries[i].Timestamp {
			t.Fatalf("entries not ordered newest first: %d before %d", entries[i-1].Timestamp, entries[i].Timestamp)
		}
	}
}

func TestListDays(t *testing.T) {
	repo := NewEntryRepository(testDB(t))

	for _, day := range []string{"2025-06-07", "2025-06-05", "2025-06-07", "2025-06-09"} {
		if err := repo.Append(testEntry("user-1", day, 1749290000000, 37.0, -122.0)); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	if err := repo.Append(testEntry("user-2", "2025-06-01", 1749290000000, 37.0, -122.0)); err != nil {
		t.Fatalf("Append: %v", err)
	}

	days, err := repo.ListDays("user-1")
	if err != nil {
		t.Fatalf("ListDays: %v", err)
	}

	want := []string{"2025-06-09", "2025-06-07", "2025-06-05"}
	if len(days) != len(want) {
		t.Fatalf("ListDays = %v, want %v", days, want)
	}
	for i := range want {
		if days[i] != want[i] {
			t.Fatalf("ListDays = %v, want %v", days, want)
		}
	}
}

func TestLatestOverall(t *testing.T) {
	repo := NewEntryRepository(testDB(t))

	if e, err := repo.LatestOverall("user-1"); err != nil || e != nil {
		t.Fatalf("LatestOverall empty = %+v, %v; want nil, nil", e, err)
	}

	old := testEntry("user-1", "2025-06-05", 1749100000000, 36.0, -121.0)
	newest := testEntry("user-1", "2025-06-07", 1749290000000, 37.0, -122.0)
	for _, e := range []*models.LogEntry{old, newest} {
		if err := repo.Append(e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := repo.LatestOverall("user-1")
	if err != nil {
		t.Fatalf("LatestOverall: %v", err)
	}
	if got == nil || got.ID != newest.ID {
		t.Fatalf("LatestOverall = %+v, want entry %s", got, newest.ID)
	}
}

func TestCountForDay(t *testing.T) {
	repo := NewEntryRepository(testDB(t))

	count, err := repo.CountForDay("user-1", "2025-06-07")
	if err != nil || count != 0 {
		t.Fatalf("CountForDay empty = %d, %v; want 0, nil", count, err)
	}

	if err := repo.Append(testEntry("user-1", "2025-06-07", 1749290000000, 37.0, -122.0)); err != nil {
		t.Fatalf("Append: %v", err)
	}

	count, err = repo.CountForDay("user-1", "2025-06-07")
	if err != nil || count != 1 {
		t.Fatalf("CountForDay = %d, %v; want 1, nil", count, err)
	}
}
