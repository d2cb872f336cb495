package service

import (
	"fmt"
	"time"

	"github.com/mapmysteps/location-backend-go/internal/daykey"
	"github.com/mapmysteps/location-backend-go/internal/models"
	"github.com/mapmysteps/location-backend-go/internal/repository"
)

// ViewerService handles the read side: browsing entries by calendar date and
// locating the most recent entry for map centering. It never writes.
type ViewerService struct {
	repo *repository.EntryRepository
	loc  *time.Location
}

// NewViewerService creates a new viewer service
func NewViewerService(repo *repository.EntryRepository, loc *time.Location) *ViewerService {
	return &ViewerService{repo: repo, loc: loc}
}

// DayEntries retrieves the entries of one day bucket, newest first
func (s *ViewerService) DayEntries(userID, day string) (*models.DayEntriesResponse, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if !daykey.Valid(day) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDay, day)
	}

	entries, err := s.repo.ListForDay(userID, day)
	if err != nil {
		return nil, &StoreError{Op: "query", Err: err}
	}

	return &models.DayEntriesResponse{
		Day:     day,
		Entries: entries,
		Count:   len(entries),
	}, nil
}

// Days retrieves the calendar days holding at least one entry, newest first
func (s *ViewerService) Days(userID string) (*models.DaysResponse, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	days, err := s.repo.ListDays(userID)
	if err != nil {
		return nil, &StoreError{Op: "query", Err: err}
	}

	return &models.DaysResponse{Days: days, Count: len(days), Today: s.Today()}, nil
}

// Latest retrieves the most recent entry across all days. Returns nil when
// the user has no entries.
func (s *ViewerService) Latest(userID string) (*models.LogEntry, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	entry, err := s.repo.LatestOverall(userID)
	if err != nil {
		return nil, &StoreError{Op: "query", Err: err}
	}

	return entry, nil
}

// Today returns the current day key in the configured timezone. The viewer
// uses it as the default selected date, so it must match write-side
// bucketing exactly.
func (s *ViewerService) Today() string {
	return daykey.DayKey(time.Now().UnixMilli(), s.loc)
}
