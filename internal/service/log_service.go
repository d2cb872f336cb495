package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mapmysteps/location-backend-go/internal/daykey"
	"github.com/mapmysteps/location-backend-go/internal/models"
	"github.com/mapmysteps/location-backend-go/internal/repository"
	"github.com/mapmysteps/location-backend-go/internal/spatial"
	"github.com/mapmysteps/location-backend-go/internal/watch"
)

// LogService owns the dedup-append decision: a fix is persisted only when it
// is far enough from the latest entry of its (user, day) bucket.
type LogService struct {
	repo      *repository.EntryRepository
	hub       *watch.Hub
	threshold float64 // meters
	loc       *time.Location
	logger    zerolog.Logger
}

// NewLogService creates a new log service
func NewLogService(repo *repository.EntryRepository, hub *watch.Hub, thresholdMeters float64, loc *time.Location) *LogService {
	return &LogService{
		repo:      repo,
		hub:       hub,
		threshold: thresholdMeters,
		loc:       loc,
		logger:    log.With().Str("module", "log").Logger(),
	}
}

// ConsiderFix decides append-or-drop for one fix.
//
// The latest-entry read and the insert are deliberately not wrapped in a
// transaction: concurrent calls for the same bucket may both append, and
// writes always target a fresh id so nothing is ever overwritten. The
// distance is only checked against the current day's bucket, so dedup
// resets at midnight.
func (s *LogService) ConsiderFix(userID string, fix models.Fix) (*models.Outcome, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if !spatial.ValidLatLng(fix.Latitude, fix.Longitude) {
		return nil, fmt.Errorf("%w: lat=%v lon=%v", ErrInvalidFix, fix.Latitude, fix.Longitude)
	}

	day := daykey.DayKey(fix.CapturedAt, s.loc)

	last, err := s.repo.LatestForDay(userID, day)
	if err != nil {
		return nil, &StoreError{Op: "query", Err: err}
	}

	var distance float64
	if last != nil {
		distance = spatial.HaversineDistance(last.Latitude, last.Longitude, fix.Latitude, fix.Longitude)
		if distance < s.threshold {
			s.logger.Debug().Str("user", userID).Str("day", day).Float64("distance_m", distance).Msg("fix too close to last entry, not saving")
			return &models.Outcome{Status: models.OutcomeSkipped, DistanceMeters: distance}, nil
		}
	}

	entry := &models.LogEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Day:       day,
		Latitude:  fix.Latitude,
		Longitude: fix.Longitude,
		Timestamp: fix.CapturedAt,
		Speed:     fix.Speed,
		Accuracy:  fix.Accuracy,
	}

	if err := s.repo.Append(entry); err != nil {
		return nil, &StoreError{Op: "write", Err: err}
	}

	s.hub.Publish(watch.Scope{UserID: userID, Day: day}, *entry)
	s.logger.Debug().Str("user", userID).Str("day", day).Str("entry", entry.ID).Float64("distance_m", distance).Msg("entry saved")

	return &models.Outcome{Status: models.OutcomeAppended, DistanceMeters: distance, Entry: entry}, nil
}
