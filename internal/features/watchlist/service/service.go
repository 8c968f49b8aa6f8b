package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shipment-tracker/internal/core/logger"
	tracking "shipment-tracker/internal/features/tracking/domain"
	trackingservice "shipment-tracker/internal/features/tracking/service"
	"shipment-tracker/internal/features/watchlist/domain"
	"shipment-tracker/internal/features/watchlist/ports"

	"go.uber.org/zap"
)

var (
	// ErrAlreadyTracked is returned when adding a duplicate tracking id.
	ErrAlreadyTracked = errors.New("tracking number already exists")
	// ErrNotTracked is returned when removing an unknown tracking id.
	ErrNotTracked = errors.New("tracking number not found")
)

// WatchlistService owns the tracked-shipment set: membership changes
// and the sequential refresh batch.
type WatchlistService struct {
	repo    ports.Repository
	tracker *trackingservice.TrackingService
	logger  *zap.Logger
	now     func() time.Time
}

// NewWatchlistService creates a WatchlistService.
func NewWatchlistService(repo ports.Repository, tracker *trackingservice.TrackingService) *WatchlistService {
	return &WatchlistService{
		repo:    repo,
		tracker: tracker,
		logger:  logger.Get(),
		now:     time.Now,
	}
}

// List returns all tracked entries.
func (s *WatchlistService) List() (domain.Watchlist, error) {
	list, err := s.repo.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load watchlist: %w", err)
	}
	return list, nil
}

// Add starts tracking a shipment. Duplicates are rejected.
func (s *WatchlistService) Add(trackingID string, courier tracking.Courier) (domain.Entry, error) {
	list, err := s.repo.Load()
	if err != nil {
		return domain.Entry{}, fmt.Errorf("failed to load watchlist: %w", err)
	}

	if _, exists := list[trackingID]; exists {
		return domain.Entry{}, ErrAlreadyTracked
	}

	entry := domain.NewEntry(trackingID, courier)
	list[trackingID] = entry

	if err := s.repo.Save(list); err != nil {
		return domain.Entry{}, fmt.Errorf("failed to save watchlist: %w", err)
	}
	return entry, nil
}

// Remove stops tracking a shipment.
func (s *WatchlistService) Remove(trackingID string) error {
	list, err := s.repo.Load()
	if err != nil {
		return fmt.Errorf("failed to load watchlist: %w", err)
	}

	if _, exists := list[trackingID]; !exists {
		return ErrNotTracked
	}
	delete(list, trackingID)

	if err := s.repo.Save(list); err != nil {
		return fmt.Errorf("failed to save watchlist: %w", err)
	}
	return nil
}

// Refresh re-fetches tracked shipments strictly sequentially, in
// lexicographic tracking-id order. Entries already delivered are
// skipped unless force is set. A failing courier leaves its stored
// entry untouched and does not stop the batch; the error record still
// appears in the returned map. The watchlist is rewritten once at the
// end.
func (s *WatchlistService) Refresh(ctx context.Context, force bool) (map[string]*tracking.ShipmentRecord, error) {
	list, err := s.repo.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load watchlist: %w", err)
	}

	results := make(map[string]*tracking.ShipmentRecord, len(list))

	for _, id := range list.SortedIDs() {
		entry := list[id]

		if entry.Delivered() && !force {
			continue
		}

		record, err := s.tracker.Track(ctx, id, entry.Courier)
		if err != nil {
			// Unknown courier in a persisted entry: report and move on.
			results[id] = tracking.NewErrorRecord(entry.Courier, id, err.Error())
			s.logger.Warn("Skipping entry with unsupported courier",
				zap.String("tracking_id", id),
				zap.String("courier", string(entry.Courier)),
			)
			continue
		}

		results[id] = record
		if record.Failed() {
			s.logger.Warn("Refresh fetch failed",
				zap.String("tracking_id", id),
				zap.String("courier", string(entry.Courier)),
				zap.String("error", record.Error),
			)
			continue
		}

		list[id] = entry.Refreshed(record, s.now())
	}

	if err := s.repo.Save(list); err != nil {
		return nil, fmt.Errorf("failed to save watchlist: %w", err)
	}
	return results, nil
}
