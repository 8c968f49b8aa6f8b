package service

import (
	"context"
	"errors"

	"shipment-tracker/internal/core/logger"
	"shipment-tracker/internal/features/tracking/domain"
	"shipment-tracker/internal/features/tracking/ports"

	"go.uber.org/zap"
)

// ErrCourierNotSupported is returned when no provider handles the
// requested courier. It is the one tracking failure surfaced to the
// caller as an error: with no adapter there is nobody to produce a
// record.
var ErrCourierNotSupported = errors.New("courier not supported")

// TrackingService routes tracking requests to the courier providers and
// serves repeated lookups from the optional record cache.
type TrackingService struct {
	providers []ports.TrackingProvider
	cache     ports.RecordCache // nil when caching is disabled
	logger    *zap.Logger
}

// NewTrackingService creates a TrackingService. cache may be nil.
func NewTrackingService(providers []ports.TrackingProvider, cache ports.RecordCache) *TrackingService {
	return &TrackingService{
		providers: providers,
		cache:     cache,
		logger:    logger.Get(),
	}
}

// Track fetches the normalized shipment state for a tracking number.
// The returned record may carry an error field; only an unsupported
// courier is reported as a Go error.
func (s *TrackingService) Track(ctx context.Context, trackingNumber string, courier domain.Courier) (*domain.ShipmentRecord, error) {
	provider := s.lookup(courier)
	if provider == nil {
		return nil, ErrCourierNotSupported
	}

	if s.cache != nil {
		record, found, err := s.cache.Get(ctx, courier, trackingNumber)
		if err != nil {
			s.logger.Warn("Record cache read failed",
				zap.String("courier", string(courier)),
				zap.String("tracking_number", trackingNumber),
				zap.Error(err),
			)
		} else if found {
			return record, nil
		}
	}

	record := provider.Track(trackingNumber)

	// Failed fetches are not cached; the next lookup should retry.
	if s.cache != nil && !record.Failed() {
		if err := s.cache.Set(ctx, record); err != nil {
			s.logger.Warn("Record cache write failed",
				zap.String("courier", string(courier)),
				zap.String("tracking_number", trackingNumber),
				zap.Error(err),
			)
		}
	}

	return record, nil
}

// lookup resolves the provider for a courier. It is a pure lookup with
// no state or caching.
func (s *TrackingService) lookup(courier domain.Courier) ports.TrackingProvider {
	for _, provider := range s.providers {
		if provider.Courier() == courier {
			return provider
		}
	}
	return nil
}
