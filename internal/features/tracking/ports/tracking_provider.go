package ports

import (
	"context"

	"shipment-tracker/internal/features/tracking/domain"
)

// TrackingProvider is the port every courier adapter implements.
type TrackingProvider interface {
	// Track fetches and normalizes the shipment state for a tracking
	// number. It never returns an error: any failure inside the
	// fetch+parse pipeline is reported through the record's Error
	// field so batch callers can continue past a failing item.
	Track(trackingNumber string) *domain.ShipmentRecord
	// Courier identifies which courier this provider handles.
	Courier() domain.Courier
}

// RecordCache is the port for the optional read-through record cache.
type RecordCache interface {
	// Get returns the cached record for a courier/tracking-number pair,
	// or found == false on a miss.
	Get(ctx context.Context, courier domain.Courier, trackingNumber string) (*domain.ShipmentRecord, bool, error)
	// Set stores a record. Callers must not cache failed records.
	Set(ctx context.Context, record *domain.ShipmentRecord) error
}
