package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shipment-tracker/internal/core/cache"
	"shipment-tracker/internal/features/tracking/domain"
)

// RedisRecordCache implements ports.RecordCache on top of the cache port.
// Records are cached per courier and tracking number with a fixed TTL so
// repeated lookups do not hammer courier endpoints.
type RedisRecordCache struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewRedisRecordCache creates a record cache with the given TTL.
func NewRedisRecordCache(c cache.Cache, ttl time.Duration) *RedisRecordCache {
	return &RedisRecordCache{
		cache: c,
		ttl:   ttl,
	}
}

func recordKey(courier domain.Courier, trackingNumber string) string {
	return fmt.Sprintf("record:%s:%s", courier, trackingNumber)
}

// Get retrieves a cached record, reporting a miss as found == false.
func (r *RedisRecordCache) Get(ctx context.Context, courier domain.Courier, trackingNumber string) (*domain.ShipmentRecord, bool, error) {
	data, found, err := r.cache.Get(ctx, recordKey(courier, trackingNumber))
	if err != nil {
		return nil, false, fmt.Errorf("failed to get record from cache: %w", err)
	}
	if !found {
		return nil, false, nil
	}

	var record domain.ShipmentRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached record: %w", err)
	}
	return &record, true, nil
}

// Set stores a record under its courier/tracking-number key.
func (r *RedisRecordCache) Set(ctx context.Context, record *domain.ShipmentRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	key := recordKey(record.Courier, record.TrackingNumber)
	if err := r.cache.Set(ctx, key, data, r.ttl); err != nil {
		return fmt.Errorf("failed to save record to cache: %w", err)
	}
	return nil
}
