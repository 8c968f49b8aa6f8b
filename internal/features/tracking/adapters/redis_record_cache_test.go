package adapter

import (
	"context"
	"testing"
	"time"

	"shipment-tracker/internal/core/cache"
	"shipment-tracker/internal/features/tracking/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecordCache(t *testing.T, ttl time.Duration) (*RedisRecordCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	adapter, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })

	return NewRedisRecordCache(adapter, ttl), mr
}

// TestRedisRecordCache_SetGet verifies the round trip through the
// courier/tracking-number key.
func TestRedisRecordCache_SetGet(t *testing.T) {
	rc, _ := newTestRecordCache(t, time.Minute)
	ctx := context.Background()

	record := &domain.ShipmentRecord{
		Courier:        domain.CourierDTDC,
		TrackingNumber: "D123",
		Status:         "In Transit",
		ScanEvents: []domain.ScanEvent{
			{Location: "Mumbai", Details: "Booked", Date: "2024-01-01", Time: "08:00"},
		},
	}
	record.DeliveryDetails.Set("Origin", "Mumbai")

	require.NoError(t, rc.Set(ctx, record))

	cached, found, err := rc.Get(ctx, domain.CourierDTDC, "D123")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, record, cached)
}

// TestRedisRecordCache_Miss verifies that a missing record is not an error.
func TestRedisRecordCache_Miss(t *testing.T) {
	rc, _ := newTestRecordCache(t, time.Minute)

	cached, found, err := rc.Get(context.Background(), domain.CourierBlueDart, "unknown")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, cached)
}

// TestRedisRecordCache_KeyIsolation verifies that couriers do not share
// keys for the same tracking number.
func TestRedisRecordCache_KeyIsolation(t *testing.T) {
	rc, _ := newTestRecordCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, rc.Set(ctx, &domain.ShipmentRecord{
		Courier:        domain.CourierDTDC,
		TrackingNumber: "123",
		Status:         "In Transit",
	}))

	_, found, err := rc.Get(ctx, domain.CourierDelhivery, "123")
	require.NoError(t, err)
	assert.False(t, found)
}

// TestRedisRecordCache_TTLExpiry verifies that records expire.
func TestRedisRecordCache_TTLExpiry(t *testing.T) {
	rc, mr := newTestRecordCache(t, time.Second)
	ctx := context.Background()

	require.NoError(t, rc.Set(ctx, &domain.ShipmentRecord{
		Courier:        domain.CourierBlueDart,
		TrackingNumber: "B1",
		Status:         "In Transit",
	}))

	_, found, err := rc.Get(ctx, domain.CourierBlueDart, "B1")
	require.NoError(t, err)
	assert.True(t, found)

	mr.FastForward(2 * time.Second)

	_, found, err = rc.Get(ctx, domain.CourierBlueDart, "B1")
	require.NoError(t, err)
	assert.False(t, found)
}
