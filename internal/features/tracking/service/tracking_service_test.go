package service

import (
	"context"
	"errors"
	"testing"

	"shipment-tracker/internal/features/tracking/domain"
	"shipment-tracker/internal/features/tracking/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProvider is a mock implementation of TrackingProvider for testing.
type mockProvider struct {
	courier domain.Courier
	record  *domain.ShipmentRecord
	calls   int
}

// Track implements TrackingProvider.
func (m *mockProvider) Track(trackingNumber string) *domain.ShipmentRecord {
	m.calls++
	return m.record
}

// Courier implements TrackingProvider.
func (m *mockProvider) Courier() domain.Courier {
	return m.courier
}

// mockRecordCache is an in-memory RecordCache for testing.
type mockRecordCache struct {
	records map[string]*domain.ShipmentRecord
	getErr  error
}

func newMockRecordCache() *mockRecordCache {
	return &mockRecordCache{records: make(map[string]*domain.ShipmentRecord)}
}

// Get implements RecordCache.
func (m *mockRecordCache) Get(ctx context.Context, courier domain.Courier, trackingNumber string) (*domain.ShipmentRecord, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	record, found := m.records[string(courier)+"/"+trackingNumber]
	return record, found, nil
}

// Set implements RecordCache.
func (m *mockRecordCache) Set(ctx context.Context, record *domain.ShipmentRecord) error {
	m.records[string(record.Courier)+"/"+record.TrackingNumber] = record
	return nil
}

// TestTrackingService_Track_Success verifies routing to the matching
// provider.
func TestTrackingService_Track_Success(t *testing.T) {
	expected := &domain.ShipmentRecord{
		Courier:        domain.CourierDTDC,
		TrackingNumber: "D123",
		Status:         "In Transit",
	}

	blueDart := &mockProvider{courier: domain.CourierBlueDart}
	dtdc := &mockProvider{courier: domain.CourierDTDC, record: expected}

	svc := NewTrackingService([]ports.TrackingProvider{blueDart, dtdc}, nil)

	record, err := svc.Track(context.Background(), "D123", domain.CourierDTDC)

	require.NoError(t, err)
	assert.Equal(t, expected, record)
	assert.Equal(t, 1, dtdc.calls)
	assert.Equal(t, 0, blueDart.calls)
}

// TestTrackingService_Track_CourierNotSupported verifies the one error
// the service surfaces.
func TestTrackingService_Track_CourierNotSupported(t *testing.T) {
	provider := &mockProvider{courier: domain.CourierBlueDart}
	svc := NewTrackingService([]ports.TrackingProvider{provider}, nil)

	record, err := svc.Track(context.Background(), "D123", domain.CourierDTDC)

	assert.Nil(t, record)
	assert.ErrorIs(t, err, ErrCourierNotSupported)
	assert.Equal(t, 0, provider.calls)
}

// TestTrackingService_Track_ErrorRecordIsNotAnError verifies that a
// failed fetch comes back as a record, not a Go error.
func TestTrackingService_Track_ErrorRecordIsNotAnError(t *testing.T) {
	provider := &mockProvider{
		courier: domain.CourierBlueDart,
		record:  domain.NewErrorRecord(domain.CourierBlueDart, "B1", "timeout"),
	}
	svc := NewTrackingService([]ports.TrackingProvider{provider}, nil)

	record, err := svc.Track(context.Background(), "B1", domain.CourierBlueDart)

	require.NoError(t, err)
	require.NotNil(t, record)
	assert.True(t, record.Failed())
}

// TestTrackingService_Track_CacheHitShortCircuits verifies that a cached
// record skips the provider entirely.
func TestTrackingService_Track_CacheHitShortCircuits(t *testing.T) {
	provider := &mockProvider{
		courier: domain.CourierDTDC,
		record:  &domain.ShipmentRecord{Courier: domain.CourierDTDC, TrackingNumber: "D123", Status: "In Transit"},
	}
	recordCache := newMockRecordCache()
	svc := NewTrackingService([]ports.TrackingProvider{provider}, recordCache)

	first, err := svc.Track(context.Background(), "D123", domain.CourierDTDC)
	require.NoError(t, err)

	second, err := svc.Track(context.Background(), "D123", domain.CourierDTDC)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, provider.calls)
}

// TestTrackingService_Track_ErrorRecordsNotCached verifies that failed
// fetches are retried on the next lookup.
func TestTrackingService_Track_ErrorRecordsNotCached(t *testing.T) {
	provider := &mockProvider{
		courier: domain.CourierDTDC,
		record:  domain.NewErrorRecord(domain.CourierDTDC, "D123", "timeout"),
	}
	recordCache := newMockRecordCache()
	svc := NewTrackingService([]ports.TrackingProvider{provider}, recordCache)

	_, err := svc.Track(context.Background(), "D123", domain.CourierDTDC)
	require.NoError(t, err)
	_, err = svc.Track(context.Background(), "D123", domain.CourierDTDC)
	require.NoError(t, err)

	assert.Equal(t, 2, provider.calls)
	assert.Empty(t, recordCache.records)
}

// TestTrackingService_Track_CacheFailureFallsThrough verifies that a
// broken cache degrades to a plain fetch.
func TestTrackingService_Track_CacheFailureFallsThrough(t *testing.T) {
	provider := &mockProvider{
		courier: domain.CourierDTDC,
		record:  &domain.ShipmentRecord{Courier: domain.CourierDTDC, TrackingNumber: "D123", Status: "In Transit"},
	}
	recordCache := newMockRecordCache()
	recordCache.getErr = errors.New("connection reset")
	svc := NewTrackingService([]ports.TrackingProvider{provider}, recordCache)

	record, err := svc.Track(context.Background(), "D123", domain.CourierDTDC)

	require.NoError(t, err)
	assert.Equal(t, "In Transit", record.Status)
	assert.Equal(t, 1, provider.calls)
}
