package domain

import (
	"sort"
	"time"

	tracking "shipment-tracker/internal/features/tracking/domain"
)

// CoarseStatus is the two-state classification persisted per entry.
type CoarseStatus string

const (
	// CoarseStatusDelivered marks a shipment as delivered.
	CoarseStatusDelivered CoarseStatus = "Delivered"
	// CoarseStatusPending marks everything that is not yet delivered.
	CoarseStatusPending CoarseStatus = "Pending"
)

// Summary is the lossy projection of a ShipmentRecord that survives in
// the watchlist; the full record is never persisted.
type Summary struct {
	// Status is the last free-text status line.
	Status string `json:"status"`
	// Recipient is taken from the record's delivery details, "N/A"
	// when the courier does not expose one.
	Recipient string `json:"recipient"`
}

// Entry is one tracked shipment.
type Entry struct {
	// TrackingID is the tracking number; it is also the watchlist key.
	TrackingID string `json:"tracking_id"`
	// Courier identifies which adapter refreshes this entry.
	Courier tracking.Courier `json:"courier"`
	// Status is the coarse Delivered/Pending state.
	Status CoarseStatus `json:"status"`
	// LastChecked is when the entry was last refreshed, zero if never.
	LastChecked time.Time `json:"last_checked,omitempty"`
	// Summary is the last successful fetch result, nil if never fetched.
	Summary *Summary `json:"summary,omitempty"`
}

// Watchlist is the full tracked set, keyed by tracking id.
type Watchlist map[string]Entry

// SortedIDs returns the tracking ids in lexicographic order. Map
// iteration order is unspecified, so batch operations use this to stay
// deterministic.
func (w Watchlist) SortedIDs() []string {
	ids := make([]string, 0, len(w))
	for id := range w {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NewEntry creates a fresh, never-checked entry.
func NewEntry(trackingID string, courier tracking.Courier) Entry {
	return Entry{
		TrackingID: trackingID,
		Courier:    courier,
		Status:     CoarseStatusPending,
	}
}

// Refreshed returns the entry updated from a successful fetch. The
// caller must not pass a failed record; an error record carries no
// usable state and must leave the stored entry untouched.
func (e Entry) Refreshed(record *tracking.ShipmentRecord, now time.Time) Entry {
	status := CoarseStatusPending
	if tracking.IsDelivered(record.Status) {
		status = CoarseStatusDelivered
	}

	recipient, ok := record.DeliveryDetails.Get("Recipient")
	if !ok || recipient == "" {
		recipient = "N/A"
	}

	e.Status = status
	e.LastChecked = now.UTC()
	e.Summary = &Summary{
		Status:    record.Status,
		Recipient: recipient,
	}
	return e
}

// Delivered reports whether the entry is in the delivered state.
func (e Entry) Delivered() bool {
	return e.Status == CoarseStatusDelivered
}
