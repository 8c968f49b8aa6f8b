package domain

import (
	"fmt"
	"strings"
)

// Courier identifies one of the supported courier services.
type Courier string

const (
	// CourierBlueDart is the Blue Dart Express courier.
	CourierBlueDart Courier = "Blue Dart"
	// CourierDTDC is the DTDC courier.
	CourierDTDC Courier = "DTDC"
	// CourierDelhivery is the Delhivery courier.
	CourierDelhivery Courier = "Delhivery"
)

// Couriers returns all supported couriers in a fixed order.
func Couriers() []Courier {
	return []Courier{CourierBlueDart, CourierDTDC, CourierDelhivery}
}

// ParseCourier converts a courier name into a Courier.
// Unknown names are rejected so that an unrecognized courier can never
// silently fall through status classification or provider routing.
func ParseCourier(name string) (Courier, error) {
	switch Courier(name) {
	case CourierBlueDart, CourierDTDC, CourierDelhivery:
		return Courier(name), nil
	default:
		return "", fmt.Errorf("unknown courier: %q", name)
	}
}

// LocationUnknown is the sentinel used when a scan has no usable location.
const LocationUnknown = "N/A"

// StatusUnknown is the sentinel used when no status could be extracted.
const StatusUnknown = "Unknown"

// ScanEvent is a single checkpoint in a shipment's scan history.
// Date and Time keep whatever granularity and format the courier
// provided; formats differ per courier and are not cross-validated.
type ScanEvent struct {
	// Location is where the scan happened, LocationUnknown when missing.
	Location string `json:"location"`
	// Details is the free-text description of the checkpoint.
	Details string `json:"details"`
	Date    string `json:"date"`
	Time    string `json:"time"`
}

// Detail is a single label/value pair of shipment metadata.
type Detail struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// DetailList is an ordered label->value mapping. Keys are
// courier-specific and sparse; consumers must not assume a fixed set.
type DetailList []Detail

// Set appends a label/value pair, replacing the value in place when the
// label was already set so first-seen ordering is preserved.
func (d *DetailList) Set(label, value string) {
	for i := range *d {
		if (*d)[i].Label == label {
			(*d)[i].Value = value
			return
		}
	}
	*d = append(*d, Detail{Label: label, Value: value})
}

// Get returns the value for a label and whether it was present.
func (d DetailList) Get(label string) (string, bool) {
	for _, detail := range d {
		if detail.Label == label {
			return detail.Value, true
		}
	}
	return "", false
}

// ShipmentRecord is the canonical, courier-independent view of one
// shipment. It is constructed fresh on every fetch and never mutated
// afterwards. Either Error is set and every informational field is
// empty, or Error is empty and Status is best-effort populated.
type ShipmentRecord struct {
	Courier        Courier `json:"courier"`
	TrackingNumber string  `json:"tracking_number,omitempty"`
	// Status is the free-text primary status line.
	Status string `json:"status,omitempty"`
	// DeliveryDetails holds courier-specific metadata such as Origin,
	// Destination or Recipient.
	DeliveryDetails DetailList `json:"delivery_details,omitempty"`
	// ScanEvents preserves upstream order; no chronological re-sort is
	// applied, so the first event is not guaranteed to be the latest.
	ScanEvents []ScanEvent `json:"scan_events,omitempty"`
	// Error describes a total fetch or decode failure. When set, all
	// other fields are unpopulated.
	Error string `json:"error,omitempty"`
}

// NewErrorRecord builds a record representing a failed fetch.
func NewErrorRecord(courier Courier, trackingNumber, message string) *ShipmentRecord {
	return &ShipmentRecord{
		Courier:        courier,
		TrackingNumber: trackingNumber,
		Error:          message,
	}
}

// Failed reports whether the record represents a failed fetch.
func (r *ShipmentRecord) Failed() bool {
	return r.Error != ""
}

// IsDelivered classifies a free-text status line as delivered.
// Adapters normalize their delivered variants to contain the literal
// word, so this is the single classification point for coarse
// Delivered/Pending state.
func IsDelivered(status string) bool {
	return strings.Contains(status, "Delivered")
}
