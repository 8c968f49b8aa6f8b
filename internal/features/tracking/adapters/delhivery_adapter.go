package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"shipment-tracker/internal/core/logger"
	"shipment-tracker/internal/features/tracking/domain"

	"go.uber.org/zap"
)

// DelhiveryAdapter tracks shipments through the Delhivery
// unified-tracking API.
type DelhiveryAdapter struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewDelhiveryAdapter creates a DelhiveryAdapter against the given API
// endpoint.
func NewDelhiveryAdapter(baseURL string, client *http.Client) *DelhiveryAdapter {
	return &DelhiveryAdapter{
		baseURL: baseURL,
		client:  client,
		logger:  logger.Get(),
	}
}

// delhiveryResponse represents the JSON structure from the Delhivery API.
type delhiveryResponse struct {
	Data []struct {
		Status struct {
			Status     string `json:"status"`
			StatusType string `json:"statusType"`
		} `json:"status"`
		Consignor      string `json:"consignor"`
		Consignee      string `json:"consignee"`
		Destination    string `json:"destination"`
		DeliveryDate   string `json:"deliveryDate"`
		TrackingStates []struct {
			Scans []struct {
				ScannedLocation string `json:"scannedLocation"`
				CityLocation    string `json:"cityLocation"`
				ScanNslRemark   string `json:"scanNslRemark"`
				Scan            string `json:"scan"`
				ScanDateTime    string `json:"scanDateTime"`
			} `json:"scans"`
		} `json:"trackingStates"`
	} `json:"data"`
}

// Track fetches the unified-tracking endpoint and reduces the response
// to a ShipmentRecord.
func (a *DelhiveryAdapter) Track(trackingNumber string) *domain.ShipmentRecord {
	url := fmt.Sprintf("%s?wbn=%s", a.baseURL, trackingNumber)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return domain.NewErrorRecord(domain.CourierDelhivery, trackingNumber, err.Error())
	}
	// The API rejects requests that do not look like they come from the
	// public tracking page.
	req.Host = req.URL.Host
	req.Header.Set("Referer", "https://www.delhivery.com/")
	req.Header.Set("Origin", "https://www.delhivery.com")
	req.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := a.client.Do(req)
	if err != nil {
		return domain.NewErrorRecord(domain.CourierDelhivery, trackingNumber, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.NewErrorRecord(domain.CourierDelhivery, trackingNumber,
			fmt.Sprintf("unexpected status: %d", resp.StatusCode))
	}

	var parsed delhiveryResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return domain.NewErrorRecord(domain.CourierDelhivery, trackingNumber, err.Error())
	}

	record := mapDelhiveryResponse(parsed, trackingNumber)
	a.logger.Debug("Delhivery response parsed",
		zap.String("tracking_number", trackingNumber),
		zap.Int("scan_events", len(record.ScanEvents)),
	)
	return record
}

// Courier returns the courier handled by this adapter.
func (a *DelhiveryAdapter) Courier() domain.Courier {
	return domain.CourierDelhivery
}

// mapDelhiveryResponse converts a decoded Delhivery payload to the
// canonical record. The first data element is the shipment; the rest
// are ignored.
func mapDelhiveryResponse(resp delhiveryResponse, trackingNumber string) *domain.ShipmentRecord {
	if len(resp.Data) == 0 {
		return domain.NewErrorRecord(domain.CourierDelhivery, trackingNumber, "No data found")
	}
	shipment := resp.Data[0]

	record := &domain.ShipmentRecord{
		Courier:        domain.CourierDelhivery,
		TrackingNumber: trackingNumber,
	}

	for _, state := range shipment.TrackingStates {
		for _, scan := range state.Scans {
			location := scan.ScannedLocation
			if location == "" {
				location = scan.CityLocation
			}
			if location == "" {
				location = domain.LocationUnknown
			}

			details := scan.ScanNslRemark
			if details == "" {
				details = scan.Scan
			}
			if details == "" {
				details = "Scan"
			}

			date, clock := splitScanTimestamp(scan.ScanDateTime)
			record.ScanEvents = append(record.ScanEvents, domain.ScanEvent{
				Location: location,
				Details:  details,
				Date:     date,
				Time:     clock,
			})
		}
	}

	status := shipment.Status.Status
	if status == "" {
		status = shipment.Status.StatusType
	}
	if status == "" {
		status = domain.StatusUnknown
	}
	record.Status = status

	record.DeliveryDetails.Set("Origin", shipment.Consignor)
	record.DeliveryDetails.Set("Destination", shipment.Destination)
	record.DeliveryDetails.Set("Expected Delivery", shipment.DeliveryDate)
	record.DeliveryDetails.Set("Recipient", shipment.Consignee)

	return record
}

// splitScanTimestamp splits an ISO-ish "2024-01-02T14:45:00" timestamp
// into its date part and an HH:MM clock. This assumes the segment after
// the last 'T' starts with HH:MM and does not validate the shape; a
// timestamp without 'T' is returned whole as the date and its first
// five characters as the clock.
func splitScanTimestamp(ts string) (date, clock string) {
	if ts == "" {
		return "", ""
	}
	parts := strings.Split(ts, "T")
	date = parts[0]
	clock = parts[len(parts)-1]
	if len(clock) > 5 {
		clock = clock[:5]
	}
	return date, clock
}
