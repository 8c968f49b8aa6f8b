package adapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"shipment-tracker/internal/core/logger"
	"shipment-tracker/internal/features/tracking/domain"

	"go.uber.org/zap"
)

// DTDCAdapter tracks shipments through the DTDC domestic tracking API.
type DTDCAdapter struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewDTDCAdapter creates a DTDCAdapter against the given API endpoint.
func NewDTDCAdapter(baseURL string, client *http.Client) *DTDCAdapter {
	return &DTDCAdapter{
		baseURL: baseURL,
		client:  client,
		logger:  logger.Get(),
	}
}

// dtdcRequest is the POST body expected by the tracking API.
type dtdcRequest struct {
	TrackType   string `json:"trackType"`
	TrackNumber string `json:"trackNumber"`
}

// dtdcResponse represents the JSON structure from the DTDC API.
// Field presence is irregular; everything is optional.
type dtdcResponse struct {
	Header struct {
		CurrentStatusDescription string      `json:"currentStatusDescription"`
		OriginCity               string      `json:"originCity"`
		DestinationCity          string      `json:"destinationCity"`
		NoOfPieces               json.Number `json:"noOfPieces"`
		ServiceName              string      `json:"serviceName"`
	} `json:"header"`
	Statuses []struct {
		StatusDescription string `json:"statusDescription"`
		ActCityName       string `json:"actCityName"`
		ActBranchName     string `json:"actBranchName"`
		StatusTimestamp   string `json:"statusTimestamp"`
	} `json:"statuses"`
}

// Payloads embed a handful of known literal tags in status text. Only
// these are stripped; a general tag stripper is deliberately avoided.
var dtdcTagReplacer = strings.NewReplacer("<br>", " ", "<b>", "", "</b>", "")

// Track posts the tracking query and reduces the response to a
// ShipmentRecord.
func (a *DTDCAdapter) Track(trackingNumber string) *domain.ShipmentRecord {
	payload, err := json.Marshal(dtdcRequest{TrackType: "cnno", TrackNumber: trackingNumber})
	if err != nil {
		return domain.NewErrorRecord(domain.CourierDTDC, trackingNumber, err.Error())
	}

	req, err := http.NewRequest(http.MethodPost, a.baseURL, bytes.NewReader(payload))
	if err != nil {
		return domain.NewErrorRecord(domain.CourierDTDC, trackingNumber, err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return domain.NewErrorRecord(domain.CourierDTDC, trackingNumber, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.NewErrorRecord(domain.CourierDTDC, trackingNumber,
			fmt.Sprintf("unexpected status: %d", resp.StatusCode))
	}

	var parsed dtdcResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return domain.NewErrorRecord(domain.CourierDTDC, trackingNumber, err.Error())
	}

	record := mapDTDCResponse(parsed, trackingNumber)
	a.logger.Debug("DTDC response parsed",
		zap.String("tracking_number", trackingNumber),
		zap.Int("scan_events", len(record.ScanEvents)),
	)
	return record
}

// Courier returns the courier handled by this adapter.
func (a *DTDCAdapter) Courier() domain.Courier {
	return domain.CourierDTDC
}

// mapDTDCResponse converts a decoded DTDC payload to the canonical record.
func mapDTDCResponse(resp dtdcResponse, trackingNumber string) *domain.ShipmentRecord {
	record := &domain.ShipmentRecord{
		Courier:        domain.CourierDTDC,
		TrackingNumber: trackingNumber,
	}

	for _, entry := range resp.Statuses {
		location := entry.ActCityName
		if location == "" {
			location = entry.ActBranchName
		}
		if location == "" {
			location = domain.LocationUnknown
		}

		event := domain.ScanEvent{
			Location: location,
			Details:  dtdcTagReplacer.Replace(entry.StatusDescription),
		}
		// Timestamp is "<date> <time>"; tokens beyond the second are ignored.
		if tokens := strings.Fields(entry.StatusTimestamp); len(tokens) > 0 {
			event.Date = tokens[0]
			if len(tokens) > 1 {
				event.Time = tokens[1]
			}
		}
		record.ScanEvents = append(record.ScanEvents, event)
	}

	// Whether statuses[0] is the latest or the earliest event is not
	// defined by the payload; source order is preserved and the first
	// element feeds the fallback status. Do not read chronological
	// meaning into it.
	status := resp.Header.CurrentStatusDescription
	if status == "" && len(record.ScanEvents) > 0 {
		status = record.ScanEvents[0].Details
	}
	if status == "" {
		status = domain.StatusUnknown
	}

	// Delivered variants such as "Successful Delivery" are normalized
	// so coarse classification only needs the literal word.
	if strings.Contains(status, "Successful") && !strings.Contains(status, "Delivered") {
		status += " (Delivered)"
	}
	record.Status = status

	record.DeliveryDetails.Set("Origin", resp.Header.OriginCity)
	record.DeliveryDetails.Set("Destination", resp.Header.DestinationCity)
	record.DeliveryDetails.Set("Pieces", resp.Header.NoOfPieces.String())
	record.DeliveryDetails.Set("Service", resp.Header.ServiceName)
	// Not present in this courier's payload.
	record.DeliveryDetails.Set("Date of Delivery", "N/A")
	record.DeliveryDetails.Set("Recipient", "N/A")

	return record
}
