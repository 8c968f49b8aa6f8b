package adapter

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"shipment-tracker/internal/core/htmlscan"
	"shipment-tracker/internal/core/logger"
	"shipment-tracker/internal/features/tracking/domain"

	"go.uber.org/zap"
)

// BlueDartAdapter tracks shipments by scraping the server-rendered
// Blue Dart result page.
type BlueDartAdapter struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewBlueDartAdapter creates a BlueDartAdapter against the given page
// endpoint. The client carries the browser-like headers and timeout.
func NewBlueDartAdapter(baseURL string, client *http.Client) *BlueDartAdapter {
	return &BlueDartAdapter{
		baseURL: baseURL,
		client:  client,
		logger:  logger.Get(),
	}
}

// Track fetches the tracking page and reduces it to a ShipmentRecord.
func (a *BlueDartAdapter) Track(trackingNumber string) *domain.ShipmentRecord {
	url := fmt.Sprintf("%s?trackFor=0&trackNo=%s", a.baseURL, trackingNumber)

	resp, err := a.client.Get(url)
	if err != nil {
		return domain.NewErrorRecord(domain.CourierBlueDart, trackingNumber, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.NewErrorRecord(domain.CourierBlueDart, trackingNumber,
			fmt.Sprintf("unexpected status: %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.NewErrorRecord(domain.CourierBlueDart, trackingNumber, err.Error())
	}

	record := parseBlueDartPage(string(body), trackingNumber)
	a.logger.Debug("Blue Dart page parsed",
		zap.String("tracking_number", trackingNumber),
		zap.Int("scan_events", len(record.ScanEvents)),
	)
	return record
}

// Courier returns the courier handled by this adapter.
func (a *BlueDartAdapter) Courier() domain.Courier {
	return domain.CourierBlueDart
}

// region identifies which tab of the result page the walker is inside.
// The page marks the shipment-details tab with a div id prefixed "SHIP"
// and the scan-history tab with one prefixed "SCAN"; entering one
// region exits the other.
type region int

const (
	regionNone region = iota
	regionShipmentDetails
	regionScanHistory
)

// Header-label sentinels: a scan-history row starting with one of these
// is a column header, not data.
var scanHeaderLabels = []string{"Location", "24 Hr Format", "Feedback By"}

// blueDartWalker is the state machine that reduces scanner events to a
// ShipmentRecord. Row cells accumulate between tr open and tr close;
// the row is classified when it closes.
type blueDartWalker struct {
	record *domain.ShipmentRecord

	region       region
	row          []string
	inCell       bool
	inLabel      bool
	captureNextP bool
	lastStartTag string
}

func parseBlueDartPage(markup, trackingNumber string) *domain.ShipmentRecord {
	w := &blueDartWalker{
		record: &domain.ShipmentRecord{
			Courier:        domain.CourierBlueDart,
			TrackingNumber: trackingNumber,
		},
	}
	htmlscan.Scan(markup, w)
	return w.record
}

// StartTag implements htmlscan.Handler.
func (w *blueDartWalker) StartTag(name string, attrs []htmlscan.Attr) {
	w.lastStartTag = name
	switch name {
	case "label":
		w.inLabel = true
	case "div":
		id := htmlscan.Get(attrs, "id")
		if strings.HasPrefix(id, "SHIP") {
			w.region = regionShipmentDetails
		} else if strings.HasPrefix(id, "SCAN") {
			w.region = regionScanHistory
		}
	case "tr":
		w.row = nil
	case "td", "th":
		w.inCell = true
	}
}

// EndTag implements htmlscan.Handler.
func (w *blueDartWalker) EndTag(name string) {
	switch name {
	case "label":
		w.inLabel = false
	case "td", "th":
		w.inCell = false
	case "tr":
		w.closeRow()
	}
}

// Text implements htmlscan.Handler.
func (w *blueDartWalker) Text(data string) {
	clean := strings.TrimSpace(data)
	if clean == "" {
		return
	}
	if w.inLabel && strings.Contains(clean, "Status") {
		w.captureNextP = true
	}
	// The paragraph capture overwrites any table-derived status; the
	// table capture below only fills an empty status. Whichever fires
	// later in document order therefore wins for the paragraph path.
	if w.captureNextP && w.lastStartTag == "p" {
		w.record.Status = clean
		w.captureNextP = false
	}
	if w.inCell {
		w.row = append(w.row, clean)
	}
}

// closeRow classifies the accumulated row cells by region.
func (w *blueDartWalker) closeRow() {
	switch {
	case w.region == regionShipmentDetails && len(w.row) >= 2:
		key := strings.Trim(strings.Join(strings.Fields(w.row[0]), " "), " :")
		value := w.row[1]
		w.record.DeliveryDetails.Set(key, value)
		if strings.Contains(key, "Status") && w.record.Status == "" {
			w.record.Status = strings.TrimSpace(strings.SplitN(value, "\n", 2)[0])
		}
	case w.region == regionScanHistory && len(w.row) >= 3:
		location := w.row[0]
		for _, label := range scanHeaderLabels {
			if strings.Contains(location, label) {
				return
			}
		}
		event := domain.ScanEvent{
			Location: location,
			Details:  w.row[1],
			Date:     w.row[2],
		}
		if len(w.row) > 3 {
			event.Time = w.row[3]
		}
		w.record.ScanEvents = append(w.record.ScanEvents, event)
	}
}
