package adapter

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shipment-tracker/internal/features/tracking/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDTDCAdapter_mapDTDCResponse_Success verifies the reduction of a
// typical payload, including literal tag stripping.
func TestDTDCAdapter_mapDTDCResponse_Success(t *testing.T) {
	jsonContent := `{
    "header": {
        "currentStatusDescription": "In Transit",
        "originCity": "MUMBAI",
        "destinationCity": "DELHI",
        "noOfPieces": 2,
        "serviceName": "EXPRESS"
    },
    "statuses": [
        {
            "statusDescription": "In Transit<br><b>Mumbai Hub</b>",
            "actCityName": "Mumbai",
            "statusTimestamp": "2024-01-02 10:30"
        },
        {
            "statusDescription": "Booked",
            "actCityName": "",
            "actBranchName": "Andheri Branch",
            "statusTimestamp": "2024-01-01 08:00 IST"
        }
    ]
}`
	var resp dtdcResponse
	err := json.Unmarshal([]byte(jsonContent), &resp)
	require.NoError(t, err)

	record := mapDTDCResponse(resp, "D123")

	require.False(t, record.Failed())
	assert.Equal(t, domain.CourierDTDC, record.Courier)
	assert.Equal(t, "In Transit", record.Status)

	require.Len(t, record.ScanEvents, 2)
	assert.Equal(t, domain.ScanEvent{
		Location: "Mumbai",
		Details:  "In Transit Mumbai Hub",
		Date:     "2024-01-02",
		Time:     "10:30",
	}, record.ScanEvents[0])

	// City missing: branch name takes over. Trailing timestamp tokens are
	// dropped.
	assert.Equal(t, "Andheri Branch", record.ScanEvents[1].Location)
	assert.Equal(t, "08:00", record.ScanEvents[1].Time)

	origin, _ := record.DeliveryDetails.Get("Origin")
	assert.Equal(t, "MUMBAI", origin)
	pieces, _ := record.DeliveryDetails.Get("Pieces")
	assert.Equal(t, "2", pieces)
	recipient, _ := record.DeliveryDetails.Get("Recipient")
	assert.Equal(t, "N/A", recipient)
}

// TestDTDCAdapter_mapDTDCResponse_StatusFallbacks verifies the
// header -> first event -> Unknown status chain.
func TestDTDCAdapter_mapDTDCResponse_StatusFallbacks(t *testing.T) {
	jsonContent := `{
    "statuses": [
        {"statusDescription": "Booked", "actCityName": "Pune", "statusTimestamp": "2024-01-01 08:00"}
    ]
}`
	var resp dtdcResponse
	require.NoError(t, json.Unmarshal([]byte(jsonContent), &resp))

	record := mapDTDCResponse(resp, "D123")
	assert.Equal(t, "Booked", record.Status)

	empty := mapDTDCResponse(dtdcResponse{}, "D123")
	assert.Equal(t, domain.StatusUnknown, empty.Status)
	assert.Empty(t, empty.ScanEvents)
}

// TestDTDCAdapter_mapDTDCResponse_DeliveredNormalization verifies that
// delivered variants gain the literal word.
func TestDTDCAdapter_mapDTDCResponse_DeliveredNormalization(t *testing.T) {
	var resp dtdcResponse
	resp.Header.CurrentStatusDescription = "Successful Delivery"

	record := mapDTDCResponse(resp, "D123")
	assert.Equal(t, "Successful Delivery (Delivered)", record.Status)
	assert.True(t, domain.IsDelivered(record.Status))

	// Already contains the word: left alone.
	resp.Header.CurrentStatusDescription = "Delivered to consignee"
	record = mapDTDCResponse(resp, "D123")
	assert.Equal(t, "Delivered to consignee", record.Status)
}

// TestDTDCAdapter_mapDTDCResponse_MissingLocation verifies the N/A
// location sentinel.
func TestDTDCAdapter_mapDTDCResponse_MissingLocation(t *testing.T) {
	jsonContent := `{"statuses": [{"statusDescription": "Booked"}]}`
	var resp dtdcResponse
	require.NoError(t, json.Unmarshal([]byte(jsonContent), &resp))

	record := mapDTDCResponse(resp, "D123")
	require.Len(t, record.ScanEvents, 1)
	assert.Equal(t, domain.LocationUnknown, record.ScanEvents[0].Location)
	assert.Equal(t, "", record.ScanEvents[0].Date)
}

// TestDTDCAdapter_Track_Success verifies the POST request shape and the
// end-to-end reduction.
func TestDTDCAdapter_Track_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req dtdcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "cnno", req.TrackType)
		assert.Equal(t, "D123", req.TrackNumber)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
            "header": {"currentStatusDescription": "In Transit"},
            "statuses": [{"statusDescription": "Booked", "actCityName": "Pune", "statusTimestamp": "2024-01-01 08:00"}]
        }`))
	}))
	defer ts.Close()

	adapter := NewDTDCAdapter(ts.URL, http.DefaultClient)
	record := adapter.Track("D123")

	require.False(t, record.Failed())
	assert.Equal(t, "In Transit", record.Status)
	require.Len(t, record.ScanEvents, 1)
	assert.Equal(t, "Pune", record.ScanEvents[0].Location)
}

// TestDTDCAdapter_Track_HTTPError verifies that a non-200 response
// becomes an error record.
func TestDTDCAdapter_Track_HTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	adapter := NewDTDCAdapter(ts.URL, http.DefaultClient)
	record := adapter.Track("D123")

	require.True(t, record.Failed())
	assert.Contains(t, record.Error, "unexpected status: 403")
}

// TestDTDCAdapter_Track_MalformedJSON verifies that a decode failure
// becomes an error record.
func TestDTDCAdapter_Track_MalformedJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance page</html>`))
	}))
	defer ts.Close()

	adapter := NewDTDCAdapter(ts.URL, http.DefaultClient)
	record := adapter.Track("D123")

	require.True(t, record.Failed())
	assert.NotEmpty(t, record.Error)
}
