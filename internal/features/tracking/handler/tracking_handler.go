package handler

import (
	"errors"

	"shipment-tracker/internal/features/tracking/domain"
	"shipment-tracker/internal/features/tracking/service"

	"github.com/gofiber/fiber/v2"
)

// TrackingHandler handles HTTP requests for tracking operations.
type TrackingHandler struct {
	trackingService *service.TrackingService
}

// NewTrackingHandler creates a new TrackingHandler.
func NewTrackingHandler(trackingService *service.TrackingService) *TrackingHandler {
	return &TrackingHandler{
		trackingService: trackingService,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// Track godoc
// @Summary Track a shipment
// @Description Fetches and normalizes the shipment state for a tracking number. A failed courier fetch still returns a record, with its error field set.
// @Tags tracking
// @Produce json
// @Param number path string true "Tracking Number"
// @Param courier query string true "Courier name (Blue Dart, DTDC, Delhivery)"
// @Success 200 {object} domain.ShipmentRecord
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /tracking/{number} [get]
func (h *TrackingHandler) Track(c *fiber.Ctx) error {
	trackingNumber := c.Params("number")
	if trackingNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "tracking number is required",
			RayID:   c.Locals("requestid").(string),
		})
	}

	courierName := c.Query("courier")
	if courierName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "courier query parameter is required",
			RayID:   c.Locals("requestid").(string),
		})
	}

	courier, err := domain.ParseCourier(courierName)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}

	record, err := h.trackingService.Track(c.Context(), trackingNumber, courier)
	if err != nil {
		if errors.Is(err, service.ErrCourierNotSupported) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Message: "courier not supported",
				RayID:   c.Locals("requestid").(string),
			})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}

	// Fetch failures are part of the record contract, not HTTP errors.
	return c.JSON(record)
}
