package handler

import (
	"errors"
	"net/http"

	"shipment-tracker/internal/core/logger"
	tracking "shipment-tracker/internal/features/tracking/domain"
	"shipment-tracker/internal/features/watchlist/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// WatchlistHandler handles HTTP requests for the watchlist.
type WatchlistHandler struct {
	service *service.WatchlistService
}

// NewWatchlistHandler creates a new WatchlistHandler.
func NewWatchlistHandler(service *service.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{
		service: service,
	}
}

// AddEntryRequest represents the request body for tracking a shipment.
type AddEntryRequest struct {
	TrackingID string `json:"tracking_id"`
	Courier    string `json:"courier"`
}

// List handles GET /watchlist.
// @Summary List tracked shipments
// @Description Returns every watchlist entry with its last-known summary.
// @Tags watchlist
// @Produce json
// @Success 200 {object} domain.Watchlist
// @Failure 500 {object} map[string]string
// @Router /watchlist [get]
func (h *WatchlistHandler) List(c *fiber.Ctx) error {
	list, err := h.service.List()
	if err != nil {
		logger.Get().Error("Failed to list watchlist", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
	return c.Status(http.StatusOK).JSON(list)
}

// Add handles POST /watchlist.
// @Summary Track a new shipment
// @Description Adds a tracking number to the watchlist.
// @Tags watchlist
// @Accept json
// @Produce json
// @Param entry body AddEntryRequest true "Shipment to track"
// @Success 201 {object} domain.Entry
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /watchlist [post]
func (h *WatchlistHandler) Add(c *fiber.Ctx) error {
	var req AddEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.TrackingID == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "tracking_id is required",
		})
	}

	courier, err := tracking.ParseCourier(req.Courier)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	entry, err := h.service.Add(req.TrackingID, courier)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyTracked) {
			return c.Status(http.StatusConflict).JSON(fiber.Map{
				"error": "tracking number already exists",
			})
		}
		logger.Get().Error("Failed to add watchlist entry", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusCreated).JSON(entry)
}

// Remove handles DELETE /watchlist/:id.
// @Summary Stop tracking a shipment
// @Description Removes a tracking number from the watchlist.
// @Tags watchlist
// @Produce json
// @Param id path string true "Tracking Number"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /watchlist/{id} [delete]
func (h *WatchlistHandler) Remove(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.service.Remove(id); err != nil {
		if errors.Is(err, service.ErrNotTracked) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{
				"error": "tracking number not found",
			})
		}
		logger.Get().Error("Failed to remove watchlist entry", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Entry removed",
	})
}

// Refresh handles POST /watchlist/refresh.
// @Summary Refresh tracked shipments
// @Description Re-fetches every pending entry sequentially; delivered entries are skipped unless force=true. Returns the fetched records keyed by tracking number.
// @Tags watchlist
// @Produce json
// @Param force query bool false "Also refresh delivered entries"
// @Success 200 {object} map[string]domain.ShipmentRecord
// @Failure 500 {object} map[string]string
// @Router /watchlist/refresh [post]
func (h *WatchlistHandler) Refresh(c *fiber.Ctx) error {
	force := c.QueryBool("force")

	results, err := h.service.Refresh(c.Context(), force)
	if err != nil {
		logger.Get().Error("Failed to refresh watchlist", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(results)
}
