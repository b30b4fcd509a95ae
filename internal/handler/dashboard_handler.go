package handler

import (
	"time"

	"github.com/Rafael22222222/smartbiz.lux/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetDashboardStats returns today-vs-yesterday aggregates
// Query params: as_of (RFC3339, default now)
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	asOf := time.Now()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid as_of, expected RFC3339"})
		}
		asOf = parsed
	}

	stats, err := h.service.ComputeDashboardStats(ownerID(c), asOf)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(stats)
}
