package handlers

import (
	"civicfix/internal/adapters/http/middleware"
	"civicfix/internal/core/services"
	"civicfix/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles admin dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats returns complaint counts and recent complaints
// @Summary Dashboard statistics
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	stats, err := h.dashboardService.Stats(c.Context(), principal)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "", stats)
}
