package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-iot/attendance-service/internal/services"
	"github.com/campus-iot/attendance-service/internal/utils"
)

type DashboardHandler struct {
	BaseHandler
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:      NewBaseHandler(logger),
		dashboardService: dashboardService,
	}
}

// GetSummary returns the aggregate counters for one day. Defaults to today
// when no date query parameter is given.
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	summary, err := h.dashboardService.Summary(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
