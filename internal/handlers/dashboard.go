package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/woffu/woffu/internal/middleware"
	"github.com/woffu/woffu/internal/services"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard returns the aggregation rollups for the caller
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	member, ok := middleware.GetMember(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	stats, err := h.dashboardService.Stats(member, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
