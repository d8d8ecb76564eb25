package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Harish222600/LMS-SELL-sub001/internal/service"
	"github.com/Harish222600/LMS-SELL-sub001/pkg/response"
)

// AnalyticsHandler exposes platform analytics endpoints.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

// NewAnalyticsHandler constructs AnalyticsHandler.
func NewAnalyticsHandler(analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Platform godoc
// @Summary Platform-wide analytics
// @Description Per-category rollups with completion and success rates. The
// @Description meta.demo_data flag marks payloads served by the demo fallback.
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /admin/analytics [get]
func (h *AnalyticsHandler) Platform(c *gin.Context) {
	payload, cacheHit, demo, err := h.analytics.Platform(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	meta := map[string]interface{}{"cache_hit": cacheHit}
	if demo {
		meta["demo_data"] = true
	}
	response.JSON(c, http.StatusOK, payload, nil, meta)
}

// System godoc
// @Summary Runtime metrics snapshot
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/analytics/system [get]
func (h *AnalyticsHandler) System(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.analytics.SystemMetrics(), nil)
}
