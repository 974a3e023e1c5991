package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/edutech-id/campus-timetable-api/internal/service"
)

// MetricsHandler exposes the Prometheus scrape endpoint.
type MetricsHandler struct {
	metrics *service.MetricsService
}

// NewMetricsHandler constructs handler.
func NewMetricsHandler(metrics *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// Prometheus serves the registry in text exposition format.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	gin.WrapH(h.metrics.Handler())(c)
}
