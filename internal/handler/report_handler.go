package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edutech-id/campus-timetable-api/internal/middleware"
	"github.com/edutech-id/campus-timetable-api/internal/service"
	appErrors "github.com/edutech-id/campus-timetable-api/pkg/errors"
	"github.com/edutech-id/campus-timetable-api/pkg/response"
)

const reportDateLayout = "2006-01-02"

// ReportHandler exposes workload and occupancy reporting endpoints.
type ReportHandler struct {
	reports *service.ReportService
	export  *service.ExportService
}

// NewReportHandler constructs handler.
func NewReportHandler(reports *service.ReportService, export *service.ExportService) *ReportHandler {
	return &ReportHandler{reports: reports, export: export}
}

// Summary godoc
// @Summary Teacher workload and room occupancy for a date range
// @Tags Reports
// @Produce json
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /reports [get]
func (h *ReportHandler) Summary(c *gin.Context) {
	from, to, err := parseRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	summary, cached, err := h.reports.Summary(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cached)
	response.JSON(c, http.StatusOK, summary, middleware.ExtractMeta(c))
}

// Export godoc
// @Summary Download the range report as CSV or PDF
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {string} string "File payload"
// @Router /reports/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	from, to, err := parseRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	format := c.DefaultQuery("format", service.FormatCSV)
	result, err := h.export.RangeReport(c.Request.Context(), from, to, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	serveDownload(c, result)
}

func parseRange(c *gin.Context) (time.Time, time.Time, error) {
	fromRaw := c.Query("from")
	toRaw := c.Query("to")
	if fromRaw == "" || toRaw == "" {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, "from and to query parameters are required")
	}
	from, err := time.ParseInLocation(reportDateLayout, fromRaw, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, "from must be formatted YYYY-MM-DD")
	}
	to, err := time.ParseInLocation(reportDateLayout, toRaw, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, "to must be formatted YYYY-MM-DD")
	}
	return from, to, nil
}
