package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edutech-id/campus-timetable-api/internal/dto"
	"github.com/edutech-id/campus-timetable-api/internal/service"
	appErrors "github.com/edutech-id/campus-timetable-api/pkg/errors"
	"github.com/edutech-id/campus-timetable-api/pkg/response"
)

// ScheduleHandler exposes batch scheduling, the master list and the
// calendar projection.
type ScheduleHandler struct {
	batch    *service.BatchService
	master   *service.MasterListService
	calendar *service.CalendarService
	export   *service.ExportService
	metrics  *service.MetricsService
}

// NewScheduleHandler constructs handler.
func NewScheduleHandler(
	batch *service.BatchService,
	master *service.MasterListService,
	calendar *service.CalendarService,
	export *service.ExportService,
	metrics *service.MetricsService,
) *ScheduleHandler {
	return &ScheduleHandler{batch: batch, master: master, calendar: calendar, export: export, metrics: metrics}
}

// Batch godoc
// @Summary Schedule a class for one date or a weekly pattern
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body dto.BatchScheduleRequest true "Batch request"
// @Success 200 {object} response.Envelope
// @Router /schedule/batch [post]
func (h *ScheduleHandler) Batch(c *gin.Context) {
	var req dto.BatchScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid batch schedule payload"))
		return
	}
	result, err := h.batch.Schedule(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordScheduleOutcome(len(result.Accepted), len(result.Rejected))
	response.JSON(c, http.StatusOK, result)
}

// List godoc
// @Summary Master schedule as flat rows
// @Tags Schedule
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedule [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.master.Rows(c.Request.Context()))
}

// Replace godoc
// @Summary Overwrite the whole schedule from edited rows
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body dto.ReplaceScheduleRequest true "Replacement rows"
// @Success 200 {object} response.Envelope
// @Router /schedule [put]
func (h *ScheduleHandler) Replace(c *gin.Context) {
	var req dto.ReplaceScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule replacement payload"))
		return
	}
	result, err := h.master.Replace(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Clear godoc
// @Summary Delete every scheduled assignment
// @Tags Schedule
// @Success 204
// @Router /schedule [delete]
func (h *ScheduleHandler) Clear(c *gin.Context) {
	h.master.Clear(c.Request.Context())
	response.NoContent(c)
}

// Calendar godoc
// @Summary Calendar events for one teacher or one room
// @Tags Schedule
// @Produce json
// @Param teacher_id query string false "Teacher ID"
// @Param room_id query string false "Room ID"
// @Success 200 {object} response.Envelope
// @Router /schedule/calendar [get]
func (h *ScheduleHandler) Calendar(c *gin.Context) {
	events, err := h.calendar.Events(c.Request.Context(), c.Query("teacher_id"), c.Query("room_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events)
}

// ExportCSV godoc
// @Summary Download the master schedule as CSV
// @Tags Schedule
// @Produce text/csv
// @Success 200 {string} string "CSV payload"
// @Router /schedule/export [get]
func (h *ScheduleHandler) ExportCSV(c *gin.Context) {
	result, err := h.export.MasterSchedule(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	serveDownload(c, result)
}

func serveDownload(c *gin.Context, result *service.ExportResult) {
	c.Header("Content-Disposition", "attachment; filename="+result.Filename)
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}
