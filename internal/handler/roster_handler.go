package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edutech-id/campus-timetable-api/internal/service"
	appErrors "github.com/edutech-id/campus-timetable-api/pkg/errors"
	"github.com/edutech-id/campus-timetable-api/pkg/response"
)

// RosterHandler exposes teacher and room registry endpoints.
type RosterHandler struct {
	roster *service.RosterService
}

// NewRosterHandler constructs handler.
func NewRosterHandler(roster *service.RosterService) *RosterHandler {
	return &RosterHandler{roster: roster}
}

// ImportTeachers godoc
// @Summary Import teachers from CSV
// @Tags Roster
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV with ID, Name and optional Type columns"
// @Success 200 {object} response.Envelope
// @Router /teachers/import [post]
func (h *RosterHandler) ImportTeachers(c *gin.Context) {
	file, err := openUpload(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	result, err := h.roster.ImportTeachers(c.Request.Context(), file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// ImportRooms godoc
// @Summary Import rooms from CSV
// @Tags Roster
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV with ID, Name and Campus columns"
// @Success 200 {object} response.Envelope
// @Router /rooms/import [post]
func (h *RosterHandler) ImportRooms(c *gin.Context) {
	file, err := openUpload(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	result, err := h.roster.ImportRooms(c.Request.Context(), file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// ListTeachers godoc
// @Summary List registered teachers
// @Tags Roster
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /teachers [get]
func (h *RosterHandler) ListTeachers(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.roster.Teachers(c.Request.Context()))
}

// ListRooms godoc
// @Summary List registered rooms
// @Tags Roster
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /rooms [get]
func (h *RosterHandler) ListRooms(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.roster.Rooms(c.Request.Context()))
}

// UpdateTeacher godoc
// @Summary Update a teacher record
// @Tags Roster
// @Accept json
// @Produce json
// @Param id path string true "Teacher ID"
// @Param payload body service.UpdateTeacherRequest true "Teacher payload"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id} [put]
func (h *RosterHandler) UpdateTeacher(c *gin.Context) {
	var req service.UpdateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload"))
		return
	}
	teacher, err := h.roster.UpdateTeacher(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teacher)
}

func openUpload(c *gin.Context) (io.ReadCloser, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "multipart field 'file' is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "failed to open uploaded file")
	}
	return file, nil
}
