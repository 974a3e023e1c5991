package dto

import "github.com/edutech-id/campus-timetable-api/internal/models"

// Scheduling modes accepted by the batch endpoint.
const (
	ModeSingle = "single"
	ModeWeekly = "weekly"
)

// BatchScheduleRequest asks the scheduler to place one class occurrence or a
// weekday-repeated month of them. Times of day are fixed across all
// generated dates.
type BatchScheduleRequest struct {
	Mode      string `json:"mode" validate:"required,oneof=single weekly"`
	ClassCode string `json:"classCode" validate:"required"`
	TeacherID string `json:"teacherId" validate:"required"`
	RoomID    string `json:"roomId" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`

	// Single mode.
	Date string `json:"date" validate:"required_if=Mode single"`

	// Weekly mode: every date of Month/Year whose weekday is in Weekdays
	// (1=Monday … 7=Sunday).
	Month    int   `json:"month" validate:"required_if=Mode weekly,omitempty,min=1,max=12"`
	Year     int   `json:"year" validate:"required_if=Mode weekly,omitempty,min=2000,max=2100"`
	Weekdays []int `json:"weekdays" validate:"required_if=Mode weekly,omitempty,dive,min=1,max=7"`
}

// RejectedDate records one candidate date the scheduler refused, with the
// first blocking reason found.
type RejectedDate struct {
	Date   string              `json:"date"`
	Kind   models.ConflictKind `json:"kind"`
	Reason string              `json:"reason"`
}

// BatchScheduleResponse partitions the batch outcome. Accepted assignments
// stay committed even when later candidates in the same batch fail.
type BatchScheduleResponse struct {
	Accepted []models.Assignment `json:"accepted"`
	Rejected []RejectedDate      `json:"rejected"`
}
