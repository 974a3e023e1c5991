package dto

import "github.com/edutech-id/campus-timetable-api/internal/models"

// ReportSummary pairs teacher workload and room occupancy totals for a
// date range, both sorted by descending hours.
type ReportSummary struct {
	Teachers []models.TeacherWorkload `json:"teachers"`
	Rooms    []models.RoomOccupancy   `json:"rooms"`
}
