package models

// TeacherWorkload sums scheduled hours per teacher over a date range.
type TeacherWorkload struct {
	TeacherID string  `json:"teacher_id"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Hours     float64 `json:"hours"`
}

// RoomOccupancy sums scheduled hours per room over a date range.
type RoomOccupancy struct {
	RoomID string  `json:"room_id"`
	Name   string  `json:"name"`
	Campus string  `json:"campus"`
	Hours  float64 `json:"hours"`
}
