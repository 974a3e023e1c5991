package dto

// CalendarEvent is one renderable timetable entry for the calendar view,
// filtered by a single teacher or a single room.
type CalendarEvent struct {
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
}
