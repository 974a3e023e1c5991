package models

// Room represents a bookable room. Campus groups rooms by physical site;
// travel-time rules only apply across different campuses.
type Room struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Campus string `json:"campus"`
}
