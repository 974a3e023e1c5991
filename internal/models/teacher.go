package models

// DefaultTeacherType is assigned when an imported row omits the Type column.
const DefaultTeacherType = "Full-time"

// Teacher represents an instructor record in the entity registry.
type Teacher struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}
