package models

import "time"

// Assignment is one committed class occurrence: a teacher in a room over a
// concrete time interval. Start < End always holds for stored assignments.
type Assignment struct {
	ID        string    `json:"id"`
	ClassCode string    `json:"class_code"`
	TeacherID string    `json:"teacher_id"`
	RoomID    string    `json:"room_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

// Candidate is a proposed assignment evaluated by the conflict checker
// before it is committed to the schedule store.
type Candidate struct {
	TeacherID string
	RoomID    string
	Start     time.Time
	End       time.Time
}

// ConflictKind labels why a candidate was refused.
type ConflictKind string

const (
	// ConflictOverlap means the candidate intersects an existing assignment
	// for the same teacher.
	ConflictOverlap ConflictKind = "OVERLAP"
	// ConflictTravel means the candidate sits too close to a same-day
	// assignment on a different campus for the teacher to travel between.
	ConflictTravel ConflictKind = "TRAVEL"
)

// Conflict describes the first blocking reason found for a candidate.
// It is returned as data, never as an error.
type Conflict struct {
	Kind    ConflictKind `json:"kind"`
	Message string       `json:"message"`
	// AssignmentID references the existing assignment that blocked the
	// candidate.
	AssignmentID string `json:"assignment_id,omitempty"`
}
