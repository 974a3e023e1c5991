package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/edutech-id/campus-timetable-api/internal/models"
	appErrors "github.com/edutech-id/campus-timetable-api/pkg/errors"
)

// DefaultTravelBuffer is the minimum gap required between same-day
// assignments on different campuses.
const DefaultTravelBuffer = 30 * time.Minute

// ConflictChecker evaluates a candidate assignment against the committed
// schedule. It is a pure read-only query: conflicts come back as data, and
// only an unresolvable room reference returns an error.
type ConflictChecker struct {
	travelBuffer time.Duration
	logger       *zap.Logger
}

// NewConflictChecker constructs a checker with the given travel buffer.
func NewConflictChecker(travelBuffer time.Duration, logger *zap.Logger) *ConflictChecker {
	if travelBuffer <= 0 {
		travelBuffer = DefaultTravelBuffer
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConflictChecker{travelBuffer: travelBuffer, logger: logger}
}

// Check walks the existing assignments in stored order and returns the
// first blocking reason found, or nil when the candidate is clear.
// Assignments for other teachers are skipped. Two rules apply per
// assignment, overlap first:
//
//   - OVERLAP: half-open interval test; touching boundaries do not collide.
//   - TRAVEL: same calendar day, different campus, and the candidate sits
//     adjacent (before or after) with a non-negative gap shorter than the
//     travel buffer. A gap equal to the buffer passes.
func (c *ConflictChecker) Check(candidate models.Candidate, existing []models.Assignment, rooms []models.Room) (*models.Conflict, error) {
	candidateRoom, err := resolveRoom(rooms, candidate.RoomID)
	if err != nil {
		return nil, err
	}

	for _, assignment := range existing {
		if assignment.TeacherID != candidate.TeacherID {
			continue
		}

		if candidate.Start.Before(assignment.End) && candidate.End.After(assignment.Start) {
			bookedRoom, err := resolveRoom(rooms, assignment.RoomID)
			if err != nil {
				return nil, err
			}
			return &models.Conflict{
				Kind:         models.ConflictOverlap,
				Message:      fmt.Sprintf("already in %s (%s)", bookedRoom.Name, assignment.Start.Format("15:04")),
				AssignmentID: assignment.ID,
			}, nil
		}

		bookedRoom, err := resolveRoom(rooms, assignment.RoomID)
		if err != nil {
			return nil, err
		}
		if bookedRoom.Campus == candidateRoom.Campus {
			continue
		}
		if !sameDate(candidate.Start, assignment.Start) {
			continue
		}

		gapAfter := candidate.Start.Sub(assignment.End)
		gapBefore := assignment.Start.Sub(candidate.End)
		if withinBuffer(gapAfter, c.travelBuffer) || withinBuffer(gapBefore, c.travelBuffer) {
			return &models.Conflict{
				Kind: models.ConflictTravel,
				Message: fmt.Sprintf("needs %dm between %s & %s",
					int(c.travelBuffer.Minutes()), bookedRoom.Campus, candidateRoom.Campus),
				AssignmentID: assignment.ID,
			}, nil
		}
	}

	return nil, nil
}

// withinBuffer reports whether gap is in [0, buffer). Negative gaps mean
// the intervals are not in that adjacency order and never trigger.
func withinBuffer(gap, buffer time.Duration) bool {
	return gap >= 0 && gap < buffer
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// resolveRoom requires the id to match exactly one room.
func resolveRoom(rooms []models.Room, id string) (*models.Room, error) {
	var found *models.Room
	for i := range rooms {
		if rooms[i].ID != id {
			continue
		}
		if found != nil {
			return nil, appErrors.Clone(appErrors.ErrAmbiguousRef, fmt.Sprintf("room id %s matches more than one room", id))
		}
		found = &rooms[i]
	}
	if found == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("unknown room %s", id))
	}
	return found, nil
}
