package repository

import (
	"sync"

	"github.com/edutech-id/campus-timetable-api/internal/models"
)

// ScheduleRepository is the in-memory schedule store: an append-ordered
// collection of committed assignments. Reads hand out copies; writers go
// through the inner RWMutex. Check-then-append sequences additionally
// serialise through Begin so the conflict checker always evaluates a
// consistent snapshot (no assignment may land between its read and the
// subsequent append).
type ScheduleRepository struct {
	gate sync.Mutex
	mu   sync.RWMutex

	items []models.Assignment
}

// NewScheduleRepository constructs an empty schedule store.
func NewScheduleRepository() *ScheduleRepository {
	return &ScheduleRepository{}
}

// Begin acquires the store's mutation gate and returns its release func.
// Every operation that reads the store before writing it must run between
// Begin and release.
func (r *ScheduleRepository) Begin() func() {
	r.gate.Lock()
	return r.gate.Unlock
}

// Snapshot returns a copy of all assignments in insertion order.
func (r *ScheduleRepository) Snapshot() []models.Assignment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Assignment(nil), r.items...)
}

// Append commits one assignment.
func (r *ScheduleRepository) Append(assignment models.Assignment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, assignment)
}

// ReplaceAll swaps the whole schedule for the given set.
func (r *ScheduleRepository) ReplaceAll(assignments []models.Assignment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append([]models.Assignment(nil), assignments...)
}

// Clear unconditionally empties the store.
func (r *ScheduleRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}

// Len reports the number of committed assignments.
func (r *ScheduleRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
