package repository

import (
	"errors"
	"sync"

	"github.com/edutech-id/campus-timetable-api/internal/models"
)

// Sentinel errors surfaced by registry lookups. Services map these onto the
// typed API errors.
var (
	ErrNotFound  = errors.New("record not found")
	ErrAmbiguous = errors.New("id resolves to more than one record")
)

// RegistryRepository is the in-memory entity registry for teachers and
// rooms. It maintains a bidirectional index (id→record, display name→id)
// rebuilt on every mutation rather than recomputed per lookup. Imported
// sets may carry duplicate ids; lookups on a duplicated id fail with
// ErrAmbiguous instead of silently picking one match.
type RegistryRepository struct {
	mu sync.RWMutex

	teachers []models.Teacher
	rooms    []models.Room

	teacherIdx  map[string][]int // teacher id → positions
	roomIdx     map[string][]int // room id → positions
	teacherName map[string]string
	roomName    map[string]string // room display name → id
}

// NewRegistryRepository constructs an empty registry.
func NewRegistryRepository() *RegistryRepository {
	r := &RegistryRepository{}
	r.reindex()
	return r
}

// ReplaceTeachers swaps the whole teacher set and rebuilds indexes.
func (r *RegistryRepository) ReplaceTeachers(teachers []models.Teacher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.teachers = append([]models.Teacher(nil), teachers...)
	r.reindex()
}

// ReplaceRooms swaps the whole room set and rebuilds indexes.
func (r *RegistryRepository) ReplaceRooms(rooms []models.Room) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms = append([]models.Room(nil), rooms...)
	r.reindex()
}

// UpdateTeacher rewrites a single teacher record in place.
func (r *RegistryRepository) UpdateTeacher(teacher models.Teacher) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	positions := r.teacherIdx[teacher.ID]
	if len(positions) == 0 {
		return ErrNotFound
	}
	if len(positions) > 1 {
		return ErrAmbiguous
	}
	r.teachers[positions[0]] = teacher
	r.reindex()
	return nil
}

// Teachers returns a copy of the teacher set in import order.
func (r *RegistryRepository) Teachers() []models.Teacher {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Teacher(nil), r.teachers...)
}

// Rooms returns a copy of the room set in import order.
func (r *RegistryRepository) Rooms() []models.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Room(nil), r.rooms...)
}

// TeacherByID resolves a teacher id to exactly one record.
func (r *RegistryRepository) TeacherByID(id string) (*models.Teacher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	positions := r.teacherIdx[id]
	switch {
	case len(positions) == 0:
		return nil, ErrNotFound
	case len(positions) > 1:
		return nil, ErrAmbiguous
	}
	teacher := r.teachers[positions[0]]
	return &teacher, nil
}

// RoomByID resolves a room id to exactly one record.
func (r *RegistryRepository) RoomByID(id string) (*models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	positions := r.roomIdx[id]
	switch {
	case len(positions) == 0:
		return nil, ErrNotFound
	case len(positions) > 1:
		return nil, ErrAmbiguous
	}
	room := r.rooms[positions[0]]
	return &room, nil
}

// TeacherIDByName resolves a display name through the reverse index.
// Later records win when names collide, matching spreadsheet semantics.
func (r *RegistryRepository) TeacherIDByName(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.teacherName[name]
	return id, ok
}

// RoomIDByName resolves a room display name through the reverse index.
func (r *RegistryRepository) RoomIDByName(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.roomName[name]
	return id, ok
}

// Empty reports whether either half of the registry has no records.
func (r *RegistryRepository) Empty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.teachers) == 0 || len(r.rooms) == 0
}

// reindex rebuilds all lookup maps. Callers hold the write lock.
func (r *RegistryRepository) reindex() {
	r.teacherIdx = make(map[string][]int, len(r.teachers))
	r.teacherName = make(map[string]string, len(r.teachers))
	for i, t := range r.teachers {
		r.teacherIdx[t.ID] = append(r.teacherIdx[t.ID], i)
		r.teacherName[t.Name] = t.ID
	}
	r.roomIdx = make(map[string][]int, len(r.rooms))
	r.roomName = make(map[string]string, len(r.rooms))
	for i, rm := range r.rooms {
		r.roomIdx[rm.ID] = append(r.roomIdx[rm.ID], i)
		r.roomName[rm.Name] = rm.ID
	}
}
