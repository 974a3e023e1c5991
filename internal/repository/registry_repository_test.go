package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutech-id/campus-timetable-api/internal/models"
)

func seededRegistry() *RegistryRepository {
	r := NewRegistryRepository()
	r.ReplaceTeachers([]models.Teacher{
		{ID: "t1", Name: "Ibu Sari", Type: "Full-time"},
		{ID: "t2", Name: "Pak Budi", Type: "Part-time"},
	})
	r.ReplaceRooms([]models.Room{
		{ID: "r1", Name: "Lab 101", Campus: "North"},
		{ID: "r2", Name: "Hall B", Campus: "South"},
	})
	return r
}

func TestRegistryLookupByID(t *testing.T) {
	r := seededRegistry()

	teacher, err := r.TeacherByID("t1")
	require.NoError(t, err)
	assert.Equal(t, "Ibu Sari", teacher.Name)

	room, err := r.RoomByID("r2")
	require.NoError(t, err)
	assert.Equal(t, "South", room.Campus)

	_, err = r.TeacherByID("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistryDuplicateIDIsAmbiguous(t *testing.T) {
	r := seededRegistry()
	r.ReplaceTeachers([]models.Teacher{
		{ID: "t1", Name: "Ibu Sari"},
		{ID: "t1", Name: "Another Sari"},
	})

	_, err := r.TeacherByID("t1")
	assert.ErrorIs(t, err, ErrAmbiguous)

	err = r.UpdateTeacher(models.Teacher{ID: "t1", Name: "Whoever"})
	assert.ErrorIs(t, err, ErrAmbiguous)
}

func TestRegistryNameIndexLaterRecordWins(t *testing.T) {
	r := NewRegistryRepository()
	r.ReplaceRooms([]models.Room{
		{ID: "r1", Name: "Lab 101", Campus: "North"},
		{ID: "r9", Name: "Lab 101", Campus: "South"},
	})

	id, ok := r.RoomIDByName("Lab 101")
	require.True(t, ok)
	assert.Equal(t, "r9", id)
}

func TestRegistryNameIndexFollowsUpdates(t *testing.T) {
	r := seededRegistry()

	require.NoError(t, r.UpdateTeacher(models.Teacher{ID: "t1", Name: "Ibu Sari Dewi", Type: "Full-time"}))

	_, ok := r.TeacherIDByName("Ibu Sari")
	assert.False(t, ok)
	id, ok := r.TeacherIDByName("Ibu Sari Dewi")
	require.True(t, ok)
	assert.Equal(t, "t1", id)
}

func TestRegistryUpdateUnknownTeacher(t *testing.T) {
	r := seededRegistry()
	assert.ErrorIs(t, r.UpdateTeacher(models.Teacher{ID: "ghost", Name: "Nobody"}), ErrNotFound)
}

func TestRegistryReturnsCopies(t *testing.T) {
	r := seededRegistry()

	teachers := r.Teachers()
	teachers[0].Name = "mutated"

	fresh, err := r.TeacherByID("t1")
	require.NoError(t, err)
	assert.Equal(t, "Ibu Sari", fresh.Name)
}

func TestRegistryEmpty(t *testing.T) {
	r := NewRegistryRepository()
	assert.True(t, r.Empty())

	r.ReplaceTeachers([]models.Teacher{{ID: "t1", Name: "Ibu Sari"}})
	assert.True(t, r.Empty())

	r.ReplaceRooms([]models.Room{{ID: "r1", Name: "Lab 101", Campus: "North"}})
	assert.False(t, r.Empty())
}
