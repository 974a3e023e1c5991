package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutech-id/campus-timetable-api/internal/models"
	"github.com/edutech-id/campus-timetable-api/internal/repository"
	appErrors "github.com/edutech-id/campus-timetable-api/pkg/errors"
)

func newCalendarFixture(t *testing.T) (*CalendarService, *repository.ScheduleRepository) {
	t.Helper()
	registry := repository.NewRegistryRepository()
	registry.ReplaceTeachers([]models.Teacher{
		{ID: "t1", Name: "Ibu Sari", Type: "Full-time"},
		{ID: "t2", Name: "Pak Budi", Type: "Part-time"},
	})
	registry.ReplaceRooms([]models.Room{
		{ID: "r1", Name: "Lab 101", Campus: "North"},
	})
	schedule := repository.NewScheduleRepository()
	schedule.Append(models.Assignment{
		ID: "a1", ClassCode: "MATH-1", TeacherID: "t1", RoomID: "r1",
		Start: time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC),
	})
	schedule.Append(models.Assignment{
		ID: "a2", TeacherID: "t2", RoomID: "r1",
		Start: time.Date(2026, time.March, 2, 11, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC),
	})
	return NewCalendarService(schedule, registry, nil), schedule
}

func TestCalendarEventsByTeacher(t *testing.T) {
	svc, _ := newCalendarFixture(t)

	events, err := svc.Events(context.Background(), "t1", "")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "[MATH-1] Lab 101", events[0].Title)
	assert.Equal(t, "2026-03-02T09:00:00Z", events[0].Start)
	assert.Equal(t, "2026-03-02T10:00:00Z", events[0].End)
}

func TestCalendarEventsByRoomTitlesWithTeacher(t *testing.T) {
	svc, _ := newCalendarFixture(t)

	events, err := svc.Events(context.Background(), "", "r1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "[MATH-1] Ibu Sari", events[0].Title)
	assert.Equal(t, "[N/A] Pak Budi", events[1].Title)
}

func TestCalendarEventsRequireExactlyOneFilter(t *testing.T) {
	svc, _ := newCalendarFixture(t)

	_, err := svc.Events(context.Background(), "", "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Events(context.Background(), "t1", "r1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCalendarEventsUnknownTeacher(t *testing.T) {
	svc, _ := newCalendarFixture(t)

	_, err := svc.Events(context.Background(), "ghost", "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCalendarEventsEmptyForIdleTeacher(t *testing.T) {
	svc, schedule := newCalendarFixture(t)
	schedule.Clear()

	events, err := svc.Events(context.Background(), "t1", "")
	require.NoError(t, err)
	assert.Empty(t, events)
}
