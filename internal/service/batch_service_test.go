package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutech-id/campus-timetable-api/internal/dto"
	"github.com/edutech-id/campus-timetable-api/internal/models"
	"github.com/edutech-id/campus-timetable-api/internal/repository"
	appErrors "github.com/edutech-id/campus-timetable-api/pkg/errors"
)

type batchFixture struct {
	registry *repository.RegistryRepository
	schedule *repository.ScheduleRepository
	service  *BatchService
}

func newBatchFixture(t *testing.T) *batchFixture {
	t.Helper()
	registry := repository.NewRegistryRepository()
	registry.ReplaceTeachers([]models.Teacher{
		{ID: "t1", Name: "Ibu Sari", Type: "Full-time"},
		{ID: "t2", Name: "Pak Budi", Type: "Part-time"},
	})
	registry.ReplaceRooms([]models.Room{
		{ID: "r1", Name: "Lab 101", Campus: "North"},
		{ID: "r2", Name: "Hall B", Campus: "South"},
	})
	schedule := repository.NewScheduleRepository()
	checker := NewConflictChecker(0, nil)
	return &batchFixture{
		registry: registry,
		schedule: schedule,
		service:  NewBatchService(registry, schedule, checker, nil, nil, nil),
	}
}

func weeklyRequest() dto.BatchScheduleRequest {
	return dto.BatchScheduleRequest{
		Mode:      dto.ModeWeekly,
		ClassCode: "MATH-1",
		TeacherID: "t1",
		RoomID:    "r1",
		StartTime: "09:00",
		EndTime:   "10:00",
		Month:     3,
		Year:      2026,
		Weekdays:  []int{1},
	}
}

func TestBatchServiceWeeklyExpandsMondays(t *testing.T) {
	f := newBatchFixture(t)

	resp, err := f.service.Schedule(context.Background(), weeklyRequest())
	require.NoError(t, err)
	require.Len(t, resp.Accepted, 5)
	assert.Empty(t, resp.Rejected)

	dates := make([]string, 0, len(resp.Accepted))
	for _, a := range resp.Accepted {
		dates = append(dates, a.Start.Format("2006-01-02"))
		assert.Equal(t, time.Monday, a.Start.Weekday())
		assert.NotEmpty(t, a.ID)
	}
	assert.Equal(t, []string{"2026-03-02", "2026-03-09", "2026-03-16", "2026-03-23", "2026-03-30"}, dates)
	assert.Equal(t, 5, f.schedule.Len())
}

func TestBatchServiceSingleDate(t *testing.T) {
	f := newBatchFixture(t)

	resp, err := f.service.Schedule(context.Background(), dto.BatchScheduleRequest{
		Mode:      dto.ModeSingle,
		ClassCode: "PHY-2",
		TeacherID: "t2",
		RoomID:    "r2",
		StartTime: "13:00",
		EndTime:   "14:30",
		Date:      "2026-03-04",
	})
	require.NoError(t, err)
	require.Len(t, resp.Accepted, 1)
	assert.Equal(t, time.Date(2026, time.March, 4, 13, 0, 0, 0, time.UTC), resp.Accepted[0].Start)
	assert.Equal(t, time.Date(2026, time.March, 4, 14, 30, 0, 0, time.UTC), resp.Accepted[0].End)
}

func TestBatchServicePartialRejectionNoRollback(t *testing.T) {
	f := newBatchFixture(t)
	f.schedule.Append(models.Assignment{
		ID: "pre", ClassCode: "BIO-1", TeacherID: "t1", RoomID: "r1",
		Start: time.Date(2026, time.March, 16, 9, 30, 0, 0, time.UTC),
		End:   time.Date(2026, time.March, 16, 10, 30, 0, 0, time.UTC),
	})

	resp, err := f.service.Schedule(context.Background(), weeklyRequest())
	require.NoError(t, err)
	assert.Len(t, resp.Accepted, 4)
	require.Len(t, resp.Rejected, 1)
	assert.Equal(t, "2026-03-16", resp.Rejected[0].Date)
	assert.Equal(t, models.ConflictOverlap, resp.Rejected[0].Kind)
	assert.Equal(t, "already in Lab 101 (09:30)", resp.Rejected[0].Reason)

	// Accepted dates stay committed despite the rejection.
	assert.Equal(t, 5, f.schedule.Len())
}

func TestBatchServiceEarlierAcceptanceVisibleToLaterCandidates(t *testing.T) {
	f := newBatchFixture(t)

	first, err := f.service.Schedule(context.Background(), weeklyRequest())
	require.NoError(t, err)
	require.Len(t, first.Accepted, 5)

	second, err := f.service.Schedule(context.Background(), weeklyRequest())
	require.NoError(t, err)
	assert.Empty(t, second.Accepted)
	require.Len(t, second.Rejected, 5)
	for _, rejected := range second.Rejected {
		assert.Equal(t, models.ConflictOverlap, rejected.Kind)
	}
}

func TestBatchServiceUnknownTeacherFailsFast(t *testing.T) {
	f := newBatchFixture(t)
	req := weeklyRequest()
	req.TeacherID = "ghost"

	_, err := f.service.Schedule(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Equal(t, 0, f.schedule.Len())
}

func TestBatchServiceAmbiguousRoomFailsFast(t *testing.T) {
	f := newBatchFixture(t)
	f.registry.ReplaceRooms([]models.Room{
		{ID: "r1", Name: "Lab 101", Campus: "North"},
		{ID: "r1", Name: "Lab 101 Annex", Campus: "North"},
	})

	_, err := f.service.Schedule(context.Background(), weeklyRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrAmbiguousRef.Code, appErrors.FromError(err).Code)
}

func TestBatchServiceRejectsInvertedTimes(t *testing.T) {
	f := newBatchFixture(t)
	req := weeklyRequest()
	req.StartTime = "10:00"
	req.EndTime = "09:00"

	_, err := f.service.Schedule(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestBatchServiceRejectsMalformedDate(t *testing.T) {
	f := newBatchFixture(t)

	_, err := f.service.Schedule(context.Background(), dto.BatchScheduleRequest{
		Mode:      dto.ModeSingle,
		ClassCode: "MATH-1",
		TeacherID: "t1",
		RoomID:    "r1",
		StartTime: "09:00",
		EndTime:   "10:00",
		Date:      "03/02/2026",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestBatchServiceWeekdaySundayMapsToEnd(t *testing.T) {
	f := newBatchFixture(t)
	req := weeklyRequest()
	req.Weekdays = []int{7}

	resp, err := f.service.Schedule(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Accepted)
	for _, a := range resp.Accepted {
		assert.Equal(t, time.Sunday, a.Start.Weekday())
	}
	assert.Equal(t, "2026-03-01", resp.Accepted[0].Start.Format("2006-01-02"))
}
