package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutech-id/campus-timetable-api/internal/models"
	"github.com/edutech-id/campus-timetable-api/internal/repository"
	appErrors "github.com/edutech-id/campus-timetable-api/pkg/errors"
)

func newExportFixture(t *testing.T) *ExportService {
	t.Helper()
	registry := repository.NewRegistryRepository()
	registry.ReplaceTeachers([]models.Teacher{
		{ID: "t1", Name: "Ibu Sari", Type: "Full-time"},
	})
	registry.ReplaceRooms([]models.Room{
		{ID: "r1", Name: "Lab 101", Campus: "North"},
	})
	schedule := repository.NewScheduleRepository()
	schedule.Append(models.Assignment{
		ID: "a1", ClassCode: "MATH-1", TeacherID: "t1", RoomID: "r1",
		Start: time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.March, 2, 10, 30, 0, 0, time.UTC),
	})

	master := NewMasterListService(schedule, registry, nil, nil, nil)
	reports := NewReportService(schedule, registry, nil, nil, ReportConfig{}, nil)
	return NewExportService(master, reports, nil, nil, nil)
}

func TestExportMasterScheduleCSV(t *testing.T) {
	svc := newExportFixture(t)

	result, err := svc.MasterSchedule(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.True(t, strings.HasPrefix(result.Filename, "master_schedule_"))

	lines := strings.Split(strings.TrimSpace(string(result.Payload)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Class Code,Teacher Name,Room Name,Campus,Start Time,End Time", lines[0])
	assert.Equal(t, "MATH-1,Ibu Sari,Lab 101,North,2026-03-02 09:00,2026-03-02 10:30", lines[1])
}

func TestExportRangeReportCSV(t *testing.T) {
	svc := newExportFixture(t)

	from := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)
	result, err := svc.RangeReport(context.Background(), from, to, FormatCSV)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(result.Payload)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Kind,Name,Category,Hours", lines[0])
	assert.Equal(t, "Teacher,Ibu Sari,Full-time,1.50", lines[1])
	assert.Equal(t, "Room,Lab 101,North,1.50", lines[2])
}

func TestExportRangeReportPDF(t *testing.T) {
	svc := newExportFixture(t)

	from := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)
	result, err := svc.RangeReport(context.Background(), from, to, FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasSuffix(result.Filename, ".pdf"))
	assert.True(t, len(result.Payload) > 0)
}

func TestExportRangeReportRejectsUnknownFormat(t *testing.T) {
	svc := newExportFixture(t)

	from := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.RangeReport(context.Background(), from, from, "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
