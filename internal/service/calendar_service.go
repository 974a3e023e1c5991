package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/edutech-id/campus-timetable-api/internal/dto"
	"github.com/edutech-id/campus-timetable-api/internal/models"
	appErrors "github.com/edutech-id/campus-timetable-api/pkg/errors"
)

type calendarScheduleReader interface {
	Snapshot() []models.Assignment
}

type calendarRegistry interface {
	TeacherByID(id string) (*models.Teacher, error)
	RoomByID(id string) (*models.Room, error)
}

// CalendarService projects the schedule into renderable events filtered by
// exactly one teacher or one room.
type CalendarService struct {
	schedule calendarScheduleReader
	registry calendarRegistry
	logger   *zap.Logger
}

// NewCalendarService constructs a CalendarService.
func NewCalendarService(schedule calendarScheduleReader, registry calendarRegistry, logger *zap.Logger) *CalendarService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarService{schedule: schedule, registry: registry, logger: logger}
}

// Events returns calendar entries for one teacher (titled with the room)
// or one room (titled with the teacher). Exactly one filter must be set.
func (s *CalendarService) Events(ctx context.Context, teacherID, roomID string) ([]dto.CalendarEvent, error) {
	if (teacherID == "") == (roomID == "") {
		return nil, appErrors.Clone(appErrors.ErrValidation, "exactly one of teacher_id or room_id is required")
	}

	if teacherID != "" {
		if _, err := s.registry.TeacherByID(teacherID); err != nil {
			return nil, mapRegistryErr(err, "teacher", teacherID)
		}
	} else {
		if _, err := s.registry.RoomByID(roomID); err != nil {
			return nil, mapRegistryErr(err, "room", roomID)
		}
	}

	events := make([]dto.CalendarEvent, 0)
	for _, assignment := range s.schedule.Snapshot() {
		if teacherID != "" && assignment.TeacherID != teacherID {
			continue
		}
		if roomID != "" && assignment.RoomID != roomID {
			continue
		}
		events = append(events, dto.CalendarEvent{
			Title: s.title(assignment, teacherID != ""),
			Start: assignment.Start.Format(time.RFC3339),
			End:   assignment.End.Format(time.RFC3339),
		})
	}
	return events, nil
}

// title labels the event with the counterpart of the filter dimension.
func (s *CalendarService) title(assignment models.Assignment, byTeacher bool) string {
	code := assignment.ClassCode
	if code == "" {
		code = "N/A"
	}
	label := ""
	if byTeacher {
		if room, err := s.registry.RoomByID(assignment.RoomID); err == nil {
			label = room.Name
		}
	} else {
		if teacher, err := s.registry.TeacherByID(assignment.TeacherID); err == nil {
			label = teacher.Name
		}
	}
	return fmt.Sprintf("[%s] %s", code, label)
}
