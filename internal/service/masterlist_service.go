package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/edutech-id/campus-timetable-api/internal/dto"
	"github.com/edutech-id/campus-timetable-api/internal/models"
	appErrors "github.com/edutech-id/campus-timetable-api/pkg/errors"
)

// masterRowLayout is the timestamp format of the flat schedule row, the
// external CSV contract.
const masterRowLayout = "2006-01-02 15:04"

type masterScheduleStore interface {
	Begin() func()
	Snapshot() []models.Assignment
	ReplaceAll(assignments []models.Assignment)
	Clear()
}

type masterRegistryIndex interface {
	TeacherByID(id string) (*models.Teacher, error)
	RoomByID(id string) (*models.Room, error)
	TeacherIDByName(name string) (string, bool)
	RoomIDByName(name string) (string, bool)
}

// MasterListService exposes the schedule as flat display rows and performs
// the trusted bulk overwrite: a full replacement set where rows name
// teacher and room by display name. Rows that fail to resolve are dropped
// silently (counted, not errored), and the conflict checker is
// deliberately NOT re-run over the replacement set.
type MasterListService struct {
	schedule  masterScheduleStore
	registry  masterRegistryIndex
	cache     reportCacheInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMasterListService constructs a MasterListService.
func NewMasterListService(schedule masterScheduleStore, registry masterRegistryIndex, cache reportCacheInvalidator, validate *validator.Validate, logger *zap.Logger) *MasterListService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MasterListService{
		schedule:  schedule,
		registry:  registry,
		cache:     cache,
		validator: validate,
		logger:    logger,
	}
}

// Rows maps every committed assignment onto the flat display/export shape,
// in insertion order. Names that no longer resolve render blank; the
// registry owns referential integrity, not this view.
func (s *MasterListService) Rows(ctx context.Context) []dto.MasterRow {
	assignments := s.schedule.Snapshot()
	rows := make([]dto.MasterRow, 0, len(assignments))
	for _, assignment := range assignments {
		row := dto.MasterRow{
			ClassCode: assignment.ClassCode,
			Start:     assignment.Start.Format(masterRowLayout),
			End:       assignment.End.Format(masterRowLayout),
		}
		if teacher, err := s.registry.TeacherByID(assignment.TeacherID); err == nil {
			row.TeacherName = teacher.Name
		}
		if room, err := s.registry.RoomByID(assignment.RoomID); err == nil {
			row.RoomName = room.Name
			row.Campus = room.Campus
		}
		rows = append(rows, row)
	}
	return rows
}

// Replace overwrites the whole schedule with the given rows. Each row
// resolves teacher and room by exact display name; rows with a blank or
// unmatched name, an unparseable timestamp, or a non-positive interval are
// dropped. The result reports saved and dropped counts.
func (s *MasterListService) Replace(ctx context.Context, req dto.ReplaceScheduleRequest) (*dto.ReplaceScheduleResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule replacement payload")
	}

	release := s.schedule.Begin()
	defer release()

	result := &dto.ReplaceScheduleResult{}
	replacement := make([]models.Assignment, 0, len(req.Rows))
	for _, row := range req.Rows {
		teacherID, okTeacher := s.registry.TeacherIDByName(row.TeacherName)
		roomID, okRoom := s.registry.RoomIDByName(row.RoomName)
		if !okTeacher || !okRoom {
			result.Dropped++
			continue
		}
		start, errStart := time.ParseInLocation(masterRowLayout, row.Start, time.UTC)
		end, errEnd := time.ParseInLocation(masterRowLayout, row.End, time.UTC)
		if errStart != nil || errEnd != nil || !start.Before(end) {
			result.Dropped++
			continue
		}
		replacement = append(replacement, models.Assignment{
			ID:        uuid.NewString(),
			ClassCode: row.ClassCode,
			TeacherID: teacherID,
			RoomID:    roomID,
			Start:     start,
			End:       end,
		})
		result.Saved++
	}

	s.schedule.ReplaceAll(replacement)
	s.invalidate(ctx)
	s.logger.Info("schedule replaced", zap.Int("saved", result.Saved), zap.Int("dropped", result.Dropped))
	return result, nil
}

// Clear unconditionally empties the schedule store.
func (s *MasterListService) Clear(ctx context.Context) {
	s.schedule.Clear()
	s.invalidate(ctx)
	s.logger.Info("schedule cleared")
}

func (s *MasterListService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, reportCachePattern); err != nil {
		s.logger.Warn("report cache invalidation failed", zap.Error(err))
	}
}
