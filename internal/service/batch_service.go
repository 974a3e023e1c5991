package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/edutech-id/campus-timetable-api/internal/dto"
	"github.com/edutech-id/campus-timetable-api/internal/models"
	"github.com/edutech-id/campus-timetable-api/internal/repository"
	appErrors "github.com/edutech-id/campus-timetable-api/pkg/errors"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type batchRegistryReader interface {
	TeacherByID(id string) (*models.Teacher, error)
	RoomByID(id string) (*models.Room, error)
	Rooms() []models.Room
}

type batchScheduleStore interface {
	Begin() func()
	Snapshot() []models.Assignment
	Append(models.Assignment)
}

type candidateChecker interface {
	Check(candidate models.Candidate, existing []models.Assignment, rooms []models.Room) (*models.Conflict, error)
}

type reportCacheInvalidator interface {
	DeleteByPattern(ctx context.Context, pattern string) error
}

// BatchService expands a recurrence request into concrete candidates and
// applies the conflict checker to each one independently. Accepted
// candidates are committed immediately, so later candidates in the same
// batch see them; the batch never rolls back on partial failure.
type BatchService struct {
	registry  batchRegistryReader
	schedule  batchScheduleStore
	checker   candidateChecker
	cache     reportCacheInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBatchService wires scheduler dependencies.
func NewBatchService(
	registry batchRegistryReader,
	schedule batchScheduleStore,
	checker candidateChecker,
	cache reportCacheInvalidator,
	validate *validator.Validate,
	logger *zap.Logger,
) *BatchService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchService{
		registry:  registry,
		schedule:  schedule,
		checker:   checker,
		cache:     cache,
		validator: validate,
		logger:    logger,
	}
}

// Schedule runs one batch. The whole request fails fast on malformed input
// or an unresolvable teacher/room reference; per-date conflicts are
// reported as rejections, not errors.
func (s *BatchService) Schedule(ctx context.Context, req dto.BatchScheduleRequest) (*dto.BatchScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid batch schedule payload")
	}

	startOfDay, endOfDay, err := parseTimesOfDay(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	if _, err := s.registry.TeacherByID(req.TeacherID); err != nil {
		return nil, mapRegistryErr(err, "teacher", req.TeacherID)
	}
	if _, err := s.registry.RoomByID(req.RoomID); err != nil {
		return nil, mapRegistryErr(err, "room", req.RoomID)
	}

	dates, err := candidateDates(req)
	if err != nil {
		return nil, err
	}

	release := s.schedule.Begin()
	defer release()

	rooms := s.registry.Rooms()
	resp := &dto.BatchScheduleResponse{
		Accepted: make([]models.Assignment, 0, len(dates)),
		Rejected: make([]dto.RejectedDate, 0),
	}

	for _, day := range dates {
		candidate := models.Candidate{
			TeacherID: req.TeacherID,
			RoomID:    req.RoomID,
			Start:     combine(day, startOfDay),
			End:       combine(day, endOfDay),
		}

		conflict, err := s.checker.Check(candidate, s.schedule.Snapshot(), rooms)
		if err != nil {
			return nil, err
		}
		if conflict != nil {
			resp.Rejected = append(resp.Rejected, dto.RejectedDate{
				Date:   day.Format(dateLayout),
				Kind:   conflict.Kind,
				Reason: conflict.Message,
			})
			continue
		}

		assignment := models.Assignment{
			ID:        uuid.NewString(),
			ClassCode: req.ClassCode,
			TeacherID: req.TeacherID,
			RoomID:    req.RoomID,
			Start:     candidate.Start,
			End:       candidate.End,
		}
		s.schedule.Append(assignment)
		resp.Accepted = append(resp.Accepted, assignment)
	}

	if len(resp.Accepted) > 0 && s.cache != nil {
		if err := s.cache.DeleteByPattern(ctx, reportCachePattern); err != nil {
			s.logger.Warn("report cache invalidation failed", zap.Error(err))
		}
	}

	s.logger.Info("batch scheduled",
		zap.String("class_code", req.ClassCode),
		zap.Int("accepted", len(resp.Accepted)),
		zap.Int("rejected", len(resp.Rejected)),
	)
	return resp, nil
}

// candidateDates expands the recurrence request into chronological dates.
func candidateDates(req dto.BatchScheduleRequest) ([]time.Time, error) {
	switch req.Mode {
	case dto.ModeSingle:
		day, err := time.ParseInLocation(dateLayout, req.Date, time.UTC)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid date %q", req.Date))
		}
		return []time.Time{day}, nil
	case dto.ModeWeekly:
		weekdays := normalizeWeekdays(req.Weekdays)
		if len(weekdays) == 0 {
			return nil, appErrors.Clone(appErrors.ErrValidation, "weekdays must contain at least one entry between 1-7")
		}
		return expandMonth(req.Year, time.Month(req.Month), weekdays), nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown scheduling mode %q", req.Mode))
	}
}

// expandMonth returns every date of the month whose weekday is in the set,
// in chronological order.
func expandMonth(year int, month time.Month, weekdays map[time.Weekday]bool) []time.Time {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	var dates []time.Time
	for d := 1; d <= lastDay; d++ {
		day := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
		if weekdays[day.Weekday()] {
			dates = append(dates, day)
		}
	}
	return dates
}

// normalizeWeekdays maps 1=Monday..7=Sunday onto time.Weekday, dropping
// out-of-range values and duplicates.
func normalizeWeekdays(days []int) map[time.Weekday]bool {
	set := make(map[time.Weekday]bool)
	for _, day := range days {
		if day < 1 || day > 7 {
			continue
		}
		set[time.Weekday(day%7)] = true
	}
	return set
}

func parseTimesOfDay(start, end string) (time.Time, time.Time, error) {
	startTOD, err := time.Parse(timeLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid start time %q", start))
	}
	endTOD, err := time.Parse(timeLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid end time %q", end))
	}
	if !startTOD.Before(endTOD) {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, "start time must be before end time")
	}
	return startTOD, endTOD, nil
}

// combine anchors a time-of-day onto a calendar date.
func combine(day, tod time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), tod.Hour(), tod.Minute(), 0, 0, time.UTC)
}

func mapRegistryErr(err error, kind, id string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("unknown %s %s", kind, id))
	case errors.Is(err, repository.ErrAmbiguous):
		return appErrors.Clone(appErrors.ErrAmbiguousRef, fmt.Sprintf("%s id %s matches more than one record", kind, id))
	default:
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, fmt.Sprintf("failed to resolve %s", kind))
	}
}
