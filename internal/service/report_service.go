package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/edutech-id/campus-timetable-api/internal/dto"
	"github.com/edutech-id/campus-timetable-api/internal/models"
	appErrors "github.com/edutech-id/campus-timetable-api/pkg/errors"
)

const reportCachePattern = "reports:*"

type reportScheduleReader interface {
	Snapshot() []models.Assignment
}

type reportRegistryViewer interface {
	Teachers() []models.Teacher
	Rooms() []models.Room
}

type summaryCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

type cacheMetricsRecorder interface {
	RecordCacheOperation(hit bool, duration time.Duration)
}

// ReportConfig tunes summary caching.
type ReportConfig struct {
	CacheTTL time.Duration
}

// ReportService aggregates committed assignments into per-teacher workload
// and per-room occupancy totals. It is read-only over the schedule store
// and never faults on well-formed input; an empty range yields empty
// summaries.
type ReportService struct {
	schedule reportScheduleReader
	registry reportRegistryViewer
	cache    summaryCache
	metrics  cacheMetricsRecorder
	logger   *zap.Logger
	cfg      ReportConfig
}

// NewReportService constructs a ReportService. cache and metrics may be nil.
func NewReportService(schedule reportScheduleReader, registry reportRegistryViewer, cache summaryCache, metrics cacheMetricsRecorder, cfg ReportConfig, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &ReportService{
		schedule: schedule,
		registry: registry,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
		cfg:      cfg,
	}
}

// Summary filters assignments whose start falls inside the inclusive
// day-granular range and sums exact fractional hours per teacher and per
// room. The bool reports whether the result came from cache.
func (s *ReportService) Summary(ctx context.Context, from, to time.Time) (*dto.ReportSummary, bool, error) {
	rangeStart := startOfDay(from)
	rangeEnd := endOfDay(to)
	if rangeEnd.Before(rangeStart) {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "report range end precedes start")
	}

	key := fmt.Sprintf("reports:summary:%s:%s", rangeStart.Format(dateLayout), rangeEnd.Format(dateLayout))
	if s.cache != nil {
		began := time.Now()
		cached := &dto.ReportSummary{}
		err := s.cache.Get(ctx, key, cached)
		hit := err == nil
		if s.metrics != nil {
			s.metrics.RecordCacheOperation(hit, time.Since(began))
		}
		if hit {
			return cached, true, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("report cache read failed", zap.Error(err))
		}
	}

	summary := s.build(rangeStart, rangeEnd)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, summary, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("report cache write failed", zap.Error(err))
		}
	}
	return summary, false, nil
}

func (s *ReportService) build(rangeStart, rangeEnd time.Time) *dto.ReportSummary {
	teacherHours := make(map[string]float64)
	roomHours := make(map[string]float64)

	for _, assignment := range s.schedule.Snapshot() {
		if assignment.Start.Before(rangeStart) || assignment.Start.After(rangeEnd) {
			continue
		}
		hours := assignment.End.Sub(assignment.Start).Hours()
		teacherHours[assignment.TeacherID] += hours
		roomHours[assignment.RoomID] += hours
	}

	teacherByID := make(map[string]models.Teacher)
	for _, t := range s.registry.Teachers() {
		if _, seen := teacherByID[t.ID]; !seen {
			teacherByID[t.ID] = t
		}
	}
	roomByID := make(map[string]models.Room)
	for _, r := range s.registry.Rooms() {
		if _, seen := roomByID[r.ID]; !seen {
			roomByID[r.ID] = r
		}
	}

	summary := &dto.ReportSummary{
		Teachers: make([]models.TeacherWorkload, 0, len(teacherHours)),
		Rooms:    make([]models.RoomOccupancy, 0, len(roomHours)),
	}
	for id, hours := range teacherHours {
		row := models.TeacherWorkload{TeacherID: id, Name: id, Hours: hours}
		if t, ok := teacherByID[id]; ok {
			row.Name = t.Name
			row.Type = t.Type
		}
		summary.Teachers = append(summary.Teachers, row)
	}
	for id, hours := range roomHours {
		row := models.RoomOccupancy{RoomID: id, Name: id, Hours: hours}
		if r, ok := roomByID[id]; ok {
			row.Name = r.Name
			row.Campus = r.Campus
		}
		summary.Rooms = append(summary.Rooms, row)
	}

	sort.Slice(summary.Teachers, func(i, j int) bool {
		if summary.Teachers[i].Hours == summary.Teachers[j].Hours {
			return summary.Teachers[i].Name < summary.Teachers[j].Name
		}
		return summary.Teachers[i].Hours > summary.Teachers[j].Hours
	})
	sort.Slice(summary.Rooms, func(i, j int) bool {
		if summary.Rooms[i].Hours == summary.Rooms[j].Hours {
			return summary.Rooms[i].Name < summary.Rooms[j].Name
		}
		return summary.Rooms[i].Hours > summary.Rooms[j].Hours
	})
	return summary
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// endOfDay is the latest representable instant on t's date.
func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
