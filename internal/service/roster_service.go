package service

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edutech-id/campus-timetable-api/internal/dto"
	"github.com/edutech-id/campus-timetable-api/internal/models"
	appErrors "github.com/edutech-id/campus-timetable-api/pkg/errors"
)

type rosterRegistry interface {
	ReplaceTeachers(teachers []models.Teacher)
	ReplaceRooms(rooms []models.Room)
	UpdateTeacher(teacher models.Teacher) error
	Teachers() []models.Teacher
	Rooms() []models.Room
}

// UpdateTeacherRequest represents an inline edit of one teacher record.
type UpdateTeacherRequest struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"omitempty,max=100"`
}

// RosterService manages the entity registry: bulk CSV imports and inline
// edits of teachers and rooms. Imports replace the whole set; rows missing
// a required column are skipped and counted, matching the bulk-import
// drop policy.
type RosterService struct {
	registry  rosterRegistry
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRosterService constructs a RosterService.
func NewRosterService(registry rosterRegistry, validate *validator.Validate, logger *zap.Logger) *RosterService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{registry: registry, validator: validate, logger: logger}
}

// ImportTeachers parses CSV rows {ID,Name,Type?} and replaces the teacher
// set. A missing Type column or blank value defaults the classification.
func (s *RosterService) ImportTeachers(ctx context.Context, r io.Reader) (*dto.ImportResult, error) {
	records, header, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	idCol, nameCol := columnIndex(header, "ID"), columnIndex(header, "Name")
	typeCol := columnIndex(header, "Type")
	if idCol < 0 || nameCol < 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacher file must carry ID and Name columns")
	}

	result := &dto.ImportResult{}
	teachers := make([]models.Teacher, 0, len(records))
	for _, record := range records {
		id := cell(record, idCol)
		name := cell(record, nameCol)
		if id == "" || name == "" {
			result.Skipped++
			continue
		}
		teacherType := cell(record, typeCol)
		if teacherType == "" {
			teacherType = models.DefaultTeacherType
		}
		teachers = append(teachers, models.Teacher{ID: id, Name: name, Type: teacherType})
		result.Imported++
	}

	s.registry.ReplaceTeachers(teachers)
	s.logger.Info("teachers imported", zap.Int("imported", result.Imported), zap.Int("skipped", result.Skipped))
	return result, nil
}

// ImportRooms parses CSV rows {ID,Name,Campus} and replaces the room set.
func (s *RosterService) ImportRooms(ctx context.Context, r io.Reader) (*dto.ImportResult, error) {
	records, header, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	idCol, nameCol := columnIndex(header, "ID"), columnIndex(header, "Name")
	campusCol := columnIndex(header, "Campus")
	if idCol < 0 || nameCol < 0 || campusCol < 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "room file must carry ID, Name and Campus columns")
	}

	result := &dto.ImportResult{}
	rooms := make([]models.Room, 0, len(records))
	for _, record := range records {
		id := cell(record, idCol)
		name := cell(record, nameCol)
		campus := cell(record, campusCol)
		if id == "" || name == "" || campus == "" {
			result.Skipped++
			continue
		}
		rooms = append(rooms, models.Room{ID: id, Name: name, Campus: campus})
		result.Imported++
	}

	s.registry.ReplaceRooms(rooms)
	s.logger.Info("rooms imported", zap.Int("imported", result.Imported), zap.Int("skipped", result.Skipped))
	return result, nil
}

// Teachers lists the registered teachers in import order.
func (s *RosterService) Teachers(ctx context.Context) []models.Teacher {
	return s.registry.Teachers()
}

// Rooms lists the registered rooms in import order.
func (s *RosterService) Rooms(ctx context.Context) []models.Room {
	return s.registry.Rooms()
}

// UpdateTeacher rewrites one teacher's name/classification.
func (s *RosterService) UpdateTeacher(ctx context.Context, id string, req UpdateTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}

	teacherType := strings.TrimSpace(req.Type)
	if teacherType == "" {
		teacherType = models.DefaultTeacherType
	}
	teacher := models.Teacher{ID: id, Name: strings.TrimSpace(req.Name), Type: teacherType}
	if err := s.registry.UpdateTeacher(teacher); err != nil {
		return nil, mapRegistryErr(err, "teacher", id)
	}
	return &teacher, nil
}

func readCSV(r io.Reader) ([][]string, []string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed csv file")
	}
	if len(rows) == 0 {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "csv file is empty")
	}
	return rows[1:], rows[0], nil
}

// columnIndex locates a header case-insensitively; -1 when absent.
func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

func cell(record []string, col int) string {
	if col < 0 || col >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[col])
}
