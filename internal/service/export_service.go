package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/edutech-id/campus-timetable-api/internal/dto"
	appErrors "github.com/edutech-id/campus-timetable-api/pkg/errors"
	"github.com/edutech-id/campus-timetable-api/pkg/export"
)

// Export formats accepted by the report download endpoint.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

type masterRowSource interface {
	Rows(ctx context.Context) []dto.MasterRow
}

type reportSummarySource interface {
	Summary(ctx context.Context, from, to time.Time) (*dto.ReportSummary, bool, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportResult carries a rendered download.
type ExportResult struct {
	Payload     []byte
	Filename    string
	ContentType string
}

// ExportService renders the master schedule and range reports into
// downloadable files. The master schedule CSV column order and timestamp
// format are a byte-stable contract for spreadsheet interop.
type ExportService struct {
	master  masterRowSource
	reports reportSummarySource
	csv     csvRenderer
	pdf     pdfRenderer
	logger  *zap.Logger
}

// NewExportService constructs an ExportService with default renderers for
// any nil ones.
func NewExportService(master masterRowSource, reports reportSummarySource, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{master: master, reports: reports, csv: csv, pdf: pdf, logger: logger}
}

// MasterSchedule renders the full schedule as CSV.
func (s *ExportService) MasterSchedule(ctx context.Context) (*ExportResult, error) {
	rows := s.master.Rows(ctx)
	dataset := export.Dataset{
		Headers: []string{"Class Code", "Teacher Name", "Room Name", "Campus", "Start Time", "End Time"},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, row := range rows {
		dataset.Rows = append(dataset.Rows, []string{
			row.ClassCode, row.TeacherName, row.RoomName, row.Campus, row.Start, row.End,
		})
	}

	payload, err := s.csv.Render(dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render master schedule")
	}
	return &ExportResult{
		Payload:     payload,
		Filename:    fmt.Sprintf("master_schedule_%s.csv", time.Now().UTC().Format("20060102_150405")),
		ContentType: "text/csv",
	}, nil
}

// RangeReport renders the workload/occupancy summary for a date range in
// the requested format.
func (s *ExportService) RangeReport(ctx context.Context, from, to time.Time, format string) (*ExportResult, error) {
	summary, _, err := s.reports.Summary(ctx, from, to)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{
		Headers: []string{"Kind", "Name", "Category", "Hours"},
		Rows:    make([][]string, 0, len(summary.Teachers)+len(summary.Rooms)),
	}
	for _, row := range summary.Teachers {
		dataset.Rows = append(dataset.Rows, []string{"Teacher", row.Name, row.Type, formatHours(row.Hours)})
	}
	for _, row := range summary.Rooms {
		dataset.Rows = append(dataset.Rows, []string{"Room", row.Name, row.Campus, formatHours(row.Hours)})
	}

	title := fmt.Sprintf("Utilisation Report %s to %s", from.Format(dateLayout), to.Format(dateLayout))
	stamp := time.Now().UTC().Format("20060102_150405")

	switch format {
	case FormatCSV:
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report csv")
		}
		return &ExportResult{Payload: payload, Filename: fmt.Sprintf("report_%s.csv", stamp), ContentType: "text/csv"}, nil
	case FormatPDF:
		payload, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report pdf")
		}
		return &ExportResult{Payload: payload, Filename: fmt.Sprintf("report_%s.pdf", stamp), ContentType: "application/pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func formatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', 2, 64)
}
