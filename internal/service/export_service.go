package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/models"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
	"github.com/noah-isme/timetable-api/pkg/export"
)

type scheduleProvider interface {
	ClassSchedule(ctx context.Context, classID int64) (*models.ClassSchedule, bool, error)
	TeacherSchedule(ctx context.Context, teacherID int64) (*models.TeacherSchedule, bool, error)
	WeekdaySchedule(ctx context.Context, dayOfWeek int) (*models.WeekdaySchedule, bool, error)
}

// ExportFile is a rendered schedule ready to be sent as an attachment.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders schedule projections as CSV or PDF files.
type ExportService struct {
	schedules scheduleProvider
	logger    *zap.Logger
}

// NewExportService constructs ExportService.
func NewExportService(schedules scheduleProvider, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{schedules: schedules, logger: logger}
}

// ExportClassSchedule renders the grid of one class.
func (s *ExportService) ExportClassSchedule(ctx context.Context, classID int64, format string) (*ExportFile, error) {
	renderer, err := rendererFor(format)
	if err != nil {
		return nil, err
	}
	schedule, _, err := s.schedules.ClassSchedule(ctx, classID)
	if err != nil {
		return nil, err
	}
	return s.render(renderer, ClassScheduleDataset(schedule), "class-"+schedule.ClassName)
}

// ExportTeacherSchedule renders the grid of one teacher.
func (s *ExportService) ExportTeacherSchedule(ctx context.Context, teacherID int64, format string) (*ExportFile, error) {
	renderer, err := rendererFor(format)
	if err != nil {
		return nil, err
	}
	schedule, _, err := s.schedules.TeacherSchedule(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	return s.render(renderer, TeacherScheduleDataset(schedule), "teacher-"+schedule.TeacherName)
}

// ExportWeekdaySchedule renders the classes grid of a single day.
func (s *ExportService) ExportWeekdaySchedule(ctx context.Context, dayOfWeek int, format string) (*ExportFile, error) {
	renderer, err := rendererFor(format)
	if err != nil {
		return nil, err
	}
	schedule, _, err := s.schedules.WeekdaySchedule(ctx, dayOfWeek)
	if err != nil {
		return nil, err
	}
	return s.render(renderer, WeekdayScheduleDataset(schedule), "weekday-"+schedule.Weekday)
}

func (s *ExportService) render(renderer export.Renderer, dataset export.Dataset, base string) (*ExportFile, error) {
	body, err := renderer.Render(dataset)
	if err != nil {
		s.logger.Error("render schedule export", zap.String("file", base), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("%s-schedule.%s", sanitizeFilename(base), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}

func rendererFor(raw string) (export.Renderer, error) {
	format, err := export.ParseFormat(raw)
	if err != nil {
		return nil, fieldError("format", "must be one of csv, pdf")
	}
	return export.RendererFor(format), nil
}

// ClassScheduleDataset flattens a class grid into one row per weekday.
func ClassScheduleDataset(schedule *models.ClassSchedule) export.Dataset {
	headers := gridHeaders("Day", schedule.Periods)
	rows := make([]map[string]string, 0, len(schedule.Data))
	for _, day := range schedule.Data {
		row := map[string]string{headers[0]: day.Day}
		for i, slot := range day.Slots {
			row[headers[i+1]] = joinCell(slot.Subject, slot.Teacher, " (%s)")
		}
		rows = append(rows, row)
	}
	return export.Dataset{Title: "Class " + schedule.ClassName, Headers: headers, Rows: rows}
}

// TeacherScheduleDataset flattens a teacher grid into one row per weekday.
func TeacherScheduleDataset(schedule *models.TeacherSchedule) export.Dataset {
	headers := gridHeaders("Day", schedule.Periods)
	rows := make([]map[string]string, 0, len(schedule.Data))
	for _, day := range schedule.Data {
		row := map[string]string{headers[0]: day.Day}
		for i, slot := range day.Slots {
			row[headers[i+1]] = joinCell(slot.Class, slot.Subject, " - %s")
		}
		rows = append(rows, row)
	}
	return export.Dataset{Title: "Teacher " + schedule.TeacherName, Headers: headers, Rows: rows}
}

// WeekdayScheduleDataset flattens the weekday grid into one row per class.
func WeekdayScheduleDataset(schedule *models.WeekdaySchedule) export.Dataset {
	headers := gridHeaders("Class", schedule.Periods)
	rows := make([]map[string]string, 0, len(schedule.Classes))
	for _, class := range schedule.Classes {
		row := map[string]string{headers[0]: class}
		for i, slot := range schedule.Slots[class] {
			row[headers[i+1]] = joinCell(slot.Subject, slot.Teacher, " (%s)")
		}
		rows = append(rows, row)
	}
	return export.Dataset{Title: schedule.Weekday, Headers: headers, Rows: rows}
}

// gridHeaders keeps column keys unique when two periods share a name.
func gridHeaders(first string, periods []string) []string {
	headers := make([]string, 0, len(periods)+1)
	seen := map[string]int{first: 1}
	headers = append(headers, first)
	for _, name := range periods {
		header := name
		if n := seen[name]; n > 0 {
			header = fmt.Sprintf("%s (%d)", name, n+1)
		}
		seen[name]++
		headers = append(headers, header)
	}
	return headers
}

func joinCell(primary, secondary *string, secondaryFormat string) string {
	if primary == nil {
		return ""
	}
	if secondary == nil || *secondary == "" {
		return *primary
	}
	return *primary + fmt.Sprintf(secondaryFormat, *secondary)
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "", "/", "-", "\\", "-", ":", "-", "..", ".")
	result := strings.ToLower(replacer.Replace(raw))
	if len(result) > 100 {
		return result[:100]
	}
	return result
}
