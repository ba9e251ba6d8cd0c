package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/models"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
)

type scheduleClassReader interface {
	List(ctx context.Context, filter models.ClassFilter) ([]models.Class, error)
	FindByID(ctx context.Context, id int64) (*models.Class, error)
}

type scheduleTeacherReader interface {
	FindByID(ctx context.Context, id int64) (*models.Teacher, error)
}

type schedulePeriodReader interface {
	List(ctx context.Context, filter models.PeriodFilter) ([]models.Period, error)
}

type scheduleEntryReader interface {
	List(ctx context.Context, filter models.TimetableFilter) ([]models.TimetableEntry, error)
}

// ScheduleService loads and caches the class, teacher and weekday grids.
type ScheduleService struct {
	classes  scheduleClassReader
	teachers scheduleTeacherReader
	periods  schedulePeriodReader
	entries  scheduleEntryReader
	cache    *CacheService
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewScheduleService constructs ScheduleService.
func NewScheduleService(classes scheduleClassReader, teachers scheduleTeacherReader, periods schedulePeriodReader, entries scheduleEntryReader, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{
		classes:  classes,
		teachers: teachers,
		periods:  periods,
		entries:  entries,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
	}
}

// ClassSchedule returns the 7 x N grid of a class. The boolean reports a
// cache hit.
func (s *ScheduleService) ClassSchedule(ctx context.Context, classID int64) (*models.ClassSchedule, bool, error) {
	key := classScheduleKey(classID)
	var cached models.ClassSchedule
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, true, nil
	}

	class, err := s.classes.FindByID(ctx, classID)
	if err != nil {
		return nil, false, lookupError(err, "class not found", "failed to load class")
	}
	periods, err := s.loadPeriods(ctx)
	if err != nil {
		return nil, false, err
	}
	entries, err := s.loadEntries(ctx, "schedule_class", models.TimetableFilter{ClassID: classID})
	if err != nil {
		return nil, false, err
	}

	schedule := BuildClassSchedule(*class, periods, entries)
	_ = s.cache.Set(ctx, key, schedule, 0)
	return &schedule, false, nil
}

// TeacherSchedule returns the 7 x N grid of a teacher.
func (s *ScheduleService) TeacherSchedule(ctx context.Context, teacherID int64) (*models.TeacherSchedule, bool, error) {
	key := teacherScheduleKey(teacherID)
	var cached models.TeacherSchedule
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, true, nil
	}

	teacher, err := s.teachers.FindByID(ctx, teacherID)
	if err != nil {
		return nil, false, lookupError(err, "teacher not found", "failed to load teacher")
	}
	periods, err := s.loadPeriods(ctx)
	if err != nil {
		return nil, false, err
	}
	entries, err := s.loadEntries(ctx, "schedule_teacher", models.TimetableFilter{TeacherID: teacherID})
	if err != nil {
		return nil, false, err
	}

	schedule := BuildTeacherSchedule(*teacher, periods, entries)
	_ = s.cache.Set(ctx, key, schedule, 0)
	return &schedule, false, nil
}

// WeekdaySchedule returns the classes x periods grid of one day.
func (s *ScheduleService) WeekdaySchedule(ctx context.Context, dayOfWeek int) (*models.WeekdaySchedule, bool, error) {
	if !models.ValidDayOfWeek(dayOfWeek) {
		return nil, false, fieldError("dayOfWeek", "dayOfWeek must be between 1 and 7")
	}

	key := weekdayScheduleKey(dayOfWeek)
	var cached models.WeekdaySchedule
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, true, nil
	}

	classes, err := s.classes.List(ctx, models.ClassFilter{})
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}
	periods, err := s.loadPeriods(ctx)
	if err != nil {
		return nil, false, err
	}
	entries, err := s.loadEntries(ctx, "schedule_weekday", models.TimetableFilter{DayOfWeek: dayOfWeek})
	if err != nil {
		return nil, false, err
	}

	schedule := BuildWeekdaySchedule(dayOfWeek, classes, periods, entries)
	_ = s.cache.Set(ctx, key, schedule, 0)
	return &schedule, false, nil
}

func (s *ScheduleService) loadPeriods(ctx context.Context) ([]models.Period, error) {
	periods, err := s.periods.List(ctx, models.PeriodFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list periods")
	}
	return periods, nil
}

func (s *ScheduleService) loadEntries(ctx context.Context, label string, filter models.TimetableFilter) ([]models.TimetableEntry, error) {
	start := time.Now()
	entries, err := s.entries.List(ctx, filter)
	s.metrics.ObserveDBQuery(label, time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable entries")
	}
	return entries, nil
}

type cellKey struct {
	owner    int64
	day      int
	periodID int64
}

func periodNames(periods []models.Period) []string {
	names := make([]string, len(periods))
	for i, p := range periods {
		names[i] = p.Name
	}
	return names
}

func strPtr(v string) *string { return &v }

// BuildClassSchedule reshapes a class's entries into 7 day rows, each with one
// slot per period in the given order. Entries of other classes are ignored.
func BuildClassSchedule(class models.Class, periods []models.Period, entries []models.TimetableEntry) models.ClassSchedule {
	index := make(map[cellKey]models.TimetableEntry, len(entries))
	for _, e := range entries {
		if e.Class.ID == class.ID {
			index[cellKey{day: e.DayOfWeek, periodID: e.Period.ID}] = e
		}
	}

	data := make([]models.ClassDaySchedule, 0, len(models.Weekdays))
	for i, dayName := range models.Weekdays {
		slots := make([]models.ClassScheduleSlot, 0, len(periods))
		for _, p := range periods {
			slot := models.ClassScheduleSlot{PeriodID: p.ID, PeriodName: p.Name}
			if e, ok := index[cellKey{day: i + 1, periodID: p.ID}]; ok {
				slot.Subject = strPtr(e.Subject.Name)
				slot.Teacher = strPtr(e.Teacher.Name)
			}
			slots = append(slots, slot)
		}
		data = append(data, models.ClassDaySchedule{Day: dayName, Slots: slots})
	}

	return models.ClassSchedule{
		ClassID:   class.ID,
		ClassName: class.Name,
		Days:      models.WeekdayNames(),
		Periods:   periodNames(periods),
		Data:      data,
	}
}

// BuildTeacherSchedule is the teacher counterpart of BuildClassSchedule;
// slots carry class and subject names.
func BuildTeacherSchedule(teacher models.Teacher, periods []models.Period, entries []models.TimetableEntry) models.TeacherSchedule {
	index := make(map[cellKey]models.TimetableEntry, len(entries))
	for _, e := range entries {
		if e.Teacher.ID == teacher.ID {
			index[cellKey{day: e.DayOfWeek, periodID: e.Period.ID}] = e
		}
	}

	data := make([]models.TeacherDaySchedule, 0, len(models.Weekdays))
	for i, dayName := range models.Weekdays {
		slots := make([]models.TeacherScheduleSlot, 0, len(periods))
		for _, p := range periods {
			slot := models.TeacherScheduleSlot{PeriodID: p.ID, PeriodName: p.Name}
			if e, ok := index[cellKey{day: i + 1, periodID: p.ID}]; ok {
				slot.Class = strPtr(e.Class.Name)
				slot.Subject = strPtr(e.Subject.Name)
			}
			slots = append(slots, slot)
		}
		data = append(data, models.TeacherDaySchedule{Day: dayName, Slots: slots})
	}

	return models.TeacherSchedule{
		TeacherID:   teacher.ID,
		TeacherName: teacher.Name,
		Days:        models.WeekdayNames(),
		Periods:     periodNames(periods),
		Data:        data,
	}
}

// BuildWeekdaySchedule lays out every class against every period for one
// day. Unassigned cells keep the class identity with nil subject and teacher.
func BuildWeekdaySchedule(dayOfWeek int, classes []models.Class, periods []models.Period, entries []models.TimetableEntry) models.WeekdaySchedule {
	index := make(map[cellKey]models.TimetableEntry, len(entries))
	for _, e := range entries {
		if e.DayOfWeek == dayOfWeek {
			index[cellKey{owner: e.Class.ID, periodID: e.Period.ID}] = e
		}
	}

	classNames := make([]string, 0, len(classes))
	slots := make(map[string][]models.WeekdayScheduleSlot, len(classes))
	for _, class := range classes {
		row := make([]models.WeekdayScheduleSlot, 0, len(periods))
		for _, p := range periods {
			slot := models.WeekdayScheduleSlot{
				PeriodID:   p.ID,
				PeriodName: p.Name,
				ClassID:    class.ID,
				Class:      class.Name,
			}
			if e, ok := index[cellKey{owner: class.ID, periodID: p.ID}]; ok {
				slot.Subject = strPtr(e.Subject.Name)
				slot.Teacher = strPtr(e.Teacher.Name)
			}
			row = append(row, slot)
		}
		classNames = append(classNames, class.Name)
		slots[class.Name] = row
	}

	return models.WeekdaySchedule{
		Weekday:   models.WeekdayName(dayOfWeek),
		DayNumber: dayOfWeek,
		Periods:   periodNames(periods),
		Classes:   classNames,
		Slots:     slots,
	}
}
