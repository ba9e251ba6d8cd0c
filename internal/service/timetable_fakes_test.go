package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-api/internal/models"
)

// fakeTimetableStore is an in-memory stand-in for the timetable and
// reference repositories. Query handles are ignored.
type fakeTimetableStore struct {
	classes  map[int64]models.Class
	subjects map[int64]models.Subject
	teachers map[int64]models.Teacher
	periods  map[int64]models.Period
	rows     map[int64]models.Timetable
	nextID   int64

	// raceRow is committed by a "concurrent writer" when CreateTx runs,
	// which then fails with raceErr.
	raceRow *models.Timetable
	raceErr error
}

func newFakeTimetableStore() *fakeTimetableStore {
	return &fakeTimetableStore{
		classes:  map[int64]models.Class{},
		subjects: map[int64]models.Subject{},
		teachers: map[int64]models.Teacher{},
		periods:  map[int64]models.Period{},
		rows:     map[int64]models.Timetable{},
		nextID:   100,
	}
}

func (f *fakeTimetableStore) addRow(row models.Timetable) {
	f.rows[row.ID] = row
}

func (f *fakeTimetableStore) expand(row models.Timetable) models.TimetableEntry {
	return models.TimetableEntry{
		ID:        row.ID,
		DayOfWeek: row.DayOfWeek,
		Class:     f.classes[row.ClassID],
		Subject:   f.subjects[row.SubjectID],
		Teacher:   f.teachers[row.TeacherID],
		Period:    f.periods[row.PeriodID],
	}
}

func (f *fakeTimetableStore) List(ctx context.Context, filter models.TimetableFilter) ([]models.TimetableEntry, error) {
	entries := make([]models.TimetableEntry, 0)
	for _, row := range f.rows {
		if filter.ClassID > 0 && row.ClassID != filter.ClassID {
			continue
		}
		if filter.TeacherID > 0 && row.TeacherID != filter.TeacherID {
			continue
		}
		if filter.DayOfWeek > 0 && row.DayOfWeek != filter.DayOfWeek {
			continue
		}
		entries = append(entries, f.expand(row))
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

func (f *fakeTimetableStore) FindByID(ctx context.Context, id int64) (*models.TimetableEntry, error) {
	return f.FindByIDTx(ctx, nil, id)
}

func (f *fakeTimetableStore) FindByIDTx(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.TimetableEntry, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	entry := f.expand(row)
	return &entry, nil
}

func (f *fakeTimetableStore) FindClassSlot(ctx context.Context, q sqlx.QueryerContext, classID, periodID int64, dayOfWeek int, excludeID *int64) (*models.TimetableEntry, error) {
	return f.findSlot(func(row models.Timetable) bool { return row.ClassID == classID }, periodID, dayOfWeek, excludeID)
}

func (f *fakeTimetableStore) FindTeacherSlot(ctx context.Context, q sqlx.QueryerContext, teacherID, periodID int64, dayOfWeek int, excludeID *int64) (*models.TimetableEntry, error) {
	return f.findSlot(func(row models.Timetable) bool { return row.TeacherID == teacherID }, periodID, dayOfWeek, excludeID)
}

func (f *fakeTimetableStore) findSlot(owner func(models.Timetable) bool, periodID int64, dayOfWeek int, excludeID *int64) (*models.TimetableEntry, error) {
	ids := make([]int64, 0, len(f.rows))
	for id := range f.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		row := f.rows[id]
		if excludeID != nil && row.ID == *excludeID {
			continue
		}
		if owner(row) && row.PeriodID == periodID && row.DayOfWeek == dayOfWeek {
			entry := f.expand(row)
			return &entry, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeTimetableStore) CreateTx(ctx context.Context, q sqlx.QueryerContext, row *models.Timetable) error {
	if f.raceErr != nil {
		if f.raceRow != nil {
			f.addRow(*f.raceRow)
		}
		return fmt.Errorf("create timetable: %w", f.raceErr)
	}
	f.nextID++
	row.ID = f.nextID
	f.rows[row.ID] = *row
	return nil
}

func (f *fakeTimetableStore) UpdateTx(ctx context.Context, q sqlx.ExecerContext, row *models.Timetable) error {
	f.rows[row.ID] = *row
	return nil
}

func (f *fakeTimetableStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.rows, id)
	return nil
}

type fakeClassLookup struct{ store *fakeTimetableStore }

func (l fakeClassLookup) FindByIDTx(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.Class, error) {
	class, ok := l.store.classes[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &class, nil
}

type fakeSubjectLookup struct{ store *fakeTimetableStore }

func (l fakeSubjectLookup) FindByIDTx(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.Subject, error) {
	subject, ok := l.store.subjects[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &subject, nil
}

type fakeTeacherLookup struct{ store *fakeTimetableStore }

func (l fakeTeacherLookup) FindByIDTx(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.Teacher, error) {
	teacher, ok := l.store.teachers[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &teacher, nil
}

type fakePeriodLookup struct{ store *fakeTimetableStore }

func (l fakePeriodLookup) FindByIDTx(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.Period, error) {
	period, ok := l.store.periods[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &period, nil
}

// Fixture ids.
const (
	class5A1   int64 = 1
	class5A2   int64 = 2
	subjMath   int64 = 10
	subjSci    int64 = 11
	teacherX   int64 = 20
	teacherY   int64 = 21
	period1    int64 = 30
	period2    int64 = 31
	monday           = 1
	tuesday          = 2
	mathMonday int64 = 50
)

// seededStore holds 5-A1 / Monday / Period 1 / Math / TeacherX.
func seededStore() *fakeTimetableStore {
	store := newFakeTimetableStore()
	store.classes[class5A1] = models.Class{ID: class5A1, Name: "5-A1"}
	store.classes[class5A2] = models.Class{ID: class5A2, Name: "5-A2"}
	store.subjects[subjMath] = models.Subject{ID: subjMath, Name: "Math"}
	store.subjects[subjSci] = models.Subject{ID: subjSci, Name: "Science"}
	store.teachers[teacherX] = models.Teacher{ID: teacherX, Name: "TeacherX"}
	store.teachers[teacherY] = models.Teacher{ID: teacherY, Name: "TeacherY"}
	store.periods[period1] = models.Period{ID: period1, Name: "Period 1", StartTime: "09:00", EndTime: "09:50"}
	store.periods[period2] = models.Period{ID: period2, Name: "Period 2", StartTime: "09:50", EndTime: "10:40"}
	store.addRow(models.Timetable{ID: mathMonday, ClassID: class5A1, SubjectID: subjMath, TeacherID: teacherX, PeriodID: period1, DayOfWeek: monday})
	return store
}

type recordingInvalidator struct{ calls int }

func (r *recordingInvalidator) InvalidateSchedules(context.Context) { r.calls++ }

func newTimetableServiceForTest(t *testing.T, store *fakeTimetableStore) (*TimetableService, sqlmock.Sqlmock, *recordingInvalidator) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	lookups := TimetableLookups{
		Classes:  fakeClassLookup{store},
		Subjects: fakeSubjectLookup{store},
		Teachers: fakeTeacherLookup{store},
		Periods:  fakePeriodLookup{store},
	}
	inv := &recordingInvalidator{}
	checker := NewConflictChecker(store, NewMetricsService(), nil)
	svc := NewTimetableService(sqlx.NewDb(db, "sqlmock"), store, lookups, checker, inv, nil, nil)
	return svc, mock, inv
}
