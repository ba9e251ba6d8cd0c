package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-api/internal/models"
)

var entryColumns = []string{
	"id", "day_of_week", "created_at", "updated_at",
	"class.id", "class.name",
	"subject.id", "subject.name", "subject.weekly_hours",
	"teacher.id", "teacher.name", "teacher.max_weekly_hours",
	"period.id", "period.name", "period.start_time", "period.end_time",
}

func entryRow(rows *sqlmock.Rows, id int64, day int) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(id, day, now, now,
		1, "5 - A1",
		2, "Math", 6,
		3, "Manisha", 30,
		4, "Period 1", "09:00", "09:50")
}

func TestTimetableRepositoryListScansRelations(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE t.class_id = $1 AND t.day_of_week = $2 ORDER BY t.day_of_week ASC, p.start_time ASC, c.name ASC, t.id ASC")).
		WithArgs(int64(1), 1).
		WillReturnRows(entryRow(sqlmock.NewRows(entryColumns), 10, 1))

	entries, err := repo.List(context.Background(), models.TimetableFilter{ClassID: 1, DayOfWeek: 1})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, int64(10), entry.ID)
	assert.Equal(t, "5 - A1", entry.Class.Name)
	assert.Equal(t, "Math", entry.Subject.Name)
	assert.Equal(t, "Manisha", entry.Teacher.Name)
	assert.Equal(t, "09:00", entry.Period.StartTime)
	assert.Equal(t, models.Timetable{ID: 10, ClassID: 1, SubjectID: 2, TeacherID: 3, PeriodID: 4, DayOfWeek: 1, CreatedAt: entry.CreatedAt, UpdatedAt: entry.UpdatedAt}, entry.Row())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryFindClassSlotExcludesSelf(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	exclude := int64(10)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE t.class_id = $1 AND t.period_id = $2 AND t.day_of_week = $3 AND t.id <> $4 ORDER BY t.id ASC LIMIT 1")).
		WithArgs(int64(1), int64(4), 2, int64(10)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindClassSlot(context.Background(), db, 1, 4, 2, &exclude)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryFindTeacherSlot(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE t.teacher_id = $1 AND t.period_id = $2 AND t.day_of_week = $3 ORDER BY t.id ASC LIMIT 1")).
		WithArgs(int64(3), int64(4), 1).
		WillReturnRows(entryRow(sqlmock.NewRows(entryColumns), 10, 1))

	entry, err := repo.FindTeacherSlot(context.Background(), db, 3, 4, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), entry.Teacher.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryCreateAndUpdateInTx(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO timetables").
		WithArgs(int64(1), int64(2), int64(3), int64(4), 1, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE timetables SET subject_id = $1, teacher_id = $2, day_of_week = $3, updated_at = $4 WHERE id = $5")).
		WithArgs(int64(2), int64(3), 2, sqlmock.AnyArg(), int64(21)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Beginx()
	require.NoError(t, err)

	row := &models.Timetable{ClassID: 1, SubjectID: 2, TeacherID: 3, PeriodID: 4, DayOfWeek: 1}
	require.NoError(t, repo.CreateTx(context.Background(), tx, row))
	assert.Equal(t, int64(21), row.ID)

	row.DayOfWeek = 2
	require.NoError(t, repo.UpdateTx(context.Background(), tx, row))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
