package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-api/internal/models"
)

func TestTeacherRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "phone", "specialization", "max_weekly_hours", "created_at", "updated_at"}).
		AddRow(1, "Manisha", nil, "Math", 30, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, phone, specialization, max_weekly_hours, created_at, updated_at FROM teachers WHERE (LOWER(name) LIKE $1 OR LOWER(COALESCE(specialization, '')) LIKE $1) ORDER BY name ASC, id ASC")).
		WithArgs("%man%").
		WillReturnRows(rows)

	list, err := repo.List(context.Background(), models.TeacherFilter{Search: "Man"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 30, list[0].MaxWeeklyHours)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryCreateAndDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectQuery("INSERT INTO teachers").
		WithArgs("Anitha", nil, nil, 30, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	teacher := &models.Teacher{Name: "Anitha", MaxWeeklyHours: 30}
	require.NoError(t, repo.Create(context.Background(), teacher))
	assert.Equal(t, int64(5), teacher.ID)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM teachers WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}
