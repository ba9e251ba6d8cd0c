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

func TestSubjectRepositoryListAll(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "code", "description", "weekly_hours", "color", "created_at", "updated_at"}).
		AddRow(1, "Math", "MTH", nil, 6, "#3788d8", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM subjects ORDER BY name ASC, id ASC")).
		WillReturnRows(rows)

	subjects, err := repo.List(context.Background(), models.SubjectFilter{})
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, 6, subjects[0].WeeklyHours)
	require.NotNil(t, subjects[0].Color)
	assert.Equal(t, "#3788d8", *subjects[0].Color)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepositoryFindByIDTx(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM subjects WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "weekly_hours"}).AddRow(3, "Science", 4))
	mock.ExpectRollback()

	tx, err := db.Beginx()
	require.NoError(t, err)
	subject, err := repo.FindByIDTx(context.Background(), tx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Science", subject.Name)
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}
