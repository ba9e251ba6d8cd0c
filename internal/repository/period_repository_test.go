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

func TestPeriodRepositoryListOrdersByStartTime(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPeriodRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "start_time", "end_time", "day_of_week", "created_at", "updated_at"}).
		AddRow(1, "Period 1", "09:00", "09:50", nil, time.Now(), time.Now()).
		AddRow(2, "Period 2", "09:50", "10:40", nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM periods ORDER BY start_time ASC, id ASC")).
		WillReturnRows(rows)

	periods, err := repo.List(context.Background(), models.PeriodFilter{})
	require.NoError(t, err)
	require.Len(t, periods, 2)
	assert.Equal(t, "09:00", periods[0].StartTime)
	assert.Nil(t, periods[0].DayOfWeek)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPeriodRepositoryListByDay(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPeriodRepository(db)

	day := 2
	mock.ExpectQuery(regexp.QuoteMeta("FROM periods WHERE (day_of_week IS NULL OR day_of_week = $1)")).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "start_time", "end_time", "day_of_week"}))

	_, err := repo.List(context.Background(), models.PeriodFilter{DayOfWeek: &day})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPeriodRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPeriodRepository(db)

	mock.ExpectQuery("INSERT INTO periods").
		WithArgs("Period 1", "09:00", "09:50", nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	period := &models.Period{Name: "Period 1", StartTime: "09:00", EndTime: "09:50"}
	require.NoError(t, repo.Create(context.Background(), period))
	assert.Equal(t, int64(11), period.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
