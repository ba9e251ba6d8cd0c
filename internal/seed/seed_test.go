package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestRunInsertsDefaults(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	for i := 0; i < len(grades)*len(sections); i++ {
		mock.ExpectExec("INSERT INTO classes").WillReturnResult(sqlmock.NewResult(int64(i+1), 1))
	}
	for i := range teacherNames {
		// the first teacher already exists
		affected := int64(1)
		if i == 0 {
			affected = 0
		}
		mock.ExpectExec("INSERT INTO teachers").WillReturnResult(sqlmock.NewResult(0, affected))
	}
	for range periods {
		mock.ExpectExec("INSERT INTO periods").WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	res, err := Run(context.Background(), db, nil)
	require.NoError(t, err)
	assert.Equal(t, Result{Classes: 10, Teachers: 14, Periods: 8}, res)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunRollsBackOnError(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO classes").
		WithArgs("1 - A1", "1", "A1", "Grade 1, Section A1").
		WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	_, err := Run(context.Background(), db, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed class 1 - A1")
	assert.NoError(t, mock.ExpectationsWereMet())
}
