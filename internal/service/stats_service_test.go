package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-api/internal/models"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
)

type statsRepoStub struct {
	workload []models.TeacherWorkload
	err      error
}

func (s statsRepoStub) TeacherWorkload(ctx context.Context) ([]models.TeacherWorkload, error) {
	return s.workload, s.err
}

func (s statsRepoStub) SubjectDistribution(ctx context.Context) ([]models.SubjectDistribution, error) {
	return []models.SubjectDistribution{{SubjectID: 1, SubjectName: "Math", AssignedPeriods: 6, WeeklyHours: 6}}, nil
}

func (s statsRepoStub) Totals(ctx context.Context) (*models.TimetableTotals, error) {
	return &models.TimetableTotals{Entries: 38, Classes: 10}, nil
}

func TestStatsServiceFlagsOverCapacity(t *testing.T) {
	svc := NewStatsService(statsRepoStub{workload: []models.TeacherWorkload{
		{TeacherID: 1, TeacherName: "Manisha", AssignedPeriods: 32, MaxWeeklyHours: 30},
		{TeacherID: 2, TeacherName: "Anitha", AssignedPeriods: 6, MaxWeeklyHours: 30},
		{TeacherID: 3, TeacherName: "Pushpa", AssignedPeriods: 6, MaxWeeklyHours: 0},
	}}, nil, NewMetricsService(), nil)

	stats, hit, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.True(t, stats.TeacherWorkload[0].OverCapacity)
	assert.False(t, stats.TeacherWorkload[1].OverCapacity)
	assert.False(t, stats.TeacherWorkload[2].OverCapacity)
	assert.Equal(t, 38, stats.Totals.Entries)
	assert.Len(t, stats.SubjectDistribution, 1)
}

func TestStatsServiceStorageError(t *testing.T) {
	svc := NewStatsService(statsRepoStub{err: errors.New("boom")}, nil, nil, nil)

	_, _, err := svc.Stats(context.Background())
	assert.Equal(t, http.StatusInternalServerError, appErrors.FromError(err).Status)
}
