package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/models"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
)

type statsRepository interface {
	TeacherWorkload(ctx context.Context) ([]models.TeacherWorkload, error)
	SubjectDistribution(ctx context.Context) ([]models.SubjectDistribution, error)
	Totals(ctx context.Context) (*models.TimetableTotals, error)
}

// StatsService aggregates workload and distribution figures. Teacher
// capacity is reported, never enforced.
type StatsService struct {
	repo    statsRepository
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
}

// NewStatsService constructs StatsService.
func NewStatsService(repo statsRepository, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{repo: repo, cache: cache, metrics: metrics, logger: logger}
}

// Stats returns the dashboard figures. The boolean reports a cache hit.
func (s *StatsService) Stats(ctx context.Context) (*models.TimetableStats, bool, error) {
	var cached models.TimetableStats
	if hit, _ := s.cache.Get(ctx, statsCacheKey, &cached); hit {
		return &cached, true, nil
	}

	start := time.Now()
	workload, err := s.repo.TeacherWorkload(ctx)
	s.metrics.ObserveDBQuery("stats_teacher_workload", time.Since(start))
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher workload")
	}

	start = time.Now()
	distribution, err := s.repo.SubjectDistribution(ctx)
	s.metrics.ObserveDBQuery("stats_subject_distribution", time.Since(start))
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject distribution")
	}

	totals, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable totals")
	}

	for i := range workload {
		w := &workload[i]
		w.OverCapacity = w.MaxWeeklyHours > 0 && w.AssignedPeriods > w.MaxWeeklyHours
	}

	stats := &models.TimetableStats{
		TeacherWorkload:     workload,
		SubjectDistribution: distribution,
		Totals:              *totals,
	}
	_ = s.cache.Set(ctx, statsCacheKey, stats, 0)
	return stats, false, nil
}
