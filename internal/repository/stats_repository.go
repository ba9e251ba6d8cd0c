package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/timetable-api/internal/models"
)

// StatsRepository aggregates timetable figures for the dashboard.
type StatsRepository struct {
	db *sqlx.DB
}

// NewStatsRepository constructs a StatsRepository.
func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// TeacherWorkload counts assigned periods per teacher, busiest first.
func (r *StatsRepository) TeacherWorkload(ctx context.Context) ([]models.TeacherWorkload, error) {
	const query = `SELECT te.id AS teacher_id, te.name AS teacher_name, COUNT(t.id) AS assigned_periods, te.max_weekly_hours
FROM teachers te
LEFT JOIN timetables t ON t.teacher_id = te.id
GROUP BY te.id, te.name, te.max_weekly_hours
ORDER BY assigned_periods DESC, te.name ASC`
	rows := make([]models.TeacherWorkload, 0)
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("teacher workload: %w", err)
	}
	return rows, nil
}

// SubjectDistribution counts assigned periods per subject.
func (r *StatsRepository) SubjectDistribution(ctx context.Context) ([]models.SubjectDistribution, error) {
	const query = `SELECT s.id AS subject_id, s.name AS subject_name, s.color, COUNT(t.id) AS assigned_periods, s.weekly_hours
FROM subjects s
LEFT JOIN timetables t ON t.subject_id = s.id
GROUP BY s.id, s.name, s.color, s.weekly_hours
ORDER BY assigned_periods DESC, s.name ASC`
	rows := make([]models.SubjectDistribution, 0)
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("subject distribution: %w", err)
	}
	return rows, nil
}

// Totals counts rows in every timetable table.
func (r *StatsRepository) Totals(ctx context.Context) (*models.TimetableTotals, error) {
	const query = `SELECT
 (SELECT COUNT(*) FROM timetables) AS entries,
 (SELECT COUNT(*) FROM classes) AS classes,
 (SELECT COUNT(*) FROM teachers) AS teachers,
 (SELECT COUNT(*) FROM subjects) AS subjects,
 (SELECT COUNT(*) FROM periods) AS periods`
	var totals models.TimetableTotals
	if err := r.db.GetContext(ctx, &totals, query); err != nil {
		return nil, fmt.Errorf("timetable totals: %w", err)
	}
	return &totals, nil
}
