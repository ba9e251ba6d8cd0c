package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/timetable-api/internal/models"
)

const periodColumns = "id, name, start_time, end_time, day_of_week, created_at, updated_at"

// PeriodRepository handles persistence for periods.
type PeriodRepository struct {
	db *sqlx.DB
}

// NewPeriodRepository constructs a PeriodRepository.
func NewPeriodRepository(db *sqlx.DB) *PeriodRepository {
	return &PeriodRepository{db: db}
}

// List returns periods ordered by start time.
func (r *PeriodRepository) List(ctx context.Context, filter models.PeriodFilter) ([]models.Period, error) {
	query := "SELECT " + periodColumns + " FROM periods"
	var args []interface{}
	if filter.DayOfWeek != nil {
		query += " WHERE (day_of_week IS NULL OR day_of_week = $1)"
		args = append(args, *filter.DayOfWeek)
	}
	query += " ORDER BY start_time ASC, id ASC"

	periods := make([]models.Period, 0)
	if err := r.db.SelectContext(ctx, &periods, query, args...); err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}
	return periods, nil
}

// FindByID fetches a period by ID.
func (r *PeriodRepository) FindByID(ctx context.Context, id int64) (*models.Period, error) {
	return r.FindByIDTx(ctx, r.db, id)
}

// FindByIDTx loads a period through the provided query handle.
func (r *PeriodRepository) FindByIDTx(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.Period, error) {
	var period models.Period
	if err := sqlx.GetContext(ctx, q, &period, "SELECT "+periodColumns+" FROM periods WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &period, nil
}

// Create inserts a period and assigns its generated ID.
func (r *PeriodRepository) Create(ctx context.Context, period *models.Period) error {
	now := time.Now().UTC()
	period.CreatedAt = now
	period.UpdatedAt = now

	const query = `INSERT INTO periods (name, start_time, end_time, day_of_week, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, period.Name, period.StartTime, period.EndTime, period.DayOfWeek, period.CreatedAt, period.UpdatedAt).Scan(&period.ID); err != nil {
		return fmt.Errorf("create period: %w", err)
	}
	return nil
}

// Update modifies a period.
func (r *PeriodRepository) Update(ctx context.Context, period *models.Period) error {
	period.UpdatedAt = time.Now().UTC()
	const query = `UPDATE periods SET name = :name, start_time = :start_time, end_time = :end_time, day_of_week = :day_of_week, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, period); err != nil {
		return fmt.Errorf("update period: %w", err)
	}
	return nil
}

// Delete removes a period. Timetable entries cascade.
func (r *PeriodRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "periods", id)
}
