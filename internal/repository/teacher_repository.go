package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/timetable-api/internal/models"
)

const teacherColumns = "id, name, phone, specialization, max_weekly_hours, created_at, updated_at"

// TeacherRepository handles persistence for teachers.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// List returns teachers ordered by name.
func (r *TeacherRepository) List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, error) {
	query := "SELECT " + teacherColumns + " FROM teachers"
	var args []interface{}
	if filter.Search != "" {
		query += " WHERE (LOWER(name) LIKE $1 OR LOWER(COALESCE(specialization, '')) LIKE $1)"
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	query += " ORDER BY name ASC, id ASC"

	teachers := make([]models.Teacher, 0)
	if err := r.db.SelectContext(ctx, &teachers, query, args...); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

// FindByID fetches a teacher by ID.
func (r *TeacherRepository) FindByID(ctx context.Context, id int64) (*models.Teacher, error) {
	return r.FindByIDTx(ctx, r.db, id)
}

// FindByIDTx loads a teacher through the provided query handle.
func (r *TeacherRepository) FindByIDTx(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := sqlx.GetContext(ctx, q, &teacher, "SELECT "+teacherColumns+" FROM teachers WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// Create inserts a teacher and assigns its generated ID.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	now := time.Now().UTC()
	teacher.CreatedAt = now
	teacher.UpdatedAt = now

	const query = `INSERT INTO teachers (name, phone, specialization, max_weekly_hours, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, teacher.Name, teacher.Phone, teacher.Specialization, teacher.MaxWeeklyHours, teacher.CreatedAt, teacher.UpdatedAt).Scan(&teacher.ID); err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}
	return nil
}

// Update modifies a teacher record.
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	teacher.UpdatedAt = time.Now().UTC()
	const query = `UPDATE teachers SET name = :name, phone = :phone, specialization = :specialization, max_weekly_hours = :max_weekly_hours, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, teacher); err != nil {
		return fmt.Errorf("update teacher: %w", err)
	}
	return nil
}

// Delete removes a teacher. Timetable entries cascade.
func (r *TeacherRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "teachers", id)
}
