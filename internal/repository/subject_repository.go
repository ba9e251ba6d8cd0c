package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/timetable-api/internal/models"
)

const subjectColumns = "id, name, code, description, weekly_hours, color, created_at, updated_at"

// SubjectRepository handles persistence for subjects.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository constructs a SubjectRepository.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// List returns subjects ordered by name.
func (r *SubjectRepository) List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, error) {
	query := "SELECT " + subjectColumns + " FROM subjects"
	var args []interface{}
	if filter.Search != "" {
		query += " WHERE (LOWER(name) LIKE $1 OR LOWER(COALESCE(code, '')) LIKE $1)"
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	query += " ORDER BY name ASC, id ASC"

	subjects := make([]models.Subject, 0)
	if err := r.db.SelectContext(ctx, &subjects, query, args...); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// FindByID fetches a subject by ID.
func (r *SubjectRepository) FindByID(ctx context.Context, id int64) (*models.Subject, error) {
	return r.FindByIDTx(ctx, r.db, id)
}

// FindByIDTx loads a subject through the provided query handle.
func (r *SubjectRepository) FindByIDTx(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.Subject, error) {
	var subject models.Subject
	if err := sqlx.GetContext(ctx, q, &subject, "SELECT "+subjectColumns+" FROM subjects WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &subject, nil
}

// Create inserts a subject and assigns its generated ID.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	now := time.Now().UTC()
	subject.CreatedAt = now
	subject.UpdatedAt = now

	const query = `INSERT INTO subjects (name, code, description, weekly_hours, color, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, subject.Name, subject.Code, subject.Description, subject.WeeklyHours, subject.Color, subject.CreatedAt, subject.UpdatedAt).Scan(&subject.ID); err != nil {
		return fmt.Errorf("create subject: %w", err)
	}
	return nil
}

// Update modifies a subject.
func (r *SubjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	subject.UpdatedAt = time.Now().UTC()
	const query = `UPDATE subjects SET name = :name, code = :code, description = :description, weekly_hours = :weekly_hours, color = :color, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, subject); err != nil {
		return fmt.Errorf("update subject: %w", err)
	}
	return nil
}

// Delete removes a subject. Timetable entries cascade.
func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "subjects", id)
}
