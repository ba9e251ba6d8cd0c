package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/timetable-api/internal/models"
)

// Constraint names backing the two slot invariants.
const (
	ClassSlotConstraint   = "timetables_class_slot_key"
	TeacherSlotConstraint = "timetables_teacher_slot_key"
)

const timetableEntrySelect = `SELECT t.id, t.day_of_week, t.created_at, t.updated_at,
 c.id AS "class.id", c.name AS "class.name", c.grade AS "class.grade", c.section AS "class.section", c.description AS "class.description", c.created_at AS "class.created_at", c.updated_at AS "class.updated_at",
 s.id AS "subject.id", s.name AS "subject.name", s.code AS "subject.code", s.description AS "subject.description", s.weekly_hours AS "subject.weekly_hours", s.color AS "subject.color", s.created_at AS "subject.created_at", s.updated_at AS "subject.updated_at",
 te.id AS "teacher.id", te.name AS "teacher.name", te.phone AS "teacher.phone", te.specialization AS "teacher.specialization", te.max_weekly_hours AS "teacher.max_weekly_hours", te.created_at AS "teacher.created_at", te.updated_at AS "teacher.updated_at",
 p.id AS "period.id", p.name AS "period.name", p.start_time AS "period.start_time", p.end_time AS "period.end_time", p.day_of_week AS "period.day_of_week", p.created_at AS "period.created_at", p.updated_at AS "period.updated_at"
FROM timetables t
JOIN classes c ON c.id = t.class_id
JOIN subjects s ON s.id = t.subject_id
JOIN teachers te ON te.id = t.teacher_id
JOIN periods p ON p.id = t.period_id`

// TimetableRepository persists timetable entries and answers slot lookups.
type TimetableRepository struct {
	db *sqlx.DB
}

// NewTimetableRepository constructs a TimetableRepository.
func NewTimetableRepository(db *sqlx.DB) *TimetableRepository {
	return &TimetableRepository{db: db}
}

// DB exposes the pool so services can open transactions.
func (r *TimetableRepository) DB() *sqlx.DB {
	return r.db
}

// List returns expanded entries matching the filter ordered by day, period
// start time and class name.
func (r *TimetableRepository) List(ctx context.Context, filter models.TimetableFilter) ([]models.TimetableEntry, error) {
	var conditions []string
	var args []interface{}

	if filter.ClassID > 0 {
		conditions = append(conditions, fmt.Sprintf("t.class_id = $%d", len(args)+1))
		args = append(args, filter.ClassID)
	}
	if filter.TeacherID > 0 {
		conditions = append(conditions, fmt.Sprintf("t.teacher_id = $%d", len(args)+1))
		args = append(args, filter.TeacherID)
	}
	if filter.SubjectID > 0 {
		conditions = append(conditions, fmt.Sprintf("t.subject_id = $%d", len(args)+1))
		args = append(args, filter.SubjectID)
	}
	if filter.PeriodID > 0 {
		conditions = append(conditions, fmt.Sprintf("t.period_id = $%d", len(args)+1))
		args = append(args, filter.PeriodID)
	}
	if filter.DayOfWeek > 0 {
		conditions = append(conditions, fmt.Sprintf("t.day_of_week = $%d", len(args)+1))
		args = append(args, filter.DayOfWeek)
	}

	query := timetableEntrySelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY t.day_of_week ASC, p.start_time ASC, c.name ASC, t.id ASC"

	entries := make([]models.TimetableEntry, 0)
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list timetables: %w", err)
	}
	return entries, nil
}

// FindByID returns an expanded entry by ID.
func (r *TimetableRepository) FindByID(ctx context.Context, id int64) (*models.TimetableEntry, error) {
	return r.FindByIDTx(ctx, r.db, id)
}

// FindByIDTx returns an expanded entry through the provided query handle.
func (r *TimetableRepository) FindByIDTx(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.TimetableEntry, error) {
	var entry models.TimetableEntry
	if err := sqlx.GetContext(ctx, q, &entry, timetableEntrySelect+" WHERE t.id = $1", id); err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindClassSlot returns the entry occupying (class, period, day), skipping
// excludeID when set. It returns sql.ErrNoRows when the slot is free.
func (r *TimetableRepository) FindClassSlot(ctx context.Context, q sqlx.QueryerContext, classID, periodID int64, dayOfWeek int, excludeID *int64) (*models.TimetableEntry, error) {
	return findSlot(ctx, q, "t.class_id", classID, periodID, dayOfWeek, excludeID)
}

// FindTeacherSlot returns the entry occupying (teacher, period, day),
// skipping excludeID when set. It returns sql.ErrNoRows when the slot is free.
func (r *TimetableRepository) FindTeacherSlot(ctx context.Context, q sqlx.QueryerContext, teacherID, periodID int64, dayOfWeek int, excludeID *int64) (*models.TimetableEntry, error) {
	return findSlot(ctx, q, "t.teacher_id", teacherID, periodID, dayOfWeek, excludeID)
}

func findSlot(ctx context.Context, q sqlx.QueryerContext, ownerColumn string, ownerID, periodID int64, dayOfWeek int, excludeID *int64) (*models.TimetableEntry, error) {
	query := fmt.Sprintf("%s WHERE %s = $1 AND t.period_id = $2 AND t.day_of_week = $3", timetableEntrySelect, ownerColumn)
	args := []interface{}{ownerID, periodID, dayOfWeek}
	if excludeID != nil {
		query += " AND t.id <> $4"
		args = append(args, *excludeID)
	}
	query += " ORDER BY t.id ASC LIMIT 1"

	var entry models.TimetableEntry
	if err := sqlx.GetContext(ctx, q, &entry, query, args...); err != nil {
		return nil, err
	}
	return &entry, nil
}

// CreateTx inserts an entry and assigns its generated ID.
func (r *TimetableRepository) CreateTx(ctx context.Context, q sqlx.QueryerContext, row *models.Timetable) error {
	now := time.Now().UTC()
	row.CreatedAt = now
	row.UpdatedAt = now

	const query = `INSERT INTO timetables (class_id, subject_id, teacher_id, period_id, day_of_week, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := q.QueryRowxContext(ctx, query, row.ClassID, row.SubjectID, row.TeacherID, row.PeriodID, row.DayOfWeek, row.CreatedAt, row.UpdatedAt).Scan(&row.ID); err != nil {
		return fmt.Errorf("create timetable: %w", err)
	}
	return nil
}

// UpdateTx writes the mutable columns of an entry.
func (r *TimetableRepository) UpdateTx(ctx context.Context, q sqlx.ExecerContext, row *models.Timetable) error {
	row.UpdatedAt = time.Now().UTC()
	const query = `UPDATE timetables SET subject_id = $1, teacher_id = $2, day_of_week = $3, updated_at = $4 WHERE id = $5`
	if _, err := q.ExecContext(ctx, query, row.SubjectID, row.TeacherID, row.DayOfWeek, row.UpdatedAt, row.ID); err != nil {
		return fmt.Errorf("update timetable: %w", err)
	}
	return nil
}

// Delete removes an entry, returning sql.ErrNoRows when it does not exist.
func (r *TimetableRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "timetables", id)
}
