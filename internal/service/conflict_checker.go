package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/models"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
)

const noConflictMessage = "No conflicts found"

type slotFinder interface {
	FindClassSlot(ctx context.Context, q sqlx.QueryerContext, classID, periodID int64, dayOfWeek int, excludeID *int64) (*models.TimetableEntry, error)
	FindTeacherSlot(ctx context.Context, q sqlx.QueryerContext, teacherID, periodID int64, dayOfWeek int, excludeID *int64) (*models.TimetableEntry, error)
}

// ConflictChecker verifies the class and teacher slot invariants. Only
// (owner, period, day) triples are compared; distinct periods with
// overlapping clock times never conflict.
type ConflictChecker struct {
	slots   slotFinder
	metrics *MetricsService
	logger  *zap.Logger
}

// NewConflictChecker constructs a ConflictChecker.
func NewConflictChecker(slots slotFinder, metrics *MetricsService, logger *zap.Logger) *ConflictChecker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConflictChecker{slots: slots, metrics: metrics, logger: logger}
}

// CheckClassConflict reports whether the class already has an entry in the
// period on that day. excludeID skips the entry being updated.
func (c *ConflictChecker) CheckClassConflict(ctx context.Context, q sqlx.QueryerContext, classID, periodID int64, dayOfWeek int, excludeID *int64) (*models.ConflictResult, error) {
	existing, err := c.slots.FindClassSlot(ctx, q, classID, periodID, dayOfWeek, excludeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.ConflictResult{Message: noConflictMessage}, nil
		}
		return nil, fmt.Errorf("check class conflict: %w", err)
	}
	return &models.ConflictResult{
		HasConflict:      true,
		Type:             models.ConflictClass,
		Message:          classConflictMessage(existing),
		ConflictingEntry: existing,
	}, nil
}

// CheckTeacherConflict reports whether the teacher is already booked in the
// period on that day. excludeID skips the entry being updated.
func (c *ConflictChecker) CheckTeacherConflict(ctx context.Context, q sqlx.QueryerContext, teacherID, periodID int64, dayOfWeek int, excludeID *int64) (*models.ConflictResult, error) {
	existing, err := c.slots.FindTeacherSlot(ctx, q, teacherID, periodID, dayOfWeek, excludeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.ConflictResult{Message: noConflictMessage}, nil
		}
		return nil, fmt.Errorf("check teacher conflict: %w", err)
	}
	return &models.ConflictResult{
		HasConflict:      true,
		Type:             models.ConflictTeacher,
		Message:          teacherConflictMessage(existing),
		ConflictingEntry: existing,
	}, nil
}

// Reject converts a failed check into a 409 error carrying the conflicting
// entry and records it.
func (c *ConflictChecker) Reject(result *models.ConflictResult) error {
	c.metrics.RecordConflict(result.Type)
	fields := []zap.Field{zap.String("conflict_type", string(result.Type))}
	if result.ConflictingEntry != nil {
		fields = append(fields, zap.Int64("conflicting_entry_id", result.ConflictingEntry.ID))
	}
	c.logger.Info("timetable conflict", fields...)

	conflict := &models.TimetableConflictError{
		Message:          result.Message,
		ConflictType:     result.Type,
		ConflictingEntry: result.ConflictingEntry,
	}
	return appErrors.Wrap(conflict, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, result.Message)
}

func classConflictMessage(existing *models.TimetableEntry) string {
	return fmt.Sprintf("Class %s already has %s scheduled during %s on %s",
		existing.Class.Name, existing.Subject.Name, existing.Period.Name, models.WeekdayName(existing.DayOfWeek))
}

func teacherConflictMessage(existing *models.TimetableEntry) string {
	return fmt.Sprintf("Teacher is already assigned to %s for %s during this period (%s) on %s",
		existing.Class.Name, existing.Subject.Name, existing.Period.Name, models.WeekdayName(existing.DayOfWeek))
}
