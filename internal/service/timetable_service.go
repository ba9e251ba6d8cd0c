package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/dto"
	"github.com/noah-isme/timetable-api/internal/models"
	"github.com/noah-isme/timetable-api/internal/repository"
	"github.com/noah-isme/timetable-api/pkg/database"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
	appValidator "github.com/noah-isme/timetable-api/pkg/validator"
)

const (
	foreignKeyViolation  = "23503"
	serializationFailure = "40001"

	missingReferencesMessage = "One or more related entities not found"
)

type timetableRepository interface {
	List(ctx context.Context, filter models.TimetableFilter) ([]models.TimetableEntry, error)
	FindByID(ctx context.Context, id int64) (*models.TimetableEntry, error)
	FindByIDTx(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.TimetableEntry, error)
	CreateTx(ctx context.Context, q sqlx.QueryerContext, row *models.Timetable) error
	UpdateTx(ctx context.Context, q sqlx.ExecerContext, row *models.Timetable) error
	Delete(ctx context.Context, id int64) error
}

type classFinder interface {
	FindByIDTx(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.Class, error)
}

type subjectFinder interface {
	FindByIDTx(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.Subject, error)
}

type teacherFinder interface {
	FindByIDTx(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.Teacher, error)
}

type periodFinder interface {
	FindByIDTx(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.Period, error)
}

// TimetableLookups groups the reference lookups used while writing entries.
type TimetableLookups struct {
	Classes  classFinder
	Subjects subjectFinder
	Teachers teacherFinder
	Periods  periodFinder
}

// slot identifies the cells a write touches.
type slot struct {
	classID   int64
	teacherID int64
	periodID  int64
	dayOfWeek int
	excludeID *int64
}

// TimetableService writes timetable entries. Checks and writes share one
// serializable transaction and both slot invariants are also backed by
// unique constraints.
type TimetableService struct {
	db        *sqlx.DB
	repo      timetableRepository
	lookups   TimetableLookups
	checker   *ConflictChecker
	cache     scheduleInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTimetableService constructs TimetableService.
func NewTimetableService(db *sqlx.DB, repo timetableRepository, lookups TimetableLookups, checker *ConflictChecker, cache scheduleInvalidator, validate *validator.Validate, logger *zap.Logger) *TimetableService {
	if validate == nil {
		validate = appValidator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{
		db:        db,
		repo:      repo,
		lookups:   lookups,
		checker:   checker,
		cache:     invalidatorOrNoop(cache),
		validator: validate,
		logger:    logger,
	}
}

// List returns expanded entries, optionally narrowed by filter.
func (s *TimetableService) List(ctx context.Context, filter models.TimetableFilter) ([]models.TimetableEntry, error) {
	if filter.DayOfWeek != 0 && !models.ValidDayOfWeek(filter.DayOfWeek) {
		return nil, fieldError("dayOfWeek", "dayOfWeek must be between 1 and 7")
	}
	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list timetable entries")
	}
	return entries, nil
}

// ListByClass returns the entries of one class ordered by day.
func (s *TimetableService) ListByClass(ctx context.Context, classID int64) ([]models.TimetableEntry, error) {
	return s.List(ctx, models.TimetableFilter{ClassID: classID})
}

// ListByTeacher returns the entries of one teacher ordered by day.
func (s *TimetableService) ListByTeacher(ctx context.Context, teacherID int64) ([]models.TimetableEntry, error) {
	return s.List(ctx, models.TimetableFilter{TeacherID: teacherID})
}

// Get returns one expanded entry.
func (s *TimetableService) Get(ctx context.Context, id int64) (*models.TimetableEntry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "timetable entry not found", "failed to load timetable entry")
	}
	return entry, nil
}

// Create validates the references, runs the class then teacher check and
// inserts the entry.
func (s *TimetableService) Create(ctx context.Context, req dto.CreateTimetableRequest) (*models.TimetableEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid timetable payload")
	}

	target := slot{classID: req.ClassID, teacherID: req.TeacherID, periodID: req.PeriodID, dayOfWeek: req.DayOfWeek}
	var created *models.TimetableEntry
	err := database.WithTx(ctx, s.db, sql.LevelSerializable, func(tx *sqlx.Tx) error {
		if err := s.ensureReferences(ctx, tx, req); err != nil {
			return err
		}
		if err := s.checkSlot(ctx, tx, target, true, true); err != nil {
			return err
		}

		row := &models.Timetable{
			ClassID:   req.ClassID,
			SubjectID: req.SubjectID,
			TeacherID: req.TeacherID,
			PeriodID:  req.PeriodID,
			DayOfWeek: req.DayOfWeek,
		}
		if err := s.repo.CreateTx(ctx, tx, row); err != nil {
			return err
		}
		entry, err := s.repo.FindByIDTx(ctx, tx, row.ID)
		if err != nil {
			return err
		}
		created = entry
		return nil
	})
	if err != nil {
		return nil, s.writeError(ctx, err, target, "failed to create timetable entry")
	}

	s.logger.Info("timetable entry created",
		zap.Int64("entry_id", created.ID),
		zap.Int64("class_id", req.ClassID),
		zap.Int64("teacher_id", req.TeacherID),
		zap.Int("day_of_week", req.DayOfWeek))
	s.cache.InvalidateSchedules(ctx)
	return created, nil
}

// Update changes the subject, teacher or day of an entry. A new teacher is
// checked against the effective day; a new day re-runs both checks. The
// entry itself is always excluded.
func (s *TimetableService) Update(ctx context.Context, id int64, req dto.UpdateTimetableRequest) (*models.TimetableEntry, error) {
	if err := checkDayOfWeek("dayOfWeek", req.DayOfWeek); err != nil {
		return nil, err
	}
	if req.SubjectID != nil && *req.SubjectID <= 0 {
		return nil, fieldError("subjectId", "subjectId must be a positive id")
	}
	if req.TeacherID != nil && *req.TeacherID <= 0 {
		return nil, fieldError("teacherId", "teacherId must be a positive id")
	}

	var target slot
	var updated *models.TimetableEntry
	err := database.WithTx(ctx, s.db, sql.LevelSerializable, func(tx *sqlx.Tx) error {
		current, err := s.repo.FindByIDTx(ctx, tx, id)
		if err != nil {
			return lookupError(err, "timetable entry not found", "failed to load timetable entry")
		}
		row := current.Row()

		if req.SubjectID != nil && *req.SubjectID != row.SubjectID {
			if _, err := s.lookups.Subjects.FindByIDTx(ctx, tx, *req.SubjectID); err != nil {
				return lookupError(err, "subject not found", "failed to load subject")
			}
			row.SubjectID = *req.SubjectID
		}

		teacherChanged := req.TeacherID != nil && *req.TeacherID != row.TeacherID
		if teacherChanged {
			if _, err := s.lookups.Teachers.FindByIDTx(ctx, tx, *req.TeacherID); err != nil {
				return lookupError(err, "teacher not found", "failed to load teacher")
			}
			row.TeacherID = *req.TeacherID
		}

		dayChanged := req.DayOfWeek != nil && *req.DayOfWeek != row.DayOfWeek
		if dayChanged {
			row.DayOfWeek = *req.DayOfWeek
		}

		target = slot{classID: row.ClassID, teacherID: row.TeacherID, periodID: row.PeriodID, dayOfWeek: row.DayOfWeek, excludeID: &row.ID}
		if teacherChanged {
			if err := s.checkSlot(ctx, tx, target, false, true); err != nil {
				return err
			}
		}
		if dayChanged {
			if err := s.checkSlot(ctx, tx, target, true, !teacherChanged); err != nil {
				return err
			}
		}

		if err := s.repo.UpdateTx(ctx, tx, &row); err != nil {
			return err
		}
		entry, err := s.repo.FindByIDTx(ctx, tx, row.ID)
		if err != nil {
			return err
		}
		updated = entry
		return nil
	})
	if err != nil {
		return nil, s.writeError(ctx, err, target, "failed to update timetable entry")
	}

	s.cache.InvalidateSchedules(ctx)
	return updated, nil
}

// Delete removes one entry.
func (s *TimetableService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, "timetable entry not found", "failed to delete timetable entry")
	}
	s.cache.InvalidateSchedules(ctx)
	return nil
}

func (s *TimetableService) ensureReferences(ctx context.Context, q sqlx.QueryerContext, req dto.CreateTimetableRequest) error {
	const failed = "failed to load related entities"

	if _, err := s.lookups.Classes.FindByIDTx(ctx, q, req.ClassID); err != nil {
		return lookupError(err, missingReferencesMessage, failed)
	}
	if _, err := s.lookups.Subjects.FindByIDTx(ctx, q, req.SubjectID); err != nil {
		return lookupError(err, missingReferencesMessage, failed)
	}
	if _, err := s.lookups.Teachers.FindByIDTx(ctx, q, req.TeacherID); err != nil {
		return lookupError(err, missingReferencesMessage, failed)
	}
	if _, err := s.lookups.Periods.FindByIDTx(ctx, q, req.PeriodID); err != nil {
		return lookupError(err, missingReferencesMessage, failed)
	}
	return nil
}

// checkSlot runs the class check and then the teacher check; the first
// failing check rejects the write.
func (s *TimetableService) checkSlot(ctx context.Context, q sqlx.QueryerContext, target slot, class, teacher bool) error {
	if class {
		result, err := s.checker.CheckClassConflict(ctx, q, target.classID, target.periodID, target.dayOfWeek, target.excludeID)
		if err != nil {
			return err
		}
		if result.HasConflict {
			return s.checker.Reject(result)
		}
	}
	if teacher {
		result, err := s.checker.CheckTeacherConflict(ctx, q, target.teacherID, target.periodID, target.dayOfWeek, target.excludeID)
		if err != nil {
			return err
		}
		if result.HasConflict {
			return s.checker.Reject(result)
		}
	}
	return nil
}

// writeError maps transaction failures onto API errors. Unique violations
// raised by a concurrent writer are classified by constraint name and
// reported with the entry that won the race.
func (s *TimetableService) writeError(ctx context.Context, err error, target slot, message string) error {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return s.constraintConflict(ctx, pqErr.Constraint, target)
		case foreignKeyViolation:
			return appErrors.Clone(appErrors.ErrNotFound, missingReferencesMessage)
		case serializationFailure:
			s.logger.Info("timetable serialization failure", zap.Int64("class_id", target.classID), zap.Int("day_of_week", target.dayOfWeek))
			return appErrors.Clone(appErrors.ErrConflict, "timetable changed concurrently, retry")
		}
	}

	s.logger.Error(message, zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

func (s *TimetableService) constraintConflict(ctx context.Context, constraint string, target slot) error {
	var (
		result *models.ConflictResult
		err    error
	)
	switch constraint {
	case repository.ClassSlotConstraint:
		result, err = s.checker.CheckClassConflict(ctx, s.db, target.classID, target.periodID, target.dayOfWeek, target.excludeID)
	case repository.TeacherSlotConstraint:
		result, err = s.checker.CheckTeacherConflict(ctx, s.db, target.teacherID, target.periodID, target.dayOfWeek, target.excludeID)
	}
	if err == nil && result != nil && result.HasConflict {
		return s.checker.Reject(result)
	}
	return appErrors.Clone(appErrors.ErrConflict, "timetable slot already taken")
}
