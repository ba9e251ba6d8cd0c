package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/dto"
	"github.com/noah-isme/timetable-api/internal/models"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
	appValidator "github.com/noah-isme/timetable-api/pkg/validator"
)

type teacherRepository interface {
	List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, error)
	FindByID(ctx context.Context, id int64) (*models.Teacher, error)
	Create(ctx context.Context, teacher *models.Teacher) error
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id int64) error
}

// TeacherService manages teacher records.
type TeacherService struct {
	repo      teacherRepository
	cache     scheduleInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService constructs TeacherService.
func NewTeacherService(repo teacherRepository, cache scheduleInvalidator, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = appValidator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{repo: repo, cache: invalidatorOrNoop(cache), validator: validate, logger: logger}
}

// List returns teachers ordered by name.
func (s *TeacherService) List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, error) {
	teachers, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teachers")
	}
	return teachers, nil
}

// Get returns a teacher by ID.
func (s *TeacherService) Get(ctx context.Context, id int64) (*models.Teacher, error) {
	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "teacher not found", "failed to load teacher")
	}
	return teacher, nil
}

// Create inserts a teacher.
func (s *TeacherService) Create(ctx context.Context, req dto.CreateTeacherRequest) (*models.Teacher, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid teacher payload")
	}
	if err := checkNonNegative("maxWeeklyHours", req.MaxWeeklyHours); err != nil {
		return nil, err
	}

	teacher := &models.Teacher{
		Name:           req.Name,
		Phone:          req.Phone,
		Specialization: req.Specialization,
	}
	if req.MaxWeeklyHours != nil {
		teacher.MaxWeeklyHours = *req.MaxWeeklyHours
	}

	if err := s.repo.Create(ctx, teacher); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create teacher")
	}
	s.cache.InvalidateSchedules(ctx)
	return teacher, nil
}

// Update modifies a teacher with partial semantics.
func (s *TeacherService) Update(ctx context.Context, id int64, req dto.UpdateTeacherRequest) (*models.Teacher, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid teacher payload")
	}
	if err := checkNonNegative("maxWeeklyHours", req.MaxWeeklyHours); err != nil {
		return nil, err
	}

	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "teacher not found", "failed to load teacher")
	}

	if req.Name != "" {
		teacher.Name = req.Name
	}
	if req.Phone != nil {
		teacher.Phone = req.Phone
	}
	if req.Specialization != nil {
		teacher.Specialization = req.Specialization
	}
	if req.MaxWeeklyHours != nil {
		teacher.MaxWeeklyHours = *req.MaxWeeklyHours
	}

	if err := s.repo.Update(ctx, teacher); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update teacher")
	}
	s.cache.InvalidateSchedules(ctx)
	return teacher, nil
}

// Delete removes a teacher together with their timetable entries.
func (s *TeacherService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, "teacher not found", "failed to delete teacher")
	}
	s.logger.Info("teacher deleted", zap.Int64("teacher_id", id))
	s.cache.InvalidateSchedules(ctx)
	return nil
}
