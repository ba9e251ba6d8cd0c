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

type subjectRepository interface {
	List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, error)
	FindByID(ctx context.Context, id int64) (*models.Subject, error)
	Create(ctx context.Context, subject *models.Subject) error
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id int64) error
}

// SubjectService provides subject CRUD operations.
type SubjectService struct {
	repo      subjectRepository
	cache     scheduleInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectService constructs SubjectService.
func NewSubjectService(repo subjectRepository, cache scheduleInvalidator, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if validate == nil {
		validate = appValidator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{repo: repo, cache: invalidatorOrNoop(cache), validator: validate, logger: logger}
}

// List returns subjects ordered by name.
func (s *SubjectService) List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, error) {
	subjects, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	return subjects, nil
}

// Get returns a subject by ID.
func (s *SubjectService) Get(ctx context.Context, id int64) (*models.Subject, error) {
	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "subject not found", "failed to load subject")
	}
	return subject, nil
}

// Create inserts a subject. Color defaults to DefaultSubjectColor.
func (s *SubjectService) Create(ctx context.Context, req dto.CreateSubjectRequest) (*models.Subject, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid subject payload")
	}
	if err := checkNonNegative("weeklyHours", req.WeeklyHours); err != nil {
		return nil, err
	}

	subject := &models.Subject{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Color:       req.Color,
	}
	if req.WeeklyHours != nil {
		subject.WeeklyHours = *req.WeeklyHours
	}
	if subject.Color == nil {
		color := models.DefaultSubjectColor
		subject.Color = &color
	}

	if err := s.repo.Create(ctx, subject); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create subject")
	}
	s.cache.InvalidateSchedules(ctx)
	return subject, nil
}

// Update modifies a subject with partial semantics.
func (s *SubjectService) Update(ctx context.Context, id int64, req dto.UpdateSubjectRequest) (*models.Subject, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid subject payload")
	}
	if err := checkNonNegative("weeklyHours", req.WeeklyHours); err != nil {
		return nil, err
	}

	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "subject not found", "failed to load subject")
	}

	if req.Name != "" {
		subject.Name = req.Name
	}
	if req.Code != nil {
		subject.Code = req.Code
	}
	if req.Description != nil {
		subject.Description = req.Description
	}
	if req.WeeklyHours != nil {
		subject.WeeklyHours = *req.WeeklyHours
	}
	if req.Color != nil {
		subject.Color = req.Color
	}

	if err := s.repo.Update(ctx, subject); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update subject")
	}
	s.cache.InvalidateSchedules(ctx)
	return subject, nil
}

// Delete removes a subject together with its timetable entries.
func (s *SubjectService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, "subject not found", "failed to delete subject")
	}
	s.cache.InvalidateSchedules(ctx)
	return nil
}
