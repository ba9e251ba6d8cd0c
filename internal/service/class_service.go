package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/dto"
	"github.com/noah-isme/timetable-api/internal/models"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
	appValidator "github.com/noah-isme/timetable-api/pkg/validator"
)

const uniqueViolation = "23505"

type classRepository interface {
	List(ctx context.Context, filter models.ClassFilter) ([]models.Class, error)
	FindByID(ctx context.Context, id int64) (*models.Class, error)
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
	Create(ctx context.Context, class *models.Class) error
	Update(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id int64) error
}

// ClassService coordinates class operations.
type ClassService struct {
	repo      classRepository
	cache     scheduleInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassService constructs ClassService.
func NewClassService(repo classRepository, cache scheduleInvalidator, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if validate == nil {
		validate = appValidator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{repo: repo, cache: invalidatorOrNoop(cache), validator: validate, logger: logger}
}

// List returns classes ordered by name.
func (s *ClassService) List(ctx context.Context, filter models.ClassFilter) ([]models.Class, error) {
	classes, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}
	return classes, nil
}

// Get returns a class by ID.
func (s *ClassService) Get(ctx context.Context, id int64) (*models.Class, error) {
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "class not found", "failed to load class")
	}
	return class, nil
}

// Create adds a new class with a unique name.
func (s *ClassService) Create(ctx context.Context, req dto.CreateClassRequest) (*models.Class, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid class payload")
	}

	if err := s.ensureUniqueName(ctx, req.Name, 0); err != nil {
		return nil, err
	}

	class := &models.Class{
		Name:        req.Name,
		Grade:       req.Grade,
		Section:     req.Section,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, class); err != nil {
		return nil, s.writeError(err, "failed to create class")
	}
	s.logger.Info("class created", zap.Int64("class_id", class.ID), zap.String("name", class.Name))
	s.cache.InvalidateSchedules(ctx)
	return class, nil
}

// Update modifies a class. An empty name keeps the current one.
func (s *ClassService) Update(ctx context.Context, id int64, req dto.UpdateClassRequest) (*models.Class, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid class payload")
	}

	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "class not found", "failed to load class")
	}

	if req.Name != "" && req.Name != class.Name {
		if err := s.ensureUniqueName(ctx, req.Name, id); err != nil {
			return nil, err
		}
		class.Name = req.Name
	}
	if req.Grade != nil {
		class.Grade = req.Grade
	}
	if req.Section != nil {
		class.Section = req.Section
	}
	if req.Description != nil {
		class.Description = req.Description
	}

	if err := s.repo.Update(ctx, class); err != nil {
		return nil, s.writeError(err, "failed to update class")
	}
	s.cache.InvalidateSchedules(ctx)
	return class, nil
}

// Delete removes a class together with its timetable entries.
func (s *ClassService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, "class not found", "failed to delete class")
	}
	s.logger.Info("class deleted", zap.Int64("class_id", id))
	s.cache.InvalidateSchedules(ctx)
	return nil
}

func (s *ClassService) ensureUniqueName(ctx context.Context, name string, excludeID int64) error {
	exists, err := s.repo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check class name")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "class name already exists")
	}
	return nil
}

func (s *ClassService) writeError(err error, message string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return appErrors.Clone(appErrors.ErrConflict, "class name already exists")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}
