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

type periodRepository interface {
	List(ctx context.Context, filter models.PeriodFilter) ([]models.Period, error)
	FindByID(ctx context.Context, id int64) (*models.Period, error)
	Create(ctx context.Context, period *models.Period) error
	Update(ctx context.Context, period *models.Period) error
	Delete(ctx context.Context, id int64) error
}

// PeriodService manages teaching periods.
type PeriodService struct {
	repo      periodRepository
	cache     scheduleInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPeriodService constructs PeriodService.
func NewPeriodService(repo periodRepository, cache scheduleInvalidator, validate *validator.Validate, logger *zap.Logger) *PeriodService {
	if validate == nil {
		validate = appValidator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PeriodService{repo: repo, cache: invalidatorOrNoop(cache), validator: validate, logger: logger}
}

// List returns periods ordered by start time.
func (s *PeriodService) List(ctx context.Context, filter models.PeriodFilter) ([]models.Period, error) {
	if err := checkDayOfWeek("dayOfWeek", filter.DayOfWeek); err != nil {
		return nil, err
	}
	periods, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list periods")
	}
	return periods, nil
}

// Get returns a period by ID.
func (s *PeriodService) Get(ctx context.Context, id int64) (*models.Period, error) {
	period, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "period not found", "failed to load period")
	}
	return period, nil
}

// Create inserts a period.
func (s *PeriodService) Create(ctx context.Context, req dto.CreatePeriodRequest) (*models.Period, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid period payload")
	}
	if err := checkDayOfWeek("dayOfWeek", req.DayOfWeek); err != nil {
		return nil, err
	}

	period := &models.Period{
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		DayOfWeek: req.DayOfWeek,
	}
	if err := s.repo.Create(ctx, period); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create period")
	}
	s.cache.InvalidateSchedules(ctx)
	return period, nil
}

// Update modifies a period with partial semantics.
func (s *PeriodService) Update(ctx context.Context, id int64, req dto.UpdatePeriodRequest) (*models.Period, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid period payload")
	}
	if err := checkDayOfWeek("dayOfWeek", req.DayOfWeek); err != nil {
		return nil, err
	}

	period, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "period not found", "failed to load period")
	}

	if req.Name != "" {
		period.Name = req.Name
	}
	if req.StartTime != nil {
		period.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		period.EndTime = *req.EndTime
	}
	if req.DayOfWeek != nil {
		period.DayOfWeek = req.DayOfWeek
	}

	if err := s.repo.Update(ctx, period); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update period")
	}
	s.cache.InvalidateSchedules(ctx)
	return period, nil
}

// Delete removes a period together with its timetable entries.
func (s *PeriodService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, "period not found", "failed to delete period")
	}
	s.cache.InvalidateSchedules(ctx)
	return nil
}
