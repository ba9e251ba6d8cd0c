package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/noah-isme/timetable-api/internal/models"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
	appValidator "github.com/noah-isme/timetable-api/pkg/validator"
)

// scheduleInvalidator drops cached projections after a committed write.
type scheduleInvalidator interface {
	InvalidateSchedules(ctx context.Context)
}

type noopInvalidator struct{}

func (noopInvalidator) InvalidateSchedules(context.Context) {}

func invalidatorOrNoop(inv scheduleInvalidator) scheduleInvalidator {
	if inv == nil {
		return noopInvalidator{}
	}
	return inv
}

func validationError(err error, message string) *appErrors.Error {
	wrapped := appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
	return appErrors.WithDetails(wrapped, appValidator.TranslateErrors(err))
}

func fieldError(field, detail string) *appErrors.Error {
	return appErrors.WithDetails(appErrors.Clone(appErrors.ErrValidation, detail), map[string]string{field: detail})
}

func checkDayOfWeek(field string, day *int) *appErrors.Error {
	if day != nil && !models.ValidDayOfWeek(*day) {
		return fieldError(field, field+" must be between 1 and 7")
	}
	return nil
}

func checkNonNegative(field string, value *int) *appErrors.Error {
	if value != nil && *value < 0 {
		return fieldError(field, field+" must be 0 or greater")
	}
	return nil
}

func lookupError(err error, notFound, internal string) *appErrors.Error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	}
	return appErrors.Internal(err, internal)
}
