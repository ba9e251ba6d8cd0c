package dto

// CreatePeriodRequest captures the period creation payload.
type CreatePeriodRequest struct {
	Name      string `json:"name" validate:"required,max=255"`
	StartTime string `json:"startTime" validate:"required,clock"`
	EndTime   string `json:"endTime" validate:"required,clock"`
	DayOfWeek *int   `json:"dayOfWeek"`
}

// UpdatePeriodRequest modifies period fields with partial semantics.
type UpdatePeriodRequest struct {
	Name      string  `json:"name" validate:"omitempty,max=255"`
	StartTime *string `json:"startTime" validate:"omitempty,clock"`
	EndTime   *string `json:"endTime" validate:"omitempty,clock"`
	DayOfWeek *int    `json:"dayOfWeek"`
}
