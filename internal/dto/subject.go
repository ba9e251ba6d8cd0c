package dto

// CreateSubjectRequest captures the subject creation payload.
type CreateSubjectRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Code        *string `json:"code" validate:"omitempty,max=50"`
	Description *string `json:"description"`
	WeeklyHours *int    `json:"weeklyHours" validate:"omitempty,min=0"`
	Color       *string `json:"color" validate:"omitempty,hexcolor6"`
}

// UpdateSubjectRequest modifies subject fields with partial semantics.
type UpdateSubjectRequest struct {
	Name        string  `json:"name" validate:"omitempty,max=255"`
	Code        *string `json:"code" validate:"omitempty,max=50"`
	Description *string `json:"description"`
	WeeklyHours *int    `json:"weeklyHours" validate:"omitempty,min=0"`
	Color       *string `json:"color" validate:"omitempty,hexcolor6"`
}
