package dto

// CreateTeacherRequest captures the teacher creation payload.
type CreateTeacherRequest struct {
	Name           string  `json:"name" validate:"required,max=255"`
	Phone          *string `json:"phone" validate:"omitempty,max=20"`
	Specialization *string `json:"specialization" validate:"omitempty,max=100"`
	MaxWeeklyHours *int    `json:"maxWeeklyHours" validate:"omitempty,min=0"`
}

// UpdateTeacherRequest modifies teacher fields with partial semantics.
type UpdateTeacherRequest struct {
	Name           string  `json:"name" validate:"omitempty,max=255"`
	Phone          *string `json:"phone" validate:"omitempty,max=20"`
	Specialization *string `json:"specialization" validate:"omitempty,max=100"`
	MaxWeeklyHours *int    `json:"maxWeeklyHours" validate:"omitempty,min=0"`
}
