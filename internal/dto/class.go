package dto

// CreateClassRequest captures the class creation payload.
type CreateClassRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Grade       *string `json:"grade" validate:"omitempty,max=20"`
	Section     *string `json:"section" validate:"omitempty,max=10"`
	Description *string `json:"description"`
}

// UpdateClassRequest modifies class fields. An empty name keeps the current
// name; other fields are replaced only when present.
type UpdateClassRequest struct {
	Name        string  `json:"name" validate:"omitempty,max=255"`
	Grade       *string `json:"grade" validate:"omitempty,max=20"`
	Section     *string `json:"section" validate:"omitempty,max=10"`
	Description *string `json:"description"`
}
