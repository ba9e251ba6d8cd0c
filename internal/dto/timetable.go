package dto

// CreateTimetableRequest assigns a class, subject and teacher to a slot.
type CreateTimetableRequest struct {
	ClassID   int64 `json:"classId" validate:"required,min=1"`
	SubjectID int64 `json:"subjectId" validate:"required,min=1"`
	TeacherID int64 `json:"teacherId" validate:"required,min=1"`
	PeriodID  int64 `json:"periodId" validate:"required,min=1"`
	DayOfWeek int   `json:"dayOfWeek" validate:"required,min=1,max=7"`
}

// UpdateTimetableRequest changes subject, teacher or day of an entry. The
// class and period of an entry are fixed.
type UpdateTimetableRequest struct {
	SubjectID *int64 `json:"subjectId"`
	TeacherID *int64 `json:"teacherId"`
	DayOfWeek *int   `json:"dayOfWeek"`
}
