package models

import "time"

// Timetable is the stored assignment row.
type Timetable struct {
	ID        int64     `db:"id" json:"id"`
	ClassID   int64     `db:"class_id" json:"classId"`
	SubjectID int64     `db:"subject_id" json:"subjectId"`
	TeacherID int64     `db:"teacher_id" json:"teacherId"`
	PeriodID  int64     `db:"period_id" json:"periodId"`
	DayOfWeek int       `db:"day_of_week" json:"dayOfWeek"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// TimetableEntry is a timetable row with its relations expanded.
type TimetableEntry struct {
	ID        int64     `db:"id" json:"id"`
	DayOfWeek int       `db:"day_of_week" json:"dayOfWeek"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
	Class     Class     `db:"class" json:"class"`
	Subject   Subject   `db:"subject" json:"subject"`
	Teacher   Teacher   `db:"teacher" json:"teacher"`
	Period    Period    `db:"period" json:"period"`
}

// Row returns the storage form of the entry.
func (e TimetableEntry) Row() Timetable {
	return Timetable{
		ID:        e.ID,
		ClassID:   e.Class.ID,
		SubjectID: e.Subject.ID,
		TeacherID: e.Teacher.ID,
		PeriodID:  e.Period.ID,
		DayOfWeek: e.DayOfWeek,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// TimetableFilter narrows timetable listings. Zero values are ignored.
type TimetableFilter struct {
	ClassID   int64
	TeacherID int64
	SubjectID int64
	PeriodID  int64
	DayOfWeek int
}

// ConflictType classifies which invariant a candidate entry violates.
type ConflictType string

const (
	ConflictClass   ConflictType = "class"
	ConflictTeacher ConflictType = "teacher"
)

// ConflictResult is the outcome of a single invariant check.
type ConflictResult struct {
	HasConflict      bool
	Type             ConflictType
	Message          string
	ConflictingEntry *TimetableEntry
}

// TimetableConflictError is returned when an entry collides with an existing one.
type TimetableConflictError struct {
	Message          string          `json:"message"`
	ConflictType     ConflictType    `json:"conflictType"`
	ConflictingEntry *TimetableEntry `json:"conflictingEntry"`
}

// Error implements the error interface for conflict errors.
func (e *TimetableConflictError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}
