package models

import "time"

// DefaultSubjectColor is used when a subject is created without a color.
const DefaultSubjectColor = "#3788d8"

// Subject represents a taught subject and its weekly period target.
type Subject struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Code        *string   `db:"code" json:"code"`
	Description *string   `db:"description" json:"description"`
	WeeklyHours int       `db:"weekly_hours" json:"weeklyHours"`
	Color       *string   `db:"color" json:"color"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// SubjectFilter captures supported filters for listing subjects.
type SubjectFilter struct {
	Search string
}
