package models

import "time"

// Teacher represents an instructor. MaxWeeklyHours is declared capacity only.
type Teacher struct {
	ID             int64     `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Phone          *string   `db:"phone" json:"phone"`
	Specialization *string   `db:"specialization" json:"specialization"`
	MaxWeeklyHours int       `db:"max_weekly_hours" json:"maxWeeklyHours"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// TeacherFilter captures filtering options for listing teachers.
type TeacherFilter struct {
	Search string
}
