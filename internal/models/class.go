package models

import "time"

// Class represents a school class such as "5 - A1".
type Class struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Grade       *string   `db:"grade" json:"grade"`
	Section     *string   `db:"section" json:"section"`
	Description *string   `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// ClassFilter defines filter criteria for listing classes.
type ClassFilter struct {
	Grade  string
	Search string
}
