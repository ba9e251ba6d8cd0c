package models

import "time"

// Period is a named teaching slot with HH:MM start and end times.
type Period struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	StartTime string    `db:"start_time" json:"startTime"`
	EndTime   string    `db:"end_time" json:"endTime"`
	DayOfWeek *int      `db:"day_of_week" json:"dayOfWeek"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// PeriodFilter captures filtering options for listing periods.
type PeriodFilter struct {
	DayOfWeek *int
}
