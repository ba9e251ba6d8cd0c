package models

// TeacherWorkload compares assigned periods against declared capacity.
type TeacherWorkload struct {
	TeacherID       int64  `db:"teacher_id" json:"teacherId"`
	TeacherName     string `db:"teacher_name" json:"teacherName"`
	AssignedPeriods int    `db:"assigned_periods" json:"assignedPeriods"`
	MaxWeeklyHours  int    `db:"max_weekly_hours" json:"maxWeeklyHours"`
	OverCapacity    bool   `db:"-" json:"overCapacity"`
}

// SubjectDistribution compares assigned periods against the weekly target.
type SubjectDistribution struct {
	SubjectID       int64   `db:"subject_id" json:"subjectId"`
	SubjectName     string  `db:"subject_name" json:"subjectName"`
	Color           *string `db:"color" json:"color"`
	AssignedPeriods int     `db:"assigned_periods" json:"assignedPeriods"`
	WeeklyHours     int     `db:"weekly_hours" json:"weeklyHours"`
}

// TimetableTotals counts rows per table.
type TimetableTotals struct {
	Entries  int `db:"entries" json:"entries"`
	Classes  int `db:"classes" json:"classes"`
	Teachers int `db:"teachers" json:"teachers"`
	Subjects int `db:"subjects" json:"subjects"`
	Periods  int `db:"periods" json:"periods"`
}

// TimetableStats backs the dashboard charts.
type TimetableStats struct {
	TeacherWorkload     []TeacherWorkload     `json:"teacherWorkload"`
	SubjectDistribution []SubjectDistribution `json:"subjectDistribution"`
	Totals              TimetableTotals       `json:"totals"`
}
