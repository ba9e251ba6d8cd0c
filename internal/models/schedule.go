package models

// ClassScheduleSlot is one cell of a class grid. Subject and Teacher are nil
// when the slot is unassigned.
type ClassScheduleSlot struct {
	PeriodID   int64   `json:"periodId"`
	PeriodName string  `json:"periodName"`
	Subject    *string `json:"subject"`
	Teacher    *string `json:"teacher"`
}

// ClassDaySchedule holds every period slot of a single day.
type ClassDaySchedule struct {
	Day   string              `json:"day"`
	Slots []ClassScheduleSlot `json:"slots"`
}

// ClassSchedule is the 7 x N grid for one class.
type ClassSchedule struct {
	ClassID   int64              `json:"classId"`
	ClassName string             `json:"className"`
	Days      []string           `json:"days"`
	Periods   []string           `json:"periods"`
	Data      []ClassDaySchedule `json:"data"`
}

// TeacherScheduleSlot is one cell of a teacher grid.
type TeacherScheduleSlot struct {
	PeriodID   int64   `json:"periodId"`
	PeriodName string  `json:"periodName"`
	Class      *string `json:"class"`
	Subject    *string `json:"subject"`
}

// TeacherDaySchedule holds every period slot of a single day.
type TeacherDaySchedule struct {
	Day   string                `json:"day"`
	Slots []TeacherScheduleSlot `json:"slots"`
}

// TeacherSchedule is the 7 x N grid for one teacher.
type TeacherSchedule struct {
	TeacherID   int64                `json:"teacherId"`
	TeacherName string               `json:"teacherName"`
	Days        []string             `json:"days"`
	Periods     []string             `json:"periods"`
	Data        []TeacherDaySchedule `json:"data"`
}

// WeekdayScheduleSlot is one cell of the weekday grid. The class identity is
// always present; subject and teacher are nil when unassigned.
type WeekdayScheduleSlot struct {
	PeriodID   int64   `json:"periodId"`
	PeriodName string  `json:"periodName"`
	ClassID    int64   `json:"classId"`
	Class      string  `json:"class"`
	Subject    *string `json:"subject"`
	Teacher    *string `json:"teacher"`
}

// WeekdaySchedule is the classes x periods grid for a single day. Slots is
// keyed by class name.
type WeekdaySchedule struct {
	Weekday   string                           `json:"weekday"`
	DayNumber int                              `json:"dayNumber"`
	Periods   []string                         `json:"periods"`
	Classes   []string                         `json:"classes"`
	Slots     map[string][]WeekdayScheduleSlot `json:"slots"`
}
