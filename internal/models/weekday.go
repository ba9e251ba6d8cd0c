package models

// Weekdays lists day names indexed by dayOfWeek-1 (1 = Monday).
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ValidDayOfWeek reports whether day is within 1..7.
func ValidDayOfWeek(day int) bool {
	return day >= 1 && day <= len(Weekdays)
}

// WeekdayName returns the English name for day, or "" when out of range.
func WeekdayName(day int) string {
	if !ValidDayOfWeek(day) {
		return ""
	}
	return Weekdays[day-1]
}

// WeekdayNames returns a copy of Weekdays.
func WeekdayNames() []string {
	out := make([]string, len(Weekdays))
	copy(out, Weekdays)
	return out
}
