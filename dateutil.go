package inquire

import "time"

// Date builds a normalized calendar date: midnight UTC with no monotonic
// clock reading. All dates handled by the date-selection prompt, including
// the keys of a marked-date index, must be in this form so they compare and
// hash by calendar day alone.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// normalizeDate truncates an arbitrary time to its calendar date.
func normalizeDate(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// today returns the current calendar date.
func today() time.Time {
	return normalizeDate(time.Now())
}

// daysInMonth returns the number of days in the given month. The zeroth day
// of the following month is the last day of this one.
func daysInMonth(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// shiftMonths moves a date by qty calendar months, normalizing month
// overflow and underflow across year boundaries. The day of month is kept
// as-is; when the target month is too short for it (e.g. January 31 shifted
// into February) there is no valid result and ok is false.
func shiftMonths(date time.Time, qty int) (shifted time.Time, ok bool) {
	month := int(date.Month()) - 1 + qty // zero-based, possibly out of range
	yearOffset := month / 12
	month %= 12
	if month < 0 {
		month += 12
		yearOffset--
	}

	year := date.Year() + yearOffset
	target := time.Month(month + 1)
	if date.Day() > daysInMonth(target, year) {
		return time.Time{}, false
	}
	return Date(year, target, date.Day()), true
}

// weekdaysFrom returns the seven weekdays in display order, beginning at the
// configured week start.
func weekdaysFrom(start time.Weekday) []time.Weekday {
	days := make([]time.Weekday, 7)
	for i := range days {
		days[i] = time.Weekday((int(start) + i) % 7)
	}
	return days
}
