package pickup

import (
	"math"
	"time"
)

// DefaultLeadDays is the batch lead time used when no upcoming pickup
// exists to derive one from.
const DefaultLeadDays = 3

// WeekStart returns Monday 00:00:00 of the week containing t. A Sunday
// belongs to the week that started six days earlier, not to the Monday
// that follows it.
func WeekStart(t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())

	offset := int(day.Weekday()) - int(time.Monday)
	if day.Weekday() == time.Sunday {
		offset = 6
	}
	return day.AddDate(0, 0, -offset)
}

// WeekEnd returns the last instant of the week containing t: Sunday at
// 23:59:59.999999999. The bound is inclusive.
func WeekEnd(t time.Time) time.Time {
	return WeekStart(t).AddDate(0, 0, 7).Add(-time.Nanosecond)
}

// DaysUntil returns the whole-day difference between the start-of-day of
// target and the start-of-day of today, rounded up. Equal calendar days
// yield 0, tomorrow yields 1, past dates yield negative values. Time-of-day
// components on either argument do not affect the result. Both dates are
// normalized to UTC midnights so DST transitions cannot skew the count.
func DaysUntil(target, today time.Time) int {
	t := utcMidnight(target)
	n := utcMidnight(today)
	return int(math.Ceil(t.Sub(n).Hours() / 24))
}

// DaysUntilNextMonday returns the number of days forward to the next
// Monday. On a Monday it returns 7 (the next occurrence, not today);
// Sunday yields 1, Tuesday 6, and so on.
func DaysUntilNextMonday(today time.Time) int {
	switch day := today.Weekday(); day {
	case time.Monday:
		return 7
	case time.Sunday:
		return 1
	default:
		return 8 - int(day)
	}
}

// pickupTimes is the fixed per-weekday pickup time table.
var pickupTimes = map[time.Weekday]string{
	time.Monday:    "9:00 AM",
	time.Tuesday:   "10:00 AM",
	time.Wednesday: "11:00 AM",
	time.Thursday:  "2:00 PM",
	time.Friday:    "3:00 PM",
	time.Saturday:  "1:00 PM",
	time.Sunday:    "12:00 PM",
}

// TimeLabelForDay returns the display pickup time for a weekday, or "TBD"
// for values outside the weekday range.
func TimeLabelForDay(day time.Weekday) string {
	if label, ok := pickupTimes[day]; ok {
		return label
	}
	return "TBD"
}

func utcMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
