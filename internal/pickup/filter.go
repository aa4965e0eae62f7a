package pickup

import "time"

// FilterCurrentWeek keeps submissions whose pickup date falls inside the
// Monday-Sunday week containing today, bounds inclusive. Input order is
// preserved. Filtering an already current-week list again under the same
// today is a no-op.
func FilterCurrentWeek(subs []Submission, today time.Time) []Submission {
	start := WeekStart(today)
	end := WeekEnd(today)

	out := make([]Submission, 0, len(subs))
	for _, s := range subs {
		d := s.PickupDate
		if !d.Before(start) && !d.After(end) {
			out = append(out, s)
		}
	}
	return out
}

// SelectAll is the identity filter used by the all-dates notification path.
func SelectAll(subs []Submission) []Submission {
	return subs
}

// EarliestUpcomingLeadDays returns the lead time of the earliest submission
// whose pickup date is today or later. With no upcoming submissions it
// returns DefaultLeadDays. The value serves as the batch-level urgency lead
// time when an item carries no override of its own.
func EarliestUpcomingLeadDays(subs []Submission, today time.Time) int {
	var earliest *time.Time
	for _, s := range subs {
		if DaysUntil(s.PickupDate, today) < 0 {
			continue
		}
		d := s.PickupDate
		if earliest == nil || d.Before(*earliest) {
			earliest = &d
		}
	}
	if earliest == nil {
		return DefaultLeadDays
	}
	return DaysUntil(*earliest, today)
}
