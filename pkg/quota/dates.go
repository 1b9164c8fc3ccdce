package quota

import (
	"fmt"
	"iter"
	"time"
)

// DayLayout is the wire format for calendar days throughout the system.
const DayLayout = "2006-01-02"

// ParseDay parses an ISO YYYY-MM-DD day string.
func ParseDay(day string) (time.Time, error) {
	t, err := time.Parse(DayLayout, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q: must be YYYY-MM-DD", day)
	}
	return t, nil
}

// ValidateRange checks that start and end are well-formed days with
// start <= end.
func ValidateRange(start, end string) error {
	s, err := ParseDay(start)
	if err != nil {
		return err
	}
	e, err := ParseDay(end)
	if err != nil {
		return err
	}
	if e.Before(s) {
		return fmt.Errorf("invalid range: end %s is before start %s", end, start)
	}
	return nil
}

// Days yields every calendar day from start to end inclusive, ascending,
// as ISO YYYY-MM-DD strings. Iteration uses calendar arithmetic, so month
// lengths, year rollovers and leap days are handled correctly. The sequence
// is lazy and restartable; malformed bounds yield an empty sequence
// (validate with ValidateRange first when that matters).
func Days(start, end string) iter.Seq[string] {
	return func(yield func(string) bool) {
		s, err := ParseDay(start)
		if err != nil {
			return
		}
		e, err := ParseDay(end)
		if err != nil {
			return
		}
		for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
			if !yield(d.Format(DayLayout)) {
				return
			}
		}
	}
}

// RangeLength returns the number of days in the inclusive [start, end]
// range, or 0 for a malformed or inverted range.
func RangeLength(start, end string) int {
	s, err := ParseDay(start)
	if err != nil {
		return 0
	}
	e, err := ParseDay(end)
	if err != nil {
		return 0
	}
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}
