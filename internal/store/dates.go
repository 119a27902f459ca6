package store

import (
	"regexp"
	"time"
)

// dateLayout is the canonical calendar-date format used everywhere in
// the core.  Because it is fixed-width and zero-padded, lexicographic
// string comparison on two dates is chronological comparison; the
// ledger relies on that for every range check.
const dateLayout = "2006-01-02"

// datePattern accepts exactly four digits, a dash, two digits, a dash
// and two digits.
var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidDate reports whether s is a real calendar date in YYYY-MM-DD
// form.  The regexp rejects malformed strings cheaply; time.Parse then
// rejects shapes like 2024-13-40 that match the pattern but are not
// dates.
func ValidDate(s string) bool {
	if !datePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// validRange checks both endpoints of an inclusive range and that the
// range does not end before it starts.
func validRange(start, end string) bool {
	return ValidDate(start) && ValidDate(end) && start <= end
}

// rangesOverlap reports whether the inclusive ranges [s1,e1] and
// [s2,e2] share at least one calendar day: s1 <= e2 AND s2 <= e1.
func rangesOverlap(s1, e1, s2, e2 string) bool {
	return s1 <= e2 && s2 <= e1
}

// Days returns the number of days in the inclusive range [start,end],
// counting both endpoints: a reservation occupies the room on its end
// date too, and pays the daily rate for every occupied day.  It returns
// 0 when either date fails to parse; callers validate ranges before
// pricing them.
func Days(start, end string) int {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return 0
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}
