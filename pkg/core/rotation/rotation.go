// Package rotation implements the rotation/attendance calculator: pure
// functions over a roster entry and a query date. No I/O, no side effects,
// and no errors — invalid or missing input degrades to "not on board",
// "no active range" or zero days.
package rotation

import (
	"strings"
	"time"

	"github.com/calross/medic-roster/pkg/core/model"
)

const dateLayout = "2006-01-02"

var monthAbbrevs = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// ParseDate parses a date string in one of the two recognized formats:
// ISO "2006-01-02" or "2006-Jan-02" with a case-insensitive 3-letter month
// abbreviation. Any other input reports ok=false. Parsed dates are
// normalized to midnight UTC so only the calendar day participates in
// comparisons.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse(dateLayout, s); err == nil {
		return DayOf(t), true
	}

	// 2006-Jan-02, month abbreviation in any case
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	month, ok := monthAbbrevs[strings.ToLower(parts[1])]
	if !ok {
		return time.Time{}, false
	}
	normalized := parts[0] + "-" + month.String()[:3] + "-" + parts[2]
	t, err := time.Parse("2006-Jan-02", normalized)
	if err != nil {
		return time.Time{}, false
	}
	return DayOf(t), true
}

// ParseDateValue wraps ParseDate in the model's parsed-or-absent shape.
func ParseDateValue(s string) model.DateValue {
	t, ok := ParseDate(s)
	return model.DateValue{Time: t, Valid: ok}
}

// FormatDate renders a date in the ISO display format. FormatDate and
// ParseDate round-trip to the same calendar day.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// DayOf truncates a time to day granularity (midnight UTC).
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween returns whole calendar days from a to b. Both arguments are
// truncated to day granularity first, so DST and time-of-day never shift
// the count.
func daysBetween(a, b time.Time) int {
	return int(DayOf(b).Sub(DayOf(a)) / (24 * time.Hour))
}

// isWeekday reports whether t falls Monday through Friday.
func isWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// activeCycle finds the cycle covering the query date. When several cycles
// overlap the query date the one with the latest sign-on wins, so the result
// does not depend on cycle ordering.
func activeCycle(entry *model.RosterEntry, q time.Time) (model.Cycle, bool) {
	q = DayOf(q)

	var best model.Cycle
	found := false
	for _, c := range entry.Cycles {
		if !c.SignOn.Valid || !c.SignOff.Valid {
			continue
		}
		on, off := c.SignOn.Time, c.SignOff.Time
		if q.Before(on) || !q.Before(off) {
			continue
		}
		if !found || c.SignOn.Time.After(best.SignOn.Time) {
			best = c
			found = true
		}
	}
	return best, found
}

// IsOnBoard reports whether the person is present at the work location on
// the query date.
//
// Office-based roles attend weekdays only; their cycle data is ignored
// entirely. Everyone else is on board iff some cycle with valid dates
// satisfies signOn <= q < signOff (the sign-off day is the departure day).
func IsOnBoard(entry *model.RosterEntry, q time.Time) bool {
	if entry.Role.OfficeBased() {
		return isWeekday(DayOf(q))
	}
	_, ok := activeCycle(entry, q)
	return ok
}

// ActiveRange returns the sign-on/sign-off bounds of the cycle covering the
// query date. Office-based roles have no rotation window, so ok is always
// false for them.
func ActiveRange(entry *model.RosterEntry, q time.Time) (start, end time.Time, ok bool) {
	if entry.Role.OfficeBased() {
		return time.Time{}, time.Time{}, false
	}
	c, found := activeCycle(entry, q)
	if !found {
		return time.Time{}, time.Time{}, false
	}
	return c.SignOn.Time, c.SignOff.Time, true
}

// DaysOnBoard returns how many consecutive days the person has been on
// board as of the query date. The sign-on day counts as day 1. Zero when no
// cycle is active.
func DaysOnBoard(entry *model.RosterEntry, q time.Time) int {
	start, _, ok := ActiveRange(entry, q)
	if !ok {
		return 0
	}
	return daysBetween(start, q) + 1
}

// IsDepartureImminent reports whether the active cycle ends within 3 days
// (inclusive) of the query date. False when no cycle is active, including
// once the person has already departed.
func IsDepartureImminent(entry *model.RosterEntry, q time.Time) bool {
	_, end, ok := ActiveRange(entry, q)
	if !ok {
		return false
	}
	left := daysBetween(q, end)
	return left >= 0 && left <= 3
}
