package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the exclusive upper bound for clock arithmetic; "24:00"
// marks the end of a day.
const MinutesPerDay = 24 * 60

// ParseClock converts an "HH:MM" 24-hour clock string to minutes after
// midnight. "24:00" is accepted as an exclusive day end; anything else past
// it is rejected.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("%w: clock value %q must be HH:MM", ErrValidation, s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("%w: clock value %q must be HH:MM", ErrValidation, s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("%w: clock value %q must be HH:MM", ErrValidation, s)
	}
	if h < 0 || m < 0 || m > 59 || h*60+m > MinutesPerDay {
		return 0, fmt.Errorf("%w: clock value %q out of range", ErrValidation, s)
	}
	return h*60 + m, nil
}

// MinutesOf is the lenient form of ParseClock used on sort and comparison
// paths: malformed values return -1 so a single bad item cannot abort a
// whole re-sort.
func MinutesOf(s string) int {
	min, err := ParseClock(s)
	if err != nil {
		return -1
	}
	return min
}

// FormatClock renders minutes after midnight as "HH:MM". Out-of-range
// values are clamped into [00:00, 24:00] rather than wrapped; post-midnight
// ordering is handled by the sort rule, not by arithmetic wraparound.
func FormatClock(min int) string {
	if min < 0 {
		min = 0
	}
	if min > MinutesPerDay {
		min = MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// SpanMinutes returns the minutes between two clock values, wrapping past
// midnight when end reads earlier than start. Malformed values yield 0.
func SpanMinutes(start, end string) int {
	s, e := MinutesOf(start), MinutesOf(end)
	if s < 0 || e < 0 {
		return 0
	}
	d := e - s
	if d < 0 {
		d += MinutesPerDay
	}
	return d
}

// NormalizeTitle prepares a title for fuzzy matching: lower-cased, trimmed,
// inner whitespace collapsed. Target resolution is substring containment on
// the normalized forms; duplicate titles resolve to the first match in
// iteration order.
func NormalizeTitle(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// TitleMatches reports whether an item title matches a requested target,
// in either containment direction.
func TitleMatches(title, target string) bool {
	nt, nq := NormalizeTitle(title), NormalizeTitle(target)
	if nt == "" || nq == "" {
		return false
	}
	return strings.Contains(nt, nq) || strings.Contains(nq, nt)
}
