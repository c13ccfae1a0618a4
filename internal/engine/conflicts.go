package engine

import (
	"fmt"

	"github.com/zaccharietardy-dotcom/voyage-planner/internal/domain"
)

// Conflict reports a time overlap between two chronologically adjacent
// items. Triple overlaps surface as two separate adjacent-pair reports
// rather than one merged record; this keeps the walk linear and is enough
// for the UI to highlight both pairs.
type Conflict struct {
	First          domain.Item `json:"item1"`
	Second         domain.Item `json:"item2"`
	OverlapMinutes int         `json:"overlapMinutes"`
}

// BoundaryIssue flags an item scheduled outside the allowed daily window.
type BoundaryIssue struct {
	Item    domain.Item `json:"item"`
	Message string      `json:"message"`
}

// DetectTimeConflicts sorts the items chronologically and reports every
// adjacent pair where the earlier item ends after the later one starts.
// Items with malformed clock values are ignored.
func DetectTimeConflicts(items []domain.Item) []Conflict {
	ordered := SortItems(items)

	var out []Conflict
	for i := 1; i < len(ordered); i++ {
		prev, cur := ordered[i-1], ordered[i]
		prevEnd, curStart := prev.EndMinutes(), cur.StartMinutes()
		if prevEnd < 0 || curStart < 0 {
			continue
		}
		if overlap := prevEnd - curStart; overlap > 0 {
			out = append(out, Conflict{First: prev, Second: cur, OverlapMinutes: overlap})
		}
	}
	return out
}

// CheckTimeBoundaries flags items starting before minHour:00 or ending
// after maxHour:00. Callers normally pass DayStartHour and DayEndHour.
func CheckTimeBoundaries(items []domain.Item, minHour, maxHour int) []BoundaryIssue {
	lo, hi := minHour*60, maxHour*60

	var out []BoundaryIssue
	for _, it := range items {
		start, end := it.StartMinutes(), it.EndMinutes()
		if start >= 0 && start < lo {
			out = append(out, BoundaryIssue{
				Item:    it,
				Message: fmt.Sprintf("%s starts at %s, before the %02d:00 day start.", it.Title, it.Start, minHour),
			})
		}
		if end > hi {
			out = append(out, BoundaryIssue{
				Item:    it,
				Message: fmt.Sprintf("%s ends at %s, after the %02d:00 day end.", it.Title, it.End, maxHour),
			})
		}
	}
	return out
}

// MaxTimeShift computes how many minutes the mobile subset of items could
// collectively shift in the given direction before the earliest mobile
// start (earlier) or the latest mobile end (later) crosses the day
// boundary. Returns 0 when no mobile items exist.
func MaxTimeShift(items []domain.Item, cs domain.ConstraintSet, direction string) int {
	earliest, latest := -1, -1
	for _, it := range items {
		if !isMobile(it, cs) {
			continue
		}
		start, end := it.StartMinutes(), it.EndMinutes()
		if start < 0 || end < 0 {
			continue
		}
		if earliest == -1 || start < earliest {
			earliest = start
		}
		if end > latest {
			latest = end
		}
	}
	if earliest == -1 {
		return 0
	}

	var room int
	if direction == "earlier" {
		room = earliest - dayStartMinutes
	} else {
		room = dayEndMinutes - latest
	}
	if room < 0 {
		return 0
	}
	return room
}
