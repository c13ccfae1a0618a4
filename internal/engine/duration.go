package engine

import (
	"fmt"

	"github.com/zaccharietardy-dotcom/voyage-planner/internal/domain"
)

// AdjustDuration moves the matched item's end time by the requested delta.
// Shrinking stops at a 30-minute floor; extending past the 23:00 day end
// refuses outright with a smaller delta suggested instead of partially
// applying.
func (e *Engine) AdjustDuration(p domain.IntentParams, days []domain.Day, cs domain.ConstraintSet) domain.MutationResult {
	snapshot := domain.CloneDays(days)

	delta := signedDelta(p.DurationMinutes, p.Direction)
	if delta == 0 {
		return failure(days, snapshot, domain.FailConstraintViolation,
			"A duration change of zero minutes would not change anything.", "")
	}

	work := domain.CloneDays(days)
	di, ii, ok := findItem(work, p)
	if !ok {
		return failure(days, snapshot, domain.FailItemNotFound,
			fmt.Sprintf("Nothing in the itinerary matches %q.", targetLabel(p)), adjustSuggestion(days))
	}

	day := &work[di]
	it := &day.Items[ii]

	var warnings []string
	if c, constrained := cs.Lookup(it.ID); constrained {
		if c.Kind == domain.ConstraintImmutable || c.Kind == domain.ConstraintTimeLocked {
			return failure(days, snapshot, domain.FailImmutableItem, c.Reason, "")
		}
		warnings = append(warnings, c.Reason)
	}

	start, end := it.StartMinutes(), it.EndMinutes()
	if start < 0 || end < 0 {
		return failure(days, snapshot, domain.FailConstraintViolation,
			fmt.Sprintf("%s has no usable times to adjust.", it.Title), "")
	}

	newEnd := end + delta
	if newEnd < start+minItemMinutes {
		newEnd = start + minItemMinutes
	}
	if newEnd == end {
		return failure(days, snapshot, domain.FailConstraintViolation,
			fmt.Sprintf("%s is already at its minimum length of %d minutes.", it.Title, minItemMinutes), "")
	}
	if newEnd > dayEndMinutes {
		suggestion := ""
		if room := dayEndMinutes - end; room > 0 {
			suggestion = fmt.Sprintf("Extend %s by %d minutes instead", it.Title, room)
		}
		return failure(days, snapshot, domain.FailScheduleConflict,
			fmt.Sprintf("Extending %s by %d minutes would push it past %02d:00.", it.Title, abs(delta), DayEndHour), suggestion)
	}

	before := domain.CloneItem(*it)
	conflictsBefore := conflictsInvolving(day.Items, it.ID)
	retime(it, start, newEnd)
	if conflictsInvolving(day.Items, it.ID) > conflictsBefore {
		warnings = append(warnings, fmt.Sprintf("%s now overlaps the next item on day %d.", it.Title, day.DayNumber))
	}

	after := domain.CloneItem(*it)
	verb := "Extended"
	if delta < 0 {
		verb = "Shortened"
	}
	changes := []domain.Change{{
		Kind:        domain.ChangeUpdate,
		DayNumber:   day.DayNumber,
		ItemID:      it.ID,
		Before:      &before,
		After:       &after,
		Description: fmt.Sprintf("%s %s from %s to %s.", verb, before.Title, describeSpan(before), describeSpan(*it)),
	}}
	explanation := fmt.Sprintf("%s %s to %s.", verb, it.Title, describeSpan(*it))
	return success(work, snapshot, changes, explanation, warnings)
}

// signedDelta turns the envelope's magnitude and direction into a signed
// minute delta, trusting the sign as sent when no direction is given.
func signedDelta(minutes int, direction string) int {
	m := abs(minutes)
	switch direction {
	case "shrink":
		return -m
	case "extend":
		return m
	}
	return minutes
}

func conflictsInvolving(items []domain.Item, itemID string) int {
	n := 0
	for _, c := range DetectTimeConflicts(items) {
		if c.First.ID == itemID || c.Second.ID == itemID {
			n++
		}
	}
	return n
}

// adjustSuggestion proposes adjusting the busiest day's first activity
// when the requested target cannot be found.
func adjustSuggestion(days []domain.Day) string {
	it, dayNumber, ok := busiestDayActivity(days)
	if !ok {
		return ""
	}
	return fmt.Sprintf("Adjust %s on day %d instead", it.Title, dayNumber)
}
