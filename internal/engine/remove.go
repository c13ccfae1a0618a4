package engine

import (
	"fmt"

	"github.com/zaccharietardy-dotcom/voyage-planner/internal/domain"
)

// RemoveActivity deletes the first item matching the envelope's target.
// Immutable and time-locked matches refuse with the constraint's reason; a
// booking-required match is removed with a warning about the booking.
func (e *Engine) RemoveActivity(p domain.IntentParams, days []domain.Day, cs domain.ConstraintSet) domain.MutationResult {
	snapshot := domain.CloneDays(days)

	if p.TargetItemID == "" && p.TargetActivity == "" {
		return failure(days, snapshot, domain.FailItemNotFound,
			"No item was named for removal.", removalSuggestion(days))
	}

	work := domain.CloneDays(days)
	di, ii, ok := findItem(work, p)
	if !ok {
		return failure(days, snapshot, domain.FailItemNotFound,
			fmt.Sprintf("Nothing in the itinerary matches %q.", targetLabel(p)), removalSuggestion(days))
	}

	day := &work[di]
	target := domain.CloneItem(day.Items[ii])

	var warnings []string
	if c, constrained := cs.Lookup(target.ID); constrained {
		if c.Kind == domain.ConstraintImmutable || c.Kind == domain.ConstraintTimeLocked {
			return failure(days, snapshot, domain.FailImmutableItem, c.Reason, "")
		}
		warnings = append(warnings, c.Reason)
	}

	day.Items = append(day.Items[:ii], day.Items[ii+1:]...)

	changes := []domain.Change{{
		Kind:        domain.ChangeRemove,
		DayNumber:   day.DayNumber,
		ItemID:      target.ID,
		Before:      &target,
		Description: fmt.Sprintf("Removed %s (%s) from day %d.", target.Title, describeSpan(target), day.DayNumber),
	}}
	explanation := fmt.Sprintf("Removed %s from day %d.", target.Title, day.DayNumber)
	return success(work, snapshot, changes, explanation, warnings)
}

// targetLabel names the requested target for messages, preferring the
// human-readable title over the raw id.
func targetLabel(p domain.IntentParams) string {
	if p.TargetActivity != "" {
		return p.TargetActivity
	}
	return p.TargetItemID
}

// removalSuggestion proposes removing the busiest day's first activity
// when the requested target cannot be found.
func removalSuggestion(days []domain.Day) string {
	it, dayNumber, ok := busiestDayActivity(days)
	if !ok {
		return ""
	}
	return fmt.Sprintf("Remove %s from day %d instead", it.Title, dayNumber)
}
