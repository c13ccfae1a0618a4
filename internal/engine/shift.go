package engine

import (
	"fmt"

	"github.com/zaccharietardy-dotcom/voyage-planner/internal/domain"
)

// anchorClearanceMinutes is how early before the midday meal a shifted
// morning item must end when it would otherwise run into the meal.
const anchorClearanceMinutes = 15

// ShiftTimes moves every mobile item of the targeted days by the requested
// delta. Scope narrows the shift to the morning (items before the midday
// meal) or the afternoon (items from the meal onward); the default is the
// whole day. Items that would leave the 06:00–23:00 window are kept in
// place with a warning. In morning scope, an item shifted into the midday
// meal is shortened to end 15 minutes before it, and removed entirely when
// that would leave less than 30 minutes.
func (e *Engine) ShiftTimes(p domain.IntentParams, days []domain.Day, cs domain.ConstraintSet) domain.MutationResult {
	snapshot := domain.CloneDays(days)

	delta := signedShift(p.TimeShiftMinutes, p.Direction)
	if delta == 0 {
		return failure(days, snapshot, domain.FailConstraintViolation,
			"A shift of zero minutes would not change anything.", "")
	}

	scope := p.Scope
	if scope == "" {
		scope = "full_day"
	}

	work := domain.CloneDays(days)
	include := dayFilter(p.DayNumbers)

	var changes []domain.Change
	var warnings []string

	for di := range work {
		day := &work[di]
		if !include(*day) {
			continue
		}

		anchor := middayAnchor(day.Items)
		var removed []int

		for ii := range day.Items {
			it := &day.Items[ii]
			if !isMobile(*it, cs) {
				continue
			}
			start, end := it.StartMinutes(), it.EndMinutes()
			if start < 0 || end < 0 {
				continue
			}
			switch scope {
			case "morning_only":
				if start >= anchor {
					continue
				}
			case "afternoon_only":
				if start < anchor {
					continue
				}
			}

			newStart, newEnd := start+delta, end+delta

			trimmed := false
			if scope == "morning_only" && delta > 0 && newEnd > anchor {
				newEnd = anchor - anchorClearanceMinutes
				if newEnd-newStart < minItemMinutes {
					before := domain.CloneItem(*it)
					removed = append(removed, ii)
					changes = append(changes, domain.Change{
						Kind:        domain.ChangeRemove,
						DayNumber:   day.DayNumber,
						ItemID:      before.ID,
						Before:      &before,
						Description: fmt.Sprintf("Removed %s; after the shift it no longer fit before the midday meal.", before.Title),
					})
					warnings = append(warnings, fmt.Sprintf("%s was removed because less than %d minutes of it would remain before the midday meal.", before.Title, minItemMinutes))
					continue
				}
				trimmed = true
			}

			if newStart < dayStartMinutes || newEnd > dayEndMinutes {
				warnings = append(warnings, fmt.Sprintf("Kept %s at %s; shifting it would leave the %02d:00–%02d:00 day window.",
					it.Title, it.Start, DayStartHour, DayEndHour))
				continue
			}

			before := domain.CloneItem(*it)
			retime(it, newStart, newEnd)
			after := domain.CloneItem(*it)
			changes = append(changes, domain.Change{
				Kind:        domain.ChangeUpdate,
				DayNumber:   day.DayNumber,
				ItemID:      it.ID,
				Before:      &before,
				After:       &after,
				Description: fmt.Sprintf("Shifted %s from %s to %s.", before.Title, describeSpan(before), describeSpan(*it)),
			})
			if trimmed {
				warnings = append(warnings, fmt.Sprintf("%s was shortened to end %d minutes before the midday meal.", it.Title, anchorClearanceMinutes))
			}
		}

		for i := len(removed) - 1; i >= 0; i-- {
			idx := removed[i]
			day.Items = append(day.Items[:idx], day.Items[idx+1:]...)
		}
		sortItemsInPlace(day.Items)
	}

	if len(changes) == 0 {
		return failure(days, snapshot, domain.FailConstraintViolation,
			"No items could be shifted.", shiftSuggestion(days, cs, include, p.Direction))
	}

	dir := "later"
	if delta < 0 {
		dir = "earlier"
	}
	explanation := fmt.Sprintf("Shifted %d item(s) %d minutes %s.", len(changes), abs(delta), dir)
	return success(work, snapshot, changes, explanation, warnings)
}

// signedShift turns the envelope's magnitude and direction into a signed
// minute delta. When no direction is given the sign of the magnitude is
// trusted as sent.
func signedShift(minutes int, direction string) int {
	m := abs(minutes)
	switch direction {
	case "earlier":
		return -m
	case "later":
		return m
	}
	return minutes
}

// middayAnchor finds the minute the morning ends: the start of the day's
// midday meal (a restaurant starting between 12:00 and 15:00), or noon
// when the day has none.
func middayAnchor(items []domain.Item) int {
	for _, it := range SortItems(items) {
		if it.Type != domain.ItemRestaurant {
			continue
		}
		if s := it.StartMinutes(); s >= 12*60 && s <= 15*60 {
			return s
		}
	}
	return 12 * 60
}

// shiftSuggestion proposes the largest shift that would still fit inside
// the day window, phrased as a resubmittable request.
func shiftSuggestion(days []domain.Day, cs domain.ConstraintSet, include func(domain.Day) bool, direction string) string {
	best := 0
	for _, day := range days {
		if !include(day) {
			continue
		}
		if m := MaxTimeShift(day.Items, cs, direction); m > best {
			best = m
		}
	}
	if best == 0 {
		return ""
	}
	dir := direction
	if dir == "" {
		dir = "later"
	}
	return fmt.Sprintf("Shift the schedule %d minutes %s instead", best, dir)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
