package engine

import (
	"fmt"

	"github.com/zaccharietardy-dotcom/voyage-planner/internal/domain"
)

const afternoonStartMinutes = 14 * 60

// ExtendFreeTime frees up the targeted days (all days when none are named)
// by removing each day's last afternoon activity. Only mobile activity
// items starting at or after 14:00 qualify, and a day keeps its schedule
// when it has at most one movable activity to begin with.
func (e *Engine) ExtendFreeTime(p domain.IntentParams, days []domain.Day, cs domain.ConstraintSet) domain.MutationResult {
	snapshot := domain.CloneDays(days)
	work := domain.CloneDays(days)
	include := dayFilter(p.DayNumbers)
	explicit := len(p.DayNumbers) > 0

	var changes []domain.Change
	var warnings []string

	for di := range work {
		day := &work[di]
		if !include(*day) {
			continue
		}

		rebase := hasLateEveningStart(day.Items)
		mobileCount := 0
		lastIdx, lastKey := -1, -1
		for ii, it := range day.Items {
			if it.Type != domain.ItemActivity || !isMobile(it, cs) {
				continue
			}
			mobileCount++
			// After-midnight items count as late evening, not early morning.
			if key := chronoKey(it, rebase); key >= afternoonStartMinutes && key > lastKey {
				lastIdx, lastKey = ii, key
			}
		}
		if mobileCount <= 1 {
			if explicit {
				warnings = append(warnings, fmt.Sprintf("Day %d was left alone; it has no spare activities to drop.", day.DayNumber))
			}
			continue
		}
		if lastIdx == -1 {
			if explicit {
				warnings = append(warnings, fmt.Sprintf("Day %d has no afternoon activities to drop.", day.DayNumber))
			}
			continue
		}

		removed := domain.CloneItem(day.Items[lastIdx])
		day.Items = append(day.Items[:lastIdx], day.Items[lastIdx+1:]...)
		changes = append(changes, domain.Change{
			Kind:        domain.ChangeRemove,
			DayNumber:   day.DayNumber,
			ItemID:      removed.ID,
			Before:      &removed,
			Description: fmt.Sprintf("Removed %s (%s) from day %d to free up the afternoon.", removed.Title, describeSpan(removed), day.DayNumber),
		})
	}

	if len(changes) == 0 {
		return failure(days, snapshot, domain.FailConstraintViolation,
			"No afternoon activities could be removed to free up time.", "")
	}

	explanation := fmt.Sprintf("Freed up time by removing %d afternoon activit%s.",
		len(changes), pluralY(len(changes)))
	return success(work, snapshot, changes, explanation, warnings)
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
