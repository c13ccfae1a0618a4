package engine

import (
	"fmt"

	"github.com/zaccharietardy-dotcom/voyage-planner/internal/domain"
)

// ReorderDay reverses the movable part of one day. Fixed items (flights,
// check-in/out, anything constrained) stay exactly where they are; the
// mobile items are reversed and re-timed contiguously from the first mobile
// item's original start, with a 30-minute transition gap between them, then
// merged back and re-sorted.
func (e *Engine) ReorderDay(p domain.IntentParams, days []domain.Day, cs domain.ConstraintSet) domain.MutationResult {
	snapshot := domain.CloneDays(days)

	if len(p.DayNumbers) == 0 {
		return failure(days, snapshot, domain.FailConstraintViolation,
			"Name the day to reorder.", "")
	}
	dayNum := p.DayNumbers[0]

	work := domain.CloneDays(days)
	di, ok := findDayIndex(work, dayNum)
	if !ok {
		return failure(days, snapshot, domain.FailItemNotFound,
			fmt.Sprintf("The trip has no day %d.", dayNum), "")
	}
	day := &work[di]

	sortItemsInPlace(day.Items)
	var mobileIdx []int
	for ii, it := range day.Items {
		if isMobile(it, cs) {
			mobileIdx = append(mobileIdx, ii)
		}
	}
	if len(mobileIdx) < 2 {
		return failure(days, snapshot, domain.FailConstraintViolation,
			fmt.Sprintf("Day %d needs at least two movable items to reorder.", dayNum), "")
	}

	firstStart := day.Items[mobileIdx[0]].StartMinutes()
	if firstStart < 0 {
		return failure(days, snapshot, domain.FailConstraintViolation,
			fmt.Sprintf("Day %d has items without usable times.", dayNum), "")
	}

	original := make(map[string]domain.Item, len(mobileIdx))
	for _, ii := range mobileIdx {
		it := day.Items[ii]
		original[it.ID] = domain.CloneItem(it)
	}

	// Reverse the mobile subsequence and lay it out contiguously.
	reversed := make([]domain.Item, 0, len(mobileIdx))
	for i := len(mobileIdx) - 1; i >= 0; i-- {
		reversed = append(reversed, domain.CloneItem(day.Items[mobileIdx[i]]))
	}
	t := firstStart
	for k := range reversed {
		dur := reversed[k].DurationMinutes
		if dur <= 0 {
			dur = reversed[k].EndMinutes() - reversed[k].StartMinutes()
		}
		if dur <= 0 {
			dur = 60
		}
		retime(&reversed[k], t, t+dur)
		t = t + dur + transitionGapMinutes
	}

	if lastEnd := reversed[len(reversed)-1].EndMinutes(); lastEnd > dayEndMinutes {
		return failure(days, snapshot, domain.FailScheduleConflict,
			fmt.Sprintf("Reversing day %d would push %s past %02d:00.",
				dayNum, reversed[len(reversed)-1].Title, DayEndHour),
			fmt.Sprintf("Free up the afternoon on day %d first", dayNum))
	}

	var changes []domain.Change
	for k, ii := range mobileIdx {
		day.Items[ii] = reversed[k]
		before := original[reversed[k].ID]
		after := domain.CloneItem(reversed[k])
		changes = append(changes, domain.Change{
			Kind:        domain.ChangeMove,
			DayNumber:   dayNum,
			ItemID:      after.ID,
			Before:      &before,
			After:       &after,
			Description: fmt.Sprintf("Moved %s to %s.", after.Title, describeSpan(after)),
		})
	}
	sortItemsInPlace(day.Items)

	explanation := fmt.Sprintf("Reversed the order of %d items on day %d.", len(changes), dayNum)
	return success(work, snapshot, changes, explanation, nil)
}
