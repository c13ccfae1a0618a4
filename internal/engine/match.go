package engine

import (
	"fmt"

	"github.com/zaccharietardy-dotcom/voyage-planner/internal/domain"
)

// dayFilter returns a predicate selecting the requested day numbers; an
// empty request selects every day.
func dayFilter(dayNumbers []int) func(domain.Day) bool {
	if len(dayNumbers) == 0 {
		return func(domain.Day) bool { return true }
	}
	wanted := make(map[int]bool, len(dayNumbers))
	for _, n := range dayNumbers {
		wanted[n] = true
	}
	return func(d domain.Day) bool { return wanted[d.DayNumber] }
}

// findItem resolves the mutation target inside the working days: by exact
// item id when the envelope carries one, otherwise by fuzzy title match,
// searching the requested days in day order. Duplicate titles resolve to
// the first match.
func findItem(days []domain.Day, p domain.IntentParams) (dayIdx, itemIdx int, ok bool) {
	include := dayFilter(p.DayNumbers)
	for di := range days {
		if !include(days[di]) {
			continue
		}
		for ii, it := range days[di].Items {
			if p.TargetItemID != "" {
				if it.ID == p.TargetItemID {
					return di, ii, true
				}
				continue
			}
			if p.TargetActivity != "" && domain.TitleMatches(it.Title, p.TargetActivity) {
				return di, ii, true
			}
		}
	}
	return 0, 0, false
}

// findDayIndex returns the index of the day with the given number.
func findDayIndex(days []domain.Day, dayNumber int) (int, bool) {
	for i := range days {
		if days[i].DayNumber == dayNumber {
			return i, true
		}
	}
	return 0, false
}

// busiestDayActivity locates the first activity of the day with the most
// activity items, used to phrase alternative suggestions when a target
// cannot be found. Returns false when the trip holds no activities at all.
func busiestDayActivity(days []domain.Day) (domain.Item, int, bool) {
	bestIdx, bestCount := -1, 0
	for i, d := range days {
		n := countByType(d.Items, domain.ItemActivity)
		if n > bestCount {
			bestIdx, bestCount = i, n
		}
	}
	if bestIdx == -1 {
		return domain.Item{}, 0, false
	}
	for _, it := range days[bestIdx].Items {
		if it.Type == domain.ItemActivity {
			return it, days[bestIdx].DayNumber, true
		}
	}
	return domain.Item{}, 0, false
}

func countByType(items []domain.Item, t domain.ItemType) int {
	n := 0
	for _, it := range items {
		if it.Type == t {
			n++
		}
	}
	return n
}

// describeSpan renders an item's time range for change descriptions.
func describeSpan(it domain.Item) string {
	return fmt.Sprintf("%s–%s", it.Start, it.End)
}

// syncDuration recomputes DurationMinutes from the item's clock values.
func syncDuration(it *domain.Item) {
	start, end := it.StartMinutes(), it.EndMinutes()
	if start >= 0 && end >= start {
		it.DurationMinutes = end - start
	}
}

// retime moves an item to a new start and end, keeping the duration field
// in sync.
func retime(it *domain.Item, startMin, endMin int) {
	it.Start = domain.FormatClock(startMin)
	it.End = domain.FormatClock(endMin)
	it.DurationMinutes = endMin - startMin
}
