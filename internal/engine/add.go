package engine

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/zaccharietardy-dotcom/voyage-planner/internal/domain"
)

// Slot scanning bounds for newly added activities.
const (
	slotScanStartMinutes = 10 * 60
	slotScanEndMinutes   = 20 * 60
	slotScanStepMinutes  = 30
)

// protectedMealWindows are kept clear when placing a new activity so the
// addition never squeezes out lunch or dinner.
var protectedMealWindows = [][2]int{
	{12 * 60, 13*60 + 30},
	{19 * 60, 20*60 + 30},
}

// AddActivity inserts a new generated activity into the targeted day, or
// into the day with the fewest activities when none is named. The slot scan
// walks 30-minute-aligned starts between 10:00 and 20:00 looking for a
// 90-minute window that clears every existing item by a 20-minute transit
// buffer and stays out of the meal windows. When the pool knows the venue,
// the item is enriched with its description, cost and coordinates.
func (e *Engine) AddActivity(p domain.IntentParams, days []domain.Day, cs domain.ConstraintSet, trip domain.TripContext) domain.MutationResult {
	snapshot := domain.CloneDays(days)

	title := strings.TrimSpace(p.NewValue)
	if title == "" {
		return failure(days, snapshot, domain.FailConstraintViolation,
			"No activity was given to add.", "")
	}
	if len(days) == 0 {
		return failure(days, snapshot, domain.FailNoSlotAvailable,
			"The trip has no days to add to yet.", "")
	}

	work := domain.CloneDays(days)
	var day *domain.Day
	if len(p.DayNumbers) > 0 {
		di, ok := findDayIndex(work, p.DayNumbers[0])
		if !ok {
			return failure(days, snapshot, domain.FailItemNotFound,
				fmt.Sprintf("The trip has no day %d.", p.DayNumbers[0]), "")
		}
		day = &work[di]
	} else {
		day = quietestDay(work)
	}

	startMin, ok := findOpenSlot(day.Items)
	if !ok {
		suggestion := ""
		for i := range work {
			if work[i].DayNumber == day.DayNumber {
				continue
			}
			if _, free := findOpenSlot(work[i].Items); free {
				suggestion = fmt.Sprintf("Add %s to day %d instead", title, work[i].DayNumber)
				break
			}
		}
		return failure(days, snapshot, domain.FailNoSlotAvailable,
			fmt.Sprintf("Day %d has no free %d-minute window left.", day.DayNumber, defaultActivityMinutes), suggestion)
	}

	it := domain.Item{
		ID:              uuid.NewString(),
		Type:            domain.ItemActivity,
		Title:           title,
		DataReliability: domain.ReliabilityGenerated,
	}
	retime(&it, startMin, startMin+defaultActivityMinutes)

	if e.pool != nil {
		for _, a := range e.pool.PoolFor(trip.Destination) {
			if !domain.TitleMatches(a.Name, title) {
				continue
			}
			it.Title = a.Name
			it.Description = a.Description
			it.EstimatedCost = a.EstimatedCost
			if a.Latitude != nil && a.Longitude != nil {
				lat, lng := *a.Latitude, *a.Longitude
				it.Latitude, it.Longitude = &lat, &lng
			}
			break
		}
	}

	day.Items = append(day.Items, it)
	sortItemsInPlace(day.Items)

	added := domain.CloneItem(it)
	changes := []domain.Change{{
		Kind:        domain.ChangeAdd,
		DayNumber:   day.DayNumber,
		ItemID:      it.ID,
		NewItem:     &added,
		Description: fmt.Sprintf("Added %s (%s) to day %d.", it.Title, describeSpan(it), day.DayNumber),
	}}
	explanation := fmt.Sprintf("Added %s to day %d at %s.", it.Title, day.DayNumber, it.Start)
	return success(work, snapshot, changes, explanation, nil)
}

// findOpenSlot returns the first start minute with room for a new activity.
func findOpenSlot(items []domain.Item) (int, bool) {
	for start := slotScanStartMinutes; start <= slotScanEndMinutes; start += slotScanStepMinutes {
		if slotFree(items, start, start+defaultActivityMinutes) {
			return start, true
		}
	}
	return 0, false
}

func slotFree(items []domain.Item, start, end int) bool {
	for _, w := range protectedMealWindows {
		if start < w[1] && end > w[0] {
			return false
		}
	}
	for _, it := range items {
		s, e := it.StartMinutes(), it.EndMinutes()
		if s < 0 || e < 0 {
			continue
		}
		if start-transitBufferMinutes < e && end+transitBufferMinutes > s {
			return false
		}
	}
	return true
}

// quietestDay picks the day with the fewest activity items, earliest day
// winning ties.
func quietestDay(days []domain.Day) *domain.Day {
	best := 0
	for i := 1; i < len(days); i++ {
		if countByType(days[i].Items, domain.ItemActivity) < countByType(days[best].Items, domain.ItemActivity) {
			best = i
		}
	}
	return &days[best]
}
