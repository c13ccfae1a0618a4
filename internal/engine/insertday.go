package engine

import (
	"fmt"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/zaccharietardy-dotcom/voyage-planner/internal/domain"
)

// InsertDay builds a skeleton day (breakfast, free morning, lunch, an
// afternoon pick from the attraction pool, dinner) and inserts it after the
// given day number. All subsequent days are renumbered by +1 and every date
// is recomputed from the trip start so numbers and dates stay contiguous.
// Asking for a slot beyond the last day appends instead of failing; asking
// to insert before day 1 refuses, since the arrival day opens the trip.
func (e *Engine) InsertDay(p domain.IntentParams, days []domain.Day, cs domain.ConstraintSet, trip domain.TripContext) domain.MutationResult {
	snapshot := domain.CloneDays(days)

	if len(days) < 2 {
		return failure(days, snapshot, domain.FailConstraintViolation,
			"The trip needs at least two days before another can be inserted.", "")
	}
	after := p.InsertAfterDay
	if after < 1 {
		return failure(days, snapshot, domain.FailConstraintViolation,
			"A new day cannot go before the arrival day.",
			fmt.Sprintf("Add the new day after day %d", len(days)))
	}
	if after > len(days) {
		after = len(days)
	}

	work := domain.CloneDays(days)
	base := trip.StartDate.Time
	if base.IsZero() && !work[0].Date.Time.IsZero() {
		base = work[0].Date.Time
	}

	newDay := e.buildInsertedDay(trip, work)

	work = append(work, domain.Day{})
	copy(work[after+1:], work[after:])
	work[after] = newDay

	for i := range work {
		work[i].DayNumber = i + 1
		if !base.IsZero() {
			work[i].Date = openapi_types.Date{Time: base.AddDate(0, 0, i)}
		}
	}

	changes := make([]domain.Change, 0, len(newDay.Items))
	for _, it := range work[after].Items {
		added := domain.CloneItem(it)
		changes = append(changes, domain.Change{
			Kind:        domain.ChangeAdd,
			DayNumber:   work[after].DayNumber,
			ItemID:      it.ID,
			NewItem:     &added,
			Description: fmt.Sprintf("Planned %s (%s) for the new day %d.", it.Title, describeSpan(it), work[after].DayNumber),
		})
	}

	explanation := fmt.Sprintf("Inserted a new day after day %d; the following days moved back by one.", after)
	return success(work, snapshot, changes, explanation, nil)
}

// buildInsertedDay assembles the skeleton schedule for an extra day,
// enriched from the attraction pool when it knows the destination.
func (e *Engine) buildInsertedDay(trip domain.TripContext, existing []domain.Day) domain.Day {
	dest := trip.Destination
	near := dest
	if trip.Accommodation != nil && trip.Accommodation.Name != "" {
		near = trip.Accommodation.Name
	}
	in := ""
	if dest != "" {
		in = " in " + dest
	}

	day := domain.Day{Theme: "Extra day" + in}
	day.Items = append(day.Items,
		generatedItem(domain.ItemRestaurant, "Breakfast near "+near, 8*60, 9*60),
		generatedItem(domain.ItemFreeTime, "Free morning to explore", 9*60+30, 12*60),
		generatedItem(domain.ItemRestaurant, "Lunch"+in, 12*60+30, 13*60+30),
		e.afternoonPick(dest, existing),
		generatedItem(domain.ItemRestaurant, "Dinner"+in, 19*60+30, 21*60),
	)
	return day
}

// afternoonPick returns the first pool attraction not already on the trip,
// falling back to unstructured free time.
func (e *Engine) afternoonPick(destination string, existing []domain.Day) domain.Item {
	const afternoonStart = 14*60 + 30

	if e.pool != nil {
		for _, a := range e.pool.PoolFor(destination) {
			if attractionOnTrip(existing, a.Name) {
				continue
			}
			dur := a.DurationMinutes
			if dur <= 0 {
				dur = defaultActivityMinutes
			}
			end := afternoonStart + dur
			if end > 18*60 {
				end = 18 * 60
			}
			it := generatedItem(domain.ItemActivity, a.Name, afternoonStart, end)
			it.Description = a.Description
			it.EstimatedCost = a.EstimatedCost
			if a.Latitude != nil && a.Longitude != nil {
				lat, lng := *a.Latitude, *a.Longitude
				it.Latitude, it.Longitude = &lat, &lng
			}
			return it
		}
	}
	return generatedItem(domain.ItemFreeTime, "Free afternoon", afternoonStart, 17*60)
}

func attractionOnTrip(days []domain.Day, name string) bool {
	for _, d := range days {
		for _, it := range d.Items {
			if domain.TitleMatches(it.Title, name) {
				return true
			}
		}
	}
	return false
}

// generatedItem builds a planner-generated item with a fresh id.
func generatedItem(t domain.ItemType, title string, startMin, endMin int) domain.Item {
	it := domain.Item{
		ID:              uuid.NewString(),
		Type:            t,
		Title:           title,
		DataReliability: domain.ReliabilityGenerated,
	}
	retime(&it, startMin, endMin)
	return it
}
