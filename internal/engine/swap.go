package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/zaccharietardy-dotcom/voyage-planner/internal/domain"
)

// durationBands map title keywords to typical visit lengths, first match
// wins. Titles matching nothing get the default activity length.
var durationBands = []struct {
	keyword string
	minutes int
}{
	{"museum", 120},
	{"park", 90},
	{"church", 45},
	{"market", 60},
	{"beach", 150},
	{"tower", 75},
	{"district", 105},
}

// SwapActivity replaces the matched item's content in place: new title, a
// re-estimated duration from title keywords, and refreshed coordinates from
// the geocoder. A failed or missing geocoder lookup degrades to a warning;
// the swap itself still goes through. Constraint policy matches removal.
func (e *Engine) SwapActivity(ctx context.Context, p domain.IntentParams, days []domain.Day, cs domain.ConstraintSet, trip domain.TripContext) domain.MutationResult {
	snapshot := domain.CloneDays(days)

	if p.NewValue == "" {
		return failure(days, snapshot, domain.FailConstraintViolation,
			"No replacement activity was given.", "")
	}
	if p.TargetItemID == "" && p.TargetActivity == "" {
		return failure(days, snapshot, domain.FailItemNotFound,
			"No item was named to swap out.", swapSuggestion(days, p.NewValue))
	}

	work := domain.CloneDays(days)
	di, ii, ok := findItem(work, p)
	if !ok {
		return failure(days, snapshot, domain.FailItemNotFound,
			fmt.Sprintf("Nothing in the itinerary matches %q.", targetLabel(p)), swapSuggestion(days, p.NewValue))
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

	before := domain.CloneItem(*it)
	it.Title = p.NewValue
	it.Description = fmt.Sprintf("Swapped in for %s.", before.Title)
	it.BookingURL = ""
	it.DataReliability = domain.ReliabilityEstimated

	if start := it.StartMinutes(); start >= 0 {
		newEnd := start + estimateVisitMinutes(p.NewValue)
		if newEnd > dayEndMinutes {
			newEnd = dayEndMinutes
		}
		if newEnd-start < minItemMinutes {
			// Too close to the end of the day to re-estimate; keep the
			// previous length.
			newEnd = before.EndMinutes()
		}
		retime(it, start, newEnd)
	}

	if e.geo == nil {
		e.log.Debug("no geocoder configured; keeping previous coordinates", "title", p.NewValue)
	} else {
		query := p.NewValue
		if trip.Destination != "" {
			query = p.NewValue + ", " + trip.Destination
		}
		coords, err := e.geo.Geocode(ctx, query)
		if err != nil {
			e.log.Warn("geocode failed during swap", "query", query, "error", err)
			warnings = append(warnings, fmt.Sprintf("Could not look up coordinates for %s; the map pin may be stale.", p.NewValue))
		} else {
			lat, lng := coords.Latitude, coords.Longitude
			it.Latitude, it.Longitude = &lat, &lng
		}
	}

	after := domain.CloneItem(*it)
	changes := []domain.Change{{
		Kind:        domain.ChangeUpdate,
		DayNumber:   day.DayNumber,
		ItemID:      it.ID,
		Before:      &before,
		After:       &after,
		Description: fmt.Sprintf("Swapped %s for %s on day %d.", before.Title, it.Title, day.DayNumber),
	}}
	explanation := fmt.Sprintf("Swapped %s for %s.", before.Title, it.Title)
	return success(work, snapshot, changes, explanation, warnings)
}

// estimateVisitMinutes guesses how long a venue visit takes from its title.
func estimateVisitMinutes(title string) int {
	t := domain.NormalizeTitle(title)
	for _, band := range durationBands {
		if strings.Contains(t, band.keyword) {
			return band.minutes
		}
	}
	return defaultActivityMinutes
}

// swapSuggestion proposes swapping the busiest day's first activity when
// the requested target cannot be found.
func swapSuggestion(days []domain.Day, newValue string) string {
	it, dayNumber, ok := busiestDayActivity(days)
	if !ok {
		return ""
	}
	return fmt.Sprintf("Swap %s on day %d for %s instead", it.Title, dayNumber, newValue)
}
