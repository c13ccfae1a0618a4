package engine

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/zaccharietardy-dotcom/voyage-planner/internal/domain"
)

// mealWindows bound when each meal plausibly starts.
var mealWindows = map[string][2]int{
	"breakfast": {7 * 60, 10 * 60},
	"lunch":     {12 * 60, 15 * 60},
	"dinner":    {19 * 60, 22 * 60},
}

// ChangeMeal replaces a restaurant's title, locating it by title match
// first and by meal-window membership second. The replacement keeps the
// original time slot; only the venue changes.
func (e *Engine) ChangeMeal(p domain.IntentParams, days []domain.Day, cs domain.ConstraintSet) domain.MutationResult {
	snapshot := domain.CloneDays(days)

	newTitle := replacementMealTitle(p)
	if newTitle == "" {
		return failure(days, snapshot, domain.FailConstraintViolation,
			"No replacement restaurant was given.", "")
	}

	work := domain.CloneDays(days)
	di, ii, ok := findRestaurant(work, p)
	if !ok {
		msg := "No matching restaurant was found."
		suggestion := ""
		if it, dayNumber, found := firstRestaurant(days); found {
			suggestion = fmt.Sprintf("Change %s on day %d instead", it.Title, dayNumber)
		} else {
			msg = "The itinerary has no restaurants yet."
		}
		return failure(days, snapshot, domain.FailItemNotFound, msg, suggestion)
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
	it.Title = newTitle
	if p.CuisineType != "" {
		it.Description = fmt.Sprintf("%s cuisine.", capitalize(p.CuisineType))
	}
	it.BookingURL = ""
	it.DataReliability = domain.ReliabilityGenerated

	after := domain.CloneItem(*it)
	meal := p.MealType
	if meal == "" {
		meal = "meal"
	}
	changes := []domain.Change{{
		Kind:        domain.ChangeUpdate,
		DayNumber:   day.DayNumber,
		ItemID:      it.ID,
		Before:      &before,
		After:       &after,
		Description: fmt.Sprintf("Changed %s for %s to %s on day %d.", meal, before.Title, it.Title, day.DayNumber),
	}}
	explanation := fmt.Sprintf("Changed %s to %s on day %d.", before.Title, it.Title, day.DayNumber)
	return success(work, snapshot, changes, explanation, warnings)
}

// replacementMealTitle resolves the new venue name: an explicit value wins,
// otherwise a generic title is built from the cuisine.
func replacementMealTitle(p domain.IntentParams) string {
	if v := strings.TrimSpace(p.NewValue); v != "" {
		return v
	}
	if c := strings.TrimSpace(p.CuisineType); c != "" {
		return capitalize(c) + " restaurant"
	}
	return ""
}

// findRestaurant locates the restaurant to change: exact id, fuzzy title,
// then first restaurant starting inside the requested meal window.
func findRestaurant(days []domain.Day, p domain.IntentParams) (int, int, bool) {
	include := dayFilter(p.DayNumbers)

	if p.TargetItemID != "" || p.TargetActivity != "" {
		for di := range days {
			if !include(days[di]) {
				continue
			}
			for ii, it := range days[di].Items {
				if it.Type != domain.ItemRestaurant {
					continue
				}
				if p.TargetItemID != "" && it.ID == p.TargetItemID {
					return di, ii, true
				}
				if p.TargetActivity != "" && domain.TitleMatches(it.Title, p.TargetActivity) {
					return di, ii, true
				}
			}
		}
	}

	w, ok := mealWindows[p.MealType]
	if !ok {
		return 0, 0, false
	}
	for di := range days {
		if !include(days[di]) {
			continue
		}
		for ii, it := range days[di].Items {
			if it.Type != domain.ItemRestaurant {
				continue
			}
			if s := it.StartMinutes(); s >= w[0] && s <= w[1] {
				return di, ii, true
			}
		}
	}
	return 0, 0, false
}

// firstRestaurant returns the first restaurant in day order, if any.
func firstRestaurant(days []domain.Day) (domain.Item, int, bool) {
	for _, d := range days {
		for _, it := range d.Items {
			if it.Type == domain.ItemRestaurant {
				return it, d.DayNumber, true
			}
		}
	}
	return domain.Item{}, 0, false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
