package engine

import (
	"sort"

	"github.com/zaccharietardy-dotcom/voyage-planner/internal/domain"
)

const lateEveningMinutes = 22 * 60

// SortItems returns the items in chronological order, applying the
// after-midnight rule: items starting between 00:00 and 05:59 sort after
// the late-evening items only when the day already holds an item starting
// at or after 22:00. A 04:45 airport transfer on an ordinary day therefore
// stays at the front, while a 00:30 club visit after a 22:30 show sorts to
// the back. Malformed clock values sort first and otherwise keep their
// relative order.
func SortItems(items []domain.Item) []domain.Item {
	out := domain.CloneItems(items)
	sortItemsInPlace(out)
	return out
}

func sortItemsInPlace(items []domain.Item) {
	rebase := hasLateEveningStart(items)
	sort.SliceStable(items, func(i, j int) bool {
		return chronoKey(items[i], rebase) < chronoKey(items[j], rebase)
	})
}

func hasLateEveningStart(items []domain.Item) bool {
	for _, it := range items {
		if it.StartMinutes() >= lateEveningMinutes {
			return true
		}
	}
	return false
}

// chronoKey maps an item's start to a sortable minute value. When rebase is
// set, early-morning starts are pushed past the end of the day.
func chronoKey(it domain.Item, rebase bool) int {
	m := it.StartMinutes()
	if m < 0 {
		return -1
	}
	if rebase && m < dayStartMinutes {
		return m + domain.MinutesPerDay
	}
	return m
}
