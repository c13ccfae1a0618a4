package engine

import (
	"fmt"
	"strings"

	"github.com/zaccharietardy-dotcom/voyage-planner/internal/domain"
)

// thirdPartyVendors are hostname fragments that identify a booking link as
// a paid third-party reservation rather than an informational URL.
var thirdPartyVendors = []string{
	"getyourguide",
	"viator",
	"tiqets",
	"ticketmaster",
	"eventbrite",
	"booking.",
	"opentable",
	"thefork",
}

// DeriveConstraints inspects the days and produces at most one constraint
// per item. Constraints are derived fresh on every validation pass, never
// stored. Rules are checked in priority order and the first match wins:
//
//  1. flights are immutable, full stop
//  2. hotel check-in and check-out are time-locked
//  3. a priced item booked through a third-party vendor requires its
//     booking to be honoured
//  4. transport and parking with any booking link likewise
func DeriveConstraints(days []domain.Day) []domain.Constraint {
	var out []domain.Constraint
	for _, day := range days {
		for _, it := range day.Items {
			if c, ok := deriveItemConstraint(it); ok {
				out = append(out, c)
			}
		}
	}
	return out
}

func deriveItemConstraint(it domain.Item) (domain.Constraint, bool) {
	switch {
	case it.Type == domain.ItemFlight:
		return domain.Constraint{
			ItemID: it.ID,
			Kind:   domain.ConstraintImmutable,
			Reason: fmt.Sprintf("%s is a flight; departure and arrival times cannot be changed here.", it.Title),
		}, true

	case it.Type == domain.ItemCheckIn || it.Type == domain.ItemCheckOut:
		return domain.Constraint{
			ItemID: it.ID,
			Kind:   domain.ConstraintTimeLocked,
			Reason: fmt.Sprintf("%s is tied to the accommodation booking.", it.Title),
		}, true

	case it.BookingURL != "" && it.EstimatedCost > 0 && hasVendorLink(it.BookingURL):
		return domain.Constraint{
			ItemID: it.ID,
			Kind:   domain.ConstraintBookingRequired,
			Reason: fmt.Sprintf("%s has a paid third-party booking; changing it may incur cancellation fees.", it.Title),
		}, true

	case (it.Type == domain.ItemTransport || it.Type == domain.ItemParking) && it.BookingURL != "":
		return domain.Constraint{
			ItemID: it.ID,
			Kind:   domain.ConstraintBookingRequired,
			Reason: fmt.Sprintf("%s has an existing reservation.", it.Title),
		}, true
	}
	return domain.Constraint{}, false
}

// hasVendorLink reports whether the booking URL points at a known
// tour-operator or ticket-vendor platform.
func hasVendorLink(url string) bool {
	u := strings.ToLower(url)
	for _, vendor := range thirdPartyVendors {
		if strings.Contains(u, vendor) {
			return true
		}
	}
	return false
}

// isMobile reports whether an item may be moved in time or reordered: it
// carries no derived constraint and is not a structurally fixed type.
func isMobile(it domain.Item, cs domain.ConstraintSet) bool {
	if _, constrained := cs.Lookup(it.ID); constrained {
		return false
	}
	switch it.Type {
	case domain.ItemFlight, domain.ItemCheckIn, domain.ItemCheckOut, domain.ItemParking:
		return false
	}
	return true
}
