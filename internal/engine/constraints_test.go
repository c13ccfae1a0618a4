package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaccharietardy-dotcom/voyage-planner/internal/domain"
	"github.com/zaccharietardy-dotcom/voyage-planner/internal/engine"
)

func TestDeriveConstraints_Rules(t *testing.T) {
	tour := mkItem("tour", domain.ItemActivity, "Versailles day tour", "09:00", "17:00")
	tour.BookingURL = "https://www.getyourguide.com/versailles-l317/"
	tour.EstimatedCost = 89

	shuttle := mkItem("shuttle", domain.ItemTransport, "Airport shuttle", "07:00", "08:00")
	shuttle.BookingURL = "https://shuttles.example.com/ride/42"

	freeWalk := mkItem("walk", domain.ItemActivity, "Left Bank walk", "10:00", "12:00")

	// An informational link without a vendor or a price stays unconstrained.
	parkVisit := mkItem("garden", domain.ItemActivity, "Jardin du Luxembourg", "14:00", "15:00")
	parkVisit.BookingURL = "https://en.wikipedia.org/wiki/Jardin_du_Luxembourg"

	days := []domain.Day{mkDay(1,
		mkItem("fl", domain.ItemFlight, "Flight home", "18:00", "20:00"),
		mkItem("ci", domain.ItemCheckIn, "Hotel check-in", "14:00", "14:30"),
		mkItem("co", domain.ItemCheckOut, "Hotel check-out", "11:00", "11:30"),
		tour, shuttle, freeWalk, parkVisit,
	)}

	got := engine.DeriveConstraints(days)

	byID := domain.IndexConstraints(got)
	require.Len(t, got, 5)
	assert.Equal(t, domain.ConstraintImmutable, byID["fl"].Kind)
	assert.Equal(t, domain.ConstraintTimeLocked, byID["ci"].Kind)
	assert.Equal(t, domain.ConstraintTimeLocked, byID["co"].Kind)
	assert.Equal(t, domain.ConstraintBookingRequired, byID["tour"].Kind)
	assert.Equal(t, domain.ConstraintBookingRequired, byID["shuttle"].Kind)

	_, constrained := byID.Lookup("walk")
	assert.False(t, constrained)
	_, constrained = byID.Lookup("garden")
	assert.False(t, constrained)
}

// TestDeriveConstraints_FirstMatchWins pins the priority order: a flight
// with a paid vendor booking is still immutable, not booking_required.
func TestDeriveConstraints_FirstMatchWins(t *testing.T) {
	fl := mkItem("fl", domain.ItemFlight, "Flight AF123", "09:00", "11:00")
	fl.BookingURL = "https://www.ticketmaster.com/af123"
	fl.EstimatedCost = 220

	got := engine.DeriveConstraints([]domain.Day{mkDay(1, fl)})

	require.Len(t, got, 1)
	assert.Equal(t, domain.ConstraintImmutable, got[0].Kind)
}

func TestDeriveConstraints_ReasonsAreHumanReadable(t *testing.T) {
	days := parisDays()

	got := engine.DeriveConstraints(days)

	require.NotEmpty(t, got)
	for _, c := range got {
		assert.NotEmpty(t, c.Reason)
		assert.NotEmpty(t, c.ItemID)
	}
}

func TestConstraintSet_Blocks(t *testing.T) {
	cs := constraintsOf(parisDays())

	assert.True(t, cs.Blocks("flight-in"))
	assert.True(t, cs.Blocks("checkin-1"))
	assert.False(t, cs.Blocks("louvre"))
	assert.False(t, cs.Blocks("no-such-item"))
}
