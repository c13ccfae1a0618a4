package domain

// ItemType classifies a schedulable item. Flights, check-ins and check-outs
// are structurally fixed for end users regardless of any other attribute.
type ItemType string

const (
	ItemActivity   ItemType = "activity"
	ItemRestaurant ItemType = "restaurant"
	ItemHotel      ItemType = "hotel"
	ItemTransport  ItemType = "transport"
	ItemFlight     ItemType = "flight"
	ItemParking    ItemType = "parking"
	ItemCheckIn    ItemType = "checkin"
	ItemCheckOut   ItemType = "checkout"
	ItemLuggage    ItemType = "luggage"
	ItemFreeTime   ItemType = "free_time"
)

// Reliability records how an item's data was produced: confirmed by the
// traveller, estimated by a heuristic, or generated by the planner.
type Reliability string

const (
	ReliabilityVerified  Reliability = "verified"
	ReliabilityEstimated Reliability = "estimated"
	ReliabilityGenerated Reliability = "generated"
)

// Item is the atomic schedulable unit within a Day.
//
// Start and End are "HH:MM" 24-hour clock strings with no timezone.
// DurationMinutes mirrors End minus Start; every operator that changes
// times keeps it in sync. IDs are unique across the whole trip and are
// never reused after removal.
type Item struct {
	ID              string      `json:"id"`
	Type            ItemType    `json:"type"`
	Title           string      `json:"title"`
	Description     string      `json:"description,omitempty"`
	Start           string      `json:"startTime"`
	End             string      `json:"endTime"`
	DurationMinutes int         `json:"duration"`
	EstimatedCost   float64     `json:"estimatedCost,omitempty"`
	BookingURL      string      `json:"bookingUrl,omitempty"`
	Latitude        *float64    `json:"latitude,omitempty"`
	Longitude       *float64    `json:"longitude,omitempty"`
	DataReliability Reliability `json:"dataReliability"`
}

// StartMinutes returns the item's start as minutes after midnight, -1 when
// the clock value is malformed.
func (it Item) StartMinutes() int { return MinutesOf(it.Start) }

// EndMinutes returns the item's end as minutes after midnight, -1 when the
// clock value is malformed.
func (it Item) EndMinutes() int { return MinutesOf(it.End) }
