// Package domain contains the core data types for the voyage planner
// backend: the schedule model the mutation engine operates on, the intent
// envelope it receives, and the result shape it returns. Every other
// internal package (engine, repo, service, handler) imports this one.
package domain

import (
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Trip is the top-level aggregate: an ordered sequence of Days plus
// trip-level metadata. The engine never mutates a Trip in place; every
// mutation operator works on a deep copy of its Days and returns the new
// state alongside a rollback snapshot.
type Trip struct {
	ID            uuid.UUID          `json:"id"`
	Destination   string             `json:"destination"`
	StartDate     openapi_types.Date `json:"startDate"`
	DurationDays  int                `json:"durationDays"`
	Accommodation *Accommodation     `json:"accommodation,omitempty"`
	Days          []Day              `json:"days"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// Accommodation is the trip's home base. Coordinates are nil until the
// address has been geocoded.
type Accommodation struct {
	Name      string   `json:"name"`
	Address   string   `json:"address,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Day is one calendar day of a Trip. DayNumber is the day's stable
// identity: 1-based and contiguous; inserting a day renumbers all
// subsequent days by +1 and shifts their dates to match.
type Day struct {
	DayNumber int                `json:"dayNumber"`
	Date      openapi_types.Date `json:"date"`
	Theme     string             `json:"theme,omitempty"`
	Items     []Item             `json:"items"`
}

// TripContext is the read-only slice of trip metadata the mutation
// operators need beyond the Days themselves.
type TripContext struct {
	Destination   string
	StartDate     openapi_types.Date
	Accommodation *Accommodation
}

// Context extracts the operator-facing view of a trip.
func (t *Trip) Context() TripContext {
	return TripContext{
		Destination:   t.Destination,
		StartDate:     t.StartDate,
		Accommodation: t.Accommodation,
	}
}
