package domain

// ExportRow is a single row in the full-itinerary export.
// It is a flat, denormalized view: one row per item, with trip and day
// fields repeated for every item on that day. Days with no items yield one
// row with zero values for all item fields.
type ExportRow struct {
	// Trip fields — repeated for every row of the trip.
	TripID      string `json:"tripId"`
	Destination string `json:"destination"`

	// Day fields — repeated for every item on the day.
	DayNumber int    `json:"dayNumber"`
	Date      string `json:"date"` // "2006-01-02" formatted date
	Theme     string `json:"theme,omitempty"`

	// Item fields — zero values when the day has no items.
	ItemID          string  `json:"itemId,omitempty"`
	ItemType        string  `json:"itemType,omitempty"`
	Title           string  `json:"title,omitempty"`
	StartTime       string  `json:"startTime,omitempty"` // "HH:MM", empty when the day has no items
	EndTime         string  `json:"endTime,omitempty"`
	DurationMinutes int     `json:"durationMinutes,omitempty"`
	EstimatedCost   float64 `json:"estimatedCost,omitempty"`
	DataReliability string  `json:"dataReliability,omitempty"`
}
