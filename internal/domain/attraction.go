package domain

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Attraction is one ranked candidate venue for a destination, supplied by
// the attraction-pool collaborator. The add-activity and insert-day
// operators consume pools read-only to avoid inventing placeholder content
// with no connection to the destination.
type Attraction struct {
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	Description     string   `json:"description,omitempty"`
	DurationMinutes int      `json:"duration"`
	EstimatedCost   float64  `json:"estimatedCost"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
}
