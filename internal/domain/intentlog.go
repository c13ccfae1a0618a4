package domain

import (
	"time"

	"github.com/google/uuid"
)

// IntentLog is one persisted entry in a trip's mutation history: the
// classified intent as it was submitted plus the outcome the engine
// produced for it. Failed mutations are recorded too, so the history is a
// complete audit trail of what was asked, not only of what was applied.
type IntentLog struct {
	ID          uuid.UUID  `json:"id"`
	TripID      uuid.UUID  `json:"tripId"`
	IntentType  IntentType `json:"intentType"`
	Intent      Intent     `json:"intent"`
	Success     bool       `json:"success"`
	Explanation string     `json:"explanation"`
	ErrorType   string     `json:"errorType,omitempty"`
	Warnings    []string   `json:"warnings,omitempty"`
	Changes     []Change   `json:"changes"`
	CreatedAt   time.Time  `json:"createdAt"`
}
