package domain

// ChangeKind labels one atomic mutation in a Change log.
type ChangeKind string

const (
	ChangeAdd    ChangeKind = "add"
	ChangeRemove ChangeKind = "remove"
	ChangeUpdate ChangeKind = "update"
	ChangeMove   ChangeKind = "move"
)

// Change is one entry in the flat, ordered audit log an operator produces.
// Before and After carry item snapshots for updates and moves; NewItem
// carries the inserted item for adds. The log feeds the user-facing diff
// preview and the description of the rollback snapshot.
type Change struct {
	Kind        ChangeKind `json:"kind"`
	DayNumber   int        `json:"dayNumber"`
	ItemID      string     `json:"itemId,omitempty"`
	NewItem     *Item      `json:"newItem,omitempty"`
	Before      *Item      `json:"before,omitempty"`
	After       *Item      `json:"after,omitempty"`
	Description string     `json:"description"`
}

// FailureKind is the machine-readable taxonomy for operator failures.
type FailureKind string

const (
	FailConstraintViolation FailureKind = "constraint_violation"
	FailImmutableItem       FailureKind = "immutable_item"
	FailItemNotFound        FailureKind = "item_not_found"
	FailScheduleConflict    FailureKind = "schedule_conflict"
	FailNoSlotAvailable     FailureKind = "no_slot_available"
)

// ErrorInfo describes why an operator refused a mutation.
// AlternativeSuggestion, when present, is a ready-to-resubmit prompt the UI
// can offer as a one-tap retry.
type ErrorInfo struct {
	Type                  FailureKind `json:"type"`
	Message               string      `json:"message"`
	AlternativeSuggestion string      `json:"alternativeSuggestion,omitempty"`
}

// MutationResult is the outcome of one operator invocation.
//
// On failure Days equals the input unchanged, so callers can always render
// the result without special-casing. Rollback is the deep copy of the input
// Days taken before the operator ran; it is returned on success and failure
// alike and discarded by the caller once the change is confirmed or
// rejected. The engine holds no history beyond it.
type MutationResult struct {
	Success     bool       `json:"success"`
	Changes     []Change   `json:"changes"`
	Explanation string     `json:"explanation"`
	Warnings    []string   `json:"warnings,omitempty"`
	Days        []Day      `json:"newDays"`
	Rollback    []Day      `json:"rollbackData"`
	ErrorInfo   *ErrorInfo `json:"errorInfo,omitempty"`
}
