package domain

// ConstraintKind ranks how strongly an item resists mutation.
// When several rules match one item the strongest kind wins:
// immutable over time_locked over booking_required.
type ConstraintKind string

const (
	ConstraintImmutable       ConstraintKind = "immutable"
	ConstraintTimeLocked      ConstraintKind = "time_locked"
	ConstraintBookingRequired ConstraintKind = "booking_required"
)

// Constraint is a derived restriction on whether and how an Item may be
// mutated. Constraints are never stored — they are recomputed from the
// current Days on every validation pass. At most one exists per item.
type Constraint struct {
	ItemID string         `json:"itemId"`
	Kind   ConstraintKind `json:"kind"`
	Reason string         `json:"reason"`
}

// ConstraintSet indexes derived constraints by item id for O(1) lookup
// inside the operators.
type ConstraintSet map[string]Constraint

// IndexConstraints builds a ConstraintSet from the deriver's ordered output.
func IndexConstraints(constraints []Constraint) ConstraintSet {
	cs := make(ConstraintSet, len(constraints))
	for _, c := range constraints {
		cs[c.ItemID] = c
	}
	return cs
}

// Lookup returns the constraint for an item, if any.
func (cs ConstraintSet) Lookup(itemID string) (Constraint, bool) {
	c, ok := cs[itemID]
	return c, ok
}

// Blocks reports whether the item is locked against mutation. Only
// immutable and time_locked constraints hard-block; booking_required
// surfaces as a warning at the call sites instead.
func (cs ConstraintSet) Blocks(itemID string) bool {
	c, ok := cs[itemID]
	if !ok {
		return false
	}
	return c.Kind == ConstraintImmutable || c.Kind == ConstraintTimeLocked
}
