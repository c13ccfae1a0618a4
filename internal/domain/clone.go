package domain

// CloneDays returns a structural deep copy of days. Every mutation operator
// works on a clone and returns it, leaving the caller's slice untouched;
// rollback snapshots are taken with the same copy.
func CloneDays(days []Day) []Day {
	if days == nil {
		return nil
	}
	out := make([]Day, len(days))
	for i, d := range days {
		out[i] = d
		out[i].Items = CloneItems(d.Items)
	}
	return out
}

// CloneItems deep-copies a day's items, including coordinate pointers.
func CloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = cloneItem(it)
	}
	return out
}

// CloneItem deep-copies a single item.
func CloneItem(it Item) Item { return cloneItem(it) }

func cloneItem(it Item) Item {
	it.Latitude = cloneFloat(it.Latitude)
	it.Longitude = cloneFloat(it.Longitude)
	return it
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
