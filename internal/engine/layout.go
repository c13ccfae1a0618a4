package engine

import (
	"sort"

	"github.com/zaccharietardy-dotcom/voyage-planner/internal/domain"
)

// The day grid quantizes 24 hours into fixed-width slots.
const (
	// SlotMinutes is the width of one grid row.
	SlotMinutes = 15
	// GridRows is the number of rows in a full day (96 at 15 minutes).
	GridRows = domain.MinutesPerDay / SlotMinutes
)

// Block is the renderable placement of one item on a day's time grid.
// Items that overlap in time share an overlap cluster; every member of a
// cluster reports the same TotalColumns so the renderer can divide the
// day's width evenly and place each block at its Column.
type Block struct {
	ItemID       string `json:"itemId"`
	RowStart     int    `json:"rowStart"`
	RowSpan      int    `json:"rowSpan"`
	Column       int    `json:"column"`
	TotalColumns int    `json:"totalColumns"`
}

// LayoutDay lays one day's items out on the slot grid.
//
// Clustering is connected-components over slot ranges: two items share a
// cluster when their ranges intersect, and membership is transitive through
// shared neighbours. A cluster of size N simply assigns columns 0..N-1 in
// time order and sets TotalColumns to N. That can allocate more columns
// than a minimum interval coloring would, but the assignment stays
// deterministic and stable as items move around, which the grid renderer
// relies on. Items with unparseable clock values are left out.
func LayoutDay(items []domain.Item) []Block {
	blocks := make([]Block, 0, len(items))
	for _, it := range SortItems(items) {
		b, ok := blockOf(it)
		if !ok {
			continue
		}
		blocks = append(blocks, b)
	}

	// The cluster sweep needs ascending grid position. Chronological order
	// and grid order differ only on after-midnight days, and never within
	// one cluster, so stable re-sorting keeps column order intact.
	sort.SliceStable(blocks, func(i, j int) bool { return blocks[i].RowStart < blocks[j].RowStart })

	clusterStart := 0
	maxEndRow := -1
	for i := range blocks {
		if i > 0 && blocks[i].RowStart >= maxEndRow {
			closeCluster(blocks[clusterStart:i])
			clusterStart = i
			maxEndRow = -1
		}
		if end := blocks[i].RowStart + blocks[i].RowSpan; end > maxEndRow {
			maxEndRow = end
		}
	}
	closeCluster(blocks[clusterStart:])
	return blocks
}

// closeCluster assigns column indices and the shared column count to one
// finished overlap cluster.
func closeCluster(cluster []Block) {
	for i := range cluster {
		cluster[i].Column = i
		cluster[i].TotalColumns = len(cluster)
	}
}

// blockOf converts an item to its slot range. Spans are at least one row
// and clamped to the grid.
func blockOf(it domain.Item) (Block, bool) {
	start := it.StartMinutes()
	if start < 0 {
		return Block{}, false
	}
	dur := it.EndMinutes() - start
	if dur <= 0 {
		dur = it.DurationMinutes
	}
	if dur <= 0 {
		dur = SlotMinutes
	}

	row := start / SlotMinutes
	if row >= GridRows {
		row = GridRows - 1
	}
	span := (dur + SlotMinutes - 1) / SlotMinutes
	if span < 1 {
		span = 1
	}
	if row+span > GridRows {
		span = GridRows - row
	}
	return Block{ItemID: it.ID, RowStart: row, RowSpan: span}, true
}
