package network

import (
	"log"

	"tradenet/domain/core"
)

// RankShift is one region's rank under each boundary mode for one measure.
// Delta follows the convention rank_51 - rank_52: positive means the region's
// rank improved (lower rank number) once international trade is added. The UI
// derives arrow direction from the sign, so it must not be flipped.
type RankShift struct {
	Rank51 int `json:"rank_51"`
	Rank52 int `json:"rank_52"`
	Delta  int `json:"delta"`
}

// RankChangeRow holds the shifts for one region across all measures. Shifts
// is nil for a region whose join failed (delta undefined).
type RankChangeRow struct {
	State  string                 `json:"state"`
	Shifts map[Measure]*RankShift `json:"shifts"`
}

// RankChangeTable is the derived table joining the 51- and 52-node rankings.
type RankChangeTable struct {
	Rows    []RankChangeRow
	byState map[string]int
}

// Lookup returns the rank-change row for a state abbreviation.
func (t *RankChangeTable) Lookup(state string) (RankChangeRow, bool) {
	i, ok := t.byState[state]
	if !ok {
		return RankChangeRow{}, false
	}
	return t.Rows[i], true
}

// Delta returns the rank delta for one state and measure. ok is false when
// the state is unknown or its delta is undefined.
func (t *RankChangeTable) Delta(state string, m Measure) (int, bool) {
	row, ok := t.Lookup(state)
	if !ok || row.Shifts == nil {
		return 0, false
	}
	shift, ok := row.Shifts[m]
	if !ok || shift == nil {
		return 0, false
	}
	return shift.Delta, true
}

// ComputeRankChanges joins the 51- and 52-node tables on state and computes
// delta = rank_51 - rank_52 for each measure. The Rest-of-World node only
// exists in the 52-node table and gets no row. Any other one-sided region is
// a data-integrity fault: it is logged and its delta left undefined rather
// than failing the load. Ties in the source rankings are taken as-is.
func ComputeRankChanges(t51, t52 *NodeTable) *RankChangeTable {
	out := &RankChangeTable{
		Rows:    make([]RankChangeRow, 0, t51.Len()),
		byState: make(map[string]int, t51.Len()),
	}

	for _, r51 := range t51.Rows {
		row := RankChangeRow{State: r51.State}
		r52, ok := t52.Lookup(r51.State)
		if !ok {
			err := core.NewMissingJoinKeyError(r51.State, "51-node table")
			log.Printf("[RankChange] data integrity fault, delta undefined: %v", err)
		} else {
			row.Shifts = make(map[Measure]*RankShift, 3)
			for _, m := range Measures() {
				row.Shifts[m] = &RankShift{
					Rank51: r51.Rank(m),
					Rank52: r52.Rank(m),
					Delta:  r51.Rank(m) - r52.Rank(m),
				}
			}
		}
		out.byState[row.State] = len(out.Rows)
		out.Rows = append(out.Rows, row)
	}

	// The reverse direction: everything in the 52-node table beyond RoW must
	// exist in the 51-node table.
	for _, r52 := range t52.Rows {
		if r52.State == RestOfWorld {
			continue
		}
		if _, ok := t51.Lookup(r52.State); !ok {
			err := core.NewMissingJoinKeyError(r52.State, "52-node table")
			log.Printf("[RankChange] data integrity fault, delta undefined: %v", err)
		}
	}

	return out
}

// Arrow maps a rank delta onto the directional symbol rendered next to a
// region. Positive deltas (rank improved with international trade) point up.
func Arrow(delta int) string {
	switch {
	case delta > 0:
		return "▲"
	case delta < 0:
		return "▼"
	default:
		return "•"
	}
}
