package network

// Measure identifies one of the precomputed centrality measures.
type Measure string

const (
	MeasureEigenvector Measure = "eigenvector"
	MeasureOutDegree   Measure = "out_degree"
	MeasureBetweenness Measure = "betweenness"
)

// Measures returns all measures in display order.
func Measures() []Measure {
	return []Measure{MeasureEigenvector, MeasureOutDegree, MeasureBetweenness}
}

// Valid reports whether m is a known measure.
func (m Measure) Valid() bool {
	switch m {
	case MeasureEigenvector, MeasureOutDegree, MeasureBetweenness:
		return true
	}
	return false
}

// BoundaryMode selects which network boundary the user is looking at.
type BoundaryMode string

const (
	// BoundaryDomestic is the 51-node network (50 states + DC).
	BoundaryDomestic BoundaryMode = "domestic"
	// BoundaryWithInternational adds the aggregate Rest-of-World node (52 nodes).
	BoundaryWithInternational BoundaryMode = "with_international"
)

// Valid reports whether b is a known boundary mode.
func (b BoundaryMode) Valid() bool {
	return b == BoundaryDomestic || b == BoundaryWithInternational
}

// RestOfWorld is the label of the aggregate international node that only
// exists in the 52-node table.
const RestOfWorld = "RoW"

// CentralityRow is one region's precomputed scores and ranks, merged with
// coordinates and GDP reference data at load time.
type CentralityRow struct {
	StateID   int     `json:"state_id"`
	State     string  `json:"state"`
	StateName string  `json:"state_name"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	HasCoords bool    `json:"has_coords"`

	Eigenvector float64 `json:"eigenvector"`
	OutDegree   float64 `json:"out_degree"`
	Betweenness float64 `json:"betweenness"`

	RankEigenvector int `json:"rank_eigenvector"`
	RankOutDegree   int `json:"rank_out_degree"`
	RankBetweenness int `json:"rank_betweenness"`

	GDPBillions float64 `json:"gdp_billions"`
	GDPRank     int     `json:"gdp_rank"`
	HasGDP      bool    `json:"has_gdp"`
}

// Score returns the row's score for the given measure.
func (r CentralityRow) Score(m Measure) float64 {
	switch m {
	case MeasureOutDegree:
		return r.OutDegree
	case MeasureBetweenness:
		return r.Betweenness
	default:
		return r.Eigenvector
	}
}

// Rank returns the row's rank for the given measure.
func (r CentralityRow) Rank(m Measure) int {
	switch m {
	case MeasureOutDegree:
		return r.RankOutDegree
	case MeasureBetweenness:
		return r.RankBetweenness
	default:
		return r.RankEigenvector
	}
}

// NodeTable is an immutable set of centrality rows with lookup indexes.
type NodeTable struct {
	Rows    []CentralityRow
	byState map[string]int
	byID    map[int]int
}

// NewNodeTable builds the lookup indexes over rows.
func NewNodeTable(rows []CentralityRow) *NodeTable {
	t := &NodeTable{
		Rows:    rows,
		byState: make(map[string]int, len(rows)),
		byID:    make(map[int]int, len(rows)),
	}
	for i, r := range rows {
		t.byState[r.State] = i
		t.byID[r.StateID] = i
	}
	return t
}

// Lookup returns the row for a state abbreviation.
func (t *NodeTable) Lookup(state string) (CentralityRow, bool) {
	i, ok := t.byState[state]
	if !ok {
		return CentralityRow{}, false
	}
	return t.Rows[i], true
}

// LookupID returns the row for a numeric node id.
func (t *NodeTable) LookupID(id int) (CentralityRow, bool) {
	i, ok := t.byID[id]
	if !ok {
		return CentralityRow{}, false
	}
	return t.Rows[i], true
}

// Len returns the number of rows.
func (t *NodeTable) Len() int { return len(t.Rows) }

// States returns the set of state abbreviations in the table.
func (t *NodeTable) States() map[string]bool {
	set := make(map[string]bool, len(t.Rows))
	for _, r := range t.Rows {
		set[r.State] = true
	}
	return set
}

// WithoutRestOfWorld returns a copy of the table with the RoW node removed.
// The receiver is returned unchanged when no RoW row is present.
func (t *NodeTable) WithoutRestOfWorld() *NodeTable {
	if _, ok := t.byState[RestOfWorld]; !ok {
		return t
	}
	rows := make([]CentralityRow, 0, len(t.Rows)-1)
	for _, r := range t.Rows {
		if r.State == RestOfWorld {
			continue
		}
		rows = append(rows, r)
	}
	return NewNodeTable(rows)
}

// EdgeRow is one directed trade flow. SCTG is empty on the aggregate network
// and carries the individual commodity code on the per-commodity table.
type EdgeRow struct {
	SourceID int     `json:"source_id"`
	TargetID int     `json:"target_id"`
	Source   string  `json:"source"`
	Target   string  `json:"target"`
	Weight   float64 `json:"weight"`
	SCTG     string  `json:"sctg_code,omitempty"`
}

// Partner is one trading partner of a selected region, for the detail drawer.
type Partner struct {
	State     string  `json:"state"`
	Value     float64 `json:"value"`
	Direction string  `json:"direction"` // "in" or "out"
}

// NetworkStats are whole-network summary figures computed once at load.
type NetworkStats struct {
	Nodes       int     `json:"nodes"`
	Edges       int     `json:"edges"`
	Density     float64 `json:"density"`
	Reciprocity float64 `json:"reciprocity"`
	Clustering  float64 `json:"clustering"`
}
