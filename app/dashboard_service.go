package app

import (
	"sort"

	"tradenet/domain/commodity"
	"tradenet/domain/core"
	"tradenet/domain/network"
	"tradenet/domain/viewstate"
	"tradenet/ports"
)

// DashboardService derives the view payloads for one session's selections.
// Every method reads only the immutable loaded tables, so it is safe under
// concurrent sessions.
type DashboardService struct {
	data    ports.NetworkData
	net     ports.TradeNetwork
	filters *FilterService
}

// NewDashboardService wires the dashboard over the loaded tables, the trade
// graph, and the filter engine.
func NewDashboardService(data ports.NetworkData, net ports.TradeNetwork, filters *FilterService) *DashboardService {
	return &DashboardService{data: data, net: net, filters: filters}
}

// MapNode is one renderable map marker.
type MapNode struct {
	State     string  `json:"state"`
	StateName string  `json:"state_name"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Score     float64 `json:"score"`
	Rank      int     `json:"rank"`
	GDPRank   int     `json:"gdp_rank,omitempty"`

	// RankDelta and Arrow are only set in with_international mode; domestic
	// mode has no second ranking to compare against.
	RankDelta *int   `json:"rank_delta,omitempty"`
	Arrow     string `json:"arrow,omitempty"`

	Selected bool `json:"selected,omitempty"`
}

// MapPayload is everything the map widget needs for one redraw.
type MapPayload struct {
	Measure       network.Measure        `json:"measure"`
	Boundary      network.BoundaryMode   `json:"boundary_mode"`
	Commodity     string                 `json:"commodity_code"`
	Mode          viewstate.Mode         `json:"mode"`
	Theme         viewstate.Theme        `json:"theme"`
	Threshold     network.ThresholdLabel `json:"threshold,omitempty"`
	SelectedState string                 `json:"selected_state,omitempty"`
	Nodes         []MapNode              `json:"nodes"`
	Edges         []network.EdgeRow      `json:"edges,omitempty"`
}

// MapPayload assembles the map view for a session. Table choice mirrors the
// control semantics: an analyze-mode betweenness filtration snapshot wins,
// then a commodity filter, then the boundary table. The RoW node never
// appears on the map (it has no coordinates).
func (s *DashboardService) MapPayload(st viewstate.State) (MapPayload, error) {
	p := MapPayload{
		Measure:       st.Measure,
		Boundary:      st.Boundary,
		Commodity:     st.Commodity,
		Mode:          st.Mode,
		Theme:         st.Theme,
		SelectedState: st.SelectedState,
	}

	nodes, edges, err := s.activeTables(st)
	if err != nil {
		return MapPayload{}, err
	}
	if s.filtrationActive(st) {
		p.Threshold = st.ThresholdLabel()
	}

	showArrows := s.arrowsActive(st)
	for _, r := range nodes.Rows {
		if !r.HasCoords {
			continue
		}
		n := MapNode{
			State:     r.State,
			StateName: r.StateName,
			Lat:       r.Lat,
			Lon:       r.Lon,
			Score:     r.Score(st.Measure),
			Rank:      r.Rank(st.Measure),
			Selected:  r.State == st.SelectedState,
		}
		if r.HasGDP {
			n.GDPRank = r.GDPRank
		}
		if showArrows {
			if delta, ok := s.data.RankChanges().Delta(r.State, st.Measure); ok {
				d := delta
				n.RankDelta = &d
				n.Arrow = network.Arrow(delta)
			}
		}
		p.Nodes = append(p.Nodes, n)
	}

	if st.ShowEdges {
		switch {
		case st.SelectedState != "" && st.Commodity == commodity.CodeAll:
			p.Edges = s.net.IncidentEdges(st.SelectedState)
		case st.Commodity == commodity.CodeAll:
			p.Edges = s.net.TopEdges(st.EdgeCount)
		default:
			// Commodity-filtered edge sets live outside the trade graph, so
			// the top-N cut happens here.
			p.Edges = topEdgesByWeight(edges, st.EdgeCount)
		}
	}
	return p, nil
}

// RankingRow is one rankings-table line.
type RankingRow struct {
	Abbr      string `json:"abbr"`
	StateName string `json:"state"`
	GDPRank   int    `json:"gdp_rank,omitempty"`

	RankEigenvector int `json:"rank_eigenvector"`
	RankOutDegree   int `json:"rank_out_degree"`
	RankBetweenness int `json:"rank_betweenness"`

	// Divergence shades each centrality cell against the GDP rank; absent
	// for rows with no GDP data (RoW).
	Divergence map[network.Measure]network.Divergence `json:"divergence,omitempty"`

	RankDelta *int   `json:"rank_delta,omitempty"`
	Arrow     string `json:"arrow,omitempty"`
	Selected  bool   `json:"selected,omitempty"`
}

// RankingsPayload is the rankings table sorted by the active measure.
type RankingsPayload struct {
	Measure  network.Measure      `json:"measure"`
	Boundary network.BoundaryMode `json:"boundary_mode"`
	Rows     []RankingRow         `json:"rows"`
}

// Rankings assembles the rankings table for a session.
func (s *DashboardService) Rankings(st viewstate.State) (RankingsPayload, error) {
	nodes, _, err := s.activeTables(st)
	if err != nil {
		return RankingsPayload{}, err
	}

	p := RankingsPayload{Measure: st.Measure, Boundary: st.Boundary}
	showArrows := s.arrowsActive(st)

	for _, r := range nodes.Rows {
		row := RankingRow{
			Abbr:            r.State,
			StateName:       r.StateName,
			RankEigenvector: r.RankEigenvector,
			RankOutDegree:   r.RankOutDegree,
			RankBetweenness: r.RankBetweenness,
			Selected:        r.State == st.SelectedState,
		}
		if r.HasGDP {
			row.GDPRank = r.GDPRank
			row.Divergence = make(map[network.Measure]network.Divergence, 3)
			for _, m := range network.Measures() {
				row.Divergence[m] = network.DivergenceFor(r.GDPRank, r.Rank(m))
			}
		}
		if showArrows {
			if delta, ok := s.data.RankChanges().Delta(r.State, st.Measure); ok {
				d := delta
				row.RankDelta = &d
				row.Arrow = network.Arrow(delta)
			}
		}
		p.Rows = append(p.Rows, row)
	}

	measure := st.Measure
	sort.SliceStable(p.Rows, func(a, b int) bool {
		return rankFor(p.Rows[a], measure) < rankFor(p.Rows[b], measure)
	})
	return p, nil
}

// DetailPayload is the per-region drawer content.
type DetailPayload struct {
	Abbr      string `json:"abbr"`
	StateName string `json:"state_name"`

	Measure   network.Measure `json:"measure"`
	Rank      int             `json:"rank"`
	RankBadge string          `json:"rank_badge"`

	Scores map[network.Measure]float64 `json:"scores"`
	Ranks  map[network.Measure]int     `json:"ranks"`

	GDPRank     int     `json:"gdp_rank,omitempty"`
	GDPBillions float64 `json:"gdp_billions,omitempty"`

	OutboundTotal float64           `json:"outbound_total"`
	InboundTotal  float64           `json:"inbound_total"`
	Partners      []network.Partner `json:"partners"`

	// Divergence is only populated in analyze mode for regions with GDP data.
	Divergence map[network.Measure]network.Divergence `json:"divergence,omitempty"`

	// RankShifts carry the boundary-sensitivity deltas in with_international
	// mode.
	RankShifts map[network.Measure]*network.RankShift `json:"rank_shifts,omitempty"`
}

// topPartnerCount matches the drawer's partner list length.
const topPartnerCount = 8

// StateDetail assembles the drawer payload for one region.
func (s *DashboardService) StateDetail(st viewstate.State, abbr string) (DetailPayload, error) {
	nodes := s.data.Nodes(st.Boundary)
	r, ok := nodes.Lookup(abbr)
	if !ok {
		return DetailPayload{}, core.ErrRegionNotFound
	}

	p := DetailPayload{
		Abbr:      r.State,
		StateName: r.StateName,
		Measure:   st.Measure,
		Rank:      r.Rank(st.Measure),
		RankBadge: rankBadge(r.Rank(st.Measure)),
		Scores:    make(map[network.Measure]float64, 3),
		Ranks:     make(map[network.Measure]int, 3),
	}
	for _, m := range network.Measures() {
		p.Scores[m] = r.Score(m)
		p.Ranks[m] = r.Rank(m)
	}
	if r.HasGDP {
		p.GDPRank = r.GDPRank
		p.GDPBillions = r.GDPBillions
	}

	p.OutboundTotal, p.InboundTotal = s.net.FlowTotals(abbr)
	p.Partners = s.net.TopPartners(abbr, topPartnerCount)

	if st.Mode == viewstate.ModeAnalyze && r.HasGDP {
		p.Divergence = make(map[network.Measure]network.Divergence, 3)
		for _, m := range network.Measures() {
			p.Divergence[m] = network.DivergenceFor(r.GDPRank, r.Rank(m))
		}
	}
	if s.arrowsActive(st) {
		if row, ok := s.data.RankChanges().Lookup(abbr); ok && row.Shifts != nil {
			p.RankShifts = row.Shifts
		}
	}
	return p, nil
}

// StatsPayload is the network summary panel. The analyze-mode extras are
// omitted in explore mode.
type StatsPayload struct {
	network.NetworkStats

	Weights        *network.WeightSummary      `json:"weights,omitempty"`
	GDPCorrelation map[network.Measure]float64 `json:"gdp_correlation,omitempty"`
}

// NetworkStats assembles the stats panel for a session.
func (s *DashboardService) NetworkStats(st viewstate.State) (StatsPayload, error) {
	p := StatsPayload{NetworkStats: s.net.Stats()}
	if st.Mode != viewstate.ModeAnalyze {
		return p, nil
	}

	weights, err := network.SummarizeWeights(s.data.Edges())
	if err != nil {
		return StatsPayload{}, err
	}
	p.Weights = &weights

	p.GDPCorrelation = make(map[network.Measure]float64, 3)
	nodes := s.data.Nodes(network.BoundaryDomestic)
	for _, m := range network.Measures() {
		rho, _ := network.GDPRankCorrelation(nodes, m)
		p.GDPCorrelation[m] = rho
	}
	return p, nil
}

// activeTables resolves which node and edge tables a session is looking at.
func (s *DashboardService) activeTables(st viewstate.State) (*network.NodeTable, []network.EdgeRow, error) {
	if s.filtrationActive(st) {
		if t, ok := s.data.Filtration(st.ThresholdLabel()); ok {
			return t, s.data.Edges(), nil
		}
		// Band missing from the precomputed table: fall through to the
		// unfiltered view rather than render nothing.
	}
	if st.Commodity != commodity.CodeAll {
		return s.filters.FilterByCommodity(st.Commodity)
	}

	nodes := s.data.Nodes(st.Boundary)
	if st.Boundary == network.BoundaryDomestic {
		nodes = nodes.WithoutRestOfWorld()
	}
	return nodes, s.data.Edges(), nil
}

// filtrationActive reports whether the filtration snapshot drives the view:
// analyze mode, betweenness measure, and a non-trivial threshold.
func (s *DashboardService) filtrationActive(st viewstate.State) bool {
	return st.Mode == viewstate.ModeAnalyze &&
		st.Measure == network.MeasureBetweenness &&
		st.ThresholdLabel() != network.ThresholdFull
}

// arrowsActive reports whether rank-change arrows are rendered: only in
// with_international mode on the unfiltered network.
func (s *DashboardService) arrowsActive(st viewstate.State) bool {
	return st.Boundary == network.BoundaryWithInternational &&
		st.Commodity == commodity.CodeAll &&
		!s.filtrationActive(st)
}

func rankFor(r RankingRow, m network.Measure) int {
	switch m {
	case network.MeasureOutDegree:
		return r.RankOutDegree
	case network.MeasureBetweenness:
		return r.RankBetweenness
	default:
		return r.RankEigenvector
	}
}

func rankBadge(rank int) string {
	switch {
	case rank <= 10:
		return "top-10"
	case rank <= 20:
		return "top-20"
	default:
		return "other"
	}
}

func topEdgesByWeight(edges []network.EdgeRow, n int) []network.EdgeRow {
	sorted := make([]network.EdgeRow, len(edges))
	copy(sorted, edges)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].Weight > sorted[b].Weight
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
