package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradenet/domain/core"
	"tradenet/domain/network"
	"tradenet/domain/viewstate"
)

// stubNet is a canned ports.TradeNetwork.
type stubNet struct {
	edges    []network.EdgeRow
	partners []network.Partner
	stats    network.NetworkStats
}

func (n *stubNet) TopEdges(count int) []network.EdgeRow {
	if count < len(n.edges) {
		return n.edges[:count]
	}
	return n.edges
}
func (n *stubNet) IncidentEdges(state string) []network.EdgeRow {
	var out []network.EdgeRow
	for _, e := range n.edges {
		if e.Source == state || e.Target == state {
			out = append(out, e)
		}
	}
	return out
}
func (n *stubNet) FlowTotals(state string) (float64, float64) { return 600, 300 }
func (n *stubNet) TopPartners(state string, count int) []network.Partner {
	if count < len(n.partners) {
		return n.partners[:count]
	}
	return n.partners
}
func (n *stubNet) Stats() network.NetworkStats { return n.stats }

func newDashboard(t *testing.T) (*DashboardService, *stubData) {
	t.Helper()

	t51 := network.NewNodeTable([]network.CentralityRow{
		{StateID: 0, State: "CA", StateName: "California", Lat: 36.78, Lon: -119.42, HasCoords: true,
			Eigenvector: 0.9, OutDegree: 400, Betweenness: 0.2,
			RankEigenvector: 1, RankOutDegree: 1, RankBetweenness: 2,
			GDPBillions: 2700, GDPRank: 1, HasGDP: true},
		{StateID: 1, State: "TX", StateName: "Texas", Lat: 31.97, Lon: -99.90, HasCoords: true,
			Eigenvector: 0.8, OutDegree: 300, Betweenness: 0.4,
			RankEigenvector: 2, RankOutDegree: 2, RankBetweenness: 1,
			GDPBillions: 1700, GDPRank: 2, HasGDP: true},
		{StateID: 2, State: "NY", StateName: "New York", Lat: 43.00, Lon: -75.00, HasCoords: true,
			Eigenvector: 0.7, OutDegree: 200, Betweenness: 0.1,
			RankEigenvector: 3, RankOutDegree: 3, RankBetweenness: 3,
			GDPBillions: 1600, GDPRank: 3, HasGDP: true},
	})
	t52 := network.NewNodeTable([]network.CentralityRow{
		{StateID: 0, State: "CA", StateName: "California", Lat: 36.78, Lon: -119.42, HasCoords: true,
			RankEigenvector: 2, RankOutDegree: 1, RankBetweenness: 2,
			GDPRank: 1, HasGDP: true},
		{StateID: 1, State: "TX", StateName: "Texas", Lat: 31.97, Lon: -99.90, HasCoords: true,
			RankEigenvector: 1, RankOutDegree: 2, RankBetweenness: 1,
			GDPRank: 2, HasGDP: true},
		{StateID: 2, State: "NY", StateName: "New York", Lat: 43.00, Lon: -75.00, HasCoords: true,
			RankEigenvector: 3, RankOutDegree: 3, RankBetweenness: 3,
			GDPRank: 3, HasGDP: true},
		{StateID: 3, State: network.RestOfWorld, StateName: network.RestOfWorld,
			RankEigenvector: 4, RankOutDegree: 4, RankBetweenness: 4},
	})

	edges := []network.EdgeRow{
		{Source: "CA", Target: "TX", Weight: 400},
		{Source: "TX", Target: "CA", Weight: 300},
		{Source: network.RestOfWorld, Target: "CA", Weight: 50},
	}

	filtBand := network.NewNodeTable(network.RankFiltrationRows([]network.CentralityRow{
		{State: "TX", StateName: "Texas", HasCoords: true, Betweenness: 0.9},
	}))

	data, catalog := newStub(t)
	data.t51 = t51
	data.t52 = t52
	data.edges = edges
	data.rankChanges = network.ComputeRankChanges(t51, t52)
	data.filtration = map[network.ThresholdLabel]*network.NodeTable{
		network.Threshold2: filtBand,
	}

	net := &stubNet{
		edges: edges,
		partners: []network.Partner{
			{State: "TX", Value: 400, Direction: "out"},
			{State: "TX", Value: 300, Direction: "in"},
		},
		stats: network.NetworkStats{Nodes: 2, Edges: 3, Density: 1.5},
	}

	return NewDashboardService(data, net, NewFilterService(data, catalog)), data
}

func TestMapPayload_DomesticHasNoArrows(t *testing.T) {
	svc, _ := newDashboard(t)
	st := viewstate.New("s")

	p, err := svc.MapPayload(*st)
	require.NoError(t, err)

	require.Len(t, p.Nodes, 3)
	for _, n := range p.Nodes {
		assert.Nil(t, n.RankDelta, "domestic mode must not carry rank deltas")
		assert.Empty(t, n.Arrow)
	}
	assert.Equal(t, 1, p.Nodes[0].Rank)
}

func TestMapPayload_InternationalArrows(t *testing.T) {
	svc, _ := newDashboard(t)
	st := viewstate.New("s")
	require.NoError(t, st.SetBoundary(network.BoundaryWithInternational))

	p, err := svc.MapPayload(*st)
	require.NoError(t, err)

	// RoW has no coordinates and never appears on the map.
	require.Len(t, p.Nodes, 3)

	byState := map[string]MapNode{}
	for _, n := range p.Nodes {
		byState[n.State] = n
	}
	ca := byState["CA"]
	require.NotNil(t, ca.RankDelta)
	assert.Equal(t, -1, *ca.RankDelta)
	assert.Equal(t, "▼", ca.Arrow)

	tx := byState["TX"]
	require.NotNil(t, tx.RankDelta)
	assert.Equal(t, 1, *tx.RankDelta)
	assert.Equal(t, "▲", tx.Arrow)
}

func TestMapPayload_CommoditySuppressesArrows(t *testing.T) {
	svc, _ := newDashboard(t)
	st := viewstate.New("s")
	require.NoError(t, st.SetBoundary(network.BoundaryWithInternational))
	st.SetCommodity("25")

	p, err := svc.MapPayload(*st)
	require.NoError(t, err)
	for _, n := range p.Nodes {
		assert.Nil(t, n.RankDelta, "commodity filter must suppress arrows")
	}
}

func TestMapPayload_EdgeOverlay(t *testing.T) {
	svc, _ := newDashboard(t)
	st := viewstate.New("s")
	require.NoError(t, st.SetEdgeOverlay(true, 2))

	p, err := svc.MapPayload(*st)
	require.NoError(t, err)
	require.Len(t, p.Edges, 2)
	assert.Equal(t, 400.0, p.Edges[0].Weight, "edges sorted by weight")

	// Selecting a state switches the overlay to its incident edges.
	st.ToggleSelect("TX")
	p, err = svc.MapPayload(*st)
	require.NoError(t, err)
	for _, e := range p.Edges {
		assert.True(t, e.Source == "TX" || e.Target == "TX")
	}
}

func TestMapPayload_EdgeOverlayWithCommodityFilter(t *testing.T) {
	svc, _ := newDashboard(t)
	st := viewstate.New("s")
	st.SetCommodity("25")
	require.NoError(t, st.SetEdgeOverlay(true, 1))

	// The filtered edge set is cut to the heaviest n here, not by the graph.
	p, err := svc.MapPayload(*st)
	require.NoError(t, err)
	require.Len(t, p.Edges, 1)
	assert.Equal(t, 40.0, p.Edges[0].Weight)
	assert.Equal(t, "25", p.Edges[0].SCTG)
}

func TestMapPayload_FiltrationSnapshot(t *testing.T) {
	svc, _ := newDashboard(t)
	st := viewstate.New("s")
	require.NoError(t, st.SetMode(viewstate.ModeAnalyze))
	require.NoError(t, st.SetMeasure(network.MeasureBetweenness))
	require.NoError(t, st.SetFiltrationThreshold(0.6))

	p, err := svc.MapPayload(*st)
	require.NoError(t, err)
	assert.Equal(t, network.Threshold2, p.Threshold)
	require.Len(t, p.Nodes, 1, "only TX survives this band")
	assert.Equal(t, "TX", p.Nodes[0].State)
	assert.Equal(t, 1, p.Nodes[0].Rank)
}

func TestRankings_SortedByActiveMeasure(t *testing.T) {
	svc, _ := newDashboard(t)
	st := viewstate.New("s")

	p, err := svc.Rankings(*st)
	require.NoError(t, err)
	require.Len(t, p.Rows, 3)
	assert.Equal(t, "CA", p.Rows[0].Abbr, "eigenvector puts CA first")

	require.NoError(t, st.SetMeasure(network.MeasureBetweenness))
	p, err = svc.Rankings(*st)
	require.NoError(t, err)
	assert.Equal(t, "TX", p.Rows[0].Abbr, "betweenness puts TX first")
}

func TestRankings_Divergence(t *testing.T) {
	svc, _ := newDashboard(t)
	st := viewstate.New("s")

	p, err := svc.Rankings(*st)
	require.NoError(t, err)

	ca := p.Rows[0]
	require.NotNil(t, ca.Divergence)
	// GDP rank 1 vs betweenness rank 2.
	assert.Equal(t, -1, ca.Divergence[network.MeasureBetweenness].Diff)
}

func TestStateDetail(t *testing.T) {
	svc, _ := newDashboard(t)
	st := viewstate.New("s")

	p, err := svc.StateDetail(*st, "CA")
	require.NoError(t, err)
	assert.Equal(t, "California", p.StateName)
	assert.Equal(t, 1, p.Rank)
	assert.Equal(t, "top-10", p.RankBadge)
	assert.Equal(t, 600.0, p.OutboundTotal)
	assert.Equal(t, 300.0, p.InboundTotal)
	assert.Len(t, p.Partners, 2)
	assert.Nil(t, p.Divergence, "explore mode omits divergence")
	assert.Nil(t, p.RankShifts, "domestic mode omits rank shifts")

	_, err = svc.StateDetail(*st, "ZZ")
	assert.True(t, errors.Is(err, core.ErrRegionNotFound))
}

func TestStateDetail_AnalyzeAndInternational(t *testing.T) {
	svc, _ := newDashboard(t)
	st := viewstate.New("s")
	require.NoError(t, st.SetMode(viewstate.ModeAnalyze))
	require.NoError(t, st.SetBoundary(network.BoundaryWithInternational))

	p, err := svc.StateDetail(*st, "CA")
	require.NoError(t, err)
	require.NotNil(t, p.Divergence)
	require.NotNil(t, p.RankShifts)
	assert.Equal(t, -1, p.RankShifts[network.MeasureEigenvector].Delta)
}

func TestNetworkStats(t *testing.T) {
	svc, _ := newDashboard(t)
	st := viewstate.New("s")

	p, err := svc.NetworkStats(*st)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Edges)
	assert.Nil(t, p.Weights, "explore mode omits the weight summary")
	assert.Nil(t, p.GDPCorrelation)

	require.NoError(t, st.SetMode(viewstate.ModeAnalyze))
	p, err = svc.NetworkStats(*st)
	require.NoError(t, err)
	require.NotNil(t, p.Weights)
	assert.InDelta(t, 750.0, p.Weights.Total, 1e-9)
	require.NotNil(t, p.GDPCorrelation)
	assert.InDelta(t, 1.0, p.GDPCorrelation[network.MeasureEigenvector], 1e-9)
}
