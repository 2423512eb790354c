package network

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDivergenceFor(t *testing.T) {
	cases := []struct {
		gdp, centrality int
		tier            string
		symbol          string
	}{
		{31, 13, TierStrongUp, "▲"},   // Iowa-style outperformance
		{10, 4, TierUp, "▲"},
		{10, 9, TierFlat, "•"},
		{4, 14, TierStrongDown, "▼"},  // Florida-style consumption hub
		{4, 9, TierDown, "▼"},
		{7, 7, TierFlat, "•"},
	}
	for _, tc := range cases {
		d := DivergenceFor(tc.gdp, tc.centrality)
		assert.Equal(t, tc.gdp-tc.centrality, d.Diff)
		assert.Equal(t, tc.tier, d.Tier, "gdp=%d centrality=%d", tc.gdp, tc.centrality)
		assert.Equal(t, tc.symbol, d.Symbol)
	}
}

func TestGDPRankCorrelation(t *testing.T) {
	// GDP rank equals the eigenvector rank exactly: rho must be 1.
	rows := []CentralityRow{
		{State: "CA", RankEigenvector: 1, RankOutDegree: 4, GDPRank: 1, HasGDP: true},
		{State: "TX", RankEigenvector: 2, RankOutDegree: 3, GDPRank: 2, HasGDP: true},
		{State: "NY", RankEigenvector: 3, RankOutDegree: 2, GDPRank: 3, HasGDP: true},
		{State: "FL", RankEigenvector: 4, RankOutDegree: 1, GDPRank: 4, HasGDP: true},
		{State: RestOfWorld, RankEigenvector: 5, RankOutDegree: 5}, // no GDP, skipped
	}
	table := NewNodeTable(rows)

	rho, n := GDPRankCorrelation(table, MeasureEigenvector)
	assert.Equal(t, 4, n)
	assert.InDelta(t, 1.0, rho, 1e-9)

	// Out-degree rank is the exact reverse: rho must be -1.
	rho, _ = GDPRankCorrelation(table, MeasureOutDegree)
	assert.InDelta(t, -1.0, rho, 1e-9)
}

func TestGDPRankCorrelation_TooFewRows(t *testing.T) {
	table := NewNodeTable([]CentralityRow{
		{State: "CA", RankEigenvector: 1, GDPRank: 1, HasGDP: true},
	})
	rho, n := GDPRankCorrelation(table, MeasureEigenvector)
	assert.Equal(t, 1, n)
	assert.Zero(t, rho)
}

func TestSummarizeWeights(t *testing.T) {
	edges := []EdgeRow{
		{Weight: 10},
		{Weight: 20},
		{Weight: 30},
		{Weight: 40},
	}

	s, err := SummarizeWeights(edges)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, s.Total, 1e-9)
	assert.InDelta(t, 25.0, s.Mean, 1e-9)
	assert.InDelta(t, 25.0, s.Median, 1e-9)
	assert.InDelta(t, 40.0, s.Max, 1e-9)
	assert.False(t, math.IsNaN(s.P90))
}

func TestSummarizeWeights_Empty(t *testing.T) {
	s, err := SummarizeWeights(nil)
	require.NoError(t, err)
	assert.Zero(t, s.Total)
}
