package network

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// Divergence compares a region's GDP rank against one of its centrality
// ranks. Diff > 0 means the region outperforms its GDP rank in the trade
// network.
type Divergence struct {
	Diff   int    `json:"diff"`
	Symbol string `json:"symbol"`
	Tier   string `json:"tier"`
}

// Divergence tiers, keyed off the same ±5 / ±10 cutoffs the rankings table
// uses for cell shading.
const (
	TierStrongUp   = "strong_up"
	TierUp         = "up"
	TierFlat       = "flat"
	TierDown       = "down"
	TierStrongDown = "strong_down"
)

// DivergenceFor classifies gdpRank against centralityRank.
func DivergenceFor(gdpRank, centralityRank int) Divergence {
	diff := gdpRank - centralityRank
	d := Divergence{Diff: diff}
	switch {
	case diff >= 10:
		d.Tier, d.Symbol = TierStrongUp, "▲"
	case diff >= 5:
		d.Tier, d.Symbol = TierUp, "▲"
	case diff <= -10:
		d.Tier, d.Symbol = TierStrongDown, "▼"
	case diff <= -5:
		d.Tier, d.Symbol = TierDown, "▼"
	default:
		d.Tier, d.Symbol = TierFlat, "•"
	}
	return d
}

// GDPRankCorrelation computes the Spearman correlation between GDP rank and
// the centrality rank for one measure, over the rows that carry GDP data.
// Both columns are already ranks, so Pearson over them is Spearman's rho.
func GDPRankCorrelation(t *NodeTable, m Measure) (float64, int) {
	var gdp, cen []float64
	for _, r := range t.Rows {
		if !r.HasGDP {
			continue
		}
		gdp = append(gdp, float64(r.GDPRank))
		cen = append(cen, float64(r.Rank(m)))
	}
	if len(gdp) < 3 {
		return 0, len(gdp)
	}
	return stat.Correlation(gdp, cen, nil), len(gdp)
}

// WeightSummary describes the distribution of edge weights, shown in the
// expanded stats panel in analyze mode.
type WeightSummary struct {
	Total  float64 `json:"total"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P90    float64 `json:"p90"`
	Max    float64 `json:"max"`
}

// SummarizeWeights computes the weight distribution over an edge set.
func SummarizeWeights(edges []EdgeRow) (WeightSummary, error) {
	if len(edges) == 0 {
		return WeightSummary{}, nil
	}
	weights := make([]float64, len(edges))
	for i, e := range edges {
		weights[i] = e.Weight
	}

	var (
		s   WeightSummary
		err error
	)
	if s.Total, err = stats.Sum(weights); err != nil {
		return WeightSummary{}, err
	}
	if s.Mean, err = stats.Mean(weights); err != nil {
		return WeightSummary{}, err
	}
	if s.Median, err = stats.Median(weights); err != nil {
		return WeightSummary{}, err
	}
	if s.P90, err = stats.Percentile(weights, 90); err != nil {
		return WeightSummary{}, err
	}
	if s.Max, err = stats.Max(weights); err != nil {
		return WeightSummary{}, err
	}
	return s, nil
}
