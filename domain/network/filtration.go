package network

import "sort"

// ThresholdLabel keys the precomputed filtration-results table. The offline
// pipeline publishes the full network plus three progressively stricter
// weight-stability cutoffs.
type ThresholdLabel string

const (
	ThresholdFull ThresholdLabel = "full_network"
	Threshold1    ThresholdLabel = "threshold_1"
	Threshold2    ThresholdLabel = "threshold_2"
	Threshold3    ThresholdLabel = "threshold_3"
)

// ThresholdLabels returns the labels from loosest to strictest.
func ThresholdLabels() []ThresholdLabel {
	return []ThresholdLabel{ThresholdFull, Threshold1, Threshold2, Threshold3}
}

// ThresholdForValue quantizes the slider value in [0,1] onto the discrete
// labels the filtration table is keyed by. Values outside the range clamp to
// the nearest band.
func ThresholdForValue(v float64) ThresholdLabel {
	switch {
	case v < 0.25:
		return ThresholdFull
	case v < 0.5:
		return Threshold1
	case v < 0.75:
		return Threshold2
	default:
		return Threshold3
	}
}

// CompetitionRanks ranks scores descending with ties sharing the minimum
// rank (1,2,2,4 style), matching how the offline pipeline ranks the
// filtration snapshots. The returned slice is positional: ranks[i] is the
// rank of scores[i].
func CompetitionRanks(scores []float64) []int {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})

	ranks := make([]int, len(scores))
	for pos, i := range idx {
		if pos > 0 && scores[i] == scores[idx[pos-1]] {
			ranks[i] = ranks[idx[pos-1]]
			continue
		}
		ranks[i] = pos + 1
	}
	return ranks
}

// RankFiltrationRows fills in the rank columns of a filtration snapshot from
// its raw scores. The precomputed table ships scores only; ranks are derived
// once at load.
func RankFiltrationRows(rows []CentralityRow) []CentralityRow {
	eig := make([]float64, len(rows))
	out := make([]float64, len(rows))
	btw := make([]float64, len(rows))
	for i, r := range rows {
		eig[i] = r.Eigenvector
		out[i] = r.OutDegree
		btw[i] = r.Betweenness
	}

	rEig := CompetitionRanks(eig)
	rOut := CompetitionRanks(out)
	rBtw := CompetitionRanks(btw)
	for i := range rows {
		rows[i].RankEigenvector = rEig[i]
		rows[i].RankOutDegree = rOut[i]
		rows[i].RankBetweenness = rBtw[i]
	}
	return rows
}
