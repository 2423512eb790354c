package graphstore

import (
	"math"
	"sort"

	"github.com/dominikbraun/graph"

	"tradenet/domain/network"
)

// TradeGraph holds the aggregate trade network as a weighted directed graph
// plus the float-valued edge list the graph's integer weights are derived
// from. Built once at startup, read-only afterwards.
type TradeGraph struct {
	g     graph.Graph[int, int]
	nodes *network.NodeTable
	edges []network.EdgeRow

	outByState map[string][]int // indexes into edges
	inByState  map[string][]int

	stats network.NetworkStats
}

// New builds the trade graph from the aggregate node and edge tables.
func New(nodes *network.NodeTable, edges []network.EdgeRow) (*TradeGraph, error) {
	g := graph.New(graph.IntHash, graph.Directed(), graph.Weighted())

	for _, n := range nodes.Rows {
		if err := g.AddVertex(n.StateID); err != nil {
			return nil, err
		}
	}
	for _, e := range edges {
		// dominikbraun/graph carries integer weights; trade values are
		// whole dollars so the truncation is lossless for ordering.
		if err := g.AddEdge(e.SourceID, e.TargetID, graph.EdgeWeight(int(e.Weight))); err != nil {
			return nil, err
		}
	}

	t := &TradeGraph{
		g:          g,
		nodes:      nodes,
		edges:      edges,
		outByState: make(map[string][]int),
		inByState:  make(map[string][]int),
	}
	for i, e := range edges {
		t.outByState[e.Source] = append(t.outByState[e.Source], i)
		t.inByState[e.Target] = append(t.inByState[e.Target], i)
	}

	if err := t.computeStats(); err != nil {
		return nil, err
	}
	return t, nil
}

// TopEdges returns the n heaviest edges by weight.
func (t *TradeGraph) TopEdges(n int) []network.EdgeRow {
	sorted := make([]network.EdgeRow, len(t.edges))
	copy(sorted, t.edges)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].Weight > sorted[b].Weight
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// IncidentEdges returns every edge touching a region.
func (t *TradeGraph) IncidentEdges(state string) []network.EdgeRow {
	var out []network.EdgeRow
	for _, i := range t.outByState[state] {
		out = append(out, t.edges[i])
	}
	for _, i := range t.inByState[state] {
		out = append(out, t.edges[i])
	}
	return out
}

// FlowTotals returns a region's total outbound and inbound trade value.
func (t *TradeGraph) FlowTotals(state string) (outbound, inbound float64) {
	for _, i := range t.outByState[state] {
		outbound += t.edges[i].Weight
	}
	for _, i := range t.inByState[state] {
		inbound += t.edges[i].Weight
	}
	return outbound, inbound
}

// TopPartners returns a region's n largest trading partners by flow value.
func (t *TradeGraph) TopPartners(state string, n int) []network.Partner {
	var partners []network.Partner
	for _, i := range t.outByState[state] {
		partners = append(partners, network.Partner{
			State: t.edges[i].Target, Value: t.edges[i].Weight, Direction: "out",
		})
	}
	for _, i := range t.inByState[state] {
		partners = append(partners, network.Partner{
			State: t.edges[i].Source, Value: t.edges[i].Weight, Direction: "in",
		})
	}
	sort.SliceStable(partners, func(a, b int) bool {
		return partners[a].Value > partners[b].Value
	})
	if n < len(partners) {
		partners = partners[:n]
	}
	return partners
}

// Stats returns whole-network summary figures.
func (t *TradeGraph) Stats() network.NetworkStats {
	return t.stats
}

func (t *TradeGraph) computeStats() error {
	order, err := t.g.Order()
	if err != nil {
		return err
	}
	size, err := t.g.Size()
	if err != nil {
		return err
	}
	adjacency, err := t.g.AdjacencyMap()
	if err != nil {
		return err
	}

	t.stats = network.NetworkStats{
		Nodes:       order,
		Edges:       size,
		Density:     density(order, size),
		Reciprocity: reciprocity(adjacency),
		Clustering:  averageClustering(adjacency),
	}
	return nil
}

func density(order, size int) float64 {
	if order < 2 {
		return 0
	}
	return float64(size) / float64(order*(order-1))
}

// reciprocity is the fraction of directed edges whose reverse edge exists.
func reciprocity(adj map[int]map[int]graph.Edge[int]) float64 {
	total, mutual := 0, 0
	for u, nbrs := range adj {
		for v := range nbrs {
			total++
			if _, ok := adj[v][u]; ok {
				mutual++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(mutual) / float64(total)
}

// averageClustering computes the mean weighted local clustering coefficient
// on the undirected projection, with weights rescaled by the network maximum
// (Onnela's geometric-mean formulation).
func averageClustering(adj map[int]map[int]graph.Edge[int]) float64 {
	und := make(map[int]map[int]float64)
	maxW := 0.0
	link := func(u, v int, w float64) {
		if und[u] == nil {
			und[u] = make(map[int]float64)
		}
		if w > und[u][v] {
			und[u][v] = w
		}
	}
	for u, nbrs := range adj {
		if und[u] == nil {
			und[u] = make(map[int]float64)
		}
		for v, e := range nbrs {
			w := float64(e.Properties.Weight)
			link(u, v, w)
			link(v, u, w)
			if w > maxW {
				maxW = w
			}
		}
	}
	if maxW == 0 {
		return 0
	}

	var sum float64
	var count int
	for _, nbrs := range und {
		count++
		k := len(nbrs)
		if k < 2 {
			continue
		}

		neighbors := make([]int, 0, k)
		for v := range nbrs {
			neighbors = append(neighbors, v)
		}

		var local float64
		for i := 0; i < len(neighbors); i++ {
			for j := i + 1; j < len(neighbors); j++ {
				v, w := neighbors[i], neighbors[j]
				wvw, ok := und[v][w]
				if !ok {
					continue
				}
				product := (nbrs[v] / maxW) * (nbrs[w] / maxW) * (wvw / maxW)
				local += 2 * math.Cbrt(product)
			}
		}
		sum += local / float64(k*(k-1))
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
