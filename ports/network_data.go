package ports

import (
	"tradenet/domain/network"
)

// NetworkData exposes the immutable reference tables loaded at startup.
// Implementations must be safe for concurrent readers; nothing behind this
// interface is written after the load completes.
type NetworkData interface {
	// Nodes returns the centrality table for a boundary mode (51 or 52 nodes).
	Nodes(mode network.BoundaryMode) *network.NodeTable

	// Edges returns the aggregate (all-commodity) edge table.
	Edges() []network.EdgeRow

	// RankChanges returns the derived 51-vs-52 rank-change table.
	RankChanges() *network.RankChangeTable

	// CommodityNodes returns the precomputed per-commodity centrality table
	// for an individual or group code.
	CommodityNodes(code string) (*network.NodeTable, bool)

	// CommodityEdges returns the prematerialized edge-row set for an
	// individual or group code.
	CommodityEdges(code string) ([]network.EdgeRow, bool)

	// Filtration returns the node table for one filtration threshold band.
	Filtration(label network.ThresholdLabel) (*network.NodeTable, bool)
}

// TradeNetwork answers topology questions about the aggregate trade graph.
type TradeNetwork interface {
	// TopEdges returns the n heaviest edges, for the default map overlay.
	TopEdges(n int) []network.EdgeRow

	// IncidentEdges returns every edge touching a region.
	IncidentEdges(state string) []network.EdgeRow

	// FlowTotals returns a region's total outbound and inbound trade value.
	FlowTotals(state string) (outbound, inbound float64)

	// TopPartners returns a region's n largest trading partners by value.
	TopPartners(state string, n int) []network.Partner

	// Stats returns whole-network summary figures.
	Stats() network.NetworkStats
}
