package app

import (
	"tradenet/domain/commodity"
	"tradenet/domain/core"
	"tradenet/domain/network"
	"tradenet/ports"
)

// FilterService narrows the node and edge tables to one commodity code.
type FilterService struct {
	data    ports.NetworkData
	catalog *commodity.Catalog
}

// NewFilterService creates a filter service over the loaded tables.
func NewFilterService(data ports.NetworkData, catalog *commodity.Catalog) *FilterService {
	return &FilterService{data: data, catalog: catalog}
}

// FilterByCommodity returns the node and edge tables for one commodity
// selection. "all" is the identity transform and returns the unfiltered
// full-network tables unchanged. Group codes resolve to their precomputed
// row sets; nothing is unioned at request time. An out-of-catalog code
// returns ErrUnknownCommodity and the caller must keep its previous valid
// selection active.
func (s *FilterService) FilterByCommodity(code string) (*network.NodeTable, []network.EdgeRow, error) {
	if code == commodity.CodeAll {
		return s.data.Nodes(network.BoundaryDomestic), s.data.Edges(), nil
	}
	if !s.catalog.Valid(code) {
		return nil, nil, core.NewUnknownCommodityError(code)
	}

	nodes, ok := s.data.CommodityNodes(code)
	if !ok {
		// Valid code with no precomputed rows: an empty network, not an error.
		nodes = network.NewNodeTable(nil)
	}
	edges, _ := s.data.CommodityEdges(code)
	return nodes, edges, nil
}

// Catalog returns the commodity catalog backing this service.
func (s *FilterService) Catalog() *commodity.Catalog {
	return s.catalog
}
