package csvdata

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"tradenet/domain/commodity"
	"tradenet/domain/core"
	"tradenet/domain/network"
)

// Reference file names, fixed by the offline pipeline that produces them.
const (
	FileCentralities51      = "centralities_51x51.csv"
	FileCentralities52      = "centralities_52x52.csv"
	FileStateCoords         = "state_coords.csv"
	FileStateGDP            = "state_gdp_2017.csv"
	FileEdges               = "edges.csv"
	FileCommodityCentrality = "commodity_centralities.csv"
	FileCommodityEdges      = "commodity_edges.csv"
	FileFiltrationResults   = "filtration_results_51x51.csv"
)

// Store holds every reference table, loaded once at startup and read-only
// afterwards. It implements ports.NetworkData.
type Store struct {
	t51         *network.NodeTable
	t52         *network.NodeTable
	edges       []network.EdgeRow
	rankChanges *network.RankChangeTable

	commodityNodes map[string]*network.NodeTable
	commodityEdges map[string][]network.EdgeRow

	filtration map[network.ThresholdLabel]*network.NodeTable
}

type coordRow struct {
	name string
	lat  float64
	lon  float64
}

type gdpRow struct {
	billions float64
	rank     int
}

// LoadNetworks reads every reference file under dir, derives the rank-change
// table, commodity indexes, and filtration snapshots, and returns the
// published Store. Any failure is fatal: the process must not serve traffic
// with partial or corrupt reference data.
func LoadNetworks(ctx context.Context, dir string, catalog *commodity.Catalog) (*Store, error) {
	var (
		raw51, raw52, rawCoords, rawGDP            *Table
		rawEdges, rawComCent, rawComEdges, rawFilt *Table
	)

	centralityCols := []string{
		"state_id", "label", "betweenness", "eigenvector", "out_degree",
		"rank_betweenness", "rank_eigenvector", "rank_out_degree",
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		raw51, err = ReadTable(filepath.Join(dir, FileCentralities51), centralityCols...)
		return err
	})
	g.Go(func() (err error) {
		raw52, err = ReadTable(filepath.Join(dir, FileCentralities52), centralityCols...)
		return err
	})
	g.Go(func() (err error) {
		rawCoords, err = ReadTable(filepath.Join(dir, FileStateCoords),
			"state_abbr", "state_name", "lat", "lon")
		return err
	})
	g.Go(func() (err error) {
		rawGDP, err = ReadTable(filepath.Join(dir, FileStateGDP),
			"state_abbrev", "gdp_2017_q4_millions")
		return err
	})
	g.Go(func() (err error) {
		rawEdges, err = ReadTable(filepath.Join(dir, FileEdges),
			"source_id", "target_id", "weight")
		return err
	})
	g.Go(func() (err error) {
		rawComCent, err = ReadTable(filepath.Join(dir, FileCommodityCentrality),
			append([]string{"sctg_code"}, centralityCols...)...)
		return err
	})
	g.Go(func() (err error) {
		rawComEdges, err = ReadTable(filepath.Join(dir, FileCommodityEdges),
			"source_id", "target_id", "weight", "sctg_code")
		return err
	})
	g.Go(func() (err error) {
		rawFilt, err = ReadTable(filepath.Join(dir, FileFiltrationResults),
			"label", "threshold_label", "betweenness", "eigenvector", "out_degree")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	coords, err := parseCoords(rawCoords)
	if err != nil {
		return nil, err
	}
	gdp, err := parseGDP(rawGDP)
	if err != nil {
		return nil, err
	}

	s := &Store{
		commodityNodes: make(map[string]*network.NodeTable),
		commodityEdges: make(map[string][]network.EdgeRow),
		filtration:     make(map[network.ThresholdLabel]*network.NodeTable),
	}

	if s.t51, err = parseCentralities(raw51, coords, gdp); err != nil {
		return nil, err
	}
	if s.t52, err = parseCentralities(raw52, coords, gdp); err != nil {
		return nil, err
	}
	// The 52-node table must be the 51-node table plus exactly one RoW row.
	if s.t52.Len() != s.t51.Len()+1 {
		return nil, core.NewRowCountError(FileCentralities52, s.t51.Len()+1, s.t52.Len())
	}
	if _, ok := s.t52.Lookup(network.RestOfWorld); !ok {
		return nil, core.NewDataLoadError(FileCentralities52,
			fmt.Errorf("missing %s row", network.RestOfWorld))
	}

	if s.edges, err = parseEdges(rawEdges, s.t52, false); err != nil {
		return nil, err
	}

	s.rankChanges = network.ComputeRankChanges(s.t51, s.t52)

	if err := s.loadCommodityCentralities(rawComCent, coords, gdp); err != nil {
		return nil, err
	}
	if err := s.loadCommodityEdges(rawComEdges, catalog); err != nil {
		return nil, err
	}
	if err := s.loadFiltration(rawFilt, coords, gdp); err != nil {
		return nil, err
	}

	log.Printf("[Loader] reference data loaded: %d+%d nodes, %d edges, %d commodity tables, %d filtration bands",
		s.t51.Len(), s.t52.Len(), len(s.edges), len(s.commodityNodes), len(s.filtration))
	return s, nil
}

func parseCoords(t *Table) (map[string]coordRow, error) {
	out := make(map[string]coordRow, len(t.Rows))
	for _, row := range t.Rows {
		abbr := t.Value(row, "state_abbr")
		lat, err := t.Float(row, "lat")
		if err != nil {
			return nil, err
		}
		lon, err := t.Float(row, "lon")
		if err != nil {
			return nil, err
		}
		out[abbr] = coordRow{name: t.Value(row, "state_name"), lat: lat, lon: lon}
	}
	return out, nil
}

func parseGDP(t *Table) (map[string]gdpRow, error) {
	abbrs := make([]string, 0, len(t.Rows))
	billions := make([]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		millions, err := t.Float(row, "gdp_2017_q4_millions")
		if err != nil {
			return nil, err
		}
		abbrs = append(abbrs, t.Value(row, "state_abbrev"))
		billions = append(billions, millions/1000)
	}

	ranks := network.CompetitionRanks(billions)
	out := make(map[string]gdpRow, len(abbrs))
	for i, abbr := range abbrs {
		out[abbr] = gdpRow{billions: billions[i], rank: ranks[i]}
	}
	return out, nil
}

func parseCentralities(t *Table, coords map[string]coordRow, gdp map[string]gdpRow) (*network.NodeTable, error) {
	rows := make([]network.CentralityRow, 0, len(t.Rows))
	for _, raw := range t.Rows {
		r, err := parseCentralityRow(t, raw, coords, gdp)
		if err != nil {
			return nil, err
		}
		rows = append(rows, r)
	}

	table := network.NewNodeTable(rows)
	if err := validateRankPermutation(t.Name, table); err != nil {
		return nil, err
	}
	return table, nil
}

func parseCentralityRow(t *Table, raw []string, coords map[string]coordRow, gdp map[string]gdpRow) (network.CentralityRow, error) {
	var (
		r   network.CentralityRow
		err error
	)
	if r.StateID, err = t.Int(raw, "state_id"); err != nil {
		return r, err
	}
	r.State = t.Value(raw, "label")
	if r.Eigenvector, err = t.Float(raw, "eigenvector"); err != nil {
		return r, err
	}
	if r.OutDegree, err = t.Float(raw, "out_degree"); err != nil {
		return r, err
	}
	if r.Betweenness, err = t.Float(raw, "betweenness"); err != nil {
		return r, err
	}
	if r.RankEigenvector, err = t.Int(raw, "rank_eigenvector"); err != nil {
		return r, err
	}
	if r.RankOutDegree, err = t.Int(raw, "rank_out_degree"); err != nil {
		return r, err
	}
	if r.RankBetweenness, err = t.Int(raw, "rank_betweenness"); err != nil {
		return r, err
	}

	// RoW has neither map coordinates nor a GDP row; that is expected.
	if c, ok := coords[r.State]; ok {
		r.StateName, r.Lat, r.Lon, r.HasCoords = c.name, c.lat, c.lon, true
	} else {
		r.StateName = r.State
	}
	if g, ok := gdp[r.State]; ok {
		r.GDPBillions, r.GDPRank, r.HasGDP = g.billions, g.rank, true
	}
	return r, nil
}

// validateRankPermutation checks that each rank column is a dense
// permutation of 1..N, the invariant the offline pipeline guarantees for
// the two boundary tables.
func validateRankPermutation(name string, table *network.NodeTable) error {
	n := table.Len()
	for _, m := range network.Measures() {
		seen := make(map[int]bool, n)
		for _, r := range table.Rows {
			rank := r.Rank(m)
			if rank < 1 || rank > n || seen[rank] {
				return core.NewDataLoadError(name,
					fmt.Errorf("measure %s: rank column is not a permutation of 1..%d", m, n))
			}
			seen[rank] = true
		}
	}
	return nil
}

func parseEdges(t *Table, nodes *network.NodeTable, withCommodity bool) ([]network.EdgeRow, error) {
	out := make([]network.EdgeRow, 0, len(t.Rows))
	for _, raw := range t.Rows {
		var (
			e   network.EdgeRow
			err error
		)
		if e.SourceID, err = t.Int(raw, "source_id"); err != nil {
			return nil, err
		}
		if e.TargetID, err = t.Int(raw, "target_id"); err != nil {
			return nil, err
		}
		if e.Weight, err = t.Float(raw, "weight"); err != nil {
			return nil, err
		}
		if e.Weight < 0 {
			return nil, core.NewDataLoadError(t.Name,
				fmt.Errorf("negative weight %v on edge %d->%d", e.Weight, e.SourceID, e.TargetID))
		}
		if withCommodity {
			e.SCTG = t.Value(raw, "sctg_code")
		}

		src, ok := nodes.LookupID(e.SourceID)
		if !ok {
			return nil, core.NewDataLoadError(t.Name,
				fmt.Errorf("unknown source node id %d", e.SourceID))
		}
		dst, ok := nodes.LookupID(e.TargetID)
		if !ok {
			return nil, core.NewDataLoadError(t.Name,
				fmt.Errorf("unknown target node id %d", e.TargetID))
		}
		e.Source, e.Target = src.State, dst.State
		out = append(out, e)
	}
	return out, nil
}

func (s *Store) loadCommodityCentralities(t *Table, coords map[string]coordRow, gdp map[string]gdpRow) error {
	grouped := make(map[string][]network.CentralityRow)
	var order []string
	for _, raw := range t.Rows {
		code := t.Value(raw, "sctg_code")
		if code == "" {
			return core.NewDataLoadError(t.Name, fmt.Errorf("row with empty sctg_code"))
		}
		r, err := parseCentralityRow(t, raw, coords, gdp)
		if err != nil {
			return err
		}
		if _, seen := grouped[code]; !seen {
			order = append(order, code)
		}
		grouped[code] = append(grouped[code], r)
	}

	for _, code := range order {
		s.commodityNodes[code] = network.NewNodeTable(grouped[code])
	}
	return nil
}

func (s *Store) loadCommodityEdges(t *Table, catalog *commodity.Catalog) error {
	edges, err := parseEdges(t, s.t52, true)
	if err != nil {
		return err
	}

	for _, e := range edges {
		entry, ok := catalog.Lookup(e.SCTG)
		if !ok || entry.Group {
			return core.NewDataLoadError(t.Name,
				fmt.Errorf("edge carries non-individual commodity code %q", e.SCTG))
		}
		s.commodityEdges[e.SCTG] = append(s.commodityEdges[e.SCTG], e)
	}

	// Group row sets are materialized once here by concatenating constituent
	// buckets. Each edge row carries exactly one individual code, so the
	// union is duplicate-free; the filter engine only does a lookup.
	for _, g := range catalog.Groups() {
		var union []network.EdgeRow
		for _, code := range g.Constituents {
			union = append(union, s.commodityEdges[code]...)
		}
		s.commodityEdges[g.Code] = union
	}
	return nil
}

func (s *Store) loadFiltration(t *Table, coords map[string]coordRow, gdp map[string]gdpRow) error {
	known := make(map[network.ThresholdLabel]bool)
	for _, l := range network.ThresholdLabels() {
		known[l] = true
	}

	grouped := make(map[network.ThresholdLabel][]network.CentralityRow)
	for _, raw := range t.Rows {
		label := network.ThresholdLabel(t.Value(raw, "threshold_label"))
		if !known[label] {
			return core.NewDataLoadError(t.Name,
				fmt.Errorf("unknown threshold label %q", label))
		}

		var (
			r   network.CentralityRow
			err error
		)
		r.State = t.Value(raw, "label")
		if r.Eigenvector, err = t.Float(raw, "eigenvector"); err != nil {
			return err
		}
		if r.OutDegree, err = t.Float(raw, "out_degree"); err != nil {
			return err
		}
		if r.Betweenness, err = t.Float(raw, "betweenness"); err != nil {
			return err
		}
		if base, ok := s.t51.Lookup(r.State); ok {
			r.StateID = base.StateID
		}
		if c, ok := coords[r.State]; ok {
			r.StateName, r.Lat, r.Lon, r.HasCoords = c.name, c.lat, c.lon, true
		} else {
			r.StateName = r.State
		}
		if g, ok := gdp[r.State]; ok {
			r.GDPBillions, r.GDPRank, r.HasGDP = g.billions, g.rank, true
		}
		grouped[label] = append(grouped[label], r)
	}

	for label, rows := range grouped {
		s.filtration[label] = network.NewNodeTable(network.RankFiltrationRows(rows))
	}
	return nil
}

// Nodes returns the centrality table for a boundary mode.
func (s *Store) Nodes(mode network.BoundaryMode) *network.NodeTable {
	if mode == network.BoundaryWithInternational {
		return s.t52
	}
	return s.t51
}

// Edges returns the aggregate edge table.
func (s *Store) Edges() []network.EdgeRow { return s.edges }

// RankChanges returns the derived rank-change table.
func (s *Store) RankChanges() *network.RankChangeTable { return s.rankChanges }

// CommodityNodes returns the per-commodity centrality table for a code.
func (s *Store) CommodityNodes(code string) (*network.NodeTable, bool) {
	t, ok := s.commodityNodes[code]
	return t, ok
}

// CommodityEdges returns the prematerialized edge set for a code.
func (s *Store) CommodityEdges(code string) ([]network.EdgeRow, bool) {
	e, ok := s.commodityEdges[code]
	return e, ok
}

// Filtration returns the node table for one threshold band.
func (s *Store) Filtration(label network.ThresholdLabel) (*network.NodeTable, bool) {
	t, ok := s.filtration[label]
	return t, ok
}
