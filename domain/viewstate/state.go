package viewstate

import (
	"fmt"

	"tradenet/domain/commodity"
	"tradenet/domain/network"
)

// Theme is the dashboard color scheme.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool { return t == ThemeDark || t == ThemeLight }

// Mode is the top-level dashboard mode. Explore is the default map-first
// view; analyze unlocks the filtration slider, divergence panels, and
// expanded stats.
type Mode string

const (
	ModeExplore Mode = "explore"
	ModeAnalyze Mode = "analyze"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool { return m == ModeExplore || m == ModeAnalyze }

// DefaultEdgeCount is the initial top-N edge overlay size.
const DefaultEdgeCount = 60

// State holds one session's view selections. All fields are plain
// assignments driven by control endpoints; the only coupling is that
// FiltrationThreshold is only rendered in analyze mode.
type State struct {
	ID string `json:"id"`

	Boundary  network.BoundaryMode `json:"boundary_mode"`
	Measure   network.Measure      `json:"measure"`
	Commodity string               `json:"commodity_code"`
	Theme     Theme                `json:"theme"`
	Mode      Mode                 `json:"mode"`

	// FiltrationThreshold is the analyze-mode stability cutoff in [0,1].
	FiltrationThreshold float64 `json:"filtration_threshold"`

	// SelectedState is the region picked on the map or rankings table,
	// empty when nothing is selected.
	SelectedState string `json:"selected_state"`

	ShowEdges bool `json:"show_edges"`
	EdgeCount int  `json:"edge_count"`
}

// New returns a session state with the dashboard's initial selections.
func New(id string) *State {
	return &State{
		ID:        id,
		Boundary:  network.BoundaryDomestic,
		Measure:   network.MeasureEigenvector,
		Commodity: commodity.CodeAll,
		Theme:     ThemeDark,
		Mode:      ModeExplore,
		EdgeCount: DefaultEdgeCount,
	}
}

// SetMode switches between explore and analyze.
func (s *State) SetMode(m Mode) error {
	if !m.Valid() {
		return fmt.Errorf("invalid mode %q", m)
	}
	s.Mode = m
	return nil
}

// SetBoundary switches the network boundary. Domestic mode has no second
// table to compare against, so rank-change arrows are suppressed downstream
// and the Rest-of-World node hidden; no state beyond the field changes here.
func (s *State) SetBoundary(b network.BoundaryMode) error {
	if !b.Valid() {
		return fmt.Errorf("invalid boundary mode %q", b)
	}
	s.Boundary = b
	return nil
}

// SetMeasure switches the active centrality measure.
func (s *State) SetMeasure(m network.Measure) error {
	if !m.Valid() {
		return fmt.Errorf("invalid measure %q", m)
	}
	s.Measure = m
	return nil
}

// SetTheme switches the color scheme.
func (s *State) SetTheme(t Theme) error {
	if !t.Valid() {
		return fmt.Errorf("invalid theme %q", t)
	}
	s.Theme = t
	return nil
}

// SetCommodity records a commodity selection that the caller has already
// validated against the catalog. Invalid codes must be rejected before this
// point so the previous valid filter stays active.
func (s *State) SetCommodity(code string) {
	s.Commodity = code
}

// SetFiltrationThreshold stores the analyze-mode slider value. The value is
// accepted in any mode but only rendered in analyze.
func (s *State) SetFiltrationThreshold(v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("filtration threshold %v outside [0,1]", v)
	}
	s.FiltrationThreshold = v
	return nil
}

// ThresholdLabel returns the filtration band for the stored slider value.
func (s *State) ThresholdLabel() network.ThresholdLabel {
	return network.ThresholdForValue(s.FiltrationThreshold)
}

// ToggleSelect selects a region, or clears the selection when the same
// region is picked twice (matching the map's click behavior).
func (s *State) ToggleSelect(state string) {
	if s.SelectedState == state {
		s.SelectedState = ""
		return
	}
	s.SelectedState = state
}

// ClearSelection drops the selected region.
func (s *State) ClearSelection() {
	s.SelectedState = ""
}

// SetEdgeOverlay updates the edge overlay toggle and top-N size.
func (s *State) SetEdgeOverlay(show bool, count int) error {
	if count < 0 {
		return fmt.Errorf("edge count %d must be non-negative", count)
	}
	s.ShowEdges = show
	if count > 0 {
		s.EdgeCount = count
	}
	return nil
}
