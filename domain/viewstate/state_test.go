package viewstate

import (
	"testing"

	"tradenet/domain/commodity"
	"tradenet/domain/network"
)

func TestNewDefaults(t *testing.T) {
	st := New("abc")

	if st.Boundary != network.BoundaryDomestic {
		t.Errorf("default boundary = %s", st.Boundary)
	}
	if st.Measure != network.MeasureEigenvector {
		t.Errorf("default measure = %s", st.Measure)
	}
	if st.Commodity != commodity.CodeAll {
		t.Errorf("default commodity = %s", st.Commodity)
	}
	if st.Theme != ThemeDark || st.Mode != ModeExplore {
		t.Errorf("default theme/mode = %s/%s", st.Theme, st.Mode)
	}
	if st.SelectedState != "" {
		t.Errorf("default selection = %q", st.SelectedState)
	}
	if st.EdgeCount != DefaultEdgeCount {
		t.Errorf("default edge count = %d", st.EdgeCount)
	}
}

func TestTransitionsRejectInvalidValues(t *testing.T) {
	st := New("abc")

	if err := st.SetMode("wander"); err == nil {
		t.Error("invalid mode accepted")
	}
	if err := st.SetBoundary("galactic"); err == nil {
		t.Error("invalid boundary accepted")
	}
	if err := st.SetMeasure("pagerank"); err == nil {
		t.Error("invalid measure accepted")
	}
	if err := st.SetTheme("sepia"); err == nil {
		t.Error("invalid theme accepted")
	}
	if err := st.SetFiltrationThreshold(1.5); err == nil {
		t.Error("out-of-range threshold accepted")
	}
	if err := st.SetFiltrationThreshold(-0.1); err == nil {
		t.Error("negative threshold accepted")
	}

	// Nothing above may have modified the state.
	if st.Mode != ModeExplore || st.Boundary != network.BoundaryDomestic ||
		st.Measure != network.MeasureEigenvector || st.Theme != ThemeDark ||
		st.FiltrationThreshold != 0 {
		t.Errorf("state modified by rejected transition: %+v", st)
	}
}

func TestThresholdLabel(t *testing.T) {
	st := New("abc")
	if err := st.SetFiltrationThreshold(0.6); err != nil {
		t.Fatal(err)
	}
	if st.ThresholdLabel() != network.Threshold2 {
		t.Errorf("ThresholdLabel() = %s, want %s", st.ThresholdLabel(), network.Threshold2)
	}
}

func TestToggleSelect(t *testing.T) {
	st := New("abc")

	st.ToggleSelect("NY")
	if st.SelectedState != "NY" {
		t.Errorf("selected = %q, want NY", st.SelectedState)
	}

	// Clicking the selected state again clears the selection.
	st.ToggleSelect("NY")
	if st.SelectedState != "" {
		t.Errorf("selected = %q, want empty", st.SelectedState)
	}

	st.ToggleSelect("NY")
	st.ToggleSelect("CA")
	if st.SelectedState != "CA" {
		t.Errorf("selected = %q, want CA", st.SelectedState)
	}

	st.ClearSelection()
	if st.SelectedState != "" {
		t.Errorf("selected = %q after clear", st.SelectedState)
	}
}

func TestSetEdgeOverlay(t *testing.T) {
	st := New("abc")

	if err := st.SetEdgeOverlay(true, 25); err != nil {
		t.Fatal(err)
	}
	if !st.ShowEdges || st.EdgeCount != 25 {
		t.Errorf("overlay = %v/%d", st.ShowEdges, st.EdgeCount)
	}

	// Count 0 keeps the previous top-N size.
	if err := st.SetEdgeOverlay(false, 0); err != nil {
		t.Fatal(err)
	}
	if st.ShowEdges || st.EdgeCount != 25 {
		t.Errorf("overlay = %v/%d", st.ShowEdges, st.EdgeCount)
	}

	if err := st.SetEdgeOverlay(true, -1); err == nil {
		t.Error("negative edge count accepted")
	}
}
