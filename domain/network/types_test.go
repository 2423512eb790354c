package network

import "testing"

func TestNodeTableLookups(t *testing.T) {
	table := NewNodeTable([]CentralityRow{
		{StateID: 0, State: "CA"},
		{StateID: 1, State: "TX"},
	})

	if r, ok := table.Lookup("TX"); !ok || r.StateID != 1 {
		t.Errorf("Lookup(TX) = %+v, %v", r, ok)
	}
	if r, ok := table.LookupID(0); !ok || r.State != "CA" {
		t.Errorf("LookupID(0) = %+v, %v", r, ok)
	}
	if _, ok := table.Lookup("ZZ"); ok {
		t.Error("Lookup(ZZ) succeeded")
	}
}

func TestWithoutRestOfWorld(t *testing.T) {
	table := NewNodeTable([]CentralityRow{
		{StateID: 0, State: "CA"},
		{StateID: 1, State: RestOfWorld},
		{StateID: 2, State: "TX"},
	})

	trimmed := table.WithoutRestOfWorld()
	if trimmed.Len() != 2 {
		t.Fatalf("trimmed length = %d, want 2", trimmed.Len())
	}
	if _, ok := trimmed.Lookup(RestOfWorld); ok {
		t.Error("RoW survived WithoutRestOfWorld")
	}
	if _, ok := trimmed.Lookup("TX"); !ok {
		t.Error("TX lost by WithoutRestOfWorld")
	}

	// A table without RoW is returned as-is.
	if trimmed.WithoutRestOfWorld() != trimmed {
		t.Error("RoW-free table was copied")
	}
}

func TestMeasureAndBoundaryValidation(t *testing.T) {
	for _, m := range Measures() {
		if !m.Valid() {
			t.Errorf("measure %s invalid", m)
		}
	}
	if Measure("pagerank").Valid() {
		t.Error("unknown measure accepted")
	}
	if !BoundaryDomestic.Valid() || !BoundaryWithInternational.Valid() {
		t.Error("known boundary mode rejected")
	}
	if BoundaryMode("galactic").Valid() {
		t.Error("unknown boundary mode accepted")
	}
}
