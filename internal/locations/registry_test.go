package locations

import (
	"errors"
	"testing"
)

func testRegistry() *Registry {
	return NewRegistry(
		[]string{"Chanticlear", "McDuffs", "Willies", "Northwoods"},
		map[string]string{"006": "Chanticlear", "014": "McDuffs"},
	)
}

func TestTable(t *testing.T) {
	cases := map[Stage]string{
		StageInventory:   "inventory_games",
		StageOpen:        "open_games",
		StageClosed:      "closed_games",
		StageFinalClosed: "final_closed",
	}
	for stage, want := range cases {
		if got := Table(stage); got != want {
			t.Errorf("Table(%s) = %q, want %q", stage, got, want)
		}
	}
}

func TestRequire(t *testing.T) {
	r := testRegistry()
	if _, err := r.Require("Willies"); err != nil {
		t.Errorf("Require(Willies): %v", err)
	}
	if _, err := r.Require("Atlantis"); !errors.Is(err, ErrUnknownLocation) {
		t.Errorf("Require(Atlantis): got %v, want ErrUnknownLocation", err)
	}
	// location names are exact, not case-folded
	if _, err := r.Require("willies"); !errors.Is(err, ErrUnknownLocation) {
		t.Errorf("Require(willies): got %v, want ErrUnknownLocation", err)
	}
}

func TestLocationsOrderIsStable(t *testing.T) {
	r := testRegistry()
	want := []string{"Chanticlear", "McDuffs", "Willies", "Northwoods"}
	got := r.Locations()
	if len(got) != len(want) {
		t.Fatalf("Locations() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Locations() = %v, want %v", got, want)
		}
	}

	// mutating the returned slice must not affect the registry
	got[0] = "Mutated"
	if r.Locations()[0] != "Chanticlear" {
		t.Error("Locations() exposes internal slice")
	}
}

func TestLocationForSiteCode(t *testing.T) {
	r := testRegistry()
	if loc, ok := r.LocationForSiteCode("006"); !ok || loc != "Chanticlear" {
		t.Errorf("006 -> %q, %v", loc, ok)
	}
	if _, ok := r.LocationForSiteCode("999"); ok {
		t.Error("unmapped code must not resolve")
	}
}

func TestLast3FromSiteNo(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"55006", "006"},
		{"006", "006"},
		{"1014", "014"},
		{"55A06", ""},
		{"5x", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Last3FromSiteNo(tc.in); got != tc.want {
			t.Errorf("Last3FromSiteNo(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
