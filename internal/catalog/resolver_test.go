package catalog

import (
	"testing"

	"github.com/kofiasare/hotelmetrics/constants"
)

func TestResolve_ExactMatch(t *testing.T) {
	tests := []struct {
		dept  constants.Department
		label string
		want  string
	}{
		{constants.FrontOffice, "ADR", "Average Daily Rate (ADR)"},
		{constants.FrontOffice, "Occupancy", "Occupancy Rate"},
		{constants.FrontOffice, "Rooms Occupied", "Occupied Rooms"},
		{constants.FrontOffice, "Average Length of Stay", "Average Length of Stay"},
		{constants.FrontOffice, "ALOS", "Average Length of Stay"},
		{constants.FoodBeverage, "Covers", "Covers Served"},
		{constants.Finance, "Payroll", "Payroll Cost"},
		{constants.HR, "Turnover Rate", "Staff Turnover Rate"},
	}
	for _, tt := range tests {
		if got := Resolve(tt.label, tt.dept); got != tt.want {
			t.Errorf("Resolve(%q, %s) = %q, want %q", tt.label, tt.dept, got, tt.want)
		}
	}
}

func TestResolve_FuzzyFirstVariantWins(t *testing.T) {
	// "average daily rate" lists two variants; the first is canonical.
	got := Resolve("average daily rate", constants.FrontOffice)
	if got != "Average Daily Rate (ADR)" {
		t.Errorf("got %q, want first variant %q", got, "Average Daily Rate (ADR)")
	}

	// case folding and whitespace trimming apply before fuzzy lookup
	if got := Resolve("  AVERAGE Daily RATE ", constants.FrontOffice); got != "Average Daily Rate (ADR)" {
		t.Errorf("case/space folded lookup = %q", got)
	}
}

func TestResolve_LegacySnakeCaseLabels(t *testing.T) {
	tests := []struct {
		dept  constants.Department
		label string
		want  string
	}{
		{constants.FrontOffice, "occupancy_rate", "Occupancy Rate"},
		{constants.FrontOffice, "occupied_rooms", "Occupied Rooms"},
		{constants.FrontOffice, "rev_par", "RevPAR"},
		{constants.FoodBeverage, "avg_check", "Average Check"},
		{constants.Finance, "total_revenue", "Total Revenue"},
		{constants.HR, "turnover_rate", "Staff Turnover Rate"},
	}
	for _, tt := range tests {
		if got := Resolve(tt.label, tt.dept); got != tt.want {
			t.Errorf("Resolve(%q, %s) = %q, want %q", tt.label, tt.dept, got, tt.want)
		}
	}
}

func TestResolve_PassthroughForUnknown(t *testing.T) {
	got := Resolve("Minibar Restock Count", constants.FrontOffice)
	if got != "Minibar Restock Count" {
		t.Errorf("unknown label must pass through unchanged, got %q", got)
	}

	// unknown department: no tables at all, still passthrough
	if got := Resolve("anything", constants.Department("Spa")); got != "anything" {
		t.Errorf("got %q, want passthrough", got)
	}
}

func TestExactTableCoversCatalogDisplayNames(t *testing.T) {
	// every catalog display name has its own exact entry, so literal labels
	// resolve through the table rather than relying on passthrough
	for _, dept := range constants.Departments() {
		exact := exactMatches[dept]
		for _, def := range MustLoadDefault().ForDepartment(dept) {
			if exact[def.DisplayName] != def.DisplayName {
				t.Errorf("%s: exact table has no entry for %q", dept, def.DisplayName)
			}
		}
	}
}

func TestResolve_ExactBeatsFuzzy(t *testing.T) {
	// "ADR" is in both the exact table and (lowercased) the fuzzy table; the
	// exact entry must win.
	if got := Resolve("ADR", constants.FrontOffice); got != "Average Daily Rate (ADR)" {
		t.Errorf("got %q", got)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	// Resolving an already-canonical name returns it unchanged, so running
	// resolution twice cannot corrupt stored names.
	for _, dept := range constants.Departments() {
		for _, def := range MustLoadDefault().ForDepartment(dept) {
			once := Resolve(def.DisplayName, dept)
			twice := Resolve(once, dept)
			if once != twice {
				t.Errorf("%s/%s: Resolve not idempotent: %q then %q", dept, def.DisplayName, once, twice)
			}
		}
	}
}
