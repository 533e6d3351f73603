package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kofiasare/hotelmetrics/constants"
)

func TestLoad_EmbeddedDefault(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("loading embedded catalog: %v", err)
	}

	for _, dept := range constants.Departments() {
		if len(c.ForDepartment(dept)) == 0 {
			t.Errorf("department %q has no catalog entries", dept)
		}
	}
}

func TestCatalog_FindByMachineOrDisplayName(t *testing.T) {
	c := MustLoadDefault()

	byMachine, ok := c.Find(constants.FrontOffice, "occupancy_rate")
	if !ok {
		t.Fatal("occupancy_rate not found by machine name")
	}
	byDisplay, ok := c.Find(constants.FrontOffice, "Occupancy Rate")
	if !ok {
		t.Fatal("Occupancy Rate not found by display name")
	}
	if byMachine.Name != byDisplay.Name {
		t.Errorf("machine and display lookups disagree: %q vs %q", byMachine.Name, byDisplay.Name)
	}
	if byMachine.CalculationType != constants.CalcRatio {
		t.Errorf("occupancy_rate calculation type = %q, want ratio", byMachine.CalculationType)
	}
	if len(byMachine.RequiredInputs) != 2 {
		t.Errorf("occupancy_rate inputs = %v, want occupied/available pair", byMachine.RequiredInputs)
	}
}

func TestCatalog_CategoryOfUnknownIsOperational(t *testing.T) {
	c := MustLoadDefault()
	if got := c.CategoryOf(constants.FrontOffice, "Minibar Restock Count"); got != constants.CategoryOperational {
		t.Errorf("got %q, want operational fallback", got)
	}
}

func TestLoad_RejectsUnknownDepartment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	body := `{"departments": {"Spa": [{"name": "x", "display_name": "X", "unit": "count", "category": "operational", "calculation_type": "simple"}]}}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown department, got nil")
	}
}

func TestLoad_RejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing departments key", `{}`},
		{"entry missing name", `{"departments": {"Finance": [{"display_name": "X", "unit": "GHS", "category": "financial", "calculation_type": "simple"}]}}`},
		{"bad calculation type", `{"departments": {"Finance": [{"name": "x", "display_name": "X", "unit": "GHS", "category": "financial", "calculation_type": "weird"}]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalog.json")
			if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Fatal("expected schema validation error, got nil")
			}
		})
	}
}

func TestValidateCatalogJSON_AcceptsEmbedded(t *testing.T) {
	if err := ValidateCatalogJSON(defaultCatalogJSON); err != nil {
		t.Fatalf("embedded catalog fails its own schema: %v", err)
	}
}
