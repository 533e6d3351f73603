// Package catalog holds the fixed per-department KPI catalog and the name
// resolution tables that map loosely-labeled extracted metrics onto it.
//
// The catalog is data, not code: the default ships embedded, and deployments
// can override it with a JSON file validated against the same schema, so new
// metrics and departments are additive configuration.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/kofiasare/hotelmetrics/constants"
	"github.com/kofiasare/hotelmetrics/internal/common"
)

//go:embed catalog.json
var defaultCatalogJSON []byte

// Definition is one catalog entry. Name is the stable machine name used for
// calculation results and formula inputs; DisplayName is the canonical KPI
// name that resolution maps raw labels onto.
type Definition struct {
	Name            string                    `json:"name"`
	DisplayName     string                    `json:"display_name"`
	Unit            string                    `json:"unit"`
	Category        constants.KPICategory     `json:"category"`
	CalculationType constants.CalculationType `json:"calculation_type"`
	RequiredInputs  []string                  `json:"required_inputs,omitempty"`
}

type catalogFile struct {
	Departments map[string][]Definition `json:"departments"`
}

// Catalog is the loaded, read-only KPI catalog.
type Catalog struct {
	byDept map[constants.Department][]Definition
}

// Load reads the catalog from path, or the embedded default when path is
// empty. The file is validated against the catalog JSON schema before use.
func Load(path string) (*Catalog, error) {
	raw := defaultCatalogJSON
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, common.WrapError(err, "read catalog file")
		}
		raw = b
	}

	if err := ValidateCatalogJSON(raw); err != nil {
		return nil, common.NewAppError("CATALOG_INVALID", "catalog failed schema validation", err)
	}

	var f catalogFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, common.WrapError(err, "parse catalog file")
	}

	c := &Catalog{byDept: make(map[constants.Department][]Definition, len(f.Departments))}
	for dept, defs := range f.Departments {
		if !constants.IsDepartment(dept) {
			return nil, common.InvalidInputErrorf("catalog references unknown department %q", dept)
		}
		c.byDept[constants.Department(dept)] = defs
	}
	return c, nil
}

// MustLoadDefault loads the embedded catalog and panics on failure. The
// embedded catalog is covered by tests, so a failure here is a build defect.
func MustLoadDefault() *Catalog {
	c, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("embedded catalog invalid: %v", err))
	}
	return c
}

// ForDepartment returns the definitions registered for a department.
// Departments without entries return nil, which callers treat as "no KPIs".
func (c *Catalog) ForDepartment(d constants.Department) []Definition {
	return c.byDept[d]
}

// Find looks a definition up by machine name or canonical display name.
func (c *Catalog) Find(d constants.Department, name string) (Definition, bool) {
	for _, def := range c.byDept[d] {
		if def.Name == name || def.DisplayName == name {
			return def, true
		}
	}
	return Definition{}, false
}

// CategoryOf returns the category for a resolved KPI name, or "operational"
// when the name is not in the catalog (passthrough labels keep flowing
// through summaries without being dropped).
func (c *Catalog) CategoryOf(d constants.Department, name string) constants.KPICategory {
	if def, ok := c.Find(d, name); ok {
		return def.Category
	}
	return constants.CategoryOperational
}
