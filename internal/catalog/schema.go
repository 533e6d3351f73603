package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/kofiasare/hotelmetrics/constants"
)

// BuildCatalogJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. Catalog override files are validated against it at load time.
func BuildCatalogJSONSchema() map[string]any {
	definition := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"name":         map[string]any{"type": "string", "minLength": 1, "pattern": `^[a-z][a-z0-9_]*$`},
			"display_name": map[string]any{"type": "string", "minLength": 1},
			"unit":         map[string]any{"type": "string"},
			"category": map[string]any{
				"type": "string",
				"enum": []string{"occupancy", "revenue", "operational", "financial", "hr", "sales"},
			},
			"calculation_type": map[string]any{
				"type": "string",
				"enum": []string{"simple", "aggregated", "ratio", "derived"},
			},
			"required_inputs": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string", "minLength": 1},
			},
		},
		"required": []string{"name", "display_name", "unit", "category", "calculation_type"},
	}

	deptProps := map[string]any{}
	for _, d := range constants.DepartmentStrings() {
		deptProps[d] = map[string]any{
			"type":  "array",
			"items": definition,
		}
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"departments": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties":           deptProps,
			},
		},
		"required": []string{"departments"},
	}
}

// ValidateCatalogJSON validates raw catalog bytes against the catalog schema.
func ValidateCatalogJSON(data []byte) error {
	b, err := json.Marshal(BuildCatalogJSONSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("catalog.schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("catalog.schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal catalog: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("catalog does not match schema: %w", err)
	}
	return nil
}
