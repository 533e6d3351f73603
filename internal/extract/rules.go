package extract

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/kofiasare/hotelmetrics/constants"
	"github.com/kofiasare/hotelmetrics/internal/common"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// MetricRule is one declarative extraction rule: a regex whose first capture
// group is the numeric value, the machine data type it produces, and the unit
// recorded in point metadata.
type MetricRule struct {
	Pattern  string `yaml:"pattern"`
	DataType string `yaml:"data_type"`
	Unit     string `yaml:"unit"`

	re *regexp.Regexp
}

// DepartmentRules holds one department's section headers (most specific
// first) and its ordered metric rules.
type DepartmentRules struct {
	Department constants.Department `yaml:"department"`
	Headers    []string             `yaml:"headers"`
	Rules      []MetricRule         `yaml:"rules"`
}

type rulesFile struct {
	Departments []DepartmentRules `yaml:"departments"`
}

// RuleSet is the loaded, compiled extraction rule table.
type RuleSet struct {
	departments []DepartmentRules
}

// LoadRules reads rule tables from path, or the embedded default when path
// is empty, and compiles every pattern.
func LoadRules(path string) (*RuleSet, error) {
	raw := defaultRulesYAML
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, common.WrapError(err, "read rules file")
		}
		raw = b
	}

	var f rulesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, common.WrapError(err, "parse rules file")
	}

	for i := range f.Departments {
		d := &f.Departments[i]
		if !constants.IsDepartment(string(d.Department)) {
			return nil, common.InvalidInputErrorf("rules reference unknown department %q", d.Department)
		}
		if len(d.Headers) == 0 {
			return nil, common.InvalidInputErrorf("department %q has no header patterns", d.Department)
		}
		for j := range d.Rules {
			r := &d.Rules[j]
			re, err := regexp.Compile(r.Pattern)
			if err != nil {
				return nil, common.WrapError(err, fmt.Sprintf("compile rule %s/%s", d.Department, r.DataType))
			}
			if re.NumSubexp() < 1 {
				return nil, common.InvalidInputErrorf("rule %s/%s has no capture group", d.Department, r.DataType)
			}
			r.re = re
		}
	}

	return &RuleSet{departments: f.Departments}, nil
}

// MustLoadDefaultRules loads the embedded rule table and panics on failure.
func MustLoadDefaultRules() *RuleSet {
	rs, err := LoadRules("")
	if err != nil {
		panic(fmt.Sprintf("embedded rules invalid: %v", err))
	}
	return rs
}

// Departments returns the rule blocks in file order.
func (rs *RuleSet) Departments() []DepartmentRules {
	return rs.departments
}

// ForDepartment returns the rule block for one department, if present.
func (rs *RuleSet) ForDepartment(d constants.Department) (DepartmentRules, bool) {
	for _, dr := range rs.departments {
		if dr.Department == d {
			return dr, true
		}
	}
	return DepartmentRules{}, false
}
