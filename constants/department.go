package constants

import (
	"strings"
)

// Department is one of the fixed operational areas of a property.
type Department string

const (
	FrontOffice    Department = "Front Office"
	FoodBeverage   Department = "Food & Beverage"
	Housekeeping   Department = "Housekeeping"
	Maintenance    Department = "Maintenance/Engineering"
	SalesMarketing Department = "Sales & Marketing"
	Finance        Department = "Finance"
	HR             Department = "HR"
)

var allDepartments = []Department{
	FrontOffice,
	FoodBeverage,
	Housekeeping,
	Maintenance,
	SalesMarketing,
	Finance,
	HR,
}

// Departments returns the fixed department set in catalog order.
func Departments() []Department {
	out := make([]Department, len(allDepartments))
	copy(out, allDepartments)
	return out
}

// DepartmentStrings returns the department names as plain strings.
func DepartmentStrings() []string {
	result := make([]string, len(allDepartments))
	for i, d := range allDepartments {
		result[i] = string(d)
	}
	return result
}

// IsDepartment reports whether s is exactly one of the known departments.
func IsDepartment(s string) bool {
	for _, d := range allDepartments {
		if string(d) == s {
			return true
		}
	}
	return false
}

// CanonicalizeDepartment maps loose user input ("front office", "F&B",
// "engineering") onto a known department. The second return is false when
// nothing matched.
func CanonicalizeDepartment(input string) (Department, bool) {
	if input == "" {
		return "", false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	// synonyms map
	synonyms := map[string]Department{
		"fo":                FrontOffice,
		"front desk":        FrontOffice,
		"reception":         FrontOffice,
		"rooms":             FrontOffice,
		"f&b":               FoodBeverage,
		"fnb":               FoodBeverage,
		"food and beverage": FoodBeverage,
		"restaurant":        FoodBeverage,
		"kitchen":           FoodBeverage,
		"hk":                Housekeeping,
		"laundry":           Housekeeping,
		"maintenance":       Maintenance,
		"engineering":       Maintenance,
		"sales":             SalesMarketing,
		"marketing":         SalesMarketing,
		"accounts":          Finance,
		"accounting":        Finance,
		"human resources":   HR,
		"personnel":         HR,
	}

	if d, ok := synonyms[normalized]; ok {
		return d, true
	}

	for _, d := range allDepartments {
		if normalized == strings.ToLower(string(d)) {
			return d, true
		}
	}

	return "", false
}
