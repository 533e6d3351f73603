package catalog

import (
	"strings"

	"github.com/kofiasare/hotelmetrics/constants"
)

// Resolve maps a raw extracted metric label to the canonical catalog KPI name
// for a department. Resolution order: exact match, fuzzy match (first variant
// wins), passthrough. The function is pure and total: it always returns a
// non-empty string for non-empty input and never guesses — an unknown label
// comes back unchanged so it stays traceable.
//
// Canonicalization happens exactly once, at ingestion. Persisted items always
// hold the canonical name, so there is no read-time remapping layer; the
// legacy machine-generated labels (snake_case, abbreviations) live in the
// fuzzy tables below instead.
func Resolve(rawLabel string, department constants.Department) string {
	if exact, ok := exactMatches[department]; ok {
		if name, ok := exact[rawLabel]; ok {
			return name
		}
	}
	if fuzzy, ok := fuzzyMatches[department]; ok {
		if variants, ok := fuzzy[strings.ToLower(strings.TrimSpace(rawLabel))]; ok && len(variants) > 0 {
			// first variant is the most standard form
			return variants[0]
		}
	}
	return rawLabel
}

// exactMatches maps raw labels exactly as they appear in documents
// (case-sensitive) to canonical catalog names.
var exactMatches = map[constants.Department]map[string]string{
	constants.FrontOffice: {
		"Occupancy Rate":           "Occupancy Rate",
		"Occupancy":                "Occupancy Rate",
		"ADR":                      "Average Daily Rate (ADR)",
		"Average Daily Rate (ADR)": "Average Daily Rate (ADR)",
		"RevPAR":                   "RevPAR",
		"Room Revenue":             "Room Revenue",
		"Rooms Revenue":            "Room Revenue",
		"Occupied Rooms":           "Occupied Rooms",
		"Rooms Occupied":           "Occupied Rooms",
		"Available Rooms":          "Available Rooms",
		"Rooms Available":          "Available Rooms",
		"Arrivals":                 "Arrivals",
		"Departures":               "Departures",
		"Average Length of Stay":   "Average Length of Stay",
		"ALOS":                     "Average Length of Stay",
	},
	constants.FoodBeverage: {
		"Average Check":            "Average Check",
		"Avg Check":                "Average Check",
		"Food Revenue":             "Food Revenue",
		"Beverage Revenue":         "Beverage Revenue",
		"Covers":                   "Covers Served",
		"Covers Served":            "Covers Served",
		"Food Cost":                "Food Cost Percentage",
		"Food Cost %":              "Food Cost Percentage",
		"Food Cost Percentage":     "Food Cost Percentage",
		"Beverage Cost %":          "Beverage Cost Percentage",
		"Beverage Cost Percentage": "Beverage Cost Percentage",
		"Table Turnover":           "Table Turnover Rate",
		"Table Turnover Rate":      "Table Turnover Rate",
	},
	constants.Housekeeping: {
		"Rooms Cleaned":         "Rooms Cleaned",
		"Average Cleaning Time": "Average Cleaning Time",
		"Inspection Pass Rate":  "Inspection Pass Rate",
		"Linen Cost":            "Linen Cost",
		"Out of Order Rooms":    "Out of Order Rooms",
		"OOO Rooms":             "Out of Order Rooms",
	},
	constants.Maintenance: {
		"Work Orders Completed": "Work Orders Completed",
		"Open Work Orders":      "Open Work Orders",
		"Average Response Time": "Average Response Time",
		"Equipment Downtime":    "Equipment Downtime",
		"Energy Cost":           "Energy Cost",
		"Water Consumption":     "Water Consumption",
	},
	constants.SalesMarketing: {
		"Leads Generated":      "Leads Generated",
		"Leads":                "Leads Generated",
		"Conversion Rate":      "Conversion Rate",
		"Bookings":             "Bookings",
		"Marketing Spend":      "Marketing Spend",
		"Website Visits":       "Website Visits",
		"Direct Booking Ratio": "Direct Booking Ratio",
	},
	constants.Finance: {
		"Total Revenue":       "Total Revenue",
		"Operating Expenses":  "Operating Expenses",
		"Gross Profit Margin": "Gross Profit Margin",
		"Payroll Cost":        "Payroll Cost",
		"Payroll":             "Payroll Cost",
		"Accounts Receivable": "Accounts Receivable",
		"Accounts Payable":    "Accounts Payable",
	},
	constants.HR: {
		"Headcount":           "Headcount",
		"Staff Turnover Rate": "Staff Turnover Rate",
		"Turnover Rate":       "Staff Turnover Rate",
		"Absenteeism Rate":    "Absenteeism Rate",
		"Training Hours":      "Training Hours",
		"Open Positions":      "Open Positions",
		"Overtime Hours":      "Overtime Hours",
	},
}

// fuzzyMatches maps lowercased raw labels to an ordered list of acceptable
// catalog-name variants. The first variant is the most standard form and is
// what Resolve returns. Legacy machine-generated labels from before the
// catalog stabilized (snake_case, abbreviations) are folded in here so they
// canonicalize at ingestion like everything else.
var fuzzyMatches = map[constants.Department]map[string][]string{
	constants.FrontOffice: {
		"average daily rate":         {"Average Daily Rate (ADR)", "ADR"},
		"avg daily rate":             {"Average Daily Rate (ADR)", "ADR"},
		"daily rate":                 {"Average Daily Rate (ADR)"},
		"adr":                        {"Average Daily Rate (ADR)"},
		"avg_daily_rate":             {"Average Daily Rate (ADR)"},
		"occupancy rate":             {"Occupancy Rate"},
		"occupancy %":                {"Occupancy Rate"},
		"occupancy percentage":       {"Occupancy Rate"},
		"occupancy_rate":             {"Occupancy Rate"},
		"occ":                        {"Occupancy Rate"},
		"revenue per available room": {"RevPAR"},
		"rev par":                    {"RevPAR"},
		"rev_par":                    {"RevPAR"},
		"revpar":                     {"RevPAR"},
		"room revenue":               {"Room Revenue", "Rooms Revenue"},
		"rooms revenue":              {"Room Revenue"},
		"revenue":                    {"Room Revenue"},
		"occupied rooms":             {"Occupied Rooms"},
		"occupied_rooms":             {"Occupied Rooms"},
		"rooms sold":                 {"Occupied Rooms"},
		"available rooms":            {"Available Rooms"},
		"available_rooms":            {"Available Rooms"},
		"rooms available":            {"Available Rooms"},
		"avg length of stay":         {"Average Length of Stay"},
		"average length of stay":     {"Average Length of Stay"},
		"alos":                       {"Average Length of Stay"},
	},
	constants.FoodBeverage: {
		"average check":        {"Average Check"},
		"avg check":            {"Average Check"},
		"avg_check":            {"Average Check"},
		"check average":        {"Average Check"},
		"food revenue":         {"Food Revenue"},
		"food_revenue":         {"Food Revenue"},
		"beverage revenue":     {"Beverage Revenue"},
		"beverage_revenue":     {"Beverage Revenue"},
		"bar revenue":          {"Beverage Revenue"},
		"covers":               {"Covers Served"},
		"covers served":        {"Covers Served"},
		"guests served":        {"Covers Served"},
		"food cost":            {"Food Cost Percentage"},
		"food cost percentage": {"Food Cost Percentage"},
		"food_cost_pct":        {"Food Cost Percentage"},
		"beverage cost":        {"Beverage Cost Percentage"},
		"table turnover":       {"Table Turnover Rate"},
	},
	constants.Housekeeping: {
		"rooms cleaned":        {"Rooms Cleaned"},
		"rooms_cleaned":        {"Rooms Cleaned"},
		"cleaned rooms":        {"Rooms Cleaned"},
		"cleaning time":        {"Average Cleaning Time"},
		"avg cleaning time":    {"Average Cleaning Time"},
		"avg_cleaning_time":    {"Average Cleaning Time"},
		"inspection pass rate": {"Inspection Pass Rate"},
		"pass rate":            {"Inspection Pass Rate"},
		"linen cost":           {"Linen Cost"},
		"out of order":         {"Out of Order Rooms"},
		"ooo rooms":            {"Out of Order Rooms"},
	},
	constants.Maintenance: {
		"work orders completed": {"Work Orders Completed"},
		"completed work orders": {"Work Orders Completed"},
		"work_orders_completed": {"Work Orders Completed"},
		"open work orders":      {"Open Work Orders"},
		"pending work orders":   {"Open Work Orders"},
		"response time":         {"Average Response Time"},
		"avg response time":     {"Average Response Time"},
		"downtime":              {"Equipment Downtime"},
		"equipment downtime":    {"Equipment Downtime"},
		"energy cost":           {"Energy Cost"},
		"electricity cost":      {"Energy Cost"},
		"water consumption":     {"Water Consumption"},
		"water usage":           {"Water Consumption"},
	},
	constants.SalesMarketing: {
		"leads":                {"Leads Generated"},
		"leads generated":      {"Leads Generated"},
		"leads_generated":      {"Leads Generated"},
		"conversion rate":      {"Conversion Rate"},
		"conversion_rate":      {"Conversion Rate"},
		"conversions":          {"Conversion Rate"},
		"bookings":             {"Bookings"},
		"confirmed bookings":   {"Bookings"},
		"marketing spend":      {"Marketing Spend"},
		"ad spend":             {"Marketing Spend"},
		"website visits":       {"Website Visits"},
		"site visits":          {"Website Visits"},
		"direct booking ratio": {"Direct Booking Ratio"},
	},
	constants.Finance: {
		"total revenue":       {"Total Revenue"},
		"total_revenue":       {"Total Revenue"},
		"gross revenue":       {"Total Revenue"},
		"operating expenses":  {"Operating Expenses"},
		"opex":                {"Operating Expenses"},
		"operating_expenses":  {"Operating Expenses"},
		"gross profit margin": {"Gross Profit Margin"},
		"profit margin":       {"Gross Profit Margin"},
		"gpm":                 {"Gross Profit Margin"},
		"payroll":             {"Payroll Cost"},
		"payroll cost":        {"Payroll Cost"},
		"payroll_cost":        {"Payroll Cost"},
		"accounts receivable": {"Accounts Receivable"},
		"receivables":         {"Accounts Receivable"},
		"accounts payable":    {"Accounts Payable"},
		"payables":            {"Accounts Payable"},
	},
	constants.HR: {
		"headcount":        {"Headcount"},
		"staff count":      {"Headcount"},
		"employees":        {"Headcount"},
		"turnover":         {"Staff Turnover Rate"},
		"turnover rate":    {"Staff Turnover Rate"},
		"turnover_rate":    {"Staff Turnover Rate"},
		"staff turnover":   {"Staff Turnover Rate"},
		"absenteeism":      {"Absenteeism Rate"},
		"absenteeism rate": {"Absenteeism Rate"},
		"absenteeism_rate": {"Absenteeism Rate"},
		"training hours":   {"Training Hours"},
		"training_hours":   {"Training Hours"},
		"open positions":   {"Open Positions"},
		"vacancies":        {"Open Positions"},
		"overtime":         {"Overtime Hours"},
		"overtime hours":   {"Overtime Hours"},
	},
}
