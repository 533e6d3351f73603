package constants

// Source is the provenance tag attached to every extracted data point.
type Source string

// Stable values (store these exact strings in DB).
const (
	SourcePDF        Source = "pdf"
	SourceCSV        Source = "csv"
	SourceXLSX       Source = "xlsx"
	SourcePDFTable   Source = "pdf_table"
	SourceCalculated Source = "calculated"
)

// KPICategory classifies catalog entries for reporting breakdowns.
type KPICategory string

const (
	CategoryOccupancy   KPICategory = "occupancy"
	CategoryRevenue     KPICategory = "revenue"
	CategoryOperational KPICategory = "operational"
	CategoryFinancial   KPICategory = "financial"
	CategoryHR          KPICategory = "hr"
	CategorySales       KPICategory = "sales"
)

// CalculationType selects the generic formula for catalog entries without a
// bespoke one.
type CalculationType string

const (
	CalcSimple     CalculationType = "simple"     // mean of matching points
	CalcAggregated CalculationType = "aggregated" // sum of matching points
	CalcRatio      CalculationType = "ratio"
	CalcDerived    CalculationType = "derived"
)
