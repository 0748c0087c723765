package models

// Identifier column headers, in the order the input file must carry them.
const (
	ColCountryName   = "Country Name"
	ColCountryCode   = "Country Code"
	ColIndicatorName = "Indicator Name"
	ColIndicatorCode = "Indicator Code"

	// Long-form columns produced by the reshaper.
	ColYear  = "Year"
	ColValue = "Value"
)

// IdentifierColumns lists the fixed leading columns of a wide input row.
var IdentifierColumns = []string{ColCountryName, ColCountryCode, ColIndicatorName, ColIndicatorCode}

// Observation is one cleaned (country, indicator, year) measurement.
// Year and Value are always finite numbers.
type Observation struct {
	CountryName   string
	CountryCode   string
	IndicatorName string
	IndicatorCode string
	Year          float64
	Value         float64
}

// CountrySummary holds descriptive statistics of one country's observations.
type CountrySummary struct {
	Country      string
	CountryCode  string
	Observations int
	FirstYear    float64
	LastYear     float64
	Min          float64
	Max          float64
	Mean         float64
	StdDev       float64
	Latest       float64
}

// RunReport describes what a single pipeline run did.
// An empty Countries slice means nothing matched the indicator. YearColumns
// counts only numerically labelled columns, while Reshaped covers every
// column after the identifiers.
type RunReport struct {
	Indicator   string
	LoadedRows  int
	YearColumns int
	Reshaped    int
	Cleaned     int
	Matched     int
	Countries   []string
	Files       []string
	Summaries   []CountrySummary
}
