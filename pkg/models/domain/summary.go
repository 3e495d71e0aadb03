package domain

type MetricKind string

const (
	MetricCount   MetricKind = "count"
	MetricMean    MetricKind = "mean"
	MetricPercent MetricKind = "percent"
	MetricSpread  MetricKind = "spread"
)

// Metric describes what an aggregation computes per group.
// Field is unused for counts. Outer is only meaningful for percentages.
type Metric struct {
	Kind  MetricKind
	Field string
	Outer []string
}

// Spread is a five-number summary of a group.
type Spread struct {
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// SummaryRow is one group of a SummaryTable. Keys follow SummaryTable.Dimensions.
// NoData marks groups whose metric could not be computed; Value is zero then.
type SummaryRow struct {
	Keys   []string
	Count  int
	Value  float64
	NoData bool
	Spread *Spread
}

type SummaryTable struct {
	Dimensions []string
	Metric     Metric
	Rows       []SummaryRow
}

func (t SummaryTable) Empty() bool {
	return len(t.Rows) == 0
}

// HasData reports whether at least one row carries a computed value.
func (t SummaryTable) HasData() bool {
	for _, row := range t.Rows {
		if !row.NoData {
			return true
		}
	}
	return false
}

// Total is the number of records covered by the table.
func (t SummaryTable) Total() int {
	total := 0
	for _, row := range t.Rows {
		total += row.Count
	}
	return total
}

// Lookup returns the row with exactly the given keys.
func (t SummaryTable) Lookup(keys ...string) (SummaryRow, bool) {
	for _, row := range t.Rows {
		if len(row.Keys) != len(keys) {
			continue
		}
		match := true
		for i := range keys {
			if row.Keys[i] != keys[i] {
				match = false
				break
			}
		}
		if match {
			return row, true
		}
	}
	return SummaryRow{}, false
}

// PersonaResult is the subset of a dataset matching a persona predicate.
// Summaries is nil when Empty is true.
type PersonaResult struct {
	Name        string
	Description string
	Total       int
	Size        int
	Rows        []int
	Subset      *Dataset
	Summaries   []SummaryTable
	Empty       bool
}

// Share is the percentage of the dataset matched by the persona.
func (p PersonaResult) Share() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Size) / float64(p.Total) * 100
}
