package survey

import (
	"fmt"
	"slices"
	"strings"

	"github.com/de-tools/pulse-atlas/pkg/models/domain"
	"github.com/montanaflynn/stats"
)

// Aggregator computes summary tables. The engine is the only implementation; the
// interface lets persona filtering be tested without it.
type Aggregator interface {
	Aggregate(ds *domain.Dataset, groupBy []string, metric domain.Metric) (domain.SummaryTable, error)
}

// Count counts records per group.
func Count() domain.Metric {
	return domain.Metric{Kind: domain.MetricCount}
}

// Mean averages the non-missing values of field per group.
func Mean(field string) domain.Metric {
	return domain.Metric{Kind: domain.MetricMean, Field: field}
}

// PercentOfGroup expresses each group's count as a share of its outer group.
// field is added to the grouping keys when absent. With no outer dimensions
// every grouping key except the last is used.
func PercentOfGroup(field string, outer ...string) domain.Metric {
	return domain.Metric{Kind: domain.MetricPercent, Field: field, Outer: outer}
}

// Spread computes a five-number summary of field per group.
func Spread(field string) domain.Metric {
	return domain.Metric{Kind: domain.MetricSpread, Field: field}
}

type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

func (e *Engine) Aggregate(ds *domain.Dataset, groupBy []string, metric domain.Metric) (domain.SummaryTable, error) {
	return Aggregate(ds, groupBy, metric)
}

type group struct {
	keys    []string
	outer   string
	count   int
	samples []float64
}

// Aggregate groups ds by the given dimensions and computes metric per group.
// Rows follow the first appearance of each key combination; missing values are
// grouped under domain.MissingLabel.
func Aggregate(ds *domain.Dataset, groupBy []string, metric domain.Metric) (domain.SummaryTable, error) {
	dims := slices.Clone(groupBy)
	if metric.Kind == domain.MetricPercent && metric.Field != "" && !slices.Contains(dims, metric.Field) {
		dims = append(dims, metric.Field)
	}

	table := domain.SummaryTable{Dimensions: dims, Metric: metric}

	keyCols := make([][]domain.Value, len(dims))
	for i, dim := range dims {
		col, err := ds.Column(dim)
		if err != nil {
			return domain.SummaryTable{}, fmt.Errorf("group by: %w", err)
		}
		keyCols[i] = col
	}

	var field []domain.Value
	switch metric.Kind {
	case domain.MetricCount:
	case domain.MetricMean, domain.MetricSpread:
		col, err := ds.Column(metric.Field)
		if err != nil {
			return domain.SummaryTable{}, fmt.Errorf("%s metric: %w", metric.Kind, err)
		}
		field = col
	case domain.MetricPercent:
		outer, err := outerPositions(dims, metric.Outer)
		if err != nil {
			return domain.SummaryTable{}, err
		}
		table.Metric.Outer = pick(dims, outer)
		table.Rows = percentRows(collect(ds.Len(), keyCols, nil, outer))
		return table, nil
	default:
		return domain.SummaryTable{}, fmt.Errorf("unsupported metric %q", metric.Kind)
	}

	groups := collect(ds.Len(), keyCols, field, nil)
	table.Rows = make([]domain.SummaryRow, 0, len(groups))
	for _, g := range groups {
		row := domain.SummaryRow{Keys: g.keys, Count: g.count}
		switch metric.Kind {
		case domain.MetricCount:
			row.Value = float64(g.count)
		case domain.MetricMean:
			row.Value, row.NoData = mean(g.samples)
		case domain.MetricSpread:
			row.Spread = spread(g.samples)
			row.NoData = row.Spread == nil
			if row.Spread != nil {
				row.Value = row.Spread.Median
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// collect runs the single grouping pass. When field is set, its numeric values are
// gathered per group; outer selects the key positions forming the outer group.
func collect(rows int, keyCols [][]domain.Value, field []domain.Value, outer []int) []*group {
	var groups []*group
	index := map[string]*group{}

	for r := 0; r < rows; r++ {
		keys := make([]string, len(keyCols))
		for i, col := range keyCols {
			keys[i] = col[r].Label()
		}
		id := joinKey(keys)

		g, ok := index[id]
		if !ok {
			g = &group{keys: keys, outer: joinKey(pick(keys, outer))}
			index[id] = g
			groups = append(groups, g)
		}
		g.count++

		if field != nil && field[r].HasNumber() {
			g.samples = append(g.samples, field[r].Number)
		}
	}
	return groups
}

func percentRows(groups []*group) []domain.SummaryRow {
	var order []string
	totals := map[string]int{}
	members := map[string][]*group{}
	for _, g := range groups {
		if _, seen := totals[g.outer]; !seen {
			order = append(order, g.outer)
		}
		totals[g.outer] += g.count
		members[g.outer] = append(members[g.outer], g)
	}

	rows := make([]domain.SummaryRow, 0, len(groups))
	for _, outer := range order {
		total := totals[outer]
		for _, g := range members[outer] {
			row := domain.SummaryRow{Keys: g.keys, Count: g.count}
			if total == 0 {
				row.NoData = true
			} else {
				row.Value = float64(g.count) / float64(total) * 100
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func outerPositions(dims, outer []string) ([]int, error) {
	if len(outer) == 0 {
		positions := make([]int, 0, len(dims))
		for i := 0; i < len(dims)-1; i++ {
			positions = append(positions, i)
		}
		return positions, nil
	}

	positions := make([]int, 0, len(outer))
	for _, name := range outer {
		i := slices.Index(dims, name)
		if i < 0 {
			return nil, fmt.Errorf("outer group %q is not a grouping dimension of %v", name, dims)
		}
		positions = append(positions, i)
	}
	return positions, nil
}

func mean(samples []float64) (float64, bool) {
	if len(samples) == 0 {
		return 0, true
	}
	m, err := stats.Mean(samples)
	if err != nil {
		return 0, true
	}
	return m, false
}

func spread(samples []float64) *domain.Spread {
	if len(samples) == 0 {
		return nil
	}
	minimum, _ := stats.Min(samples)
	maximum, _ := stats.Max(samples)
	median, _ := stats.Median(samples)
	if len(samples) == 1 {
		return &domain.Spread{Min: minimum, Q1: median, Median: median, Q3: median, Max: maximum}
	}
	q, err := stats.Quartile(samples)
	if err != nil {
		return nil
	}
	return &domain.Spread{Min: minimum, Q1: q.Q1, Median: median, Q3: q.Q3, Max: maximum}
}

func pick(items []string, positions []int) []string {
	out := make([]string, 0, len(positions))
	for _, p := range positions {
		out = append(out, items[p])
	}
	return out
}

func joinKey(keys []string) string {
	return strings.Join(keys, "\x1f")
}
