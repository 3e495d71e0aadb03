package survey

import (
	"context"
	"fmt"
	"strings"

	"github.com/de-tools/pulse-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Breakdown is a summary derived from a persona's matching rows.
type Breakdown struct {
	GroupBy []string
	Metric  domain.Metric
}

// Persona is a named employee archetype.
type Persona struct {
	Name        string
	Description string
	Predicate   Predicate
	Breakdowns  []Breakdown
}

var (
	// AtRisk employees report higher productivity while stressed and sleeping poorly.
	AtRisk = Persona{
		Name:        "at-risk",
		Description: "Productivity increased while stress is high and sleep quality is poor",
		Predicate: All(
			Contains(domain.ColumnProductivityChange, "increase"),
			Contains(domain.ColumnStressLevel, "high"),
			Contains(domain.ColumnSleepQuality, "poor"),
		),
		Breakdowns: []Breakdown{
			{GroupBy: []string{domain.ColumnWorkLocation}, Metric: Count()},
			{GroupBy: []string{domain.ColumnIndustry}, Metric: Count()},
			{GroupBy: []string{domain.ColumnRegion}, Metric: Count()},
		},
	}

	// Resilient employees keep the best work-life balance despite a heavy workload.
	Resilient = Persona{
		Name:        "resilient",
		Description: "Top work-life balance while working above-median hours or meetings",
		Predicate: All(
			Compare(domain.ColumnWorkLifeBalance, OpEQ, MaxOf(domain.ColumnWorkLifeBalance)),
			Any(
				Compare(domain.ColumnHoursWorked, OpGT, MedianOf(domain.ColumnHoursWorked)),
				Compare(domain.ColumnVirtualMeetings, OpGT, MedianOf(domain.ColumnVirtualMeetings)),
			),
		),
		Breakdowns: []Breakdown{
			{GroupBy: []string{domain.ColumnWorkLocation}, Metric: Count()},
			{GroupBy: []string{domain.ColumnPhysicalActivity}, Metric: Count()},
			{GroupBy: []string{domain.ColumnWorkLocation}, Metric: Mean(domain.ColumnHoursWorked)},
		},
	}
)

// Personas returns the built-in personas.
func Personas() []Persona {
	return []Persona{AtRisk, Resilient}
}

// LookupPersona finds a built-in persona by name, ignoring case.
func LookupPersona(name string) (Persona, error) {
	for _, p := range Personas() {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Persona{}, fmt.Errorf("%w: %s", domain.ErrUnknownPersona, name)
}

type Filter struct {
	aggregator Aggregator
}

func NewFilter(aggregator Aggregator) *Filter {
	if aggregator == nil {
		aggregator = NewEngine()
	}
	return &Filter{aggregator: aggregator}
}

// Match returns the indices of the rows of ds satisfying predicate, in dataset order.
func (f *Filter) Match(ds *domain.Dataset, predicate Predicate) ([]int, error) {
	matcher, err := predicate.Bind(ds)
	if err != nil {
		return nil, err
	}
	rows := make([]int, 0)
	for r := 0; r < ds.Len(); r++ {
		if matcher(r) {
			rows = append(rows, r)
		}
	}
	return rows, nil
}

// Apply filters ds by the persona predicate and derives its breakdowns.
// An empty match yields Empty with no summaries; the aggregator is not called.
func (f *Filter) Apply(ctx context.Context, ds *domain.Dataset, persona Persona) (domain.PersonaResult, error) {
	logger := zerolog.Ctx(ctx)

	rows, err := f.Match(ds, persona.Predicate)
	if err != nil {
		return domain.PersonaResult{}, fmt.Errorf("persona %s: %w", persona.Name, err)
	}

	result := domain.PersonaResult{
		Name:        persona.Name,
		Description: persona.Description,
		Total:       ds.Len(),
		Size:        len(rows),
		Rows:        rows,
		Empty:       len(rows) == 0,
	}

	logger.Debug().
		Str("persona", persona.Name).
		Str("predicate", persona.Predicate.String()).
		Int("matched", result.Size).
		Int("total", result.Total).
		Msg("persona filtered")

	if result.Empty {
		return result, nil
	}

	result.Subset = ds.Subset(rows)
	for _, b := range persona.Breakdowns {
		table, err := f.aggregator.Aggregate(result.Subset, b.GroupBy, b.Metric)
		if err != nil {
			return domain.PersonaResult{}, fmt.Errorf("persona %s breakdown: %w", persona.Name, err)
		}
		result.Summaries = append(result.Summaries, table)
	}
	return result, nil
}
