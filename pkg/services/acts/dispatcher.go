package acts

import (
	"context"
	"fmt"

	"github.com/de-tools/pulse-atlas/pkg/models/domain"
	"github.com/de-tools/pulse-atlas/pkg/services/survey"
	"github.com/rs/zerolog"
)

// Dispatcher turns an act selection into a rendered-ready report.
// It keeps no state between selections.
type Dispatcher struct {
	registry   Registry
	aggregator survey.Aggregator
	filter     *survey.Filter
}

func NewDispatcher(registry Registry, aggregator survey.Aggregator) *Dispatcher {
	if registry == nil {
		registry = NewDefaultRegistry()
	}
	if aggregator == nil {
		aggregator = survey.NewEngine()
	}
	return &Dispatcher{
		registry:   registry,
		aggregator: aggregator,
		filter:     survey.NewFilter(aggregator),
	}
}

// Acts lists the selectable acts.
func (d *Dispatcher) Acts() []domain.ActInfo {
	return d.registry.List()
}

// Run computes every panel of the named act over ds, in order.
func (d *Dispatcher) Run(ctx context.Context, ds *domain.Dataset, name string) (*domain.ActReport, error) {
	logger := zerolog.Ctx(ctx)

	act, err := d.registry.Get(name)
	if err != nil {
		return nil, err
	}

	report := &domain.ActReport{
		Name:       act.Name,
		Title:      act.Title,
		Panels:     make([]domain.Panel, 0, len(act.Panels)),
		Conclusion: act.Conclusion,
	}

	for _, spec := range act.Panels {
		panel, err := d.panel(ctx, ds, spec)
		if err != nil {
			return nil, fmt.Errorf("act %s, panel %q: %w", act.Name, spec.Title, err)
		}
		report.Panels = append(report.Panels, panel)
	}

	logger.Info().
		Str("act", act.Name).
		Int("panels", len(report.Panels)).
		Int("records", ds.Len()).
		Msg("act computed")

	return report, nil
}

// Persona runs a built-in persona on its own.
func (d *Dispatcher) Persona(ctx context.Context, ds *domain.Dataset, name string) (domain.PersonaResult, error) {
	p, err := survey.LookupPersona(name)
	if err != nil {
		return domain.PersonaResult{}, err
	}
	return d.filter.Apply(ctx, ds, p)
}

func (d *Dispatcher) panel(ctx context.Context, ds *domain.Dataset, spec PanelSpec) (domain.Panel, error) {
	panel := domain.Panel{
		Title:   spec.Title,
		Chart:   spec.Chart,
		Caption: spec.Caption,
	}

	if spec.Persona != nil {
		result, err := d.filter.Apply(ctx, ds, *spec.Persona)
		if err != nil {
			return domain.Panel{}, err
		}
		panel.Persona = &result
		if result.Empty {
			panel.Notice = NoticeNoEmployees
		}
		return panel, nil
	}

	table, err := d.aggregator.Aggregate(ds, spec.GroupBy, spec.Metric)
	if err != nil {
		return domain.Panel{}, err
	}
	panel.Table = &table
	if !table.HasData() {
		panel.Notice = NoticeNoData
	}
	return panel, nil
}
