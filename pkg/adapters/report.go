package adapters

import (
	"slices"

	"github.com/de-tools/pulse-atlas/pkg/models/api"
	"github.com/de-tools/pulse-atlas/pkg/models/domain"
)

func MapDomainActInfoToAPI(infos []domain.ActInfo) []api.Act {
	acts := make([]api.Act, 0, len(infos))
	for _, info := range infos {
		acts = append(acts, api.Act{Name: info.Name, Title: info.Title})
	}
	return acts
}

func MapDomainActReportToAPI(report domain.ActReport) api.ActReport {
	panels := make([]api.Panel, 0, len(report.Panels))
	for _, p := range report.Panels {
		panel := api.Panel{
			Title:   p.Title,
			Chart:   string(p.Chart),
			Caption: p.Caption,
			Notice:  p.Notice,
		}
		if p.Table != nil {
			table := MapDomainSummaryTableToAPI(*p.Table)
			panel.Table = &table
		}
		if p.Persona != nil {
			persona := MapDomainPersonaToAPI(*p.Persona)
			panel.Persona = &persona
		}
		panels = append(panels, panel)
	}

	return api.ActReport{
		Name:       report.Name,
		Title:      report.Title,
		Panels:     panels,
		Conclusion: report.Conclusion,
	}
}

func MapDomainSummaryTableToAPI(table domain.SummaryTable) api.SummaryTable {
	rows := make([]api.SummaryRow, 0, len(table.Rows))
	for _, r := range table.Rows {
		row := api.SummaryRow{
			Keys:   slices.Clone(r.Keys),
			Count:  r.Count,
			NoData: r.NoData,
		}
		if !r.NoData {
			value := r.Value
			row.Value = &value
		}
		if r.Spread != nil {
			row.Spread = &api.Spread{
				Min:    r.Spread.Min,
				Q1:     r.Spread.Q1,
				Median: r.Spread.Median,
				Q3:     r.Spread.Q3,
				Max:    r.Spread.Max,
			}
		}
		rows = append(rows, row)
	}

	return api.SummaryTable{
		Dimensions: slices.Clone(table.Dimensions),
		Metric: api.Metric{
			Kind:  string(table.Metric.Kind),
			Field: table.Metric.Field,
			Outer: slices.Clone(table.Metric.Outer),
		},
		Rows: rows,
	}
}

func MapDomainPersonaToAPI(result domain.PersonaResult) api.Persona {
	persona := api.Persona{
		Name:        result.Name,
		Description: result.Description,
		Total:       result.Total,
		Size:        result.Size,
		Share:       result.Share(),
		Empty:       result.Empty,
	}
	for _, s := range result.Summaries {
		persona.Summaries = append(persona.Summaries, MapDomainSummaryTableToAPI(s))
	}
	return persona
}
