package export

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/de-tools/pulse-atlas/pkg/models/domain"
	"github.com/fatih/color"
)

type TableConfig struct {
	// MaxCellWidth truncates long labels; zero disables truncation.
	MaxCellWidth int
	NoDataLabel  string
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		MaxCellWidth: 40,
		NoDataLabel:  "n/a",
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

type tableView struct {
	Header []string
	Rows   [][]string
	Widths []int
}

type personaView struct {
	Name        string
	Description string
	Size        int
	Total       int
	Share       float64
	Empty       bool
	Tables      []tableView
}

type panelView struct {
	Title   string
	Chart   string
	Caption string
	Notice  string
	Table   *tableView
	Persona *personaView
}

type actView struct {
	Title      string
	Panels     []panelView
	Conclusion string
}

const actTemplate = `
{{title .Title}}
{{range .Panels}}
=== {{.Title}} [{{.Chart}}] ===
{{if .Caption}}{{.Caption}}
{{end}}{{with .Persona}}{{template "persona" .}}{{end}}{{if .Notice}}{{notice .Notice}}
{{else}}{{with .Table}}{{template "table" .}}{{end}}{{end}}{{end}}
{{conclusion .Conclusion}}
`

const personaTemplate = `{{define "persona"}}Persona {{.Name}}: {{.Size}} of {{.Total}} respondents ({{printf "%.1f" .Share}}%)
{{if .Description}}{{.Description}}
{{end}}{{range .Tables}}{{template "table" .}}{{end}}{{end}}`

const tableTemplate = `{{define "table"}}{{separator .Widths}}
{{formatRow .Header .Widths}}
{{separator .Widths}}
{{range .Rows}}{{formatRow . $.Widths}}
{{end}}{{separator .Widths}}
{{end}}`

const actsTemplate = `{{range .}}{{printf "%-14s" .Name}} {{.Title}}
{{end}}`

func (c *Reporter) funcs() template.FuncMap {
	return template.FuncMap{
		"title":      color.New(color.Bold).SprintFunc(),
		"notice":     color.New(color.FgYellow).SprintFunc(),
		"conclusion": color.New(color.FgCyan).SprintFunc(),
		"formatRow": func(cells []string, widths []int) string {
			parts := make([]string, len(widths))
			for i, w := range widths {
				cell := ""
				if i < len(cells) {
					cell = cells[i]
				}
				parts[i] = fmt.Sprintf(" %-*s ", w, cell)
			}
			return "|" + strings.Join(parts, "|") + "|"
		},
		"separator": func(widths []int) string {
			parts := make([]string, len(widths))
			for i, w := range widths {
				parts[i] = strings.Repeat("-", w+2)
			}
			return "+" + strings.Join(parts, "+") + "+"
		},
	}
}

func (c *Reporter) execute(name string, body any, sources ...string) error {
	t := template.New(name).Funcs(c.funcs())
	for _, src := range sources {
		var err error
		t, err = t.Parse(src)
		if err != nil {
			return fmt.Errorf("failed to parse template: %w", err)
		}
	}
	return t.Execute(c.writer, body)
}

// HandleActs prints the selectable acts.
func (c *Reporter) HandleActs(acts []domain.ActInfo) error {
	return c.execute("acts", acts, actsTemplate)
}

// HandleAct prints every panel of an act as text tables followed by its conclusion.
func (c *Reporter) HandleAct(report *domain.ActReport) error {
	view := actView{
		Title:      report.Title,
		Panels:     make([]panelView, 0, len(report.Panels)),
		Conclusion: report.Conclusion,
	}
	for _, p := range report.Panels {
		panel := panelView{
			Title:   p.Title,
			Chart:   string(p.Chart),
			Caption: p.Caption,
			Notice:  p.Notice,
		}
		if p.Table != nil {
			table := c.tableView(*p.Table)
			panel.Table = &table
		}
		if p.Persona != nil {
			persona := c.personaView(*p.Persona)
			panel.Persona = &persona
		}
		view.Panels = append(view.Panels, panel)
	}

	return c.execute("act", view, actTemplate, personaTemplate, tableTemplate)
}

// HandlePersona prints a persona result on its own.
func (c *Reporter) HandlePersona(result domain.PersonaResult, notice string) error {
	persona := c.personaView(result)
	view := panelView{
		Title:   result.Name,
		Chart:   string(domain.ChartPersona),
		Persona: &persona,
	}
	if result.Empty {
		view.Notice = notice
	}

	const single = `{{template "persona" .Persona}}{{if .Notice}}{{notice .Notice}}
{{end}}`
	return c.execute("persona", view, single, personaTemplate, tableTemplate)
}

func (c *Reporter) personaView(result domain.PersonaResult) personaView {
	view := personaView{
		Name:        result.Name,
		Description: result.Description,
		Size:        result.Size,
		Total:       result.Total,
		Share:       result.Share(),
		Empty:       result.Empty,
	}
	for _, s := range result.Summaries {
		view.Tables = append(view.Tables, c.tableView(s))
	}
	return view
}

func (c *Reporter) tableView(table domain.SummaryTable) tableView {
	header := make([]string, 0, len(table.Dimensions)+2)
	header = append(header, table.Dimensions...)
	header = append(header, "Count")
	if label := metricLabel(table.Metric); label != "" {
		header = append(header, label)
	}

	view := tableView{Header: header}
	for _, r := range table.Rows {
		cells := make([]string, 0, len(header))
		for _, k := range r.Keys {
			cells = append(cells, c.truncate(k))
		}
		cells = append(cells, strconv.Itoa(r.Count))
		if table.Metric.Kind != domain.MetricCount {
			cells = append(cells, c.formatValue(table.Metric.Kind, r))
		}
		view.Rows = append(view.Rows, cells)
	}

	view.Widths = make([]int, len(header))
	for i, h := range header {
		view.Widths[i] = len(h)
	}
	for _, row := range view.Rows {
		for i, cell := range row {
			if i < len(view.Widths) && len(cell) > view.Widths[i] {
				view.Widths[i] = len(cell)
			}
		}
	}
	return view
}

func metricLabel(m domain.Metric) string {
	switch m.Kind {
	case domain.MetricMean:
		return "Mean " + m.Field
	case domain.MetricPercent:
		return "Percent"
	case domain.MetricSpread:
		return m.Field + " (min / q1 / median / q3 / max)"
	default:
		return ""
	}
}

func (c *Reporter) formatValue(kind domain.MetricKind, row domain.SummaryRow) string {
	if row.NoData {
		return c.config.NoDataLabel
	}
	switch kind {
	case domain.MetricPercent:
		return fmt.Sprintf("%.1f%%", row.Value)
	case domain.MetricSpread:
		if row.Spread == nil {
			return c.config.NoDataLabel
		}
		s := row.Spread
		return fmt.Sprintf("%g / %g / %g / %g / %g", s.Min, s.Q1, s.Median, s.Q3, s.Max)
	default:
		return fmt.Sprintf("%.2f", row.Value)
	}
}

func (c *Reporter) truncate(s string) string {
	limit := c.config.MaxCellWidth
	if limit <= 0 || len(s) <= limit {
		return s
	}
	if limit <= 3 {
		return s[:limit]
	}
	return s[:limit-3] + "..."
}
