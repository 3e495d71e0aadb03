package domain

// ChartKind hints the renderer at how a panel was meant to be drawn.
type ChartKind string

const (
	ChartPie     ChartKind = "pie"
	ChartBar     ChartKind = "bar"
	ChartBox     ChartKind = "box"
	ChartScatter ChartKind = "scatter"
	ChartPersona ChartKind = "persona"
)

// ActReport represents one narrative section ready for rendering
type ActReport struct {
	Name       string
	Title      string
	Panels     []Panel
	Conclusion string
}

// Panel holds either a Table or a Persona. Notice is set when there is nothing to draw.
type Panel struct {
	Title   string
	Chart   ChartKind
	Caption string
	Table   *SummaryTable
	Persona *PersonaResult
	Notice  string
}

// ActInfo describes an act for selection menus.
type ActInfo struct {
	Name  string
	Title string
}
