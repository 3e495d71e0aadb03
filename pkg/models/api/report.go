package api

type Act struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

type ActReport struct {
	Name       string  `json:"name"`
	Title      string  `json:"title"`
	Panels     []Panel `json:"panels"`
	Conclusion string  `json:"conclusion"`
}

type Panel struct {
	Title   string        `json:"title"`
	Chart   string        `json:"chart"`
	Caption string        `json:"caption"`
	Notice  string        `json:"notice,omitempty"`
	Table   *SummaryTable `json:"table,omitempty"`
	Persona *Persona      `json:"persona,omitempty"`
}

type Metric struct {
	Kind  string   `json:"kind"`
	Field string   `json:"field,omitempty"`
	Outer []string `json:"outer,omitempty"`
}

type SummaryTable struct {
	Dimensions []string     `json:"dimensions"`
	Metric     Metric       `json:"metric"`
	Rows       []SummaryRow `json:"rows"`
}

// SummaryRow carries a null value when the group has no data.
type SummaryRow struct {
	Keys   []string `json:"keys"`
	Count  int      `json:"count"`
	Value  *float64 `json:"value"`
	NoData bool     `json:"no_data,omitempty"`
	Spread *Spread  `json:"spread,omitempty"`
}

type Spread struct {
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

type Persona struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Total       int            `json:"total"`
	Size        int            `json:"size"`
	Share       float64        `json:"share_percent"`
	Empty       bool           `json:"empty"`
	Summaries   []SummaryTable `json:"summaries,omitempty"`
}

type Error struct {
	Error string `json:"error"`
}
