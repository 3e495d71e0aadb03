package survey

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/de-tools/pulse-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Normalize types every column of ds according to domain.SurveySchema.
// Values that are already typed are kept as they are, so normalizing twice is a no-op.
func Normalize(ctx context.Context, ds *domain.Dataset) (*domain.Dataset, error) {
	logger := zerolog.Ctx(ctx)
	out := ds

	for _, name := range ds.Columns() {
		col, err := ds.Column(name)
		if err != nil {
			return nil, err
		}
		if !hasRaw(col) {
			continue
		}

		class := domain.ClassOf(name)
		typed := NormalizeColumn(col, class)

		out, err = out.WithColumn(name, typed)
		if err != nil {
			return nil, err
		}

		missing := countMissing(typed)
		if missing > 0 {
			logger.Debug().
				Str("column", name).
				Str("class", class.String()).
				Int("missing", missing).
				Msg("column normalized with missing values")
		}
	}
	return out, nil
}

// NormalizeColumn types the raw values of one column.
//
// Numeric columns parse each value and mark failures missing. Ordinal columns are
// numeric when every non-blank raw value parses; otherwise they are coded like
// categorical columns. Categorical codes start at 1 in first-seen order, continuing
// after any codes already present in the column.
func NormalizeColumn(col []domain.Value, class domain.ColumnClass) []domain.Value {
	if class == domain.ClassOrdinal {
		class = domain.ClassCategorical
		if allNumeric(col) {
			class = domain.ClassNumeric
		}
	}

	out := make([]domain.Value, len(col))
	switch class {
	case domain.ClassNumeric:
		for i, v := range col {
			out[i] = toNumeric(v)
		}
	default:
		codes := existingCodes(col)
		for i, v := range col {
			out[i] = toCategorical(v, codes)
		}
	}
	return out
}

func toNumeric(v domain.Value) domain.Value {
	if v.Kind != domain.KindRaw {
		return v
	}
	text := strings.TrimSpace(v.Text)
	if text == "" {
		return domain.MissingValue(v.Text)
	}
	n, ok := parseNumber(text)
	if !ok {
		return domain.MissingValue(v.Text)
	}
	return domain.NumericValue(text, n)
}

func toCategorical(v domain.Value, codes map[string]int) domain.Value {
	if v.Kind != domain.KindRaw {
		return v
	}
	text := strings.TrimSpace(v.Text)
	if text == "" {
		return domain.MissingValue(v.Text)
	}
	code, ok := codes[text]
	if !ok {
		code = len(codes) + 1
		codes[text] = code
	}
	return domain.CategoricalValue(text, code)
}

func existingCodes(col []domain.Value) map[string]int {
	codes := map[string]int{}
	for _, v := range col {
		if v.Kind == domain.KindCategorical {
			codes[v.Text] = v.Code
		}
	}
	return codes
}

func allNumeric(col []domain.Value) bool {
	for _, v := range col {
		switch v.Kind {
		case domain.KindCategorical:
			return false
		case domain.KindRaw:
			text := strings.TrimSpace(v.Text)
			if text == "" {
				continue
			}
			if _, ok := parseNumber(text); !ok {
				return false
			}
		}
	}
	return true
}

func parseNumber(text string) (float64, bool) {
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	// NaN and Inf are not measurements
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func hasRaw(col []domain.Value) bool {
	for _, v := range col {
		if v.Kind == domain.KindRaw {
			return true
		}
	}
	return false
}

func countMissing(col []domain.Value) int {
	n := 0
	for _, v := range col {
		if v.IsMissing() {
			n++
		}
	}
	return n
}
