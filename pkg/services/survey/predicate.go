package survey

import (
	"fmt"
	"strings"

	"github.com/de-tools/pulse-atlas/pkg/models/domain"
	"github.com/montanaflynn/stats"
)

// Matcher reports whether a row of the bound dataset satisfies a predicate.
type Matcher func(row int) bool

// Predicate is a condition over survey rows. Bind resolves dataset-derived
// thresholds; it is called on every evaluation so thresholds are never stale.
type Predicate interface {
	Bind(ds *domain.Dataset) (Matcher, error)
	String() string
}

// Threshold is a number compared against by Compare.
type Threshold interface {
	// Resolve returns false when ds holds no value to derive the threshold from.
	Resolve(ds *domain.Dataset) (float64, bool, error)
	String() string
}

type Op string

const (
	OpGT Op = ">"
	OpGE Op = ">="
	OpLT Op = "<"
	OpLE Op = "<="
	OpEQ Op = "=="
)

func (o Op) apply(a, b float64) bool {
	switch o {
	case OpGT:
		return a > b
	case OpGE:
		return a >= b
	case OpLT:
		return a < b
	case OpLE:
		return a <= b
	case OpEQ:
		return a == b
	}
	return false
}

type textPredicate struct {
	field string
	text  string
	exact bool
}

// Contains matches rows whose field label contains substr, ignoring case.
func Contains(field, substr string) Predicate {
	return textPredicate{field: field, text: strings.ToLower(substr)}
}

// Equals matches rows whose field label equals text, ignoring case.
func Equals(field, text string) Predicate {
	return textPredicate{field: field, text: strings.ToLower(text), exact: true}
}

func (p textPredicate) Bind(ds *domain.Dataset) (Matcher, error) {
	col, err := ds.Column(p.field)
	if err != nil {
		return nil, err
	}
	return func(row int) bool {
		v := col[row]
		if v.IsMissing() {
			return false
		}
		label := strings.ToLower(v.Text)
		if p.exact {
			return label == p.text
		}
		return strings.Contains(label, p.text)
	}, nil
}

func (p textPredicate) String() string {
	if p.exact {
		return fmt.Sprintf("%s equals %q", p.field, p.text)
	}
	return fmt.Sprintf("%s contains %q", p.field, p.text)
}

type comparePredicate struct {
	field     string
	op        Op
	threshold Threshold
}

// Compare matches rows whose numeric field value satisfies op against threshold.
// Missing values never match.
func Compare(field string, op Op, threshold Threshold) Predicate {
	return comparePredicate{field: field, op: op, threshold: threshold}
}

func (p comparePredicate) Bind(ds *domain.Dataset) (Matcher, error) {
	col, err := ds.Column(p.field)
	if err != nil {
		return nil, err
	}
	limit, ok, err := p.threshold.Resolve(ds)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", p.threshold, err)
	}
	if !ok {
		return func(int) bool { return false }, nil
	}
	return func(row int) bool {
		v := col[row]
		return v.HasNumber() && p.op.apply(v.Number, limit)
	}, nil
}

func (p comparePredicate) String() string {
	return fmt.Sprintf("%s %s %s", p.field, p.op, p.threshold)
}

type junction struct {
	any   bool
	parts []Predicate
}

// All matches rows satisfying every predicate. All() matches every row.
func All(preds ...Predicate) Predicate {
	return junction{parts: preds}
}

// Any matches rows satisfying at least one predicate. Any() matches nothing.
func Any(preds ...Predicate) Predicate {
	return junction{any: true, parts: preds}
}

func (j junction) Bind(ds *domain.Dataset) (Matcher, error) {
	matchers := make([]Matcher, 0, len(j.parts))
	for _, p := range j.parts {
		m, err := p.Bind(ds)
		if err != nil {
			return nil, err
		}
		matchers = append(matchers, m)
	}
	if j.any {
		return func(row int) bool {
			for _, m := range matchers {
				if m(row) {
					return true
				}
			}
			return false
		}, nil
	}
	return func(row int) bool {
		for _, m := range matchers {
			if !m(row) {
				return false
			}
		}
		return true
	}, nil
}

func (j junction) String() string {
	sep := " AND "
	if j.any {
		sep = " OR "
	}
	parts := make([]string, 0, len(j.parts))
	for _, p := range j.parts {
		s := p.String()
		if _, nested := p.(junction); nested {
			s = "(" + s + ")"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, sep)
}

type fixed float64

// Fixed is a constant threshold.
func Fixed(v float64) Threshold {
	return fixed(v)
}

func (f fixed) Resolve(*domain.Dataset) (float64, bool, error) {
	return float64(f), true, nil
}

func (f fixed) String() string {
	return fmt.Sprintf("%g", float64(f))
}

type derived struct {
	name  string
	field string
	fn    func(stats.Float64Data) (float64, error)
}

// MedianOf is the median of the non-missing values of field.
func MedianOf(field string) Threshold {
	return derived{name: "median", field: field, fn: stats.Median}
}

// MaxOf is the largest non-missing value of field.
func MaxOf(field string) Threshold {
	return derived{name: "max", field: field, fn: stats.Max}
}

func (d derived) Resolve(ds *domain.Dataset) (float64, bool, error) {
	col, err := ds.Column(d.field)
	if err != nil {
		return 0, false, err
	}
	samples := numbers(col)
	if len(samples) == 0 {
		return 0, false, nil
	}
	v, err := d.fn(samples)
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

func (d derived) String() string {
	return fmt.Sprintf("%s(%s)", d.name, d.field)
}

func numbers(col []domain.Value) []float64 {
	out := make([]float64, 0, len(col))
	for _, v := range col {
		if v.HasNumber() {
			out = append(out, v.Number)
		}
	}
	return out
}
