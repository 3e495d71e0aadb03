package domain

import "strconv"

// MissingLabel is the grouping key used for values that could not be typed.
const MissingLabel = "(missing)"

type ValueKind int

const (
	// KindRaw is text straight from the source, not yet normalized.
	KindRaw ValueKind = iota
	KindNumeric
	KindCategorical
	KindMissing
)

func (k ValueKind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindCategorical:
		return "categorical"
	case KindMissing:
		return "missing"
	default:
		return "raw"
	}
}

// Value is one typed cell. Number holds the parsed number for numeric values and
// the ordinal code for categorical ones.
type Value struct {
	Kind   ValueKind
	Text   string
	Number float64
	Code   int
}

func RawValue(text string) Value {
	return Value{Kind: KindRaw, Text: text}
}

func NumericValue(text string, n float64) Value {
	return Value{Kind: KindNumeric, Text: text, Number: n}
}

func CategoricalValue(text string, code int) Value {
	return Value{Kind: KindCategorical, Text: text, Number: float64(code), Code: code}
}

func MissingValue(text string) Value {
	return Value{Kind: KindMissing, Text: text}
}

func (v Value) IsMissing() bool {
	return v.Kind == KindMissing
}

// HasNumber is true when Number carries a usable measurement or code.
func (v Value) HasNumber() bool {
	return v.Kind == KindNumeric || v.Kind == KindCategorical
}

// Label is the grouping key for the value.
func (v Value) Label() string {
	switch v.Kind {
	case KindMissing:
		return MissingLabel
	case KindNumeric:
		if v.Text != "" {
			return v.Text
		}
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	default:
		return v.Text
	}
}
