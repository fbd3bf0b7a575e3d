// Package values defines the typed element of a level-order input array.
//
// A level-order array mixes missing slots, numbers, text tokens and two-element
// labels in one sequence. This package resolves that mix once, at the parsing
// boundary, into a closed tagged variant:
//
//   - Absent: the null marker ("no node here"), distinct from 0 and ""
//   - Scalar: a single number or text token
//   - Pair:   exactly two scalars rendered as a two-line label
//
// Everything downstream (tree construction, layout, rendering) switches on
// [Value.Kind] and never inspects dynamic types.
//
// # Parsing
//
// [Parse] accepts the bracketed text users type into the tool:
//
//	vals, err := values.Parse("[1, 2, null, [3, 4], leaf]")
//
// Values marshal to and from JSON using the same shapes (null, number, string,
// two-element array), so an [Array] round-trips through layout files and cache
// keys unchanged.
package values

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind discriminates the variants of [Value].
type Kind uint8

const (
	KindAbsent Kind = iota
	KindScalar
	KindPair
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindScalar:
		return "scalar"
	case KindPair:
		return "pair"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Scalar is a single number or text token.
type Scalar struct {
	Num   float64
	Text  string
	IsNum bool
}

// Num returns a numeric scalar.
func Num(f float64) Scalar { return Scalar{Num: f, IsNum: true} }

// Str returns a text scalar.
func Str(s string) Scalar { return Scalar{Text: s} }

// String formats the scalar for display. Numbers use the shortest decimal
// form that round-trips, switching to exponent notation only for very large
// or very small magnitudes.
func (s Scalar) String() string {
	if !s.IsNum {
		return s.Text
	}
	return formatNum(s.Num)
}

func formatNum(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Value is one element of a level-order array.
// The zero Value is absent.
type Value struct {
	kind  Kind
	first Scalar
	last  Scalar
}

// Array is an index-addressed sequence of values.
type Array []Value

// Null returns the absent value.
func Null() Value { return Value{} }

// Of returns a scalar value.
func Of(s Scalar) Value { return Value{kind: KindScalar, first: s} }

// PairOf returns a two-element value.
func PairOf(a, b Scalar) Value { return Value{kind: KindPair, first: a, last: b} }

// Kind returns which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether v is the null marker.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// IsPair reports whether v holds two scalars.
func (v Value) IsPair() bool { return v.kind == KindPair }

// Scalar returns the scalar held by v.
func (v Value) Scalar() (Scalar, bool) {
	return v.first, v.kind == KindScalar
}

// Pair returns both halves of a pair value.
func (v Value) Pair() (Scalar, Scalar, bool) {
	return v.first, v.last, v.kind == KindPair
}

// Display returns the compact node label: "null", "3", or "a,b".
func (v Value) Display() string {
	switch v.kind {
	case KindScalar:
		return v.first.String()
	case KindPair:
		return v.first.String() + "," + v.last.String()
	default:
		return "null"
	}
}

// Full returns the long form used in node info: "null", "3", or "[a, b]".
func (v Value) Full() string {
	if v.kind == KindPair {
		return "[" + v.first.String() + ", " + v.last.String() + "]"
	}
	return v.Display()
}

// String implements fmt.Stringer.
func (v Value) String() string { return v.Display() }

// refPrefix marks a text token that points back at an earlier array index.
const refPrefix = "@"

// Ref reports whether v is a back-reference token such as "@2" and returns
// the referenced index. Only graph construction interprets references.
func (v Value) Ref() (int, bool) {
	if v.kind != KindScalar || v.first.IsNum || !strings.HasPrefix(v.first.Text, refPrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(v.first.Text, refPrefix))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Equal reports whether two values hold the same variant and contents.
func (v Value) Equal(o Value) bool {
	return v.kind == o.kind && v.first == o.first && v.last == o.last
}

// MarshalJSON encodes v as null, a number, a string, or a two-element array.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindScalar:
		return marshalScalar(v.first)
	case KindPair:
		a, err := marshalScalar(v.first)
		if err != nil {
			return nil, err
		}
		b, err := marshalScalar(v.last)
		if err != nil {
			return nil, err
		}
		return []byte("[" + string(a) + "," + string(b) + "]"), nil
	default:
		return []byte("null"), nil
	}
}

func marshalScalar(s Scalar) ([]byte, error) {
	if s.IsNum {
		if math.IsInf(s.Num, 0) || math.IsNaN(s.Num) {
			return json.Marshal(formatNum(s.Num))
		}
		return json.Marshal(s.Num)
	}
	return json.Marshal(s.Text)
}

// UnmarshalJSON decodes the shapes produced by MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := fromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
