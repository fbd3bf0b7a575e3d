package values

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/matzehuels/treeviz/pkg/errors"
)

// Messages surfaced verbatim to users.
const (
	msgNotArray    = "Input must be a valid array format: [1,2,3,...] or [[1,2],[3,4],...]"
	msgBadElements = "Invalid array format. Use [[1,2],[3,4],...] or [1,2,3,...]"
)

// absentWords are the bare tokens read as the null marker. Quoted, they are
// ordinary text.
var absentWords = map[string]bool{
	"null": true,
	"None": true,
	"~":    true,
}

// Parse converts bracketed text into an Array.
//
// Both JSON ([1,"a",null]) and the looser hand-typed form ([1, a, None]) are
// accepted. Every unquoted element is rewritten before decoding: absent words
// become null, numbers stay numbers, and anything else is quoted, so tokens
// such as *, & or # are plain text and an empty slot ([1,,2]) is the empty
// string. Quoted elements are passed through as written. The result is
// decoded as a YAML flow sequence.
//
// Elements may be absent, numbers, text tokens, or two-element arrays of
// scalars. "[]" yields an empty Array; deciding whether empty input is an
// error is left to the caller.
//
// All failures carry errors.ErrCodeInvalidInput.
func Parse(input string) (Array, error) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "[") || !strings.HasSuffix(input, "]") {
		return nil, errors.New(errors.ErrCodeInvalidInput, msgNotArray)
	}
	if strings.TrimSpace(input[1:len(input)-1]) == "" {
		return Array{}, nil
	}

	var raw []any
	if err := yaml.Unmarshal([]byte(quoteBare(input)), &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, msgBadElements)
	}

	out := make(Array, len(raw))
	for i, item := range raw {
		v, err := fromAny(item)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "element %d", i)
		}
		out[i] = v
	}
	return out, nil
}

// quoteBare rewrites the unquoted elements of a bracketed list so the decoder
// reads them literally. Brackets, commas and quoted elements are copied as-is.
func quoteBare(input string) string {
	var b strings.Builder
	b.Grow(len(input) + 16)

	// expect is set after '[' or ',' until an element is written.
	expect := false
	var prev byte
	for i := 0; i < len(input); {
		c := input[i]
		switch {
		case c == '[':
			b.WriteByte(c)
			expect, prev = true, c
			i++
		case c == ',' || c == ']':
			if expect && !(c == ']' && prev == '[') {
				b.WriteString(`""`)
			}
			b.WriteByte(c)
			expect, prev = c == ',', c
			i++
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			b.WriteByte(c)
			i++
		case c == '"' || c == '\'':
			end := closingQuote(input, i)
			b.WriteString(input[i:end])
			expect, prev = false, c
			i = end
		default:
			end := i
			for end < len(input) && !strings.ContainsRune("[],", rune(input[end])) {
				end++
			}
			b.WriteString(literal(strings.TrimSpace(input[i:end])))
			expect, prev = false, c
			i = end
		}
	}
	return b.String()
}

// closingQuote returns the offset just past the quote that closes the one at
// start, or len(s) when it is never closed.
func closingQuote(s string, start int) int {
	q := s[start]
	for j := start + 1; j < len(s); j++ {
		switch {
		case q == '"' && s[j] == '\\':
			j++
		case s[j] == q:
			if q == '\'' && j+1 < len(s) && s[j+1] == '\'' {
				j++
				continue
			}
			return j + 1
		}
	}
	return len(s)
}

// literal renders one bare token.
func literal(tok string) string {
	if absentWords[tok] {
		return "null"
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		num := strconv.FormatFloat(f, 'f', -1, 64)
		if len(num) > 15 && !strings.Contains(num, ".") {
			num += ".0"
		}
		return num
	}
	return strconv.Quote(tok)
}

// MustParse is like Parse but panics on error. Intended for tests and examples.
func MustParse(input string) Array {
	a, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return a
}

// fromAny converts one decoded YAML or JSON element into a Value.
func fromAny(item any) (Value, error) {
	if item == nil {
		return Null(), nil
	}
	if list, ok := item.([]any); ok {
		if len(list) != 2 {
			return Value{}, fmt.Errorf("nested arrays must have exactly 2 elements, got %d", len(list))
		}
		a, err := scalarFromAny(list[0])
		if err != nil {
			return Value{}, err
		}
		b, err := scalarFromAny(list[1])
		if err != nil {
			return Value{}, err
		}
		return PairOf(a, b), nil
	}
	s, err := scalarFromAny(item)
	if err != nil {
		return Value{}, err
	}
	return Of(s), nil
}

// scalarFromAny converts a decoded scalar. Nulls inside a pair are kept as the
// text "null" so the pair stays two scalars wide.
func scalarFromAny(item any) (Scalar, error) {
	switch x := item.(type) {
	case nil:
		return Str("null"), nil
	case string:
		return Str(x), nil
	case bool:
		return Str(fmt.Sprint(x)), nil
	case int:
		return Num(float64(x)), nil
	case int64:
		return Num(float64(x)), nil
	case uint64:
		return Num(float64(x)), nil
	case float32:
		return Num(float64(x)), nil
	case float64:
		return Num(x), nil
	default:
		return Scalar{}, fmt.Errorf("unsupported element %v (%T)", item, item)
	}
}
