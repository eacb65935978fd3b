// Package coerce converts table cell text into typed values.
//
// Every function here is total: it never panics and returns nil for
// empty or whitespace-only input.
package coerce

import (
	"math"
	"strconv"
	"strings"
)

// Policy selects how a cell's text is converted.
type Policy int

const (
	// Text keeps the trimmed text.
	Text Policy = iota
	// Int parses a base-10 integer; anything else is nil.
	Int
	// Float parses a float; anything else is nil.
	Float
	// Percent strips a trailing % and parses a float; anything else is nil.
	Percent
	// Numeric tries int, then float, then falls back to the trimmed text.
	Numeric
)

func (p Policy) String() string {
	switch p {
	case Int:
		return "int"
	case Float:
		return "float"
	case Percent:
		return "percent"
	case Numeric:
		return "numeric"
	default:
		return "text"
	}
}

// Coerce converts text according to policy.
func Coerce(text string, policy Policy) any {
	switch policy {
	case Int:
		return Integer(text)
	case Float:
		return Decimal(text)
	case Percent:
		return Pct(text)
	case Numeric:
		return Number(text)
	default:
		return Str(text)
	}
}

// Str returns the trimmed text, or nil when it is empty.
func Str(text string) any {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil
	}
	return s
}

// Integer returns text as an int, or nil.
func Integer(text string) any {
	if i, ok := ParseInt(text); ok {
		return i
	}
	return nil
}

// Decimal returns text as a float64, or nil.
func Decimal(text string) any {
	if f, ok := ParseFloat(text); ok {
		return f
	}
	return nil
}

// Pct returns text with a trailing percent sign removed as a float64, or nil.
func Pct(text string) any {
	s := strings.TrimSpace(text)
	s = strings.TrimSpace(strings.TrimRight(s, "%"))
	return Decimal(s)
}

// Number returns an int or float64 when text parses as one, otherwise the
// trimmed text unchanged. Empty text is nil.
func Number(text string) any {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil
	}
	if i, ok := ParseInt(s); ok {
		return i
	}
	if f, ok := ParseFloat(s); ok {
		return f
	}
	return s
}

// ParseInt parses a trimmed base-10 integer.
func ParseInt(text string) (int, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, false
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return i, true
}

// ParseFloat parses a trimmed float. Leading-dot values such as ".625"
// are accepted; NaN and infinities are not.
func ParseFloat(text string) (float64, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
