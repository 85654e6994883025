package utm

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
)

// Warning is a single advisory lint finding on a UTM parameter value.
// Warnings never block building a URL.
type Warning int

const (
	WarningUppercase Warning = iota
	WarningContainsSpaces
	WarningSpecialCharacters
)

func (w Warning) String() string {
	switch w {
	case WarningUppercase:
		return "uppercase"
	case WarningContainsSpaces:
		return "contains_spaces"
	case WarningSpecialCharacters:
		return "special_characters"
	default:
		return "unknown"
	}
}

var (
	reCanonical  = regexp.MustCompile(`^[a-zA-Z0-9_-]*$`)
	reDisallowed = regexp.MustCompile(`[^a-z0-9_-]+`)
	reUnderscore = regexp.MustCompile(`_+`)
)

// Lint reports the non-canonical traits of a UTM parameter value, always in
// the same order: uppercase, spaces, special characters. The checks are
// independent; a space fires both the space check and the special-character
// check since a space is itself outside the allowed set. An empty value is
// not a lint issue and yields nil.
func Lint(value string) []Warning {
	if value == "" {
		return nil
	}

	var warnings []Warning
	if strings.ContainsFunc(value, unicode.IsUpper) {
		warnings = append(warnings, WarningUppercase)
	}
	if strings.Contains(value, " ") {
		warnings = append(warnings, WarningContainsSpaces)
	}
	if !reCanonical.MatchString(value) {
		warnings = append(warnings, WarningSpecialCharacters)
	}
	return warnings
}

// Strategy transforms a parameter value. A Pipeline applies its strategies
// in order.
type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

// Canonicalize suggests the canonical lowercase snake_case form of a value,
// the shape that produces zero lint warnings. An empty result means no usable
// suggestion exists.
func Canonicalize(value string) string {
	p := Pipeline{
		strings.TrimSpace,
		strcase.ToSnake,
		strings.ToLower,
		func(s string) string { return reDisallowed.ReplaceAllString(s, "_") },
		func(s string) string { return reUnderscore.ReplaceAllString(s, "_") },
		func(s string) string { return strings.Trim(s, "_") },
	}
	return p.Apply(value)
}
