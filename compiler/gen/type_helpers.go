package gen

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// =============================================================================
// Naming helpers
// =============================================================================

var lowerCaser = cases.Lower(language.Und)

// capitalize upper-cases the first letter of s and keeps the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return inflect.Capitalize(s)
}

// lowerFirst lower-cases the first letter of s and keeps the rest.
func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// lower lower-cases the whole name.
func lower(s string) string {
	return lowerCaser.String(s)
}

// underscore returns the snake_case form of a camelCase name.
func underscore(s string) string {
	return inflect.Underscore(s)
}

// pascal returns the exported Go identifier for a model name. Separators
// written by modeling tools (spaces, dashes) are dropped.
func pascal(s string) string {
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	if strings.Contains(s, "_") {
		s = inflect.Camelize(strings.ToLower(s))
	}
	s = capitalize(s)
	if !token.IsIdentifier(s) {
		return "X" + s
	}
	return s
}

// fileName returns the base file name used for an entity.
func fileName(name string) string {
	return strings.ToLower(underscore(name))
}
