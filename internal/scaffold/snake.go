package scaffold

import (
	"strings"
	"unicode"
)

// ToSnake converts a CamelCase class name to its deterministic snake_case
// directory form. Boundaries are inserted on lowercase-to-uppercase and
// acronym-to-word transitions: BillingRule -> billing_rule,
// HTTPServer -> http_server, Rule2X -> rule2_x.
func ToSnake(name string) string {
	runes := []rune(name)
	var b strings.Builder
	b.Grow(len(runes) + 4)

	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]))
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if i > 0 && (prevLower || nextLower) {
				b.WriteRune('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}

// packageName derives a valid Go package identifier from a directory name.
func packageName(dir string) string {
	return strings.ReplaceAll(strings.ToLower(dir), "-", "_")
}
