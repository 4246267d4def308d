package extract

import (
	"strings"

	"github.com/lfcamargo/pricewatch/parser"
)

// Text runs the spec's strategy chain in priority order and returns the
// first non-empty match, first-match-wins: once a strategy produces a usable
// value the remaining strategies are not attempted. A miss on every strategy
// returns ("", false); a missing field is an expected outcome, not an error.
func Text(doc Document, spec FieldSpec) (string, bool) {
	for _, st := range spec.Strategies {
		el, ok := doc.Find(st.sel)
		if !ok {
			continue
		}
		value := parser.CleanText(st.value(el))
		if value == "" {
			continue
		}
		if spec.RequireCurrency && !parser.ContainsCurrency(value) {
			continue
		}
		return value, true
	}
	return "", false
}

// Presence resolves a boolean badge field: true on the first strategy that
// matches anything, false when none do. Never absent.
func Presence(doc Document, spec FieldSpec) bool {
	for _, st := range spec.Strategies {
		if _, ok := doc.Find(st.sel); ok {
			return true
		}
	}
	return false
}

// List accumulates values across all elements matched by the spec's
// strategies, applying the spec filter and deduplicating by value while
// preserving document order. List fields are exempt from first-match-wins.
func List(doc Document, spec FieldSpec) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, st := range spec.Strategies {
		for _, el := range doc.FindAll(st.sel) {
			value := strings.TrimSpace(st.value(el))
			if value == "" {
				continue
			}
			if spec.Filter != nil && !spec.Filter(value) {
				continue
			}
			if _, dup := seen[value]; dup {
				continue
			}
			seen[value] = struct{}{}
			out = append(out, value)
		}
	}
	return out
}
