package extract

import (
	"fmt"

	"github.com/andybalholm/cascadia"
)

// Strategy is one way to locate a field: a CSS selector, optionally reading
// an attribute instead of the node text. Strategies are data so selector
// chains can be updated without touching extraction logic.
type Strategy struct {
	Selector string
	Attr     string

	sel cascadia.Selector
}

// CompileStrategy builds a Strategy from a CSS selector. attr may be empty
// to read the node text.
func CompileStrategy(selector, attr string) (Strategy, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return Strategy{}, fmt.Errorf("compile selector %q: %w", selector, err)
	}
	return Strategy{Selector: selector, Attr: attr, sel: sel}, nil
}

// MustCSS returns a text-reading Strategy, panicking on an invalid selector.
// Intended for static spec tables built at init time.
func MustCSS(selector string) Strategy {
	s, err := CompileStrategy(selector, "")
	if err != nil {
		panic(err)
	}
	return s
}

// MustAttr returns an attribute-reading Strategy, panicking on an invalid
// selector.
func MustAttr(selector, attr string) Strategy {
	s, err := CompileStrategy(selector, attr)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Strategy) value(el Element) string {
	if s.Attr != "" {
		v, _ := el.Attr(s.Attr)
		return v
	}
	return el.Text()
}

// FieldSpec describes how to locate and normalize one logical output field:
// an ordered fallback chain of strategies plus per-field rules.
type FieldSpec struct {
	Name       string
	Strategies []Strategy

	// RequireCurrency rejects matches without a currency marker; used for
	// price-like fields where bare numbers are usually ratings or counts.
	RequireCurrency bool

	// Filter keeps only accepted values in list extraction.
	Filter func(string) bool
}
