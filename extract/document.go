// Package extract locates and normalizes product fields in fetched pages.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// Element is one matched node in a Document.
type Element interface {
	// Text returns the node's combined text content.
	Text() string
	// Attr returns the named attribute; false when absent.
	Attr(name string) (string, bool)
	// Find returns the first descendant matching sel.
	Find(sel cascadia.Selector) (Element, bool)
	// FindAll returns every descendant matching sel, in document order.
	FindAll(sel cascadia.Selector) []Element
}

// Document is a queryable representation of one fetched page. A Document is
// owned by the worker that fetched it and must not outlive the fetch cycle.
type Document interface {
	Find(sel cascadia.Selector) (Element, bool)
	FindAll(sel cascadia.Selector) []Element
}

// NewDocument parses rendered HTML into a queryable Document.
func NewDocument(html string) (Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &htmlNode{sel: doc.Selection}, nil
}

type htmlNode struct {
	sel *goquery.Selection
}

func (n *htmlNode) Text() string {
	return n.sel.Text()
}

func (n *htmlNode) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

func (n *htmlNode) Find(sel cascadia.Selector) (Element, bool) {
	found := n.sel.FindMatcher(sel)
	if found.Length() == 0 {
		return nil, false
	}
	return &htmlNode{sel: found.First()}, true
}

func (n *htmlNode) FindAll(sel cascadia.Selector) []Element {
	found := n.sel.FindMatcher(sel)
	if found.Length() == 0 {
		return nil
	}
	out := make([]Element, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		out = append(out, &htmlNode{sel: s})
	})
	return out
}
