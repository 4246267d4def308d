package extract

import (
	"strings"

	"github.com/andybalholm/cascadia"
)

// SearchResult is one product discovered on a search results page.
type SearchResult struct {
	ASIN string
	Rank int
	URL  string
}

var (
	searchItemSel = cascadia.MustCompile("div.s-result-item[data-asin]")
	searchLinkSel = cascadia.MustCompile("h2 a")
)

// SearchResults parses a search page into ranked product references.
// Entries without an ASIN or a product link are skipped; relative links are
// resolved against baseURL. max <= 0 means unlimited.
func SearchResults(doc Document, baseURL string, max int) []SearchResult {
	items := doc.FindAll(searchItemSel)
	out := make([]SearchResult, 0, len(items))
	rank := 1
	for _, item := range items {
		asin, ok := item.Attr("data-asin")
		asin = strings.TrimSpace(asin)
		if !ok || asin == "" {
			continue
		}
		link, ok := item.Find(searchLinkSel)
		if !ok {
			continue
		}
		href, ok := link.Attr("href")
		href = strings.TrimSpace(href)
		if !ok || href == "" {
			continue
		}
		if strings.HasPrefix(href, "/") {
			href = strings.TrimSuffix(baseURL, "/") + href
		}
		out = append(out, SearchResult{ASIN: asin, Rank: rank, URL: href})
		rank++
		if max > 0 && rank > max {
			break
		}
	}
	return out
}
