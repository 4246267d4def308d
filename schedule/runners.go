package schedule

import (
	"context"
	"net/url"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/lfcamargo/pricewatch/extract"
	"github.com/lfcamargo/pricewatch/fetch"
	"github.com/lfcamargo/pricewatch/models"
)

// DetailRunner treats each work item as an ASIN and fetches its product
// detail page. Every item yields exactly one record.
type DetailRunner struct {
	Assembler *extract.Assembler
	BaseURL   string
}

// Process fetches one detail page.
func (r *DetailRunner) Process(ctx context.Context, paced *fetch.Paced, item models.WorkItem) []*models.Record {
	asin := string(item)
	pageURL := detailURL(r.BaseURL, asin)

	doc, err := paced.Fetch(ctx, pageURL)
	if err != nil {
		return []*models.Record{r.Assembler.Failure(asin, pageURL, err)}
	}
	return []*models.Record{r.Assembler.Assemble(asin, pageURL, doc)}
}

// SearchRunner treats each work item as a search term: it fetches the
// results page, then expands up to MaxResults discovered products into
// detail fetches. ASINs already seen in this run are skipped, bounded by
// an LRU so unbounded term lists cannot grow the set without limit.
type SearchRunner struct {
	Assembler  *extract.Assembler
	BaseURL    string
	MaxResults int

	seen *lru.Cache[string, struct{}]
}

// NewSearchRunner builds a search runner with a dedupe window of
// dedupeSize ASINs.
func NewSearchRunner(assembler *extract.Assembler, baseURL string, maxResults, dedupeSize int) (*SearchRunner, error) {
	seen, err := lru.New[string, struct{}](dedupeSize)
	if err != nil {
		return nil, err
	}
	return &SearchRunner{
		Assembler:  assembler,
		BaseURL:    baseURL,
		MaxResults: maxResults,
		seen:       seen,
	}, nil
}

// Process expands one search term. A term always yields at least one
// record so the output accounts for every input.
func (r *SearchRunner) Process(ctx context.Context, paced *fetch.Paced, item models.WorkItem) []*models.Record {
	term := string(item)
	pageURL := searchURL(r.BaseURL, term)

	// Search pages never contain the product container, so no marker.
	doc, err := paced.FetchMarker(ctx, pageURL, "")
	if err != nil {
		return []*models.Record{r.Assembler.Failure(term, pageURL, err)}
	}

	results := extract.SearchResults(doc, r.BaseURL, r.MaxResults)
	var records []*models.Record
	for _, result := range results {
		if ctx.Err() != nil {
			break
		}
		if _, dup := r.seen.Get(result.ASIN); dup {
			continue
		}
		r.seen.Add(result.ASIN, struct{}{})

		detail, err := paced.Fetch(ctx, result.URL)
		var rec *models.Record
		if err != nil {
			rec = r.Assembler.Failure(result.ASIN, result.URL, err)
		} else {
			rec = r.Assembler.Assemble(result.ASIN, result.URL, detail)
		}
		rec.SearchTerm = term
		rec.Rank = result.Rank
		records = append(records, rec)
	}

	if len(records) == 0 {
		reason := "no search results"
		if len(results) > 0 {
			reason = "all results already seen"
		}
		empty := r.Assembler.Empty(term, pageURL, reason)
		empty.SearchTerm = term
		return []*models.Record{empty}
	}
	return records
}

func detailURL(baseURL, asin string) string {
	return trimSlash(baseURL) + "/dp/" + url.PathEscape(asin)
}

func searchURL(baseURL, term string) string {
	return trimSlash(baseURL) + "/s?k=" + url.QueryEscape(term)
}

func trimSlash(s string) string {
	if len(s) > 0 && s[len(s)-1] == '/' {
		return s[:len(s)-1]
	}
	return s
}
