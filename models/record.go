// Package models defines data structures shared across the scraper.
package models

import "time"

// WorkItem is one unit of scheduled work: an ASIN or a search term.
type WorkItem string

// Outcome classifies how much of a record could be extracted.
type Outcome string

const (
	// OutcomeSuccess means the document was fetched and the primary field
	// (current price) was extracted.
	OutcomeSuccess Outcome = "success"
	// OutcomePartialFailure means the document was fetched but the primary
	// field is absent; other extracted fields are retained.
	OutcomePartialFailure Outcome = "partial_failure"
	// OutcomeTotalFailure means the document could not be obtained at all.
	OutcomeTotalFailure Outcome = "total_failure"
)

// Failed reports whether the record counts toward failure statistics.
func (o Outcome) Failed() bool {
	return o == OutcomePartialFailure || o == OutcomeTotalFailure
}

// Fields holds the extracted product fields. Absent values stay empty/nil;
// a price that fails to parse is recorded as absent, never as zero.
type Fields struct {
	CurrentPrice          string   `json:"current_price,omitempty"`
	CurrentPriceNumeric   *float64 `json:"current_price_numeric,omitempty"`
	ReferencePrice        string   `json:"reference_price,omitempty"`
	ReferencePriceNumeric *float64 `json:"reference_price_numeric,omitempty"`
	DiscountAmount        string   `json:"discount_amount,omitempty"`
	DiscountPercent       string   `json:"discount_percent,omitempty"`
	Availability          string   `json:"availability,omitempty"`
	PrimeEligible         bool     `json:"prime_eligible"`
	Seller                string   `json:"seller,omitempty"`
	Title                 string   `json:"title,omitempty"`
	BuyBoxPrice           string   `json:"buy_box_price,omitempty"`
	ImageURLs             []string `json:"image_urls,omitempty"`
	RelatedURLs           []string `json:"related_urls,omitempty"`
}

// Record is the canonical output for one work item (or one discovered
// product in search mode). Immutable after assembly.
type Record struct {
	ID         string    `json:"id"`
	SourceURL  string    `json:"source_url"`
	ScrapedAt  time.Time `json:"scraped_at"`
	Outcome    Outcome   `json:"outcome"`
	Fields     Fields    `json:"fields"`
	Error      string    `json:"error,omitempty"`
	SearchTerm string    `json:"search_term,omitempty"`
	Rank       int       `json:"rank,omitempty"`
}

// RunSummary aggregates a finished batch.
type RunSummary struct {
	Items     int
	Records   int
	Success   int
	Partial   int
	Total     int
	StartTime time.Time
	EndTime   time.Time
}

// Duration returns the wall-clock span of the run.
func (s *RunSummary) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// Systemic reports the signature of a source-wide failure: a non-empty
// input that produced zero successful records, e.g. after a site layout
// change. Isolated per-item failures do not trip this.
func (s *RunSummary) Systemic() bool {
	return s.Items > 0 && s.Success == 0
}
