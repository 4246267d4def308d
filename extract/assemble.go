package extract

import (
	"time"

	"github.com/lfcamargo/pricewatch/models"
	"github.com/lfcamargo/pricewatch/parser"
)

// Assembler turns one fetched Document into a canonical Record: it runs the
// field specs, derives discount fields, and classifies the outcome. The
// outcome is explicit tri-state so callers query it instead of null-checking
// every field.
type Assembler struct {
	specs ProductSpecs
	now   func() time.Time
}

// NewAssembler builds an assembler over the given field specs.
func NewAssembler(specs ProductSpecs) *Assembler {
	return &Assembler{specs: specs, now: time.Now}
}

// Assemble extracts every configured field from doc and classifies the
// record. The primary field is the current price: a document without it
// yields PartialFailure, with every other extracted field retained.
func (a *Assembler) Assemble(id, sourceURL string, doc Document) *models.Record {
	var f models.Fields

	f.Title, _ = Text(doc, a.specs.Title)

	if raw, ok := Text(doc, a.specs.CurrentPrice); ok {
		f.CurrentPrice = raw
		if v, ok := parser.ParsePrice(raw); ok {
			f.CurrentPriceNumeric = &v
		}
	}
	if raw, ok := Text(doc, a.specs.ReferencePrice); ok {
		f.ReferencePrice = raw
		if v, ok := parser.ParsePrice(raw); ok {
			f.ReferencePriceNumeric = &v
		}
	}
	if f.CurrentPriceNumeric != nil && f.ReferencePriceNumeric != nil {
		if d, ok := parser.DeriveDiscount(*f.CurrentPriceNumeric, *f.ReferencePriceNumeric); ok {
			f.DiscountAmount = d.DisplayAmount
			f.DiscountPercent = d.DisplayPercent
		}
	}

	f.BuyBoxPrice, _ = Text(doc, a.specs.BuyBoxPrice)
	f.Availability, _ = Text(doc, a.specs.Availability)
	f.PrimeEligible = Presence(doc, a.specs.Prime)
	f.Seller, _ = Text(doc, a.specs.Seller)
	f.ImageURLs = List(doc, a.specs.Images)
	f.RelatedURLs = List(doc, a.specs.Related)

	outcome := models.OutcomeSuccess
	if f.CurrentPriceNumeric == nil {
		outcome = models.OutcomePartialFailure
	}

	return &models.Record{
		ID:        id,
		SourceURL: sourceURL,
		ScrapedAt: a.now().UTC(),
		Outcome:   outcome,
		Fields:    f,
	}
}

// Failure builds the record for a work item whose document could not be
// obtained at all: identifier and error description only, no fields.
func (a *Assembler) Failure(id, sourceURL string, err error) *models.Record {
	return &models.Record{
		ID:        id,
		SourceURL: sourceURL,
		ScrapedAt: a.now().UTC(),
		Outcome:   models.OutcomeTotalFailure,
		Error:     err.Error(),
	}
}

// Empty builds the record for a work item whose document was obtained but
// carried no usable data, e.g. a search page with zero results.
func (a *Assembler) Empty(id, sourceURL, reason string) *models.Record {
	return &models.Record{
		ID:        id,
		SourceURL: sourceURL,
		ScrapedAt: a.now().UTC(),
		Outcome:   models.OutcomePartialFailure,
		Error:     reason,
	}
}
