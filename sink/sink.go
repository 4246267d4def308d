// Package sink accumulates assembled records across workers.
package sink

import (
	"sync"
	"time"

	"github.com/lfcamargo/pricewatch/fetch"
	"github.com/lfcamargo/pricewatch/models"
)

// Sink collects records from concurrent workers and tallies outcomes.
type Sink struct {
	mu      sync.Mutex
	records []*models.Record
	counts  map[models.Outcome]int
	metrics *fetch.Metrics
}

// New creates an empty sink. metrics may be nil.
func New(metrics *fetch.Metrics) *Sink {
	return &Sink{
		counts:  make(map[models.Outcome]int),
		metrics: metrics,
	}
}

// Append adds records to the sink. Safe for concurrent use.
func (s *Sink) Append(records ...*models.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		s.records = append(s.records, r)
		s.counts[r.Outcome]++
		s.metrics.CountRecord(string(r.Outcome))
	}
}

// Records returns a snapshot of the collected records.
func (s *Sink) Records() []*models.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of collected records.
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Summary builds the run summary for the given window.
func (s *Sink) Summary(items int, start, end time.Time) models.RunSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.RunSummary{
		Items:     items,
		Records:   len(s.records),
		Success:   s.counts[models.OutcomeSuccess],
		Partial:   s.counts[models.OutcomePartialFailure],
		Total:     s.counts[models.OutcomeTotalFailure],
		StartTime: start,
		EndTime:   end,
	}
}
