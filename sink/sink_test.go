package sink

import (
	"sync"
	"testing"
	"time"

	"github.com/lfcamargo/pricewatch/models"
)

func TestAppendConcurrent(t *testing.T) {
	s := New(nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				s.Append(&models.Record{ID: "x", Outcome: models.OutcomeSuccess})
			}
		}()
	}
	wg.Wait()

	if s.Len() != 200 {
		t.Errorf("Len = %d, want 200", s.Len())
	}
}

func TestSummaryCounts(t *testing.T) {
	s := New(nil)
	s.Append(
		&models.Record{ID: "a", Outcome: models.OutcomeSuccess},
		&models.Record{ID: "b", Outcome: models.OutcomeSuccess},
		&models.Record{ID: "c", Outcome: models.OutcomePartialFailure},
		&models.Record{ID: "d", Outcome: models.OutcomeTotalFailure},
	)

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Second)
	summary := s.Summary(4, start, end)

	if summary.Records != 4 || summary.Success != 2 || summary.Partial != 1 || summary.Total != 1 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.Duration() != 90*time.Second {
		t.Errorf("duration = %v", summary.Duration())
	}
	if summary.Systemic() {
		t.Error("run with successes must not be systemic")
	}
}

func TestSummarySystemic(t *testing.T) {
	s := New(nil)
	s.Append(
		&models.Record{ID: "a", Outcome: models.OutcomeTotalFailure},
		&models.Record{ID: "b", Outcome: models.OutcomeTotalFailure},
	)
	summary := s.Summary(2, time.Now(), time.Now())
	if !summary.Systemic() {
		t.Error("all-failure run must be systemic")
	}
}

func TestRecordsSnapshot(t *testing.T) {
	s := New(nil)
	s.Append(&models.Record{ID: "a", Outcome: models.OutcomeSuccess})

	snapshot := s.Records()
	s.Append(&models.Record{ID: "b", Outcome: models.OutcomeSuccess})

	if len(snapshot) != 1 {
		t.Errorf("snapshot grew after later appends: %d", len(snapshot))
	}
}
