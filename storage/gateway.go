package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lfcamargo/pricewatch/fetch"
	"github.com/lfcamargo/pricewatch/models"
)

// overridable for tests
var sleepFn = time.Sleep

// Gateway wraps a Store with retry semantics and the JSON codecs for work
// item lists and record batches.
type Gateway struct {
	store   Store
	policy  RetryPolicy
	logger  *slog.Logger
	metrics *fetch.Metrics
}

// NewGateway builds a gateway. logger and metrics may be nil.
func NewGateway(store Store, policy RetryPolicy, logger *slog.Logger, metrics *fetch.Metrics) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{store: store, policy: policy, logger: logger, metrics: metrics}
}

// LoadItems reads a JSON array of work items from ref. Transient failures
// are retried with backoff; a run that exhausts every attempt degrades to
// an empty list so the caller completes as a valid unproductive run.
// Malformed payloads and permanent failures are not retried.
func (g *Gateway) LoadItems(ctx context.Context, ref string) ([]models.WorkItem, error) {
	var data []byte
	err := g.withRetries(ctx, "load", ref, func() error {
		var loadErr error
		data, loadErr = g.store.Load(ctx, ref)
		return loadErr
	})
	if err != nil {
		var malformed MalformedError
		var permanent PermanentError
		if errors.As(err, &malformed) || errors.As(err, &permanent) {
			return nil, err
		}
		g.logger.Error("input unavailable after retries, proceeding with empty list",
			"ref", ref, "error", err)
		return []models.WorkItem{}, nil
	}

	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, MalformedError{Ref: ref, Err: err}
	}

	items := make([]models.WorkItem, 0, len(raw))
	for _, entry := range raw {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		items = append(items, models.WorkItem(entry))
	}
	return items, nil
}

// SaveBatch writes the full record batch to ref as a JSON array. Unlike
// loading, exhausting every attempt here is a hard error: losing results
// at the end of a run must be visible.
func (g *Gateway) SaveBatch(ctx context.Context, ref string, records []*models.Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding batch: %w", err)
	}
	return g.withRetries(ctx, "save", ref, func() error {
		return g.store.Save(ctx, ref, data)
	})
}

// withRetries runs op up to MaxAttempts times, sleeping between attempts.
// Only transient errors are retried.
func (g *Gateway) withRetries(ctx context.Context, op, ref string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= g.policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		var transient TransientError
		if !errors.As(lastErr, &transient) {
			return lastErr
		}
		if attempt == g.policy.MaxAttempts {
			break
		}

		delay := g.policy.Delay(attempt)
		g.logger.Warn("storage attempt failed, retrying",
			"op", op, "ref", ref, "attempt", attempt, "delay", delay, "error", lastErr)
		g.metrics.CountStorageRetry()
		sleepFn(delay)
	}
	return fmt.Errorf("%s %s: %d attempts exhausted: %w", op, ref, g.policy.MaxAttempts, lastErr)
}
