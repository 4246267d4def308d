// Package storage persists work item lists and result batches with
// bounded retries on transient failures.
package storage

import (
	"context"
	"fmt"
)

// Store reads and writes opaque byte payloads by reference. A reference is
// an object key or a file path depending on the backend.
type Store interface {
	Load(ctx context.Context, ref string) ([]byte, error)
	Save(ctx context.Context, ref string, data []byte) error
}

// TransientError marks a failure worth retrying, such as a network fault
// or throttling.
type TransientError struct {
	Err error
}

func (e TransientError) Error() string {
	return fmt.Sprintf("transient storage error: %v", e.Err)
}

func (e TransientError) Unwrap() error {
	return e.Err
}

// PermanentError marks a failure retries cannot fix, such as a missing
// bucket or denied access.
type PermanentError struct {
	Err error
}

func (e PermanentError) Error() string {
	return fmt.Sprintf("permanent storage error: %v", e.Err)
}

func (e PermanentError) Unwrap() error {
	return e.Err
}

// MalformedError marks a payload that loaded fine but could not be
// decoded. Retrying would fetch the same bytes.
type MalformedError struct {
	Ref string
	Err error
}

func (e MalformedError) Error() string {
	return fmt.Sprintf("malformed payload in %s: %v", e.Ref, e.Err)
}

func (e MalformedError) Unwrap() error {
	return e.Err
}
