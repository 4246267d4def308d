package storage

import (
	"context"
	"errors"
	"fmt"
)

// MultiStore fans writes out to every backend and serves reads from the
// first backend that succeeds.
type MultiStore struct {
	stores []Store
}

// NewMultiStore combines stores. At least one is required.
func NewMultiStore(stores ...Store) (*MultiStore, error) {
	if len(stores) == 0 {
		return nil, fmt.Errorf("at least one store is required")
	}
	return &MultiStore{stores: stores}, nil
}

// Load tries each backend in order and returns the first success.
func (m *MultiStore) Load(ctx context.Context, ref string) ([]byte, error) {
	var errs []error
	for _, store := range m.stores {
		data, err := store.Load(ctx, ref)
		if err == nil {
			return data, nil
		}
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

// Save writes to every backend. A failure in one backend does not stop
// the others; all failures are reported together.
func (m *MultiStore) Save(ctx context.Context, ref string, data []byte) error {
	var errs []error
	for _, store := range m.stores {
		if err := store.Save(ctx, ref, data); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
