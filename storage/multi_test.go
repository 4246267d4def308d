package storage

import (
	"context"
	"errors"
	"testing"
)

type flakyStore struct {
	loadErr error
	saveErr error
	data    []byte
	saved   [][]byte
}

func (f *flakyStore) Load(ctx context.Context, ref string) ([]byte, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.data, nil
}

func (f *flakyStore) Save(ctx context.Context, ref string, data []byte) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, data)
	return nil
}

func TestMultiStoreLoadFirstSuccess(t *testing.T) {
	broken := &flakyStore{loadErr: TransientError{Err: errors.New("down")}}
	healthy := &flakyStore{data: []byte("payload")}
	store, err := NewMultiStore(broken, healthy)
	if err != nil {
		t.Fatalf("NewMultiStore: %v", err)
	}

	got, err := store.Load(context.Background(), "ref")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(got) != "payload" {
		t.Errorf("Load = %q", got)
	}
}

func TestMultiStoreLoadAllFail(t *testing.T) {
	store, err := NewMultiStore(
		&flakyStore{loadErr: errors.New("one down")},
		&flakyStore{loadErr: errors.New("two down")},
	)
	if err != nil {
		t.Fatalf("NewMultiStore: %v", err)
	}

	if _, err := store.Load(context.Background(), "ref"); err == nil {
		t.Fatal("expected joined error")
	}
}

func TestMultiStoreSaveFansOut(t *testing.T) {
	first := &flakyStore{}
	second := &flakyStore{}
	store, err := NewMultiStore(first, second)
	if err != nil {
		t.Fatalf("NewMultiStore: %v", err)
	}

	if err := store.Save(context.Background(), "ref", []byte("data")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(first.saved) != 1 || len(second.saved) != 1 {
		t.Errorf("saved counts = %d, %d, want 1, 1", len(first.saved), len(second.saved))
	}
}

func TestMultiStoreSavePartialFailureStillWrites(t *testing.T) {
	broken := &flakyStore{saveErr: TransientError{Err: errors.New("down")}}
	healthy := &flakyStore{}
	store, err := NewMultiStore(broken, healthy)
	if err != nil {
		t.Fatalf("NewMultiStore: %v", err)
	}

	err = store.Save(context.Background(), "ref", []byte("data"))
	if err == nil {
		t.Fatal("expected error from the broken backend")
	}
	if len(healthy.saved) != 1 {
		t.Error("healthy backend must still receive the write")
	}
}

func TestMultiStoreRequiresBackends(t *testing.T) {
	if _, err := NewMultiStore(); err == nil {
		t.Fatal("expected error for zero backends")
	}
}
