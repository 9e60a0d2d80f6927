package session

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/storage"
)

func TestStoreIsOpenedOnce(t *testing.T) {
	h := New(storage.Options{Path: filepath.Join(t.TempDir(), "profile.db")})
	t.Cleanup(func() { h.Close() })

	var wg sync.WaitGroup
	stores := make([]*storage.Store, 16)
	errs := make([]error, 16)
	for i := range stores {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			stores[i], errs[i] = h.Store(context.Background())
		}(i)
	}
	wg.Wait()

	for i := range stores {
		if errs[i] != nil {
			t.Fatalf("Store #%d: %v", i, errs[i])
		}
		if stores[i] != stores[0] {
			t.Fatalf("Store #%d returned a different store", i)
		}
	}
}

func TestCloseAndReopen(t *testing.T) {
	h := New(storage.Options{Path: filepath.Join(t.TempDir(), "profile.db")})
	ctx := context.Background()

	first, err := h.Store(ctx)
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	id, err := first.Insert(ctx, "memory", map[string]any{"content": "kept across reopen"})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	second, err := h.Store(ctx)
	if err != nil {
		t.Fatalf("Store after Close: %v", err)
	}
	defer h.Close()
	if second == first {
		t.Fatal("expected a fresh store after Close")
	}
	rec, err := second.GetByID(ctx, "memory", id)
	if err != nil || rec == nil {
		t.Fatalf("GetByID after reopen = %v, %v", rec, err)
	}
}

func TestStoreOpenError(t *testing.T) {
	h := New(storage.Options{})
	if _, err := h.Store(context.Background()); err == nil {
		t.Fatal("expected error for empty path")
	}
}
