package session

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/storage"
)

// Handle owns the process-wide profile store. The store is opened on first
// use and can be closed and reopened; tests build their own Handle.
type Handle struct {
	mu    sync.Mutex
	store atomic.Pointer[storage.Store]
	opts  storage.Options
}

// New creates a handle that will open the store with opts on first use.
func New(opts storage.Options) *Handle {
	return &Handle{opts: opts}
}

// Store returns the open store, opening it if needed.
func (h *Handle) Store(ctx context.Context) (*storage.Store, error) {
	if s := h.store.Load(); s != nil {
		return s, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if s := h.store.Load(); s != nil {
		return s, nil
	}
	s, err := storage.Open(ctx, h.opts)
	if err != nil {
		return nil, err
	}
	h.store.Store(s)
	return s, nil
}

// Close closes the store if it is open. A later Store call reopens it.
// Stores already handed out are closed too, so Close must not run while
// tool calls are in flight; main calls it only after the server returns.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.store.Swap(nil)
	if s == nil {
		return nil
	}
	return s.Close()
}
