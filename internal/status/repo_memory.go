package status

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data []Check
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Create appends the check.
func (r *MemoryRepo) Create(ctx context.Context, check Check) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, check)
	return nil
}

// List returns up to limit checks in insertion order.
func (r *MemoryRepo) List(ctx context.Context, limit int) ([]Check, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.data)
	if limit > 0 && n > limit {
		n = limit
	}
	out := make([]Check, n)
	copy(out, r.data[:n])
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
