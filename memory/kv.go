// Package memory keeps state in process memory, for ephemeral runs and tests.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/Thiht/transactor"

	"github.com/benjamonnguyen/pomomo-timer"
)

type KVRepo struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewKVRepo() *KVRepo {
	return &KVRepo{
		values: make(map[string][]byte),
	}
}

func (r *KVRepo) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, exists := r.values[key]
	if !exists {
		return nil, pomomo.ErrNotFound
	}
	return slices.Clone(v), nil
}

func (r *KVRepo) Set(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.values[key] = slices.Clone(value)
	return nil
}

type txKey struct{}

// Transactor serializes transactions over one mutex. Nested calls run in
// the enclosing transaction. Writes are not rolled back on error.
type Transactor struct {
	mu sync.Mutex
}

var _ transactor.Transactor = (*Transactor)(nil)

func NewTransactor() *Transactor {
	return &Transactor{}
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(context.Context) error) error {
	if owner, _ := ctx.Value(txKey{}).(*Transactor); owner == t {
		return fn(ctx)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, t))
}
