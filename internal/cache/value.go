// Package cache keeps typed values on top of the key-value store and
// refreshes API snapshots once they are older than a TTL.
package cache

import (
	"errors"
	"sync"

	"github.com/vasylcode/monobar/internal/storage"
	"go.uber.org/zap"
)

// Cache keys
const (
	KeyAccounts       = "accounts"
	KeyRates          = "rates"
	KeyPinnedAccounts = "pinned-accounts"
	KeyPinnedRates    = "pinned-rates"
)

// Value is a typed entry of the store with an in-memory mirror. The first
// read of a key with nothing stored persists the initial value.
type Value[T any] struct {
	store   storage.Store
	key     string
	initial T
	logger  *zap.Logger

	mu     sync.RWMutex
	data   T
	loaded bool
}

// NewValue binds key of store to a typed value
func NewValue[T any](store storage.Store, key string, initial T, logger *zap.Logger) *Value[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Value[T]{
		store:   store,
		key:     key,
		initial: initial,
		logger:  logger,
	}
}

// Key returns the store key of the value
func (v *Value[T]) Key() string {
	return v.key
}

// Get returns the current value, loading it from the store on first access
func (v *Value[T]) Get() (T, error) {
	v.mu.RLock()
	if v.loaded {
		data := v.data
		v.mu.RUnlock()
		return data, nil
	}
	v.mu.RUnlock()

	v.mu.Lock()
	defer v.mu.Unlock()
	return v.load()
}

// load must be called with the write lock held
func (v *Value[T]) load() (T, error) {
	if v.loaded {
		return v.data, nil
	}

	var data T
	ok, err := v.store.Get(v.key, &data)
	if err != nil {
		if !errors.Is(err, storage.ErrSchemaMismatch) && !errors.Is(err, storage.ErrCorrupt) {
			return v.initial, err
		}
		v.logger.Warn("Resetting unreadable cache entry",
			zap.String("key", v.key),
			zap.Error(err),
		)
		ok = false
	}

	if !ok {
		if err := v.store.Set(v.key, v.initial); err != nil {
			return v.initial, err
		}
		data = v.initial
	}

	v.data = data
	v.loaded = true
	return data, nil
}

// Set replaces the value and persists it immediately
func (v *Value[T]) Set(data T) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.set(data)
}

func (v *Value[T]) set(data T) error {
	if err := v.store.Set(v.key, data); err != nil {
		return err
	}
	v.data = data
	v.loaded = true
	return nil
}

// Update applies fn to the current value and persists the result as one
// read-modify-write step
func (v *Value[T]) Update(fn func(T) T) (T, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	current, err := v.load()
	if err != nil {
		return current, err
	}
	next := fn(current)
	if err := v.set(next); err != nil {
		return current, err
	}
	return next, nil
}

// Reset drops the stored value and restores the initial one
func (v *Value[T]) Reset() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.store.Delete(v.key); err != nil {
		return err
	}
	v.loaded = false
	_, err := v.load()
	return err
}
