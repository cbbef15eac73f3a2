// Package pin manages ordered lists of pinned item identifiers.
//
// The functions operating on []string never modify their input; they return
// a new slice. List binds those operations to a persisted cache value.
package pin

import (
	"github.com/vasylcode/monobar/internal/cache"
	"github.com/vasylcode/monobar/internal/storage"
	"go.uber.org/zap"
)

// Index returns the position of id, or -1
func Index(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

// Contains reports whether id is pinned
func Contains(ids []string, id string) bool {
	return Index(ids, id) >= 0
}

// Pin appends id unless it is already pinned
func Pin(ids []string, id string) []string {
	if Contains(ids, id) {
		return clone(ids)
	}
	return append(clone(ids), id)
}

// Unpin removes id. Unknown ids are ignored.
func Unpin(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Toggle pins id when absent and unpins it when present
func Toggle(ids []string, id string) []string {
	if Contains(ids, id) {
		return Unpin(ids, id)
	}
	return Pin(ids, id)
}

// CanMoveUp reports whether id has a predecessor
func CanMoveUp(ids []string, id string) bool {
	return Index(ids, id) > 0
}

// CanMoveDown reports whether id has a successor
func CanMoveDown(ids []string, id string) bool {
	i := Index(ids, id)
	return i >= 0 && i < len(ids)-1
}

// MoveUp swaps id with its predecessor. It is a no-op for the first element
// and for ids that are not pinned.
func MoveUp(ids []string, id string) []string {
	out := clone(ids)
	if !CanMoveUp(ids, id) {
		return out
	}
	i := Index(ids, id)
	out[i-1], out[i] = out[i], out[i-1]
	return out
}

// MoveDown swaps id with its successor. It is a no-op for the last element
// and for ids that are not pinned.
func MoveDown(ids []string, id string) []string {
	out := clone(ids)
	if !CanMoveDown(ids, id) {
		return out
	}
	i := Index(ids, id)
	out[i], out[i+1] = out[i+1], out[i]
	return out
}

func clone(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// List is a persisted pinned list
type List struct {
	value *cache.Value[[]string]
}

// NewList binds a pinned list to key of store
func NewList(store storage.Store, key string, logger *zap.Logger) *List {
	return &List{value: cache.NewValue(store, key, []string{}, logger)}
}

// IDs returns the pinned ids in order
func (l *List) IDs() ([]string, error) {
	ids, err := l.value.Get()
	if err != nil {
		return nil, err
	}
	return clone(ids), nil
}

// Toggle pins or unpins id and reports whether it is pinned afterwards
func (l *List) Toggle(id string) (bool, error) {
	ids, err := l.value.Update(func(ids []string) []string { return Toggle(ids, id) })
	if err != nil {
		return false, err
	}
	return Contains(ids, id), nil
}

// Pin pins id
func (l *List) Pin(id string) error {
	return l.apply(func(ids []string) []string { return Pin(ids, id) })
}

// Unpin unpins id
func (l *List) Unpin(id string) error {
	return l.apply(func(ids []string) []string { return Unpin(ids, id) })
}

// MoveUp moves id one position up
func (l *List) MoveUp(id string) error {
	return l.apply(func(ids []string) []string { return MoveUp(ids, id) })
}

// MoveDown moves id one position down
func (l *List) MoveDown(id string) error {
	return l.apply(func(ids []string) []string { return MoveDown(ids, id) })
}

// Reset unpins everything
func (l *List) Reset() error {
	return l.value.Reset()
}

func (l *List) apply(fn func([]string) []string) error {
	_, err := l.value.Update(fn)
	return err
}
