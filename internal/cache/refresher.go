package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL is the age after which a snapshot is refetched
const DefaultTTL = 60 * time.Second

// Snapshot is a fetched payload and the time it was fetched (unix ms)
type Snapshot[T any] struct {
	Payload     T     `json:"payload"`
	LastUpdated int64 `json:"lastUpdated"`
}

// UpdatedAt returns the fetch time of the snapshot
func (s Snapshot[T]) UpdatedAt() time.Time {
	return time.UnixMilli(s.LastUpdated)
}

// State is what a view renders: the latest snapshot, whether a refresh is in
// flight and the error of the last failed refresh.
type State[T any] struct {
	Snapshot  Snapshot[T]
	IsLoading bool
	Err       error
}

// FetchFunc fetches a fresh payload
type FetchFunc[T any] func(ctx context.Context) (T, error)

// RefresherConfig configures a Refresher
type RefresherConfig struct {
	TTL    time.Duration
	Now    func() time.Time
	Logger *zap.Logger
}

// Refresher serves a cached snapshot and refetches it when stale. Concurrent
// refreshes of the same key share one fetch.
type Refresher[T any] struct {
	value  *Value[Snapshot[T]]
	fetch  FetchFunc[T]
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
	sf     singleflight.Group

	mu       sync.Mutex
	inflight int
	lastErr  error
}

// NewRefresher creates a refresher over a snapshot value
func NewRefresher[T any](value *Value[Snapshot[T]], fetch FetchFunc[T], config RefresherConfig) *Refresher[T] {
	if config.TTL <= 0 {
		config.TTL = DefaultTTL
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	return &Refresher[T]{
		value:  value,
		fetch:  fetch,
		ttl:    config.TTL,
		now:    config.Now,
		logger: config.Logger.With(zap.String("key", value.Key())),
	}
}

// Current returns the cached state without fetching
func (r *Refresher[T]) Current() State[T] {
	snap, err := r.value.Get()

	r.mu.Lock()
	defer r.mu.Unlock()
	if err == nil {
		err = r.lastErr
	}
	return State[T]{
		Snapshot:  snap,
		IsLoading: r.inflight > 0,
		Err:       err,
	}
}

// IsStale reports whether the snapshot is older than the TTL
func (r *Refresher[T]) IsStale() bool {
	snap, err := r.value.Get()
	if err != nil {
		return true
	}
	return r.now().Sub(snap.UpdatedAt()) > r.ttl
}

// Refresh fetches a new snapshot. On failure the previous snapshot is kept
// and returned together with the error.
func (r *Refresher[T]) Refresh(ctx context.Context) (Snapshot[T], error) {
	r.begin()
	defer r.end()

	res, err, shared := r.sf.Do(r.value.Key(), func() (interface{}, error) {
		return r.refresh(ctx)
	})
	if shared {
		r.logger.Debug("Joined in-flight refresh")
	}
	if err != nil {
		snap, _ := r.value.Get()
		return snap, err
	}
	return res.(Snapshot[T]), nil
}

func (r *Refresher[T]) refresh(ctx context.Context) (Snapshot[T], error) {
	fetchedAt := r.now()

	payload, err := r.fetch(ctx)
	if err != nil {
		r.setErr(err)
		r.logger.Warn("Refresh failed", zap.Error(err))
		snap, _ := r.value.Get()
		return snap, err
	}

	next := Snapshot[T]{Payload: payload, LastUpdated: fetchedAt.UnixMilli()}
	snap, err := r.value.Update(func(current Snapshot[T]) Snapshot[T] {
		// Only a strictly newer fetch replaces the snapshot
		if next.LastUpdated > current.LastUpdated {
			return next
		}
		return current
	})
	if err != nil {
		r.setErr(err)
		r.logger.Error("Failed to persist snapshot", zap.Error(err))
		return snap, err
	}

	r.setErr(nil)
	r.logger.Debug("Snapshot refreshed", zap.Time("fetched_at", fetchedAt))
	return snap, nil
}

// Load returns the cached state immediately. When the snapshot is stale it
// also starts a background refresh, calls onDone with the resulting state
// once it finishes, and reports true.
func (r *Refresher[T]) Load(ctx context.Context, onDone func(State[T])) (State[T], bool) {
	if !r.IsStale() {
		return r.Current(), false
	}

	r.begin()
	state := r.Current()

	go func() {
		_, _ = r.Refresh(ctx)
		r.end()
		if onDone != nil {
			onDone(r.Current())
		}
	}()

	return state, true
}

func (r *Refresher[T]) begin() {
	r.mu.Lock()
	r.inflight++
	r.mu.Unlock()
}

func (r *Refresher[T]) end() {
	r.mu.Lock()
	r.inflight--
	r.mu.Unlock()
}

func (r *Refresher[T]) setErr(err error) {
	r.mu.Lock()
	r.lastErr = err
	r.mu.Unlock()
}
