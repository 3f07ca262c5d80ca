// Package state holds the fetch state owned by a single screen.
package state

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/calmkids/calmkids/internal/logging"
)

// FetchFunc performs one fetch for a screen
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Snapshot is the state a screen renders from
type Snapshot[T any] struct {
	Loading   bool
	Value     T
	Err       error
	FetchedAt time.Time
}

// Loader runs fetches for one screen and keeps the latest result. Loads are
// not de-duplicated: when several overlap, whichever finishes last wins.
// Close cancels every outstanding load and drops their results.
type Loader[T any] struct {
	mu       sync.Mutex
	fetch    FetchFunc[T]
	snapshot Snapshot[T]
	inFlight int
	onChange func(Snapshot[T])
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.Logger
	now      func() time.Time
}

// NewLoader creates a loader around fetch
func NewLoader[T any](fetch FetchFunc[T], logger *zap.Logger) *Loader[T] {
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader[T]{
		fetch:  fetch,
		ctx:    ctx,
		cancel: cancel,
		logger: logging.OrNop(logger),
		now:    time.Now,
	}
}

// SetChangeCallback sets the function called after every state change. It
// runs with the loader locked and must not call back into the loader.
func (l *Loader[T]) SetChangeCallback(callback func(Snapshot[T])) {
	l.mu.Lock()
	l.onChange = callback
	l.mu.Unlock()
}

// Snapshot returns the current state
func (l *Loader[T]) Snapshot() Snapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot
}

// Load runs one fetch to completion and returns the resulting state. It
// blocks; screens call it from a goroutine.
func (l *Loader[T]) Load() Snapshot[T] {
	l.mu.Lock()
	if l.ctx.Err() != nil {
		snap := l.snapshot
		l.mu.Unlock()
		return snap
	}
	l.inFlight++
	l.snapshot.Loading = true
	l.notifyLocked()
	ctx := l.ctx
	l.mu.Unlock()

	value, err := l.fetch(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.inFlight--

	if ctx.Err() != nil {
		// Screen closed while loading; whatever came back is dropped
		l.logger.Debug("load result dropped after close", zap.Error(err))
		l.snapshot.Loading = l.inFlight > 0
		return l.snapshot
	}

	// The result replaces whatever was there, success or failure
	var zero T
	if err != nil {
		l.logger.Warn("load failed", zap.Error(err))
		l.snapshot = Snapshot[T]{Value: zero, Err: err}
	} else {
		l.snapshot = Snapshot[T]{Value: value, FetchedAt: l.now()}
	}
	l.snapshot.Loading = l.inFlight > 0
	l.notifyLocked()
	return l.snapshot
}

// Close cancels outstanding loads; later loads are no-ops
func (l *Loader[T]) Close() {
	l.cancel()
}

// notifyLocked calls the change callback with the current state
func (l *Loader[T]) notifyLocked() {
	if l.onChange != nil {
		l.onChange(l.snapshot)
	}
}
