package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pivolan/payroll_analyzer/domain/models"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const DefaultTTL = 300 * time.Second

var ErrNoSnapshot = errors.New("no snapshot loaded")

// FetchFunc loads and normalizes the dataset.
type FetchFunc func(ctx context.Context) (*models.Table, error)

// Snapshot is a normalized table and the moment it was fetched.
type Snapshot struct {
	Table     *models.Table
	FetchedAt time.Time
}

// IsStale reports whether the snapshot is at least ttl old at now.
func (s *Snapshot) IsStale(now time.Time, ttl time.Duration) bool {
	if s == nil {
		return true
	}
	return !now.Before(s.FetchedAt.Add(ttl))
}

type Option func(*Loader)

func WithTTL(ttl time.Duration) Option {
	return func(l *Loader) {
		if ttl > 0 {
			l.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(l *Loader) { l.now = now }
}

func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Loader keeps the latest snapshot and refreshes it once it is older than the TTL.
// Concurrent refreshes share a single fetch.
type Loader struct {
	mu      sync.RWMutex
	current *Snapshot
	flight  singleflight.Group

	fetch  FetchFunc
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
}

func NewLoader(fetch FetchFunc, opts ...Option) *Loader {
	l := &Loader{
		fetch:  fetch,
		ttl:    DefaultTTL,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loader) TTL() time.Duration { return l.ttl }

// Snapshot returns the current snapshot without refreshing it.
func (l *Loader) Snapshot() (*Snapshot, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current, l.current != nil
}

func (l *Loader) IsStale(now time.Time) bool {
	s, _ := l.Snapshot()
	return s.IsStale(now, l.ttl)
}

// Get returns the current snapshot, refreshing it first when stale.
// If the refresh fails and an older snapshot exists, the older one is served.
func (l *Loader) Get(ctx context.Context) (*Snapshot, error) {
	if s, ok := l.Snapshot(); ok && !s.IsStale(l.now(), l.ttl) {
		return s, nil
	}
	s, err := l.Refresh(ctx)
	if err == nil {
		return s, nil
	}
	if prev, ok := l.Snapshot(); ok {
		l.logger.Warn("refresh failed, serving stale snapshot",
			zap.Time("fetched_at", prev.FetchedAt), zap.Error(err))
		return prev, nil
	}
	return nil, err
}

// Refresh fetches a new snapshot unconditionally. On failure the previous
// snapshot is kept and the error returned.
func (l *Loader) Refresh(ctx context.Context) (*Snapshot, error) {
	v, err, shared := l.flight.Do("snapshot", func() (interface{}, error) {
		started := l.now()
		table, err := l.fetch(ctx)
		if err != nil {
			return nil, err
		}
		if table == nil {
			return nil, ErrNoSnapshot
		}
		s := &Snapshot{Table: table, FetchedAt: l.now()}
		l.mu.Lock()
		l.current = s
		l.mu.Unlock()
		l.logger.Info("dataset refreshed",
			zap.Int("rows", table.Len()),
			zap.Duration("took", s.FetchedAt.Sub(started)),
		)
		return s, nil
	})
	if err != nil {
		l.logger.Error("dataset refresh failed", zap.Error(err))
		return nil, err
	}
	if shared {
		l.logger.Debug("joined in-flight refresh")
	}
	return v.(*Snapshot), nil
}
