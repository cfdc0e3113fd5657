package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pivolan/payroll_analyzer/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func tableOf(n int) *models.Table {
	return &models.Table{Records: make([]models.Record, n)}
}

func TestSnapshotIsStale(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := &Snapshot{Table: tableOf(1), FetchedAt: at}

	assert.False(t, s.IsStale(at, DefaultTTL))
	assert.False(t, s.IsStale(at.Add(299*time.Second), DefaultTTL))
	assert.True(t, s.IsStale(at.Add(300*time.Second), DefaultTTL))

	var none *Snapshot
	assert.True(t, none.IsStale(at, DefaultTTL))
}

func TestLoaderGetRefreshesWhenStale(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	var calls int32
	loader := NewLoader(func(ctx context.Context) (*models.Table, error) {
		n := atomic.AddInt32(&calls, 1)
		return tableOf(int(n)), nil
	}, WithClock(clock.Now), WithTTL(time.Minute), WithLogger(zap.NewExample()))

	assert.True(t, loader.IsStale(clock.Now()))
	_, ok := loader.Snapshot()
	assert.False(t, ok)

	s, err := loader.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, s.Table.Len())

	clock.Advance(30 * time.Second)
	s, err = loader.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, s.Table.Len(), "fresh snapshot is reused")
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

	clock.Advance(30 * time.Second)
	assert.True(t, loader.IsStale(clock.Now()))
	s, err = loader.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, s.Table.Len())
	assert.Equal(t, clock.Now(), s.FetchedAt)
}

func TestLoaderFailedRefreshKeepsSnapshot(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	boom := errors.New("sheet unavailable")
	fail := false
	loader := NewLoader(func(ctx context.Context) (*models.Table, error) {
		if fail {
			return nil, boom
		}
		return tableOf(3), nil
	}, WithClock(clock.Now))

	first, err := loader.Refresh(context.Background())
	require.NoError(t, err)

	fail = true
	_, err = loader.Refresh(context.Background())
	assert.True(t, errors.Is(err, boom))
	kept, ok := loader.Snapshot()
	require.True(t, ok)
	assert.Same(t, first, kept)

	clock.Advance(DefaultTTL)
	served, err := loader.Get(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, served, "stale snapshot is served when the refresh fails")
}

func TestLoaderGetWithoutSnapshotFails(t *testing.T) {
	boom := errors.New("no credentials")
	loader := NewLoader(func(ctx context.Context) (*models.Table, error) { return nil, boom })
	_, err := loader.Get(context.Background())
	assert.True(t, errors.Is(err, boom))

	empty := NewLoader(func(ctx context.Context) (*models.Table, error) { return nil, nil })
	_, err = empty.Refresh(context.Background())
	assert.True(t, errors.Is(err, ErrNoSnapshot))
}

func TestLoaderConcurrentRefreshSharesFetch(t *testing.T) {
	release := make(chan struct{})
	var calls int32
	loader := NewLoader(func(ctx context.Context) (*models.Table, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return tableOf(7), nil
	})

	const callers = 8
	var wg sync.WaitGroup
	results := make([]*Snapshot, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := loader.Refresh(context.Background())
			assert.NoError(t, err)
			results[i] = s
		}(i)
	}
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	for _, s := range results {
		assert.Same(t, results[0], s)
	}
}
