package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/avc/storefront-gateway/internal/checkout"
	"github.com/avc/storefront-gateway/internal/checkout/checkouttest"
	"github.com/avc/storefront-gateway/internal/domain"
	"github.com/avc/storefront-gateway/internal/service"
	"github.com/avc/storefront-gateway/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type purgerFunc func(ctx context.Context, maxAge time.Duration) (int64, error)

func (f purgerFunc) PurgeOlderThan(ctx context.Context, maxAge time.Duration) (int64, error) {
	return f(ctx, maxAge)
}

func newTestRegistry(t *testing.T, f *checkouttest.Storefront) *checkout.Registry {
	t.Helper()
	reg := checkout.NewRegistry(checkout.SessionConfig{
		APIBaseURL:      f.URL(),
		UpstreamTimeout: 5 * time.Second,
		Sync:            service.SyncConfig{Debounce: time.Hour, Rates: service.DefaultRates},
	}, memory.New(), zap.NewNop())
	t.Cleanup(reg.Close)
	return reg
}

func TestPool_CheckSession(t *testing.T) {
	ctx := context.Background()
	f := checkouttest.NewStorefront(t)
	reg := newTestRegistry(t, f)
	logger, _ := zap.NewDevelopment()

	pool := NewPool(PoolConfig{Workers: 1, QueueSize: 10}, reg, nil, logger)

	s, err := reg.GetOrCreate("s1")
	require.NoError(t, err)
	require.Equal(t, domain.SessionUnknown, s.Status())

	pool.checkSession(ctx, s)
	assert.Equal(t, domain.SessionGuest, s.Status())
	assert.Equal(t, 1, f.Count("refresh"))
}

func TestPool_CheckSession_Expired(t *testing.T) {
	ctx := context.Background()
	f := checkouttest.NewStorefront(t)
	reg := newTestRegistry(t, f)
	logger, _ := zap.NewDevelopment()

	pool := NewPool(PoolConfig{Workers: 1, QueueSize: 10}, reg, nil, logger)

	s, err := reg.GetOrCreate("s1")
	require.NoError(t, err)
	status, err := s.Login(ctx, domain.Credentials{Username: checkouttest.Username, Password: checkouttest.Password})
	require.NoError(t, err)
	require.Equal(t, domain.SessionAuthenticated, status)

	// Refresh cookie истек на backend между проверками
	f.ExpireRefresh()

	pool.checkSession(ctx, s)
	assert.Equal(t, domain.SessionExpired, s.Status())
	assert.Equal(t, 1, f.Count("logout"))
}

func TestPool_Scan(t *testing.T) {
	ctx := context.Background()
	f := checkouttest.NewStorefront(t)
	reg := newTestRegistry(t, f)

	var purgedWith atomic.Int64
	purger := purgerFunc(func(_ context.Context, maxAge time.Duration) (int64, error) {
		purgedWith.Store(int64(maxAge))
		return 3, nil
	})

	pool := NewPool(PoolConfig{
		Workers:     1,
		QueueSize:   10,
		IdleTTL:     20 * time.Millisecond,
		DraftMaxAge: 72 * time.Hour,
	}, reg, purger, zap.NewNop())

	_, err := reg.GetOrCreate("idle")
	require.NoError(t, err)
	time.Sleep(40 * time.Millisecond)
	active, err := reg.GetOrCreate("active")
	require.NoError(t, err)

	pool.scan(ctx)

	assert.Equal(t, 1, reg.Len())
	require.Len(t, pool.queue, 1)
	assert.Same(t, active, <-pool.queue)
	assert.Equal(t, int64(72*time.Hour), purgedWith.Load())
}

func TestPool_Scan_QueueFull(t *testing.T) {
	ctx := context.Background()
	f := checkouttest.NewStorefront(t)
	reg := newTestRegistry(t, f)

	purger := purgerFunc(func(context.Context, time.Duration) (int64, error) {
		return 0, errors.New("connection refused")
	})
	pool := NewPool(PoolConfig{Workers: 1, QueueSize: 1, DraftMaxAge: time.Hour}, reg, purger, zap.NewNop())

	for _, id := range []string{"s1", "s2", "s3"} {
		_, err := reg.GetOrCreate(id)
		require.NoError(t, err)
	}

	pool.scan(ctx)
	assert.Len(t, pool.queue, 1)
	assert.Equal(t, 3, reg.Len())
}

func TestPool_StartStop(t *testing.T) {
	f := checkouttest.NewStorefront(t)
	reg := newTestRegistry(t, f)

	s, err := reg.GetOrCreate("s1")
	require.NoError(t, err)

	pool := NewPool(PoolConfig{
		Workers:      2,
		QueueSize:    10,
		ScanInterval: 10 * time.Millisecond,
	}, reg, nil, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)

	require.Eventually(t, func() bool {
		return s.Status() == domain.SessionGuest
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	pool.Stop()
}
