package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/avc/storefront-gateway/internal/domain"
	domainmocks "github.com/avc/storefront-gateway/internal/domain/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type proberFunc func(ctx context.Context) domain.SessionStatus

func (f proberFunc) Probe(ctx context.Context) domain.SessionStatus {
	return f(ctx)
}

// gatedProber блокирует проверку до закрытия release
func gatedProber(status domain.SessionStatus, release <-chan struct{}) Prober {
	return proberFunc(func(context.Context) domain.SessionStatus {
		<-release
		return status
	})
}

func newUnauthorized() *domain.APIError {
	return &domain.APIError{Kind: domain.KindUnauthorized, Status: 401, Message: "Authentication credentials were not provided."}
}

func TestRefreshCoordinator_SingleWave(t *testing.T) {
	const n = 8

	t.Run("Concurrent failures share one probe and are replayed", func(t *testing.T) {
		release := make(chan struct{})
		logout := domainmocks.NewLogoutBackendMock(t)
		coord := NewRefreshCoordinator(gatedProber(domain.SessionAuthenticated, release), logout, zap.NewNop())

		var attempts, replays atomic.Int32
		call := func(ctx context.Context) error {
			if isRetried(ctx) {
				replays.Add(1)
				return nil
			}
			attempts.Add(1)
			return newUnauthorized()
		}

		g, ctx := errgroup.WithContext(context.Background())
		for i := 0; i < n; i++ {
			g.Go(func() error {
				return coord.Execute(ctx, pathCheckout, call)
			})
		}

		require.Eventually(t, func() bool { return coord.Waiting() == n }, 2*time.Second, 5*time.Millisecond)
		require.Eventually(t, func() bool { return coord.Status() == domain.SessionChecking }, 2*time.Second, 5*time.Millisecond)
		close(release)

		require.NoError(t, g.Wait())
		assert.EqualValues(t, 1, coord.Probes())
		assert.EqualValues(t, n, attempts.Load())
		assert.EqualValues(t, n, replays.Load())
		assert.Equal(t, domain.SessionAuthenticated, coord.Status())
	})

	t.Run("Session expired logs out once and fails every request", func(t *testing.T) {
		release := make(chan struct{})
		logout := domainmocks.NewLogoutBackendMock(t)
		logout.EXPECT().Logout(mock.Anything).Return(nil).Once()
		coord := NewRefreshCoordinator(gatedProber(domain.SessionExpired, release), logout, zap.NewNop())

		errs := make([]error, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs[i] = coord.Execute(context.Background(), pathCart, func(context.Context) error {
					return newUnauthorized()
				})
			}()
		}

		require.Eventually(t, func() bool { return coord.Waiting() == n }, 2*time.Second, 5*time.Millisecond)
		close(release)
		wg.Wait()

		assert.EqualValues(t, 1, coord.Probes())
		for _, err := range errs {
			assert.ErrorIs(t, err, domain.ErrSessionExpired)
		}
		assert.Equal(t, domain.SessionExpired, coord.Status())
	})
}

func TestRefreshCoordinator_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("Guest outcome returns the original error", func(t *testing.T) {
		logout := domainmocks.NewLogoutBackendMock(t)
		coord := NewRefreshCoordinator(proberFunc(func(context.Context) domain.SessionStatus {
			return domain.SessionGuest
		}), logout, zap.NewNop())

		original := newUnauthorized()
		calls := 0
		err := coord.Execute(ctx, pathProfile, func(context.Context) error {
			calls++
			return original
		})

		assert.Same(t, original, err)
		assert.Equal(t, 1, calls)
		assert.EqualValues(t, 1, coord.Probes())
		logout.AssertNotCalled(t, "Logout", mock.Anything)
	})

	t.Run("Error outcome is transient without logout", func(t *testing.T) {
		logout := domainmocks.NewLogoutBackendMock(t)
		coord := NewRefreshCoordinator(proberFunc(func(context.Context) domain.SessionStatus {
			return domain.SessionError
		}), logout, zap.NewNop())

		err := coord.Execute(ctx, pathCheckout, func(context.Context) error { return newUnauthorized() })

		assert.ErrorIs(t, err, domain.ErrTransient)
		assert.Equal(t, domain.SessionError, coord.Status())
	})

	t.Run("Replayed request is not coordinated again", func(t *testing.T) {
		logout := domainmocks.NewLogoutBackendMock(t)
		coord := NewRefreshCoordinator(proberFunc(func(context.Context) domain.SessionStatus {
			return domain.SessionAuthenticated
		}), logout, zap.NewNop())

		calls := 0
		err := coord.Execute(ctx, pathCheckout, func(context.Context) error {
			calls++
			return newUnauthorized()
		})

		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.Equal(t, 2, calls)
		assert.EqualValues(t, 1, coord.Probes())
	})

	t.Run("Non-authorization errors pass through", func(t *testing.T) {
		logout := domainmocks.NewLogoutBackendMock(t)
		coord := NewRefreshCoordinator(proberFunc(func(context.Context) domain.SessionStatus {
			t.Fatal("probe must not run")
			return domain.SessionError
		}), logout, zap.NewNop())

		rejected := &domain.APIError{Kind: domain.KindRejected, Status: 400, Message: "Order not found"}
		err := coord.Execute(ctx, pathCheckout, func(context.Context) error { return rejected })
		assert.Same(t, rejected, err)

		plain := errors.New("boom")
		err = coord.Execute(ctx, pathCheckout, func(context.Context) error { return plain })
		assert.Same(t, plain, err)
		assert.Equal(t, domain.SessionUnknown, coord.Status())
	})

	t.Run("Refresh calls bypass coordination", func(t *testing.T) {
		logout := domainmocks.NewLogoutBackendMock(t)
		coord := NewRefreshCoordinator(proberFunc(func(context.Context) domain.SessionStatus {
			t.Fatal("probe must not run")
			return domain.SessionError
		}), logout, zap.NewNop())

		original := newUnauthorized()
		err := coord.Execute(ctx, pathTokenRefresh, func(context.Context) error { return original })
		assert.Same(t, original, err)

		err = coord.Execute(markRetried(ctx), pathCheckout, func(context.Context) error { return original })
		assert.Same(t, original, err)
		assert.Zero(t, coord.Probes())
	})

	t.Run("Waiter abandons on cancellation without cancelling the wave", func(t *testing.T) {
		release := make(chan struct{})
		logout := domainmocks.NewLogoutBackendMock(t)
		coord := NewRefreshCoordinator(gatedProber(domain.SessionGuest, release), logout, zap.NewNop())

		waveCtx, cancel := context.WithCancel(ctx)
		done := make(chan error, 1)
		go func() {
			done <- coord.Execute(waveCtx, pathCart, func(context.Context) error { return newUnauthorized() })
		}()

		require.Eventually(t, func() bool { return coord.Waiting() == 1 }, 2*time.Second, 5*time.Millisecond)
		cancel()
		assert.ErrorIs(t, <-done, context.Canceled)

		close(release)
		require.Eventually(t, func() bool { return coord.Status() == domain.SessionGuest }, 2*time.Second, 5*time.Millisecond)
		assert.EqualValues(t, 1, coord.Probes())
	})
}

func TestRefreshCoordinator_Check(t *testing.T) {
	logout := domainmocks.NewLogoutBackendMock(t)
	coord := NewRefreshCoordinator(proberFunc(func(context.Context) domain.SessionStatus {
		return domain.SessionGuest
	}), logout, zap.NewNop())

	assert.Equal(t, domain.SessionUnknown, coord.Status())

	status, err := coord.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.SessionGuest, status)
	assert.Equal(t, domain.SessionGuest, coord.Status())
}
