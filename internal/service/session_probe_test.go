package service

import (
	"context"
	"errors"
	"testing"

	"github.com/avc/storefront-gateway/internal/domain"
	domainmocks "github.com/avc/storefront-gateway/internal/domain/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestSessionProbe_Probe(t *testing.T) {
	ctx := context.Background()
	unauthorized := &domain.APIError{Kind: domain.KindUnauthorized, Status: 401}
	unavailable := &domain.APIError{Kind: domain.KindTransient, Status: 503}

	t.Run("Refresh reports guest access", func(t *testing.T) {
		backend := domainmocks.NewRefreshBackendMock(t)
		backend.EXPECT().HasRefreshCredential(mock.Anything).Return(true, nil).Once()
		backend.EXPECT().Refresh(mock.Anything).Return(&domain.RefreshResult{Message: domain.GuestAccessMessage}, nil).Once()

		status := NewSessionProbe(backend, zap.NewNop()).Probe(ctx)
		assert.Equal(t, domain.SessionGuest, status)
	})

	t.Run("Refresh reports normal session", func(t *testing.T) {
		backend := domainmocks.NewRefreshBackendMock(t)
		backend.EXPECT().HasRefreshCredential(mock.Anything).Return(true, nil).Once()
		backend.EXPECT().Refresh(mock.Anything).Return(&domain.RefreshResult{Message: "Token refreshed"}, nil).Once()

		status := NewSessionProbe(backend, zap.NewNop()).Probe(ctx)
		assert.Equal(t, domain.SessionAuthenticated, status)
	})

	t.Run("Refresh rejected", func(t *testing.T) {
		backend := domainmocks.NewRefreshBackendMock(t)
		backend.EXPECT().HasRefreshCredential(mock.Anything).Return(true, nil).Once()
		backend.EXPECT().Refresh(mock.Anything).Return(nil, unauthorized).Once()

		status := NewSessionProbe(backend, zap.NewNop()).Probe(ctx)
		assert.Equal(t, domain.SessionExpired, status)
	})

	t.Run("Refresh fails for another reason", func(t *testing.T) {
		backend := domainmocks.NewRefreshBackendMock(t)
		backend.EXPECT().HasRefreshCredential(mock.Anything).Return(true, nil).Once()
		backend.EXPECT().Refresh(mock.Anything).Return(nil, unavailable).Once()

		status := NewSessionProbe(backend, zap.NewNop()).Probe(ctx)
		assert.Equal(t, domain.SessionError, status)
	})

	t.Run("No credential, guest access granted", func(t *testing.T) {
		backend := domainmocks.NewRefreshBackendMock(t)
		backend.EXPECT().HasRefreshCredential(mock.Anything).Return(false, nil).Once()
		backend.EXPECT().Refresh(mock.Anything).Return(&domain.RefreshResult{Message: domain.GuestAccessMessage}, nil).Once()

		status := NewSessionProbe(backend, zap.NewNop()).Probe(ctx)
		assert.Equal(t, domain.SessionGuest, status)
	})

	t.Run("No credential, guest access fails", func(t *testing.T) {
		backend := domainmocks.NewRefreshBackendMock(t)
		backend.EXPECT().HasRefreshCredential(mock.Anything).Return(false, nil).Once()
		backend.EXPECT().Refresh(mock.Anything).Return(nil, unavailable).Once()

		status := NewSessionProbe(backend, zap.NewNop()).Probe(ctx)
		assert.Equal(t, domain.SessionError, status)
	})

	t.Run("Credential check fails, guest fallback succeeds", func(t *testing.T) {
		backend := domainmocks.NewRefreshBackendMock(t)
		backend.EXPECT().HasRefreshCredential(mock.Anything).Return(false, errors.New("connection refused")).Once()
		backend.EXPECT().Refresh(mock.Anything).Return(&domain.RefreshResult{Message: domain.GuestAccessMessage}, nil).Once()

		status := NewSessionProbe(backend, zap.NewNop()).Probe(ctx)
		assert.Equal(t, domain.SessionGuest, status)
	})

	t.Run("Credential check and fallback fail", func(t *testing.T) {
		backend := domainmocks.NewRefreshBackendMock(t)
		backend.EXPECT().HasRefreshCredential(mock.Anything).Return(false, errors.New("connection refused")).Once()
		backend.EXPECT().Refresh(mock.Anything).Return(nil, unauthorized).Once()

		status := NewSessionProbe(backend, zap.NewNop()).Probe(ctx)
		assert.Equal(t, domain.SessionError, status)
	})

	t.Run("Each call runs the full sequence", func(t *testing.T) {
		backend := domainmocks.NewRefreshBackendMock(t)
		backend.EXPECT().HasRefreshCredential(mock.Anything).Return(true, nil).Times(2)
		backend.EXPECT().Refresh(mock.Anything).Return(&domain.RefreshResult{}, nil).Times(2)

		probe := NewSessionProbe(backend, zap.NewNop())
		assert.Equal(t, domain.SessionAuthenticated, probe.Probe(ctx))
		assert.Equal(t, domain.SessionAuthenticated, probe.Probe(ctx))
	})
}
