package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avc/storefront-gateway/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

type sessionCount int

func (n sessionCount) Len() int { return int(n) }

func TestHealthHandler(t *testing.T) {
	logger := zap.NewNop()

	t.Run("Storage available", func(t *testing.T) {
		h := NewHealthHandler(memory.New(), "memory", sessionCount(3), logger)

		w := httptest.NewRecorder()
		h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok","draft_storage":"memory","sessions":3}`, w.Body.String())

		w = httptest.NewRecorder()
		h.Ready(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ready","draft_storage":"memory","drafts":"ok","sessions":3}`, w.Body.String())
	})

	t.Run("Storage unavailable", func(t *testing.T) {
		pings := 0
		h := NewHealthHandler(pingerFunc(func(context.Context) error {
			pings++
			return errors.New("connection refused")
		}), "postgres", sessionCount(0), logger)

		// Живость не зависит от хранилища
		w := httptest.NewRecorder()
		h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Zero(t, pings)

		w = httptest.NewRecorder()
		h.Ready(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"status":"not_ready","draft_storage":"postgres","drafts":"unavailable","sessions":0}`, w.Body.String())
		assert.Equal(t, 1, pings)
	})
}
