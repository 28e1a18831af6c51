package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/avc/storefront-gateway/internal/domain"
	"go.uber.org/zap"
)

// storagePingTimeout ограничивает проверку хранилища черновиков
const storagePingTimeout = 2 * time.Second

// SessionCounter сообщает число живых сессий оформления
type SessionCounter interface {
	Len() int
}

// HealthHandler отвечает на проверки живости и готовности gateway
type HealthHandler struct {
	drafts   domain.Pinger
	backend  string
	sessions SessionCounter
	logger   *zap.Logger
}

// NewHealthHandler создает новый HealthHandler.
// backend попадает в ответ как имя хранилища черновиков.
func NewHealthHandler(drafts domain.Pinger, backend string, sessions SessionCounter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		drafts:   drafts,
		backend:  backend,
		sessions: sessions,
		logger:   logger,
	}
}

// HealthResponse состояние gateway
type HealthResponse struct {
	Status       string `json:"status"`
	DraftStorage string `json:"draft_storage"`
	Drafts       string `json:"drafts,omitempty"` // Результат ping, только для Ready
	Sessions     int    `json:"sessions"`
}

// Health сообщает, что процесс жив. Хранилище здесь не проверяется.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, HealthResponse{
		Status:       "ok",
		DraftStorage: h.backend,
		Sessions:     h.sessions.Len(),
	})
}

// Ready проверяет хранилище черновиков перед приемом трафика
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storagePingTimeout)
	defer cancel()

	response := HealthResponse{
		Status:       "ready",
		DraftStorage: h.backend,
		Drafts:       "ok",
		Sessions:     h.sessions.Len(),
	}
	status := http.StatusOK

	if err := h.drafts.Ping(ctx); err != nil {
		h.logger.Warn("readiness check failed: draft storage unreachable",
			zap.String("draft_storage", h.backend), zap.Error(err))
		response.Status = "not_ready"
		response.Drafts = "unavailable"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, h.logger, status, response)
}
