package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/avc/storefront-gateway/internal/domain"
	"go.uber.org/zap"
)

// SessionHandler обрабатывает запросы статуса сессии, входа и выхода
type SessionHandler struct {
	registry SessionRegistry
	logger   *zap.Logger
}

// NewSessionHandler создает новый SessionHandler
func NewSessionHandler(registry SessionRegistry, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		registry: registry,
		logger:   logger,
	}
}

type sessionResponse struct {
	Status domain.SessionStatus `json:"status"`
}

// Status возвращает статус сессии, проверяя ее при первом обращении
func (h *SessionHandler) Status(w http.ResponseWriter, r *http.Request) {
	s, ok := GetSession(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	status, err := s.Resolve(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, sessionResponse{Status: status})
}

// Login проксирует вход в storefront API
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	s, ok := GetSession(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var creds domain.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	creds.Username = strings.TrimSpace(creds.Username)
	if creds.Username == "" || creds.Password == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	status, err := s.Login(r.Context(), creds)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, sessionResponse{Status: status})
}

// Logout завершает сессию, удаляет черновик и cookie
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	s, ok := GetSession(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := s.Logout(r.Context()); err != nil {
		h.logger.Error("failed to clear draft on logout", zap.String("session_id", s.ID()), zap.Error(err))
	}
	h.registry.Remove(s.ID())
	clearSessionCookie(w, r)

	w.WriteHeader(http.StatusNoContent)
}
