package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/avc/storefront-gateway/internal/checkout"
	"github.com/avc/storefront-gateway/internal/utils/jwt"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey string

const (
	SessionKey   contextKey = "checkout_session"
	RequestIDKey contextKey = "request_id"
	accessLogKey contextKey = "access_log"
)

// maxRequestIDLen ограничивает принимаемый от прокси X-Request-ID
const maxRequestIDLen = 128

// accessLog заполняется вложенными middleware и пишется LoggingMiddleware
type accessLog struct {
	sessionID string
}

// SessionCookieName имя cookie браузерной сессии
const SessionCookieName = "checkout_session"

// SessionRegistry определяет доступ к сессиям оформления
type SessionRegistry interface {
	GetOrCreate(id string) (*checkout.Session, error)
	Remove(id string)
}

// SessionMiddleware проверяет cookie браузерной сессии и привязывает сессию оформления.
// Без действительной cookie выдается новая сессия.
func SessionMiddleware(jwtManager *jwt.Manager, registry SessionRegistry, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sessionID string
			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				if id, err := jwtManager.Validate(cookie.Value); err == nil {
					sessionID = id
				}
			}

			if sessionID == "" {
				id, token, err := jwtManager.Issue()
				if err != nil {
					logger.Error("failed to issue session cookie", zap.Error(err))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
					return
				}
				sessionID = id
				setSessionCookie(w, r, token, jwtManager.TTL())
			}

			session, err := registry.GetOrCreate(sessionID)
			if err != nil {
				logger.Error("failed to open checkout session", zap.String("session_id", sessionID), zap.Error(err))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			if entry, ok := r.Context().Value(accessLogKey).(*accessLog); ok {
				entry.sessionID = session.ID()
			}

			// Сессия не вытесняется, пока запрос не завершен
			defer session.Begin()()

			// Добавляем сессию в контекст
			ctx := context.WithValue(r.Context(), SessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDMiddleware принимает X-Request-ID от прокси или генерирует новый
func RequestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" || len(requestID) > maxRequestIDLen {
				requestID = uuid.New().String()
			}
			ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
			w.Header().Set("X-Request-ID", requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LoggingMiddleware логирует HTTP запросы
func LoggingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			entry := &accessLog{}
			r = r.WithContext(context.WithValue(r.Context(), accessLogKey, entry))

			// Используем chi middleware wrapper для получения статуса
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				requestID, _ := r.Context().Value(RequestIDKey).(string)
				fields := []zap.Field{
					zap.String("request_id", requestID),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
				}
				if entry.sessionID != "" {
					fields = append(fields, zap.String("session_id", entry.sessionID))
				}
				logger.Info("HTTP request", fields...)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// RecoveryMiddleware обрабатывает паники
func RecoveryMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					requestID, _ := r.Context().Value(RequestIDKey).(string)
					logger.Error("panic recovered",
						zap.String("request_id", requestID),
						zap.Any("panic", rec),
					)
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// GetSession извлекает сессию оформления из контекста
func GetSession(ctx context.Context) (*checkout.Session, bool) {
	s, ok := ctx.Value(SessionKey).(*checkout.Session)
	return s, ok && s != nil
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}
