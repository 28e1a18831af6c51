package app

import (
	"github.com/avc/storefront-gateway/internal/handlers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// setupRouter создает и настраивает роутер
func setupRouter(deps *dependencies, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Глобальные middleware
	setupMiddleware(r, logger)

	// Маршруты
	setupRoutes(r, deps, logger)

	return r
}

// setupMiddleware настраивает middleware для роутера
func setupMiddleware(r *chi.Mux, logger *zap.Logger) {
	r.Use(handlers.RequestIDMiddleware())
	r.Use(handlers.LoggingMiddleware(logger))
	r.Use(handlers.RecoveryMiddleware(logger))
	r.Use(middleware.Compress(5))
}

// setupRoutes настраивает маршруты приложения
func setupRoutes(r *chi.Mux, deps *dependencies, logger *zap.Logger) {
	// Health check эндпоинты
	r.Get("/health", deps.handlers.health.Health)
	r.Get("/ready", deps.handlers.health.Ready)

	// Эндпоинты браузерной сессии
	r.Group(func(r chi.Router) {
		r.Use(handlers.SessionMiddleware(deps.jwtManager, deps.registry, logger))

		r.Get("/api/session", deps.handlers.session.Status)
		r.Post("/api/session/login", deps.handlers.session.Login)
		r.Post("/api/session/logout", deps.handlers.session.Logout)

		r.Post("/api/cart/items", deps.handlers.cart.AddItem)

		r.Get("/api/checkout", deps.handlers.checkout.Enter)
		r.Patch("/api/checkout", deps.handlers.checkout.Update)
		r.Post("/api/checkout/payment-step", deps.handlers.checkout.PaymentStep)
		r.Post("/api/checkout/confirm", deps.handlers.checkout.Confirm)
	})
}
