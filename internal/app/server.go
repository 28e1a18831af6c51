package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Время записи включает ожидание upstream при Flush и подтверждении оплаты
const (
	serverReadTimeout  = 15 * time.Second
	serverWriteTimeout = 45 * time.Second
	serverIdleTimeout  = 60 * time.Second
	shutdownTimeout    = 10 * time.Second
)

// createServer создает HTTP сервер gateway
func createServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: serverReadTimeout,
		ReadTimeout:       serverReadTimeout,
		WriteTimeout:      serverWriteTimeout,
		IdleTimeout:       serverIdleTimeout,
	}
}

// runServer обслуживает запросы до сигнала завершения, отмены ctx
// или ошибки прослушивания порта
func (a *App) runServer(ctx context.Context) error {
	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("starting HTTP server", zap.String("address", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		a.logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
	}

	return nil
}

// shutdown останавливает прием запросов, затем фоновые проверки,
// движки синхронизации сессий и хранилище черновиков
func (a *App) shutdown(cancel context.CancelFunc) {
	a.logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("server shutdown error", zap.Error(err))
	}

	cancel()
	a.workerPool.Stop()
	a.logger.Info("session keeper stopped")

	// Незавершенные debounce-таймеры отменяются, черновики уже сохранены
	sessions := a.registry.Len()
	a.registry.Close()
	a.logger.Info("checkout sessions closed", zap.Int("sessions", sessions))

	a.storage.close()
	a.logger.Info("draft storage closed")

	a.logger.Info("server stopped gracefully")
	_ = a.logger.Sync()
}
