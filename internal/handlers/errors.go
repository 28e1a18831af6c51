package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avc/storefront-gateway/internal/domain"
	"github.com/avc/storefront-gateway/internal/service"
	"go.uber.org/zap"
)

// errorResponse тело ответа с ошибкой
type errorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

// statusOf переводит ошибку оформления в HTTP статус и код
func statusOf(err error) (int, string) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		return http.StatusUnprocessableEntity, string(domain.KindValidation)
	case errors.Is(err, domain.ErrCartEmpty):
		return http.StatusConflict, "cart_empty"
	case errors.Is(err, domain.ErrNoPendingOrder):
		return http.StatusConflict, "no_pending_order"
	case errors.Is(err, domain.ErrOrderMismatch):
		return http.StatusConflict, "order_mismatch"
	case errors.Is(err, domain.ErrPaymentInProgress):
		return http.StatusConflict, "payment_in_progress"
	case errors.Is(err, service.ErrSyncClosed):
		return http.StatusServiceUnavailable, "session_closed"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	}

	switch domain.KindOf(err) {
	case domain.KindSessionExpired, domain.KindUnauthorized:
		return http.StatusUnauthorized, string(domain.KindOf(err))
	case domain.KindPayment:
		return http.StatusPaymentRequired, string(domain.KindPayment)
	case domain.KindRejected:
		return http.StatusBadRequest, string(domain.KindRejected)
	case domain.KindTransient:
		return http.StatusBadGateway, string(domain.KindTransient)
	}
	return http.StatusInternalServerError, ""
}

// writeError отвечает ошибкой; неожиданные ошибки логируются
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status, code := statusOf(err)
	if status == http.StatusInternalServerError {
		logger.Error("unexpected checkout error", zap.Error(err))
	}

	resp := errorResponse{
		Error: domain.MessageOf(err),
		Code:  code,
	}

	var vErr *domain.ValidationError
	var apiErr *domain.APIError
	switch {
	case errors.As(err, &vErr):
		resp.Fields = vErr.Fields
	case errors.As(err, &apiErr):
		resp.Fields = apiErr.Fields
	}
	switch {
	case errors.Is(err, domain.ErrCartEmpty), errors.Is(err, domain.ErrNoPendingOrder),
		errors.Is(err, domain.ErrOrderMismatch), errors.Is(err, domain.ErrPaymentInProgress):
		resp.Error = err.Error()
	}

	writeJSON(w, logger, status, resp)
}
