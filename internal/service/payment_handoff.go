package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/avc/storefront-gateway/internal/domain"
	"go.uber.org/zap"
)

// PaymentHandoff передает отложенный заказ на оплату и завершает оформление
type PaymentHandoff struct {
	capturer domain.PaymentCapturer
	engine   *OrderSyncEngine
	store    *DraftStore
	logger   *zap.Logger

	inProgress atomic.Bool
}

// NewPaymentHandoff создает новый PaymentHandoff
func NewPaymentHandoff(
	capturer domain.PaymentCapturer,
	engine *OrderSyncEngine,
	store *DraftStore,
	logger *zap.Logger,
) *PaymentHandoff {
	return &PaymentHandoff{
		capturer: capturer,
		engine:   engine,
		store:    store,
		logger:   logger,
	}
}

// Confirm проводит оплату отложенного заказа.
// При неудаче черновик и идентификатор заказа сохраняются для повторной попытки.
func (h *PaymentHandoff) Confirm(
	ctx context.Context,
	pendingOrderID domain.OrderID,
	total domain.Money,
	paymentMethodID string,
) (*domain.Completion, error) {
	if !h.inProgress.CompareAndSwap(false, true) {
		return nil, domain.ErrPaymentInProgress
	}
	defer h.inProgress.Store(false)

	// Оплачивается только заказ с последними правками
	if err := h.engine.Flush(ctx); err != nil {
		return nil, err
	}

	draft, err := h.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("payment handoff: %w", err)
	}

	orderID := h.engine.State().PendingOrderID
	if orderID == "" {
		orderID = draft.PendingOrderID
	}
	if orderID == "" {
		return nil, domain.ErrNoPendingOrder
	}
	if pendingOrderID != orderID || total != draft.Financials.TotalAmount {
		h.logger.Warn("Payment confirmation does not match checkout draft",
			zap.String("requested_order_id", string(pendingOrderID)),
			zap.String("pending_order_id", string(orderID)),
			zap.Stringer("requested_total", total),
			zap.Stringer("draft_total", draft.Financials.TotalAmount),
		)
		return nil, domain.ErrOrderMismatch
	}

	result, err := h.capturer.Capture(ctx, orderID, paymentMethodID)
	if err != nil {
		return nil, paymentError(err)
	}
	if result.Status != domain.PaymentSucceeded {
		message := result.Error
		if message == "" {
			message = fmt.Sprintf("Payment not completed. Status: %s", result.Status)
		}
		return nil, &domain.APIError{Kind: domain.KindPayment, Message: message}
	}

	completion := &domain.Completion{
		OrderID: orderID,
		Customer: domain.CustomerDetails{
			FirstName: draft.FirstName,
			LastName:  draft.LastName,
			Email:     draft.Email,
			Phone:     draft.Phone,
		},
		Total:           total,
		PaymentIntentID: result.PaymentIntentID,
	}

	h.engine.Reset()
	if err := h.store.Clear(ctx); err != nil {
		// Оплата уже проведена, ошибку очистки только логируем
		h.logger.Error("Failed to clear checkout draft after payment", zap.String("order_id", string(orderID)), zap.Error(err))
	}

	h.logger.Info("Payment captured", zap.String("order_id", string(orderID)), zap.Stringer("total", total))
	return completion, nil
}

// paymentError переводит ошибку списания в класс payment, кроме истекшей сессии
func paymentError(err error) error {
	if errors.Is(err, domain.ErrSessionExpired) || errors.Is(err, domain.ErrPayment) {
		return err
	}

	message := "Payment could not be processed. Please try again."
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Kind == domain.KindRejected && apiErr.Message != "" {
		message = apiErr.Message
	}
	return &domain.APIError{Kind: domain.KindPayment, Message: message, Err: err}
}
