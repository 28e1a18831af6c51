package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avc/storefront-gateway/internal/checkout"
	"github.com/avc/storefront-gateway/internal/domain"
	"go.uber.org/zap"
)

// CheckoutHandler обрабатывает шаги оформления заказа
type CheckoutHandler struct {
	logger *zap.Logger
}

// NewCheckoutHandler создает новый CheckoutHandler
func NewCheckoutHandler(logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{logger: logger}
}

// Enter открывает оформление. Незаполненная форма не считается ошибкой.
func (h *CheckoutHandler) Enter(w http.ResponseWriter, r *http.Request) {
	s, ok := GetSession(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	view, err := s.Enter(r.Context())
	var vErr *domain.ValidationError
	if err != nil && !errors.As(err, &vErr) {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, view)
}

// Update применяет правки формы и планирует синхронизацию заказа
func (h *CheckoutHandler) Update(w http.ResponseWriter, r *http.Request) {
	s, ok := GetSession(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var edit domain.DraftEdit
	if err := json.NewDecoder(r.Body).Decode(&edit); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	view, err := s.UpdateDraft(r.Context(), edit)
	var vErr *domain.ValidationError
	switch {
	case err == nil:
		writeJSON(w, h.logger, http.StatusAccepted, view)
	case errors.As(err, &vErr):
		// Черновик сохранен, UI показывает незаполненные поля
		writeJSON(w, h.logger, http.StatusUnprocessableEntity, view)
	default:
		writeError(w, h.logger, err)
	}
}

// PaymentStep синхронизирует заказ перед переходом к оплате
func (h *CheckoutHandler) PaymentStep(w http.ResponseWriter, r *http.Request) {
	s, ok := GetSession(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	payment, err := s.PaymentStep(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, payment)
}

// Confirm проводит оплату отложенного заказа
func (h *CheckoutHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	s, ok := GetSession(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req checkout.ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if req.PendingOrderID == "" || req.PaymentMethodID == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	completion, err := s.Confirm(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.Info("checkout completed",
		zap.String("session_id", s.ID()),
		zap.String("order_id", string(completion.OrderID)),
		zap.Bool("guest", completion.IsGuest),
	)
	writeJSON(w, h.logger, http.StatusOK, completion)
}
