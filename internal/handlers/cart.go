package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/avc/storefront-gateway/internal/domain"
	"go.uber.org/zap"
)

// CartHandler проксирует изменения корзины
type CartHandler struct {
	logger *zap.Logger
}

// NewCartHandler создает новый CartHandler
func NewCartHandler(logger *zap.Logger) *CartHandler {
	return &CartHandler{logger: logger}
}

// AddItem добавляет товар в корзину
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	s, ok := GetSession(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req domain.CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if req.ProductID <= 0 || req.Quantity <= 0 {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	cart, err := s.AddCartItem(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, cart)
}
