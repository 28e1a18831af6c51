// Package checkouttest содержит поддельный storefront API для тестов
package checkouttest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/avc/storefront-gateway/internal/domain"
)

// Учетные данные, принимаемые поддельным storefront
const (
	Username = "ada"
	Password = "secret"
)

// Profile профиль покупателя Username
var Profile = domain.Profile{
	FirstName:   "Ada",
	LastName:    "Lovelace",
	Email:       "ada@example.com",
	PhoneNumber: "(555) 123-4567",
}

// Catalog цены товаров в центах
var Catalog = map[int64]domain.Money{
	7: 1200,
	9: 499,
}

// Storefront имитирует storefront REST API с cookie-сессиями
type Storefront struct {
	Server *httptest.Server

	mu            sync.Mutex
	accessToken   string
	refreshToken  string
	refreshValid  bool
	cart          []domain.LineItem
	nextOrderID   int
	orders        map[domain.OrderID]domain.OrderPayload
	paymentStatus string
	counts        map[string]int
	idempotency   []string
}

// NewStorefront запускает поддельный storefront и останавливает его по завершении теста
func NewStorefront(t testing.TB) *Storefront {
	t.Helper()

	f := &Storefront{
		accessToken:   "access-1",
		refreshToken:  "refresh-1",
		refreshValid:  true,
		nextOrderID:   42,
		orders:        make(map[domain.OrderID]domain.OrderPayload),
		paymentStatus: domain.PaymentSucceeded,
		counts:        make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /website/refresh-check/", f.refreshCheck)
	mux.HandleFunc("POST /website/token/refresh/", f.refresh)
	mux.HandleFunc("POST /website/token/", f.login)
	mux.HandleFunc("POST /website/logout/", f.logout)
	mux.HandleFunc("GET /website/profile/", f.authorized(f.profile))
	mux.HandleFunc("GET /website/cart/", f.authorized(f.getCart))
	mux.HandleFunc("POST /website/cart/", f.authorized(f.addCartItem))
	mux.HandleFunc("GET /website/guest-cart/", f.getCart)
	mux.HandleFunc("POST /website/guest-cart/", f.addCartItem)
	mux.HandleFunc("POST /website/checkout/", f.authorized(f.createOrder))
	mux.HandleFunc("PUT /website/checkout/", f.updateOrder)
	mux.HandleFunc("POST /website/guest-checkout/", f.createOrder)
	mux.HandleFunc("POST /payments/process-payment/", f.processPayment)

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)
	return f
}

// URL возвращает базовый адрес storefront
func (f *Storefront) URL() string {
	return f.Server.URL
}

// SetCart задает содержимое корзины
func (f *Storefront) SetCart(items ...domain.LineItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cart = append([]domain.LineItem(nil), items...)
}

// RotateAccess делает выданный access cookie недействительным
func (f *Storefront) RotateAccess() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts["rotate"]++
	f.accessToken = "access-" + strconv.Itoa(f.counts["rotate"]+1)
}

// ExpireRefresh делает refresh cookie недействительным
func (f *Storefront) ExpireRefresh() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshValid = false
}

// SetPaymentStatus задает статус следующих списаний
func (f *Storefront) SetPaymentStatus(status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paymentStatus = status
}

// Count возвращает число обращений к операции: create, update, capture, refresh, logout, login
func (f *Storefront) Count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[op]
}

// Order возвращает последнее тело заказа
func (f *Storefront) Order(id domain.OrderID) (domain.OrderPayload, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[id]
	return order, ok
}

// IdempotencyKeys возвращает ключи идемпотентности запросов создания
func (f *Storefront) IdempotencyKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.idempotency...)
}

func (f *Storefront) authorized(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("access")
		f.mu.Lock()
		valid := err == nil && cookie.Value == f.accessToken
		f.mu.Unlock()

		if !valid {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Authentication credentials were not provided."})
			return
		}
		next(w, r)
	}
}

func (f *Storefront) refreshCheck(w http.ResponseWriter, r *http.Request) {
	_, err := r.Cookie("refresh")
	writeJSON(w, http.StatusOK, map[string]bool{"hasRefreshToken": err == nil})
}

func (f *Storefront) refresh(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts["refresh"]++

	cookie, err := r.Cookie("refresh")
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"message": domain.GuestAccessMessage})
		return
	}
	if !f.refreshValid || cookie.Value != f.refreshToken {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Token is invalid or expired"})
		return
	}

	http.SetCookie(w, &http.Cookie{Name: "access", Value: f.accessToken, Path: "/"})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Token refreshed"})
}

func (f *Storefront) login(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts["login"]++

	if creds.Username != Username || creds.Password != Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "No active account found with the given credentials"})
		return
	}

	f.refreshValid = true
	http.SetCookie(w, &http.Cookie{Name: "access", Value: f.accessToken, Path: "/"})
	http.SetCookie(w, &http.Cookie{Name: "refresh", Value: f.refreshToken, Path: "/"})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Login successful"})
}

func (f *Storefront) logout(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.counts["logout"]++
	f.mu.Unlock()

	http.SetCookie(w, &http.Cookie{Name: "access", Path: "/", MaxAge: -1})
	http.SetCookie(w, &http.Cookie{Name: "refresh", Path: "/", MaxAge: -1})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (f *Storefront) profile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Profile)
}

func (f *Storefront) getCart(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, domain.CartSnapshot{Items: append([]domain.LineItem{}, f.cart...)})
}

func (f *Storefront) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req domain.CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}
	price, ok := Catalog[req.ProductID]
	if !ok || req.Quantity <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Product not available"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	found := false
	for i := range f.cart {
		if f.cart[i].ProductID == req.ProductID {
			f.cart[i].Quantity += req.Quantity
			found = true
		}
	}
	if !found {
		f.cart = append(f.cart, domain.LineItem{ProductID: req.ProductID, UnitPrice: price, Quantity: req.Quantity})
	}
	writeJSON(w, http.StatusOK, domain.CartSnapshot{Items: append([]domain.LineItem{}, f.cart...)})
}

func (f *Storefront) createOrder(w http.ResponseWriter, r *http.Request) {
	var payload domain.OrderPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid order"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts["create"]++
	f.idempotency = append(f.idempotency, r.Header.Get("Idempotency-Key"))

	id := domain.OrderID(strconv.Itoa(f.nextOrderID))
	f.nextOrderID++
	f.orders[id] = payload
	writeJSON(w, http.StatusCreated, map[string]any{"id": f.nextOrderID - 1})
}

func (f *Storefront) updateOrder(w http.ResponseWriter, r *http.Request) {
	var payload domain.OrderPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid order"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts["update"]++

	if _, ok := f.orders[payload.OrderID]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": fmt.Sprintf("Order %s not found", payload.OrderID)})
		return
	}
	f.orders[payload.OrderID] = payload
	writeJSON(w, http.StatusOK, map[string]string{"id": string(payload.OrderID)})
}

func (f *Storefront) processPayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID         domain.OrderID `json:"order_id"`
		PaymentMethodID string         `json:"payment_method_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid payment request"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts["capture"]++

	if _, ok := f.orders[req.OrderID]; !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Order not found"})
		return
	}
	if f.paymentStatus != domain.PaymentSucceeded {
		writeJSON(w, http.StatusOK, map[string]string{"status": f.paymentStatus, "error": "Your card was declined."})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": domain.PaymentSucceeded, "payment_intent_id": "pi_" + string(req.OrderID)})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
