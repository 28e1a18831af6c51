package domain

import (
	"strings"
	"time"
)

// SessionStatus представляет классификацию аутентификации сессии
type SessionStatus string

const (
	SessionUnknown       SessionStatus = "unknown"
	SessionChecking      SessionStatus = "checking"
	SessionAuthenticated SessionStatus = "authenticated"
	SessionGuest         SessionStatus = "guest"
	SessionExpired       SessionStatus = "session-expired"
	SessionError         SessionStatus = "error"
)

// Значения формы оформления по умолчанию
const (
	DeliveryPickup = "pickup"
	PaymentCard    = "card"
)

// GuestAccessMessage сообщение refresh эндпоинта для гостевого доступа
const GuestAccessMessage = "Guest access allowed"

// PaymentSucceeded статус успешного списания
const PaymentSucceeded = "succeeded"

// Profile представляет профиль аутентифицированного покупателя
type Profile struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// FinancialSnapshot представляет финансовый срез черновика заказа
type FinancialSnapshot struct {
	Subtotal            Money `json:"subtotal"`
	SurchargeAmount     Money `json:"surcharge_amount"`
	SurchargePercentage Rate  `json:"surcharge_percentage"`
	TaxAmount           Money `json:"tax_amount"`
	TipAmount           Money `json:"tip_amount"`
	DiscountAmount      Money `json:"discount_amount"`
	TotalAmount         Money `json:"total_amount"`
}

// DraftOrder представляет незавершенное оформление заказа
type DraftOrder struct {
	FirstName      string            `json:"first_name"`
	LastName       string            `json:"last_name"`
	Email          string            `json:"email"`
	Phone          string            `json:"phone"`
	Notes          string            `json:"notes"`
	DeliveryMethod string            `json:"delivery_method"`
	PaymentMethod  string            `json:"payment_method"`
	PendingOrderID OrderID           `json:"pending_order_id,omitempty"` // Пусто до подтверждения create
	IdempotencyKey string            `json:"idempotency_key,omitempty"`
	Financials     FinancialSnapshot `json:"financials"`
	KnownProfile   *Profile          `json:"known_profile,omitempty"` // Последний известный профиль
	UpdatedAt      time.Time         `json:"updated_at"`
}

// NewDraftOrder создает пустой черновик со значениями по умолчанию
func NewDraftOrder() DraftOrder {
	return DraftOrder{
		DeliveryMethod: DeliveryPickup,
		PaymentMethod:  PaymentCard,
	}
}

// ApplyDefaults заполняет пустые способы доставки и оплаты
func (d *DraftOrder) ApplyDefaults() {
	if d.DeliveryMethod == "" {
		d.DeliveryMethod = DeliveryPickup
	}
	if d.PaymentMethod == "" {
		d.PaymentMethod = PaymentCard
	}
}

// HasPendingOrder сообщает, подтвердил ли backend создание заказа
func (d DraftOrder) HasPendingOrder() bool {
	return d.PendingOrderID != ""
}

// DraftEdit представляет частичное изменение полей формы
type DraftEdit struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// Apply применяет изменение к черновику
func (e DraftEdit) Apply(d *DraftOrder) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&d.FirstName, e.FirstName)
	set(&d.LastName, e.LastName)
	set(&d.Email, e.Email)
	set(&d.Phone, e.Phone)
	// Комментарий к заказу сохраняем как есть
	if e.Notes != nil {
		d.Notes = *e.Notes
	}
}

// LineItem представляет позицию корзины
type LineItem struct {
	ProductID int64  `json:"product_id"`
	UnitPrice Money  `json:"item_price"`
	Quantity  int    `json:"quantity"`
	Name      string `json:"product_name,omitempty"`
}

// CartSnapshot представляет текущее состояние корзины (только чтение)
type CartSnapshot struct {
	Items []LineItem `json:"items"`
}

// IsEmpty сообщает, пуста ли корзина
func (c *CartSnapshot) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// ItemCount возвращает суммарное количество единиц товара
func (c *CartSnapshot) ItemCount() int {
	if c == nil {
		return 0
	}
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// CartItemRequest представляет запрос на изменение корзины
type CartItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// OrderPayload представляет тело запроса создания/обновления заказа
type OrderPayload struct {
	OrderID        OrderID `json:"order_id,omitempty"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Notes          string  `json:"notes"`
	DeliveryMethod string  `json:"delivery_method"`
	PaymentMethod  string  `json:"payment_method"`
	FinancialSnapshot
}

// NewOrderPayload собирает тело заказа из черновика
func NewOrderPayload(d DraftOrder) *OrderPayload {
	return &OrderPayload{
		FirstName:         d.FirstName,
		LastName:          d.LastName,
		Email:             d.Email,
		Phone:             d.Phone,
		Notes:             d.Notes,
		DeliveryMethod:    d.DeliveryMethod,
		PaymentMethod:     d.PaymentMethod,
		FinancialSnapshot: d.Financials,
	}
}

// CreateOptions параметры создания заказа
type CreateOptions struct {
	Guest          bool
	IdempotencyKey string
}

// RefreshResult представляет ответ refresh эндпоинта
type RefreshResult struct {
	Message string `json:"message"`
}

// IsGuest сообщает, разрешен ли только гостевой доступ
func (r *RefreshResult) IsGuest() bool {
	return r != nil && r.Message == GuestAccessMessage
}

// Credentials представляет учетные данные для входа
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CaptureResult представляет ответ платежного сервиса
type CaptureResult struct {
	Status          string `json:"status"`
	PaymentIntentID string `json:"payment_intent_id,omitempty"`
	Error           string `json:"error,omitempty"`
}

// CustomerDetails контактные данные для страницы подтверждения
type CustomerDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// Completion представляет результат успешной оплаты
type Completion struct {
	OrderID         OrderID         `json:"order_id"`
	IsGuest         bool            `json:"is_guest"`
	Customer        CustomerDetails `json:"customer"`
	Total           Money           `json:"total"`
	PaymentIntentID string          `json:"payment_intent_id,omitempty"`
}
