package domain

import "context"

// RefreshBackend определяет методы refresh эндпоинтов storefront API
type RefreshBackend interface {
	HasRefreshCredential(ctx context.Context) (bool, error)
	Refresh(ctx context.Context) (*RefreshResult, error)
}

// LogoutBackend определяет метод завершения сессии на backend
type LogoutBackend interface {
	Logout(ctx context.Context) error
}

// ProfileService определяет метод получения профиля покупателя
type ProfileService interface {
	GetProfile(ctx context.Context) (*Profile, error)
}

// CartService определяет методы работы с корзиной
type CartService interface {
	GetCurrentCart(ctx context.Context, authenticated bool) (*CartSnapshot, error)
	AddCartItem(ctx context.Context, authenticated bool, item CartItemRequest) (*CartSnapshot, error)
}

// OrderBackend определяет методы работы с отложенным заказом
type OrderBackend interface {
	CreateOrder(ctx context.Context, payload *OrderPayload, opts CreateOptions) (OrderID, error)
	UpdateOrder(ctx context.Context, id OrderID, payload *OrderPayload) (OrderID, error)
}

// PaymentCapturer определяет метод проведения платежа
type PaymentCapturer interface {
	Capture(ctx context.Context, orderID OrderID, paymentMethodID string) (*CaptureResult, error)
}

// KVStore определяет долговременное key-value хранилище черновиков
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// Pinger определяет проверку доступности хранилища
type Pinger interface {
	Ping(ctx context.Context) error
}
