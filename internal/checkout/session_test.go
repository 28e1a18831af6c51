package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/avc/storefront-gateway/internal/checkout/checkouttest"
	"github.com/avc/storefront-gateway/internal/domain"
	domainmocks "github.com/avc/storefront-gateway/internal/domain/mocks"
	"github.com/avc/storefront-gateway/internal/service"
	"github.com/avc/storefront-gateway/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRegistry(t *testing.T, f *checkouttest.Storefront) (*Registry, *memory.Store) {
	t.Helper()
	kv := memory.New()
	reg := NewRegistry(SessionConfig{
		APIBaseURL:      f.URL(),
		UpstreamTimeout: 5 * time.Second,
		Sync: service.SyncConfig{
			Debounce: time.Hour,
			Rates:    service.DefaultRates,
		},
	}, kv, zap.NewNop())
	t.Cleanup(reg.Close)
	return reg, kv
}

// newMockedSession собирает сессию, где корзина и профиль идут через моки,
// а вход и заказы через поддельный storefront
func newMockedSession(
	t *testing.T,
	f *checkouttest.Storefront,
	carts domain.CartService,
	profiles domain.ProfileService,
) (*Session, *memory.Store) {
	t.Helper()
	client, err := service.NewAPIClient(service.APIClientConfig{
		BaseURL: f.URL(),
		Timeout: 5 * time.Second,
	}, zap.NewNop())
	require.NoError(t, err)

	kv := memory.New()
	s := newSession("s1", client, carts, profiles, SessionConfig{
		Sync: service.SyncConfig{Debounce: time.Hour, Rates: service.DefaultRates},
	}, kv, service.NewContactValidator(), zap.NewNop())
	t.Cleanup(s.Close)
	return s, kv
}

func scenarioCart() *domain.CartSnapshot {
	return &domain.CartSnapshot{Items: []domain.LineItem{{ProductID: 7, UnitPrice: 1200, Quantity: 2}}}
}

func strPtr(s string) *string { return &s }

func contactEdit() domain.DraftEdit {
	return domain.DraftEdit{
		FirstName: strPtr("Ada"),
		LastName:  strPtr("Lovelace"),
		Email:     strPtr("ada@example.com"),
		Phone:     strPtr("555-123-4567"),
	}
}

func TestSession_GuestCheckout(t *testing.T) {
	ctx := context.Background()
	f := checkouttest.NewStorefront(t)
	f.SetCart(domain.LineItem{ProductID: 7, UnitPrice: 1200, Quantity: 2})
	reg, kv := newTestRegistry(t, f)

	s, err := reg.GetOrCreate("s1")
	require.NoError(t, err)

	view, err := s.Enter(ctx)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, domain.SessionGuest, view.Status)
	assert.Contains(t, view.Errors, "first_name")
	assert.Equal(t, domain.Money(2686), view.Draft.Financials.TotalAmount)

	view, err = s.UpdateDraft(ctx, contactEdit())
	require.NoError(t, err)
	assert.Empty(t, view.Errors)
	assert.True(t, view.Sync.Scheduled)
	assert.Zero(t, f.Count("create"))

	payment, err := s.PaymentStep(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderID("42"), payment.PendingOrderID)
	assert.Equal(t, domain.Money(2686), payment.Financials.TotalAmount)
	assert.Equal(t, 1, f.Count("create"))
	require.Len(t, f.IdempotencyKeys(), 1)
	assert.NotEmpty(t, f.IdempotencyKeys()[0])

	// Правка после создания обновляет тот же заказ
	_, err = s.UpdateDraft(ctx, domain.DraftEdit{Notes: strPtr("No onions")})
	require.NoError(t, err)
	payment, err = s.PaymentStep(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderID("42"), payment.PendingOrderID)
	assert.Equal(t, 1, f.Count("create"))
	assert.Equal(t, 1, f.Count("update"))

	order, ok := f.Order("42")
	require.True(t, ok)
	assert.Equal(t, "No onions", order.Notes)
	assert.Equal(t, "555-123-4567", order.Phone)

	completion, err := s.Confirm(ctx, ConfirmRequest{
		PendingOrderID:  "42",
		Total:           2686,
		PaymentMethodID: "pm_card_visa",
	})
	require.NoError(t, err)
	assert.True(t, completion.IsGuest)
	assert.Equal(t, "pi_42", completion.PaymentIntentID)
	assert.Equal(t, "Ada", completion.Customer.FirstName)

	_, err = kv.Get(ctx, service.DraftKey("s1"))
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestSession_EmptyCart(t *testing.T) {
	ctx := context.Background()
	f := checkouttest.NewStorefront(t)
	reg, kv := newTestRegistry(t, f)

	s, err := reg.GetOrCreate("s1")
	require.NoError(t, err)

	view, err := s.Enter(ctx)
	assert.ErrorIs(t, err, domain.ErrCartEmpty)
	assert.Equal(t, domain.DeliveryPickup, view.Draft.DeliveryMethod)
	assert.Zero(t, kv.Len())
}

func TestSession_PaymentDeclined(t *testing.T) {
	ctx := context.Background()
	f := checkouttest.NewStorefront(t)
	f.SetCart(domain.LineItem{ProductID: 7, UnitPrice: 1200, Quantity: 2})
	f.SetPaymentStatus("requires_payment_method")
	reg, kv := newTestRegistry(t, f)

	s, err := reg.GetOrCreate("s1")
	require.NoError(t, err)
	_, err = s.UpdateDraft(ctx, contactEdit())
	require.NoError(t, err)
	payment, err := s.PaymentStep(ctx)
	require.NoError(t, err)

	_, err = s.Confirm(ctx, ConfirmRequest{
		PendingOrderID:  payment.PendingOrderID,
		Total:           payment.Financials.TotalAmount,
		PaymentMethodID: "pm_card_chargeDeclined",
	})
	assert.ErrorIs(t, err, domain.ErrPayment)
	assert.Equal(t, "Your card was declined.", domain.MessageOf(err))

	// Черновик остается для повторной попытки
	_, err = kv.Get(ctx, service.DraftKey("s1"))
	assert.NoError(t, err)
}

func TestSession_LoginMergesProfile(t *testing.T) {
	ctx := context.Background()
	f := checkouttest.NewStorefront(t)
	f.SetCart(domain.LineItem{ProductID: 7, UnitPrice: 1200, Quantity: 2})
	reg, _ := newTestRegistry(t, f)

	s, err := reg.GetOrCreate("s1")
	require.NoError(t, err)

	// Гость успел ввести имя
	_, err = s.UpdateDraft(ctx, domain.DraftEdit{FirstName: strPtr("Augusta")})
	require.Error(t, err)

	status, err := s.Login(ctx, domain.Credentials{Username: checkouttest.Username, Password: checkouttest.Password})
	require.NoError(t, err)
	assert.Equal(t, domain.SessionAuthenticated, status)

	view, err := s.Enter(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionAuthenticated, view.Status)
	assert.Equal(t, "Augusta", view.Draft.FirstName)
	assert.Equal(t, "Lovelace", view.Draft.LastName)
	assert.Equal(t, "ada@example.com", view.Draft.Email)
	assert.Equal(t, "(555) 123-4567", view.Draft.Phone)

	payment, err := s.PaymentStep(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderID("42"), payment.PendingOrderID)

	completion, err := s.Confirm(ctx, ConfirmRequest{
		PendingOrderID:  "42",
		Total:           payment.Financials.TotalAmount,
		PaymentMethodID: "pm_card_visa",
	})
	require.NoError(t, err)
	assert.False(t, completion.IsGuest)
}

func TestSession_LoginRejected(t *testing.T) {
	f := checkouttest.NewStorefront(t)
	reg, _ := newTestRegistry(t, f)

	s, err := reg.GetOrCreate("s1")
	require.NoError(t, err)

	_, err = s.Login(context.Background(), domain.Credentials{Username: "ada", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, "No active account found with the given credentials", domain.MessageOf(err))
	assert.Equal(t, domain.SessionUnknown, s.Status())
}

func TestSession_RefreshRecovers(t *testing.T) {
	ctx := context.Background()
	f := checkouttest.NewStorefront(t)
	f.SetCart(domain.LineItem{ProductID: 9, UnitPrice: 499, Quantity: 1})
	reg, _ := newTestRegistry(t, f)

	s, err := reg.GetOrCreate("s1")
	require.NoError(t, err)
	_, err = s.Login(ctx, domain.Credentials{Username: checkouttest.Username, Password: checkouttest.Password})
	require.NoError(t, err)
	refreshes := f.Count("refresh")

	// Access cookie истек, refresh cookie действителен
	f.RotateAccess()

	cart, err := s.AddCartItem(ctx, domain.CartItemRequest{ProductID: 7, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, cart.ItemCount())
	assert.Equal(t, refreshes+1, f.Count("refresh"))
	assert.Equal(t, domain.SessionAuthenticated, s.Status())
}

func TestSession_Expired(t *testing.T) {
	ctx := context.Background()
	f := checkouttest.NewStorefront(t)
	f.SetCart(domain.LineItem{ProductID: 9, UnitPrice: 499, Quantity: 1})
	reg, _ := newTestRegistry(t, f)

	s, err := reg.GetOrCreate("s1")
	require.NoError(t, err)
	_, err = s.Login(ctx, domain.Credentials{Username: checkouttest.Username, Password: checkouttest.Password})
	require.NoError(t, err)

	f.ExpireRefresh()
	f.RotateAccess()

	_, err = s.AddCartItem(ctx, domain.CartItemRequest{ProductID: 7, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.Equal(t, "Your session has expired. Please log in again.", domain.MessageOf(err))
	assert.Equal(t, domain.SessionExpired, s.Status())
	assert.Equal(t, 1, f.Count("logout"))
}

func TestSession_Logout(t *testing.T) {
	ctx := context.Background()
	f := checkouttest.NewStorefront(t)
	f.SetCart(domain.LineItem{ProductID: 7, UnitPrice: 1200, Quantity: 2})
	reg, kv := newTestRegistry(t, f)

	s, err := reg.GetOrCreate("s1")
	require.NoError(t, err)
	_, err = s.Login(ctx, domain.Credentials{Username: checkouttest.Username, Password: checkouttest.Password})
	require.NoError(t, err)
	_, err = s.Enter(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, kv.Len())

	require.NoError(t, s.Logout(ctx))
	assert.Equal(t, 1, f.Count("logout"))
	assert.Zero(t, kv.Len())

	status, err := s.Check(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionGuest, status)
}

func TestSession_EnterMergesProfile(t *testing.T) {
	ctx := context.Background()
	f := checkouttest.NewStorefront(t)
	carts := domainmocks.NewCartServiceMock(t)
	profiles := domainmocks.NewProfileServiceMock(t)
	s, kv := newMockedSession(t, f, carts, profiles)

	profile := checkouttest.Profile
	// Профиль читается при входе и повторно при открытии оформления
	profiles.EXPECT().GetProfile(mock.Anything).Return(&profile, nil).Times(2)
	carts.EXPECT().GetCurrentCart(mock.Anything, true).Return(scenarioCart(), nil).Once()

	status, err := s.Login(ctx, domain.Credentials{Username: checkouttest.Username, Password: checkouttest.Password})
	require.NoError(t, err)
	require.Equal(t, domain.SessionAuthenticated, status)

	view, err := s.Enter(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionAuthenticated, view.Status)
	assert.Equal(t, "Ada", view.Draft.FirstName)
	assert.Equal(t, "(555) 123-4567", view.Draft.Phone)
	require.NotNil(t, view.Draft.KnownProfile)
	assert.Equal(t, "ada@example.com", view.Draft.KnownProfile.Email)
	assert.Equal(t, domain.Money(2686), view.Draft.Financials.TotalAmount)
	assert.Equal(t, 1, kv.Len())
}

func TestSession_EnterEmptyCartDropsPendingOrder(t *testing.T) {
	ctx := context.Background()
	f := checkouttest.NewStorefront(t)
	carts := domainmocks.NewCartServiceMock(t)
	profiles := domainmocks.NewProfileServiceMock(t)
	s, kv := newMockedSession(t, f, carts, profiles)

	carts.EXPECT().GetCurrentCart(mock.Anything, false).Return(scenarioCart(), nil).Once()
	carts.EXPECT().GetCurrentCart(mock.Anything, false).Return(&domain.CartSnapshot{}, nil).Once()

	_, err := s.UpdateDraft(ctx, contactEdit())
	require.NoError(t, err)
	payment, err := s.PaymentStep(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.OrderID("42"), payment.PendingOrderID)

	// Корзину опустошили в другой вкладке
	view, err := s.Enter(ctx)
	assert.ErrorIs(t, err, domain.ErrCartEmpty)
	assert.Empty(t, view.Sync.PendingOrderID)
	assert.Empty(t, view.Draft.PendingOrderID)
	assert.Zero(t, kv.Len())
	profiles.AssertNotCalled(t, "GetProfile", mock.Anything)
}

func TestSession_LoginDropsGuestOrder(t *testing.T) {
	ctx := context.Background()
	f := checkouttest.NewStorefront(t)
	f.SetCart(domain.LineItem{ProductID: 7, UnitPrice: 1200, Quantity: 2})
	reg, kv := newTestRegistry(t, f)

	s, err := reg.GetOrCreate("s1")
	require.NoError(t, err)
	_, err = s.UpdateDraft(ctx, contactEdit())
	require.NoError(t, err)
	payment, err := s.PaymentStep(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.OrderID("42"), payment.PendingOrderID)

	_, err = s.Login(ctx, domain.Credentials{Username: checkouttest.Username, Password: checkouttest.Password})
	require.NoError(t, err)
	assert.Empty(t, s.syncView().PendingOrderID)

	stored, err := service.NewDraftStore(kv, "s1", zap.NewNop()).Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored.PendingOrderID)
	assert.Equal(t, "555-123-4567", stored.Phone)

	// Заказ покупателя создается заново, гостевой не обновляется
	payment, err = s.PaymentStep(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderID("43"), payment.PendingOrderID)
	assert.Equal(t, 2, f.Count("create"))
	assert.Zero(t, f.Count("update"))

	keys := f.IdempotencyKeys()
	require.Len(t, keys, 2)
	assert.NotEqual(t, keys[0], keys[1])
}
