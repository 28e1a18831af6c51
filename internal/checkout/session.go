package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/avc/storefront-gateway/internal/domain"
	"github.com/avc/storefront-gateway/internal/service"
	validatorv10 "github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// SessionConfig параметры сессии оформления
type SessionConfig struct {
	APIBaseURL      string
	UpstreamTimeout time.Duration
	RetryMax        int
	Transport       http.RoundTripper
	Sync            service.SyncConfig
}

// SyncView состояние синхронизации для UI
type SyncView struct {
	PendingOrderID domain.OrderID `json:"pending_order_id,omitempty"`
	Scheduled      bool           `json:"scheduled"`
	Syncing        bool           `json:"syncing"`
	LastError      string         `json:"last_error,omitempty"`
}

// View представляет состояние оформления, отдаваемое UI
type View struct {
	Status domain.SessionStatus `json:"status"`
	Draft  domain.DraftOrder    `json:"draft"`
	Cart   *domain.CartSnapshot `json:"cart"`
	Sync   SyncView             `json:"sync"`
	Errors map[string]string    `json:"errors,omitempty"` // Незаполненные поля формы
}

// PaymentView данные для шага оплаты
type PaymentView struct {
	PendingOrderID domain.OrderID           `json:"pending_order_id"`
	Financials     domain.FinancialSnapshot `json:"financials"`
}

// ConfirmRequest запрос подтверждения оплаты
type ConfirmRequest struct {
	PendingOrderID  domain.OrderID `json:"pending_order_id"`
	Total           domain.Money   `json:"total"`
	PaymentMethodID string         `json:"payment_method_id"`
}

// Session представляет сессию оформления одного браузера.
// Все компоненты принадлежат сессии, две сессии не разделяют состояние refresh.
type Session struct {
	id       string
	client   *service.APIClient
	carts    domain.CartService
	profiles domain.ProfileService
	coord    *service.RefreshCoordinator
	engine  *service.OrderSyncEngine
	store   *service.DraftStore
	handoff *service.PaymentHandoff
	logger  *zap.Logger

	mu   sync.Mutex // Правки черновика
	cart *domain.CartSnapshot

	lastSeen atomic.Int64
	active   atomic.Int32 // Запросы, обслуживаемые сессией
}

// NewSession собирает сессию оформления
func NewSession(
	id string,
	cfg SessionConfig,
	kv domain.KVStore,
	validator *validatorv10.Validate,
	logger *zap.Logger,
) (*Session, error) {
	logger = logger.With(zap.String("session_id", id))

	client, err := service.NewAPIClient(service.APIClientConfig{
		BaseURL:   cfg.APIBaseURL,
		Timeout:   cfg.UpstreamTimeout,
		RetryMax:  cfg.RetryMax,
		Transport: cfg.Transport,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("checkout session: %w", err)
	}

	return newSession(id, client, client, client, cfg, kv, validator, logger), nil
}

// newSession собирает сессию поверх клиента storefront.
// Корзина и профиль могут обслуживаться отдельными реализациями.
func newSession(
	id string,
	client *service.APIClient,
	carts domain.CartService,
	profiles domain.ProfileService,
	cfg SessionConfig,
	kv domain.KVStore,
	validator *validatorv10.Validate,
	logger *zap.Logger,
) *Session {
	probe := service.NewSessionProbe(client, logger)
	coord := service.NewRefreshCoordinator(probe, client, logger)
	client.UseCoordinator(coord)

	store := service.NewDraftStore(kv, id, logger)
	engine := service.NewOrderSyncEngine(client, store, validator, cfg.Sync, logger)

	s := &Session{
		id:       id,
		client:   client,
		carts:    carts,
		profiles: profiles,
		coord:    coord,
		engine:   engine,
		store:    store,
		handoff:  service.NewPaymentHandoff(client, engine, store, logger),
		logger:   logger,
	}
	s.Touch()
	return s
}

// ID возвращает идентификатор сессии
func (s *Session) ID() string {
	return s.id
}

// Touch отмечает активность сессии
func (s *Session) Touch() {
	s.lastSeen.Store(time.Now().UnixNano())
}

// LastSeen возвращает время последней активности
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// Begin отмечает начало запроса. Сессия с незавершенными запросами
// не вытесняется; возвращаемая функция завершает запрос.
func (s *Session) Begin() func() {
	s.active.Add(1)
	s.Touch()
	var once sync.Once
	return func() {
		once.Do(func() {
			s.Touch()
			s.active.Add(-1)
		})
	}
}

// Busy сообщает, обслуживает ли сессия запрос
func (s *Session) Busy() bool {
	return s.active.Load() > 0
}

// Status возвращает текущий статус сессии без обращения к backend
func (s *Session) Status() domain.SessionStatus {
	return s.coord.Status()
}

// Check проверяет сессию через общую волну refresh
func (s *Session) Check(ctx context.Context) (domain.SessionStatus, error) {
	return s.coord.Check(ctx)
}

// Resolve возвращает статус, проверяя сессию, если он еще не известен
func (s *Session) Resolve(ctx context.Context) (domain.SessionStatus, error) {
	switch status := s.coord.Status(); status {
	case domain.SessionUnknown, domain.SessionError:
		return s.coord.Check(ctx)
	default:
		return status, nil
	}
}

func (s *Session) authenticated(ctx context.Context) (bool, error) {
	status, err := s.Resolve(ctx)
	if err != nil {
		return false, err
	}
	return status == domain.SessionAuthenticated, nil
}

// Enter открывает оформление: загружает корзину и черновик, пересчитывает суммы.
// Для пустой корзины черновик очищается и возвращается domain.ErrCartEmpty.
func (s *Session) Enter(ctx context.Context) (*View, error) {
	authenticated, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.GetCurrentCart(ctx, authenticated)
	if err != nil {
		return nil, fmt.Errorf("checkout session: failed to load cart: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = cart

	draft, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("Draft storage unavailable, starting from an empty draft", zap.Error(err))
	}

	if authenticated {
		profile, err := s.profiles.GetProfile(ctx)
		switch {
		case err == nil:
			draft = service.MergeProfile(draft, profile)
		case errors.Is(err, domain.ErrSessionExpired):
			return nil, err
		default:
			s.logger.Warn("Failed to load profile for checkout", zap.Error(err))
		}
	}

	return s.schedule(ctx, draft, authenticated)
}

// UpdateDraft применяет правки формы и планирует синхронизацию заказа
func (s *Session) UpdateDraft(ctx context.Context, edit domain.DraftEdit) (*View, error) {
	authenticated, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureCart(ctx, authenticated); err != nil {
		return nil, err
	}

	draft, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("Draft storage unavailable, applying edit to an empty draft", zap.Error(err))
	}
	edit.Apply(&draft)

	return s.schedule(ctx, draft, authenticated)
}

// PaymentStep синхронизирует последние правки и возвращает отложенный заказ для оплаты
func (s *Session) PaymentStep(ctx context.Context) (*PaymentView, error) {
	authenticated, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureCart(ctx, authenticated); err != nil {
		return nil, err
	}

	draft, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("checkout session: %w", err)
	}
	if _, err := s.engine.ScheduleSync(ctx, draft, s.cart, authenticated); err != nil {
		return nil, err
	}
	if err := s.engine.Flush(ctx); err != nil {
		return nil, err
	}

	state := s.engine.State()
	if state.PendingOrderID == "" {
		return nil, domain.ErrNoPendingOrder
	}
	return &PaymentView{
		PendingOrderID: state.PendingOrderID,
		Financials:     state.Financials,
	}, nil
}

// Confirm проводит оплату отложенного заказа
func (s *Session) Confirm(ctx context.Context, req ConfirmRequest) (*domain.Completion, error) {
	completion, err := s.handoff.Confirm(ctx, req.PendingOrderID, req.Total, req.PaymentMethodID)
	if err != nil {
		return nil, err
	}
	completion.IsGuest = s.coord.Status() != domain.SessionAuthenticated

	s.mu.Lock()
	s.cart = nil
	s.mu.Unlock()

	return completion, nil
}

// Login выполняет вход и подставляет данные профиля в черновик.
// Отложенный заказ гостя не переносится в аккаунт: следующая синхронизация создаст новый.
func (s *Session) Login(ctx context.Context, creds domain.Credentials) (domain.SessionStatus, error) {
	wasAuthenticated := s.coord.Status() == domain.SessionAuthenticated

	if err := s.client.Login(ctx, creds); err != nil {
		return s.coord.Status(), err
	}

	status, err := s.coord.Check(ctx)
	if err != nil {
		return status, err
	}
	if status != domain.SessionAuthenticated {
		return status, nil
	}

	profile, err := s.profiles.GetProfile(ctx)
	if err != nil {
		s.logger.Warn("Failed to load profile after login", zap.Error(err))
		profile = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Корзина гостя и покупателя различаются
	s.cart = nil

	draft, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("Draft storage unavailable during login merge", zap.Error(err))
	}

	if !wasAuthenticated {
		if draft.PendingOrderID != "" || s.engine.State().PendingOrderID != "" {
			s.logger.Info("Dropping guest pending order after login",
				zap.String("pending_order_id", string(draft.PendingOrderID)))
		}
		s.engine.Reset()
		draft.PendingOrderID = ""
		draft.IdempotencyKey = ""
	}

	if err := s.store.Save(ctx, service.MergeProfile(draft, profile)); err != nil {
		s.logger.Error("Failed to save draft after login", zap.Error(err))
	}
	return status, nil
}

// Logout завершает сессию на backend и удаляет черновик
func (s *Session) Logout(ctx context.Context) error {
	if err := s.client.Logout(ctx); err != nil {
		s.logger.Warn("Backend logout failed", zap.Error(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
	s.engine.Reset()
	return s.store.Clear(ctx)
}

// AddCartItem изменяет корзину на backend
func (s *Session) AddCartItem(ctx context.Context, item domain.CartItemRequest) (*domain.CartSnapshot, error) {
	authenticated, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.AddCartItem(ctx, authenticated, item)
	if err != nil {
		return nil, fmt.Errorf("checkout session: failed to update cart: %w", err)
	}

	s.mu.Lock()
	s.cart = cart
	s.mu.Unlock()
	return cart, nil
}

// Close останавливает синхронизацию сессии
func (s *Session) Close() {
	s.engine.Close()
}

func (s *Session) ensureCart(ctx context.Context, authenticated bool) error {
	if s.cart != nil {
		return nil
	}
	cart, err := s.carts.GetCurrentCart(ctx, authenticated)
	if err != nil {
		return fmt.Errorf("checkout session: failed to load cart: %w", err)
	}
	s.cart = cart
	return nil
}

// schedule вызывается под s.mu
func (s *Session) schedule(ctx context.Context, draft domain.DraftOrder, authenticated bool) (*View, error) {
	saved, err := s.engine.ScheduleSync(ctx, draft, s.cart, authenticated)

	view := &View{
		Status: s.coord.Status(),
		Draft:  saved,
		Cart:   s.cart,
		Sync:   s.syncView(),
	}

	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		view.Errors = vErr.Fields
	}
	return view, err
}

func (s *Session) syncView() SyncView {
	state := s.engine.State()
	view := SyncView{
		PendingOrderID: state.PendingOrderID,
		Scheduled:      state.Scheduled,
		Syncing:        state.Syncing,
	}
	if state.LastError != nil {
		view.LastError = domain.MessageOf(state.LastError)
	}
	return view
}
