package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/avc/storefront-gateway/internal/domain"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultSyncDebounce окно объединения правок по умолчанию
const DefaultSyncDebounce = 750 * time.Millisecond

// ErrSyncClosed возвращается ожидающим Flush после остановки движка
var ErrSyncClosed = errors.New("order sync: engine closed")

// SyncConfig параметры синхронизации отложенного заказа
type SyncConfig struct {
	Debounce time.Duration
	Rates    Rates
}

// SyncState снимок состояния синхронизации
type SyncState struct {
	PendingOrderID domain.OrderID
	Financials     domain.FinancialSnapshot
	Scheduled      bool
	Syncing        bool
	LastError      error
	LastSyncedAt   time.Time
}

type syncJob struct {
	draft         domain.DraftOrder
	authenticated bool
}

// OrderSyncEngine поддерживает отложенный заказ на backend в актуальном состоянии.
// Правки объединяются таймером, одновременно выполняется не более одного create/update.
type OrderSyncEngine struct {
	orders    domain.OrderBackend
	store     *DraftStore
	validator *validatorv10.Validate
	cfg       SyncConfig
	logger    *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	job        *syncJob
	timer      *time.Timer
	timerSeq   uint64
	inFlight   bool
	dirty      bool // Таймер сработал во время выполнения запроса
	generation uint64
	pendingID  domain.OrderID
	financials domain.FinancialSnapshot
	lastErr    error
	lastSynced time.Time
	waiters    []chan error
	closed     bool
}

// NewOrderSyncEngine создает новый OrderSyncEngine
func NewOrderSyncEngine(
	orders domain.OrderBackend,
	store *DraftStore,
	validator *validatorv10.Validate,
	cfg SyncConfig,
	logger *zap.Logger,
) *OrderSyncEngine {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultSyncDebounce
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &OrderSyncEngine{
		orders:    orders,
		store:     store,
		validator: validator,
		cfg:       cfg,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// ScheduleSync пересчитывает суммы, сохраняет черновик и планирует синхронизацию.
// Ошибка валидации возвращается сразу, сетевой вызов при этом не планируется.
func (e *OrderSyncEngine) ScheduleSync(
	ctx context.Context,
	draft domain.DraftOrder,
	cart *domain.CartSnapshot,
	authenticated bool,
) (domain.DraftOrder, error) {
	if cart.IsEmpty() {
		// Черновик уничтожается вместе с отложенным заказом
		e.Reset()
		if err := e.store.Clear(ctx); err != nil {
			return draft, err
		}
		return domain.NewDraftOrder(), domain.ErrCartEmpty
	}

	draft.Financials = ComputeTotals(cart, e.cfg.Rates)

	e.mu.Lock()
	if e.pendingID == "" && draft.PendingOrderID != "" {
		// Идентификатор из хранилища, сохраненный до перезагрузки
		e.pendingID = draft.PendingOrderID
	}
	if e.pendingID != "" {
		draft.PendingOrderID = e.pendingID
	}
	e.financials = draft.Financials
	e.mu.Unlock()

	if draft.IdempotencyKey == "" {
		draft.IdempotencyKey = uuid.NewString()
	}

	saved, err := e.store.Update(ctx, func(stored *domain.DraftOrder) {
		pending := stored.PendingOrderID
		*stored = draft
		if stored.PendingOrderID == "" {
			stored.PendingOrderID = pending
		}
	})
	if err != nil {
		return draft, err
	}

	if err := ValidateContact(e.validator, saved, !authenticated); err != nil {
		// Ранее запланированная правка устарела и не должна уйти на сервер
		e.cancelScheduled()
		return saved, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return saved, ErrSyncClosed
	}

	e.job = &syncJob{draft: saved, authenticated: authenticated}
	e.armTimerLocked()
	return saved, nil
}

// Flush немедленно выполняет запланированную синхронизацию и возвращает ее результат.
// Если синхронизировать нечего, возвращается результат последней попытки.
func (e *OrderSyncEngine) Flush(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrSyncClosed
	}
	e.stopTimerLocked()

	if e.job == nil && !e.inFlight {
		err := e.lastErr
		e.mu.Unlock()
		return err
	}

	ch := make(chan error, 1)
	e.waiters = append(e.waiters, ch)

	if e.inFlight {
		if e.job != nil {
			e.dirty = true
		}
		e.mu.Unlock()
	} else {
		job := e.job
		e.job = nil
		e.inFlight = true
		e.mu.Unlock()
		go e.run(job)
	}

	select {
	case err := <-ch:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// State возвращает снимок состояния синхронизации
func (e *OrderSyncEngine) State() SyncState {
	e.mu.Lock()
	defer e.mu.Unlock()

	return SyncState{
		PendingOrderID: e.pendingID,
		Financials:     e.financials,
		Scheduled:      e.job != nil,
		Syncing:        e.inFlight,
		LastError:      e.lastErr,
		LastSyncedAt:   e.lastSynced,
	}
}

// Reset забывает отложенный заказ после оплаты.
// Результат запроса, выполнявшегося до Reset, отбрасывается.
func (e *OrderSyncEngine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopTimerLocked()
	e.job = nil
	e.dirty = false
	e.generation++
	e.pendingID = ""
	e.financials = domain.FinancialSnapshot{}
	e.lastErr = nil
	e.lastSynced = time.Time{}
}

// Close останавливает движок и прерывает выполняющийся запрос
func (e *OrderSyncEngine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.stopTimerLocked()
	e.job = nil
	waiters := e.waiters
	e.waiters = nil
	e.mu.Unlock()

	e.cancel()
	for _, ch := range waiters {
		ch <- ErrSyncClosed
	}
}

func (e *OrderSyncEngine) cancelScheduled() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopTimerLocked()
	e.job = nil
	e.dirty = false
}

func (e *OrderSyncEngine) armTimerLocked() {
	e.stopTimerLocked()
	seq := e.timerSeq
	e.timer = time.AfterFunc(e.cfg.Debounce, func() {
		e.fire(seq)
	})
}

func (e *OrderSyncEngine) stopTimerLocked() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	// Сработавший, но еще не захвативший mutex таймер становится недействительным
	e.timerSeq++
}

// fire вызывается по истечении окна объединения
func (e *OrderSyncEngine) fire(seq uint64) {
	e.mu.Lock()
	if seq != e.timerSeq || e.closed || e.job == nil {
		e.mu.Unlock()
		return
	}
	e.timer = nil

	if e.inFlight {
		e.dirty = true
		e.mu.Unlock()
		return
	}

	job := e.job
	e.job = nil
	e.inFlight = true
	e.mu.Unlock()

	e.run(job)
}

// run выполняет задание и повторяет его, если за время запроса пришли новые правки
func (e *OrderSyncEngine) run(job *syncJob) {
	for {
		err := e.sync(job)

		e.mu.Lock()
		if !e.closed && e.dirty && e.job != nil {
			e.dirty = false
			e.stopTimerLocked()
			job = e.job
			e.job = nil
			e.mu.Unlock()
			continue
		}

		e.dirty = false
		e.inFlight = false
		waiters := e.waiters
		e.waiters = nil
		e.mu.Unlock()

		for _, ch := range waiters {
			ch <- err
		}
		return
	}
}

// sync выполняет один create или update
func (e *OrderSyncEngine) sync(job *syncJob) error {
	e.mu.Lock()
	pendingID := e.pendingID
	generation := e.generation
	e.mu.Unlock()

	payload := domain.NewOrderPayload(job.draft)

	var (
		orderID domain.OrderID
		err     error
	)
	if pendingID == "" {
		orderID, err = e.orders.CreateOrder(e.ctx, payload, domain.CreateOptions{
			Guest:          !job.authenticated,
			IdempotencyKey: job.draft.IdempotencyKey,
		})
		if err != nil {
			err = fmt.Errorf("order sync: failed to create order: %w", err)
		}
	} else {
		orderID, err = e.orders.UpdateOrder(e.ctx, pendingID, payload)
		if err != nil {
			err = fmt.Errorf("order sync: failed to update order %s: %w", pendingID, err)
		}
	}

	e.mu.Lock()
	if generation != e.generation {
		e.mu.Unlock()
		e.logger.Debug("Discarding order sync result after reset")
		return err
	}
	if err != nil {
		e.lastErr = err
		e.mu.Unlock()
		e.logger.Warn("Order sync failed", zap.String("pending_order_id", string(pendingID)), zap.Error(err))
		return err
	}
	if e.pendingID == "" {
		e.pendingID = orderID
	}
	recorded := e.pendingID
	e.lastErr = nil
	e.lastSynced = time.Now()
	e.mu.Unlock()

	if _, err := e.store.Update(e.ctx, func(stored *domain.DraftOrder) {
		if stored.PendingOrderID == "" {
			stored.PendingOrderID = recorded
		}
		if stored.IdempotencyKey == "" {
			stored.IdempotencyKey = job.draft.IdempotencyKey
		}
	}); err != nil {
		e.logger.Error("Failed to persist pending order id", zap.String("pending_order_id", string(recorded)), zap.Error(err))
	}

	if pendingID == "" {
		e.logger.Info("Pending order created", zap.String("pending_order_id", string(recorded)))
	} else {
		e.logger.Debug("Pending order updated", zap.String("pending_order_id", string(recorded)))
	}
	return nil
}
