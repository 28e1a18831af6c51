package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/avc/storefront-gateway/internal/domain"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// Пути storefront API
const (
	pathRefreshCheck   = "website/refresh-check/"
	pathTokenRefresh   = "website/token/refresh/"
	pathToken          = "website/token/"
	pathLogout         = "website/logout/"
	pathProfile        = "website/profile/"
	pathCart           = "website/cart/"
	pathGuestCart      = "website/guest-cart/"
	pathCheckout       = "website/checkout/"
	pathGuestCheckout  = "website/guest-checkout/"
	pathProcessPayment = "payments/process-payment/"
)

// IdempotencyKeyHeader заголовок ключа идемпотентности создания заказа
const IdempotencyKeyHeader = "Idempotency-Key"

// maxErrorBody ограничивает чтение тела ошибки
const maxErrorBody = 64 << 10

type noRetryKey struct{}

// withoutRetry запрещает транспорту повторять неидемпотентный запрос
func withoutRetry(ctx context.Context) context.Context {
	return context.WithValue(ctx, noRetryKey{}, true)
}

// APIClientConfig параметры клиента storefront API
type APIClientConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RetryMax  int
	Transport http.RoundTripper // Общий пул соединений; nil - свой пул
}

// APIClient реализует upstream интерфейсы поверх storefront REST API.
// Каждая сессия оформления владеет своим клиентом и своим cookie jar.
type APIClient struct {
	baseURL     string
	client      *retryablehttp.Client
	coordinator *RefreshCoordinator
	logger      *zap.Logger
}

// NewAPIClient создает новый APIClient
func NewAPIClient(cfg APIClientConfig, logger *zap.Logger) (*APIClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("api client: failed to create cookie jar: %w", err)
	}

	transport := cfg.Transport
	if transport == nil {
		transport = cleanhttp.DefaultPooledTransport()
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient = &http.Client{
		Transport: transport,
		Jar:       jar,
		Timeout:   cfg.Timeout,
	}
	rc.RetryMax = cfg.RetryMax
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.CheckRetry = checkRetry
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = NewRetryLogger(logger)

	return &APIClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/") + "/",
		client:  rc,
		logger:  logger,
	}, nil
}

// UseCoordinator включает координацию refresh для защищенных вызовов
func (c *APIClient) UseCoordinator(coordinator *RefreshCoordinator) {
	c.coordinator = coordinator
}

// checkRetry повторяет только запросы, не помеченные как неидемпотентные
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if noRetry, _ := ctx.Value(noRetryKey{}).(bool); noRetry {
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// HasRefreshCredential проверяет наличие refresh credential (без координации)
func (c *APIClient) HasRefreshCredential(ctx context.Context) (bool, error) {
	var resp struct {
		HasRefreshToken bool `json:"hasRefreshToken"`
	}
	if err := c.do(ctx, http.MethodGet, pathRefreshCheck, nil, nil, &resp); err != nil {
		return false, err
	}
	return resp.HasRefreshToken, nil
}

// Refresh обновляет сессию или устанавливает гостевой доступ (без координации)
func (c *APIClient) Refresh(ctx context.Context) (*domain.RefreshResult, error) {
	var result domain.RefreshResult
	if err := c.do(withoutRetry(ctx), http.MethodPost, pathTokenRefresh, struct{}{}, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout завершает сессию на backend
func (c *APIClient) Logout(ctx context.Context) error {
	if err := c.do(withoutRetry(ctx), http.MethodPost, pathLogout, struct{}{}, nil, nil); err != nil {
		return err
	}
	return nil
}

// Login выполняет вход по логину и паролю
func (c *APIClient) Login(ctx context.Context, creds domain.Credentials) error {
	return c.do(withoutRetry(ctx), http.MethodPost, pathToken, creds, nil, nil)
}

// GetProfile получает профиль аутентифицированного покупателя
func (c *APIClient) GetProfile(ctx context.Context) (*domain.Profile, error) {
	var profile domain.Profile
	if err := c.coordinated(ctx, http.MethodGet, pathProfile, nil, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func cartPath(authenticated bool) string {
	if authenticated {
		return pathCart
	}
	return pathGuestCart
}

// GetCurrentCart получает текущую корзину
func (c *APIClient) GetCurrentCart(ctx context.Context, authenticated bool) (*domain.CartSnapshot, error) {
	var cart domain.CartSnapshot
	if err := c.coordinated(ctx, http.MethodGet, cartPath(authenticated), nil, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddCartItem добавляет товар в корзину
func (c *APIClient) AddCartItem(ctx context.Context, authenticated bool, item domain.CartItemRequest) (*domain.CartSnapshot, error) {
	var cart domain.CartSnapshot
	if err := c.coordinated(withoutRetry(ctx), http.MethodPost, cartPath(authenticated), item, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

type orderResponse struct {
	ID domain.OrderID `json:"id"`
}

// CreateOrder создает отложенный заказ
func (c *APIClient) CreateOrder(ctx context.Context, payload *domain.OrderPayload, opts domain.CreateOptions) (domain.OrderID, error) {
	path := pathCheckout
	if opts.Guest {
		path = pathGuestCheckout
	}

	header := http.Header{}
	if opts.IdempotencyKey != "" {
		header.Set(IdempotencyKeyHeader, opts.IdempotencyKey)
	}

	var resp orderResponse
	if err := c.coordinated(withoutRetry(ctx), http.MethodPost, path, payload, header, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", &domain.APIError{Kind: domain.KindTransient, Message: "order id missing in create response"}
	}
	return resp.ID, nil
}

// UpdateOrder обновляет отложенный заказ по его идентификатору
func (c *APIClient) UpdateOrder(ctx context.Context, id domain.OrderID, payload *domain.OrderPayload) (domain.OrderID, error) {
	body := *payload
	body.OrderID = id

	var resp orderResponse
	if err := c.coordinated(ctx, http.MethodPut, pathCheckout, &body, nil, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return id, nil
	}
	return resp.ID, nil
}

// Capture проводит платеж по отложенному заказу
func (c *APIClient) Capture(ctx context.Context, orderID domain.OrderID, paymentMethodID string) (*domain.CaptureResult, error) {
	req := struct {
		OrderID         domain.OrderID `json:"order_id"`
		PaymentMethodID string         `json:"payment_method_id"`
	}{orderID, paymentMethodID}

	var result domain.CaptureResult
	if err := c.coordinated(withoutRetry(ctx), http.MethodPost, pathProcessPayment, req, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// coordinated выполняет запрос через RefreshCoordinator, если он подключен
func (c *APIClient) coordinated(ctx context.Context, method, path string, body any, header http.Header, out any) error {
	if c.coordinator == nil {
		return c.do(ctx, method, path, body, header, out)
	}
	return c.coordinator.Execute(ctx, path, func(ctx context.Context) error {
		return c.do(ctx, method, path, body, header, out)
	})
}

// do выполняет один логический запрос к storefront API
func (c *APIClient) do(ctx context.Context, method, path string, body any, header http.Header, out any) error {
	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api client: failed to encode request: %w", err)
		}
	}

	var reqBody any
	if raw != nil {
		reqBody = raw
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("api client: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if raw != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header[k] = v
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &domain.APIError{
			Kind:    domain.KindTransient,
			Message: "storefront API is unavailable",
			Err:     fmt.Errorf("api client: failed to execute request: %w", err),
		}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil || resp.StatusCode == http.StatusNoContent {
			return nil
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return &domain.APIError{Kind: domain.KindTransient, Status: resp.StatusCode, Err: fmt.Errorf("api client: failed to read response: %w", err)}
		}
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return &domain.APIError{Kind: domain.KindTransient, Status: resp.StatusCode, Err: fmt.Errorf("api client: failed to decode response: %w", err)}
		}
		return nil

	default:
		return decodeAPIError(resp)
	}
}

// decodeAPIError переводит ответ с ошибкой в типизированную ошибку
func decodeAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	message, fields := parseErrorBody(data)

	apiErr := &domain.APIError{
		Status:  resp.StatusCode,
		Message: message,
		Fields:  fields,
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		apiErr.Kind = domain.KindUnauthorized
	case resp.StatusCode == http.StatusPaymentRequired:
		apiErr.Kind = domain.KindPayment
	case resp.StatusCode == http.StatusTooManyRequests:
		apiErr.Kind = domain.KindTransient
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		apiErr.Kind = domain.KindRejected
	default:
		apiErr.Kind = domain.KindTransient
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

// parseErrorBody разбирает тела вида {"error": ...}, {"detail": ...} и карты ошибок полей
func parseErrorBody(data []byte) (string, map[string]string) {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(data, &body); err != nil {
		return "", nil
	}

	var message string
	for _, key := range []string{"error", "detail", "message"} {
		if raw, ok := body[key]; ok {
			if s := flattenMessage(raw); s != "" {
				message = s
				break
			}
		}
	}

	fields := make(map[string]string)
	for key, raw := range body {
		switch key {
		case "error", "detail", "message", "status", "code":
			continue
		}
		if s := flattenMessage(raw); s != "" {
			fields[key] = s
		}
	}
	if len(fields) == 0 {
		fields = nil
	}
	if message == "" && fields != nil {
		message = "request was rejected"
	}
	return message, fields
}

// flattenMessage принимает строку или список строк
func flattenMessage(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, " ")
	}
	return ""
}

// isUnauthorized сообщает, является ли ошибка ответом 401
func isUnauthorized(err error) bool {
	var apiErr *domain.APIError
	return errors.As(err, &apiErr) && apiErr.Kind == domain.KindUnauthorized
}
