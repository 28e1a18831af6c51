package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Ошибки оформления заказа
var (
	ErrCartEmpty         = errors.New("cart is empty")
	ErrNoPendingOrder    = errors.New("no pending order")
	ErrOrderMismatch     = errors.New("order does not match checkout draft")
	ErrPaymentInProgress = errors.New("payment already in progress")
)

// Ошибки сессий и хранилища
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrKeyNotFound     = errors.New("key not found")
)

// ErrorKind машиночитаемый класс ошибки обращения к backend
type ErrorKind string

const (
	KindValidation     ErrorKind = "validation"
	KindUnauthorized   ErrorKind = "unauthorized"
	KindSessionExpired ErrorKind = "session_expired"
	KindTransient      ErrorKind = "transient"
	KindRejected       ErrorKind = "rejected"
	KindPayment        ErrorKind = "payment"
)

// APIError представляет типизированную ошибку обращения к backend
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Fields  map[string]string
	Err     error
}

// Эталоны для errors.Is по классу ошибки
var (
	ErrUnauthorized   = &APIError{Kind: KindUnauthorized}
	ErrSessionExpired = &APIError{Kind: KindSessionExpired}
	ErrTransient      = &APIError{Kind: KindTransient}
	ErrRejected       = &APIError{Kind: KindRejected}
	ErrPayment        = &APIError{Kind: KindPayment}
)

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Is сравнивает ошибки по классу
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf возвращает класс ошибки или пустую строку
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

// MessageOf возвращает сообщение для пользователя
func MessageOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Error()
	}
	return "Something went wrong. Please try again."
}

// ValidationError представляет ошибки обязательных полей формы
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError создает ошибку валидации
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return "please fill in all required fields: " + strings.Join(msgs, "; ")
}
