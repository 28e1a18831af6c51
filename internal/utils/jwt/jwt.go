package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrEmptySessionID возвращается при попытке подписать пустой идентификатор
var ErrEmptySessionID = errors.New("empty session id")

// Claims представляет JWT claims браузерной сессии
type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Manager управляет подписью и проверкой cookie браузерной сессии
type Manager struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewManager создает новый JWT manager
func NewManager(secretKey string, tokenTTL time.Duration) *Manager {
	return &Manager{
		secretKey: secretKey,
		tokenTTL:  tokenTTL,
	}
}

// TTL возвращает время жизни токена
func (m *Manager) TTL() time.Duration {
	return m.tokenTTL
}

// Issue создает новую сессию и возвращает ее идентификатор и токен
func (m *Manager) Issue() (string, string, error) {
	sessionID := uuid.NewString()
	token, err := m.Generate(sessionID)
	if err != nil {
		return "", "", err
	}
	return sessionID, token, nil
}

// Generate подписывает токен для существующей сессии
func (m *Manager) Generate(sessionID string) (string, error) {
	if sessionID == "" {
		return "", ErrEmptySessionID
	}

	now := time.Now()
	claims := Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(m.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Validate валидирует токен и возвращает идентификатор сессии
func (m *Manager) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Проверяем метод подписи
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secretKey), nil
	})

	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.SessionID == "" {
		return "", fmt.Errorf("invalid token claims")
	}

	return claims.SessionID, nil
}
