package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money представляет денежную сумму в центах
type Money int64

// MoneyFromFloat переводит сумму в долларах в центы с округлением
func MoneyFromFloat(amount float64) Money {
	return Money(math.Round(amount * 100))
}

// ParseMoney разбирает строку вида "12.50"
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid money value %q: %w", s, err)
	}
	return MoneyFromFloat(amount), nil
}

// Float возвращает сумму в долларах
func (m Money) Float() float64 {
	return float64(m) / 100
}

// Mul умножает сумму на ставку с округлением до цента
func (m Money) Mul(rate Rate) Money {
	return Money(math.Round(float64(m) * float64(rate)))
}

// String форматирует сумму с двумя знаками после запятой
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON сериализует сумму строкой, как ожидает backend
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.String())), nil
}

// UnmarshalJSON принимает как строку, так и число
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = 0
		return nil
	}

	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = s
	}

	parsed, err := ParseMoney(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Rate представляет долю (например, 0.035 для 3.5%)
type Rate float64

// String форматирует ставку с четырьмя знаками после запятой
func (r Rate) String() string {
	return strconv.FormatFloat(float64(r), 'f', 4, 64)
}

// MarshalJSON сериализует ставку строкой
func (r Rate) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(r.String())), nil
}

// UnmarshalJSON принимает как строку, так и число
func (r *Rate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = 0
		return nil
	}

	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = s
	}
	if raw == "" {
		*r = 0
		return nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid rate value %q: %w", raw, err)
	}
	*r = Rate(v)
	return nil
}

// OrderID идентификатор заказа на backend (число или строка в JSON)
type OrderID string

// UnmarshalJSON принимает как строку, так и число
func (id *OrderID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if bytes.HasPrefix(data, []byte(`"`)) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = OrderID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid order id %s: %w", data, err)
	}
	*id = OrderID(n.String())
	return nil
}
