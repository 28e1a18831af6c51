package service

import "github.com/avc/storefront-gateway/internal/domain"

// Rates ставки наценки и налога
type Rates struct {
	Surcharge domain.Rate
	Tax       domain.Rate
}

// DefaultRates ставки по умолчанию
var DefaultRates = Rates{
	Surcharge: 0.035,
	Tax:       0.08125,
}

// ComputeTotals рассчитывает финансовый срез корзины в центах.
// Налог начисляется на сумму с наценкой; чаевые и скидка пока всегда нулевые.
func ComputeTotals(cart *domain.CartSnapshot, rates Rates) domain.FinancialSnapshot {
	var subtotal domain.Money
	if cart != nil {
		for _, item := range cart.Items {
			subtotal += item.UnitPrice * domain.Money(item.Quantity)
		}
	}

	surcharge := subtotal.Mul(rates.Surcharge)
	tax := (subtotal + surcharge).Mul(rates.Tax)
	var tip, discount domain.Money

	return domain.FinancialSnapshot{
		Subtotal:            subtotal,
		SurchargeAmount:     surcharge,
		SurchargePercentage: rates.Surcharge,
		TaxAmount:           tax,
		TipAmount:           tip,
		DiscountAmount:      discount,
		TotalAmount:         subtotal + surcharge + tax + tip - discount,
	}
}
