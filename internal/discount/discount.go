package discount

import (
	"fmt"
	"math"
	"time"

	"github.com/momomojo/happy-sourdough-sub002/internal/models"
)

// Validation is the result of checking a code against an order subtotal.
// Invalid results carry a distinct user-facing message per failed rule.
type Validation struct {
	Valid        bool    `json:"valid"`
	Message      string  `json:"message,omitempty"`
	Amount       float64 `json:"amount"`
	FreeDelivery bool    `json:"free_delivery"`
}

func invalid(format string, args ...interface{}) Validation {
	return Validation{Message: fmt.Sprintf(format, args...)}
}

// Validate runs the eligibility checks in order and short-circuits on
// the first failure: active flag, usage cap, validity window, order
// minimum. On success the discount amount is computed and, for
// free-delivery codes, the FreeDelivery flag is set (the fee itself is
// zeroed by checkout, not here).
func Validate(code models.DiscountCode, subtotal float64, now time.Time) Validation {
	if !code.IsActive {
		return invalid("This discount code is no longer active")
	}
	if code.MaxUses > 0 && code.CurrentUses >= code.MaxUses {
		return invalid("This discount code has reached its usage limit")
	}
	if code.ValidFrom != nil && now.Before(*code.ValidFrom) {
		return invalid("This discount code is not valid yet")
	}
	if code.ValidUntil != nil && now.After(*code.ValidUntil) {
		return invalid("This discount code has expired")
	}
	if subtotal < code.MinOrderAmount {
		return invalid("This code requires a minimum order of $%.2f", code.MinOrderAmount)
	}

	return Validation{
		Valid:        true,
		Amount:       Amount(code, subtotal),
		FreeDelivery: code.Type == models.DiscountFreeDelivery,
	}
}

// Amount computes the discount in currency units, clamped so it never
// exceeds the subtotal. Free-delivery codes contribute 0 here.
func Amount(code models.DiscountCode, subtotal float64) float64 {
	var amount float64
	switch code.Type {
	case models.DiscountPercentage:
		amount = subtotal * code.Value / 100
	case models.DiscountFixedAmount:
		amount = code.Value
	default:
		return 0
	}
	amount = math.Round(amount*100) / 100
	if amount > subtotal {
		return subtotal
	}
	if amount < 0 {
		return 0
	}
	return amount
}
