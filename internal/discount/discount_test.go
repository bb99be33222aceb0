package discount

import (
	"testing"
	"time"

	"github.com/momomojo/happy-sourdough-sub002/internal/models"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func activeCode() models.DiscountCode {
	from := now.Add(-24 * time.Hour)
	until := now.Add(24 * time.Hour)
	return models.DiscountCode{
		Code:       "SPRING10",
		Type:       models.DiscountPercentage,
		Value:      10,
		MaxUses:    100,
		ValidFrom:  &from,
		ValidUntil: &until,
		IsActive:   true,
	}
}

func TestValidatePercentage(t *testing.T) {
	v := Validate(activeCode(), 100, now)
	assert.True(t, v.Valid)
	assert.Empty(t, v.Message)
	assert.Equal(t, 10.0, v.Amount)
	assert.False(t, v.FreeDelivery)
}

func TestValidateFailuresHaveDistinctMessages(t *testing.T) {
	seen := map[string]string{}

	inactive := activeCode()
	inactive.IsActive = false

	used := activeCode()
	used.CurrentUses = 100

	early := activeCode()
	from := now.Add(time.Hour)
	early.ValidFrom = &from

	expired := activeCode()
	until := now.Add(-time.Hour)
	expired.ValidUntil = &until

	tooSmall := activeCode()
	tooSmall.MinOrderAmount = 50

	cases := map[string]models.DiscountCode{
		"inactive":  inactive,
		"used up":   used,
		"too early": early,
		"expired":   expired,
		"below min": tooSmall,
	}
	for name, code := range cases {
		v := Validate(code, 30, now)
		assert.False(t, v.Valid, name)
		assert.NotEmpty(t, v.Message, name)
		assert.Zero(t, v.Amount, name)
		for other, msg := range seen {
			assert.NotEqual(t, msg, v.Message, "%s and %s share a message", name, other)
		}
		seen[name] = v.Message
	}
}

func TestValidateUsageCapBoundary(t *testing.T) {
	code := activeCode()
	code.MaxUses = 5
	code.CurrentUses = 4
	assert.True(t, Validate(code, 100, now).Valid)

	code.CurrentUses = 5
	assert.False(t, Validate(code, 100, now).Valid)

	// MaxUses of zero means unlimited.
	code.MaxUses = 0
	code.CurrentUses = 9999
	assert.True(t, Validate(code, 100, now).Valid)
}

func TestValidateWindowBoundaries(t *testing.T) {
	code := activeCode()
	code.ValidFrom = nil
	code.ValidUntil = nil
	assert.True(t, Validate(code, 100, now).Valid, "open-ended window")

	exact := now
	code.ValidFrom = &exact
	code.ValidUntil = &exact
	assert.True(t, Validate(code, 100, now).Valid, "window endpoints are inclusive")
}

func TestValidateFreeDelivery(t *testing.T) {
	code := activeCode()
	code.Type = models.DiscountFreeDelivery
	code.Value = 0

	v := Validate(code, 60, now)
	assert.True(t, v.Valid)
	assert.True(t, v.FreeDelivery)
	assert.Zero(t, v.Amount, "free delivery does not reduce the subtotal")
}

func TestAmountClamp(t *testing.T) {
	fixed := models.DiscountCode{Type: models.DiscountFixedAmount, Value: 50}
	assert.Equal(t, 30.0, Amount(fixed, 30), "fixed discount clamps to subtotal")
	assert.Equal(t, 50.0, Amount(fixed, 80))

	pct := models.DiscountCode{Type: models.DiscountPercentage, Value: 10}
	assert.Equal(t, 10.0, Amount(pct, 100))
	assert.Equal(t, 2.5, Amount(pct, 25))

	full := models.DiscountCode{Type: models.DiscountPercentage, Value: 100}
	assert.Equal(t, 40.0, Amount(full, 40))
}

func TestAmountRounding(t *testing.T) {
	pct := models.DiscountCode{Type: models.DiscountPercentage, Value: 15}
	assert.Equal(t, 5.03, Amount(pct, 33.55))
}
