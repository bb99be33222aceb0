package loyalty

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointsForOrder(t *testing.T) {
	assert.Equal(t, 42, PointsForOrder(42.99, 1))
	assert.Equal(t, 42, PointsForOrder(42.00, 1))
	// The total is floored before the earn rate applies.
	assert.Equal(t, 84, PointsForOrder(42.99, 2))
	assert.Equal(t, 0, PointsForOrder(0, 1))
	assert.Equal(t, 0, PointsForOrder(-5, 1))
	assert.Equal(t, 0, PointsForOrder(50, 0))
}

func TestTierFor(t *testing.T) {
	assert.Equal(t, TierBronze, TierFor(0))
	assert.Equal(t, TierBronze, TierFor(499))
	assert.Equal(t, TierSilver, TierFor(500))
	assert.Equal(t, TierSilver, TierFor(1499))
	assert.Equal(t, TierGold, TierFor(1500))
	assert.Equal(t, TierGold, TierFor(10000))
}

func TestRedeemAmount(t *testing.T) {
	assert.Equal(t, 10.0, RedeemAmount(100))
	assert.Equal(t, 30.0, RedeemAmount(300))
	assert.Equal(t, 0.0, RedeemAmount(99))
}

func TestValidateRedemption(t *testing.T) {
	ok, msg := ValidateRedemption(500, 100)
	assert.True(t, ok)
	assert.Empty(t, msg)

	ok, msg = ValidateRedemption(500, 50)
	assert.False(t, ok)
	assert.Contains(t, msg, "Minimum redemption")

	ok, msg = ValidateRedemption(500, 150)
	assert.False(t, ok)
	assert.Contains(t, msg, "blocks")

	ok, msg = ValidateRedemption(100, 200)
	assert.False(t, ok)
	assert.Contains(t, msg, "Not enough points")
}

func TestGenerateRewardCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code := generateRewardCode()
		assert.True(t, strings.HasPrefix(code, "LOYAL-"))
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}
