package loyalty

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/momomojo/happy-sourdough-sub002/internal/models"

	"gorm.io/gorm"
)

const (
	// RedeemBlock points convert into RedeemValue currency units.
	RedeemBlock = 100
	RedeemValue = 10.0

	TierBronze = "bronze"
	TierSilver = "silver"
	TierGold   = "gold"
)

// PointsForOrder converts an order total into earned points at the
// given rate (points per whole currency unit).
func PointsForOrder(total float64, earnRate float64) int {
	if total <= 0 || earnRate <= 0 {
		return 0
	}
	return int(math.Floor(total) * earnRate)
}

// TierFor maps lifetime points to a tier.
func TierFor(lifetime int) string {
	switch {
	case lifetime >= 1500:
		return TierGold
	case lifetime >= 500:
		return TierSilver
	default:
		return TierBronze
	}
}

// RedeemAmount is the currency value of the given points.
func RedeemAmount(points int) float64 {
	return float64(points/RedeemBlock) * RedeemValue
}

// ValidateRedemption checks a redemption request against a balance and
// returns a user-facing message on failure.
func ValidateRedemption(balance, points int) (bool, string) {
	if points < RedeemBlock {
		return false, fmt.Sprintf("Minimum redemption is %d points", RedeemBlock)
	}
	if points%RedeemBlock != 0 {
		return false, fmt.Sprintf("Points must be redeemed in blocks of %d", RedeemBlock)
	}
	if points > balance {
		return false, "Not enough points for this redemption"
	}
	return true, ""
}

// RedeemResult is the success/code or failure/message union returned to
// the customer.
type RedeemResult struct {
	Success bool    `json:"success"`
	Code    string  `json:"code,omitempty"`
	Value   float64 `json:"value,omitempty"`
	Message string  `json:"message,omitempty"`
}

// Redeem converts points into a single-use fixed-amount discount code
// inside one transaction: balance check, deduction, code creation and a
// ledger entry.
func Redeem(db *gorm.DB, customerID uint, points int) (RedeemResult, error) {
	var result RedeemResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var account models.LoyaltyAccount
		if err := tx.Where("customer_id = ?", customerID).First(&account).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result = RedeemResult{Message: "No points earned yet"}
				return nil
			}
			return err
		}

		if ok, msg := ValidateRedemption(account.PointsBalance, points); !ok {
			result = RedeemResult{Message: msg}
			return nil
		}

		// Guarded decrement; a concurrent redemption loses here.
		res := tx.Model(&models.LoyaltyAccount{}).
			Where("customer_id = ? AND points_balance >= ?", customerID, points).
			Update("points_balance", gorm.Expr("points_balance - ?", points))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			result = RedeemResult{Message: "Not enough points for this redemption"}
			return nil
		}

		value := RedeemAmount(points)
		code := models.DiscountCode{
			Code:     generateRewardCode(),
			Type:     models.DiscountFixedAmount,
			Value:    value,
			MaxUses:  1,
			IsActive: true,
		}
		until := time.Now().AddDate(0, 6, 0)
		code.ValidUntil = &until
		if err := tx.Create(&code).Error; err != nil {
			return err
		}

		entry := models.LoyaltyTransaction{
			CustomerID: customerID,
			Points:     -points,
			Kind:       "redeem",
			Note:       fmt.Sprintf("Redeemed for code %s ($%.2f)", code.Code, value),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		result = RedeemResult{Success: true, Code: code.Code, Value: value}
		return nil
	})
	return result, err
}

// Accrue credits points for a completed order and refreshes the tier.
// Creates the loyalty account on first accrual.
func Accrue(db *gorm.DB, customerID uint, orderID uint, total float64, earnRate float64) error {
	points := PointsForOrder(total, earnRate)
	if points == 0 {
		return nil
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var account models.LoyaltyAccount
		if err := tx.Where(models.LoyaltyAccount{CustomerID: customerID}).
			FirstOrCreate(&account).Error; err != nil {
			return err
		}

		account.PointsBalance += points
		account.LifetimePoints += points
		account.Tier = TierFor(account.LifetimePoints)
		if err := tx.Save(&account).Error; err != nil {
			return err
		}

		entry := models.LoyaltyTransaction{
			CustomerID: customerID,
			OrderID:    &orderID,
			Points:     points,
			Kind:       "earn",
			Note:       fmt.Sprintf("Earned on order total $%.2f", total),
		}
		return tx.Create(&entry).Error
	})
}

func generateRewardCode() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("LOYAL-%d", time.Now().UnixNano())
	}
	return "LOYAL-" + strings.ToUpper(hex.EncodeToString(buf))
}
