package models

import (
	"time"
)

type CustomerProfile struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	Name      string            `gorm:"size:100;not null" json:"name"`
	Email     string            `gorm:"size:150;unique;not null" json:"email"`
	Phone     string            `gorm:"size:20" json:"phone"`
	Addresses []CustomerAddress `gorm:"foreignKey:CustomerID" json:"addresses,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

type CustomerAddress struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	CustomerID uint   `json:"customer_id"`
	Label      string `gorm:"size:50" json:"label"`
	Street     string `gorm:"size:255;not null" json:"street"`
	City       string `gorm:"size:100" json:"city"`
	Zip        string `gorm:"size:10;not null" json:"zip"`
	IsDefault  bool   `gorm:"default:false" json:"is_default"`
}

// LoyaltyAccount tracks redeemable and lifetime points per customer.
type LoyaltyAccount struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CustomerID     uint      `gorm:"unique;not null" json:"customer_id"`
	PointsBalance  int       `gorm:"default:0" json:"points_balance"`
	LifetimePoints int       `gorm:"default:0" json:"lifetime_points"`
	Tier           string    `gorm:"size:20;default:'bronze'" json:"tier"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// LoyaltyTransaction is the signed ledger behind the balance. Points are
// positive for accrual, negative for redemption.
type LoyaltyTransaction struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"index" json:"customer_id"`
	OrderID    *uint     `json:"order_id"`
	Points     int       `gorm:"not null" json:"points"`
	Kind       string    `gorm:"type:enum('earn','redeem');not null" json:"kind"`
	Note       string    `gorm:"size:255" json:"note"`
	CreatedAt  time.Time `json:"created_at"`
}
