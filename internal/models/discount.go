package models

import (
	"time"
)

const (
	DiscountPercentage   = "percentage"
	DiscountFixedAmount  = "fixed_amount"
	DiscountFreeDelivery = "free_delivery"
)

type DiscountCode struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Code           string     `gorm:"size:50;unique;not null" json:"code"`
	Type           string     `gorm:"type:enum('percentage','fixed_amount','free_delivery');not null" json:"type"`
	Value          float64    `gorm:"type:decimal(10,2);default:0.00" json:"value"`
	MinOrderAmount float64    `gorm:"type:decimal(10,2);default:0.00" json:"min_order_amount"`
	MaxUses        int        `gorm:"default:0" json:"max_uses"` // 0 means unlimited
	CurrentUses    int        `gorm:"default:0" json:"current_uses"`
	ValidFrom      *time.Time `json:"valid_from"`
	ValidUntil     *time.Time `json:"valid_until"`
	IsActive       bool       `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
}
