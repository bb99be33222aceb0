package models

import (
	"time"
)

type Order struct {
	ID               uint                 `gorm:"primaryKey" json:"id"`
	OrderNo          string               `gorm:"size:50;unique;not null" json:"order_no"`
	CustomerID       *uint                `json:"customer_id"`
	Customer         *CustomerProfile     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	CustomerName     string               `gorm:"size:100;not null" json:"customer_name"`
	CustomerEmail    string               `gorm:"size:150;not null;index" json:"customer_email"`
	CustomerPhone    string               `gorm:"size:20" json:"customer_phone"`
	Status           string               `gorm:"size:30;not null;default:'received';index" json:"status"`
	FulfillmentType  string               `gorm:"type:enum('delivery','pickup');not null" json:"fulfillment_type"`
	TimeSlotID       *uint                `json:"time_slot_id"`
	TimeSlot         *TimeSlot            `gorm:"foreignKey:TimeSlotID" json:"time_slot,omitempty"`
	DeliveryZoneID   *uint                `json:"delivery_zone_id"`
	DeliveryStreet   string               `gorm:"size:255" json:"delivery_street"`
	DeliveryCity     string               `gorm:"size:100" json:"delivery_city"`
	DeliveryZip      string               `gorm:"size:10" json:"delivery_zip"`
	PickupLocationID *uint                `json:"pickup_location_id"`
	Subtotal         float64              `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	DiscountCodeID   *uint                `json:"discount_code_id"`
	DiscountAmount   float64              `gorm:"type:decimal(10,2);default:0.00" json:"discount_amount"`
	DeliveryFee      float64              `gorm:"type:decimal(10,2);default:0.00" json:"delivery_fee"`
	TaxAmount        float64              `gorm:"type:decimal(10,2);default:0.00" json:"tax_amount"`
	Total            float64              `gorm:"type:decimal(10,2);not null" json:"total"`
	PaymentStatus    string               `gorm:"type:enum('pending','paid','refunded');default:'pending'" json:"payment_status"`
	Notes            string               `gorm:"type:text" json:"notes"`
	OrderDate        time.Time            `gorm:"default:CURRENT_TIMESTAMP" json:"order_date"`
	Items            []OrderItem          `gorm:"foreignKey:OrderID" json:"items"`
	StatusHistory    []OrderStatusHistory `gorm:"foreignKey:OrderID" json:"status_history,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `json:"order_id"`
	ProductID uint            `json:"product_id"`
	Product   Product         `gorm:"foreignKey:ProductID" json:"product"`
	VariantID *uint           `json:"variant_id"`
	Variant   *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice float64         `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Total     float64         `gorm:"type:decimal(10,2);not null" json:"total"`
}

// OrderStatusHistory is an append-only log of lifecycle changes.
type OrderStatusHistory struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"index" json:"order_id"`
	FromStatus string    `gorm:"size:30" json:"from_status"`
	ToStatus   string    `gorm:"size:30;not null" json:"to_status"`
	ChangedBy  string    `gorm:"size:100" json:"changed_by"`
	Note       string    `gorm:"type:text" json:"note"`
	CreatedAt  time.Time `json:"created_at"`
}
