package models

import (
	"strings"
	"time"
)

// DeliveryZone is a radius band around the bakery with its own order
// minimum, flat fee and free-delivery threshold.
type DeliveryZone struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	Name                  string    `gorm:"size:100;not null" json:"name"`
	MinDistance           float64   `gorm:"type:decimal(5,2);default:0.00" json:"min_distance"`
	MaxDistance           float64   `gorm:"type:decimal(5,2);not null" json:"max_distance"`
	MinOrderAmount        float64   `gorm:"type:decimal(10,2);default:0.00" json:"min_order_amount"`
	DeliveryFee           float64   `gorm:"type:decimal(10,2);not null" json:"delivery_fee"`
	FreeDeliveryThreshold float64   `gorm:"type:decimal(10,2);default:0.00" json:"free_delivery_threshold"`
	ZipCodes              string    `gorm:"type:text" json:"zip_codes"` // comma separated
	IsActive              bool      `gorm:"default:true" json:"is_active"`
	CreatedAt             time.Time `json:"created_at"`
}

// ServesZip reports whether the zone's zip code list contains zip.
func (z DeliveryZone) ServesZip(zip string) bool {
	zip = strings.TrimSpace(zip)
	if zip == "" || z.ZipCodes == "" {
		return false
	}
	for _, candidate := range strings.Split(z.ZipCodes, ",") {
		if strings.TrimSpace(candidate) == zip {
			return true
		}
	}
	return false
}

// TimeSlot is a bounded-capacity delivery or pickup window on a date.
type TimeSlot struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	SlotDate        time.Time `gorm:"type:date;not null;index" json:"slot_date"`
	StartTime       string    `gorm:"size:5;not null" json:"start_time"` // "09:00"
	EndTime         string    `gorm:"size:5;not null" json:"end_time"`
	FulfillmentType string    `gorm:"type:enum('delivery','pickup');not null" json:"fulfillment_type"`
	CurrentOrders   int       `gorm:"default:0" json:"current_orders"`
	MaxOrders       int       `gorm:"not null" json:"max_orders"`
	IsActive        bool      `gorm:"default:true" json:"is_active"`
}

type PickupLocation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Address   string    `gorm:"type:text" json:"address"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Hours     string    `gorm:"size:150" json:"hours"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
