package models

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;unique;not null" json:"name"`
	Slug        string    `gorm:"size:100;unique;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	SortOrder   int       `gorm:"default:0" json:"sort_order"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	Products    []Product `json:"-"`
}

type Product struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	Name         string           `gorm:"size:150;not null" json:"name"`
	Slug         string           `gorm:"size:150;unique;not null" json:"slug"`
	CategoryID   *uint            `json:"category_id"`
	Category     *Category        `gorm:"foreignKey:CategoryID" json:"category"`
	Description  string           `gorm:"type:text" json:"description"`
	BasePrice    float64          `gorm:"type:decimal(10,2);not null" json:"base_price"`
	ImageURL     string           `gorm:"size:255" json:"image_url"`
	IsAvailable  bool             `gorm:"default:true" json:"is_available"`
	IsFeatured   bool             `gorm:"default:false" json:"is_featured"`
	LeadTimeDays int              `gorm:"default:0" json:"lead_time_days"`
	SortOrder    int              `gorm:"default:0" json:"sort_order"`
	Variants     []ProductVariant `gorm:"foreignKey:ProductID" json:"variants"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`
}

// ProductVariant adjusts the base price, e.g. "8 inch" vs "10 inch".
type ProductVariant struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	ProductID       uint    `json:"product_id"`
	Name            string  `gorm:"size:100;not null" json:"name"`
	PriceAdjustment float64 `gorm:"type:decimal(10,2);default:0.00" json:"price_adjustment"`
	SortOrder       int     `gorm:"default:0" json:"sort_order"`
	IsDefault       bool    `gorm:"default:false" json:"is_default"`
	IsAvailable     bool    `gorm:"default:true" json:"is_available"`
}
