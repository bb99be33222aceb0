package models

type SiteInfo struct {
	Name         string   `json:"name"`
	Tagline      string   `json:"tagline"`
	Description  string   `json:"description"`
	Logo         string   `json:"logo"`
	Address      string   `json:"address"`
	Phone        string   `json:"phone"`
	Email        string   `json:"email"`
	OpeningHours string   `json:"opening_hours"`
	WorkingDays  []string `json:"working_days"`
	MapLink      string   `json:"map_link"`
	Socials      Socials  `json:"socials"`
}

type Socials struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Twitter   string `json:"twitter"`
}

// BusinessSettings is a single-row table of store-wide knobs editable
// from the back office.
type BusinessSettings struct {
	ID                 uint    `gorm:"primaryKey" json:"id"`
	TaxRate            float64 `gorm:"type:decimal(5,4);default:0.0000" json:"tax_rate"`
	LoyaltyEarnRate    float64 `gorm:"type:decimal(5,2);default:1.00" json:"loyalty_earn_rate"`
	MinLeadHours       int     `gorm:"default:24" json:"min_lead_hours"`
	AcceptingOrders    bool    `gorm:"default:true" json:"accepting_orders"`
	OrderNotice        string  `gorm:"type:text" json:"order_notice"`
	DefaultSlotHorizon int     `gorm:"default:14" json:"default_slot_horizon"`
}
