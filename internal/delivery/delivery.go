package delivery

import (
	"fmt"
	"sort"

	"github.com/momomojo/happy-sourdough-sub002/internal/models"
)

// DefaultZones is the three-band fallback used when no zones exist in
// the database. Bands are non-overlapping [MinDistance, MaxDistance).
func DefaultZones() []models.DeliveryZone {
	return []models.DeliveryZone{
		{
			Name:                  "Zone 1 - City Center",
			MinDistance:           0,
			MaxDistance:           3,
			MinOrderAmount:        25,
			DeliveryFee:           5,
			FreeDeliveryThreshold: 75,
			IsActive:              true,
		},
		{
			Name:                  "Zone 2 - Inner Suburbs",
			MinDistance:           3,
			MaxDistance:           7,
			MinOrderAmount:        40,
			DeliveryFee:           8,
			FreeDeliveryThreshold: 100,
			IsActive:              true,
		},
		{
			Name:                  "Zone 3 - Outer Suburbs",
			MinDistance:           7,
			MaxDistance:           12,
			MinOrderAmount:        60,
			DeliveryFee:           12,
			FreeDeliveryThreshold: 150,
			IsActive:              true,
		},
	}
}

// ZoneByDistance returns the first active zone whose band contains the
// given distance in miles, checking bands in ascending order. Returns
// nil when no band matches.
func ZoneByDistance(zones []models.DeliveryZone, miles float64) *models.DeliveryZone {
	if miles < 0 {
		return nil
	}
	sorted := make([]models.DeliveryZone, len(zones))
	copy(sorted, zones)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MinDistance < sorted[j].MinDistance
	})
	for i := range sorted {
		z := sorted[i]
		if z.IsActive && miles >= z.MinDistance && miles < z.MaxDistance {
			return &sorted[i]
		}
	}
	return nil
}

// ZoneByZip returns the first active zone whose zip code list contains
// the given zip, or nil.
func ZoneByZip(zones []models.DeliveryZone, zip string) *models.DeliveryZone {
	for i := range zones {
		if zones[i].IsActive && zones[i].ServesZip(zip) {
			return &zones[i]
		}
	}
	return nil
}

// Fee returns the delivery fee for an order subtotal in the given zone.
// The fee is waived once the subtotal reaches the zone's free-delivery
// threshold (a threshold of 0 means no free delivery).
func Fee(zone models.DeliveryZone, subtotal float64) float64 {
	if zone.FreeDeliveryThreshold > 0 && subtotal >= zone.FreeDeliveryThreshold {
		return 0
	}
	return zone.DeliveryFee
}

// MeetsMinimumOrder reports whether the subtotal clears the zone's
// minimum order amount.
func MeetsMinimumOrder(zone models.DeliveryZone, subtotal float64) bool {
	return subtotal >= zone.MinOrderAmount
}

// Quote is the composed checkout summary for a zone and subtotal.
type Quote struct {
	CanDeliver      bool    `json:"can_deliver"`
	ZoneName        string  `json:"zone_name,omitempty"`
	Fee             float64 `json:"fee"`
	MinOrderAmount  float64 `json:"min_order_amount"`
	AmountToFreeFee float64 `json:"amount_to_free_delivery"`
	Message         string  `json:"message"`
}

// Check composes the delivery summary for a subtotal. A nil zone means
// the address is outside every delivery band.
func Check(zone *models.DeliveryZone, subtotal float64) Quote {
	if zone == nil {
		return Quote{
			CanDeliver: false,
			Message:    "Sorry, we do not deliver to this address. Pickup is always available.",
		}
	}
	if !MeetsMinimumOrder(*zone, subtotal) {
		return Quote{
			CanDeliver:     false,
			ZoneName:       zone.Name,
			MinOrderAmount: zone.MinOrderAmount,
			Message: fmt.Sprintf("Delivery to %s requires a minimum order of $%.2f (add $%.2f more)",
				zone.Name, zone.MinOrderAmount, zone.MinOrderAmount-subtotal),
		}
	}

	fee := Fee(*zone, subtotal)
	q := Quote{
		CanDeliver:     true,
		ZoneName:       zone.Name,
		Fee:            fee,
		MinOrderAmount: zone.MinOrderAmount,
	}
	if fee == 0 {
		q.Message = fmt.Sprintf("Free delivery to %s", zone.Name)
		return q
	}
	q.Message = fmt.Sprintf("Delivery to %s for $%.2f", zone.Name, fee)
	if zone.FreeDeliveryThreshold > 0 {
		q.AmountToFreeFee = zone.FreeDeliveryThreshold - subtotal
		q.Message += fmt.Sprintf(" (free delivery over $%.2f)", zone.FreeDeliveryThreshold)
	}
	return q
}
