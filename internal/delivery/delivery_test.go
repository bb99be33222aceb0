package delivery

import (
	"testing"

	"github.com/momomojo/happy-sourdough-sub002/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZoneByDistance(t *testing.T) {
	zones := DefaultZones()

	tests := []struct {
		miles float64
		want  string
	}{
		{0, "Zone 1 - City Center"},
		{2.9, "Zone 1 - City Center"},
		{3, "Zone 2 - Inner Suburbs"},
		{5, "Zone 2 - Inner Suburbs"},
		{6.99, "Zone 2 - Inner Suburbs"},
		{7, "Zone 3 - Outer Suburbs"},
		{11.9, "Zone 3 - Outer Suburbs"},
	}
	for _, tt := range tests {
		zone := ZoneByDistance(zones, tt.miles)
		require.NotNil(t, zone, "distance %.2f", tt.miles)
		assert.Equal(t, tt.want, zone.Name, "distance %.2f", tt.miles)
	}

	assert.Nil(t, ZoneByDistance(zones, 12))
	assert.Nil(t, ZoneByDistance(zones, 50))
	assert.Nil(t, ZoneByDistance(zones, -1))
}

func TestZoneByDistanceSkipsInactive(t *testing.T) {
	zones := DefaultZones()
	zones[1].IsActive = false
	assert.Nil(t, ZoneByDistance(zones, 5))
}

func TestZoneByZip(t *testing.T) {
	zones := []models.DeliveryZone{
		{Name: "Downtown", ZipCodes: "97201, 97202,97203", IsActive: true},
		{Name: "Eastside", ZipCodes: "97211,97212", IsActive: true},
		{Name: "Retired", ZipCodes: "97299", IsActive: false},
	}

	zone := ZoneByZip(zones, "97202")
	require.NotNil(t, zone)
	assert.Equal(t, "Downtown", zone.Name)

	zone = ZoneByZip(zones, "97212")
	require.NotNil(t, zone)
	assert.Equal(t, "Eastside", zone.Name)

	assert.Nil(t, ZoneByZip(zones, "97299"), "inactive zones are skipped")
	assert.Nil(t, ZoneByZip(zones, "10001"))
	assert.Nil(t, ZoneByZip(zones, ""))
}

func TestFee(t *testing.T) {
	zone := models.DeliveryZone{DeliveryFee: 5, FreeDeliveryThreshold: 75}

	assert.Equal(t, 5.0, Fee(zone, 30))
	assert.Equal(t, 5.0, Fee(zone, 74.99))
	assert.Equal(t, 0.0, Fee(zone, 75))
	assert.Equal(t, 0.0, Fee(zone, 120))

	// Threshold of zero means the fee always applies.
	noFree := models.DeliveryZone{DeliveryFee: 8}
	assert.Equal(t, 8.0, Fee(noFree, 10000))
}

func TestMeetsMinimumOrder(t *testing.T) {
	zone := models.DeliveryZone{MinOrderAmount: 40}
	assert.False(t, MeetsMinimumOrder(zone, 39.99))
	assert.True(t, MeetsMinimumOrder(zone, 40))
	assert.True(t, MeetsMinimumOrder(zone, 41))
}

func TestCheckOutsideZones(t *testing.T) {
	q := Check(nil, 100)
	assert.False(t, q.CanDeliver)
	assert.NotEmpty(t, q.Message)
	assert.Zero(t, q.Fee)
}

func TestCheckBelowMinimum(t *testing.T) {
	zone := models.DeliveryZone{
		Name: "Zone 2 - Inner Suburbs", MinOrderAmount: 40,
		DeliveryFee: 8, FreeDeliveryThreshold: 100, IsActive: true,
	}
	q := Check(&zone, 25)
	assert.False(t, q.CanDeliver)
	assert.Equal(t, 40.0, q.MinOrderAmount)
	assert.Contains(t, q.Message, "minimum order")
}

func TestCheckWithFee(t *testing.T) {
	zone := models.DeliveryZone{
		Name: "Zone 1 - City Center", MinOrderAmount: 25,
		DeliveryFee: 5, FreeDeliveryThreshold: 75, IsActive: true,
	}
	q := Check(&zone, 50)
	assert.True(t, q.CanDeliver)
	assert.Equal(t, 5.0, q.Fee)
	assert.Equal(t, 25.0, q.AmountToFreeFee)
	assert.Contains(t, q.Message, "free delivery over")
}

func TestCheckFreeDelivery(t *testing.T) {
	zone := models.DeliveryZone{
		Name: "Zone 1 - City Center", MinOrderAmount: 25,
		DeliveryFee: 5, FreeDeliveryThreshold: 75, IsActive: true,
	}
	q := Check(&zone, 80)
	assert.True(t, q.CanDeliver)
	assert.Zero(t, q.Fee)
	assert.Zero(t, q.AmountToFreeFee)
	assert.Contains(t, q.Message, "Free delivery")
}

func TestSlotAvailable(t *testing.T) {
	assert.True(t, SlotAvailable(models.TimeSlot{IsActive: true, CurrentOrders: 0, MaxOrders: 8}))
	assert.True(t, SlotAvailable(models.TimeSlot{IsActive: true, CurrentOrders: 7, MaxOrders: 8}))
	assert.False(t, SlotAvailable(models.TimeSlot{IsActive: true, CurrentOrders: 8, MaxOrders: 8}))
	assert.False(t, SlotAvailable(models.TimeSlot{IsActive: false, CurrentOrders: 0, MaxOrders: 8}))
}

func TestSlotSpaceLeft(t *testing.T) {
	assert.Equal(t, 3, SlotSpaceLeft(models.TimeSlot{CurrentOrders: 5, MaxOrders: 8}))
	assert.Equal(t, 0, SlotSpaceLeft(models.TimeSlot{CurrentOrders: 8, MaxOrders: 8}))
	assert.Equal(t, 0, SlotSpaceLeft(models.TimeSlot{CurrentOrders: 9, MaxOrders: 8}))
}
