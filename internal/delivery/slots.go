package delivery

import (
	"errors"

	"github.com/momomojo/happy-sourdough-sub002/internal/models"

	"gorm.io/gorm"
)

var (
	ErrSlotFull     = errors.New("time slot is fully booked")
	ErrSlotNotFound = errors.New("time slot not found")
)

// SlotAvailable reports whether a slot can take one more order.
func SlotAvailable(slot models.TimeSlot) bool {
	return slot.IsActive && slot.CurrentOrders < slot.MaxOrders
}

// SlotSpaceLeft returns the remaining capacity, never negative.
func SlotSpaceLeft(slot models.TimeSlot) int {
	left := slot.MaxOrders - slot.CurrentOrders
	if left < 0 {
		return 0
	}
	return left
}

// ReserveSlot takes one unit of capacity. The UPDATE is guarded so the
// counter can never pass max_orders even under concurrent bookings.
func ReserveSlot(db *gorm.DB, slotID uint) error {
	res := db.Model(&models.TimeSlot{}).
		Where("id = ? AND is_active = ? AND current_orders < max_orders", slotID, true).
		Update("current_orders", gorm.Expr("current_orders + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var slot models.TimeSlot
		if err := db.First(&slot, slotID).Error; err != nil {
			return ErrSlotNotFound
		}
		return ErrSlotFull
	}
	return nil
}

// ReleaseSlot gives back one unit of capacity, e.g. on cancellation.
// Guarded so the counter never goes below zero.
func ReleaseSlot(db *gorm.DB, slotID uint) error {
	return db.Model(&models.TimeSlot{}).
		Where("id = ? AND current_orders > 0", slotID).
		Update("current_orders", gorm.Expr("current_orders - 1")).Error
}
