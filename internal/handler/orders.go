package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/momomojo/happy-sourdough-sub002/internal/delivery"
	"github.com/momomojo/happy-sourdough-sub002/internal/loyalty"
	"github.com/momomojo/happy-sourdough-sub002/internal/models"
	"github.com/momomojo/happy-sourdough-sub002/internal/notify"
	"github.com/momomojo/happy-sourdough-sub002/internal/workflow"
	"github.com/momomojo/happy-sourdough-sub002/pkg/database"

	"github.com/gin-gonic/gin"
)

// OrderHandler is the staff-facing order management surface.
type OrderHandler struct {
	Mailer notify.Mailer
	Events *notify.EventPublisher
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	query := database.DB.Preload("Items.Product").Preload("TimeSlot").
		Order("order_date desc")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if fulfillment := c.Query("type"); fulfillment != "" {
		query = query.Where("fulfillment_type = ?", fulfillment)
	}
	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		query = query.Joins("JOIN time_slots ON time_slots.id = orders.time_slot_id").
			Where("time_slots.slot_date = ?", date)
	}

	orders := []models.Order{}
	if err := query.Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	var order models.Order
	err := database.DB.Preload("Items.Product").Preload("Items.Variant").
		Preload("TimeSlot").Preload("StatusHistory").Preload("Customer").
		First(&order, c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	status := workflow.Status(order.Status)
	c.JSON(http.StatusOK, gin.H{
		"order":         order,
		"next_statuses": workflow.NextStatuses(status),
		"can_cancel":    workflow.CanCancel(status),
		"progress":      workflow.Progress(status),
	})
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

// UpdateOrderStatus moves an order along the workflow, appending a
// history row and notifying the customer on the milestones they care
// about.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := database.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	from := workflow.Status(order.Status)
	to := workflow.Status(req.Status)
	if ok, reason := workflow.ValidateTransition(from, to); !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": reason})
		return
	}

	changedBy := staffName(c)

	tx := database.DB.Begin()

	if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", string(to)).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}

	history := models.OrderStatusHistory{
		OrderID:    order.ID,
		FromStatus: string(from),
		ToStatus:   string(to),
		ChangedBy:  changedBy,
		Note:       req.Note,
	}
	if err := tx.Create(&history).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record status change"})
		return
	}

	// A cancelled order gives its slot capacity back.
	if to == workflow.StatusCancelled && order.TimeSlotID != nil {
		if err := delivery.ReleaseSlot(tx, *order.TimeSlotID); err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to release time slot"})
			return
		}
	}

	if to == workflow.StatusRefunded {
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("payment_status", "refunded").Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment status"})
			return
		}
	}

	tx.Commit()

	order.Status = string(to)
	h.afterStatusChange(order, from, to)

	c.JSON(http.StatusOK, gin.H{
		"message":       "Order status updated",
		"status":        string(to),
		"next_statuses": workflow.NextStatuses(to),
	})
}

// afterStatusChange handles side effects off the transaction: customer
// email, event publishing and loyalty accrual on completion.
func (h *OrderHandler) afterStatusChange(order models.Order, from, to workflow.Status) {
	go func() {
		h.Events.Publish(notify.OrderEvent{
			OrderNo:         order.OrderNo,
			Event:           "status_changed",
			FulfillmentType: order.FulfillmentType,
			OldStatus:       string(from),
			NewStatus:       string(to),
		})

		switch to {
		case workflow.StatusReady:
			if err := h.Mailer.OrderReady(&order); err != nil {
				log.Printf("Failed to send ready email for %s: %v", order.OrderNo, err)
			}
		case workflow.StatusConfirmed, workflow.StatusOutForDelivery, workflow.StatusCancelled:
			if err := h.Mailer.StatusUpdate(&order, from, to); err != nil {
				log.Printf("Failed to send status email for %s: %v", order.OrderNo, err)
			}
		}

		if (to == workflow.StatusDelivered || to == workflow.StatusPickedUp) && order.CustomerID != nil {
			var settings models.BusinessSettings
			earnRate := 1.0
			if err := database.DB.First(&settings).Error; err == nil {
				earnRate = settings.LoyaltyEarnRate
			}
			if err := loyalty.Accrue(database.DB, *order.CustomerID, order.ID, order.Total, earnRate); err != nil {
				log.Printf("Failed to accrue loyalty points for %s: %v", order.OrderNo, err)
			}
		}
	}()
}

// staffName resolves the acting user's name for the history log.
func staffName(c *gin.Context) string {
	userID := c.GetUint("userID")
	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return "staff"
	}
	return user.Username
}
