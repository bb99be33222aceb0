package handler

import (
	"net/http"
	"strings"

	"github.com/momomojo/happy-sourdough-sub002/internal/loyalty"
	"github.com/momomojo/happy-sourdough-sub002/internal/models"
	"github.com/momomojo/happy-sourdough-sub002/internal/workflow"
	"github.com/momomojo/happy-sourdough-sub002/pkg/database"

	"github.com/gin-gonic/gin"
)

// AccountHandler serves customer-facing order tracking and loyalty.
// Customers are identified by order number + email (no customer login).
type AccountHandler struct{}

// TrackOrder returns status, progress and history for an order. The
// email must match the one the order was placed with.
func (h *AccountHandler) TrackOrder(c *gin.Context) {
	orderNo := c.Param("orderNo")
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	var order models.Order
	err := database.DB.Preload("Items.Product").Preload("Items.Variant").
		Preload("TimeSlot").Preload("StatusHistory").
		Where("order_no = ? AND customer_email = ?", orderNo, email).First(&order).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	status := workflow.Status(order.Status)
	c.JSON(http.StatusOK, gin.H{
		"order_no":         order.OrderNo,
		"status":           order.Status,
		"status_label":     workflow.StatusLabel(status),
		"progress":         workflow.Progress(status),
		"estimated_time":   workflow.EstimatedTimeRemaining(status, workflow.FulfillmentType(order.FulfillmentType)),
		"can_cancel":       workflow.CanCancel(status),
		"fulfillment_type": order.FulfillmentType,
		"time_slot":        order.TimeSlot,
		"items":            order.Items,
		"subtotal":         order.Subtotal,
		"discount_amount":  order.DiscountAmount,
		"delivery_fee":     order.DeliveryFee,
		"tax_amount":       order.TaxAmount,
		"total":            order.Total,
		"status_history":   order.StatusHistory,
	})
}

func findCustomerByEmail(c *gin.Context) (models.CustomerProfile, bool) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return models.CustomerProfile{}, false
	}
	var customer models.CustomerProfile
	if err := database.DB.Where("email = ?", email).First(&customer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return models.CustomerProfile{}, false
	}
	return customer, true
}

func (h *AccountHandler) LoyaltyBalance(c *gin.Context) {
	customer, ok := findCustomerByEmail(c)
	if !ok {
		return
	}

	var account models.LoyaltyAccount
	if err := database.DB.Where("customer_id = ?", customer.ID).First(&account).Error; err != nil {
		// No purchases yet: an empty bronze account, not an error.
		c.JSON(http.StatusOK, gin.H{
			"points_balance": 0, "lifetime_points": 0, "tier": loyalty.TierBronze,
		})
		return
	}

	transactions := []models.LoyaltyTransaction{}
	database.DB.Where("customer_id = ?", customer.ID).
		Order("created_at desc").Limit(20).Find(&transactions)

	c.JSON(http.StatusOK, gin.H{
		"points_balance":  account.PointsBalance,
		"lifetime_points": account.LifetimePoints,
		"tier":            account.Tier,
		"recent_activity": transactions,
	})
}

type RedeemRequest struct {
	Email  string `json:"email" binding:"required,email"`
	Points int    `json:"points" binding:"required,gt=0"`
}

// RedeemPoints converts points into a single-use discount code.
func (h *AccountHandler) RedeemPoints(c *gin.Context) {
	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var customer models.CustomerProfile
	if err := database.DB.Where("email = ?", req.Email).First(&customer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	result, err := loyalty.Redeem(database.DB, customer.ID, req.Points)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to redeem points"})
		return
	}
	if !result.Success {
		c.JSON(http.StatusBadRequest, gin.H{"error": result.Message})
		return
	}
	c.JSON(http.StatusOK, result)
}
