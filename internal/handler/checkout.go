package handler

import (
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/momomojo/happy-sourdough-sub002/config"
	"github.com/momomojo/happy-sourdough-sub002/internal/delivery"
	"github.com/momomojo/happy-sourdough-sub002/internal/discount"
	"github.com/momomojo/happy-sourdough-sub002/internal/models"
	"github.com/momomojo/happy-sourdough-sub002/internal/notify"
	"github.com/momomojo/happy-sourdough-sub002/internal/workflow"
	"github.com/momomojo/happy-sourdough-sub002/pkg/database"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CheckoutHandler struct {
	Mailer notify.Mailer
	Events *notify.EventPublisher
}

type CheckoutItemRequest struct {
	ProductID uint  `json:"product_id" binding:"required"`
	VariantID *uint `json:"variant_id"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

type CheckoutRequest struct {
	CustomerName     string                `json:"customer_name" binding:"required"`
	CustomerEmail    string                `json:"customer_email" binding:"required,email"`
	CustomerPhone    string                `json:"customer_phone"`
	FulfillmentType  string                `json:"fulfillment_type" binding:"required,oneof=delivery pickup"`
	TimeSlotID       uint                  `json:"time_slot_id" binding:"required"`
	DeliveryStreet   string                `json:"delivery_street"`
	DeliveryCity     string                `json:"delivery_city"`
	DeliveryZip      string                `json:"delivery_zip"`
	PickupLocationID *uint                 `json:"pickup_location_id"`
	DiscountCode     string                `json:"discount_code"`
	Notes            string                `json:"notes"`
	Items            []CheckoutItemRequest `json:"items" binding:"required,min=1"`
}

var errDiscountExhausted = errors.New("discount code usage limit reached")

// formatOrderNo builds the public order number: PREFIX-YYYYMMDD-SEQ.
func formatOrderNo(prefix string, seq uint, at time.Time) string {
	return fmt.Sprintf("%s-%s-%05d", prefix, at.Format("20060102"), seq)
}

// nextOrderNo derives the next order number from the latest order ID
// as seen inside tx. Concurrent checkouts can still read the same ID;
// the unique index on order_no catches that and the caller retries.
func nextOrderNo(tx *gorm.DB, at time.Time) string {
	var lastOrder models.Order
	tx.Order("id desc").First(&lastOrder)
	return formatOrderNo(config.AppConfig.Defaults.OrderPrefix, lastOrder.ID+1, at)
}

// isDuplicateOrderNo reports whether err is a unique-key violation on
// the order_no column (MySQL error 1062).
func isDuplicateOrderNo(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") && strings.Contains(msg, "order_no")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// placeOrder books the slot, creates the order with its items and
// initial status history entry, and consumes a discount use, all in
// one transaction. Returns delivery.ErrSlotFull or errDiscountExhausted
// when a guard fails.
func (h *CheckoutHandler) placeOrder(order *models.Order, items []models.OrderItem, discountCodeID *uint) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		order.OrderNo = nextOrderNo(tx, time.Now())

		if err := delivery.ReserveSlot(tx, *order.TimeSlotID); err != nil {
			return err
		}

		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].ID = 0
			items[i].OrderID = order.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}

		history := models.OrderStatusHistory{
			OrderID:  order.ID,
			ToStatus: string(workflow.StatusReceived),
			Note:     "Order placed online",
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		// Consume one use of the discount code, guarded against the cap.
		if discountCodeID != nil {
			res := tx.Model(&models.DiscountCode{}).
				Where("id = ? AND (max_uses = 0 OR current_uses < max_uses)", *discountCodeID).
				Update("current_uses", gorm.Expr("current_uses + 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errDiscountExhausted
			}
		}
		return nil
	})
}

func (h *CheckoutHandler) SubmitOrder(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var settings models.BusinessSettings
	if err := database.DB.First(&settings).Error; err != nil {
		log.Printf("Warning: business settings not found, using defaults: %v", err)
		settings = models.BusinessSettings{AcceptingOrders: true, LoyaltyEarnRate: 1,
			TaxRate: config.AppConfig.Defaults.TaxRate}
	}
	if !settings.AcceptingOrders {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "We are not taking online orders right now"})
		return
	}

	if req.FulfillmentType == string(workflow.FulfillmentDelivery) &&
		(req.DeliveryStreet == "" || req.DeliveryZip == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Delivery orders need a street address and zip code"})
		return
	}

	// Price items server-side; client totals are never trusted.
	var subtotal float64
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, itemReq := range req.Items {
		var product models.Product
		if err := database.DB.Preload("Variants").First(&product, itemReq.ProductID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Product %d not found", itemReq.ProductID)})
			return
		}
		if !product.IsAvailable {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s is currently unavailable", product.Name)})
			return
		}

		unitPrice := product.BasePrice
		if itemReq.VariantID != nil {
			var variant *models.ProductVariant
			for i := range product.Variants {
				if product.Variants[i].ID == *itemReq.VariantID {
					variant = &product.Variants[i]
					break
				}
			}
			if variant == nil || !variant.IsAvailable {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid variant for %s", product.Name)})
				return
			}
			unitPrice += variant.PriceAdjustment
		}

		itemTotal := round2(unitPrice * float64(itemReq.Quantity))
		subtotal += itemTotal
		items = append(items, models.OrderItem{
			ProductID: itemReq.ProductID,
			VariantID: itemReq.VariantID,
			Quantity:  itemReq.Quantity,
			UnitPrice: unitPrice,
			Total:     itemTotal,
		})
	}
	subtotal = round2(subtotal)

	// Discount
	var discountAmount float64
	var discountCodeID *uint
	freeDelivery := false
	if req.DiscountCode != "" {
		code, found := findDiscountCode(req.DiscountCode)
		if !found {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown discount code"})
			return
		}
		v := discount.Validate(code, subtotal, time.Now())
		if !v.Valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": v.Message})
			return
		}
		discountAmount = v.Amount
		freeDelivery = v.FreeDelivery
		discountCodeID = &code.ID
	}

	// Delivery zone rules
	var deliveryFee float64
	var deliveryZoneID *uint
	if req.FulfillmentType == string(workflow.FulfillmentDelivery) {
		zones := activeZones()
		zone := delivery.ZoneByZip(zones, req.DeliveryZip)
		quote := delivery.Check(zone, subtotal)
		if !quote.CanDeliver {
			c.JSON(http.StatusBadRequest, gin.H{"error": quote.Message})
			return
		}
		deliveryFee = quote.Fee
		if zone.ID != 0 {
			deliveryZoneID = &zone.ID
		}
		if freeDelivery {
			deliveryFee = 0
		}
	}

	taxAmount := round2((subtotal - discountAmount) * settings.TaxRate)
	total := round2(subtotal - discountAmount + deliveryFee + taxAmount)

	// Time slot must match the fulfillment type and still be bookable.
	var slot models.TimeSlot
	if err := database.DB.First(&slot, req.TimeSlotID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Time slot not found"})
		return
	}
	if slot.FulfillmentType != req.FulfillmentType {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Time slot does not match the fulfillment type"})
		return
	}
	today := time.Now().Truncate(24 * time.Hour)
	if slot.SlotDate.Before(today) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Time slot is in the past"})
		return
	}
	if !delivery.SlotAvailable(slot) {
		c.JSON(http.StatusConflict, gin.H{"error": "This time slot is fully booked, please pick another"})
		return
	}

	// Find or create the customer profile.
	var customer models.CustomerProfile
	if err := database.DB.Where("email = ?", req.CustomerEmail).First(&customer).Error; err != nil {
		customer = models.CustomerProfile{
			Name:  req.CustomerName,
			Email: req.CustomerEmail,
			Phone: req.CustomerPhone,
		}
		if err := database.DB.Create(&customer).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process customer info"})
			return
		}
	} else if customer.Name != req.CustomerName || customer.Phone != req.CustomerPhone {
		customer.Name = req.CustomerName
		customer.Phone = req.CustomerPhone
		database.DB.Save(&customer)
	}

	order := models.Order{
		CustomerID:       &customer.ID,
		CustomerName:     req.CustomerName,
		CustomerEmail:    req.CustomerEmail,
		CustomerPhone:    req.CustomerPhone,
		Status:           string(workflow.StatusReceived),
		FulfillmentType:  req.FulfillmentType,
		TimeSlotID:       &slot.ID,
		DeliveryZoneID:   deliveryZoneID,
		DeliveryStreet:   req.DeliveryStreet,
		DeliveryCity:     req.DeliveryCity,
		DeliveryZip:      req.DeliveryZip,
		PickupLocationID: req.PickupLocationID,
		Subtotal:         subtotal,
		DiscountCodeID:   discountCodeID,
		DiscountAmount:   discountAmount,
		DeliveryFee:      deliveryFee,
		TaxAmount:        taxAmount,
		Total:            total,
		Notes:            req.Notes,
		OrderDate:        time.Now(),
	}

	// Concurrent checkouts can race on the order number; retry with a
	// fresh one when the unique index rejects it.
	var placeErr error
	for attempt := 0; attempt < 3; attempt++ {
		order.ID = 0
		placeErr = h.placeOrder(&order, items, discountCodeID)
		if !isDuplicateOrderNo(placeErr) {
			break
		}
	}
	if placeErr != nil {
		switch {
		case placeErr == delivery.ErrSlotFull:
			c.JSON(http.StatusConflict, gin.H{"error": "This time slot is fully booked, please pick another"})
		case placeErr == errDiscountExhausted:
			c.JSON(http.StatusConflict, gin.H{"error": "This discount code has reached its usage limit"})
		default:
			log.Printf("Failed to place order: %v", placeErr)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		}
		return
	}

	// Notifications stay off the request path.
	go func(orderID uint) {
		var full models.Order
		err := database.DB.Preload("Items.Product").Preload("Items.Variant").
			Preload("TimeSlot").First(&full, orderID).Error
		if err != nil {
			log.Printf("Failed to load order %d for notifications: %v", orderID, err)
			return
		}
		if err := h.Mailer.OrderConfirmation(&full); err != nil {
			log.Printf("Failed to send confirmation for %s: %v", full.OrderNo, err)
		}
		h.Events.Publish(notify.OrderEvent{
			OrderNo:         full.OrderNo,
			Event:           "created",
			FulfillmentType: full.FulfillmentType,
			NewStatus:       full.Status,
			Total:           full.Total,
		})
	}(order.ID)

	c.JSON(http.StatusCreated, gin.H{
		"message":         "Order placed successfully",
		"order_no":        order.OrderNo,
		"subtotal":        subtotal,
		"discount_amount": discountAmount,
		"delivery_fee":    deliveryFee,
		"tax_amount":      taxAmount,
		"total":           total,
	})
}
