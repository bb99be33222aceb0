package handler

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/momomojo/happy-sourdough-sub002/config"
	"github.com/momomojo/happy-sourdough-sub002/internal/delivery"
	"github.com/momomojo/happy-sourdough-sub002/internal/discount"
	"github.com/momomojo/happy-sourdough-sub002/internal/models"
	"github.com/momomojo/happy-sourdough-sub002/pkg/database"

	"github.com/gin-gonic/gin"
)

type PublicHandler struct{}

func (h *PublicHandler) GetSiteInfo(c *gin.Context) {
	c.JSON(http.StatusOK, config.AppConfig.Site)
}

func (h *PublicHandler) GetBusinessSettings(c *gin.Context) {
	var settings models.BusinessSettings
	if err := database.DB.First(&settings).Error; err != nil {
		log.Printf("Warning: business settings not found: %v", err)
		c.JSON(http.StatusOK, models.BusinessSettings{AcceptingOrders: true, LoyaltyEarnRate: 1})
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *PublicHandler) ListCategories(c *gin.Context) {
	categories := []models.Category{}
	if err := database.DB.Where("is_active = ?", true).Order("sort_order, name").Find(&categories).Error; err != nil {
		log.Printf("Failed to fetch categories: %v", err)
	}
	c.JSON(http.StatusOK, categories)
}

func (h *PublicHandler) ListProducts(c *gin.Context) {
	query := database.DB.Preload("Category").Preload("Variants").
		Where("is_available = ?", true).Order("sort_order, name")

	if slug := c.Query("category"); slug != "" {
		var category models.Category
		if err := database.DB.Where("slug = ?", slug).First(&category).Error; err != nil {
			c.JSON(http.StatusOK, []models.Product{})
			return
		}
		query = query.Where("category_id = ?", category.ID)
	}
	if c.Query("featured") == "true" {
		query = query.Where("is_featured = ?", true)
	}

	products := []models.Product{}
	if err := query.Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *PublicHandler) GetProductBySlug(c *gin.Context) {
	var product models.Product
	err := database.DB.Preload("Category").Preload("Variants").
		Where("slug = ? AND is_available = ?", c.Param("slug"), true).First(&product).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *PublicHandler) ListPickupLocations(c *gin.Context) {
	locations := []models.PickupLocation{}
	if err := database.DB.Where("is_active = ?", true).Find(&locations).Error; err != nil {
		log.Printf("Failed to fetch pickup locations: %v", err)
	}
	c.JSON(http.StatusOK, locations)
}

// activeZones loads the zone table, falling back to the hard-coded
// default bands when the table is empty or unreachable.
func activeZones() []models.DeliveryZone {
	zones := []models.DeliveryZone{}
	if err := database.DB.Where("is_active = ?", true).Order("min_distance").Find(&zones).Error; err != nil {
		log.Printf("Warning: failed to load delivery zones, using defaults: %v", err)
		return delivery.DefaultZones()
	}
	if len(zones) == 0 {
		return delivery.DefaultZones()
	}
	return zones
}

// DeliveryQuote resolves a zone by zip code (or distance in miles) and
// returns the composed delivery summary for a subtotal.
func (h *PublicHandler) DeliveryQuote(c *gin.Context) {
	subtotal, err := strconv.ParseFloat(c.DefaultQuery("subtotal", "0"), 64)
	if err != nil || subtotal < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subtotal"})
		return
	}

	zones := activeZones()
	var zone *models.DeliveryZone
	if zip := c.Query("zip"); zip != "" {
		zone = delivery.ZoneByZip(zones, zip)
	} else if distStr := c.Query("distance"); distStr != "" {
		dist, err := strconv.ParseFloat(distStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid distance"})
			return
		}
		zone = delivery.ZoneByDistance(zones, dist)
	} else {
		c.JSON(http.StatusBadRequest, gin.H{"error": "zip or distance is required"})
		return
	}

	c.JSON(http.StatusOK, delivery.Check(zone, subtotal))
}

// ListSlots returns the open time slots for a date and fulfillment type.
func (h *PublicHandler) ListSlots(c *gin.Context) {
	dateStr := c.Query("date")
	slotDate, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}
	fulfillment := c.DefaultQuery("type", "delivery")

	slots := []models.TimeSlot{}
	err = database.DB.
		Where("slot_date = ? AND fulfillment_type = ? AND is_active = ?", slotDate, fulfillment, true).
		Order("start_time").Find(&slots).Error
	if err != nil {
		log.Printf("Failed to fetch time slots: %v", err)
		c.JSON(http.StatusOK, []gin.H{})
		return
	}

	out := make([]gin.H, 0, len(slots))
	for _, slot := range slots {
		out = append(out, gin.H{
			"id":         slot.ID,
			"slot_date":  slot.SlotDate.Format("2006-01-02"),
			"start_time": slot.StartTime,
			"end_time":   slot.EndTime,
			"available":  delivery.SlotAvailable(slot),
			"space_left": delivery.SlotSpaceLeft(slot),
		})
	}
	c.JSON(http.StatusOK, out)
}

type DiscountPreviewRequest struct {
	Code     string  `json:"code" binding:"required"`
	Subtotal float64 `json:"subtotal" binding:"required,gt=0"`
}

// PreviewDiscount validates a code against a subtotal without consuming
// a use.
func (h *PublicHandler) PreviewDiscount(c *gin.Context) {
	var req DiscountPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code, found := findDiscountCode(req.Code)
	if !found {
		c.JSON(http.StatusOK, discount.Validation{Message: "Unknown discount code"})
		return
	}
	c.JSON(http.StatusOK, discount.Validate(code, req.Subtotal, time.Now()))
}

// findDiscountCode looks a code up case-insensitively.
func findDiscountCode(raw string) (models.DiscountCode, bool) {
	var code models.DiscountCode
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	if err := database.DB.Where("UPPER(code) = ?", normalized).First(&code).Error; err != nil {
		return models.DiscountCode{}, false
	}
	return code, true
}
