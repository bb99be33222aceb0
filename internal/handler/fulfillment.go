package handler

import (
	"net/http"
	"time"

	"github.com/momomojo/happy-sourdough-sub002/internal/models"
	"github.com/momomojo/happy-sourdough-sub002/pkg/database"

	"github.com/gin-gonic/gin"
)

// FulfillmentHandler manages delivery zones, pickup locations and time
// slots from the back office.
type FulfillmentHandler struct{}

type ZoneRequest struct {
	Name                  string  `json:"name" binding:"required"`
	MinDistance           float64 `json:"min_distance" binding:"gte=0"`
	MaxDistance           float64 `json:"max_distance" binding:"required,gt=0"`
	MinOrderAmount        float64 `json:"min_order_amount" binding:"gte=0"`
	DeliveryFee           float64 `json:"delivery_fee" binding:"gte=0"`
	FreeDeliveryThreshold float64 `json:"free_delivery_threshold" binding:"gte=0"`
	ZipCodes              string  `json:"zip_codes"`
	IsActive              *bool   `json:"is_active"`
}

func (h *FulfillmentHandler) ListZones(c *gin.Context) {
	zones := []models.DeliveryZone{}
	if err := database.DB.Order("min_distance").Find(&zones).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch zones"})
		return
	}
	c.JSON(http.StatusOK, zones)
}

func (h *FulfillmentHandler) CreateZone(c *gin.Context) {
	var req ZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.MaxDistance <= req.MinDistance {
		c.JSON(http.StatusBadRequest, gin.H{"error": "max_distance must be greater than min_distance"})
		return
	}

	zone := models.DeliveryZone{
		Name:                  req.Name,
		MinDistance:           req.MinDistance,
		MaxDistance:           req.MaxDistance,
		MinOrderAmount:        req.MinOrderAmount,
		DeliveryFee:           req.DeliveryFee,
		FreeDeliveryThreshold: req.FreeDeliveryThreshold,
		ZipCodes:              req.ZipCodes,
		IsActive:              true,
	}
	if req.IsActive != nil {
		zone.IsActive = *req.IsActive
	}
	if err := database.DB.Create(&zone).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create zone"})
		return
	}
	c.JSON(http.StatusCreated, zone)
}

func (h *FulfillmentHandler) UpdateZone(c *gin.Context) {
	var req ZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.MaxDistance <= req.MinDistance {
		c.JSON(http.StatusBadRequest, gin.H{"error": "max_distance must be greater than min_distance"})
		return
	}

	var zone models.DeliveryZone
	if err := database.DB.First(&zone, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Zone not found"})
		return
	}

	updates := map[string]interface{}{
		"name":                    req.Name,
		"min_distance":            req.MinDistance,
		"max_distance":            req.MaxDistance,
		"min_order_amount":        req.MinOrderAmount,
		"delivery_fee":            req.DeliveryFee,
		"free_delivery_threshold": req.FreeDeliveryThreshold,
		"zip_codes":               req.ZipCodes,
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if err := database.DB.Model(&zone).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update zone"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Zone updated"})
}

type PickupLocationRequest struct {
	Name     string `json:"name" binding:"required"`
	Address  string `json:"address" binding:"required"`
	Phone    string `json:"phone"`
	Hours    string `json:"hours"`
	IsActive *bool  `json:"is_active"`
}

func (h *FulfillmentHandler) CreatePickupLocation(c *gin.Context) {
	var req PickupLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	location := models.PickupLocation{
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		Hours:    req.Hours,
		IsActive: true,
	}
	if req.IsActive != nil {
		location.IsActive = *req.IsActive
	}
	if err := database.DB.Create(&location).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create pickup location"})
		return
	}
	c.JSON(http.StatusCreated, location)
}

func (h *FulfillmentHandler) ListPickupLocations(c *gin.Context) {
	locations := []models.PickupLocation{}
	if err := database.DB.Find(&locations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pickup locations"})
		return
	}
	c.JSON(http.StatusOK, locations)
}

type GenerateSlotsRequest struct {
	StartDate string   `json:"start_date" binding:"required"` // YYYY-MM-DD
	Days      int      `json:"days" binding:"required,gt=0,lte=60"`
	Windows   []Window `json:"windows" binding:"required,min=1"`
}

type Window struct {
	StartTime       string `json:"start_time" binding:"required"`
	EndTime         string `json:"end_time" binding:"required"`
	FulfillmentType string `json:"fulfillment_type" binding:"required,oneof=delivery pickup"`
	MaxOrders       int    `json:"max_orders" binding:"required,gt=0"`
}

// GenerateSlots creates slots for a date range, skipping windows that
// already exist for a day.
func (h *FulfillmentHandler) GenerateSlots(c *gin.Context) {
	var req GenerateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
		return
	}

	created := 0
	for day := 0; day < req.Days; day++ {
		date := start.AddDate(0, 0, day)
		for _, window := range req.Windows {
			var existing int64
			database.DB.Model(&models.TimeSlot{}).
				Where("slot_date = ? AND start_time = ? AND fulfillment_type = ?",
					date, window.StartTime, window.FulfillmentType).
				Count(&existing)
			if existing > 0 {
				continue
			}

			slot := models.TimeSlot{
				SlotDate:        date,
				StartTime:       window.StartTime,
				EndTime:         window.EndTime,
				FulfillmentType: window.FulfillmentType,
				MaxOrders:       window.MaxOrders,
				IsActive:        true,
			}
			if err := database.DB.Create(&slot).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create time slots"})
				return
			}
			created++
		}
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Time slots generated", "created": created})
}

func (h *FulfillmentHandler) ListSlots(c *gin.Context) {
	query := database.DB.Order("slot_date, start_time")
	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		query = query.Where("slot_date = ?", date)
	}

	slots := []models.TimeSlot{}
	if err := query.Find(&slots).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch time slots"})
		return
	}
	c.JSON(http.StatusOK, slots)
}

type UpdateSlotRequest struct {
	MaxOrders *int  `json:"max_orders"`
	IsActive  *bool `json:"is_active"`
}

func (h *FulfillmentHandler) UpdateSlot(c *gin.Context) {
	var req UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var slot models.TimeSlot
	if err := database.DB.First(&slot, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Time slot not found"})
		return
	}

	updates := map[string]interface{}{}
	if req.MaxOrders != nil {
		if *req.MaxOrders < slot.CurrentOrders {
			c.JSON(http.StatusBadRequest, gin.H{"error": "max_orders cannot be below the booked count"})
			return
		}
		updates["max_orders"] = *req.MaxOrders
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := database.DB.Model(&slot).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update time slot"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Time slot updated"})
}
