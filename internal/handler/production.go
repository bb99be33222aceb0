package handler

import (
	"net/http"
	"time"

	"github.com/momomojo/happy-sourdough-sub002/internal/models"
	"github.com/momomojo/happy-sourdough-sub002/internal/workflow"
	"github.com/momomojo/happy-sourdough-sub002/pkg/database"

	"github.com/gin-gonic/gin"
)

// ProductionHandler serves the bakers' view: what needs to be made for
// a given day, grouped by workflow stage.
type ProductionHandler struct{}

var productionStatuses = []string{
	string(workflow.StatusConfirmed),
	string(workflow.StatusBaking),
	string(workflow.StatusDecorating),
	string(workflow.StatusQualityCheck),
}

// Queue lists in-production orders for a date (default today), ordered
// by time slot.
func (h *ProductionHandler) Queue(c *gin.Context) {
	dateStr := c.DefaultQuery("date", time.Now().Format("2006-01-02"))
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	orders := []models.Order{}
	err = database.DB.Preload("Items.Product").Preload("Items.Variant").Preload("TimeSlot").
		Joins("JOIN time_slots ON time_slots.id = orders.time_slot_id").
		Where("orders.status IN ? AND time_slots.slot_date = ?", productionStatuses, date).
		Order("time_slots.start_time").
		Find(&orders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch production queue"})
		return
	}

	byStage := gin.H{}
	for _, status := range productionStatuses {
		stage := []models.Order{}
		for _, order := range orders {
			if order.Status == status {
				stage = append(stage, order)
			}
		}
		byStage[status] = stage
	}

	c.JSON(http.StatusOK, gin.H{
		"date":   dateStr,
		"total":  len(orders),
		"stages": byStage,
	})
}
