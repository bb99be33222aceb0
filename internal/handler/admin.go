package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/momomojo/happy-sourdough-sub002/internal/models"
	"github.com/momomojo/happy-sourdough-sub002/internal/utils"
	"github.com/momomojo/happy-sourdough-sub002/internal/workflow"
	"github.com/momomojo/happy-sourdough-sub002/pkg/database"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct{}

var rolePrefixes = map[string]string{
	"admin":   "ADM",
	"manager": "MGR",
	"baker":   "BKR",
	"counter": "CTR",
}

// Employee ID: PREFIX-SEQ, e.g. BKR-0007
func generateEmployeeID(roleID uint) string {
	var role models.Role
	database.DB.First(&role, roleID)

	prefix, ok := rolePrefixes[role.Name]
	if !ok {
		prefix = strings.ToUpper(role.Name)
		if len(prefix) > 3 {
			prefix = prefix[:3]
		}
	}

	var count int64
	database.DB.Model(&models.User{}).Where("role_id = ?", roleID).Count(&count)
	return fmt.Sprintf("%s-%04d", prefix, count+1)
}

type CreateEmployeeRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	RoleID   uint   `json:"role_id" binding:"required"`
	Mobile   string `json:"mobile"`
}

func (h *AdminHandler) CreateEmployee(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: hashedPassword,
		RoleID:       req.RoleID,
		EmployeeID:   generateEmployeeID(req.RoleID),
		Mobile:       req.Mobile,
		IsActive:     true,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "user_id": user.ID, "employee_id": user.EmployeeID})
}

func (h *AdminHandler) ListEmployees(c *gin.Context) {
	var users []models.User
	if err := database.DB.Preload("Role").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) UpdateEmployeeRole(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		RoleID uint `json:"role_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := database.DB.Model(&models.User{}).Where("id = ?", id).Update("role_id", req.RoleID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role updated successfully"})
}

func (h *AdminHandler) UpdateEmployeeStatus(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		IsActive       bool   `json:"is_active"`
		InactiveReason string `json:"inactive_reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := database.DB.Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": req.IsActive, "inactive_reason": req.InactiveReason}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated successfully"})
}

func (h *AdminHandler) ResetEmployeePassword(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	if err := database.DB.Model(&models.User{}).Where("id = ?", id).Update("password_hash", hashedPassword).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

func (h *AdminHandler) GetLoginHistory(c *gin.Context) {
	var history []models.LoginHistory
	if err := database.DB.Preload("User").Order("login_time desc").Limit(100).Find(&history).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch login history"})
		return
	}
	c.JSON(http.StatusOK, history)
}

// Discount code management

type DiscountCodeRequest struct {
	Code           string  `json:"code" binding:"required"`
	Type           string  `json:"type" binding:"required,oneof=percentage fixed_amount free_delivery"`
	Value          float64 `json:"value" binding:"gte=0"`
	MinOrderAmount float64 `json:"min_order_amount" binding:"gte=0"`
	MaxUses        int     `json:"max_uses" binding:"gte=0"`
	ValidFrom      string  `json:"valid_from"`  // YYYY-MM-DD, optional
	ValidUntil     string  `json:"valid_until"` // YYYY-MM-DD, optional
	IsActive       *bool   `json:"is_active"`
}

func (h *AdminHandler) CreateDiscountCode(c *gin.Context) {
	var req DiscountCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Type == models.DiscountPercentage && req.Value > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Percentage discount cannot exceed 100"})
		return
	}

	code := models.DiscountCode{
		Code:           strings.ToUpper(strings.TrimSpace(req.Code)),
		Type:           req.Type,
		Value:          req.Value,
		MinOrderAmount: req.MinOrderAmount,
		MaxUses:        req.MaxUses,
		IsActive:       true,
	}
	if req.IsActive != nil {
		code.IsActive = *req.IsActive
	}
	if req.ValidFrom != "" {
		from, err := time.Parse("2006-01-02", req.ValidFrom)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "valid_from must be YYYY-MM-DD"})
			return
		}
		code.ValidFrom = &from
	}
	if req.ValidUntil != "" {
		until, err := time.Parse("2006-01-02", req.ValidUntil)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "valid_until must be YYYY-MM-DD"})
			return
		}
		// Inclusive end of day.
		until = until.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		code.ValidUntil = &until
	}

	if err := database.DB.Create(&code).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create code (might be duplicate)"})
		return
	}
	c.JSON(http.StatusCreated, code)
}

func (h *AdminHandler) ListDiscountCodes(c *gin.Context) {
	codes := []models.DiscountCode{}
	if err := database.DB.Order("created_at desc").Find(&codes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch discount codes"})
		return
	}
	c.JSON(http.StatusOK, codes)
}

func (h *AdminHandler) DeactivateDiscountCode(c *gin.Context) {
	if err := database.DB.Model(&models.DiscountCode{}).Where("id = ?", c.Param("id")).
		Update("is_active", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Discount code deactivated"})
}

// Business settings

type BusinessSettingsRequest struct {
	TaxRate         *float64 `json:"tax_rate" binding:"omitempty,gte=0,lte=1"`
	LoyaltyEarnRate *float64 `json:"loyalty_earn_rate" binding:"omitempty,gte=0"`
	MinLeadHours    *int     `json:"min_lead_hours" binding:"omitempty,gte=0"`
	AcceptingOrders *bool    `json:"accepting_orders"`
	OrderNotice     *string  `json:"order_notice"`
}

func (h *AdminHandler) UpdateBusinessSettings(c *gin.Context) {
	var req BusinessSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var settings models.BusinessSettings
	if err := database.DB.FirstOrCreate(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}

	updates := map[string]interface{}{}
	if req.TaxRate != nil {
		updates["tax_rate"] = *req.TaxRate
	}
	if req.LoyaltyEarnRate != nil {
		updates["loyalty_earn_rate"] = *req.LoyaltyEarnRate
	}
	if req.MinLeadHours != nil {
		updates["min_lead_hours"] = *req.MinLeadHours
	}
	if req.AcceptingOrders != nil {
		updates["accepting_orders"] = *req.AcceptingOrders
	}
	if req.OrderNotice != nil {
		updates["order_notice"] = *req.OrderNotice
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := database.DB.Model(&settings).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Settings updated"})
}

// GetDashboardStats powers the back-office landing page.
func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	today := time.Now().Format("2006-01-02")

	var todayRevenue float64
	database.DB.Model(&models.Order{}).
		Where("DATE(order_date) = ? AND status NOT IN ?", today,
			[]string{string(workflow.StatusCancelled), string(workflow.StatusRefunded)}).
		Select("COALESCE(SUM(total), 0)").Scan(&todayRevenue)

	var todayOrders int64
	database.DB.Model(&models.Order{}).Where("DATE(order_date) = ?", today).Count(&todayOrders)

	// Orders by status
	byStatus := gin.H{}
	for _, status := range workflow.AllStatuses {
		var count int64
		database.DB.Model(&models.Order{}).Where("status = ?", status).Count(&count)
		byStatus[string(status)] = count
	}

	var newCustomers int64
	database.DB.Model(&models.CustomerProfile{}).Where("DATE(created_at) = ?", today).Count(&newCustomers)

	// Revenue for the last 7 days
	type ChartData struct {
		Labels []string  `json:"labels"`
		Data   []float64 `json:"data"`
	}
	weekChart := ChartData{Labels: []string{}, Data: []float64{}}
	for i := 6; i >= 0; i-- {
		date := time.Now().AddDate(0, 0, -i)
		var dailySum float64
		database.DB.Model(&models.Order{}).
			Where("DATE(order_date) = ? AND status NOT IN ?", date.Format("2006-01-02"),
				[]string{string(workflow.StatusCancelled), string(workflow.StatusRefunded)}).
			Select("COALESCE(SUM(total), 0)").Scan(&dailySum)
		weekChart.Labels = append(weekChart.Labels, date.Format("Jan 02"))
		weekChart.Data = append(weekChart.Data, dailySum)
	}

	// Slots at or near capacity in the coming week
	nearCapacity := []models.TimeSlot{}
	database.DB.
		Where("slot_date BETWEEN ? AND ? AND is_active = ? AND current_orders >= max_orders - 1",
			time.Now().Format("2006-01-02"), time.Now().AddDate(0, 0, 7).Format("2006-01-02"), true).
		Order("slot_date, start_time").Find(&nearCapacity)

	// Top products over the last 30 days
	type TopProduct struct {
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
	}
	topProducts := []TopProduct{}
	rows, err := database.DB.Table("order_items").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.order_date >= ?", time.Now().AddDate(0, 0, -30)).
		Select("products.name, SUM(order_items.quantity)").
		Group("products.name").
		Order("SUM(order_items.quantity) desc").
		Limit(5).
		Rows()
	if err == nil && rows != nil {
		defer rows.Close()
		for rows.Next() {
			var tp TopProduct
			if err := rows.Scan(&tp.Name, &tp.Quantity); err == nil {
				topProducts = append(topProducts, tp)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"metrics": gin.H{
			"todayRevenue":   todayRevenue,
			"todayOrders":    todayOrders,
			"newCustomers":   newCustomers,
			"ordersByStatus": byStatus,
		},
		"charts": gin.H{
			"weeklyRevenue": weekChart,
			"topProducts":   topProducts,
		},
		"alerts": gin.H{
			"slotsNearCapacity": nearCapacity,
		},
	})
}
