package handler

import (
	"net/http"

	"github.com/momomojo/happy-sourdough-sub002/config"
	"github.com/momomojo/happy-sourdough-sub002/internal/models"
	"github.com/momomojo/happy-sourdough-sub002/internal/utils"
	"github.com/momomojo/happy-sourdough-sub002/pkg/database"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

type AuthHandler struct{}

// recordLogin writes a login history row off the request path.
func recordLogin(userID uint, ip string) {
	go func() {
		// History is best-effort; a failed insert must not affect login.
		database.DB.Create(&models.LoginHistory{
			UserID:    userID,
			IPAddress: ip,
		})
	}()
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.Preload("Role").Where("employee_id = ?", req.EmployeeID).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid employee ID or password"})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "This account has been deactivated"})
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid employee ID or password"})
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	recordLogin(user.ID, c.ClientIP())

	c.JSON(http.StatusOK, gin.H{
		"token":            token,
		"expires_in_hours": config.AppConfig.Server.JWTExpirationHours,
		"user": gin.H{
			"id":          user.ID,
			"employee_id": user.EmployeeID,
			"username":    user.Username,
			"role":        user.Role.Name,
		},
	})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
		return
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	if err := database.DB.Model(&user).Update("password_hash", hashedPassword).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}
