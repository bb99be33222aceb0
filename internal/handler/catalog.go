package handler

import (
	"net/http"
	"strings"

	"github.com/momomojo/happy-sourdough-sub002/internal/models"
	"github.com/momomojo/happy-sourdough-sub002/pkg/database"

	"github.com/gin-gonic/gin"
)

// CatalogHandler is the staff surface for products and categories.
type CatalogHandler struct{}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")
	var b strings.Builder
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-")
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := models.Category{
		Name:        req.Name,
		Slug:        slugify(req.Name),
		Description: req.Description,
		SortOrder:   req.SortOrder,
		IsActive:    true,
	}
	if err := database.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category (name might be duplicate)"})
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories := []models.Category{}
	if err := database.DB.Order("sort_order, name").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

type CreateProductRequest struct {
	Name         string  `json:"name" binding:"required"`
	CategoryID   *uint   `json:"category_id"`
	Description  string  `json:"description"`
	BasePrice    float64 `json:"base_price" binding:"required,gt=0"`
	ImageURL     string  `json:"image_url"`
	IsFeatured   bool    `json:"is_featured"`
	LeadTimeDays int     `json:"lead_time_days"`
	SortOrder    int     `json:"sort_order"`
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := models.Product{
		Name:         req.Name,
		Slug:         slugify(req.Name),
		CategoryID:   req.CategoryID,
		Description:  req.Description,
		BasePrice:    req.BasePrice,
		ImageURL:     req.ImageURL,
		IsAvailable:  true,
		IsFeatured:   req.IsFeatured,
		LeadTimeDays: req.LeadTimeDays,
		SortOrder:    req.SortOrder,
	}
	if err := database.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product (name might be duplicate)"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products := []models.Product{}
	if err := database.DB.Preload("Category").Preload("Variants").
		Order("sort_order, name").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

type UpdateProductRequest struct {
	Name         *string  `json:"name"`
	CategoryID   *uint    `json:"category_id"`
	Description  *string  `json:"description"`
	BasePrice    *float64 `json:"base_price"`
	ImageURL     *string  `json:"image_url"`
	IsAvailable  *bool    `json:"is_available"`
	IsFeatured   *bool    `json:"is_featured"`
	LeadTimeDays *int     `json:"lead_time_days"`
	SortOrder    *int     `json:"sort_order"`
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var product models.Product
	if err := database.DB.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
		updates["slug"] = slugify(*req.Name)
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.BasePrice != nil {
		updates["base_price"] = *req.BasePrice
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}
	if req.LeadTimeDays != nil {
		updates["lead_time_days"] = *req.LeadTimeDays
	}
	if req.SortOrder != nil {
		updates["sort_order"] = *req.SortOrder
	}

	if err := database.DB.Model(&product).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated"})
}

type CreateVariantRequest struct {
	Name            string  `json:"name" binding:"required"`
	PriceAdjustment float64 `json:"price_adjustment"`
	SortOrder       int     `json:"sort_order"`
	IsDefault       bool    `json:"is_default"`
}

func (h *CatalogHandler) CreateVariant(c *gin.Context) {
	var req CreateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var product models.Product
	if err := database.DB.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	variant := models.ProductVariant{
		ProductID:       product.ID,
		Name:            req.Name,
		PriceAdjustment: req.PriceAdjustment,
		SortOrder:       req.SortOrder,
		IsDefault:       req.IsDefault,
		IsAvailable:     true,
	}
	if err := database.DB.Create(&variant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create variant"})
		return
	}
	c.JSON(http.StatusCreated, variant)
}

func (h *CatalogHandler) DeleteVariant(c *gin.Context) {
	if err := database.DB.Delete(&models.ProductVariant{}, c.Param("variantId")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete variant"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Variant deleted"})
}
