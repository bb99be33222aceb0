package main

import (
	"log"
	"time"

	"github.com/momomojo/happy-sourdough-sub002/config"
	"github.com/momomojo/happy-sourdough-sub002/internal/handler"
	"github.com/momomojo/happy-sourdough-sub002/internal/middleware"
	"github.com/momomojo/happy-sourdough-sub002/internal/models"
	"github.com/momomojo/happy-sourdough-sub002/internal/notify"
	"github.com/momomojo/happy-sourdough-sub002/pkg/database"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load Configuration
	config.LoadConfig()

	// 2. Connect to Database
	database.Connect()

	// 3. Auto-Migrate Models
	log.Println("Running migrations...")

	err := database.DB.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.LoginHistory{},
		&models.Category{},
		&models.Product{},
		&models.ProductVariant{},
		&models.CustomerProfile{},
		&models.CustomerAddress{},
		&models.LoyaltyAccount{},
		&models.LoyaltyTransaction{},
		&models.DeliveryZone{},
		&models.PickupLocation{},
		&models.TimeSlot{},
		&models.DiscountCode{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
		&models.BusinessSettings{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully.")

	// 3a. Seed Data
	database.Seed()

	// 3b. Notification collaborators
	mailer := notify.NewMailer()
	events := notify.NewEventPublisher(config.AppConfig.Broker.AMQPURL)
	defer events.Close()

	// 4. Initialize Router
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Public endpoints get a per-IP rate limit on the mutating routes.
	publicLimiter := middleware.NewRateLimiter(30, 10)

	// 5. Setup Routes
	authHandler := &handler.AuthHandler{}
	authRoutes := r.Group("/api/v1/auth")
	{
		authRoutes.POST("/login", authHandler.Login)
	}

	userRoutes := r.Group("/api/v1/user")
	userRoutes.Use(middleware.AuthMiddleware())
	{
		userRoutes.PUT("/password", authHandler.ChangePassword)
	}

	publicHandler := &handler.PublicHandler{}
	checkoutHandler := &handler.CheckoutHandler{Mailer: mailer, Events: events}
	accountHandler := &handler.AccountHandler{}
	publicRoutes := r.Group("/api/v1/public")
	{
		publicRoutes.GET("/site-info", publicHandler.GetSiteInfo)
		publicRoutes.GET("/settings", publicHandler.GetBusinessSettings)
		publicRoutes.GET("/categories", publicHandler.ListCategories)
		publicRoutes.GET("/products", publicHandler.ListProducts)
		publicRoutes.GET("/products/:slug", publicHandler.GetProductBySlug)
		publicRoutes.GET("/pickup-locations", publicHandler.ListPickupLocations)
		publicRoutes.GET("/delivery-quote", publicHandler.DeliveryQuote)
		publicRoutes.GET("/slots", publicHandler.ListSlots)
		publicRoutes.GET("/orders/:orderNo/track", accountHandler.TrackOrder)
		publicRoutes.GET("/loyalty", accountHandler.LoyaltyBalance)

		limited := publicRoutes.Group("")
		limited.Use(publicLimiter.Middleware())
		{
			limited.POST("/discount/preview", publicHandler.PreviewDiscount)
			limited.POST("/checkout", checkoutHandler.SubmitOrder)
			limited.POST("/loyalty/redeem", accountHandler.RedeemPoints)
		}
	}

	orderHandler := &handler.OrderHandler{Mailer: mailer, Events: events}
	orderRoutes := r.Group("/api/v1/orders")
	orderRoutes.Use(middleware.AuthMiddleware("admin", "manager", "counter"))
	{
		orderRoutes.GET("", orderHandler.ListOrders)
		orderRoutes.GET("/:id", orderHandler.GetOrder)
		orderRoutes.PUT("/:id/status", orderHandler.UpdateOrderStatus)
	}

	productionHandler := &handler.ProductionHandler{}
	productionRoutes := r.Group("/api/v1/production")
	productionRoutes.Use(middleware.AuthMiddleware("admin", "manager", "baker"))
	{
		productionRoutes.GET("/queue", productionHandler.Queue)
		productionRoutes.PUT("/orders/:id/status", orderHandler.UpdateOrderStatus)
	}

	catalogHandler := &handler.CatalogHandler{}
	catalogRoutes := r.Group("/api/v1/catalog")
	catalogRoutes.Use(middleware.AuthMiddleware("admin", "manager"))
	{
		catalogRoutes.GET("/products", catalogHandler.ListProducts)
		catalogRoutes.POST("/products", catalogHandler.CreateProduct)
		catalogRoutes.PUT("/products/:id", catalogHandler.UpdateProduct)
		catalogRoutes.POST("/products/:id/variants", catalogHandler.CreateVariant)
		catalogRoutes.DELETE("/products/:id/variants/:variantId", catalogHandler.DeleteVariant)
		catalogRoutes.GET("/categories", catalogHandler.ListCategories)
		catalogRoutes.POST("/categories", catalogHandler.CreateCategory)
	}

	fulfillmentHandler := &handler.FulfillmentHandler{}
	fulfillmentRoutes := r.Group("/api/v1/fulfillment")
	fulfillmentRoutes.Use(middleware.AuthMiddleware("admin", "manager"))
	{
		fulfillmentRoutes.GET("/zones", fulfillmentHandler.ListZones)
		fulfillmentRoutes.POST("/zones", fulfillmentHandler.CreateZone)
		fulfillmentRoutes.PUT("/zones/:id", fulfillmentHandler.UpdateZone)
		fulfillmentRoutes.GET("/pickup-locations", fulfillmentHandler.ListPickupLocations)
		fulfillmentRoutes.POST("/pickup-locations", fulfillmentHandler.CreatePickupLocation)
		fulfillmentRoutes.GET("/slots", fulfillmentHandler.ListSlots)
		fulfillmentRoutes.POST("/slots/generate", fulfillmentHandler.GenerateSlots)
		fulfillmentRoutes.PUT("/slots/:id", fulfillmentHandler.UpdateSlot)
	}

	adminHandler := &handler.AdminHandler{}
	managerRoutes := r.Group("/api/v1/manage")
	managerRoutes.Use(middleware.AuthMiddleware("admin", "manager"))
	{
		managerRoutes.GET("/dashboard", adminHandler.GetDashboardStats)
		managerRoutes.GET("/discounts", adminHandler.ListDiscountCodes)
		managerRoutes.POST("/discounts", adminHandler.CreateDiscountCode)
		managerRoutes.PUT("/discounts/:id/deactivate", adminHandler.DeactivateDiscountCode)
		managerRoutes.PUT("/settings", adminHandler.UpdateBusinessSettings)
	}

	adminRoutes := r.Group("/api/v1/admin")
	adminRoutes.Use(middleware.AuthMiddleware("admin"))
	{
		adminRoutes.POST("/employees", adminHandler.CreateEmployee)
		adminRoutes.GET("/employees", adminHandler.ListEmployees)
		adminRoutes.PUT("/employees/:id/role", adminHandler.UpdateEmployeeRole)
		adminRoutes.PUT("/employees/:id/status", adminHandler.UpdateEmployeeStatus)
		adminRoutes.PUT("/employees/:id/password", adminHandler.ResetEmployeePassword)
		adminRoutes.GET("/login-history", adminHandler.GetLoginHistory)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 6. Start Server
	port := config.AppConfig.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
