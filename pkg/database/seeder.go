package database

import (
	"log"
	"time"

	"github.com/momomojo/happy-sourdough-sub002/config"
	"github.com/momomojo/happy-sourdough-sub002/internal/delivery"
	"github.com/momomojo/happy-sourdough-sub002/internal/models"
	"github.com/momomojo/happy-sourdough-sub002/internal/utils"

	"gorm.io/gorm"
)

// Seed populates roles, the admin user, default zones, a pickup
// location, business settings and the initial time slot horizon. Safe
// to run on every boot.
func Seed() {
	seedRolesAndAdmin()
	seedZones()
	seedPickupLocation()
	seedSettings()
	seedTimeSlots()
}

func seedRolesAndAdmin() {
	roles := []string{"admin", "manager", "baker", "counter"}
	for _, r := range roles {
		var role models.Role
		if err := DB.FirstOrCreate(&role, models.Role{Name: r}).Error; err != nil {
			log.Printf("Failed to seed role %s: %v", r, err)
		}
	}

	var adminRole models.Role
	DB.Where("name = ?", "admin").First(&adminRole)

	var adminUser models.User
	if err := DB.Where("employee_id = ?", config.AppConfig.Defaults.AdminEmployeeID).First(&adminUser).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			hashedPassword, _ := utils.HashPassword(config.AppConfig.Defaults.AdminPassword)
			admin := models.User{
				EmployeeID:   config.AppConfig.Defaults.AdminEmployeeID,
				Username:     "Bakery Admin",
				PasswordHash: hashedPassword,
				RoleID:       adminRole.ID,
				IsActive:     true,
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("Failed to seed admin user: %v", err)
			} else {
				log.Println("Admin user seeded successfully.")
			}
		}
	}
}

func seedZones() {
	var count int64
	DB.Model(&models.DeliveryZone{}).Count(&count)
	if count > 0 {
		return
	}
	for _, zone := range delivery.DefaultZones() {
		if err := DB.Create(&zone).Error; err != nil {
			log.Printf("Failed to seed delivery zone %s: %v", zone.Name, err)
		}
	}
	log.Println("Default delivery zones seeded.")
}

func seedPickupLocation() {
	var count int64
	DB.Model(&models.PickupLocation{}).Count(&count)
	if count > 0 {
		return
	}
	location := models.PickupLocation{
		Name:     config.AppConfig.Defaults.BakeryName,
		Address:  config.AppConfig.Defaults.BakeryAddress,
		Phone:    config.AppConfig.Defaults.BakeryPhone,
		Hours:    "Tue-Sun 7:00-18:00",
		IsActive: true,
	}
	if err := DB.Create(&location).Error; err != nil {
		log.Printf("Failed to seed pickup location: %v", err)
	}
}

func seedSettings() {
	var settings models.BusinessSettings
	if err := DB.First(&settings).Error; err == nil {
		return
	}
	settings = models.BusinessSettings{
		TaxRate:            config.AppConfig.Defaults.TaxRate,
		LoyaltyEarnRate:    1,
		MinLeadHours:       24,
		AcceptingOrders:    true,
		DefaultSlotHorizon: config.AppConfig.Defaults.SlotHorizonDays,
	}
	if err := DB.Create(&settings).Error; err != nil {
		log.Printf("Failed to seed business settings: %v", err)
	}
}

type slotWindow struct {
	start, end  string
	fulfillment string
	maxOrders   int
}

var defaultWindows = []slotWindow{
	{"09:00", "12:00", "delivery", 8},
	{"12:00", "15:00", "delivery", 8},
	{"15:00", "18:00", "delivery", 8},
	{"09:00", "12:00", "pickup", 12},
	{"12:00", "15:00", "pickup", 12},
	{"15:00", "18:00", "pickup", 12},
}

func seedTimeSlots() {
	horizon := config.AppConfig.Defaults.SlotHorizonDays
	if horizon <= 0 {
		horizon = 14
	}

	today := time.Now().Truncate(24 * time.Hour)
	created := 0
	for day := 0; day < horizon; day++ {
		date := today.AddDate(0, 0, day)
		for _, w := range defaultWindows {
			var existing int64
			DB.Model(&models.TimeSlot{}).
				Where("slot_date = ? AND start_time = ? AND fulfillment_type = ?", date, w.start, w.fulfillment).
				Count(&existing)
			if existing > 0 {
				continue
			}
			slot := models.TimeSlot{
				SlotDate:        date,
				StartTime:       w.start,
				EndTime:         w.end,
				FulfillmentType: w.fulfillment,
				MaxOrders:       w.maxOrders,
				IsActive:        true,
			}
			if err := DB.Create(&slot).Error; err != nil {
				log.Printf("Failed to seed time slot: %v", err)
				return
			}
			created++
		}
	}
	if created > 0 {
		log.Printf("Seeded %d time slots.", created)
	}
}
