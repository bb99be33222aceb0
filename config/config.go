package config

import (
	"log"

	"github.com/momomojo/happy-sourdough-sub002/internal/models"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Broker   BrokerConfig
	SMTP     SMTPConfig
	Defaults DefaultsConfig
	Site     models.SiteInfo
}

type ServerConfig struct {
	Port               string
	Env                string
	JWTSecret          string `mapstructure:"jwt_secret"`
	JWTExpirationHours int    `mapstructure:"jwt_expiration_hours"`
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	URL      string
}

type BrokerConfig struct {
	AMQPURL string `mapstructure:"amqp_url"`
}

type SMTPConfig struct {
	Host     string
	Port     string
	From     string
	Username string
	Password string
}

type DefaultsConfig struct {
	AdminPassword   string  `mapstructure:"admin_password"`
	AdminEmployeeID string  `mapstructure:"admin_employee_id"`
	BakeryName      string  `mapstructure:"bakery_name"`
	BakeryLogo      string  `mapstructure:"bakery_logo"`
	BakeryAddress   string  `mapstructure:"bakery_address"`
	BakeryPhone     string  `mapstructure:"bakery_phone"`
	OrderPrefix     string  `mapstructure:"order_prefix"`
	TaxRate         float64 `mapstructure:"tax_rate"`
	SlotHorizonDays int     `mapstructure:"slot_horizon_days"`
}

var AppConfig *Config

func LoadConfig() {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, checking environment variables: %v", err)
	}

	// Enable reading from OS environment variables as fallback/override
	viper.AutomaticEnv()

	viper.BindEnv("SERVER_PORT", "PORT") // Fallback to PORT if SERVER_PORT is missing
	viper.BindEnv("DATABASE_URL")
	viper.BindEnv("AMQP_URL")

	viper.SetDefault("ORDER_PREFIX", "BAKE")
	viper.SetDefault("TAX_RATE", 0.0)
	viper.SetDefault("SLOT_HORIZON_DAYS", 14)
	viper.SetDefault("JWT_EXPIRATION_HOURS", 12)

	AppConfig = &Config{
		Server: ServerConfig{
			Port:               viper.GetString("SERVER_PORT"),
			Env:                viper.GetString("SERVER_ENV"),
			JWTSecret:          viper.GetString("JWT_SECRET"),
			JWTExpirationHours: viper.GetInt("JWT_EXPIRATION_HOURS"),
		},
		Database: DatabaseConfig{
			Driver:   viper.GetString("DB_DRIVER"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
			URL:      viper.GetString("DATABASE_URL"),
		},
		Broker: BrokerConfig{
			AMQPURL: viper.GetString("AMQP_URL"),
		},
		SMTP: SMTPConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetString("SMTP_PORT"),
			From:     viper.GetString("SMTP_FROM"),
			Username: viper.GetString("SMTP_USERNAME"),
			Password: viper.GetString("SMTP_PASSWORD"),
		},
		Defaults: DefaultsConfig{
			AdminPassword:   viper.GetString("ADMIN_PASSWORD"),
			AdminEmployeeID: viper.GetString("ADMIN_EMPLOYEE_ID"),
			BakeryName:      viper.GetString("BAKERY_NAME"),
			BakeryLogo:      viper.GetString("BAKERY_LOGO"),
			BakeryAddress:   viper.GetString("BAKERY_ADDRESS"),
			BakeryPhone:     viper.GetString("BAKERY_PHONE"),
			OrderPrefix:     viper.GetString("ORDER_PREFIX"),
			TaxRate:         viper.GetFloat64("TAX_RATE"),
			SlotHorizonDays: viper.GetInt("SLOT_HORIZON_DAYS"),
		},
	}

	// Load TOML Config for Site Info
	siteViper := viper.New()
	siteViper.SetConfigFile("config/config.toml")
	siteViper.SetConfigType("toml")
	if err := siteViper.ReadInConfig(); err != nil {
		log.Printf("Warning: config/config.toml not found, using empty site info: %v", err)
	} else {
		if err := siteViper.UnmarshalKey("site", &AppConfig.Site); err != nil {
			log.Printf("Error: Failed to unmarshal site info from TOML: %v", err)
		}
	}

	log.Printf("Configuration loaded successfully:")
	log.Printf("- Server Port: %s", AppConfig.Server.Port)
	log.Printf("- Server Env: %s", AppConfig.Server.Env)
	log.Printf("- Database Driver: %s", AppConfig.Database.Driver)
	log.Printf("- Database Host: %s", AppConfig.Database.Host)
	log.Printf("- Broker URL: %s", setOrNot(AppConfig.Broker.AMQPURL))
	log.Printf("- SMTP Host: %s", setOrNot(AppConfig.SMTP.Host))
	log.Printf("- JWT Secret: %s", setOrNot(AppConfig.Server.JWTSecret))
	log.Printf("- Bakery Name: %s", AppConfig.Defaults.BakeryName)
}

func setOrNot(v string) string {
	if v != "" {
		return "SET"
	}
	return "NOT SET"
}
