package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/herventures/HerVentures/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Config holds all configuration for the application
type Config struct {
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	JWTSecret        string
	Port             string
	Env              string
	FrontendURL      string
	RazorpayKey      string
	RazorpaySecret   string
	SweepIntervalMin int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading .env file: %v", err)
	}

	sweepInterval := 15
	if v := os.Getenv("SWEEP_INTERVAL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			sweepInterval = n
		}
	}

	config := &Config{
		DBHost:           os.Getenv("DB_HOST"),
		DBPort:           os.Getenv("DB_PORT"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           os.Getenv("DB_NAME"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		Port:             os.Getenv("PORT"),
		Env:              os.Getenv("ENV"),
		FrontendURL:      os.Getenv("FRONTEND_URL"),
		RazorpayKey:      os.Getenv("RAZORPAY_KEY"),
		RazorpaySecret:   os.Getenv("RAZORPAY_SECRET"),
		SweepIntervalMin: sweepInterval,
	}

	return config, nil
}

// InitDB initializes the database connection
func InitDB() {
	config, err := LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}

	DB = db

	err = DB.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.Plan{},
		&models.Subscription{},
		&models.BusinessListing{},
		&models.Ambassador{},
		&models.ReferralClickEvent{},
		&models.ReferralSignup{},
		&models.Commission{},
		&models.Notification{},
		&models.BlacklistedToken{},
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to migrate database: %v", err))
	}
}
