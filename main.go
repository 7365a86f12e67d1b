package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/herventures/HerVentures/config"
	"github.com/herventures/HerVentures/controllers"
	"github.com/herventures/HerVentures/routes"
	"github.com/herventures/HerVentures/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	config.InitDB()

	// Create sample admin
	if err := controllers.CreateSampleAdmin(); err != nil {
		utils.LogError("Failed to create sample admin: %v", err)
		log.Fatal("Failed to create sample admin:", err)
	}

	// Seed default plans if none exist
	if err := controllers.SeedDefaultPlans(); err != nil {
		utils.LogError("Failed to seed default plans: %v", err)
		log.Fatal("Failed to seed default plans:", err)
	}

	// Initialize Google OAuth
	config.InitGoogleOAuth()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Set up router
	router := routes.SetupRouter()

	// Add middleware
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	// Background sweep keeps listing flags consistent with subscriptions
	quit := make(chan struct{})
	defer close(quit)
	utils.StartConsistencySweep(time.Duration(cfg.SweepIntervalMin)*time.Minute, quit)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	utils.LogInfo("Server starting on port %s", port)
	// Start server
	if err := router.Run(":" + port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
