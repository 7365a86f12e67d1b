package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/herventures/HerVentures/config"
	"github.com/herventures/HerVentures/models"
	"github.com/herventures/HerVentures/utils"
)

// GET /plans
func ListPlans(c *gin.Context) {
	utils.LogInfo("ListPlans called")

	var plans []models.Plan
	if err := config.DB.Where("is_active = ?", true).Order("price ASC").Find(&plans).Error; err != nil {
		utils.LogError("Failed to fetch plans: %v", err)
		utils.InternalServerError(c, "Failed to fetch plans", err.Error())
		return
	}

	utils.Success(c, "Plans retrieved successfully", gin.H{"plans": plans})
}

// GET /user/subscription
func GetMySubscription(c *gin.Context) {
	utils.LogInfo("GetMySubscription called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	db := config.DB
	var current models.Subscription
	hasCurrent := true
	if err := db.Preload("Plan").
		Where("user_id = ? AND status = ? AND expires_at > ?",
			user.ID, models.SubscriptionStatusActive, time.Now()).
		Order("expires_at DESC").First(&current).Error; err != nil {
		hasCurrent = false
	}

	var history []models.Subscription
	if err := db.Preload("Plan").Where("user_id = ?", user.ID).
		Order("created_at DESC").Limit(20).Find(&history).Error; err != nil {
		utils.LogError("Failed to fetch subscription history for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch subscriptions", err.Error())
		return
	}

	data := gin.H{"history": history, "has_active": hasCurrent}
	if hasCurrent {
		data["current"] = gin.H{
			"id":         current.ID,
			"plan":       current.Plan.Name,
			"status":     current.Status,
			"expires_at": current.ExpiresAt.Format("2006-01-02"),
		}
	}

	utils.Success(c, "Subscription retrieved successfully", data)
}

// SeedDefaultPlans creates the standard membership plans if none exist
func SeedDefaultPlans() error {
	utils.LogInfo("SeedDefaultPlans called")

	var count int64
	if err := config.DB.Model(&models.Plan{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	plans := []models.Plan{
		{
			Name:           "Community",
			Slug:           "community",
			Description:    "Monthly membership with directory listing and community access",
			Price:          499,
			DurationMonths: 1,
			Perks:          "Directory listing, community forum, monthly meetups",
		},
		{
			Name:           "Founder",
			Slug:           "founder",
			Description:    "Annual membership with academy access and featured listings",
			Price:          4999,
			DurationMonths: 12,
			Perks:          "Everything in Community, course academy, featured listing, 1:1 mentoring",
		},
	}
	for _, plan := range plans {
		if err := config.DB.Create(&plan).Error; err != nil {
			utils.LogError("Failed to seed plan %s: %v", plan.Slug, err)
			return err
		}
	}

	utils.LogInfo("Seeded %d default plans", len(plans))
	return nil
}
