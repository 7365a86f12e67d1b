package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/herventures/HerVentures/config"
	"github.com/herventures/HerVentures/models"
	"github.com/herventures/HerVentures/utils"
)

// BusinessListingRequest creates or updates a business listing
type BusinessListingRequest struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Description string `json:"description"`
	City        string `json:"city"`
	Website     string `json:"website"`
	Phone       string `json:"phone"`
}

// POST /user/businesses
func CreateBusinessListing(c *gin.Context) {
	utils.LogInfo("CreateBusinessListing called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req BusinessListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid listing request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request. name and category are required", err.Error())
		return
	}

	listing := models.BusinessListing{
		OwnerID:     user.ID,
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		City:        req.City,
		Website:     req.Website,
		Phone:       req.Phone,
	}

	// New listings inherit the owner's current subscription state so a member
	// who adds a listing mid-subscription goes live immediately.
	var active models.Subscription
	if err := config.DB.Where("user_id = ? AND status = ?", user.ID, models.SubscriptionStatusActive).
		Order("expires_at DESC").First(&active).Error; err == nil {
		listing.SubscriptionActive = true
		listing.SubscriptionExpiresAt = active.ExpiresAt
	}

	if err := config.DB.Create(&listing).Error; err != nil {
		utils.LogError("Failed to create listing for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create listing", err.Error())
		return
	}

	utils.LogInfo("Created listing %d for user ID: %d", listing.ID, user.ID)
	utils.Created(c, "Business listing created successfully", gin.H{"listing": listing})
}

// GET /user/businesses
func ListMyBusinesses(c *gin.Context) {
	utils.LogInfo("ListMyBusinesses called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var listings []models.BusinessListing
	if err := config.DB.Where("owner_id = ?", user.ID).Order("created_at DESC").Find(&listings).Error; err != nil {
		utils.LogError("Failed to fetch listings for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch listings", err.Error())
		return
	}

	utils.Success(c, "Listings retrieved successfully", gin.H{"listings": listings})
}

// PUT /user/businesses/:id
func UpdateBusinessListing(c *gin.Context) {
	utils.LogInfo("UpdateBusinessListing called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var listing models.BusinessListing
	if err := config.DB.Where("id = ? AND owner_id = ?", c.Param("id"), user.ID).First(&listing).Error; err != nil {
		utils.LogError("Listing not found for ID: %s, user ID: %d", c.Param("id"), user.ID)
		utils.NotFound(c, "Listing not found")
		return
	}

	var req BusinessListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid listing update for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	// Subscription flags are deliberately not updatable here; only the
	// activation routine and the sweep write them.
	if err := config.DB.Model(&listing).Updates(map[string]interface{}{
		"name":        req.Name,
		"category":    req.Category,
		"description": req.Description,
		"city":        req.City,
		"website":     req.Website,
		"phone":       req.Phone,
	}).Error; err != nil {
		utils.LogError("Failed to update listing %d: %v", listing.ID, err)
		utils.InternalServerError(c, "Failed to update listing", err.Error())
		return
	}

	utils.Success(c, "Business listing updated successfully", gin.H{"listing": listing})
}

// DELETE /user/businesses/:id
func DeleteBusinessListing(c *gin.Context) {
	utils.LogInfo("DeleteBusinessListing called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	result := config.DB.Where("id = ? AND owner_id = ?", c.Param("id"), user.ID).
		Delete(&models.BusinessListing{})
	if result.Error != nil {
		utils.LogError("Failed to delete listing %s: %v", c.Param("id"), result.Error)
		utils.InternalServerError(c, "Failed to delete listing", result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Listing not found")
		return
	}

	utils.Success(c, "Business listing deleted successfully", nil)
}

// GET /directory
// Public directory. Only listings backed by an active subscription appear.
func GetBusinessDirectory(c *gin.Context) {
	utils.LogInfo("GetBusinessDirectory called")
	page, limit := utils.GetPaginationParams(c)

	query := config.DB.Model(&models.BusinessListing{}).Where("subscription_active = ?", true)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if city := c.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count directory listings: %v", err)
		utils.InternalServerError(c, "Failed to fetch directory", err.Error())
		return
	}

	var listings []models.BusinessListing
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).Find(&listings).Error; err != nil {
		utils.LogError("Failed to fetch directory listings: %v", err)
		utils.InternalServerError(c, "Failed to fetch directory", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Directory retrieved successfully", gin.H{"listings": listings}, total, page, limit)
}
