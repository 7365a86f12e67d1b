package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/herventures/HerVentures/config"
	"github.com/herventures/HerVentures/models"
	"github.com/herventures/HerVentures/utils"
)

// PlanRequest creates or updates a membership plan
type PlanRequest struct {
	Name           string  `json:"name" binding:"required"`
	Slug           string  `json:"slug" binding:"required"`
	Description    string  `json:"description"`
	Price          float64 `json:"price" binding:"required,gt=0"`
	DurationMonths int     `json:"duration_months" binding:"required,gt=0"`
	Perks          string  `json:"perks"`
}

// POST /admin/plans
func CreatePlan(c *gin.Context) {
	utils.LogInfo("CreatePlan called")

	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid plan request: %v", err)
		utils.BadRequest(c, "Invalid plan details", err.Error())
		return
	}

	var existing models.Plan
	if err := config.DB.Where("slug = ?", req.Slug).First(&existing).Error; err == nil {
		utils.Conflict(c, "A plan with this slug already exists", nil)
		return
	}

	plan := models.Plan{
		Name:           req.Name,
		Slug:           req.Slug,
		Description:    req.Description,
		Price:          req.Price,
		DurationMonths: req.DurationMonths,
		Perks:          req.Perks,
		IsActive:       true,
	}
	if err := config.DB.Create(&plan).Error; err != nil {
		utils.LogError("Failed to create plan: %v", err)
		utils.InternalServerError(c, "Failed to create plan", err.Error())
		return
	}

	utils.LogInfo("Created plan %d (%s)", plan.ID, plan.Slug)
	utils.Created(c, "Plan created successfully", gin.H{"plan": plan})
}

// GET /admin/plans
func GetPlans(c *gin.Context) {
	utils.LogInfo("GetPlans called")

	var plans []models.Plan
	if err := config.DB.Order("price ASC").Find(&plans).Error; err != nil {
		utils.LogError("Failed to fetch plans: %v", err)
		utils.InternalServerError(c, "Failed to fetch plans", err.Error())
		return
	}

	utils.Success(c, "Plans retrieved successfully", gin.H{"plans": plans})
}

// PUT /admin/plans/:id
// Price or duration changes apply to future checkouts only; existing
// subscriptions keep the amount captured at purchase time.
func UpdatePlan(c *gin.Context) {
	utils.LogInfo("UpdatePlan called for ID: %s", c.Param("id"))

	var plan models.Plan
	if err := config.DB.First(&plan, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Plan not found")
		return
	}

	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid plan update: %v", err)
		utils.BadRequest(c, "Invalid plan details", err.Error())
		return
	}

	if err := config.DB.Model(&plan).Updates(map[string]interface{}{
		"name":            req.Name,
		"slug":            req.Slug,
		"description":     req.Description,
		"price":           req.Price,
		"duration_months": req.DurationMonths,
		"perks":           req.Perks,
	}).Error; err != nil {
		utils.LogError("Failed to update plan %d: %v", plan.ID, err)
		utils.InternalServerError(c, "Failed to update plan", err.Error())
		return
	}

	utils.Success(c, "Plan updated successfully", gin.H{"plan": plan})
}

// PATCH /admin/plans/:id/deactivate
func DeactivatePlan(c *gin.Context) {
	utils.LogInfo("DeactivatePlan called for ID: %s", c.Param("id"))

	result := config.DB.Model(&models.Plan{}).
		Where("id = ?", c.Param("id")).Update("is_active", false)
	if result.Error != nil {
		utils.LogError("Failed to deactivate plan %s: %v", c.Param("id"), result.Error)
		utils.InternalServerError(c, "Failed to deactivate plan", result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Plan not found")
		return
	}

	utils.Success(c, "Plan deactivated successfully", nil)
}
