package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/herventures/HerVentures/config"
	"github.com/herventures/HerVentures/models"
	"github.com/herventures/HerVentures/utils"
)

// GET /admin/ambassadors
func ListAmbassadors(c *gin.Context) {
	utils.LogInfo("ListAmbassadors called")
	page, limit := utils.GetPaginationParams(c)

	query := config.DB.Model(&models.Ambassador{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count ambassadors: %v", err)
		utils.InternalServerError(c, "Failed to fetch ambassadors", err.Error())
		return
	}

	var ambassadors []models.Ambassador
	if err := query.Preload("User").Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).Find(&ambassadors).Error; err != nil {
		utils.LogError("Failed to fetch ambassadors: %v", err)
		utils.InternalServerError(c, "Failed to fetch ambassadors", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Ambassadors retrieved successfully",
		gin.H{"ambassadors": ambassadors}, total, page, limit)
}

// updateAmbassadorStatus transitions an ambassador to the given status
func updateAmbassadorStatus(c *gin.Context, status string) {
	var ambassador models.Ambassador
	if err := config.DB.First(&ambassador, c.Param("id")).Error; err != nil {
		utils.LogError("Ambassador not found for ID: %s", c.Param("id"))
		utils.NotFound(c, "Ambassador not found")
		return
	}

	if err := config.DB.Model(&ambassador).Update("status", status).Error; err != nil {
		utils.LogError("Failed to update ambassador %d status: %v", ambassador.ID, err)
		utils.InternalServerError(c, "Failed to update ambassador", err.Error())
		return
	}

	utils.LogInfo("Ambassador %d status set to %s", ambassador.ID, status)
	utils.Success(c, "Ambassador updated successfully", gin.H{
		"id":     ambassador.ID,
		"status": status,
	})
}

// PATCH /admin/ambassadors/:id/approve
func ApproveAmbassador(c *gin.Context) {
	utils.LogInfo("ApproveAmbassador called for ID: %s", c.Param("id"))
	updateAmbassadorStatus(c, models.AmbassadorStatusApproved)
}

// PATCH /admin/ambassadors/:id/reject
func RejectAmbassador(c *gin.Context) {
	utils.LogInfo("RejectAmbassador called for ID: %s", c.Param("id"))
	updateAmbassadorStatus(c, models.AmbassadorStatusRejected)
}

// PATCH /admin/ambassadors/:id/suspend
func SuspendAmbassador(c *gin.Context) {
	utils.LogInfo("SuspendAmbassador called for ID: %s", c.Param("id"))
	updateAmbassadorStatus(c, models.AmbassadorStatusSuspended)
}

// UpdateCommissionRateRequest changes an ambassador's commission rate
type UpdateCommissionRateRequest struct {
	Rate *float64 `json:"rate" binding:"required"`
}

// PATCH /admin/ambassadors/:id/commission-rate
// Rate changes apply to future conversions only; existing commission rows
// keep the rate captured at creation time.
func UpdateCommissionRate(c *gin.Context) {
	utils.LogInfo("UpdateCommissionRate called for ID: %s", c.Param("id"))

	var req UpdateCommissionRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid rate update request: %v", err)
		utils.BadRequest(c, "Invalid request. rate is required", err.Error())
		return
	}

	if err := utils.ValidateCommissionRate(*req.Rate); err != nil {
		utils.LogError("Commission rate out of range: %v", err)
		utils.BadRequest(c, "Commission rate must be between 0 and 100", err.Error())
		return
	}

	var ambassador models.Ambassador
	if err := config.DB.First(&ambassador, c.Param("id")).Error; err != nil {
		utils.LogError("Ambassador not found for ID: %s", c.Param("id"))
		utils.NotFound(c, "Ambassador not found")
		return
	}

	if err := config.DB.Model(&ambassador).Update("commission_rate", *req.Rate).Error; err != nil {
		utils.LogError("Failed to update commission rate for ambassador %d: %v", ambassador.ID, err)
		utils.InternalServerError(c, "Failed to update commission rate", err.Error())
		return
	}

	utils.LogInfo("Commission rate for ambassador %d set to %.2f", ambassador.ID, *req.Rate)
	utils.Success(c, "Commission rate updated successfully", gin.H{
		"id":              ambassador.ID,
		"commission_rate": *req.Rate,
	})
}
