package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/herventures/HerVentures/config"
	"github.com/herventures/HerVentures/models"
	"github.com/herventures/HerVentures/utils"
)

// GET /admin/commissions
func ListCommissions(c *gin.Context) {
	utils.LogInfo("ListCommissions called")
	page, limit := utils.GetPaginationParams(c)

	query := config.DB.Model(&models.Commission{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if ambassadorID := c.Query("ambassador_id"); ambassadorID != "" {
		query = query.Where("ambassador_id = ?", ambassadorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count commissions: %v", err)
		utils.InternalServerError(c, "Failed to fetch commissions", err.Error())
		return
	}

	var commissions []models.Commission
	if err := query.Preload("Ambassador.User").Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).Find(&commissions).Error; err != nil {
		utils.LogError("Failed to fetch commissions: %v", err)
		utils.InternalServerError(c, "Failed to fetch commissions", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Commissions retrieved successfully",
		gin.H{"commissions": commissions}, total, page, limit)
}

// PATCH /admin/commissions/:id/pay
// Marks a pending commission paid. The transition is conditional so a double
// click in the back-office cannot record two payouts.
func MarkCommissionPaid(c *gin.Context) {
	utils.LogInfo("MarkCommissionPaid called for ID: %s", c.Param("id"))

	var commission models.Commission
	if err := config.DB.First(&commission, c.Param("id")).Error; err != nil {
		utils.LogError("Commission not found for ID: %s", c.Param("id"))
		utils.NotFound(c, "Commission not found")
		return
	}

	now := time.Now()
	result := config.DB.Model(&models.Commission{}).
		Where("id = ? AND status = ?", commission.ID, models.CommissionStatusPending).
		Updates(map[string]interface{}{
			"status":  models.CommissionStatusPaid,
			"paid_at": &now,
		})
	if result.Error != nil {
		utils.LogError("Failed to mark commission %d paid: %v", commission.ID, result.Error)
		utils.InternalServerError(c, "Failed to update commission", result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.BadRequest(c, "Commission is already paid", nil)
		return
	}

	utils.LogInfo("Commission %d marked paid", commission.ID)
	utils.Success(c, "Commission marked as paid", gin.H{
		"id":      commission.ID,
		"status":  models.CommissionStatusPaid,
		"paid_at": now,
	})
}
