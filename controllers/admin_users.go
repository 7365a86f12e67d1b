package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/herventures/HerVentures/config"
	"github.com/herventures/HerVentures/models"
	"github.com/herventures/HerVentures/utils"
)

// GET /admin/users
func GetUsers(c *gin.Context) {
	utils.LogInfo("GetUsers called")
	page, limit := utils.GetPaginationParams(c)

	query := config.DB.Model(&models.User{})
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("username ILIKE ? OR email ILIKE ? OR business_name ILIKE ?", like, like, like)
	}
	if blocked := c.Query("blocked"); blocked == "true" {
		query = query.Where("is_blocked = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count users: %v", err)
		utils.InternalServerError(c, "Failed to fetch users", err.Error())
		return
	}

	var users []models.User
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).Find(&users).Error; err != nil {
		utils.LogError("Failed to fetch users: %v", err)
		utils.InternalServerError(c, "Failed to fetch users", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Users retrieved successfully", gin.H{"users": users}, total, page, limit)
}

// PATCH /admin/users/:id/block
func BlockUser(c *gin.Context) {
	utils.LogInfo("BlockUser called for ID: %s", c.Param("id"))

	result := config.DB.Model(&models.User{}).
		Where("id = ?", c.Param("id")).Update("is_blocked", true)
	if result.Error != nil {
		utils.LogError("Failed to block user %s: %v", c.Param("id"), result.Error)
		utils.InternalServerError(c, "Failed to block user", result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "User not found")
		return
	}

	utils.Success(c, "User blocked successfully", nil)
}

// PATCH /admin/users/:id/unblock
func UnblockUser(c *gin.Context) {
	utils.LogInfo("UnblockUser called for ID: %s", c.Param("id"))

	result := config.DB.Model(&models.User{}).
		Where("id = ?", c.Param("id")).Update("is_blocked", false)
	if result.Error != nil {
		utils.LogError("Failed to unblock user %s: %v", c.Param("id"), result.Error)
		utils.InternalServerError(c, "Failed to unblock user", result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "User not found")
		return
	}

	utils.Success(c, "User unblocked successfully", nil)
}
