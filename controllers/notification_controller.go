package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/herventures/HerVentures/config"
	"github.com/herventures/HerVentures/models"
	"github.com/herventures/HerVentures/utils"
)

// GET /user/notifications
func ListNotifications(c *gin.Context) {
	utils.LogInfo("ListNotifications called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)
	page, limit := utils.GetPaginationParams(c)

	var total int64
	if err := config.DB.Model(&models.Notification{}).Where("user_id = ?", user.ID).Count(&total).Error; err != nil {
		utils.LogError("Failed to count notifications for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch notifications", err.Error())
		return
	}

	var notifications []models.Notification
	if err := config.DB.Where("user_id = ?", user.ID).Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).Find(&notifications).Error; err != nil {
		utils.LogError("Failed to fetch notifications for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch notifications", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Notifications retrieved successfully",
		gin.H{"notifications": notifications}, total, page, limit)
}

// GET /user/notifications/unread-count
// Polled by the client (reference behavior: every 30 seconds); staleness
// within the polling window is acceptable.
func GetUnreadNotificationCount(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var count int64
	if err := config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", user.ID, false).Count(&count).Error; err != nil {
		utils.LogError("Failed to count unread notifications for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to count notifications", err.Error())
		return
	}

	utils.Success(c, "Unread count retrieved successfully", gin.H{"unread": count})
}

// PATCH /user/notifications/:id/read
// Marking as read is monotonic; re-marking an already-read notification keeps
// the original read_at.
func MarkNotificationRead(c *gin.Context) {
	utils.LogInfo("MarkNotificationRead called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	now := time.Now()
	result := config.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND read = ?", c.Param("id"), user.ID, false).
		Updates(map[string]interface{}{"read": true, "read_at": &now})
	if result.Error != nil {
		utils.LogError("Failed to mark notification %s read: %v", c.Param("id"), result.Error)
		utils.InternalServerError(c, "Failed to update notification", result.Error.Error())
		return
	}

	utils.Success(c, "Notification marked as read", gin.H{"updated": result.RowsAffected > 0})
}

// PATCH /user/notifications/read-all
func MarkAllNotificationsRead(c *gin.Context) {
	utils.LogInfo("MarkAllNotificationsRead called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	now := time.Now()
	result := config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", user.ID, false).
		Updates(map[string]interface{}{"read": true, "read_at": &now})
	if result.Error != nil {
		utils.LogError("Failed to mark notifications read for user ID: %d: %v", user.ID, result.Error)
		utils.InternalServerError(c, "Failed to update notifications", result.Error.Error())
		return
	}

	utils.Success(c, "All notifications marked as read", gin.H{"updated": result.RowsAffected})
}
