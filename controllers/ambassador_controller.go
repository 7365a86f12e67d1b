package controllers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/herventures/HerVentures/config"
	"github.com/herventures/HerVentures/models"
	"github.com/herventures/HerVentures/utils"
)

// generateReferralCode produces a unique 8-character upper-case code
func generateReferralCode() (string, error) {
	for attempts := 0; attempts < 10; attempts++ {
		code := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
		var count int64
		if err := config.DB.Model(&models.Ambassador{}).
			Where("referral_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", utils.NewError("could not generate a unique referral code")
}

// POST /user/ambassador/apply
func ApplyForAmbassador(c *gin.Context) {
	utils.LogInfo("ApplyForAmbassador called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var existing models.Ambassador
	if err := config.DB.Where("user_id = ?", user.ID).First(&existing).Error; err == nil {
		utils.LogError("User %d already has an ambassador profile (status %s)", user.ID, existing.Status)
		utils.Conflict(c, "An ambassador application already exists", gin.H{"status": existing.Status})
		return
	}

	code, err := generateReferralCode()
	if err != nil {
		utils.LogError("Failed to generate referral code for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create ambassador profile", err.Error())
		return
	}

	ambassador := models.Ambassador{
		UserID:         user.ID,
		ReferralCode:   code,
		CommissionRate: models.DefaultCommissionRate,
		Status:         models.AmbassadorStatusPending,
	}
	if err := config.DB.Create(&ambassador).Error; err != nil {
		utils.LogError("Failed to create ambassador profile for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create ambassador profile", err.Error())
		return
	}

	utils.LogInfo("Created ambassador application %d for user %d", ambassador.ID, user.ID)
	utils.Created(c, "Ambassador application submitted", gin.H{
		"referral_code": ambassador.ReferralCode,
		"status":        ambassador.Status,
	})
}

// GET /ambassador/stats
func GetAmbassadorStats(c *gin.Context) {
	utils.LogInfo("GetAmbassadorStats called")
	ambassadorVal, exists := c.Get("ambassador")
	if !exists {
		utils.LogError("Ambassador not found in context")
		utils.Unauthorized(c, "Ambassador not found")
		return
	}
	ambassador := ambassadorVal.(models.Ambassador)

	db := config.DB
	var totalClicks, recentClicks, signups, conversions int64
	since := time.Now().AddDate(0, 0, -30)

	db.Model(&models.ReferralClickEvent{}).
		Where("referral_code = ?", ambassador.ReferralCode).Count(&totalClicks)
	db.Model(&models.ReferralClickEvent{}).
		Where("referral_code = ? AND created_at >= ?", ambassador.ReferralCode, since).Count(&recentClicks)
	db.Model(&models.ReferralSignup{}).
		Where("referral_code = ?", ambassador.ReferralCode).Count(&signups)
	db.Model(&models.Commission{}).
		Where("ambassador_id = ?", ambassador.ID).Count(&conversions)

	var pendingTotal, paidTotal float64
	db.Model(&models.Commission{}).
		Where("ambassador_id = ? AND status = ?", ambassador.ID, models.CommissionStatusPending).
		Select("COALESCE(SUM(amount), 0)").Scan(&pendingTotal)
	db.Model(&models.Commission{}).
		Where("ambassador_id = ? AND status = ?", ambassador.ID, models.CommissionStatusPaid).
		Select("COALESCE(SUM(amount), 0)").Scan(&paidTotal)

	utils.Success(c, "Ambassador stats retrieved successfully", gin.H{
		"referral_code":   ambassador.ReferralCode,
		"commission_rate": ambassador.CommissionRate,
		"clicks": gin.H{
			"total":        totalClicks,
			"last_30_days": recentClicks,
		},
		"signups":     signups,
		"conversions": conversions,
		"earnings": gin.H{
			"pending": pendingTotal,
			"paid":    paidTotal,
		},
	})
}

// GET /ambassador/commissions
func ListAmbassadorCommissions(c *gin.Context) {
	utils.LogInfo("ListAmbassadorCommissions called")
	ambassadorVal, exists := c.Get("ambassador")
	if !exists {
		utils.LogError("Ambassador not found in context")
		utils.Unauthorized(c, "Ambassador not found")
		return
	}
	ambassador := ambassadorVal.(models.Ambassador)
	page, limit := utils.GetPaginationParams(c)

	query := config.DB.Model(&models.Commission{}).Where("ambassador_id = ?", ambassador.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count commissions for ambassador %d: %v", ambassador.ID, err)
		utils.InternalServerError(c, "Failed to fetch commissions", err.Error())
		return
	}

	var commissions []models.Commission
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).Find(&commissions).Error; err != nil {
		utils.LogError("Failed to fetch commissions for ambassador %d: %v", ambassador.ID, err)
		utils.InternalServerError(c, "Failed to fetch commissions", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Commissions retrieved successfully",
		gin.H{"commissions": commissions}, total, page, limit)
}
