package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/herventures/HerVentures/config"
	"github.com/herventures/HerVentures/models"
	"github.com/herventures/HerVentures/utils"
)

// GET /admin/dashboard
func GetAdminDashboard(c *gin.Context) {
	utils.LogInfo("GetAdminDashboard called")
	db := config.DB
	since := time.Now().AddDate(0, 0, -30)

	var totalMembers, newMembers int64
	db.Model(&models.User{}).Count(&totalMembers)
	db.Model(&models.User{}).Where("created_at >= ?", since).Count(&newMembers)

	var activeSubscriptions, pendingSubscriptions int64
	db.Model(&models.Subscription{}).
		Where("status = ?", models.SubscriptionStatusActive).Count(&activeSubscriptions)
	db.Model(&models.Subscription{}).
		Where("status = ?", models.SubscriptionStatusPending).Count(&pendingSubscriptions)

	var revenue float64
	db.Model(&models.Subscription{}).
		Where("status = ? AND updated_at >= ?", models.SubscriptionStatusActive, since).
		Select("COALESCE(SUM(amount), 0)").Scan(&revenue)

	var clicks, signups, conversions int64
	db.Model(&models.ReferralClickEvent{}).Where("created_at >= ?", since).Count(&clicks)
	db.Model(&models.ReferralSignup{}).Where("created_at >= ?", since).Count(&signups)
	db.Model(&models.Commission{}).Where("created_at >= ?", since).Count(&conversions)

	var pendingCommissions float64
	db.Model(&models.Commission{}).
		Where("status = ?", models.CommissionStatusPending).
		Select("COALESCE(SUM(amount), 0)").Scan(&pendingCommissions)

	var activeListings int64
	db.Model(&models.BusinessListing{}).Where("subscription_active = ?", true).Count(&activeListings)

	utils.Success(c, "Dashboard retrieved successfully", gin.H{
		"members": gin.H{
			"total":        totalMembers,
			"new_30_days":  newMembers,
		},
		"subscriptions": gin.H{
			"active":  activeSubscriptions,
			"pending": pendingSubscriptions,
		},
		"revenue_30_days": revenue,
		"referrals": gin.H{
			"clicks_30_days":      clicks,
			"signups_30_days":     signups,
			"conversions_30_days": conversions,
		},
		"pending_commission_payout": pendingCommissions,
		"active_listings":           activeListings,
	})
}
