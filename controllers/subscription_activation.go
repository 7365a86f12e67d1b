package controllers

import (
	"gorm.io/gorm"

	"github.com/herventures/HerVentures/models"
	"github.com/herventures/HerVentures/utils"
)

// ActivationResult summarizes one run of the activation routine
type ActivationResult struct {
	// Activated is true only when this call performed the pending -> active
	// transition. Redeliveries see false and skip side effects.
	Activated           bool
	BusinessesActivated int64
}

// ActivateSubscription transitions a subscription to active and mirrors the
// owner's business listings. Safe under at-least-once delivery: the status
// transition is a conditional update, and commission/notification side effects
// run only when the transition actually happened. The listing mirror is a pure
// overwrite to the same target values, so re-running it is harmless.
func ActivateSubscription(db *gorm.DB, sub *models.Subscription) (*ActivationResult, error) {
	result := &ActivationResult{}

	res := db.Model(&models.Subscription{}).
		Where("id = ? AND status = ?", sub.ID, models.SubscriptionStatusPending).
		Update("status", models.SubscriptionStatusActive)
	if res.Error != nil {
		utils.LogError("Failed to activate subscription %d: %v", sub.ID, res.Error)
		return nil, res.Error
	}
	result.Activated = res.RowsAffected > 0
	if result.Activated {
		utils.LogInfo("Subscription %d transitioned to active", sub.ID)
	} else {
		utils.LogInfo("Subscription %d already past pending, skipping side effects", sub.ID)
	}

	// Mirror the owner's listings. Guarded so a late redelivery for a
	// subscription that has since expired or been cancelled cannot flip the
	// listings back on. A failure here is logged and not rolled back; the
	// consistency sweep repairs the drift on its next run.
	if result.Activated || sub.Status == models.SubscriptionStatusActive {
		mirror := db.Model(&models.BusinessListing{}).
			Where("owner_id = ?", sub.UserID).
			Updates(map[string]interface{}{
				"subscription_active":     true,
				"subscription_expires_at": sub.ExpiresAt,
			})
		if mirror.Error != nil {
			utils.LogError("Subscription %d active but listing mirror failed for user %d: %v",
				sub.ID, sub.UserID, mirror.Error)
		} else {
			result.BusinessesActivated = mirror.RowsAffected
			utils.LogInfo("Mirrored %d listings for user %d", mirror.RowsAffected, sub.UserID)
		}
	}

	if result.Activated {
		recordConversion(db, sub)
	}

	return result, nil
}

// recordConversion accrues the ambassador commission and writes the
// notifications for a confirmed payment. Everything here is best-effort:
// failures are logged as warnings and never fail the activation.
func recordConversion(db *gorm.DB, sub *models.Subscription) {
	notifyUser(db, sub.UserID, models.NotificationPaymentConfirmed,
		"Payment confirmed",
		"Your membership payment was confirmed and your subscription is now active.")

	var user models.User
	if err := db.First(&user, sub.UserID).Error; err == nil {
		var plan models.Plan
		planName := "membership"
		if err := db.First(&plan, sub.PlanID).Error; err == nil {
			planName = plan.Name
		}
		if err := utils.SendSubscriptionActiveEmail(user.Email, planName); err != nil {
			utils.LogWarn("Failed to send activation email to user %d: %v", sub.UserID, err)
		}
	}

	if sub.ReferralCode == "" {
		return
	}

	var ambassador models.Ambassador
	if err := db.Where("referral_code = ? AND status = ?", sub.ReferralCode, models.AmbassadorStatusApproved).
		First(&ambassador).Error; err != nil {
		utils.LogWarn("Subscription %d carries unknown or unapproved referral code %s", sub.ID, sub.ReferralCode)
		return
	}

	if ambassador.UserID == sub.UserID {
		utils.LogWarn("Ignoring self-referral on subscription %d", sub.ID)
		return
	}

	// Rate is captured here; later rate changes never touch this row. The
	// unique index on subscription_id rejects a duplicate accrual if a
	// redelivery ever races the conditional transition.
	commission := models.Commission{
		AmbassadorID:   ambassador.ID,
		SubscriptionID: sub.ID,
		SaleAmount:     sub.Amount,
		Rate:           ambassador.CommissionRate,
		Amount:         utils.CalculateCommission(sub.Amount, ambassador.CommissionRate),
		Status:         models.CommissionStatusPending,
	}
	if err := db.Create(&commission).Error; err != nil {
		utils.LogWarn("Failed to accrue commission for subscription %d: %v", sub.ID, err)
		return
	}
	utils.LogInfo("Accrued commission %.2f for ambassador %d on subscription %d",
		commission.Amount, ambassador.ID, sub.ID)

	notifyUser(db, ambassador.UserID, models.NotificationCommissionEarned,
		"Commission earned",
		"A member you referred completed a membership purchase. A new commission is pending in your dashboard.")

	var ambassadorUser models.User
	if err := db.First(&ambassadorUser, ambassador.UserID).Error; err == nil {
		if err := utils.SendCommissionEarnedEmail(ambassadorUser.Email, commission.Amount); err != nil {
			utils.LogWarn("Failed to send commission email to ambassador %d: %v", ambassador.ID, err)
		}
	}
}

// notifyUser writes a notification row, best-effort
func notifyUser(db *gorm.DB, userID uint, notificationType, title, message string) {
	notification := models.Notification{
		UserID:  userID,
		Type:    notificationType,
		Title:   title,
		Message: message,
	}
	if err := db.Create(&notification).Error; err != nil {
		utils.LogWarn("Failed to create %s notification for user %d: %v", notificationType, userID, err)
	}
}
