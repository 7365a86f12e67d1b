package utils

import (
	"time"

	"gorm.io/gorm"

	"github.com/herventures/HerVentures/config"
	"github.com/herventures/HerVentures/models"
)

// RunConsistencySweep reconciles business listing flags with subscription
// state. Activation writes the two tables without a shared transaction, so a
// crash between the writes can leave a listing out of lockstep; the sweep also
// retires subscriptions that have passed their expiry.
// Returns the number of subscriptions expired and listings repaired.
func RunConsistencySweep(db *gorm.DB) (int64, int64) {
	now := time.Now()
	var expired, repaired int64

	// Retire overdue subscriptions.
	var overdue []models.Subscription
	if err := db.Where("status = ? AND expires_at <= ?", models.SubscriptionStatusActive, now).
		Find(&overdue).Error; err != nil {
		LogError("Sweep: failed to list overdue subscriptions: %v", err)
		return 0, 0
	}

	for _, sub := range overdue {
		res := db.Model(&models.Subscription{}).
			Where("id = ? AND status = ?", sub.ID, models.SubscriptionStatusActive).
			Update("status", models.SubscriptionStatusExpired)
		if res.Error != nil {
			LogError("Sweep: failed to expire subscription %d: %v", sub.ID, res.Error)
			continue
		}
		expired += res.RowsAffected

		// Downgrade the owner's listings unless another active subscription
		// still covers them.
		var remaining int64
		if err := db.Model(&models.Subscription{}).
			Where("user_id = ? AND status = ? AND expires_at > ?", sub.UserID, models.SubscriptionStatusActive, now).
			Count(&remaining).Error; err != nil {
			LogError("Sweep: failed to count subscriptions for user %d: %v", sub.UserID, err)
			continue
		}
		if remaining == 0 {
			if err := db.Model(&models.BusinessListing{}).
				Where("owner_id = ?", sub.UserID).
				Update("subscription_active", false).Error; err != nil {
				LogError("Sweep: failed to downgrade listings for user %d: %v", sub.UserID, err)
			}
		}
	}

	// Re-mirror listings drifted away from an active subscription.
	var active []models.Subscription
	if err := db.Where("status = ? AND expires_at > ?", models.SubscriptionStatusActive, now).
		Find(&active).Error; err != nil {
		LogError("Sweep: failed to list active subscriptions: %v", err)
		return expired, repaired
	}

	for _, sub := range active {
		res := db.Model(&models.BusinessListing{}).
			Where("owner_id = ? AND (subscription_active = ? OR subscription_expires_at <> ?)",
				sub.UserID, false, sub.ExpiresAt).
			Updates(map[string]interface{}{
				"subscription_active":     true,
				"subscription_expires_at": sub.ExpiresAt,
			})
		if res.Error != nil {
			LogError("Sweep: failed to re-mirror listings for user %d: %v", sub.UserID, res.Error)
			continue
		}
		repaired += res.RowsAffected
	}

	if expired > 0 || repaired > 0 {
		LogInfo("Sweep: expired %d subscriptions, repaired %d listings", expired, repaired)
	}
	return expired, repaired
}

// StartConsistencySweep runs the sweep on a fixed interval until quit closes.
func StartConsistencySweep(interval time.Duration, quit <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		LogInfo("Consistency sweep started, interval: %v", interval)
		for {
			select {
			case <-ticker.C:
				RunConsistencySweep(config.DB)
			case <-quit:
				LogInfo("Consistency sweep stopped")
				return
			}
		}
	}()
}
