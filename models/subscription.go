package models

import (
	"time"

	"gorm.io/gorm"
)

// Subscription represents a member's paid membership period
type Subscription struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	UserID            uint           `json:"user_id" gorm:"index"`
	User              User           `json:"-" gorm:"foreignKey:UserID"`
	PlanID            uint           `json:"plan_id"`
	Plan              Plan           `json:"plan,omitempty" gorm:"foreignKey:PlanID"`
	Amount            float64        `json:"amount"`
	Status            string         `json:"status" gorm:"default:'pending'"`
	ExternalPaymentID string         `json:"external_payment_id" gorm:"uniqueIndex"`
	ReferralCode      string         `json:"referral_code"`
	ExpiresAt         time.Time      `json:"expires_at"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// SubscriptionStatus constants
const (
	SubscriptionStatusPending   = "pending"
	SubscriptionStatusActive    = "active"
	SubscriptionStatusCancelled = "cancelled"
	SubscriptionStatusExpired   = "expired"
)
