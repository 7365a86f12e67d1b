package models

import (
	"time"

	"gorm.io/gorm"
)

// Ambassador represents a referral-program participant
type Ambassador struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `json:"user_id" gorm:"uniqueIndex"`
	User           User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ReferralCode   string         `json:"referral_code" gorm:"uniqueIndex"`
	CommissionRate float64        `json:"commission_rate" gorm:"default:15"`
	Status         string         `json:"status" gorm:"default:'pending'"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// AmbassadorStatus constants
const (
	AmbassadorStatusPending   = "pending"
	AmbassadorStatusApproved  = "approved"
	AmbassadorStatusRejected  = "rejected"
	AmbassadorStatusSuspended = "suspended"
)

// DefaultCommissionRate is the platform default applied to new ambassadors.
const DefaultCommissionRate = 15.0

// ReferralClickEvent is the append-only click log. Click counts are tracked
// separately from attribution: a row is written for every click-through even
// when the visitor already carries an attribution cookie.
type ReferralClickEvent struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ReferralCode string    `json:"referral_code" gorm:"index"`
	AmbassadorID *uint     `json:"ambassador_id" gorm:"index"`
	UTMSource    string    `json:"utm_source"`
	UTMMedium    string    `json:"utm_medium"`
	UTMCampaign  string    `json:"utm_campaign"`
	CreatedAt    time.Time `json:"created_at"`
}

// ReferralSignup records which referral code a member signed up with
type ReferralSignup struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `json:"user_id" gorm:"uniqueIndex"`
	ReferralCode string         `json:"referral_code" gorm:"index"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
