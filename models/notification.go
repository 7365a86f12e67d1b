package models

import (
	"time"
)

// Notification is a discrete event shown to a member or ambassador.
// Read state is monotonic: unread -> read, never reversed.
type Notification struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `json:"user_id" gorm:"index"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Read      bool       `json:"read" gorm:"default:false"`
	ReadAt    *time.Time `json:"read_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Notification type constants
const (
	NotificationPaymentRegistered = "payment_registered"
	NotificationPaymentConfirmed  = "payment_confirmed"
	NotificationCommissionEarned  = "commission_earned"
)
