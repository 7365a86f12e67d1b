package models

import (
	"time"

	"gorm.io/gorm"
)

// Commission represents an ambassador's earnings for one attributed
// conversion. Rate is captured at creation time; later rate changes never
// touch existing rows. The unique index on SubscriptionID guards against
// double accrual under webhook redelivery.
type Commission struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	AmbassadorID   uint           `json:"ambassador_id" gorm:"index"`
	Ambassador     Ambassador     `json:"-" gorm:"foreignKey:AmbassadorID"`
	SubscriptionID uint           `json:"subscription_id" gorm:"uniqueIndex"`
	Subscription   Subscription   `json:"-" gorm:"foreignKey:SubscriptionID"`
	SaleAmount     float64        `json:"sale_amount"`
	Rate           float64        `json:"rate"`
	Amount         float64        `json:"amount"`
	Status         string         `json:"status" gorm:"default:'pending'"`
	PaidAt         *time.Time     `json:"paid_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// CommissionStatus constants
const (
	CommissionStatusPending = "pending"
	CommissionStatusPaid    = "paid"
)
