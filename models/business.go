package models

import (
	"time"

	"gorm.io/gorm"
)

// BusinessListing represents a member's business in the public directory.
// The subscription flags are written only by the activation routine and the
// reconciliation sweep, never by listing CRUD.
type BusinessListing struct {
	ID                    uint           `gorm:"primaryKey" json:"id"`
	OwnerID               uint           `json:"owner_id" gorm:"index"`
	Owner                 User           `json:"-" gorm:"foreignKey:OwnerID"`
	Name                  string         `json:"name"`
	Category              string         `json:"category"`
	Description           string         `json:"description"`
	City                  string         `json:"city"`
	Website               string         `json:"website"`
	Phone                 string         `json:"phone"`
	SubscriptionActive    bool           `json:"subscription_active" gorm:"default:false"`
	SubscriptionExpiresAt time.Time      `json:"subscription_expires_at"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`
}
