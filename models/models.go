package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a portal member
type User struct {
	gorm.Model
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Password     string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone"`
	ProfileImage string    `json:"profile_image"`
	BusinessName string    `json:"business_name"`
	IsBlocked    bool      `json:"is_blocked"`
	IsVerified   bool      `json:"is_verified" gorm:"default:false"`
	LastLoginAt  time.Time `json:"last_login_at"`
	GoogleID     string    `gorm:"unique;default:null" json:"google_id"`

	Subscriptions    []Subscription    `json:"subscriptions,omitempty" gorm:"foreignKey:UserID"`
	BusinessListings []BusinessListing `json:"business_listings,omitempty" gorm:"foreignKey:OwnerID"`
}

// Admin represents an administrator in the back-office
type Admin struct {
	gorm.Model
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	LastLogin time.Time `json:"last_login"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
}

// Plan represents a purchasable membership plan
type Plan struct {
	gorm.Model
	Name           string  `json:"name"`
	Slug           string  `json:"slug" gorm:"uniqueIndex"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	DurationMonths int     `json:"duration_months"`
	Perks          string  `json:"perks"`
	IsActive       bool    `json:"is_active" gorm:"default:true"`
}

type BlacklistedToken struct {
	gorm.Model
	Token     string    `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
}
