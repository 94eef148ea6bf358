// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubscriptionTierFree is the tier assigned to every new user.
const SubscriptionTierFree = "free"

// User represents a Reef For All member. The account itself lives at the
// identity provider; this row mirrors the provider profile plus the fields
// users edit in-app. Rows are never deleted.
type User struct {
	ID               string    `gorm:"primaryKey;size:36" json:"id"`
	Auth0ID          string    `gorm:"uniqueIndex;not null" json:"auth0Id"`
	Email            string    `gorm:"uniqueIndex;not null" json:"email"`
	Username         *string   `gorm:"uniqueIndex" json:"username"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	Bio              string    `json:"bio"`
	Location         string    `json:"location"`
	AvatarURL        string    `json:"avatarUrl"`
	EmailVerified    bool      `gorm:"not null;default:false" json:"emailVerified"`
	SubscriptionTier string    `gorm:"not null;default:free" json:"subscriptionTier"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
	Tanks            []Tank    `gorm:"foreignKey:UserID" json:"tanks,omitempty"`
}

// BeforeCreate assigns a generated ID when none was provided.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.SubscriptionTier == "" {
		u.SubscriptionTier = SubscriptionTierFree
	}
	return nil
}
