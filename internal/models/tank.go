package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tank types. "reef" is the default for new tanks.
const (
	TankTypeReef       = "reef"
	TankTypeFowlr      = "fowlr"
	TankTypeFreshwater = "freshwater"
	TankTypeBrackish   = "brackish"
)

// ValidTankType reports whether t is one of the supported tank types.
func ValidTankType(t string) bool {
	switch t {
	case TankTypeReef, TankTypeFowlr, TankTypeFreshwater, TankTypeBrackish:
		return true
	}
	return false
}

// Tank is an aquarium record owned by exactly one user. Size is a unit-less
// gallon count.
type Tank struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Size        int        `gorm:"not null" json:"size"`
	Type        string     `gorm:"not null;default:reef" json:"type"`
	Description string     `json:"description"`
	ImageURL    string     `json:"imageUrl"`
	UserID      string     `gorm:"index;not null;size:36" json:"userId"`
	User        *TankOwner `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// BeforeCreate assigns a generated ID and the default type when absent.
func (t *Tank) BeforeCreate(_ *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Type == "" {
		t.Type = TankTypeReef
	}
	return nil
}

// TankOwner is the reduced projection of a User embedded in tank responses.
// It reads from the users table but exposes only the public profile fields.
type TankOwner struct {
	ID        string  `gorm:"primaryKey;size:36" json:"id"`
	Username  *string `json:"username"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	AvatarURL string  `json:"avatarUrl"`
}

// TableName maps the owner projection onto the users table.
func (TankOwner) TableName() string { return "users" }
