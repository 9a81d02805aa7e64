package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a back-office administrator account
type User struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email          string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password       string     `gorm:"type:varchar(255);not null" json:"-"` // Omit password from JSON requests/responses
	Name           string     `gorm:"type:varchar(255)" json:"name"`
	WhatsappNumber string     `gorm:"type:varchar(50);index" json:"whatsapp_number"`
	IsAdmin        bool       `gorm:"default:false" json:"is_admin"`
	IsSuperAdmin   bool       `gorm:"default:false" json:"is_super_admin"`
	LocationID     *uuid.UUID `gorm:"type:uuid;index" json:"location_id"`
	Location       *Location  `gorm:"foreignKey:LocationID" json:"location,omitempty"`

	// Reset state: both fields stay null unless a password reset is in flight
	ResetPasswordCode    *string    `gorm:"type:varchar(10)" json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // GORM soft delete
}

// CanAccessLocation reports whether the user may manage resources belonging
// to the given store. Super-admins have cross-location visibility.
func (u *User) CanAccessLocation(locationID uuid.UUID) bool {
	if u.IsSuperAdmin {
		return true
	}
	return u.LocationID != nil && *u.LocationID == locationID
}
