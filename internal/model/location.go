package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Location represents a physical store
type Location struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	Address        string         `gorm:"type:text" json:"address"`
	Description    string         `gorm:"type:text" json:"description"`
	ImageURL       string         `gorm:"type:varchar(512)" json:"image_url"`
	Phone          string         `gorm:"type:varchar(50)" json:"phone"`
	Email          string         `gorm:"type:varchar(255)" json:"email"`
	WhatsappNumber string         `gorm:"type:varchar(50)" json:"whatsapp_number"`
	Products       []Product      `gorm:"foreignKey:LocationID" json:"-"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
