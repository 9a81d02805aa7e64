package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a catalog item sold at a specific store
type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null;index" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	// Denormalized pointer to the main image URL, mirrored from whichever
	// ProductImage currently carries the main flag
	ImageURL   string    `gorm:"type:varchar(512)" json:"image_url"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id"`
	Category   Category  `gorm:"foreignKey:CategoryID" json:"-"`
	LocationID uuid.UUID `gorm:"type:uuid;not null;index" json:"location_id"`
	Location   Location  `gorm:"foreignKey:LocationID" json:"-"`
	Quantity   int       `gorm:"type:int;default:0;not null" json:"quantity"`
	// InStock is set explicitly by the back office, never derived from Quantity
	InStock bool `gorm:"default:true" json:"in_stock"`

	IsOnPromotion    bool             `gorm:"default:false" json:"is_on_promotion"`
	PromotionPrice   *decimal.Decimal `gorm:"type:decimal(16,2)" json:"promotion_price"`
	PromotionEndDate *time.Time       `json:"promotion_end_date"`

	Images    []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PromotionActive reports whether the promotion applies at the given instant:
// the flag is on and the end date is either unset or still in the future.
func (p *Product) PromotionActive(now time.Time) bool {
	if !p.IsOnPromotion {
		return false
	}
	return p.PromotionEndDate == nil || p.PromotionEndDate.After(now)
}

// ProductImage is one of the images attached to a product.
// At most one image per product carries IsMainImage = true.
type ProductImage struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	ImageURL    string    `gorm:"type:varchar(512);not null" json:"image_url"`
	IsMainImage bool      `gorm:"default:false" json:"is_main_image"`
	CreatedAt   time.Time `json:"created_at"`
}
