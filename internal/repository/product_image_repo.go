package repository

import (
	"context"

	"electroshop/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductImageRepository interface {
	Create(ctx context.Context, image *model.ProductImage) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ProductImage, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.ProductImage, error)
	// ClearMainFlags drops the main flag on every image of the product
	ClearMainFlags(ctx context.Context, productID uuid.UUID) error
	SetMainFlag(ctx context.Context, imageID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByProduct(ctx context.Context, productID uuid.UUID) error
}

type productImageRepository struct {
	db *gorm.DB
}

func NewProductImageRepository(db *gorm.DB) ProductImageRepository {
	return &productImageRepository{db: db}
}

func (r *productImageRepository) Create(ctx context.Context, image *model.ProductImage) error {
	return GetDB(ctx, r.db).Create(image).Error
}

func (r *productImageRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ProductImage, error) {
	var image model.ProductImage
	if err := GetDB(ctx, r.db).First(&image, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *productImageRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.ProductImage, error) {
	var images []model.ProductImage
	if err := GetDB(ctx, r.db).Where("product_id = ?", productID).
		Order("created_at asc").Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *productImageRepository) ClearMainFlags(ctx context.Context, productID uuid.UUID) error {
	return GetDB(ctx, r.db).Model(&model.ProductImage{}).
		Where("product_id = ?", productID).
		Update("is_main_image", false).Error
}

func (r *productImageRepository) SetMainFlag(ctx context.Context, imageID uuid.UUID) error {
	return GetDB(ctx, r.db).Model(&model.ProductImage{}).
		Where("id = ?", imageID).
		Update("is_main_image", true).Error
}

func (r *productImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.ProductImage{}).Error
}

func (r *productImageRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	return GetDB(ctx, r.db).Where("product_id = ?", productID).Delete(&model.ProductImage{}).Error
}
