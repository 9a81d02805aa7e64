package repository

import (
	"context"

	"electroshop/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductFilter narrows a catalog listing; nil/empty fields are ignored
// and the remaining conditions combine with AND semantics.
type ProductFilter struct {
	CategoryID *uuid.UUID
	LocationID *uuid.UUID
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Search     string
	SortBy     string // createdAt, name, price, quantity
	OrderBy    string // asc, desc
}

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, filter ProductFilter, offset, limit int) ([]model.Product, int64, error)
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
	CountByLocation(ctx context.Context, locationID uuid.UUID) (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return GetDB(ctx, r.db).Create(product).Error
}

// Update persists the product's own columns only. Associations are omitted:
// gorm's auto-save would upsert the preloaded Images slice, which can write
// back an image row deleted earlier in the same transaction.
func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	return GetDB(ctx, r.db).Omit(clause.Associations).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Product{}).Error
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := GetDB(ctx, r.db).
		Preload("Category").Preload("Location").Preload("Images").
		First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// sortColumn whitelists user-supplied sort fields to actual columns
func sortColumn(sortBy string) string {
	switch sortBy {
	case "name":
		return "name"
	case "price":
		return "price"
	case "quantity":
		return "quantity"
	default:
		return "created_at"
	}
}

// List returns one page of products matching the filter plus the total count
// across all pages. Name search uses ILIKE, so matching is case-insensitive.
func (r *productRepository) List(ctx context.Context, filter ProductFilter, offset, limit int) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Product{})
	if filter.CategoryID != nil {
		db = db.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.LocationID != nil {
		db = db.Where("location_id = ?", *filter.LocationID)
	}
	if filter.MinPrice != nil {
		db = db.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		db = db.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.Search != "" {
		db = db.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := sortColumn(filter.SortBy)
	if filter.OrderBy == "asc" {
		order += " asc"
	} else {
		order += " desc"
	}

	if err := db.Preload("Category").Preload("Location").Preload("Images").
		Order(order).Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Product{}).
		Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

func (r *productRepository) CountByLocation(ctx context.Context, locationID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Product{}).
		Where("location_id = ?", locationID).Count(&count).Error
	return count, err
}
