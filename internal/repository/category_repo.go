package repository

import (
	"context"

	"electroshop/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	FindByName(ctx context.Context, name string) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	// ProductCounts returns owned-product counts keyed by category id
	ProductCounts(ctx context.Context) (map[uuid.UUID]int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	return GetDB(ctx, r.db).Create(category).Error
}

func (r *categoryRepository) Update(ctx context.Context, category *model.Category) error {
	return GetDB(ctx, r.db).Save(category).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Category{}).Error
}

func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var category model.Category
	if err := GetDB(ctx, r.db).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindByName(ctx context.Context, name string) (*model.Category, error) {
	var category model.Category
	if err := GetDB(ctx, r.db).First(&category, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := GetDB(ctx, r.db).Order("name asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) ProductCounts(ctx context.Context) (map[uuid.UUID]int64, error) {
	var rows []struct {
		CategoryID uuid.UUID
		Count      int64
	}
	err := GetDB(ctx, r.db).Model(&model.Product{}).
		Select("category_id, count(*) as count").
		Group("category_id").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.CategoryID] = row.Count
	}
	return counts, nil
}
