package service

import (
	"context"
	"time"

	"electroshop/internal/model"
	"electroshop/internal/repository"

	"github.com/google/uuid"
)

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type CategoryResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	ProductCount int64     `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CategoryService interface {
	ListCategories(ctx context.Context) ([]CategoryResponse, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*CategoryResponse, error)
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo, productRepo: productRepo}
}

func mapCategoryResponse(c *model.Category, count int64) *CategoryResponse {
	return &CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		ProductCount: count,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (s *categoryService) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := s.categoryRepo.ProductCounts(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, *mapCategoryResponse(&categories[i], counts[categories[i].ID]))
	}
	return responses, nil
}

func (s *categoryService) GetCategory(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	count, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapCategoryResponse(category, count), nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	if _, err := s.categoryRepo.FindByName(ctx, req.Name); err == nil {
		return nil, ErrConflict
	}

	category := &model.Category{Name: req.Name, Description: req.Description}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return mapCategoryResponse(category, 0), nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	if req.Name != nil && *req.Name != category.Name {
		if _, err := s.categoryRepo.FindByName(ctx, *req.Name); err == nil {
			return nil, ErrConflict
		}
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	count, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapCategoryResponse(category, count), nil
}

// DeleteCategory refuses to remove a category that still owns products;
// the guard lives here, not only in the database foreign key.
func (s *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return ErrNotFound
	}

	count, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryNotEmpty
	}

	return s.categoryRepo.Delete(ctx, id)
}
