package service

import (
	"context"
	"fmt"
	"time"

	"electroshop/internal/model"
	"electroshop/internal/repository"
	"electroshop/internal/storage"
	ws "electroshop/internal/websocket"
	"electroshop/pkg/pagination"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DTOs

// ListProductsQuery carries the optional catalog filters; all supplied
// conditions combine with AND semantics.
type ListProductsQuery struct {
	CategoryID string   `form:"categoryId" binding:"omitempty,uuid"`
	LocationID string   `form:"locationId" binding:"omitempty,uuid"`
	MinPrice   *float64 `form:"minPrice" binding:"omitempty,gte=0"`
	MaxPrice   *float64 `form:"maxPrice" binding:"omitempty,gte=0"`
	Search     string   `form:"search"`
	SortBy     string   `form:"sortBy" binding:"omitempty,oneof=createdAt name price quantity"`
	OrderBy    string   `form:"orderBy" binding:"omitempty,oneof=asc desc"`
}

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	CategoryID  string  `json:"category_id" binding:"required,uuid"`
	LocationID  string  `json:"location_id" binding:"required,uuid"`
	Quantity    int     `json:"quantity" binding:"gte=0"`
	InStock     *bool   `json:"in_stock"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"image_url"`
	CategoryID  *string  `json:"category_id" binding:"omitempty,uuid"`
	LocationID  *string  `json:"location_id" binding:"omitempty,uuid"`
	Quantity    *int     `json:"quantity" binding:"omitempty,gte=0"`
	InStock     *bool    `json:"in_stock"`
}

type TogglePromotionRequest struct {
	IsOnPromotion    bool       `json:"is_on_promotion"`
	PromotionPrice   *float64   `json:"promotion_price" binding:"omitempty,gt=0"`
	PromotionEndDate *time.Time `json:"promotion_end_date"`
}

type UpdateStockRequest struct {
	Quantity *int  `json:"quantity" binding:"required,gte=0"`
	InStock  *bool `json:"in_stock" binding:"required"`
}

type ProductImageResponse struct {
	ID          uuid.UUID `json:"id"`
	ImageURL    string    `json:"image_url"`
	IsMainImage bool      `json:"is_main_image"`
}

type ProductResponse struct {
	ID               uuid.UUID              `json:"id"`
	Name             string                 `json:"name"`
	Description      string                 `json:"description"`
	Price            decimal.Decimal        `json:"price"`
	ImageURL         string                 `json:"image_url"`
	CategoryID       uuid.UUID              `json:"category_id"`
	CategoryName     string                 `json:"category_name"`
	LocationID       uuid.UUID              `json:"location_id"`
	LocationName     string                 `json:"location_name"`
	Quantity         int                    `json:"quantity"`
	InStock          bool                   `json:"in_stock"`
	IsOnPromotion    bool                   `json:"is_on_promotion"`
	PromotionPrice   *decimal.Decimal       `json:"promotion_price"`
	PromotionEndDate *time.Time             `json:"promotion_end_date"`
	PromotionActive  bool                   `json:"promotion_active"`
	Images           []ProductImageResponse `json:"images"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// ProductListResult is the wire shape of a catalog page
type ProductListResult struct {
	Products   []ProductResponse `json:"products"`
	Pagination pagination.Meta   `json:"pagination"`
}

// CatalogService builds filtered, paginated product listings and owns
// product CRUD, promotion toggling and stock updates
type CatalogService interface {
	ListProducts(ctx context.Context, q ListProductsQuery, page pagination.Params) (*ProductListResult, error)
	ListProductsForAdmin(ctx context.Context, actor *model.User, q ListProductsQuery, page pagination.Params) (*ProductListResult, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductResponse, error)
	CreateProduct(ctx context.Context, actor *model.User, req CreateProductRequest) (*ProductResponse, error)
	UpdateProduct(ctx context.Context, actor *model.User, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error)
	DeleteProduct(ctx context.Context, actor *model.User, id uuid.UUID) error
	TogglePromotion(ctx context.Context, actor *model.User, id uuid.UUID, req TogglePromotionRequest) (*ProductResponse, error)
	UpdateStock(ctx context.Context, actor *model.User, id uuid.UUID, req UpdateStockRequest) (*ProductResponse, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	imageRepo    repository.ProductImageRepository
	categoryRepo repository.CategoryRepository
	locationRepo repository.LocationRepository
	txManager    repository.TransactionManager
	store        storage.Store
	hub          *ws.Hub
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	imageRepo repository.ProductImageRepository,
	categoryRepo repository.CategoryRepository,
	locationRepo repository.LocationRepository,
	txManager repository.TransactionManager,
	store storage.Store,
	hub *ws.Hub,
) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		imageRepo:    imageRepo,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
		txManager:    txManager,
		store:        store,
		hub:          hub,
	}
}

func mapProductResponse(p *model.Product) *ProductResponse {
	images := make([]ProductImageResponse, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, ProductImageResponse{
			ID:          img.ID,
			ImageURL:    img.ImageURL,
			IsMainImage: img.IsMainImage,
		})
	}

	return &ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		Price:            p.Price,
		ImageURL:         p.ImageURL,
		CategoryID:       p.CategoryID,
		CategoryName:     p.Category.Name,
		LocationID:       p.LocationID,
		LocationName:     p.Location.Name,
		Quantity:         p.Quantity,
		InStock:          p.InStock,
		IsOnPromotion:    p.IsOnPromotion,
		PromotionPrice:   p.PromotionPrice,
		PromotionEndDate: p.PromotionEndDate,
		PromotionActive:  p.PromotionActive(time.Now()),
		Images:           images,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func (s *catalogService) publish(event string, data interface{}) {
	if s.hub != nil {
		s.hub.Notify(event, data)
	}
}

func buildFilter(q ListProductsQuery) repository.ProductFilter {
	filter := repository.ProductFilter{
		Search:  q.Search,
		SortBy:  q.SortBy,
		OrderBy: q.OrderBy,
	}
	if q.CategoryID != "" {
		if id, err := uuid.Parse(q.CategoryID); err == nil {
			filter.CategoryID = &id
		}
	}
	if q.LocationID != "" {
		if id, err := uuid.Parse(q.LocationID); err == nil {
			filter.LocationID = &id
		}
	}
	if q.MinPrice != nil {
		min := decimal.NewFromFloat(*q.MinPrice)
		filter.MinPrice = &min
	}
	if q.MaxPrice != nil {
		max := decimal.NewFromFloat(*q.MaxPrice)
		filter.MaxPrice = &max
	}
	return filter
}

func (s *catalogService) list(ctx context.Context, filter repository.ProductFilter, page pagination.Params) (*ProductListResult, error) {
	products, total, err := s.productRepo.List(ctx, filter, page.Offset, page.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, *mapProductResponse(&products[i]))
	}

	return &ProductListResult{
		Products:   responses,
		Pagination: pagination.NewMeta(total, page),
	}, nil
}

func (s *catalogService) ListProducts(ctx context.Context, q ListProductsQuery, page pagination.Params) (*ProductListResult, error) {
	return s.list(ctx, buildFilter(q), page)
}

// ListProductsForAdmin restricts the listing to the caller's home location
// unless the caller is a super-admin, who sees all locations and may narrow
// by an explicit locationId filter.
func (s *catalogService) ListProductsForAdmin(ctx context.Context, actor *model.User, q ListProductsQuery, page pagination.Params) (*ProductListResult, error) {
	filter := buildFilter(q)
	if !actor.IsSuperAdmin {
		if actor.LocationID == nil {
			return nil, ErrForbidden
		}
		filter.LocationID = actor.LocationID
	}
	return s.list(ctx, filter, page)
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return mapProductResponse(product), nil
}

func (s *catalogService) CreateProduct(ctx context.Context, actor *model.User, req CreateProductRequest) (*ProductResponse, error) {
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid category_id", ErrValidation)
	}
	locationID, err := uuid.Parse(req.LocationID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid location_id", ErrValidation)
	}

	// Non-super-admins always create products for their own store,
	// whatever the payload says
	if !actor.IsSuperAdmin {
		if actor.LocationID == nil {
			return nil, ErrForbidden
		}
		locationID = *actor.LocationID
	}

	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		return nil, ErrNotFound
	}
	if _, err := s.locationRepo.FindByID(ctx, locationID); err != nil {
		return nil, ErrNotFound
	}

	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}

	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       decimal.NewFromFloat(req.Price),
		ImageURL:    req.ImageURL,
		CategoryID:  categoryID,
		LocationID:  locationID,
		Quantity:    req.Quantity,
		InStock:     inStock,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	created, err := s.productRepo.FindByID(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	res := mapProductResponse(created)
	s.publish("product.created", res)
	return res, nil
}

// loadOwned fetches a product and enforces the locationAccess capability
func (s *catalogService) loadOwned(ctx context.Context, actor *model.User, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if !actor.CanAccessLocation(product.LocationID) {
		return nil, ErrForbidden
	}
	return product, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, actor *model.User, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Price != nil {
		product.Price = decimal.NewFromFloat(*req.Price)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid category_id", ErrValidation)
		}
		if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
			return nil, ErrNotFound
		}
		product.CategoryID = categoryID
	}
	if req.LocationID != nil && actor.IsSuperAdmin {
		// Only super-admins may move a product to another store
		locationID, err := uuid.Parse(*req.LocationID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid location_id", ErrValidation)
		}
		if _, err := s.locationRepo.FindByID(ctx, locationID); err != nil {
			return nil, ErrNotFound
		}
		product.LocationID = locationID
	}
	if req.Quantity != nil {
		product.Quantity = *req.Quantity
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	updated, err := s.productRepo.FindByID(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	res := mapProductResponse(updated)
	s.publish("product.updated", res)
	return res, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, actor *model.User, id uuid.UUID) error {
	product, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.imageRepo.DeleteByProduct(txCtx, product.ID); err != nil {
			return err
		}
		return s.productRepo.Delete(txCtx, product.ID)
	})
	if err != nil {
		return err
	}

	// File cleanup runs after the rows are gone and never fails the request
	for _, img := range product.Images {
		s.store.Remove(img.ImageURL)
	}

	s.publish("product.deleted", map[string]interface{}{"id": product.ID})
	return nil
}

// TogglePromotion enables or disables a promotion; disabling always clears
// the promotion price and end date so the fields stay mutually consistent.
func (s *catalogService) TogglePromotion(ctx context.Context, actor *model.User, id uuid.UUID, req TogglePromotionRequest) (*ProductResponse, error) {
	product, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.IsOnPromotion {
		if req.PromotionPrice == nil {
			return nil, fmt.Errorf("%w: promotion_price is required when enabling a promotion", ErrValidation)
		}
		price := decimal.NewFromFloat(*req.PromotionPrice)
		product.IsOnPromotion = true
		product.PromotionPrice = &price
		product.PromotionEndDate = req.PromotionEndDate
	} else {
		product.IsOnPromotion = false
		product.PromotionPrice = nil
		product.PromotionEndDate = nil
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	res := mapProductResponse(product)
	s.publish("product.promotion", res)
	return res, nil
}

func (s *catalogService) UpdateStock(ctx context.Context, actor *model.User, id uuid.UUID, req UpdateStockRequest) (*ProductResponse, error) {
	product, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	// InStock is an explicit flag, never derived from the quantity
	product.Quantity = *req.Quantity
	product.InStock = *req.InStock

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	res := mapProductResponse(product)
	s.publish("product.stock", res)
	return res, nil
}
