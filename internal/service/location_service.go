package service

import (
	"context"
	"time"

	"electroshop/internal/model"
	"electroshop/internal/repository"

	"github.com/google/uuid"
)

type CreateLocationRequest struct {
	Name           string `json:"name" binding:"required"`
	Address        string `json:"address" binding:"required"`
	Description    string `json:"description"`
	ImageURL       string `json:"image_url"`
	Phone          string `json:"phone"`
	Email          string `json:"email" binding:"omitempty,email"`
	WhatsappNumber string `json:"whatsapp_number"`
}

type UpdateLocationRequest struct {
	Name           *string `json:"name"`
	Address        *string `json:"address"`
	Description    *string `json:"description"`
	ImageURL       *string `json:"image_url"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email" binding:"omitempty,email"`
	WhatsappNumber *string `json:"whatsapp_number"`
}

type LocationResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	Description    string    `json:"description"`
	ImageURL       string    `json:"image_url"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	WhatsappNumber string    `json:"whatsapp_number"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type LocationService interface {
	ListLocations(ctx context.Context) ([]LocationResponse, error)
	GetLocation(ctx context.Context, id uuid.UUID) (*LocationResponse, error)
	CreateLocation(ctx context.Context, req CreateLocationRequest) (*LocationResponse, error)
	UpdateLocation(ctx context.Context, id uuid.UUID, req UpdateLocationRequest) (*LocationResponse, error)
	DeleteLocation(ctx context.Context, id uuid.UUID) error
}

type locationService struct {
	locationRepo repository.LocationRepository
	productRepo  repository.ProductRepository
}

func NewLocationService(locationRepo repository.LocationRepository, productRepo repository.ProductRepository) LocationService {
	return &locationService{locationRepo: locationRepo, productRepo: productRepo}
}

func mapLocationResponse(l *model.Location) *LocationResponse {
	return &LocationResponse{
		ID:             l.ID,
		Name:           l.Name,
		Address:        l.Address,
		Description:    l.Description,
		ImageURL:       l.ImageURL,
		Phone:          l.Phone,
		Email:          l.Email,
		WhatsappNumber: l.WhatsappNumber,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

func (s *locationService) ListLocations(ctx context.Context) ([]LocationResponse, error) {
	locations, err := s.locationRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]LocationResponse, 0, len(locations))
	for i := range locations {
		responses = append(responses, *mapLocationResponse(&locations[i]))
	}
	return responses, nil
}

func (s *locationService) GetLocation(ctx context.Context, id uuid.UUID) (*LocationResponse, error) {
	location, err := s.locationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return mapLocationResponse(location), nil
}

func (s *locationService) CreateLocation(ctx context.Context, req CreateLocationRequest) (*LocationResponse, error) {
	location := &model.Location{
		Name:           req.Name,
		Address:        req.Address,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
		Phone:          req.Phone,
		Email:          req.Email,
		WhatsappNumber: req.WhatsappNumber,
	}
	if err := s.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}
	return mapLocationResponse(location), nil
}

func (s *locationService) UpdateLocation(ctx context.Context, id uuid.UUID, req UpdateLocationRequest) (*LocationResponse, error) {
	location, err := s.locationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	if req.Name != nil {
		location.Name = *req.Name
	}
	if req.Address != nil {
		location.Address = *req.Address
	}
	if req.Description != nil {
		location.Description = *req.Description
	}
	if req.ImageURL != nil {
		location.ImageURL = *req.ImageURL
	}
	if req.Phone != nil {
		location.Phone = *req.Phone
	}
	if req.Email != nil {
		location.Email = *req.Email
	}
	if req.WhatsappNumber != nil {
		location.WhatsappNumber = *req.WhatsappNumber
	}

	if err := s.locationRepo.Update(ctx, location); err != nil {
		return nil, err
	}
	return mapLocationResponse(location), nil
}

func (s *locationService) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	if _, err := s.locationRepo.FindByID(ctx, id); err != nil {
		return ErrNotFound
	}

	count, err := s.productRepo.CountByLocation(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrLocationNotEmpty
	}

	return s.locationRepo.Delete(ctx, id)
}
