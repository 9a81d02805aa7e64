package service

import (
	"context"
	"time"

	"electroshop/internal/model"
	"electroshop/internal/repository"

	"github.com/google/uuid"
)

type CreateConfigurationRequest struct {
	ConfigKey   string `json:"config_key" binding:"required"`
	ConfigValue string `json:"config_value"`
	Description string `json:"description"`
}

type UpdateConfigurationRequest struct {
	ConfigValue *string `json:"config_value"`
	Description *string `json:"description"`
}

type ConfigurationResponse struct {
	ID          uuid.UUID `json:"id"`
	ConfigKey   string    `json:"config_key"`
	ConfigValue string    `json:"config_value"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ConfigurationService interface {
	ListConfigurations(ctx context.Context) ([]ConfigurationResponse, error)
	// GetConfiguration never fails on a missing key: callers receive an
	// empty placeholder for keys that were never set
	GetConfiguration(ctx context.Context, key string) (*ConfigurationResponse, error)
	CreateConfiguration(ctx context.Context, req CreateConfigurationRequest) (*ConfigurationResponse, error)
	UpdateConfiguration(ctx context.Context, id uuid.UUID, req UpdateConfigurationRequest) (*ConfigurationResponse, error)
	DeleteConfiguration(ctx context.Context, id uuid.UUID) error
}

type configurationService struct {
	configRepo repository.ConfigurationRepository
}

func NewConfigurationService(configRepo repository.ConfigurationRepository) ConfigurationService {
	return &configurationService{configRepo: configRepo}
}

func mapConfigurationResponse(c *model.Configuration) *ConfigurationResponse {
	return &ConfigurationResponse{
		ID:          c.ID,
		ConfigKey:   c.ConfigKey,
		ConfigValue: c.ConfigValue,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (s *configurationService) ListConfigurations(ctx context.Context) ([]ConfigurationResponse, error) {
	configs, err := s.configRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]ConfigurationResponse, 0, len(configs))
	for i := range configs {
		responses = append(responses, *mapConfigurationResponse(&configs[i]))
	}
	return responses, nil
}

func (s *configurationService) GetConfiguration(ctx context.Context, key string) (*ConfigurationResponse, error) {
	config, err := s.configRepo.FindByKey(ctx, key)
	if err != nil {
		return &ConfigurationResponse{ConfigKey: key, ConfigValue: ""}, nil
	}
	return mapConfigurationResponse(config), nil
}

func (s *configurationService) CreateConfiguration(ctx context.Context, req CreateConfigurationRequest) (*ConfigurationResponse, error) {
	if _, err := s.configRepo.FindByKey(ctx, req.ConfigKey); err == nil {
		return nil, ErrConflict
	}

	config := &model.Configuration{
		ConfigKey:   req.ConfigKey,
		ConfigValue: req.ConfigValue,
		Description: req.Description,
	}
	if err := s.configRepo.Create(ctx, config); err != nil {
		return nil, err
	}
	return mapConfigurationResponse(config), nil
}

func (s *configurationService) UpdateConfiguration(ctx context.Context, id uuid.UUID, req UpdateConfigurationRequest) (*ConfigurationResponse, error) {
	config, err := s.configRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	if req.ConfigValue != nil {
		config.ConfigValue = *req.ConfigValue
	}
	if req.Description != nil {
		config.Description = *req.Description
	}

	if err := s.configRepo.Update(ctx, config); err != nil {
		return nil, err
	}
	return mapConfigurationResponse(config), nil
}

func (s *configurationService) DeleteConfiguration(ctx context.Context, id uuid.UUID) error {
	if _, err := s.configRepo.FindByID(ctx, id); err != nil {
		return ErrNotFound
	}
	return s.configRepo.Delete(ctx, id)
}
