package repository

import (
	"context"

	"electroshop/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConfigurationRepository interface {
	Create(ctx context.Context, config *model.Configuration) error
	Update(ctx context.Context, config *model.Configuration) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Configuration, error)
	FindByKey(ctx context.Context, key string) (*model.Configuration, error)
	List(ctx context.Context) ([]model.Configuration, error)
}

type configurationRepository struct {
	db *gorm.DB
}

func NewConfigurationRepository(db *gorm.DB) ConfigurationRepository {
	return &configurationRepository{db: db}
}

func (r *configurationRepository) Create(ctx context.Context, config *model.Configuration) error {
	return GetDB(ctx, r.db).Create(config).Error
}

func (r *configurationRepository) Update(ctx context.Context, config *model.Configuration) error {
	return GetDB(ctx, r.db).Save(config).Error
}

func (r *configurationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Configuration{}).Error
}

func (r *configurationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Configuration, error) {
	var config model.Configuration
	if err := GetDB(ctx, r.db).First(&config, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &config, nil
}

func (r *configurationRepository) FindByKey(ctx context.Context, key string) (*model.Configuration, error) {
	var config model.Configuration
	if err := GetDB(ctx, r.db).First(&config, "config_key = ?", key).Error; err != nil {
		return nil, err
	}
	return &config, nil
}

func (r *configurationRepository) List(ctx context.Context) ([]model.Configuration, error) {
	var configs []model.Configuration
	if err := GetDB(ctx, r.db).Order("config_key asc").Find(&configs).Error; err != nil {
		return nil, err
	}
	return configs, nil
}
