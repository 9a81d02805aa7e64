package service

import (
	"context"

	"electroshop/internal/model"
	"electroshop/internal/repository"
	"electroshop/internal/storage"
	ws "electroshop/internal/websocket"

	"github.com/google/uuid"
)

// ImageService owns the single-main-image invariant: at most one image per
// product carries the main flag, and Product.ImageURL always mirrors it.
// Every route that can affect the invariant goes through this service, and
// multi-statement maintenance runs inside one transaction.
type ImageService interface {
	Attach(ctx context.Context, actor *model.User, productID uuid.UUID, urls []string) ([]ProductImageResponse, error)
	SetMain(ctx context.Context, actor *model.User, productID, imageID uuid.UUID) error
	DeleteImage(ctx context.Context, actor *model.User, productID, imageID uuid.UUID) error
}

type imageService struct {
	productRepo repository.ProductRepository
	imageRepo   repository.ProductImageRepository
	txManager   repository.TransactionManager
	store       storage.Store
	hub         *ws.Hub
}

func NewImageService(
	productRepo repository.ProductRepository,
	imageRepo repository.ProductImageRepository,
	txManager repository.TransactionManager,
	store storage.Store,
	hub *ws.Hub,
) ImageService {
	return &imageService{
		productRepo: productRepo,
		imageRepo:   imageRepo,
		txManager:   txManager,
		store:       store,
		hub:         hub,
	}
}

func (s *imageService) publish(event string, data interface{}) {
	if s.hub != nil {
		s.hub.Notify(event, data)
	}
}

func (s *imageService) loadOwned(ctx context.Context, actor *model.User, productID uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, ErrNotFound
	}
	if !actor.CanAccessLocation(product.LocationID) {
		return nil, ErrForbidden
	}
	return product, nil
}

// Attach creates image rows for already-stored files. The first image
// attached to a product with no existing images becomes the main image and
// is mirrored into Product.ImageURL.
func (s *imageService) Attach(ctx context.Context, actor *model.User, productID uuid.UUID, urls []string) ([]ProductImageResponse, error) {
	product, err := s.loadOwned(ctx, actor, productID)
	if err != nil {
		return nil, err
	}

	created := make([]ProductImageResponse, 0, len(urls))
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		existing, err := s.imageRepo.ListByProduct(txCtx, product.ID)
		if err != nil {
			return err
		}

		hadImages := len(existing) > 0
		for i, url := range urls {
			image := &model.ProductImage{
				ProductID:   product.ID,
				ImageURL:    url,
				IsMainImage: !hadImages && i == 0,
			}
			if err := s.imageRepo.Create(txCtx, image); err != nil {
				return err
			}
			created = append(created, ProductImageResponse{
				ID:          image.ID,
				ImageURL:    image.ImageURL,
				IsMainImage: image.IsMainImage,
			})
		}

		if !hadImages && len(urls) > 0 {
			product.ImageURL = urls[0]
			return s.productRepo.Update(txCtx, product)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish("product.images", map[string]interface{}{"product_id": product.ID, "images": created})
	return created, nil
}

// SetMain promotes one image to main. Clearing the other flags, setting the
// target and mirroring Product.ImageURL happen in a single transaction so no
// state with two main images (or none) is ever observable.
func (s *imageService) SetMain(ctx context.Context, actor *model.User, productID, imageID uuid.UUID) error {
	product, err := s.loadOwned(ctx, actor, productID)
	if err != nil {
		return err
	}

	image, err := s.imageRepo.FindByID(ctx, imageID)
	if err != nil || image.ProductID != product.ID {
		return ErrNotFound
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.imageRepo.ClearMainFlags(txCtx, product.ID); err != nil {
			return err
		}
		if err := s.imageRepo.SetMainFlag(txCtx, image.ID); err != nil {
			return err
		}
		product.ImageURL = image.ImageURL
		return s.productRepo.Update(txCtx, product)
	})
	if err != nil {
		return err
	}

	s.publish("product.main_image", map[string]interface{}{"product_id": product.ID, "image_id": image.ID})
	return nil
}

// DeleteImage removes an image. When the main image goes away and siblings
// remain, one of them is promoted so the product keeps a main image; with no
// siblings left, Product.ImageURL is cleared. The file is removed only after
// the database delete, best-effort.
func (s *imageService) DeleteImage(ctx context.Context, actor *model.User, productID, imageID uuid.UUID) error {
	product, err := s.loadOwned(ctx, actor, productID)
	if err != nil {
		return err
	}

	image, err := s.imageRepo.FindByID(ctx, imageID)
	if err != nil || image.ProductID != product.ID {
		return ErrNotFound
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.imageRepo.Delete(txCtx, image.ID); err != nil {
			return err
		}
		// The preloaded slice still carries the deleted row; drop it so the
		// product save below cannot hand it back to the database.
		product.Images = nil

		if !image.IsMainImage {
			return nil
		}

		remaining, err := s.imageRepo.ListByProduct(txCtx, product.ID)
		if err != nil {
			return err
		}
		if len(remaining) > 0 {
			if err := s.imageRepo.SetMainFlag(txCtx, remaining[0].ID); err != nil {
				return err
			}
			product.ImageURL = remaining[0].ImageURL
		} else {
			product.ImageURL = ""
		}
		return s.productRepo.Update(txCtx, product)
	})
	if err != nil {
		return err
	}

	s.store.Remove(image.ImageURL)
	s.publish("product.images", map[string]interface{}{"product_id": product.ID, "deleted": image.ID})
	return nil
}
