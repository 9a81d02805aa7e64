package service

import (
	"context"
	"errors"
	"testing"

	"electroshop/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type imageFixture struct {
	productRepo *fakeProductRepo
	imageRepo   *fakeImageRepo
	store       *fakeStore
	svc         ImageService
	product     *model.Product
}

func newImageFixture() *imageFixture {
	f := &imageFixture{
		productRepo: newFakeProductRepo(),
		imageRepo:   newFakeImageRepo(),
		store:       &fakeStore{},
	}
	f.productRepo.imageRepo = f.imageRepo
	f.svc = NewImageService(f.productRepo, f.imageRepo, &fakeTxManager{}, f.store, nil)
	f.product = f.productRepo.add(&model.Product{
		Name:       "Laptop",
		Price:      decimal.NewFromInt(1200000),
		CategoryID: uuid.New(),
		LocationID: uuid.New(),
	})
	return f
}

func (f *imageFixture) attach(t *testing.T, urls ...string) []ProductImageResponse {
	t.Helper()
	created, err := f.svc.Attach(context.Background(), superAdmin(), f.product.ID, urls)
	if err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	return created
}

func TestAttachFirstImageBecomesMain(t *testing.T) {
	f := newImageFixture()

	created := f.attach(t, "/uploads/a.jpg", "/uploads/b.jpg")
	if len(created) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(created))
	}
	if !created[0].IsMainImage || created[1].IsMainImage {
		t.Fatal("only the first attached image may be main")
	}

	mains := f.imageRepo.mainImages(f.product.ID)
	if len(mains) != 1 {
		t.Fatalf("expected exactly one main image, got %d", len(mains))
	}
	if f.product.ImageURL != "/uploads/a.jpg" {
		t.Fatalf("product image_url not mirrored: %q", f.product.ImageURL)
	}
}

func TestAttachToProductWithImagesKeepsMain(t *testing.T) {
	f := newImageFixture()
	f.attach(t, "/uploads/a.jpg")

	created := f.attach(t, "/uploads/b.jpg", "/uploads/c.jpg")
	for _, img := range created {
		if img.IsMainImage {
			t.Fatal("later attachments must not steal the main flag")
		}
	}
	if f.product.ImageURL != "/uploads/a.jpg" {
		t.Fatalf("product image_url changed to %q", f.product.ImageURL)
	}
	if mains := f.imageRepo.mainImages(f.product.ID); len(mains) != 1 {
		t.Fatalf("expected exactly one main image, got %d", len(mains))
	}
}

func TestSetMainMovesFlagAndMirrorsURL(t *testing.T) {
	f := newImageFixture()
	created := f.attach(t, "/uploads/a.jpg", "/uploads/b.jpg", "/uploads/c.jpg")

	if err := f.svc.SetMain(context.Background(), superAdmin(), f.product.ID, created[2].ID); err != nil {
		t.Fatalf("set main failed: %v", err)
	}

	mains := f.imageRepo.mainImages(f.product.ID)
	if len(mains) != 1 {
		t.Fatalf("expected exactly one main image, got %d", len(mains))
	}
	if mains[0].ID != created[2].ID {
		t.Fatal("wrong image holds the main flag")
	}
	if f.product.ImageURL != "/uploads/c.jpg" {
		t.Fatalf("product image_url not mirrored: %q", f.product.ImageURL)
	}
}

func TestSetMainRejectsForeignImage(t *testing.T) {
	f := newImageFixture()
	f.attach(t, "/uploads/a.jpg")

	other := f.productRepo.add(&model.Product{Name: "Other", LocationID: uuid.New()})
	foreign := &model.ProductImage{ProductID: other.ID, ImageURL: "/uploads/z.jpg"}
	_ = f.imageRepo.Create(context.Background(), foreign)

	err := f.svc.SetMain(context.Background(), superAdmin(), f.product.ID, foreign.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another product's image, got %v", err)
	}
	if f.product.ImageURL != "/uploads/a.jpg" {
		t.Fatal("rejected request must not touch the product")
	}
}

func TestDeleteMainPromotesSibling(t *testing.T) {
	f := newImageFixture()
	created := f.attach(t, "/uploads/a.jpg", "/uploads/b.jpg", "/uploads/c.jpg")

	if err := f.svc.DeleteImage(context.Background(), superAdmin(), f.product.ID, created[0].ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	mains := f.imageRepo.mainImages(f.product.ID)
	if len(mains) != 1 {
		t.Fatalf("expected exactly one main image after promotion, got %d", len(mains))
	}
	if mains[0].ImageURL != "/uploads/b.jpg" {
		t.Fatalf("expected the oldest sibling promoted, got %q", mains[0].ImageURL)
	}
	if f.product.ImageURL != "/uploads/b.jpg" {
		t.Fatalf("product image_url not updated: %q", f.product.ImageURL)
	}
	if len(f.store.removed) != 1 || f.store.removed[0] != "/uploads/a.jpg" {
		t.Fatalf("expected the deleted file removed from storage, got %v", f.store.removed)
	}
}

func TestDeleteMainImageRowStaysDeleted(t *testing.T) {
	f := newImageFixture()
	created := f.attach(t, "/uploads/a.jpg", "/uploads/b.jpg")

	if err := f.svc.DeleteImage(context.Background(), superAdmin(), f.product.ID, created[0].ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	// The product save inside the delete transaction must not write the
	// deleted row back through association auto-save
	images, _ := f.imageRepo.ListByProduct(context.Background(), f.product.ID)
	if len(images) != 1 {
		t.Fatalf("expected 1 remaining image row, got %d", len(images))
	}
	if images[0].ID != created[1].ID {
		t.Fatal("the surviving row must be the sibling, not the deleted image")
	}
	if mains := f.imageRepo.mainImages(f.product.ID); len(mains) != 1 {
		t.Fatalf("expected exactly 1 main image, got %d", len(mains))
	}
}

func TestDeleteNonMainLeavesMainAlone(t *testing.T) {
	f := newImageFixture()
	created := f.attach(t, "/uploads/a.jpg", "/uploads/b.jpg")

	if err := f.svc.DeleteImage(context.Background(), superAdmin(), f.product.ID, created[1].ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if f.product.ImageURL != "/uploads/a.jpg" {
		t.Fatal("deleting a non-main image must not touch image_url")
	}
	if mains := f.imageRepo.mainImages(f.product.ID); len(mains) != 1 {
		t.Fatalf("expected exactly one main image, got %d", len(mains))
	}
}

func TestDeleteLastImageClearsURL(t *testing.T) {
	f := newImageFixture()
	created := f.attach(t, "/uploads/a.jpg")

	if err := f.svc.DeleteImage(context.Background(), superAdmin(), f.product.ID, created[0].ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if f.product.ImageURL != "" {
		t.Fatalf("image_url must be cleared when no images remain, got %q", f.product.ImageURL)
	}
	if images, _ := f.imageRepo.ListByProduct(context.Background(), f.product.ID); len(images) != 0 {
		t.Fatal("image rows must be gone")
	}
}

func TestImageRoutesEnforceLocationAccess(t *testing.T) {
	f := newImageFixture()
	stranger := locationAdmin(uuid.New())

	_, err := f.svc.Attach(context.Background(), stranger, f.product.ID, []string{"/uploads/a.jpg"})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	owner := locationAdmin(f.product.LocationID)
	if _, err := f.svc.Attach(context.Background(), owner, f.product.ID, []string{"/uploads/a.jpg"}); err != nil {
		t.Fatalf("owning admin must pass the location check: %v", err)
	}
}
