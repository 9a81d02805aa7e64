package service

import (
	"context"
	"errors"
	"mime/multipart"

	"electroshop/internal/model"
	"electroshop/internal/repository"

	"github.com/google/uuid"
)

var errFakeNotFound = errors.New("record not found")

// fakeTxManager runs the callback on the same context; the services under
// test only need the boundary, not a real transaction
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

// --- users ---

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (f *fakeUserRepo) add(user *model.User) *model.User {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	f.add(user)
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, errFakeNotFound
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, errFakeNotFound
}

func (f *fakeUserRepo) FindByWhatsapp(_ context.Context, number string) (*model.User, error) {
	for _, user := range f.users {
		if user.WhatsappNumber == number {
			return user, nil
		}
	}
	return nil, errFakeNotFound
}

func (f *fakeUserRepo) List(_ context.Context, page, limit int) ([]model.User, int64, error) {
	users := make([]model.User, 0, len(f.users))
	for _, user := range f.users {
		users = append(users, *user)
	}
	return users, int64(len(users)), nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return errFakeNotFound
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.users, id)
	return nil
}

// --- products ---

type fakeProductRepo struct {
	products map[uuid.UUID]*model.Product

	// When linked, FindByID preloads Images from the image repo and Update
	// mimics gorm's association auto-save: every entry of the passed Images
	// slice is upserted (inserted when its row is missing, left alone when
	// it still exists). Services must therefore never hand Update a slice
	// carrying rows deleted in the same transaction.
	imageRepo *fakeImageRepo

	// staged listing results plus a record of the last filter applied
	listResult []model.Product
	listTotal  int64
	lastFilter repository.ProductFilter
	lastOffset int
	lastLimit  int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (f *fakeProductRepo) add(product *model.Product) *model.Product {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	f.products[product.ID] = product
	return product
}

func (f *fakeProductRepo) Create(_ context.Context, product *model.Product) error {
	f.add(product)
	return nil
}

func (f *fakeProductRepo) Update(_ context.Context, product *model.Product) error {
	if _, ok := f.products[product.ID]; !ok {
		return errFakeNotFound
	}
	if f.imageRepo != nil {
		for i := range product.Images {
			img := product.Images[i]
			if _, ok := f.imageRepo.images[img.ID]; !ok {
				f.imageRepo.images[img.ID] = &img
				f.imageRepo.order = append(f.imageRepo.order, img.ID)
			}
		}
	}
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	if product, ok := f.products[id]; ok {
		if f.imageRepo != nil {
			product.Images, _ = f.imageRepo.ListByProduct(ctx, id)
		}
		return product, nil
	}
	return nil, errFakeNotFound
}

func (f *fakeProductRepo) List(_ context.Context, filter repository.ProductFilter, offset, limit int) ([]model.Product, int64, error) {
	f.lastFilter = filter
	f.lastOffset = offset
	f.lastLimit = limit
	return f.listResult, f.listTotal, nil
}

func (f *fakeProductRepo) CountByCategory(_ context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	for _, product := range f.products {
		if product.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (f *fakeProductRepo) CountByLocation(_ context.Context, locationID uuid.UUID) (int64, error) {
	var count int64
	for _, product := range f.products {
		if product.LocationID == locationID {
			count++
		}
	}
	return count, nil
}

// --- product images ---

type fakeImageRepo struct {
	images map[uuid.UUID]*model.ProductImage
	order  []uuid.UUID // preserves attach order for ListByProduct
}

func newFakeImageRepo() *fakeImageRepo {
	return &fakeImageRepo{images: make(map[uuid.UUID]*model.ProductImage)}
}

func (f *fakeImageRepo) Create(_ context.Context, image *model.ProductImage) error {
	if image.ID == uuid.Nil {
		image.ID = uuid.New()
	}
	f.images[image.ID] = image
	f.order = append(f.order, image.ID)
	return nil
}

func (f *fakeImageRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ProductImage, error) {
	if image, ok := f.images[id]; ok {
		return image, nil
	}
	return nil, errFakeNotFound
}

func (f *fakeImageRepo) ListByProduct(_ context.Context, productID uuid.UUID) ([]model.ProductImage, error) {
	var images []model.ProductImage
	for _, id := range f.order {
		if image, ok := f.images[id]; ok && image.ProductID == productID {
			images = append(images, *image)
		}
	}
	return images, nil
}

func (f *fakeImageRepo) ClearMainFlags(_ context.Context, productID uuid.UUID) error {
	for _, image := range f.images {
		if image.ProductID == productID {
			image.IsMainImage = false
		}
	}
	return nil
}

func (f *fakeImageRepo) SetMainFlag(_ context.Context, imageID uuid.UUID) error {
	image, ok := f.images[imageID]
	if !ok {
		return errFakeNotFound
	}
	image.IsMainImage = true
	return nil
}

func (f *fakeImageRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.images, id)
	return nil
}

func (f *fakeImageRepo) DeleteByProduct(_ context.Context, productID uuid.UUID) error {
	for id, image := range f.images {
		if image.ProductID == productID {
			delete(f.images, id)
		}
	}
	return nil
}

func (f *fakeImageRepo) mainImages(productID uuid.UUID) []*model.ProductImage {
	var mains []*model.ProductImage
	for _, image := range f.images {
		if image.ProductID == productID && image.IsMainImage {
			mains = append(mains, image)
		}
	}
	return mains
}

// --- categories ---

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*model.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uuid.UUID]*model.Category)}
}

func (f *fakeCategoryRepo) add(category *model.Category) *model.Category {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	f.categories[category.ID] = category
	return category
}

func (f *fakeCategoryRepo) Create(_ context.Context, category *model.Category) error {
	f.add(category)
	return nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, category *model.Category) error {
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.categories, id)
	return nil
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	if category, ok := f.categories[id]; ok {
		return category, nil
	}
	return nil, errFakeNotFound
}

func (f *fakeCategoryRepo) FindByName(_ context.Context, name string) (*model.Category, error) {
	for _, category := range f.categories {
		if category.Name == name {
			return category, nil
		}
	}
	return nil, errFakeNotFound
}

func (f *fakeCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	categories := make([]model.Category, 0, len(f.categories))
	for _, category := range f.categories {
		categories = append(categories, *category)
	}
	return categories, nil
}

func (f *fakeCategoryRepo) ProductCounts(_ context.Context) (map[uuid.UUID]int64, error) {
	return map[uuid.UUID]int64{}, nil
}

// --- locations ---

type fakeLocationRepo struct {
	locations map[uuid.UUID]*model.Location
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{locations: make(map[uuid.UUID]*model.Location)}
}

func (f *fakeLocationRepo) add(location *model.Location) *model.Location {
	if location.ID == uuid.Nil {
		location.ID = uuid.New()
	}
	f.locations[location.ID] = location
	return location
}

func (f *fakeLocationRepo) Create(_ context.Context, location *model.Location) error {
	f.add(location)
	return nil
}

func (f *fakeLocationRepo) Update(_ context.Context, location *model.Location) error {
	f.locations[location.ID] = location
	return nil
}

func (f *fakeLocationRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.locations, id)
	return nil
}

func (f *fakeLocationRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Location, error) {
	if location, ok := f.locations[id]; ok {
		return location, nil
	}
	return nil, errFakeNotFound
}

func (f *fakeLocationRepo) List(_ context.Context) ([]model.Location, error) {
	locations := make([]model.Location, 0, len(f.locations))
	for _, location := range f.locations {
		locations = append(locations, *location)
	}
	return locations, nil
}

// --- configurations ---

type fakeConfigRepo struct {
	configs map[uuid.UUID]*model.Configuration
}

func newFakeConfigRepo() *fakeConfigRepo {
	return &fakeConfigRepo{configs: make(map[uuid.UUID]*model.Configuration)}
}

func (f *fakeConfigRepo) Create(_ context.Context, config *model.Configuration) error {
	if config.ID == uuid.Nil {
		config.ID = uuid.New()
	}
	f.configs[config.ID] = config
	return nil
}

func (f *fakeConfigRepo) Update(_ context.Context, config *model.Configuration) error {
	f.configs[config.ID] = config
	return nil
}

func (f *fakeConfigRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.configs, id)
	return nil
}

func (f *fakeConfigRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Configuration, error) {
	if config, ok := f.configs[id]; ok {
		return config, nil
	}
	return nil, errFakeNotFound
}

func (f *fakeConfigRepo) FindByKey(_ context.Context, key string) (*model.Configuration, error) {
	for _, config := range f.configs {
		if config.ConfigKey == key {
			return config, nil
		}
	}
	return nil, errFakeNotFound
}

func (f *fakeConfigRepo) List(_ context.Context) ([]model.Configuration, error) {
	configs := make([]model.Configuration, 0, len(f.configs))
	for _, config := range f.configs {
		configs = append(configs, *config)
	}
	return configs, nil
}

// --- storage ---

type fakeStore struct {
	removed []string
}

func (f *fakeStore) Save(_ *multipart.FileHeader) (string, error) { return "", nil }

func (f *fakeStore) Remove(url string) {
	f.removed = append(f.removed, url)
}

// --- notifier ---

type fakeSender struct {
	numbers []string
	codes   []string
}

func (f *fakeSender) SendResetCode(_ context.Context, number, code string) error {
	f.numbers = append(f.numbers, number)
	f.codes = append(f.codes, code)
	return nil
}
