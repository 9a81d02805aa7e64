package database

import (
	"log"
	"os"

	"electroshop/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models
	err = db.AutoMigrate(
		&model.Location{},
		&model.Category{},
		&model.User{},
		&model.Product{},
		&model.ProductImage{},
		&model.Configuration{},
	)
	if err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}

// EnsureSuperAdmin creates the initial super-admin account from
// ADMIN_EMAIL / ADMIN_PASSWORD when the users table is empty. Registration
// is admin-gated, so a fresh deployment needs this bootstrap.
func EnsureSuperAdmin(db *gorm.DB) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("WARNING: failed to hash bootstrap admin password:", err)
		return
	}

	admin := &model.User{
		Email:        email,
		Password:     string(hashed),
		Name:         "Super Admin",
		IsAdmin:      true,
		IsSuperAdmin: true,
	}
	if err := db.Create(admin).Error; err != nil {
		log.Println("WARNING: failed to create bootstrap admin:", err)
		return
	}
	log.Println("Bootstrap super-admin created:", email)
}
