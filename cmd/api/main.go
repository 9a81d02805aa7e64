package main

import (
	_ "electroshop/api/swagger" // swagger docs
	"electroshop/internal/database"
	"electroshop/internal/handler"
	"electroshop/internal/middleware"
	"electroshop/internal/notify"
	"electroshop/internal/repository"
	"electroshop/internal/service"
	"electroshop/internal/storage"
	"electroshop/internal/websocket"
	"log"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// @title           ElectroShop Admin API
// @version         1.0
// @description     Catalog, store and back-office API for a consumer electronics retailer.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := getenv("DB_HOST", "localhost")
	dbPort := getenv("DB_PORT", "5432")
	dbUser := getenv("DB_USER", "postgres")
	dbPassword := getenv("DB_PASSWORD", "postgres")
	dbName := getenv("DB_NAME", "electroshop")
	dbSslMode := getenv("DB_SSLMODE", "disable")

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	database.EnsureSuperAdmin(db)

	// Set up WebSocket Hub for back-office dashboards
	wsHub := websocket.NewHub()
	go wsHub.Run()

	uploadDir := getenv("UPLOAD_DIR", "uploads/products")
	store, err := storage.NewLocalStore(uploadDir, "/uploads")
	if err != nil {
		log.Fatalf("Upload directory unavailable: %v", err)
	}

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	imageRepo := repository.NewProductImageRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	configRepo := repository.NewConfigurationRepository(db)

	authService := service.NewAuthService(userRepo, txManager, notify.NewLogSender())
	catalogService := service.NewCatalogService(productRepo, imageRepo, categoryRepo, locationRepo, txManager, store, wsHub)
	imageService := service.NewImageService(productRepo, imageRepo, txManager, store, wsHub)
	categoryService := service.NewCategoryService(categoryRepo, productRepo)
	locationService := service.NewLocationService(locationRepo, productRepo)
	configService := service.NewConfigurationService(configRepo)

	guard := middleware.NewGuard(db)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(catalogService, imageService, store)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	locationHandler := handler.NewLocationHandler(locationService)
	configHandler := handler.NewConfigurationHandler(configService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(getenv("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173"), ",")
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Uploaded product images
	router.Static("/uploads", uploadDir)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, db)
	})

	// Register API Routes
	api := router.Group("")
	authHandler.RegisterRoutes(api, guard)
	productHandler.RegisterRoutes(api, guard)
	categoryHandler.RegisterRoutes(api, guard)
	locationHandler.RegisterRoutes(api, guard)
	configHandler.RegisterRoutes(api, guard)

	port := getenv("PORT", "8080")

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
