package handler

import (
	"net/http"
	"strings"

	"electroshop/internal/middleware"
	"electroshop/internal/service"
	"electroshop/internal/storage"
	"electroshop/pkg/pagination"
	"electroshop/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	maxUploadFiles    = 5
	maxUploadFileSize = 5 << 20 // 5MB per file
)

type ProductHandler struct {
	catalogService service.CatalogService
	imageService   service.ImageService
	store          storage.Store
}

func NewProductHandler(catalogService service.CatalogService, imageService service.ImageService, store storage.Store) *ProductHandler {
	return &ProductHandler{catalogService: catalogService, imageService: imageService, store: store}
}

// RegisterRoutes binds the endpoints to the gin RouterGroup
func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup, guard *middleware.Guard) {
	// The admin listing lives outside /products so it never collides with
	// the :id wildcard in gin's route tree
	router.GET("/admin/products", guard.RequireAdmin(), h.ListProductsForAdmin)

	products := router.Group("/products")
	{
		// Public catalog reads
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)

		// Admin surface
		products.POST("", guard.RequireAdmin(), h.CreateProduct)
		products.PUT("/:id", guard.RequireAdmin(), h.UpdateProduct)
		products.DELETE("/:id", guard.RequireAdmin(), h.DeleteProduct)
		products.PATCH("/:id/toggle-promotion", guard.RequireAdmin(), h.TogglePromotion)
		products.PATCH("/:id/stock", guard.RequireAdmin(), h.UpdateStock)

		// Image attachments
		products.POST("/:id/images", guard.RequireAdmin(), h.UploadImages)
		products.PATCH("/:id/images/:imageId/main", guard.RequireAdmin(), h.SetMainImage)
		products.DELETE("/:id/images/:imageId", guard.RequireAdmin(), h.DeleteImage)
	}
}

// ListProducts returns one filtered, paginated catalog page
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        page        query     int     false  "Page"
// @Param        limit       query     int     false  "Limit"
// @Param        categoryId  query     string  false  "Category filter"
// @Param        locationId  query     string  false  "Location filter"
// @Param        minPrice    query     number  false  "Minimum price"
// @Param        maxPrice    query     number  false  "Maximum price"
// @Param        search      query     string  false  "Name substring (case-insensitive)"
// @Param        sortBy      query     string  false  "createdAt, name, price or quantity"
// @Param        orderBy     query     string  false  "asc or desc"
// @Success      200         {object}  service.ProductListResult
// @Failure      400         {object}  response.ErrorBody
// @Router       /products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var q service.ListProductsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, response.BindError(err))
		return
	}

	result, err := h.catalogService.ListProducts(c.Request.Context(), q, pagination.Parse(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListProductsForAdmin is the location-scoped admin variant of the listing
// @Summary      List products (admin)
// @Description  Non-super-admins only see their own store's products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  service.ProductListResult
// @Router       /admin/products [get]
func (h *ProductHandler) ListProductsForAdmin(c *gin.Context) {
	var q service.ListProductsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, response.BindError(err))
		return
	}

	result, err := h.catalogService.ListProductsForAdmin(c.Request.Context(), middleware.CurrentUser(c), q, pagination.Parse(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetProduct returns a single product with nested category, location and images
// @Summary      Get product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  service.ProductResponse
// @Failure      404  {object}  response.ErrorBody
// @Router       /products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error("Product not found"))
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// CreateProduct creates a catalog item
// @Summary      Create product
// @Description  Non-super-admins are forced to their own location server-side
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateProductRequest  true  "Product Payload"
// @Success      201      {object}  service.ProductResponse
// @Failure      400      {object}  response.ErrorBody
// @Router       /products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BindError(err))
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// UpdateProduct applies a partial update to a product
// @Summary      Update product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                        true  "Product ID"
// @Param        payload  body      service.UpdateProductRequest  true  "Update Payload"
// @Success      200      {object}  service.ProductResponse
// @Failure      404      {object}  response.ErrorBody
// @Router       /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error("Product not found"))
		return
	}

	var req service.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BindError(err))
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), middleware.CurrentUser(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product, its image rows and then its files
// @Summary      Delete product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  response.ErrorBody
// @Router       /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error("Product not found"))
		return
	}

	if err := h.catalogService.DeleteProduct(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// TogglePromotion enables or disables a product promotion
// @Summary      Toggle promotion
// @Description  Enabling requires promotion_price; disabling clears price and end date
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                          true  "Product ID"
// @Param        payload  body      service.TogglePromotionRequest  true  "Promotion Payload"
// @Success      200      {object}  service.ProductResponse
// @Failure      400      {object}  response.ErrorBody
// @Router       /products/{id}/toggle-promotion [patch]
func (h *ProductHandler) TogglePromotion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error("Product not found"))
		return
	}

	var req service.TogglePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BindError(err))
		return
	}

	product, err := h.catalogService.TogglePromotion(c.Request.Context(), middleware.CurrentUser(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// UpdateStock sets the quantity and the explicit in-stock flag
// @Summary      Update stock
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                     true  "Product ID"
// @Param        payload  body      service.UpdateStockRequest true  "Stock Payload"
// @Success      200      {object}  service.ProductResponse
// @Router       /products/{id}/stock [patch]
func (h *ProductHandler) UpdateStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error("Product not found"))
		return
	}

	var req service.UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BindError(err))
		return
	}

	product, err := h.catalogService.UpdateStock(c.Request.Context(), middleware.CurrentUser(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// UploadImages attaches up to 5 image files to a product
// @Summary      Upload product images
// @Description  Multipart field "images"; max 5 files, images only, 5MB each
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true  "Product ID"
// @Param        images  formData  file    true  "Image files"
// @Success      201     {object}  map[string]interface{}
// @Failure      400     {object}  response.ErrorBody
// @Router       /products/{id}/images [post]
func (h *ProductHandler) UploadImages(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error("Product not found"))
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid multipart form: "+err.Error()))
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, response.Error("No image files supplied"))
		return
	}
	if len(files) > maxUploadFiles {
		c.JSON(http.StatusBadRequest, response.Error("At most 5 images per upload"))
		return
	}
	for _, file := range files {
		if file.Size > maxUploadFileSize {
			c.JSON(http.StatusBadRequest, response.Error("Image "+file.Filename+" exceeds the 5MB limit"))
			return
		}
		if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
			c.JSON(http.StatusBadRequest, response.Error("File "+file.Filename+" is not an image"))
			return
		}
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, err := h.store.Save(file)
		if err != nil {
			// Drop whatever we already wrote before responding
			for _, u := range urls {
				h.store.Remove(u)
			}
			respondError(c, err)
			return
		}
		urls = append(urls, url)
	}

	images, err := h.imageService.Attach(c.Request.Context(), middleware.CurrentUser(c), id, urls)
	if err != nil {
		for _, u := range urls {
			h.store.Remove(u)
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"images": images})
}

// SetMainImage promotes one image to main
// @Summary      Set main image
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Product ID"
// @Param        imageId  path      string  true  "Image ID"
// @Success      200      {object}  map[string]string
// @Failure      404      {object}  response.ErrorBody
// @Router       /products/{id}/images/{imageId}/main [patch]
func (h *ProductHandler) SetMainImage(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error("Product not found"))
		return
	}
	imageID, err := uuid.Parse(c.Param("imageId"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error("Image not found"))
		return
	}

	if err := h.imageService.SetMain(c.Request.Context(), middleware.CurrentUser(c), productID, imageID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Main image updated"})
}

// DeleteImage removes an image, reassigning main if needed
// @Summary      Delete product image
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Product ID"
// @Param        imageId  path      string  true  "Image ID"
// @Success      200      {object}  map[string]string
// @Failure      404      {object}  response.ErrorBody
// @Router       /products/{id}/images/{imageId} [delete]
func (h *ProductHandler) DeleteImage(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error("Product not found"))
		return
	}
	imageID, err := uuid.Parse(c.Param("imageId"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error("Image not found"))
		return
	}

	if err := h.imageService.DeleteImage(c.Request.Context(), middleware.CurrentUser(c), productID, imageID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
}
