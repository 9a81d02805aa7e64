package handler

import (
	"net/http"

	"electroshop/internal/middleware"
	"electroshop/internal/service"
	"electroshop/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup, guard *middleware.Guard) {
	categories := router.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.GET("/:id", h.GetCategory)
		categories.POST("", guard.RequireAdmin(), h.CreateCategory)
		categories.PUT("/:id", guard.RequireAdmin(), h.UpdateCategory)
		categories.DELETE("/:id", guard.RequireAdmin(), h.DeleteCategory)
	}
}

// ListCategories returns all categories with their product counts
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {array}  service.CategoryResponse
// @Router       /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetCategory returns a single category
// @Summary      Get category
// @Tags         categories
// @Produce      json
// @Param        id   path      string  true  "Category ID"
// @Success      200  {object}  service.CategoryResponse
// @Failure      404  {object}  response.ErrorBody
// @Router       /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error("Category not found"))
		return
	}

	category, err := h.categoryService.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// CreateCategory creates a category with a unique name
// @Summary      Create category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateCategoryRequest  true  "Category Payload"
// @Success      201      {object}  service.CategoryResponse
// @Failure      400      {object}  response.ErrorBody
// @Router       /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req service.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BindError(err))
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// UpdateCategory updates name/description
// @Summary      Update category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                         true  "Category ID"
// @Param        payload  body      service.UpdateCategoryRequest  true  "Update Payload"
// @Success      200      {object}  service.CategoryResponse
// @Failure      404      {object}  response.ErrorBody
// @Router       /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error("Category not found"))
		return
	}

	var req service.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BindError(err))
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory removes an empty category; categories owning products
// are rejected with a conflict
// @Summary      Delete category
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Category ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  response.ErrorBody
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error("Category not found"))
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
