package handler

import (
	"net/http"

	"electroshop/internal/middleware"
	"electroshop/internal/service"
	"electroshop/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LocationHandler struct {
	locationService service.LocationService
}

func NewLocationHandler(locationService service.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// RegisterRoutes binds location endpoints; managing stores is super-admin territory
func (h *LocationHandler) RegisterRoutes(router *gin.RouterGroup, guard *middleware.Guard) {
	locations := router.Group("/locations")
	{
		locations.GET("", h.ListLocations)
		locations.GET("/:id", h.GetLocation)
		locations.POST("", guard.RequireSuperAdmin(), h.CreateLocation)
		locations.PUT("/:id", guard.RequireSuperAdmin(), h.UpdateLocation)
		locations.DELETE("/:id", guard.RequireSuperAdmin(), h.DeleteLocation)
	}
}

// ListLocations returns all stores
// @Summary      List locations
// @Tags         locations
// @Produce      json
// @Success      200  {array}  service.LocationResponse
// @Router       /locations [get]
func (h *LocationHandler) ListLocations(c *gin.Context) {
	locations, err := h.locationService.ListLocations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": locations})
}

// GetLocation returns a single store
// @Summary      Get location
// @Tags         locations
// @Produce      json
// @Param        id   path      string  true  "Location ID"
// @Success      200  {object}  service.LocationResponse
// @Failure      404  {object}  response.ErrorBody
// @Router       /locations/{id} [get]
func (h *LocationHandler) GetLocation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error("Location not found"))
		return
	}

	location, err := h.locationService.GetLocation(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, location)
}

// CreateLocation creates a store
// @Summary      Create location
// @Tags         locations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateLocationRequest  true  "Location Payload"
// @Success      201      {object}  service.LocationResponse
// @Failure      400      {object}  response.ErrorBody
// @Router       /locations [post]
func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var req service.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BindError(err))
		return
	}

	location, err := h.locationService.CreateLocation(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, location)
}

// UpdateLocation applies a partial update to a store
// @Summary      Update location
// @Tags         locations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                         true  "Location ID"
// @Param        payload  body      service.UpdateLocationRequest  true  "Update Payload"
// @Success      200      {object}  service.LocationResponse
// @Failure      404      {object}  response.ErrorBody
// @Router       /locations/{id} [put]
func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error("Location not found"))
		return
	}

	var req service.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BindError(err))
		return
	}

	location, err := h.locationService.UpdateLocation(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, location)
}

// DeleteLocation removes a store with no products
// @Summary      Delete location
// @Tags         locations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Location ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  response.ErrorBody
// @Router       /locations/{id} [delete]
func (h *LocationHandler) DeleteLocation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error("Location not found"))
		return
	}

	if err := h.locationService.DeleteLocation(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Location deleted"})
}
