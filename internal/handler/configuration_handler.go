package handler

import (
	"net/http"

	"electroshop/internal/middleware"
	"electroshop/internal/service"
	"electroshop/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ConfigurationHandler struct {
	configService service.ConfigurationService
}

func NewConfigurationHandler(configService service.ConfigurationService) *ConfigurationHandler {
	return &ConfigurationHandler{configService: configService}
}

func (h *ConfigurationHandler) RegisterRoutes(router *gin.RouterGroup, guard *middleware.Guard) {
	configurations := router.Group("/configurations")
	{
		configurations.GET("", h.ListConfigurations)
		configurations.GET("/:key", h.GetConfiguration)
		configurations.POST("", guard.RequireAdmin(), h.CreateConfiguration)
		configurations.PUT("/:id", guard.RequireAdmin(), h.UpdateConfiguration)
		configurations.DELETE("/:id", guard.RequireAdmin(), h.DeleteConfiguration)
	}
}

// ListConfigurations returns every stored key/value pair
// @Summary      List configurations
// @Tags         configurations
// @Produce      json
// @Success      200  {array}  service.ConfigurationResponse
// @Router       /configurations [get]
func (h *ConfigurationHandler) ListConfigurations(c *gin.Context) {
	configs, err := h.configService.ListConfigurations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"configurations": configs})
}

// GetConfiguration reads one key; a missing key yields an empty placeholder
// @Summary      Get configuration
// @Tags         configurations
// @Produce      json
// @Param        key  path      string  true  "Config Key"
// @Success      200  {object}  service.ConfigurationResponse
// @Router       /configurations/{key} [get]
func (h *ConfigurationHandler) GetConfiguration(c *gin.Context) {
	config, err := h.configService.GetConfiguration(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, config)
}

// CreateConfiguration stores a new key/value pair
// @Summary      Create configuration
// @Tags         configurations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateConfigurationRequest  true  "Configuration Payload"
// @Success      201      {object}  service.ConfigurationResponse
// @Failure      400      {object}  response.ErrorBody
// @Router       /configurations [post]
func (h *ConfigurationHandler) CreateConfiguration(c *gin.Context) {
	var req service.CreateConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BindError(err))
		return
	}

	config, err := h.configService.CreateConfiguration(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, config)
}

// UpdateConfiguration changes a stored value or description
// @Summary      Update configuration
// @Tags         configurations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                              true  "Configuration ID"
// @Param        payload  body      service.UpdateConfigurationRequest  true  "Update Payload"
// @Success      200      {object}  service.ConfigurationResponse
// @Failure      404      {object}  response.ErrorBody
// @Router       /configurations/{id} [put]
func (h *ConfigurationHandler) UpdateConfiguration(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error("Configuration not found"))
		return
	}

	var req service.UpdateConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BindError(err))
		return
	}

	config, err := h.configService.UpdateConfiguration(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, config)
}

// DeleteConfiguration removes a key
// @Summary      Delete configuration
// @Tags         configurations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Configuration ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  response.ErrorBody
// @Router       /configurations/{id} [delete]
func (h *ConfigurationHandler) DeleteConfiguration(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error("Configuration not found"))
		return
	}

	if err := h.configService.DeleteConfiguration(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Configuration deleted"})
}
