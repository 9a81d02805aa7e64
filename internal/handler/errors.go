package handler

import (
	"errors"
	"log"
	"net/http"
	"os"

	"electroshop/internal/service"
	"electroshop/pkg/response"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto the HTTP taxonomy:
// validation/conflict 400, bad credentials 401, role mismatch 403,
// missing entity 404, anything unexpected 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrCategoryNotEmpty),
		errors.Is(err, service.ErrLocationNotEmpty),
		errors.Is(err, service.ErrInvalidOrExpiredCode):
		c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, response.Error(err.Error()))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, response.Error(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, response.Error(err.Error()))
	default:
		// Full detail goes to the log; the client gets a sanitized
		// message outside development
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		if os.Getenv("GIN_MODE") == "release" {
			c.JSON(http.StatusInternalServerError, response.Error("Internal server error"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(err.Error()))
	}
}
