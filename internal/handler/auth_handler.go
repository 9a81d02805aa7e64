package handler

import (
	"net/http"

	"electroshop/internal/middleware"
	"electroshop/internal/service"
	"electroshop/pkg/pagination"
	"electroshop/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler sets up the routing dependencies for auth endpoints
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes binds the endpoints to the gin RouterGroup
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, guard *middleware.Guard) {
	auth := router.Group("/auth")
	{
		// Public routes
		auth.POST("/login", h.Login)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/verify-reset-code", h.VerifyResetCode)
		auth.POST("/reset-password", h.ResetPassword)

		// Authenticated routes
		auth.GET("/me", guard.Authenticated(), h.GetMe)
		auth.PUT("/profile", guard.Authenticated(), h.UpdateProfile)

		// Admin routes
		auth.POST("/register", guard.RequireAdmin(), h.Register)

		// User management is super-admin territory
		auth.GET("/users", guard.RequireSuperAdmin(), h.ListUsers)
		auth.DELETE("/users/:id", guard.RequireSuperAdmin(), h.DeleteUser)
	}
}

// Login authenticates by email and password, returning a JWT token
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.LoginRequest  true  "Login Credentials"
// @Success      200      {object}  service.LoginResponse
// @Failure      400      {object}  response.ErrorBody
// @Failure      401      {object}  response.ErrorBody
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BindError(err))
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Register creates a new admin account
// @Summary      Register admin
// @Description  Non-super-admins can only register admins for their own store
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.RegisterRequest  true  "New Admin Payload"
// @Success      201      {object}  service.UserResponse
// @Failure      400      {object}  response.ErrorBody
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BindError(err))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// GetMe returns the currently authenticated user
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  service.UserResponse
// @Failure      401  {object}  response.ErrorBody
// @Router       /auth/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	user, err := h.authService.GetUser(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile updates the caller's own profile
// @Summary      Update profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.UpdateProfileRequest  true  "Profile Payload"
// @Success      200      {object}  service.UserResponse
// @Failure      400      {object}  response.ErrorBody
// @Router       /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BindError(err))
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), middleware.CurrentUser(c).ID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// ForgotPassword issues a time-limited reset code delivered out of band.
// The response is a generic acknowledgement whether or not the contact
// exists, and the code itself is never part of the response body.
// @Summary      Request password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.ForgotPasswordRequest  true  "Contact"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  response.ErrorBody
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req service.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BindError(err))
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "If the number is registered, a reset code has been sent"})
}

// VerifyResetCode checks a reset code without consuming it
// @Summary      Verify reset code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.VerifyResetCodeRequest  true  "Code"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  response.ErrorBody
// @Router       /auth/verify-reset-code [post]
func (h *AuthHandler) VerifyResetCode(c *gin.Context) {
	var req service.VerifyResetCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BindError(err))
		return
	}

	if err := h.authService.VerifyResetCode(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Code is valid"})
}

// ResetPassword replaces the password when the code is still valid
// @Summary      Reset password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.ResetPasswordRequest  true  "New Password"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  response.ErrorBody
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req service.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BindError(err))
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset"})
}

// ListUsers pages through admin accounts
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page"
// @Param        limit  query     int  false  "Limit"
// @Success      200    {object}  map[string]interface{}
// @Router       /auth/users [get]
func (h *AuthHandler) ListUsers(c *gin.Context) {
	params := pagination.Parse(c)
	users, total, err := h.authService.ListUsers(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":      users,
		"pagination": pagination.NewMeta(total, params),
	})
}

// DeleteUser removes an admin account
// @Summary      Delete user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  response.ErrorBody
// @Router       /auth/users/{id} [delete]
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid user id"))
		return
	}

	if err := h.authService.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
