package middleware

import (
	"net/http"
	"os"
	"strings"

	"electroshop/internal/model"
	"electroshop/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const userContextKey = "currentUser"

func GetJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("FATAL: JWT_SECRET environment variable is required in production mode")
		}
		secret = "default_super_secret_key" // Development fallback only — DO NOT use in production
	}
	return []byte(secret)
}

// Guard authenticates requests and authorizes them against the persisted
// user record. Token claims are never trusted for authorization: the roles
// are re-derived from the users table on every privileged request, so a
// forged or stale token cannot escalate privileges.
type Guard struct {
	db *gorm.DB
}

func NewGuard(db *gorm.DB) *Guard {
	return &Guard{db: db}
}

// ParseToken validates a raw JWT string and returns the user id it carries
func ParseToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return GetJWTSecret(), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, jwt.ErrTokenUnverifiable
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}
	return uuid.Parse(sub)
}

// authenticate extracts the bearer token, validates it and loads the user
// row behind it. Returns false after writing the 401 response.
func (g *Guard) authenticate(c *gin.Context) (*model.User, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("Authorization is missing"))
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("Invalid authorization format. Expected 'Bearer <token>'"))
		return nil, false
	}
	tokenString := parts[1]

	userID, err := ParseToken(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("Invalid token"))
		return nil, false
	}

	var user model.User
	if err := g.db.First(&user, "id = ?", userID).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("Invalid token"))
		return nil, false
	}

	c.Set(userContextKey, &user)
	return &user, true
}

// Authenticated requires a valid token belonging to an existing user
func (g *Guard) Authenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := g.authenticate(c); !ok {
			return
		}
		c.Next()
	}
}

// RequireAdmin requires the persisted user to hold the admin capability
func (g *Guard) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := g.authenticate(c)
		if !ok {
			return
		}
		if !user.IsAdmin && !user.IsSuperAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error("Access denied: insufficient permissions"))
			return
		}
		c.Next()
	}
}

// RequireSuperAdmin requires the persisted user to hold the super-admin capability
func (g *Guard) RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := g.authenticate(c)
		if !ok {
			return
		}
		if !user.IsSuperAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error("Access denied: insufficient permissions"))
			return
		}
		c.Next()
	}
}

// CurrentUser returns the persisted user record set by the Guard middleware
func CurrentUser(c *gin.Context) *model.User {
	if v, exists := c.Get(userContextKey); exists {
		if user, ok := v.(*model.User); ok {
			return user
		}
	}
	return nil
}
