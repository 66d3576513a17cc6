package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greeklink/greeklink/internal/app/models"
	"github.com/greeklink/greeklink/internal/app/models/dto"
	"github.com/greeklink/greeklink/internal/pkg/apperrors"
	"github.com/greeklink/greeklink/internal/pkg/auth"
	"github.com/greeklink/greeklink/internal/pkg/logger"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
	toucher    func(c *gin.Context, userID int64)
}

// NewAuthMiddleware creates a new AuthMiddleware. touch, when non-nil,
// is invoked on every authenticated request to keep activity buckets
// fresh.
func NewAuthMiddleware(jwtService *auth.JWTService, touch func(c *gin.Context, userID int64)) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		toucher:    touch,
	}
}

// JWTAuth middleware for JWT token validation
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := m.tokenFromRequest(c)
		if tokenString == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			errorCode := dto.ErrorCodeInvalidToken
			errorDetails := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) || errors.Is(err, apperrors.ErrTokenExpired) {
				errorCode = dto.ErrorCodeExpiredToken
				errorDetails = "Token has expired"
			}

			errorDetail := dto.NewErrorDetail(errorCode, "Authentication failed")
			errorDetail = errorDetail.WithDetails(errorDetails)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		m.setIdentity(c, claims)
		c.Next()
	}
}

// OptionalViewer resolves the viewer identity when a token is present
// but never rejects the request. The directory is readable anonymously;
// identity only affects redaction and mutual connections.
func (m *AuthMiddleware) OptionalViewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := m.tokenFromRequest(c)
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			// Silent downgrade to anonymous
			logger.Debug().Err(err).Msg("Optional auth token rejected, continuing anonymously")
			c.Next()
			return
		}

		m.setIdentity(c, claims)
		c.Next()
	}
}

// RoleRequired middleware to check if user has required role
func (m *AuthMiddleware) RoleRequired(requiredRole models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("User role not found")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		roleStr, ok := role.(string)
		if !ok || roleStr != string(requiredRole) {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied")
			errorDetail = errorDetail.WithDetails("You don't have sufficient permissions for this operation")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}

func (m *AuthMiddleware) tokenFromRequest(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		token, err := auth.ExtractBearerToken(authHeader)
		if err == nil {
			return token
		}
	}

	// Browser clients may carry the access token in a session cookie
	if cookie, err := c.Cookie("session"); err == nil && cookie != "" {
		return cookie
	}

	return ""
}

func (m *AuthMiddleware) setIdentity(c *gin.Context, claims *auth.Claims) {
	c.Set("userID", claims.UserID)
	c.Set("email", claims.Email)
	c.Set("role", claims.Role)

	if m.toucher != nil {
		m.toucher(c, claims.UserID)
	}
}

// ViewerFromContext builds the viewer identity from whatever the auth
// middleware resolved. Missing identity yields the anonymous viewer.
func ViewerFromContext(c *gin.Context) models.Viewer {
	userID, ok := c.Get("userID")
	if !ok {
		return models.Viewer{}
	}
	id, ok := userID.(int64)
	if !ok {
		return models.Viewer{}
	}

	role := models.RoleMember
	if r, ok := c.Get("role"); ok {
		if rs, ok := r.(string); ok {
			role = models.Role(rs)
		}
	}

	return models.Viewer{UserID: id, Role: role}
}

// UserIDFromContext extracts the authenticated member id
func UserIDFromContext(c *gin.Context) (int64, bool) {
	userID, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	id, ok := userID.(int64)
	return id, ok
}

// IsAdminFromContext reports whether the authenticated member is an admin
func IsAdminFromContext(c *gin.Context) bool {
	r, ok := c.Get("role")
	if !ok {
		return false
	}
	rs, ok := r.(string)
	return ok && rs == string(models.RoleAdmin)
}
