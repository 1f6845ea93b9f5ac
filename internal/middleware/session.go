package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lessonforge/lessonforge-api/internal/models"
	errs "github.com/lessonforge/lessonforge-api/pkg/errors"
	"github.com/lessonforge/lessonforge-api/pkg/jwt"
)

// AuthUserContextKey is the key used to store the authenticated user in context
const AuthUserContextKey = "auth_user"

var (
	ErrNoAuthUser      = errors.New("authenticated user not found in context")
	ErrInvalidAuthUser = errors.New("invalid authenticated user type")
)

// UserLoader resolves the user a validated token refers to.
type UserLoader interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// SessionMiddleware validates the Bearer token and attaches the full user
// record to the request context. A token is only accepted while the user it
// references still exists.
func SessionMiddleware(tokenManager *jwt.TokenManager, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			_ = c.Error(fmt.Errorf("missing or malformed authorization header")) //nolint:errcheck
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
			c.Abort()
			return
		}

		claims, err := tokenManager.ValidateToken(token)
		if err != nil {
			_ = c.Error(fmt.Errorf("invalid session token: %w", err)) //nolint:errcheck

			if errors.Is(err, jwt.ErrExpiredToken) {
				c.JSON(http.StatusUnauthorized, gin.H{"detail": "Token has expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token"})
			}
			c.Abort()
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			_ = c.Error(fmt.Errorf("session user lookup: %w", err)) //nolint:errcheck

			if errors.Is(err, errs.ErrNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"detail": "User not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to load user"})
			}
			c.Abort()
			return
		}

		c.Set(AuthUserContextKey, user)
		c.Next()
	}
}

// GetAuthUser extracts the authenticated user from context
func GetAuthUser(c *gin.Context) (*models.User, error) {
	val, exists := c.Get(AuthUserContextKey)
	if !exists {
		return nil, ErrNoAuthUser
	}

	user, ok := val.(*models.User)
	if !ok {
		return nil, ErrInvalidAuthUser
	}

	return user, nil
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme match is case-insensitive.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
