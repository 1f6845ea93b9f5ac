package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lessonforge/lessonforge-api/internal/models"
	errs "github.com/lessonforge/lessonforge-api/pkg/errors"
	"github.com/lessonforge/lessonforge-api/pkg/jwt"
	"github.com/lessonforge/lessonforge-api/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)

	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

// stubUserLoader is a canned UserLoader for middleware tests.
type stubUserLoader struct {
	user   *models.User
	err    error
	lastID string
}

func (s *stubUserLoader) GetByID(_ context.Context, id string) (*models.User, error) {
	s.lastID = id
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func sessionRouter(tokenManager *jwt.TokenManager, users UserLoader) *gin.Engine {
	router := gin.New()
	router.Use(SessionMiddleware(tokenManager, users))
	router.GET("/protected", func(c *gin.Context) {
		user, err := GetAuthUser(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": user.Email})
	})
	return router
}

func TestSessionMiddleware_ValidToken(t *testing.T) {
	tokenManager := jwt.NewTokenManager("test-secret", "lessonforge-api", 24)
	loader := &stubUserLoader{user: &models.User{ID: "u1", Email: "ada@example.edu"}}
	router := sessionRouter(tokenManager, loader)

	token, err := tokenManager.GenerateToken("u1", "ada@example.edu")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ada@example.edu")
	assert.Equal(t, "u1", loader.lastID)
}

func TestSessionMiddleware_MissingHeader(t *testing.T) {
	tokenManager := jwt.NewTokenManager("test-secret", "lessonforge-api", 24)
	router := sessionRouter(tokenManager, &stubUserLoader{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Not authenticated")
}

func TestSessionMiddleware_MalformedHeader(t *testing.T) {
	tokenManager := jwt.NewTokenManager("test-secret", "lessonforge-api", 24)
	router := sessionRouter(tokenManager, &stubUserLoader{})

	for _, header := range []string{"Token abc123", "Bearer", "Bearer   "} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", header)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
		assert.Contains(t, w.Body.String(), "Not authenticated", "header %q", header)
	}
}

func TestSessionMiddleware_InvalidToken(t *testing.T) {
	tokenManager := jwt.NewTokenManager("test-secret", "lessonforge-api", 24)
	router := sessionRouter(tokenManager, &stubUserLoader{})

	// Signed with a different secret.
	otherManager := jwt.NewTokenManager("other-secret", "lessonforge-api", 24)
	forged, err := otherManager.GenerateToken("u1", "ada@example.edu")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestSessionMiddleware_ExpiredToken(t *testing.T) {
	tokenManager := jwt.NewTokenManager("test-secret", "lessonforge-api", 24)
	router := sessionRouter(tokenManager, &stubUserLoader{})

	// A negative TTL mints an already-expired token.
	expiredManager := jwt.NewTokenManager("test-secret", "lessonforge-api", -1)
	expired, err := expiredManager.GenerateToken("u1", "ada@example.edu")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token has expired")
}

func TestSessionMiddleware_UserDeleted(t *testing.T) {
	tokenManager := jwt.NewTokenManager("test-secret", "lessonforge-api", 24)
	loader := &stubUserLoader{err: errs.NotFoundError("user")}
	router := sessionRouter(tokenManager, loader)

	token, err := tokenManager.GenerateToken("u1", "ada@example.edu")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
}

func TestSessionMiddleware_UserLookupError(t *testing.T) {
	tokenManager := jwt.NewTokenManager("test-secret", "lessonforge-api", 24)
	loader := &stubUserLoader{err: errors.New("connection refused")}
	router := sessionRouter(tokenManager, loader)

	token, err := tokenManager.GenerateToken("u1", "ada@example.edu")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to load user")
}

func TestGetAuthUser_MissingFromContext(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	user, err := GetAuthUser(c)

	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrNoAuthUser)
}
