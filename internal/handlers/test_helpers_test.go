package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/lessonforge/lessonforge-api/internal/middleware"
	"github.com/lessonforge/lessonforge-api/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testUser returns the user fixture handler tests run as.
func testUser() *models.User {
	return &models.User{
		ID:        "7f9c24e5-1b3a-4d6e-9f2a-8c5b3d7e1a90",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.edu",
	}
}

// withAuthUser simulates the session middleware by planting user in the
// request context.
func withAuthUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.AuthUserContextKey, user)
		c.Next()
	}
}

// performJSON issues a JSON request against router and returns the recorder.
func performJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}
