package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"pmeboard/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func accessToken(t *testing.T, roles []string) string {
	t.Helper()
	token, err := services.CreateAccessToken("u1", "maria@corretora.com", roles)
	require.NoError(t, err)
	return token
}

func TestAccessTokenMiddlewareSetsIdentity(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/protected", AccessTokenMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId": c.MustGet("userId"),
			"roles":  c.MustGet("roles"),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, []string{"corretor"}))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":"u1"`)
	assert.Contains(t, w.Body.String(), `"corretor"`)
}

func TestAccessTokenMiddlewareMissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/protected", AccessTokenMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAccessTokenMiddlewareRejectsBadToken(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/protected", AccessTokenMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/admin", AccessTokenMiddleware(), AdminMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, []string{"admin"}))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, []string{"corretor"}))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRefreshTokenMiddleware(t *testing.T) {
	t.Setenv("JWT_REFRESH_SECRET_KEY", "refresh-secret")
	gin.SetMode(gin.TestMode)

	refreshToken, err := services.CreateRefreshToken("u1")
	require.NoError(t, err)

	router := gin.New()
	router.POST("/refresh", RefreshTokenMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": c.MustGet("userId")})
	})

	req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	req.Header.Set("Authorization", "Bearer "+refreshToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":"u1"`)
}
