package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	types "topup-store/internal/common/type"
	"topup-store/internal/pkg/jwt"
	"topup-store/internal/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestInit(), ResponseInit())
	return r
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	r := newTestRouter()
	r.GET("/admin", AuthMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

	require.Equal(t, http.StatusUnauthorized, w.Code)
	var body types.ResponseAPI
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "token not found", body.Message)
	require.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestAuthMiddlewareAcceptsBearerToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "middleware-secret")
	require.NoError(t, validation.Setup())

	admin := types.AdminWithAuth{ID: uuid.New(), Email: "owner@shop.test", Role: "admin"}
	token, _, err := jwt.GenerateToken(admin, time.Hour)
	require.NoError(t, err)

	r := newTestRouter()
	r.GET("/admin", AuthMiddleware(), func(c *gin.Context) {
		got, ok := GetAdmin(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"email": got.Email})
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "owner@shop.test")
}

func TestCorsMiddlewarePreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CorsMiddleware([]string{"https://shop.test"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://shop.test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "https://shop.test", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
