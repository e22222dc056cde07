package order

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"topup-store/internal/common/enum"
	types "topup-store/internal/common/type"
	"topup-store/internal/pkg/jwt"
	"topup-store/internal/pkg/middleware"
	orderService "topup-store/internal/service/order"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	orderService.IService
	listReq   *orderService.ListOrdersRequest
	updatedID string
	updateReq *orderService.UpdateStatusRequest
}

func (s *stubService) GetOrder(id string) *types.Response {
	return &types.Response{Code: http.StatusOK, Data: orderService.OrderStatusView{ID: id}}
}

func (s *stubService) ListOrders(req *orderService.ListOrdersRequest) *types.Response {
	s.listReq = req
	return &types.Response{Code: http.StatusOK, Data: orderService.ListOrdersResponse{}}
}

func (s *stubService) UpdateStatus(id string, req *orderService.UpdateStatusRequest) *types.Response {
	s.updatedID = id
	s.updateReq = req
	return &types.Response{Code: http.StatusOK}
}

func newRouter(svc orderService.IService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestInit(), middleware.ResponseInit())
	NewHandler(context.Background(), svc).NewRoutes(r.Group("/api"))
	return r
}

func adminToken(t *testing.T) string {
	t.Helper()
	t.Setenv("JWT_SECRET", "order-handler-secret")
	token, _, err := jwt.GenerateToken(types.AdminWithAuth{
		ID:    uuid.New(),
		Email: "owner@shop.test",
		Role:  "admin",
	}, time.Hour)
	require.NoError(t, err)
	return token
}

func TestGetOrderIsPublic(t *testing.T) {
	r := newRouter(&stubService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders/order-1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"order-1"`)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r := newRouter(&stubService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/api/v1/admin/orders/order-1/status", strings.NewReader(`{"status":"approved"}`)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminListAndUpdate(t *testing.T) {
	svc := &stubService{}
	r := newRouter(svc)
	token := adminToken(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/orders?status=pending&limit=5", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, enum.ORDER_PENDING, svc.listReq.Status)
	assert.Equal(t, 5, svc.listReq.Limit)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPatch, "/api/v1/admin/orders/order-1/status", strings.NewReader(`{"status":"approved"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "order-1", svc.updatedID)
	assert.Equal(t, enum.ORDER_APPROVED, svc.updateReq.Status)
}
