package order

import (
	"context"
	"net/http"

	types "topup-store/internal/common/type"
	"topup-store/internal/pkg/helper"
	"topup-store/internal/pkg/logger"
	"topup-store/internal/pkg/middleware"
	orderService "topup-store/internal/service/order"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	ctx          context.Context
	orderService orderService.IService
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
}

func NewHandler(ctx context.Context, orderService orderService.IService) IHandler {
	return &Handler{
		ctx:          ctx,
		orderService: orderService,
	}
}

// GetOrder godoc
// @Summary      Public order status
// @Tags         Orders
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  types.ResponseAPI{data=orderService.OrderStatusView}
// @Failure      404  {object}  types.ResponseAPI
// @Router       /v1/orders/{id} [get]
func (h *Handler) GetOrder(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.orderService.GetOrder(c.Param("id")))
}

// ListOrders godoc
// @Summary      List orders
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Status filter"
// @Param        limit   query     int     false  "Page size"
// @Param        offset  query     int     false  "Offset"
// @Success      200     {object}  types.ResponseAPI{data=orderService.ListOrdersResponse}
// @Failure      401     {object}  types.ResponseAPI
// @Router       /v1/admin/orders [get]
func (h *Handler) ListOrders(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req orderService.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid query",
			Error:   err,
		}))
		return
	}

	send(h.orderService.ListOrders(&req))
}

// UpdateStatus godoc
// @Summary      Move an order to a new status
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                            true  "Order ID"
// @Param        request  body      orderService.UpdateStatusRequest  true  "New status"
// @Success      200      {object}  types.ResponseAPI{data=types.OrderSummary}
// @Failure      404      {object}  types.ResponseAPI
// @Failure      409      {object}  types.ResponseAPI
// @Router       /v1/admin/orders/{id}/status [patch]
func (h *Handler) UpdateStatus(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req orderService.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		}))
		return
	}

	if admin, ok := middleware.GetAdmin(c); ok {
		logger.Info.Printf("Admin %s sets order %s to %s", admin.Email, c.Param("id"), req.Status)
	}

	send(h.orderService.UpdateStatus(c.Param("id"), &req))
}
