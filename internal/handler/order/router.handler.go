package order

import (
	"topup-store/internal/pkg/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	v1 := e.Group("/v1")

	v1.GET("/orders/:id", h.GetOrder)

	admin := v1.Group("/admin/orders", middleware.AuthMiddleware())
	admin.GET("", h.ListOrders)
	admin.PATCH("/:id/status", h.UpdateStatus)
}
