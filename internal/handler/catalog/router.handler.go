package catalog

import (
	"topup-store/internal/pkg/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	v1 := e.Group("/v1")

	v1.GET("/menu", h.ListMenu)
	v1.GET("/payment-methods", h.ListPaymentMethods)
	v1.GET("/payment-methods/:id/qr", h.DownloadQR)

	admin := v1.Group("/admin", middleware.AuthMiddleware())
	admin.POST("/payment-methods", h.CreatePaymentMethod)
}
