package checkout

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	checkout := e.Group("/v1/checkout")

	checkout.POST("/sessions", h.CreateSession)
	checkout.POST("/wa-flow", h.WAFlowEndpoint)

	session := checkout.Group("/:session")
	session.GET("", h.GetSnapshot)
	session.PUT("/cart", h.SetCart)
	session.PUT("/payment-method", h.SelectPaymentMethod)
	session.PUT("/fields", h.SetField)
	session.PUT("/bulk/selection", h.SetBulkSelection)
	session.PUT("/bulk/values", h.SetBulkValue)
	session.POST("/receipt", h.UploadReceipt)
	session.DELETE("/receipt", h.RemoveReceipt)
	session.POST("/message/copied", h.CopyMessage)
	session.POST("/submit", h.Submit)
	session.GET("/order", h.RecoverOrder)
	session.DELETE("/order", h.CloseOrderStatus)
	session.PUT("/view", h.SetView)
}
