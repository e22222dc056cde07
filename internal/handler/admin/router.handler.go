package admin

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	e.POST("/v1/admin/login", h.Login)
}
