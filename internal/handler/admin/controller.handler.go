package admin

import (
	"context"
	"net/http"

	types "topup-store/internal/common/type"
	"topup-store/internal/pkg/helper"
	adminService "topup-store/internal/service/admin"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	ctx          context.Context
	adminService adminService.IService
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
}

func NewHandler(ctx context.Context, adminService adminService.IService) IHandler {
	return &Handler{
		ctx:          ctx,
		adminService: adminService,
	}
}

// Login godoc
// @Summary      Admin login
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request  body      adminService.LoginRequest  true  "Credentials"
// @Success      200      {object}  types.ResponseAPI{data=adminService.LoginResponse}
// @Failure      401      {object}  types.ResponseAPI
// @Router       /v1/admin/login [post]
func (h *Handler) Login(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req adminService.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		}))
		return
	}

	send(h.adminService.Login(&req))
}
