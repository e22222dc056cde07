package catalog

import (
	"context"
	"fmt"
	"net/http"

	types "topup-store/internal/common/type"
	"topup-store/internal/pkg/helper"
	catalogService "topup-store/internal/service/catalog"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	ctx            context.Context
	catalogService catalogService.IService
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
}

func NewHandler(ctx context.Context, catalogService catalogService.IService) IHandler {
	return &Handler{
		ctx:            ctx,
		catalogService: catalogService,
	}
}

// ListMenu godoc
// @Summary      List available products
// @Tags         Catalog
// @Produce      json
// @Param        category  query     string  false  "Category"
// @Param        search    query     string  false  "Name search"
// @Success      200       {object}  types.ResponseAPI{data=[]catalogService.MenuItemResponse}
// @Router       /v1/menu [get]
func (h *Handler) ListMenu(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req catalogService.ListMenuRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid query",
			Error:   err,
		}))
		return
	}

	send(h.catalogService.ListMenu(&req))
}

// ListPaymentMethods godoc
// @Summary      List active payment methods
// @Tags         Catalog
// @Produce      json
// @Success      200  {object}  types.ResponseAPI{data=[]catalogService.PaymentMethodResponse}
// @Router       /v1/payment-methods [get]
func (h *Handler) ListPaymentMethods(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.catalogService.ListPaymentMethods())
}

// DownloadQR godoc
// @Summary      Download a payment method QR image
// @Description  In-app browsers cannot save attachments and are redirected to the image instead
// @Tags         Catalog
// @Produce      octet-stream
// @Param        id   path  string  true  "Payment method ID"
// @Success      200
// @Success      302
// @Failure      404  {object}  types.ResponseAPI
// @Router       /v1/payment-methods/{id}/qr [get]
func (h *Handler) DownloadQR(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	res := h.catalogService.DownloadQR(c.Param("id"), c.GetHeader("User-Agent"))
	download, ok := res.Data.(*catalogService.QRDownload)
	if !ok {
		send(res)
		return
	}

	if download.Redirect {
		c.Redirect(http.StatusFound, download.URL)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.FileName))
	c.Data(http.StatusOK, download.ContentType, download.Data)
}

// CreatePaymentMethod godoc
// @Summary      Add a payment method
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      catalogService.CreatePaymentMethodRequest  true  "Payment method"
// @Success      201      {object}  types.ResponseAPI{data=catalogService.PaymentMethodResponse}
// @Failure      400      {object}  types.ResponseAPI
// @Failure      401      {object}  types.ResponseAPI
// @Router       /v1/admin/payment-methods [post]
func (h *Handler) CreatePaymentMethod(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req catalogService.CreatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		}))
		return
	}

	send(h.catalogService.CreatePaymentMethod(&req))
}
