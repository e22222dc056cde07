package checkout

import (
	"context"
	"net/http"

	types "topup-store/internal/common/type"
	"topup-store/internal/pkg/helper"
	"topup-store/internal/pkg/waflow"
	checkoutService "topup-store/internal/service/checkout"

	"github.com/gin-gonic/gin"
)

const receiptFormField = "receipt"

type Handler struct {
	ctx             context.Context
	checkoutService checkoutService.IService
	maxReceiptBytes int64
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
}

func NewHandler(ctx context.Context, checkoutService checkoutService.IService, maxReceiptBytes int64) IHandler {
	return &Handler{
		ctx:             ctx,
		checkoutService: checkoutService,
		maxReceiptBytes: maxReceiptBytes,
	}
}

func badRequest(err error) *types.Response {
	return helper.ParseResponse(&types.Response{
		Code:    http.StatusBadRequest,
		Message: "Invalid request body",
		Error:   err,
	})
}

// CreateSession godoc
// @Summary      Start a checkout session
// @Tags         Checkout
// @Produce      json
// @Success      201  {object}  types.ResponseAPI{data=checkoutService.Snapshot}
// @Router       /v1/checkout/sessions [post]
func (h *Handler) CreateSession(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.checkoutService.CreateSession())
}

// GetSnapshot godoc
// @Summary      Read the checkout state
// @Description  Returns cart, field groups, bulk state, receipt and the composed message preview
// @Tags         Checkout
// @Produce      json
// @Param        session  path      string  true  "Session ID"
// @Success      200      {object}  types.ResponseAPI{data=checkoutService.Snapshot}
// @Failure      400      {object}  types.ResponseAPI
// @Router       /v1/checkout/{session} [get]
func (h *Handler) GetSnapshot(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.checkoutService.GetSnapshot(c.Param("session")))
}

// SetCart godoc
// @Summary      Replace the cart
// @Description  Prices are resolved from the menu. Field values of removed items are kept and return when the item is re-added.
// @Tags         Checkout
// @Accept       json
// @Produce      json
// @Param        session  path      string                          true  "Session ID"
// @Param        request  body      checkoutService.SetCartRequest  true  "Cart items"
// @Success      200      {object}  types.ResponseAPI{data=checkoutService.Snapshot}
// @Failure      400      {object}  types.ResponseAPI
// @Failure      422      {object}  types.ResponseAPI
// @Router       /v1/checkout/{session}/cart [put]
func (h *Handler) SetCart(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req checkoutService.SetCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(badRequest(err))
		return
	}

	send(h.checkoutService.SetCart(c.Param("session"), &req))
}

// SelectPaymentMethod godoc
// @Summary      Choose a payment method
// @Tags         Checkout
// @Accept       json
// @Produce      json
// @Param        session  path      string                                      true  "Session ID"
// @Param        request  body      checkoutService.SelectPaymentMethodRequest  true  "Payment method"
// @Success      200      {object}  types.ResponseAPI{data=checkoutService.Snapshot}
// @Failure      422      {object}  types.ResponseAPI
// @Router       /v1/checkout/{session}/payment-method [put]
func (h *Handler) SelectPaymentMethod(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req checkoutService.SelectPaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(badRequest(err))
		return
	}

	send(h.checkoutService.SelectPaymentMethod(c.Param("session"), &req))
}

// SetField godoc
// @Summary      Set one custom field value
// @Tags         Checkout
// @Accept       json
// @Produce      json
// @Param        session  path      string                           true  "Session ID"
// @Param        request  body      checkoutService.SetFieldRequest  true  "Field key and value"
// @Success      200      {object}  types.ResponseAPI{data=checkoutService.Snapshot}
// @Router       /v1/checkout/{session}/fields [put]
func (h *Handler) SetField(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req checkoutService.SetFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(badRequest(err))
		return
	}

	send(h.checkoutService.SetField(c.Param("session"), &req))
}

// SetBulkSelection godoc
// @Summary      Pick the products that share one set of values
// @Tags         Checkout
// @Accept       json
// @Produce      json
// @Param        session  path      string                                   true  "Session ID"
// @Param        request  body      checkoutService.SetBulkSelectionRequest  true  "Original product ids"
// @Success      200      {object}  types.ResponseAPI{data=checkoutService.Snapshot}
// @Failure      422      {object}  types.ResponseAPI
// @Router       /v1/checkout/{session}/bulk/selection [put]
func (h *Handler) SetBulkSelection(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req checkoutService.SetBulkSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(badRequest(err))
		return
	}

	send(h.checkoutService.SetBulkSelection(c.Param("session"), &req))
}

// SetBulkValue godoc
// @Summary      Set a shared value for every selected product
// @Tags         Checkout
// @Accept       json
// @Produce      json
// @Param        session  path      string                               true  "Session ID"
// @Param        request  body      checkoutService.SetBulkValueRequest  true  "Position and value"
// @Success      200      {object}  types.ResponseAPI{data=checkoutService.Snapshot}
// @Router       /v1/checkout/{session}/bulk/values [put]
func (h *Handler) SetBulkValue(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req checkoutService.SetBulkValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(badRequest(err))
		return
	}

	send(h.checkoutService.SetBulkValue(c.Param("session"), &req))
}

// UploadReceipt godoc
// @Summary      Upload a payment receipt image
// @Tags         Checkout
// @Accept       multipart/form-data
// @Produce      json
// @Param        session  path      string  true  "Session ID"
// @Param        receipt  formData  file    true  "Receipt image"
// @Success      200      {object}  types.ResponseAPI{data=checkoutService.Snapshot}
// @Failure      413      {object}  types.ResponseAPI
// @Failure      415      {object}  types.ResponseAPI
// @Failure      502      {object}  types.ResponseAPI
// @Router       /v1/checkout/{session}/receipt [post]
func (h *Handler) UploadReceipt(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	header, err := c.FormFile(receiptFormField)
	if err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "receipt file is required",
			Error:   err,
		}))
		return
	}

	if h.maxReceiptBytes > 0 && header.Size > h.maxReceiptBytes {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusRequestEntityTooLarge,
			Message: "Receipt is too large",
		}))
		return
	}

	file, err := header.Open()
	if err != nil {
		send(badRequest(err))
		return
	}
	defer file.Close()

	payload, err := helper.PrepareFileUploadPayload(types.UploadFile{
		File:   file,
		Header: header,
		Path:   "receipts",
	})
	if err != nil {
		send(badRequest(err))
		return
	}

	send(h.checkoutService.UploadReceipt(c.Param("session"), payload))
}

// RemoveReceipt godoc
// @Summary      Clear the uploaded receipt
// @Tags         Checkout
// @Produce      json
// @Param        session  path      string  true  "Session ID"
// @Success      200      {object}  types.ResponseAPI{data=checkoutService.Snapshot}
// @Router       /v1/checkout/{session}/receipt [delete]
func (h *Handler) RemoveReceipt(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.checkoutService.RemoveReceipt(c.Param("session")))
}

// CopyMessage godoc
// @Summary      Mark the order message as copied
// @Description  Returns the composed message. WhatsApp submission is only allowed after this.
// @Tags         Checkout
// @Produce      json
// @Param        session  path      string  true  "Session ID"
// @Success      200      {object}  types.ResponseAPI{data=checkoutService.CopyMessageResponse}
// @Failure      422      {object}  types.ResponseAPI
// @Router       /v1/checkout/{session}/message/copied [post]
func (h *Handler) CopyMessage(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.checkoutService.CopyMessage(c.Param("session")))
}

// Submit godoc
// @Summary      Submit the order
// @Description  In whatsapp mode returns the deep link. In direct mode creates the order through the gateway.
// @Tags         Checkout
// @Produce      json
// @Param        session  path      string  true  "Session ID"
// @Success      200      {object}  types.ResponseAPI
// @Failure      422      {object}  types.ResponseAPI
// @Failure      502      {object}  types.ResponseAPI
// @Router       /v1/checkout/{session}/submit [post]
func (h *Handler) Submit(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.checkoutService.Submit(c.Param("session")))
}

// RecoverOrder godoc
// @Summary      Fetch the order created by this session
// @Tags         Checkout
// @Produce      json
// @Param        session  path      string  true  "Session ID"
// @Success      200      {object}  types.ResponseAPI{data=checkoutService.RecoverOrderResponse}
// @Failure      502      {object}  types.ResponseAPI
// @Router       /v1/checkout/{session}/order [get]
func (h *Handler) RecoverOrder(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.checkoutService.RecoverOrder(c.Param("session")))
}

// CloseOrderStatus godoc
// @Summary      Dismiss the order status panel
// @Tags         Checkout
// @Produce      json
// @Param        session  path      string  true  "Session ID"
// @Success      200      {object}  types.ResponseAPI{data=checkoutService.Snapshot}
// @Router       /v1/checkout/{session}/order [delete]
func (h *Handler) CloseOrderStatus(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.checkoutService.CloseOrderStatus(c.Param("session")))
}

// SetView godoc
// @Summary      Persist the current view, category and search
// @Tags         Checkout
// @Accept       json
// @Produce      json
// @Param        session  path      string                          true  "Session ID"
// @Param        request  body      checkoutService.SetViewRequest  true  "View state"
// @Success      200      {object}  types.ResponseAPI{data=checkoutService.Snapshot}
// @Router       /v1/checkout/{session}/view [put]
func (h *Handler) SetView(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req checkoutService.SetViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(badRequest(err))
		return
	}

	send(h.checkoutService.SetView(c.Param("session"), &req))
}

// WAFlowEndpoint godoc
// @Summary      WhatsApp Flow data exchange endpoint
// @Description  Decrypts the flow request, answers with the encrypted ORDER_SUMMARY screen
// @Tags         WhatsApp Flow
// @Accept       json
// @Produce      plain
// @Param        request  body      waflow.EncryptedRequest  true  "Encrypted flow request"
// @Success      200      {string}  string  "base64 encrypted response"
// @Failure      421      {object}  types.ResponseAPI
// @Router       /v1/checkout/wa-flow [post]
func (h *Handler) WAFlowEndpoint(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req waflow.EncryptedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(badRequest(err))
		return
	}

	res := h.checkoutService.WAFlow(&req)
	if body, ok := res.Data.(string); ok && res.Code == http.StatusOK {
		c.String(http.StatusOK, body)
		return
	}
	send(res)
}
