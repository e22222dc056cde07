package checkout

import (
	"errors"
	"net/http"
	"strings"

	types "topup-store/internal/common/type"
	"topup-store/internal/pkg/helper"
	"topup-store/internal/pkg/logger"
	"topup-store/internal/pkg/validation"
	"topup-store/internal/pkg/waflow"

	"github.com/samber/lo"
)

var errFlowNotConfigured = errors.New("whatsapp flow key is not configured")

// WAFlow answers a WhatsApp Flow data exchange with the order summary of the
// checkout session named by the flow token. Data is the encrypted response body.
func (s *Service) WAFlow(req *waflow.EncryptedRequest) *types.Response {
	if s.waKey == nil {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusServiceUnavailable,
			Message: "WhatsApp Flow is not configured",
			Error:   errFlowNotConfigured,
		})
	}
	if err := validation.Validate(req); err != nil {
		return badRequest(err)
	}

	decrypted, session, err := waflow.DecryptRequest(s.waKey, *req)
	if err != nil {
		// 421 makes the client refetch the public key and retry
		logger.Warning.Printf("WA flow decrypt failed: %v", err)
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusMisdirectedRequest,
			Message: "Unable to decrypt request",
			Error:   err,
		})
	}

	encrypted, err := session.EncryptResponse(s.flowResponse(decrypted))
	if err != nil {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusInternalServerError,
			Message: "Failed to encrypt response",
			Error:   err,
		})
	}

	return helper.ParseResponse(&types.Response{
		Code: http.StatusOK,
		Data: encrypted,
	})
}

func (s *Service) flowResponse(req *waflow.DecryptedRequest) waflow.FlowResponse {
	if req.IsPing() {
		return waflow.PingResponse()
	}

	switch req.Action {
	case waflow.ActionInit, waflow.ActionDataExchange, waflow.ActionBack:
	default:
		return waflow.ErrorResponse("Unsupported action")
	}

	sessionID := req.StringData("session_id")
	if sessionID == "" {
		sessionID = strings.TrimSpace(req.FlowToken)
	}
	if !sessionIDPattern.MatchString(sessionID) {
		return waflow.ErrorResponse("Checkout session not found")
	}

	m := NewManager(s.store, sessionID, s.ttl, s.orders, s.uploader).Load()
	if len(m.Cart()) == 0 {
		return waflow.ErrorResponse("Your cart is empty")
	}

	in := m.ComposeInput(s.paymentMethodName(m))
	lines := lo.Map(in.Cart, func(item CartItem, _ int) string { return s.composer.orderLine(item) })

	return waflow.FlowResponse{
		Screen: waflow.ScreenOrderSummary,
		Data: map[string]interface{}{
			"session_id":     sessionID,
			"items_text":     strings.Join(lines, "\n"),
			"customer_text":  s.composer.customerSection(in),
			"total":          s.composer.FormatPrice(TotalPrice(in.Cart)),
			"payment_method": in.PaymentMethodName,
			"receipt_url":    in.ReceiptURL,
			"message":        s.composer.ComposeMessage(in),
		},
	}
}
