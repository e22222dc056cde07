package checkout

import (
	"context"
	"errors"
	"fmt"

	"topup-store/internal/common/enum"
	types "topup-store/internal/common/type"
	"topup-store/internal/pkg/logger"
)

var ErrSubmitFailed = errors.New("order submission failed")

type SubmitOptions struct {
	Mode              enum.OrderModeEnum
	WhatsAppNumber    string
	PaymentMethodName string
}

type SubmitResult struct {
	Mode        enum.OrderModeEnum  `json:"mode"`
	Message     string              `json:"message"`
	WhatsAppURL string              `json:"whatsapp_url,omitempty"`
	Order       *types.OrderSummary `json:"order,omitempty"`
}

// ComposeInput collects the manager state the composer needs.
func (m *Manager) ComposeInput(paymentMethodName string) ComposeInput {
	return ComposeInput{
		Cart:              m.cart,
		Groups:            m.FieldGroups(),
		FieldValues:       m.fieldValues,
		PaymentMethodName: paymentMethodName,
		ReceiptURL:        m.receiptURL,
	}
}

// CopyMessage composes the message and marks it copied.
func (m *Manager) CopyMessage(c *Composer, paymentMethodName string) string {
	text := c.ComposeMessage(m.ComposeInput(paymentMethodName))
	m.MarkMessageCopied()
	return text
}

// Submit places the order. Both modes need a payment method, a receipt and
// valid fields; a *ValidationError is returned otherwise and nothing is sent.
// WhatsApp mode also needs the message copied once and returns a deep link.
// Direct mode creates the order and tracks it as the current order.
func (m *Manager) Submit(ctx context.Context, c *Composer, opts SubmitOptions) (*SubmitResult, error) {
	m.submitError = ""

	if verr := m.checkSubmittable(); verr != nil {
		return nil, verr
	}

	in := m.ComposeInput(opts.PaymentMethodName)
	text := c.ComposeMessage(in)

	switch opts.Mode {
	case enum.ORDER_MODE_DIRECT:
		order, err := m.orders.CreateOrder(ctx, c.BuildOrderPayload(in, m.paymentMethodID))
		if err != nil {
			logger.Error.Printf("session %s: create order failed: %v", m.SessionID(), err)
			m.submitError = submitFailedMessage
			return nil, fmt.Errorf("%w: %v", ErrSubmitFailed, err)
		}

		m.setCurrentOrder(order.ID, true)
		m.SetCart(nil)
		return &SubmitResult{Mode: opts.Mode, Message: text, Order: order}, nil

	default:
		if !m.messageCopied {
			return nil, &ValidationError{Fields: map[string]string{"message": copyFirstMessage}}
		}
		return &SubmitResult{
			Mode:        enum.ORDER_MODE_WHATSAPP,
			Message:     text,
			WhatsAppURL: WhatsAppLink(opts.WhatsAppNumber, text),
		}, nil
	}
}
