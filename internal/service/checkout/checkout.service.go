package checkout

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	types "topup-store/internal/common/type"
	"topup-store/internal/pkg/helper"
	"topup-store/internal/pkg/logger"
	"topup-store/internal/pkg/validation"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/samber/lo"
)

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{8,64}$`)

var errInvalidSession = errors.New("invalid session id")

func (s *Service) manager(sessionID string) (*Manager, *types.Response) {
	if !sessionIDPattern.MatchString(sessionID) {
		return nil, helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid checkout session",
			Error:   errInvalidSession,
		})
	}
	return NewManager(s.store, sessionID, s.ttl, s.orders, s.uploader).Load(), nil
}

// paymentMethodName resolves the selected method for display. Unknown ids
// yield an empty name.
func (s *Service) paymentMethodName(m *Manager) string {
	if m.PaymentMethodID() == "" {
		return ""
	}
	method, err := s.rp.Catalog.FindPaymentMethod(s.ctx, m.PaymentMethodID())
	if err != nil {
		if !errors.Is(err, types.ErrPaymentMethodNotFound) {
			logger.Warning.Printf("session %s: payment method lookup failed: %v", m.SessionID(), err)
		}
		return ""
	}
	return method.Name
}

func (s *Service) snapshot(m *Manager) Snapshot {
	total := TotalPrice(m.Cart())
	return Snapshot{
		SessionID:       m.SessionID(),
		Mode:            s.mode,
		Cart:            m.Cart(),
		Total:           total,
		TotalFormatted:  s.composer.FormatPrice(total),
		PaymentMethodID: m.PaymentMethodID(),
		FieldGroups:     m.FieldGroups(),
		FieldValues:     m.FieldValues(),
		BulkEnabled:     m.BulkEnabled(),
		BulkSelected:    m.BulkSelected(),
		BulkFields:      m.BulkFields(),
		Receipt: ReceiptState{
			URL:         m.ReceiptURL(),
			Preview:     m.ReceiptPreview(),
			File:        m.ReceiptFile(),
			Uploading:   m.Uploading(),
			UploadError: m.UploadError(),
		},
		MessageCopied:   m.MessageCopied(),
		MessagePreview:  s.composer.ComposeMessage(m.ComposeInput(s.paymentMethodName(m))),
		SubmitError:     m.SubmitError(),
		CurrentOrderID:  m.CurrentOrderID(),
		ShowOrderStatus: m.ShowOrderStatus(),
		View:            m.View(),
	}
}

func (s *Service) ok(m *Manager, message string) *types.Response {
	return helper.ParseResponse(&types.Response{
		Code:    http.StatusOK,
		Message: message,
		Data:    s.snapshot(m),
	})
}

func badRequest(err error) *types.Response {
	return helper.ParseResponse(&types.Response{
		Code:    http.StatusBadRequest,
		Message: "Invalid request body",
		Error:   err,
	})
}

func unprocessable(fields map[string]string) *types.Response {
	return helper.ParseResponse(&types.Response{
		Code:    http.StatusUnprocessableEntity,
		Message: "Please fix the highlighted fields",
		Data:    fields,
		Error:   &ValidationError{Fields: fields},
	})
}

func (s *Service) CreateSession() *types.Response {
	id, err := gonanoid.New()
	if err != nil {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusInternalServerError,
			Message: "Failed to create checkout session",
			Error:   err,
		})
	}

	m, _ := s.manager(id)
	return helper.ParseResponse(&types.Response{
		Code:    http.StatusCreated,
		Message: "Checkout session created",
		Data:    s.snapshot(m),
	})
}

func (s *Service) GetSnapshot(sessionID string) *types.Response {
	m, res := s.manager(sessionID)
	if res != nil {
		return res
	}
	return s.ok(m, "")
}

// SetCart resolves requested items against the menu so names, prices and
// custom fields come from the catalog rather than the client.
func (s *Service) SetCart(sessionID string, req *SetCartRequest) *types.Response {
	m, res := s.manager(sessionID)
	if res != nil {
		return res
	}
	if err := validation.Validate(req); err != nil {
		return badRequest(err)
	}

	items := make([]CartItem, 0, len(req.Items))
	fieldErrs := map[string]string{}
	for i, line := range req.Items {
		item, err := s.resolveCartItem(line)
		if err != nil {
			if errors.Is(err, types.ErrMenuItemNotFound) || errors.Is(err, errUnknownVariation) {
				fieldErrs[fmt.Sprintf("items[%d]", i)] = err.Error()
				continue
			}
			return helper.ParseResponse(&types.Response{
				Code:    http.StatusInternalServerError,
				Message: "Failed to load menu item",
				Error:   err,
			})
		}
		items = append(items, *item)
	}
	if len(fieldErrs) > 0 {
		return unprocessable(fieldErrs)
	}

	m.SetCart(items)
	return s.ok(m, "Cart updated")
}

var errUnknownVariation = errors.New("variation not found")

func (s *Service) resolveCartItem(line CartItemRequest) (*CartItem, error) {
	originalID, _, _ := strings.Cut(line.ID, cartItemSeparator)
	menu, err := s.rp.Catalog.FindMenuItem(s.ctx, originalID)
	if err != nil {
		return nil, err
	}

	item := &CartItem{
		ID:       line.ID,
		Name:     menu.Name,
		Quantity: line.Quantity,
		Price:    menu.Price,
	}

	var fields []types.CustomField
	if err := menu.CustomFields.Decode(&fields); err != nil {
		logger.Warning.Printf("Menu item %s has unreadable custom fields: %v", menu.ID, err)
	}
	item.CustomFields = fields

	if line.VariationID != "" {
		var variations []types.Variation
		if err := menu.Variations.Decode(&variations); err != nil {
			logger.Warning.Printf("Menu item %s has unreadable variations: %v", menu.ID, err)
		}
		variation, found := lo.Find(variations, func(v types.Variation) bool { return v.ID == line.VariationID })
		if !found {
			return nil, errUnknownVariation
		}
		item.SelectedVariation = &variation
		item.Price = variation.Price
	}

	item.TotalPrice = item.Price * int64(item.Quantity)
	return item, nil
}

func (s *Service) SelectPaymentMethod(sessionID string, req *SelectPaymentMethodRequest) *types.Response {
	m, res := s.manager(sessionID)
	if res != nil {
		return res
	}
	if err := validation.Validate(req); err != nil {
		return badRequest(err)
	}

	method, err := s.rp.Catalog.FindPaymentMethod(s.ctx, req.PaymentMethodID)
	if err != nil {
		if errors.Is(err, types.ErrPaymentMethodNotFound) {
			return unprocessable(map[string]string{"payment_method": "Payment method is not available"})
		}
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusInternalServerError,
			Message: "Failed to load payment method",
			Error:   err,
		})
	}
	if !method.Active {
		return unprocessable(map[string]string{"payment_method": "Payment method is not available"})
	}

	m.SelectPaymentMethod(method.ID)
	return s.ok(m, "Payment method selected")
}

func (s *Service) SetField(sessionID string, req *SetFieldRequest) *types.Response {
	m, res := s.manager(sessionID)
	if res != nil {
		return res
	}
	if err := validation.Validate(req); err != nil {
		return badRequest(err)
	}
	if !m.IsKnownField(req.Key) {
		return unprocessable(map[string]string{req.Key: unknownFieldMessage})
	}

	m.SetFieldValue(req.Key, req.Value)
	return s.ok(m, "")
}

func (s *Service) SetBulkSelection(sessionID string, req *SetBulkSelectionRequest) *types.Response {
	m, res := s.manager(sessionID)
	if res != nil {
		return res
	}
	if !m.BulkEnabled() {
		return unprocessable(map[string]string{"bulk": bulkDisabledMessage})
	}

	m.SetBulkSelection(req.OriginalIDs)
	return s.ok(m, "")
}

func (s *Service) SetBulkValue(sessionID string, req *SetBulkValueRequest) *types.Response {
	m, res := s.manager(sessionID)
	if res != nil {
		return res
	}
	if err := validation.Validate(req); err != nil {
		return badRequest(err)
	}
	if !m.BulkEnabled() {
		return unprocessable(map[string]string{"bulk": bulkDisabledMessage})
	}

	m.SetBulkValue(*req.Position, req.Value)
	return s.ok(m, "")
}

func (s *Service) UploadReceipt(sessionID string, file *types.UploadFilesRes) *types.Response {
	m, res := s.manager(sessionID)
	if res != nil {
		return res
	}

	err := m.UploadReceipt(s.ctx, ReceiptUpload{
		ReceiptFile: ReceiptFile{Name: file.FileName, ContentType: file.ContentType},
		Data:        file.FileBytes,
	})
	if err != nil {
		code := http.StatusBadGateway
		switch {
		case errors.Is(err, ErrUnsupportedReceipt):
			code = http.StatusUnsupportedMediaType
		case errors.Is(err, ErrReceiptTooLarge):
			code = http.StatusRequestEntityTooLarge
		}
		return helper.ParseResponse(&types.Response{
			Code:    code,
			Message: m.UploadError(),
			Data:    s.snapshot(m),
			Error:   err,
		})
	}

	return s.ok(m, "Receipt uploaded")
}

func (s *Service) RemoveReceipt(sessionID string) *types.Response {
	m, res := s.manager(sessionID)
	if res != nil {
		return res
	}

	m.RemoveReceipt()
	return s.ok(m, "Receipt removed")
}

func (s *Service) CopyMessage(sessionID string) *types.Response {
	m, res := s.manager(sessionID)
	if res != nil {
		return res
	}
	if len(m.Cart()) == 0 {
		return unprocessable(map[string]string{"cart": "Your cart is empty"})
	}

	text := m.CopyMessage(s.composer, s.paymentMethodName(m))
	return helper.ParseResponse(&types.Response{
		Code:    http.StatusOK,
		Message: "Order message copied",
		Data:    CopyMessageResponse{Message: text, Snapshot: s.snapshot(m)},
	})
}

func (s *Service) Submit(sessionID string) *types.Response {
	m, res := s.manager(sessionID)
	if res != nil {
		return res
	}
	if len(m.Cart()) == 0 {
		return unprocessable(map[string]string{"cart": "Your cart is empty"})
	}

	result, err := m.Submit(s.ctx, s.composer, SubmitOptions{
		Mode:              s.mode,
		WhatsAppNumber:    s.whatsappNumber,
		PaymentMethodName: s.paymentMethodName(m),
	})
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return unprocessable(verr.Fields)
		}
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusBadGateway,
			Message: m.SubmitError(),
			Data:    s.snapshot(m),
			Error:   err,
		})
	}

	message := "Order ready to send"
	if result.Order != nil {
		message = "Order placed"
	}
	return helper.ParseResponse(&types.Response{
		Code:    http.StatusOK,
		Message: message,
		Data:    result,
	})
}

func (s *Service) RecoverOrder(sessionID string) *types.Response {
	m, res := s.manager(sessionID)
	if res != nil {
		return res
	}

	order, err := m.RecoverOrder(s.ctx)
	if err != nil {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusBadGateway,
			Message: "Failed to check the existing order",
			Error:   err,
		})
	}

	return helper.ParseResponse(&types.Response{
		Code: http.StatusOK,
		Data: RecoverOrderResponse{Order: order, Snapshot: s.snapshot(m)},
	})
}

func (s *Service) CloseOrderStatus(sessionID string) *types.Response {
	m, res := s.manager(sessionID)
	if res != nil {
		return res
	}

	m.CloseOrderStatus()
	return s.ok(m, "")
}

func (s *Service) SetView(sessionID string, req *SetViewRequest) *types.Response {
	m, res := s.manager(sessionID)
	if res != nil {
		return res
	}
	if err := validation.Validate(req); err != nil {
		return badRequest(err)
	}

	m.SetView(ViewState{View: req.View, Category: req.Category, Search: req.Search})
	return s.ok(m, "")
}
