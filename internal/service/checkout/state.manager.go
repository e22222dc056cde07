package checkout

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"topup-store/internal/common/enum"
	types "topup-store/internal/common/type"
	"topup-store/internal/pkg/helper"
	"topup-store/internal/pkg/logger"
	"topup-store/internal/pkg/validation"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

const (
	uploadFailedMessage  = "Failed to upload receipt. Please try again."
	invalidImageMessage  = "Please upload a JPEG, PNG, WebP or GIF image."
	submitFailedMessage  = "Failed to place order. Please try again."
	ignRequiredMessage   = "In-game name is required"
	unknownFieldMessage  = "Unknown field"
	bulkDisabledMessage  = "Bulk input needs at least two items with fields"
	paymentMethodMessage = "Please select a payment method"
	receiptMessage       = "Please upload your payment receipt"
	copyFirstMessage     = "Please copy the order message first"
)

var ErrUnsupportedReceipt = errors.New("unsupported receipt type")

// OrderGateway creates and reads orders on the backend.
type OrderGateway interface {
	CreateOrder(ctx context.Context, payload *types.CreateOrderPayload) (*types.OrderSummary, error)
	FetchOrder(ctx context.Context, id string) (*types.OrderSummary, error)
}

// ReceiptUploader stores a receipt image and returns its reference.
type ReceiptUploader interface {
	UploadReceipt(ctx context.Context, fileName string, data []byte, contentType string) (string, error)
}

// Manager holds the checkout state of one session. Every mutation is written
// to the store before the method returns.
type Manager struct {
	store    *sessionStore
	orders   OrderGateway
	uploader ReceiptUploader

	cart            []CartItem
	paymentMethodID string
	fieldValues     map[string]string
	bulkValues      map[int]string
	bulkSelected    []string
	receiptURL      string
	receiptPreview  string
	receiptFile     *ReceiptFile
	uploading       bool
	uploadError     string
	submitError     string
	messageCopied   bool
	currentOrderID  string
	showOrderStatus bool
	view            ViewState
}

func NewManager(store Store, sessionID string, ttl time.Duration, orders OrderGateway, uploader ReceiptUploader) *Manager {
	return &Manager{
		store:        &sessionStore{store: store, sessionID: sessionID, ttl: ttl},
		orders:       orders,
		uploader:     uploader,
		fieldValues:  map[string]string{},
		bulkValues:   map[int]string{},
		bulkSelected: []string{},
		cart:         []CartItem{},
	}
}

// Load initializes the manager from the store.
func (m *Manager) Load() *Manager {
	s := m.store
	m.cart = readValue(s, keyCart, []CartItem{})
	m.paymentMethodID = readValue(s, keyPaymentMethodID, "")
	m.fieldValues = readValue(s, keyFieldValues, map[string]string{})
	m.bulkValues = readValue(s, keyBulkValues, map[int]string{})
	m.bulkSelected = readValue(s, keyBulkSelected, []string{})
	m.receiptURL = readValue(s, keyReceiptURL, "")
	m.receiptPreview = readValue(s, keyReceiptPreview, "")
	m.receiptFile = readValue[*ReceiptFile](s, keyReceiptFile, nil)
	m.uploading = readValue(s, keyReceiptUpload, false)
	m.messageCopied = readValue(s, keyMessageCopied, false)
	m.currentOrderID = readValue(s, keyCurrentOrderID, "")
	m.showOrderStatus = readValue(s, keyOrderStatusOpen, false)
	m.view = ViewState{
		View:     readValue(s, keyAppView, ""),
		Category: readValue(s, keyAppCategory, ""),
		Search:   readValue(s, keyAppSearch, ""),
	}

	if m.fieldValues == nil {
		m.fieldValues = map[string]string{}
	}
	if m.bulkValues == nil {
		m.bulkValues = map[int]string{}
	}
	if m.cart == nil {
		m.cart = []CartItem{}
	}
	return m
}

func (m *Manager) SessionID() string            { return m.store.sessionID }
func (m *Manager) Cart() []CartItem             { return m.cart }
func (m *Manager) PaymentMethodID() string      { return m.paymentMethodID }
func (m *Manager) ReceiptURL() string           { return m.receiptURL }
func (m *Manager) ReceiptPreview() string       { return m.receiptPreview }
func (m *Manager) ReceiptFile() *ReceiptFile    { return m.receiptFile }
func (m *Manager) Uploading() bool              { return m.uploading }
func (m *Manager) UploadError() string          { return m.uploadError }
func (m *Manager) SubmitError() string          { return m.submitError }
func (m *Manager) MessageCopied() bool          { return m.messageCopied }
func (m *Manager) CurrentOrderID() string       { return m.currentOrderID }
func (m *Manager) ShowOrderStatus() bool        { return m.showOrderStatus }
func (m *Manager) View() ViewState              { return m.view }
func (m *Manager) BulkSelected() []string       { return m.bulkSelected }
func (m *Manager) FieldValue(key string) string { return m.fieldValues[key] }

func (m *Manager) FieldValues() map[string]string {
	return lo.Assign(m.fieldValues)
}

// SetCart replaces the cart. Field values are keyed by original id, so they
// are kept and come back when the item is added again.
func (m *Manager) SetCart(items []CartItem) {
	if items == nil {
		items = []CartItem{}
	}
	m.cart = items
	m.store.write(keyCart, m.cart)

	// bulk input disappears with fewer than two groups
	if !m.BulkEnabled() {
		m.bulkSelected = []string{}
		m.bulkValues = map[int]string{}
		m.store.write(keyBulkSelected, m.bulkSelected)
		m.store.write(keyBulkValues, m.bulkValues)
		return
	}

	// drop selections for items no longer in the cart
	known := lo.Map(m.FieldGroups(), func(g FieldGroup, _ int) string { return g.OriginalID })
	selected := lo.Filter(m.bulkSelected, func(id string, _ int) bool { return lo.Contains(known, id) })
	if len(selected) != len(m.bulkSelected) {
		m.bulkSelected = selected
		m.store.write(keyBulkSelected, m.bulkSelected)
	}
}

func (m *Manager) SelectPaymentMethod(id string) {
	m.paymentMethodID = strings.TrimSpace(id)
	m.store.write(keyPaymentMethodID, m.paymentMethodID)
}

func (m *Manager) SetFieldValue(key, value string) {
	m.fieldValues[key] = value
	m.store.write(keyFieldValues, m.fieldValues)
}

// IsKnownField reports whether key names a field of the current cart, or the
// fallback in-game name.
func (m *Manager) IsKnownField(key string) bool {
	if key == FallbackIGNKey {
		return true
	}
	for _, g := range m.FieldGroups() {
		for _, f := range g.Fields {
			if f.ValueKey == key {
				return true
			}
		}
	}
	return false
}

func (m *Manager) SetView(view ViewState) {
	m.view = view
	m.store.write(keyAppView, view.View)
	m.store.write(keyAppCategory, view.Category)
	m.store.write(keyAppSearch, view.Search)
}

// FieldGroups returns one group per distinct original id among items that
// define custom fields, in cart order.
func (m *Manager) FieldGroups() []FieldGroup {
	withFields := lo.Filter(m.cart, func(item CartItem, _ int) bool { return item.HasCustomFields() })
	unique := lo.UniqBy(withFields, func(item CartItem) string { return item.OriginalID() })

	return lo.Map(unique, func(item CartItem, _ int) FieldGroup {
		originalID := item.OriginalID()
		return FieldGroup{
			OriginalID: originalID,
			Name:       item.Name,
			Fields: lo.Map(item.CustomFields, func(f types.CustomField, pos int) FieldSlot {
				key := FieldValueKey(originalID, pos, f.Key)
				return FieldSlot{
					Position:    pos,
					Key:         f.Key,
					Label:       f.Label,
					Placeholder: f.Placeholder,
					Required:    f.Required,
					ValueKey:    key,
					Value:       m.fieldValues[key],
				}
			}),
		}
	})
}

// BulkEnabled reports whether bulk input is offered: two or more distinct
// field-bearing items.
func (m *Manager) BulkEnabled() bool {
	return len(m.FieldGroups()) >= 2
}

func (m *Manager) selectedGroups() []FieldGroup {
	return lo.Filter(m.FieldGroups(), func(g FieldGroup, _ int) bool {
		return lo.Contains(m.bulkSelected, g.OriginalID)
	})
}

func (m *Manager) SetBulkSelection(originalIDs []string) {
	m.bulkSelected = lo.Uniq(lo.Filter(originalIDs, func(id string, _ int) bool { return !helper.IsBlank(id) }))
	m.store.write(keyBulkSelected, m.bulkSelected)
}

// BulkFields returns one input per position up to the largest field count
// among the selected items.
func (m *Manager) BulkFields() []BulkField {
	if !m.BulkEnabled() {
		return []BulkField{}
	}
	selected := m.selectedGroups()
	if len(selected) == 0 {
		return []BulkField{}
	}

	count := lo.Max(lo.Map(selected, func(g FieldGroup, _ int) int { return len(g.Fields) }))
	fields := make([]BulkField, count)
	for pos := range fields {
		label := fmt.Sprintf("Field %d", pos+1)
		if pos < len(selected[0].Fields) {
			label = selected[0].Fields[pos].Label
		}
		fields[pos] = BulkField{Position: pos, Label: label, Value: m.bulkValues[pos]}
	}
	return fields
}

// SetBulkValue stores the bulk value and copies it into the field at the same
// position of every selected item that has one.
func (m *Manager) SetBulkValue(position int, value string) {
	if position < 0 || !m.BulkEnabled() {
		return
	}

	m.bulkValues[position] = value
	for _, g := range m.selectedGroups() {
		if position >= len(g.Fields) {
			continue
		}
		m.fieldValues[g.Fields[position].ValueKey] = value
	}

	m.store.write(keyBulkValues, m.bulkValues)
	m.store.write(keyFieldValues, m.fieldValues)
}

// Validate returns field errors keyed by field value key, or nil.
func (m *Manager) Validate() map[string]string {
	groups := m.FieldGroups()
	errs := map[string]string{}

	if len(groups) == 0 {
		if helper.IsBlank(m.fieldValues[FallbackIGNKey]) {
			errs[FallbackIGNKey] = ignRequiredMessage
		}
	}
	for _, g := range groups {
		for _, f := range g.Fields {
			if f.Required && helper.IsBlank(f.Value) {
				errs[f.ValueKey] = fmt.Sprintf("%s is required", f.Label)
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// UploadReceipt builds the preview and uploads the file at the same time. A
// failed upload clears the file and preview and sets the upload error.
func (m *Manager) UploadReceipt(ctx context.Context, file ReceiptUpload) error {
	// the declared type must agree with the bytes
	sniffed := validation.SniffImageMime(file.Data)
	if !validation.IsImageMime(file.ContentType) || sniffed == "" {
		m.uploadError = invalidImageMessage
		return ErrUnsupportedReceipt
	}
	file.ContentType = sniffed

	m.uploadError = ""
	m.uploading = true
	m.store.write(keyReceiptUpload, true)
	defer func() {
		m.uploading = false
		m.store.write(keyReceiptUpload, false)
	}()

	var (
		preview string
		ref     string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		preview = dataURL(file.ContentType, file.Data)
		// written as soon as it exists so a concurrent read shows it
		m.store.write(keyReceiptPreview, preview)
		return nil
	})
	g.Go(func() error {
		var err error
		ref, err = m.uploader.UploadReceipt(gctx, file.Name, file.Data, file.ContentType)
		return err
	})
	err := g.Wait()

	if err != nil {
		logger.Warning.Printf("session %s: receipt upload failed: %v", m.SessionID(), err)
		m.receiptFile = nil
		m.receiptPreview = ""
		m.uploadError = uploadFailedMessage
		m.store.remove(keyReceiptFile)
		m.store.remove(keyReceiptPreview)
		return fmt.Errorf("upload receipt: %w", err)
	}

	meta := file.ReceiptFile
	meta.Size = int64(len(file.Data))
	m.receiptFile = &meta
	m.receiptURL = ref
	m.receiptPreview = preview
	m.store.write(keyReceiptFile, m.receiptFile)
	m.store.write(keyReceiptURL, m.receiptURL)
	m.store.write(keyReceiptPreview, m.receiptPreview)
	return nil
}

func dataURL(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// RemoveReceipt clears the file, reference, preview and copied flag together.
func (m *Manager) RemoveReceipt() {
	m.receiptFile = nil
	m.receiptURL = ""
	m.receiptPreview = ""
	m.messageCopied = false
	m.uploadError = ""

	m.store.remove(keyReceiptFile)
	m.store.write(keyReceiptURL, "")
	m.store.write(keyReceiptPreview, "")
	m.store.write(keyMessageCopied, false)
}

// MarkMessageCopied records that the composed message was copied at least once.
func (m *Manager) MarkMessageCopied() {
	m.messageCopied = true
	m.store.write(keyMessageCopied, true)
}

func (m *Manager) setCurrentOrder(id string, show bool) {
	m.currentOrderID = id
	m.showOrderStatus = show
	if id == "" {
		m.store.remove(keyCurrentOrderID)
	} else {
		m.store.write(keyCurrentOrderID, id)
	}
	m.store.write(keyOrderStatusOpen, show)
}

// RecoverOrder checks the order stored from an earlier visit. Approved and
// unknown orders are forgotten. Any other status, rejected included, keeps
// the order and opens the status view.
func (m *Manager) RecoverOrder(ctx context.Context) (*types.OrderSummary, error) {
	if m.currentOrderID == "" {
		return nil, nil
	}

	order, err := m.orders.FetchOrder(ctx, m.currentOrderID)
	if err != nil {
		if errors.Is(err, types.ErrOrderNotFound) {
			m.setCurrentOrder("", false)
			return nil, nil
		}
		return nil, fmt.Errorf("fetch order %s: %w", m.currentOrderID, err)
	}

	if order.Status == enum.ORDER_APPROVED {
		m.setCurrentOrder("", false)
		return order, nil
	}

	m.setCurrentOrder(order.ID, true)
	return order, nil
}

// CloseOrderStatus hides the status view and forgets the tracked order.
func (m *Manager) CloseOrderStatus() {
	m.setCurrentOrder("", false)
}

// checkSubmittable applies the shared precondition and field validation.
func (m *Manager) checkSubmittable() *ValidationError {
	errs := map[string]string{}
	if helper.IsBlank(m.paymentMethodID) {
		errs["payment_method"] = paymentMethodMessage
	}
	if helper.IsBlank(m.receiptURL) {
		errs["receipt"] = receiptMessage
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	if fieldErrs := m.Validate(); fieldErrs != nil {
		return &ValidationError{Fields: fieldErrs}
	}
	return nil
}
