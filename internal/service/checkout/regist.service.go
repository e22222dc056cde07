package checkout

import (
	"context"
	"crypto/rsa"
	"time"

	"topup-store/internal/common/enum"
	types "topup-store/internal/common/type"
	"topup-store/internal/pkg/waflow"
	"topup-store/internal/repository"
)

type Service struct {
	ctx            context.Context
	store          Store
	rp             repository.IRepository
	orders         OrderGateway
	uploader       ReceiptUploader
	composer       *Composer
	mode           enum.OrderModeEnum
	whatsappNumber string
	ttl            time.Duration
	waKey          *rsa.PrivateKey
}

type IService interface {
	CreateSession() *types.Response
	GetSnapshot(sessionID string) *types.Response
	SetCart(sessionID string, req *SetCartRequest) *types.Response
	SelectPaymentMethod(sessionID string, req *SelectPaymentMethodRequest) *types.Response
	SetField(sessionID string, req *SetFieldRequest) *types.Response
	SetBulkSelection(sessionID string, req *SetBulkSelectionRequest) *types.Response
	SetBulkValue(sessionID string, req *SetBulkValueRequest) *types.Response
	UploadReceipt(sessionID string, file *types.UploadFilesRes) *types.Response
	RemoveReceipt(sessionID string) *types.Response
	CopyMessage(sessionID string) *types.Response
	Submit(sessionID string) *types.Response
	RecoverOrder(sessionID string) *types.Response
	CloseOrderStatus(sessionID string) *types.Response
	SetView(sessionID string, req *SetViewRequest) *types.Response
	WAFlow(req *waflow.EncryptedRequest) *types.Response
}

type Options struct {
	Store          Store
	Orders         OrderGateway
	Uploader       ReceiptUploader
	Currency       string
	Mode           enum.OrderModeEnum
	WhatsAppNumber string
	SessionTTL     time.Duration
	WAKey          *rsa.PrivateKey
}

func NewService(ctx context.Context, rp repository.IRepository, opts Options) IService {
	mode := opts.Mode
	if !mode.IsValid() {
		mode = enum.ORDER_MODE_WHATSAPP
	}
	return &Service{
		ctx:            ctx,
		store:          opts.Store,
		rp:             rp,
		orders:         opts.Orders,
		uploader:       opts.Uploader,
		composer:       NewComposer(opts.Currency),
		mode:           mode,
		whatsappNumber: opts.WhatsAppNumber,
		ttl:            opts.SessionTTL,
		waKey:          opts.WAKey,
	}
}

type CartItemRequest struct {
	ID          string `json:"id" validate:"required,cartItemID"`
	VariationID string `json:"variation_id"`
	Quantity    int    `json:"quantity" validate:"required,min=1,max=999"`
}

type SetCartRequest struct {
	Items []CartItemRequest `json:"items" validate:"dive"`
}

type SelectPaymentMethodRequest struct {
	PaymentMethodID string `json:"payment_method_id" validate:"required"`
}

type SetFieldRequest struct {
	Key   string `json:"key" validate:"required,max=255"`
	Value string `json:"value" validate:"max=500"`
}

type SetBulkSelectionRequest struct {
	OriginalIDs []string `json:"original_ids"`
}

type SetBulkValueRequest struct {
	Position *int   `json:"position" validate:"required,min=0"`
	Value    string `json:"value" validate:"max=500"`
}

type SetViewRequest struct {
	View     string `json:"view" validate:"max=50"`
	Category string `json:"category" validate:"max=100"`
	Search   string `json:"search" validate:"max=100"`
}

type ReceiptState struct {
	URL         string       `json:"url"`
	Preview     string       `json:"preview"`
	File        *ReceiptFile `json:"file"`
	Uploading   bool         `json:"uploading"`
	UploadError string       `json:"upload_error,omitempty"`
}

// Snapshot is everything a client needs to render the checkout.
type Snapshot struct {
	SessionID       string             `json:"session_id"`
	Mode            enum.OrderModeEnum `json:"mode"`
	Cart            []CartItem         `json:"cart"`
	Total           int64              `json:"total"`
	TotalFormatted  string             `json:"total_formatted"`
	PaymentMethodID string             `json:"payment_method_id"`
	FieldGroups     []FieldGroup       `json:"field_groups"`
	FieldValues     map[string]string  `json:"field_values"`
	BulkEnabled     bool               `json:"bulk_enabled"`
	BulkSelected    []string           `json:"bulk_selected"`
	BulkFields      []BulkField        `json:"bulk_fields"`
	Receipt         ReceiptState       `json:"receipt"`
	MessageCopied   bool               `json:"message_copied"`
	MessagePreview  string             `json:"message_preview"`
	SubmitError     string             `json:"submit_error,omitempty"`
	CurrentOrderID  string             `json:"current_order_id,omitempty"`
	ShowOrderStatus bool               `json:"show_order_status"`
	View            ViewState          `json:"view"`
}

type CopyMessageResponse struct {
	Message  string   `json:"message"`
	Snapshot Snapshot `json:"snapshot"`
}

type RecoverOrderResponse struct {
	Order    *types.OrderSummary `json:"order"`
	Snapshot Snapshot            `json:"snapshot"`
}
