package catalog

import (
	"context"

	types "topup-store/internal/common/type"
	"topup-store/internal/pkg/helper"
	"topup-store/internal/repository"
)

type Service struct {
	ctx  context.Context
	rp   repository.IRepository
	http *helper.HTTPClient
}

type IService interface {
	ListMenu(req *ListMenuRequest) *types.Response
	ListPaymentMethods() *types.Response
	CreatePaymentMethod(req *CreatePaymentMethodRequest) *types.Response
	DownloadQR(id, userAgent string) *types.Response
}

func NewService(ctx context.Context, rp repository.IRepository, httpClient *helper.HTTPClient) IService {
	if httpClient == nil {
		httpClient = helper.NewHTTPClient(&helper.HTTPClientConfig{RequestTimeout: 15, MaxBodyBytes: 5 << 20})
	}
	return &Service{
		ctx:  ctx,
		rp:   rp,
		http: httpClient,
	}
}

type ListMenuRequest struct {
	Category string `form:"category" validate:"omitempty,max=100"`
	Search   string `form:"search" validate:"omitempty,max=100"`
}

type MenuItemResponse struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Category     string              `json:"category"`
	Description  string              `json:"description"`
	ImageURL     string              `json:"image_url"`
	Price        int64               `json:"price"`
	Variations   []types.Variation   `json:"variations"`
	CustomFields []types.CustomField `json:"custom_fields"`
}

type PaymentMethodResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
	IconURL       string `json:"icon_url"`
	HasQR         bool   `json:"has_qr"`
}

type CreatePaymentMethodRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	AccountNumber string `json:"account_number" validate:"omitempty,max=100"`
	AccountName   string `json:"account_name" validate:"omitempty,max=255"`
	IconURL       string `json:"icon_url" validate:"omitempty,url"`
	QRURL         string `json:"qr_url" validate:"omitempty,url"`
	Active        *bool  `json:"active"`
	SortOrder     int    `json:"sort_order" validate:"gte=0"`
}

// QRDownload tells the handler to either stream Data as an attachment or
// redirect to URL.
type QRDownload struct {
	Redirect    bool
	URL         string
	FileName    string
	ContentType string
	Data        []byte
}
