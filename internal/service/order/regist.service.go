package order

import (
	"context"
	"time"

	"topup-store/internal/common/enum"
	types "topup-store/internal/common/type"
	"topup-store/internal/pkg/helper"
	"topup-store/internal/pkg/redis"
	s3aws "topup-store/internal/pkg/storage/s3"
	"topup-store/internal/repository"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	QueueOrderCreated = "order.created"
	EventOrderCreated = "order.created"

	orderCodePrefix   = "TP-"
	orderCodeAlphabet = "0123456789ABCDEFGHJKLMNPQRSTUVWXYZ"
	orderCodeLength   = 10
	statusCacheTTL    = 10 * time.Minute
)

// EventPublisher is satisfied by *rabbitmq.Publisher.
type EventPublisher interface {
	PublishEvent(ctx context.Context, queueName, eventType string, data interface{}) error
}

// ReceiptReviewer is satisfied by *ai.AiClient.
type ReceiptReviewer interface {
	Enabled() bool
	ReviewReceipt(ctx context.Context, image []byte, contentType string, expectedTotal int64) (*types.ReceiptReview, error)
}

type Service struct {
	ctx       context.Context
	redis     redis.IRedis
	rp        repository.IRepository
	publisher EventPublisher
	reviewer  ReceiptReviewer
	s3        s3aws.Is3
	http      *helper.HTTPClient
}

type IService interface {
	CreateOrder(ctx context.Context, payload *types.CreateOrderPayload) (*types.OrderSummary, error)
	FetchOrder(ctx context.Context, id string) (*types.OrderSummary, error)

	GetOrder(id string) *types.Response
	ListOrders(req *ListOrdersRequest) *types.Response
	UpdateStatus(id string, req *UpdateStatusRequest) *types.Response

	HandleOrderCreated(ctx context.Context, msg *amqp.Delivery) error
}

type Options struct {
	Redis     redis.IRedis
	Publisher EventPublisher
	Reviewer  ReceiptReviewer
	S3        s3aws.Is3
	HTTP      *helper.HTTPClient
}

func NewService(ctx context.Context, rp repository.IRepository, opts Options) IService {
	httpClient := opts.HTTP
	if httpClient == nil {
		httpClient = helper.NewHTTPClient(&helper.HTTPClientConfig{RequestTimeout: 30, MaxBodyBytes: 10 << 20})
	}
	return &Service{
		ctx:       ctx,
		redis:     opts.Redis,
		rp:        rp,
		publisher: opts.Publisher,
		reviewer:  opts.Reviewer,
		s3:        opts.S3,
		http:      httpClient,
	}
}

type ListOrdersRequest struct {
	Status enum.OrderStatusEnum `form:"status" validate:"omitempty,enum"`
	Limit  int                  `form:"limit" validate:"omitempty,min=1,max=100"`
	Offset int                  `form:"offset" validate:"omitempty,min=0"`
}

type ListOrdersResponse struct {
	Orders []types.OrderSummary `json:"orders"`
	Total  int64                `json:"total"`
}

type UpdateStatusRequest struct {
	Status enum.OrderStatusEnum `json:"status" validate:"required,enum"`
}

// OrderStatusView is the public order status returned to shoppers.
type OrderStatusView struct {
	ID        string               `json:"id"`
	OrderCode string               `json:"order_code"`
	Status    enum.OrderStatusEnum `json:"status"`
	Total     int64                `json:"total_price"`
	UpdatedAt time.Time            `json:"updated_at"`
}
