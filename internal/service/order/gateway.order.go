package order

import (
	"context"
	"fmt"
	"strings"

	"topup-store/internal/common/enum"
	"topup-store/internal/common/models"
	types "topup-store/internal/common/type"
	"topup-store/internal/pkg/logger"
	"topup-store/internal/pkg/validation"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

func newOrderCode() (string, error) {
	id, err := gonanoid.Generate(orderCodeAlphabet, orderCodeLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate order code: %w", err)
	}
	return orderCodePrefix + id, nil
}

// CreateOrder persists a pending order and announces it on the order.created
// queue. A failed publish is logged and does not fail the order.
func (s *Service) CreateOrder(ctx context.Context, payload *types.CreateOrderPayload) (*types.OrderSummary, error) {
	if err := validation.Validate(payload); err != nil {
		return nil, err
	}

	code, err := newOrderCode()
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		OrderCode:         code,
		Status:            enum.ORDER_PENDING,
		Items:             models.ToJSONB(payload.Items),
		CustomerInfo:      models.ToJSONB(payload.CustomerInfo),
		PaymentMethodID:   payload.PaymentMethodID,
		PaymentMethodName: payload.PaymentMethodName,
		ReceiptURL:        s.durableReceipt(payload.ReceiptURL),
		TotalPrice:        payload.TotalPrice,
	}
	if err := s.rp.Order.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}
	logger.Info.Printf("Order %s created (%s)", order.OrderCode, order.ID)

	s.cacheStatus(order.ID, order.Status)

	if s.publisher != nil {
		event := types.OrderCreatedEvent{
			OrderID:    order.ID,
			OrderCode:  order.OrderCode,
			ReceiptURL: order.ReceiptURL,
			TotalPrice: order.TotalPrice,
		}
		if err := s.publisher.PublishEvent(ctx, QueueOrderCreated, EventOrderCreated, event); err != nil {
			logger.Warning.Printf("Failed to publish %s for order %s: %v", EventOrderCreated, order.ID, err)
		}
	}

	return s.toSummary(order), nil
}

// FetchOrder reads an order by id. Unknown ids return types.ErrOrderNotFound.
func (s *Service) FetchOrder(ctx context.Context, id string) (*types.OrderSummary, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, types.ErrOrderNotFound
	}

	order, err := s.rp.Order.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toSummary(order), nil
}

func statusCacheKey(id string) string {
	return "order:status:" + id
}

func (s *Service) cacheStatus(id string, status enum.OrderStatusEnum) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Set(statusCacheKey(id), status, statusCacheTTL); err != nil {
		logger.Warning.Printf("Failed to cache status of order %s: %v", id, err)
	}
}

// durableReceipt swaps a link into the receipt bucket for its object key, so
// stored orders never hold a presigned URL that expires.
func (s *Service) durableReceipt(ref string) string {
	if key := s.bucketKey(ref); key != "" {
		return key
	}
	return ref
}

// receiptLink turns a stored receipt reference into a link the caller can open.
// Bucket keys are presigned on every read.
func (s *Service) receiptLink(ref string) string {
	key := s.bucketKey(ref)
	if key == "" {
		return ref
	}
	link, err := s.s3.GetPresignedURL(key)
	if err != nil {
		logger.Warning.Printf("Failed to presign receipt %s: %v", key, err)
		return ""
	}
	return link
}

func (s *Service) toSummary(order *models.Order) *types.OrderSummary {
	summary := &types.OrderSummary{
		ID:                order.ID,
		OrderCode:         order.OrderCode,
		Status:            order.Status,
		Items:             []types.OrderItem{},
		CustomerInfo:      map[string]string{},
		PaymentMethodName: order.PaymentMethodName,
		ReceiptURL:        s.receiptLink(order.ReceiptURL),
		TotalPrice:        order.TotalPrice,
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
	}

	if err := order.Items.Decode(&summary.Items); err != nil {
		logger.Warning.Printf("Order %s has unreadable items: %v", order.ID, err)
	}
	if err := order.CustomerInfo.Decode(&summary.CustomerInfo); err != nil {
		logger.Warning.Printf("Order %s has unreadable customer info: %v", order.ID, err)
	}
	if len(order.ReceiptReview) > 0 && string(order.ReceiptReview) != "null" {
		var review types.ReceiptReview
		if err := order.ReceiptReview.Decode(&review); err == nil {
			summary.ReceiptReview = &review
		}
	}
	return summary
}
