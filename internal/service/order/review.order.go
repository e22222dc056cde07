package order

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"topup-store/internal/common/models"
	types "topup-store/internal/common/type"
	"topup-store/internal/pkg/helper"
	"topup-store/internal/pkg/logger"
	"topup-store/internal/pkg/rabbitmq"

	amqp "github.com/rabbitmq/amqp091-go"
)

const receiptKeyMarker = "receipts/"

// HandleOrderCreated consumes order.created events. It refreshes the cached
// status and, when a reviewer is configured, stores an automated receipt review.
// Returning an error makes the subscriber retry the message.
func (s *Service) HandleOrderCreated(ctx context.Context, msg *amqp.Delivery) error {
	event, err := rabbitmq.DecodeEvent(msg.Body)
	if err != nil {
		// malformed payloads never succeed, drop them
		logger.Error.Printf("Dropping unreadable order event: %v", err)
		return nil
	}
	if event.Type != EventOrderCreated {
		logger.Debug.Printf("Ignoring event %s on %s", event.Type, QueueOrderCreated)
		return nil
	}

	data, err := helper.StringToStruct[types.OrderCreatedEvent](string(event.Data))
	if err != nil || data == nil || data.OrderID == "" {
		logger.Error.Printf("Dropping order event %s: missing order data (%v)", event.ID, err)
		return nil
	}

	order, err := s.rp.Order.FindByID(ctx, data.OrderID)
	if err != nil {
		if errors.Is(err, types.ErrOrderNotFound) {
			logger.Warning.Printf("Order %s from event %s no longer exists", data.OrderID, event.ID)
			return nil
		}
		return err
	}
	s.cacheStatus(order.ID, order.Status)

	if s.reviewer == nil || !s.reviewer.Enabled() || order.ReviewedAt != nil {
		return nil
	}
	return s.reviewReceipt(ctx, order)
}

func (s *Service) reviewReceipt(ctx context.Context, order *models.Order) error {
	image, contentType, err := s.loadReceipt(ctx, order.ReceiptURL)
	if err != nil {
		return fmt.Errorf("failed to load receipt of order %s: %w", order.ID, err)
	}

	review, err := s.reviewer.ReviewReceipt(ctx, image, contentType, order.TotalPrice)
	if err != nil {
		return fmt.Errorf("failed to review receipt of order %s: %w", order.ID, err)
	}

	if err := s.rp.Order.SaveReview(ctx, order.ID, models.ToJSONB(review), helper.TimeRightNow()); err != nil {
		return fmt.Errorf("failed to save review of order %s: %w", order.ID, err)
	}
	logger.Info.Printf("Receipt of order %s reviewed: amount=%d matches=%t confidence=%.2f",
		order.OrderCode, review.Amount, review.MatchesTotal, review.Confidence)
	return nil
}

// loadReceipt reads receipts uploaded by the shop straight from the bucket and
// fetches anything else over HTTP.
func (s *Service) loadReceipt(ctx context.Context, ref string) ([]byte, string, error) {
	if key := s.bucketKey(ref); key != "" {
		data, contentType, err := s.s3.DownloadFile(ctx, key)
		if err == nil {
			return data, contentType, nil
		}
		if key == ref {
			return nil, "", err
		}
		logger.Warning.Printf("Bucket read of %s failed, fetching URL instead: %v", key, err)
	}

	res, err := s.http.Fetch(ctx, ref)
	if err != nil {
		return nil, "", err
	}
	contentType := res.Headers.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(res.Body)
	}
	return res.Body, contentType, nil
}

// bucketKey returns the "receipts/<file>" object key behind ref when ref is a
// bare key or a virtual-hosted or path-style URL into the receipt bucket.
// Anything else yields "".
func (s *Service) bucketKey(ref string) string {
	if s.s3 == nil {
		return ""
	}
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(ref, receiptKeyMarker) {
		return ref
	}

	u, err := url.Parse(ref)
	if err != nil || u.Host == "" {
		return ""
	}
	bucket := s.s3.GetBucketName()
	path := strings.TrimPrefix(u.Path, "/")

	var key string
	switch {
	case strings.HasPrefix(u.Hostname(), bucket+"."):
		key = path
	case strings.HasPrefix(path, bucket+"/"):
		key = strings.TrimPrefix(path, bucket+"/")
	}
	if !strings.HasPrefix(key, receiptKeyMarker) {
		return ""
	}
	return key
}
