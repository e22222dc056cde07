package types

import (
	"time"

	"topup-store/internal/common/enum"
)

type OrderItem struct {
	MenuItemID string `json:"menu_item_id"`
	CartItemID string `json:"cart_item_id"`
	Name       string `json:"name"`
	Variation  string `json:"variation,omitempty"`
	Quantity   int    `json:"quantity"`
	UnitPrice  int64  `json:"unit_price"`
	TotalPrice int64  `json:"total_price"`
}

// CreateOrderPayload is what checkout hands to the order gateway.
type CreateOrderPayload struct {
	Items             []OrderItem       `json:"items" validate:"required,min=1,dive"`
	CustomerInfo      map[string]string `json:"customer_info" validate:"required"`
	PaymentMethodID   string            `json:"payment_method_id" validate:"required"`
	PaymentMethodName string            `json:"payment_method_name"`
	ReceiptURL        string            `json:"receipt_url" validate:"required"`
	TotalPrice        int64             `json:"total_price" validate:"gte=0"`
}

type OrderSummary struct {
	ID                string               `json:"id"`
	OrderCode         string               `json:"order_code"`
	Status            enum.OrderStatusEnum `json:"status"`
	Items             []OrderItem          `json:"items"`
	CustomerInfo      map[string]string    `json:"customer_info"`
	PaymentMethodName string               `json:"payment_method_name"`
	ReceiptURL        string               `json:"receipt_url"`
	TotalPrice        int64                `json:"total_price"`
	ReceiptReview     *ReceiptReview       `json:"receipt_review,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

// OrderCreatedEvent is published on the order.created queue.
type OrderCreatedEvent struct {
	OrderID    string `json:"order_id"`
	OrderCode  string `json:"order_code"`
	ReceiptURL string `json:"receipt_url"`
	TotalPrice int64  `json:"total_price"`
}
