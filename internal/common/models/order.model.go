package models

import (
	"time"

	"topup-store/internal/common/enum"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Order struct {
	ID                string               `json:"id" gorm:"type:varchar(36);primaryKey"`
	OrderCode         string               `json:"order_code" gorm:"type:varchar(32);uniqueIndex;not null"`
	Status            enum.OrderStatusEnum `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	Items             JSONB                `json:"items" gorm:"type:jsonb;not null"`
	CustomerInfo      JSONB                `json:"customer_info" gorm:"type:jsonb"`
	PaymentMethodID   string               `json:"payment_method_id" gorm:"type:varchar(36);index"`
	PaymentMethodName string               `json:"payment_method_name" gorm:"type:varchar(255)"`
	ReceiptURL        string               `json:"receipt_url" gorm:"type:text"`
	TotalPrice        int64                `json:"total_price" gorm:"not null"`
	ReceiptReview     JSONB                `json:"receipt_review,omitempty" gorm:"type:jsonb"`
	CreatedAt         time.Time            `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time            `json:"updated_at" gorm:"autoUpdateTime"`
	ReviewedAt        *time.Time           `json:"reviewed_at"`
}

func (Order) TableName() string {
	return "orders"
}

func (o *Order) BeforeCreate(_ *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = enum.ORDER_PENDING
	}
	return nil
}
