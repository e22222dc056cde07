package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentMethod struct {
	ID            string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name          string    `json:"name" gorm:"type:varchar(100);not null"`
	AccountNumber string    `json:"account_number" gorm:"type:varchar(100)"`
	AccountName   string    `json:"account_name" gorm:"type:varchar(255)"`
	IconURL       string    `json:"icon_url" gorm:"type:text"`
	QRURL         string    `json:"qr_url" gorm:"type:text"`
	Active        bool      `json:"active" gorm:"not null;index"`
	SortOrder     int       `json:"sort_order" gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (PaymentMethod) TableName() string {
	return "payment_methods"
}

func (p *PaymentMethod) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
