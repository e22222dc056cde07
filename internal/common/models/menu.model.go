package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuItem is a purchasable top-up package family (one game, many variations).
type MenuItem struct {
	ID           string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name         string    `json:"name" gorm:"type:varchar(255);not null"`
	Category     string    `json:"category" gorm:"type:varchar(100);index"`
	Description  string    `json:"description" gorm:"type:text"`
	ImageURL     string    `json:"image_url" gorm:"type:text"`
	Price        int64     `json:"price" gorm:"not null;default:0"`
	Variations   JSONB     `json:"variations" gorm:"type:jsonb"`
	CustomFields JSONB     `json:"custom_fields" gorm:"type:jsonb"`
	Available    bool      `json:"available" gorm:"not null;index"`
	SortOrder    int       `json:"sort_order" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (MenuItem) TableName() string {
	return "menu_items"
}

func (m *MenuItem) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
