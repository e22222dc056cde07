package order

import (
	"context"
	"errors"
	"time"

	"topup-store/internal/common/enum"
	"topup-store/internal/common/models"
	types "topup-store/internal/common/type"
	database "topup-store/internal/pkg/db"

	"gorm.io/gorm"
)

type ListFilter struct {
	Status enum.OrderStatusEnum
	Limit  int
	Offset int
}

type IRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context, filter ListFilter) ([]models.Order, int64, error)
	UpdateStatus(ctx context.Context, id string, from, to enum.OrderStatusEnum) error
	SaveReview(ctx context.Context, id string, review models.JSONB, reviewedAt time.Time) error
}

type Repository struct {
	db *database.Database
}

func NewRepo(db *database.Database) IRepository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *Repository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// List returns orders newest first together with the unpaged total.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var orders []models.Order
	err := query.Order("created_at DESC").Limit(limit).Offset(filter.Offset).Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus moves an order from one status to another. The current status
// is part of the filter so a concurrent transition is not overwritten.
func (r *Repository) UpdateStatus(ctx context.Context, id string, from, to enum.OrderStatusEnum) error {
	res := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return types.ErrInvalidStatusTransition
	}
	return nil
}

func (r *Repository) SaveReview(ctx context.Context, id string, review models.JSONB, reviewedAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(map[string]any{
		"receipt_review": review,
		"reviewed_at":    reviewedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return types.ErrOrderNotFound
	}
	return nil
}
