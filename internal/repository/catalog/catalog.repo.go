package catalog

import (
	"context"
	"errors"
	"strings"

	"topup-store/internal/common/models"
	types "topup-store/internal/common/type"
	database "topup-store/internal/pkg/db"

	"gorm.io/gorm"
)

type MenuFilter struct {
	Category string
	Search   string
}

type IRepository interface {
	ListPaymentMethods(ctx context.Context, activeOnly bool) ([]models.PaymentMethod, error)
	FindPaymentMethod(ctx context.Context, id string) (*models.PaymentMethod, error)
	CreatePaymentMethod(ctx context.Context, method *models.PaymentMethod) error
	ListMenuItems(ctx context.Context, filter MenuFilter) ([]models.MenuItem, error)
	FindMenuItem(ctx context.Context, id string) (*models.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *models.MenuItem) error
}

type Repository struct {
	db *database.Database
}

func NewRepo(db *database.Database) IRepository {
	return &Repository{db: db}
}

func (r *Repository) ListPaymentMethods(ctx context.Context, activeOnly bool) ([]models.PaymentMethod, error) {
	query := r.db.WithContext(ctx)
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var methods []models.PaymentMethod
	if err := query.Order("sort_order ASC, name ASC").Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}

func (r *Repository) FindPaymentMethod(ctx context.Context, id string) (*models.PaymentMethod, error) {
	var method models.PaymentMethod
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&method).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrPaymentMethodNotFound
		}
		return nil, err
	}
	return &method, nil
}

func (r *Repository) CreatePaymentMethod(ctx context.Context, method *models.PaymentMethod) error {
	return r.db.WithContext(ctx).Create(method).Error
}

// ListMenuItems returns available items. Search matches the name case-insensitively.
func (r *Repository) ListMenuItems(ctx context.Context, filter MenuFilter) ([]models.MenuItem, error) {
	query := r.db.WithContext(ctx).Where("available = ?", true)
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var items []models.MenuItem
	if err := query.Order("sort_order ASC, name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository) FindMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrMenuItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *Repository) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}
