package database

import (
	"fmt"

	"topup-store/internal/common/models"
	"topup-store/internal/pkg/logger"
)

func (db *Database) RunMigrations() error {
	logger.Info.Println("Starting database migrations...")

	// Define models in dependency order
	models := []interface{}{
		&models.PaymentMethod{},
		&models.MenuItem{},
		&models.Order{},
	}

	for _, model := range models {
		logger.Info.Printf("Migrating model: %T", model)
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	if db.Config.Driver == POSTGRES {
		if err := db.createIndexes(); err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}
	}

	logger.Info.Println("Database migrations completed successfully")
	return nil
}

func (db *Database) createIndexes() error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_orders_status_created_at ON orders(status, created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_menu_items_category_sort ON menu_items(category, sort_order);`,
		`CREATE INDEX IF NOT EXISTS idx_payment_methods_active_sort ON payment_methods(active, sort_order);`,
	}

	for _, query := range indexes {
		if err := db.Exec(query).Error; err != nil {
			logger.Error.Printf("Error creating index: %s, Error: %v", query, err)
			return err
		}
	}

	return nil
}
