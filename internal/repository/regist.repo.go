package repository

import (
	database "topup-store/internal/pkg/db"
	catalogRepo "topup-store/internal/repository/catalog"
	orderRepo "topup-store/internal/repository/order"
)

// IRepository is a container for all repository interfaces
type IRepository struct {
	Order   orderRepo.IRepository
	Catalog catalogRepo.IRepository
}

func NewRepository(db *database.Database) IRepository {
	return IRepository{
		Order:   orderRepo.NewRepo(db),
		Catalog: catalogRepo.NewRepo(db),
	}
}
