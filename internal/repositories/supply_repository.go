package repositories

import "crafterscloset/internal/models"

// SupplyRepository defines the interface for catalog data access.
type SupplyRepository interface {
	GetAll() ([]models.SupplyDetail, error)
	GetByID(id uint) (*models.SupplyDetail, error)
	// FindMatching returns up to limit entries matching m, lowest id first.
	FindMatching(m models.SupplyMatch, limit int) ([]models.SupplyDetail, error)
	Create(sd *models.SupplyDetail) error
}
