package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"crafterscloset/internal/models"
)

// GORMSupplyRepository is a GORM implementation of SupplyRepository.
type GORMSupplyRepository struct {
	db *gorm.DB
}

// NewGORMSupplyRepository creates a new instance of GORMSupplyRepository.
func NewGORMSupplyRepository(db *gorm.DB) *GORMSupplyRepository {
	return &GORMSupplyRepository{
		db: db,
	}
}

// GetAll retrieves every catalog entry ordered by id.
func (r *GORMSupplyRepository) GetAll() ([]models.SupplyDetail, error) {
	var supplies []models.SupplyDetail
	if err := r.db.Order("id ASC").Find(&supplies).Error; err != nil {
		return nil, fmt.Errorf("failed to get all supply details: %w", err)
	}
	return supplies, nil
}

// GetByID retrieves a single catalog entry by its ID.
func (r *GORMSupplyRepository) GetByID(id uint) (*models.SupplyDetail, error) {
	var sd models.SupplyDetail
	if err := r.db.First(&sd, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("supply detail with ID %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get supply detail by ID %d: %w", id, err)
	}
	return &sd, nil
}

// FindMatching runs the case-insensitive substring lookup.
func (r *GORMSupplyRepository) FindMatching(m models.SupplyMatch, limit int) ([]models.SupplyDetail, error) {
	q := r.db.Model(&models.SupplyDetail{})
	q = whereContains(q, "supply_type", m.SupplyType)
	q = whereContains(q, "brand", m.Brand)
	q = whereContains(q, "color", m.Color)
	q = whereContains(q, "units", m.Units)

	var supplies []models.SupplyDetail
	if err := q.Order("id ASC").Limit(limit).Find(&supplies).Error; err != nil {
		return nil, fmt.Errorf("failed to match supply details: %w", err)
	}
	return supplies, nil
}

// Create inserts a new catalog entry.
func (r *GORMSupplyRepository) Create(sd *models.SupplyDetail) error {
	if err := r.db.Create(sd).Error; err != nil {
		return fmt.Errorf("failed to create supply detail: %w", err)
	}
	return nil
}
