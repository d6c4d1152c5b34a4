package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"crafterscloset/internal/models"
)

const inventoryColumns = "items.id AS item_id, items.supply_detail_id, supply_details.supply_type, " +
	"supply_details.brand, supply_details.color, supply_details.units, supply_details.purchase_url, items.quantity"

// GORMItemRepository is a GORM implementation of ItemRepository.
type GORMItemRepository struct {
	db *gorm.DB
}

// NewGORMItemRepository creates a new instance of GORMItemRepository.
func NewGORMItemRepository(db *gorm.DB) *GORMItemRepository {
	return &GORMItemRepository{
		db: db,
	}
}

// GetByID retrieves a single item by its ID.
func (r *GORMItemRepository) GetByID(id uint) (*models.Item, error) {
	var item models.Item
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("item with ID %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get item by ID %d: %w", id, err)
	}
	return &item, nil
}

// GetByUserAndSupply retrieves the user's item for a catalog entry.
func (r *GORMItemRepository) GetByUserAndSupply(userID, supplyDetailID uint) (*models.Item, error) {
	var item models.Item
	err := r.db.Where("user_id = ? AND supply_detail_id = ?", userID, supplyDetailID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("item for user %d and supply detail %d: %w", userID, supplyDetailID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get item for user %d and supply detail %d: %w", userID, supplyDetailID, err)
	}
	return &item, nil
}

// AddQuantity upserts on the (user_id, supply_detail_id) unique index so two
// concurrent adds both land.
func (r *GORMItemRepository) AddQuantity(userID, supplyDetailID uint, delta int) (*models.Item, error) {
	var item models.Item
	err := r.db.Transaction(func(tx *gorm.DB) error {
		row := models.Item{UserID: userID, SupplyDetailID: supplyDetailID, Quantity: delta}
		upsert := clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "supply_detail_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("items.quantity + excluded.quantity"),
				"updated_at": time.Now(),
			}),
		}
		if err := tx.Omit(clause.Associations).Clauses(upsert).Create(&row).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ? AND supply_detail_id = ?", userID, supplyDetailID).First(&item).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add %d to item for user %d and supply detail %d: %w", delta, userID, supplyDetailID, err)
	}
	return &item, nil
}

// UpdateQuantity replaces an item's quantity.
func (r *GORMItemRepository) UpdateQuantity(id uint, quantity int) error {
	res := r.db.Model(&models.Item{}).Where("id = ?", id).Update("quantity", quantity)
	if res.Error != nil {
		return fmt.Errorf("failed to update item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("item with ID %d for update: %w", id, models.ErrNotFound)
	}
	return nil
}

// Delete deletes an item by its ID.
func (r *GORMItemRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Item{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("item with ID %d for deletion: %w", id, models.ErrNotFound)
	}
	return nil
}

// ListByUser returns the user's inventory joined with catalog details.
// Only populated filter fields become predicates.
func (r *GORMItemRepository) ListByUser(userID uint, filter models.FilterCriteria) ([]models.InventoryRow, error) {
	q := r.db.Table("items").
		Select(inventoryColumns).
		Joins("JOIN supply_details ON supply_details.id = items.supply_detail_id").
		Where("items.user_id = ?", userID)
	q = whereEqualFold(q, "supply_details.supply_type", filter.SupplyType)
	q = whereEqualFold(q, "supply_details.brand", filter.Brand)
	q = whereEqualFold(q, "supply_details.color", filter.Color)
	if filter.Search != "" {
		p := containsPattern(filter.Search)
		q = q.Where("(LOWER(supply_details.supply_type) LIKE ? ESCAPE '\\' OR "+
			"LOWER(supply_details.brand) LIKE ? ESCAPE '\\' OR "+
			"LOWER(supply_details.color) LIKE ? ESCAPE '\\')", p, p, p)
	}

	rows := []models.InventoryRow{}
	if err := q.Order("items.id ASC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list inventory for user %d: %w", userID, err)
	}
	return rows, nil
}

// QuantitiesBySupply loads owned quantities for many supplies in one query.
func (r *GORMItemRepository) QuantitiesBySupply(userID uint, supplyDetailIDs []uint) (map[uint]int, error) {
	owned := make(map[uint]int, len(supplyDetailIDs))
	if len(supplyDetailIDs) == 0 {
		return owned, nil
	}

	var items []models.Item
	err := r.db.Select("supply_detail_id", "quantity").
		Where("user_id = ? AND supply_detail_id IN ?", userID, supplyDetailIDs).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load quantities for user %d: %w", userID, err)
	}
	for _, item := range items {
		owned[item.SupplyDetailID] = item.Quantity
	}
	return owned, nil
}
