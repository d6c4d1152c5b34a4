package repositories

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"crafterscloset/internal/models"
	"crafterscloset/internal/reconcile"
)

// MemoryItemRepository is an in-memory implementation of ItemRepository.
// It reads catalog details from the supply repository it was built with.
type MemoryItemRepository struct {
	items    map[uint]models.Item
	supplies SupplyRepository
	nextID   uint
	mu       sync.RWMutex
}

// NewMemoryItemRepository creates a new instance of MemoryItemRepository.
func NewMemoryItemRepository(supplies SupplyRepository) *MemoryItemRepository {
	return &MemoryItemRepository{
		items:    make(map[uint]models.Item),
		supplies: supplies,
		nextID:   1,
	}
}

// GetByID returns an item by its ID.
func (r *MemoryItemRepository) GetByID(id uint) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("item with ID %d: %w", id, models.ErrNotFound)
	}
	return &item, nil
}

// GetByUserAndSupply returns the user's item for a catalog entry.
func (r *MemoryItemRepository) GetByUserAndSupply(userID, supplyDetailID uint) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if item, ok := r.find(userID, supplyDetailID); ok {
		return &item, nil
	}
	return nil, fmt.Errorf("item for user %d and supply detail %d: %w", userID, supplyDetailID, models.ErrNotFound)
}

// AddQuantity does its read-modify-write under the write lock.
func (r *MemoryItemRepository) AddQuantity(userID, supplyDetailID uint, delta int) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	item, ok := r.find(userID, supplyDetailID)
	if ok {
		item.Quantity += delta
		item.UpdatedAt = now
	} else {
		item = models.Item{
			ID:             r.nextID,
			UserID:         userID,
			SupplyDetailID: supplyDetailID,
			Quantity:       delta,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		r.nextID++
	}
	r.items[item.ID] = item
	return &item, nil
}

// UpdateQuantity replaces an item's quantity.
func (r *MemoryItemRepository) UpdateQuantity(id uint, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return fmt.Errorf("item with ID %d for update: %w", id, models.ErrNotFound)
	}
	item.Quantity = quantity
	item.UpdatedAt = time.Now()
	r.items[id] = item
	return nil
}

// Delete removes an item by its ID.
func (r *MemoryItemRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("item with ID %d for deletion: %w", id, models.ErrNotFound)
	}
	delete(r.items, id)
	return nil
}

// ListByUser returns the user's inventory joined with catalog details.
func (r *MemoryItemRepository) ListByUser(userID uint, filter models.FilterCriteria) ([]models.InventoryRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := []models.InventoryRow{}
	for _, item := range r.items {
		if item.UserID != userID {
			continue
		}
		sd, err := r.supplies.GetByID(item.SupplyDetailID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				continue
			}
			return nil, err
		}
		row := models.InventoryRow{
			ItemID:         item.ID,
			SupplyDetailID: sd.ID,
			SupplyType:     sd.SupplyType,
			Brand:          sd.Brand,
			Color:          sd.Color,
			Units:          sd.Units,
			PurchaseURL:    sd.PurchaseURL,
			Quantity:       item.Quantity,
		}
		if reconcile.MatchesFilter(row, filter) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ItemID < rows[j].ItemID })
	return rows, nil
}

// QuantitiesBySupply maps supply detail id to owned quantity.
func (r *MemoryItemRepository) QuantitiesBySupply(userID uint, supplyDetailIDs []uint) (map[uint]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owned := make(map[uint]int, len(supplyDetailIDs))
	for _, id := range supplyDetailIDs {
		if item, ok := r.find(userID, id); ok {
			owned[id] = item.Quantity
		}
	}
	return owned, nil
}

func (r *MemoryItemRepository) find(userID, supplyDetailID uint) (models.Item, bool) {
	for _, item := range r.items {
		if item.UserID == userID && item.SupplyDetailID == supplyDetailID {
			return item, true
		}
	}
	return models.Item{}, false
}
