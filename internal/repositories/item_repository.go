package repositories

import "crafterscloset/internal/models"

// ItemRepository defines the interface for inventory data access.
type ItemRepository interface {
	GetByID(id uint) (*models.Item, error)
	GetByUserAndSupply(userID, supplyDetailID uint) (*models.Item, error)
	// AddQuantity creates the (user, supply) row with delta, or adds delta to
	// the existing row, in one atomic step.
	AddQuantity(userID, supplyDetailID uint, delta int) (*models.Item, error)
	UpdateQuantity(id uint, quantity int) error
	Delete(id uint) error
	ListByUser(userID uint, filter models.FilterCriteria) ([]models.InventoryRow, error)
	// QuantitiesBySupply maps supply detail id to owned quantity for the
	// given ids. Unowned supplies are absent from the map.
	QuantitiesBySupply(userID uint, supplyDetailIDs []uint) (map[uint]int, error)
}
