package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"crafterscloset/internal/logger"
	"crafterscloset/internal/models"
	"crafterscloset/internal/reconcile"
	"crafterscloset/internal/repositories"
)

// InventoryService reconciles a user's owned quantities with what they
// report buying or using.
type InventoryService struct {
	items     repositories.ItemRepository
	supplies  *SupplyService
	publisher EventPublisher // optional
}

// NewInventoryService creates a new InventoryService. publisher may be nil.
func NewInventoryService(items repositories.ItemRepository, supplies *SupplyService, publisher EventPublisher) *InventoryService {
	return &InventoryService{
		items:     items,
		supplies:  supplies,
		publisher: publisher,
	}
}

// AddQuantity records that the user acquired delta more of a supply.
// An absent item is created; a present one accumulates.
func (s *InventoryService) AddQuantity(userID, supplyDetailID uint, delta int) (*models.Item, error) {
	if delta <= 0 {
		return nil, models.NewValidationError("quantity", "must be greater than zero")
	}
	if _, err := s.supplies.GetSupplyByID(supplyDetailID); err != nil {
		return nil, err
	}

	item, err := s.items.AddQuantity(userID, supplyDetailID, delta)
	if err != nil {
		return nil, err
	}
	s.publish(models.InventoryAdded, *item)
	return item, nil
}

// AddSupply handles the "add supply" form: the supply is resolved against
// the catalog (created when new) and the quantity is added to the user's item.
func (s *InventoryService) AddSupply(userID uint, in models.AddSupplyInput) (*models.Item, *models.SupplyDetail, error) {
	qty, present, err := reconcile.ParseQuantity(string(in.Quantity))
	if err != nil {
		return nil, nil, err
	}
	if !present {
		return nil, nil, models.NewValidationError("quantity", "is required")
	}
	if qty == 0 {
		return nil, nil, models.NewValidationError("quantity", "must be greater than zero")
	}

	sd, err := s.supplies.GetOrCreateSupply(in.SupplyInput)
	if err != nil {
		return nil, nil, err
	}
	item, err := s.AddQuantity(userID, sd.ID, qty)
	if err != nil {
		return nil, nil, err
	}
	return item, sd, nil
}

// OverwriteQuantity replaces the quantity of one of the user's items.
// A blank quantity changes nothing; zero deletes the item.
func (s *InventoryService) OverwriteQuantity(userID, itemID uint, rawQuantity string) (*models.QuantityUpdate, error) {
	item, err := s.items.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, fmt.Errorf("item with ID %d for user %d: %w", itemID, userID, models.ErrNotFound)
	}

	qty, present, err := reconcile.ParseQuantity(rawQuantity)
	if err != nil {
		return nil, err
	}

	sd, err := s.supplies.GetSupplyByID(item.SupplyDetailID)
	if err != nil {
		return nil, err
	}

	if !present {
		return quantityUpdate(item.ID, item.Quantity, sd.Units), nil
	}

	if qty == 0 {
		if err := s.items.Delete(item.ID); err != nil {
			return nil, err
		}
		item.Quantity = 0
		s.publish(models.InventoryDeleted, *item)
		return &models.QuantityUpdate{
			ItemID:  item.ID,
			Deleted: true,
			Units:   sd.Units,
			Message: reconcile.DeletedMessage,
		}, nil
	}

	if err := s.items.UpdateQuantity(item.ID, qty); err != nil {
		return nil, err
	}
	item.Quantity = qty
	s.publish(models.InventoryUpdated, *item)
	return quantityUpdate(item.ID, qty, sd.Units), nil
}

// GetItem returns the user's item for a supply, or ErrNotFound when absent.
func (s *InventoryService) GetItem(userID, supplyDetailID uint) (*models.Item, error) {
	return s.items.GetByUserAndSupply(userID, supplyDetailID)
}

// ListInventory returns the user's items with catalog details.
func (s *InventoryService) ListInventory(userID uint, filter models.FilterCriteria) ([]models.InventoryRow, error) {
	return s.items.ListByUser(userID, filter)
}

// InventoryChart totals the user's inventory per supply type for charting.
func (s *InventoryService) InventoryChart(userID uint) (models.ChartData, error) {
	rows, err := s.items.ListByUser(userID, models.FilterCriteria{})
	if err != nil {
		return models.ChartData{}, err
	}
	return reconcile.InventoryChart(rows, reconcile.DefaultChartWeights), nil
}

func (s *InventoryService) publish(eventType string, item models.Item) {
	if s.publisher == nil {
		return
	}
	event := models.InventoryEvent{
		ID:             uuid.NewString(),
		Type:           eventType,
		UserID:         item.UserID,
		ItemID:         item.ID,
		SupplyDetailID: item.SupplyDetailID,
		Quantity:       item.Quantity,
		Timestamp:      time.Now().UTC(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		logger.Error("failed to marshal inventory event", zap.Error(err))
		return
	}
	if err := s.publisher.Publish(eventType, body); err != nil {
		logger.Warn("failed to publish inventory event",
			zap.String("type", eventType),
			zap.Uint("item_id", item.ID),
			zap.Error(err))
	}
}

func quantityUpdate(itemID uint, qty int, units string) *models.QuantityUpdate {
	return &models.QuantityUpdate{
		ItemID:   itemID,
		Quantity: qty,
		Units:    units,
		Message:  fmt.Sprintf("%d %s", qty, units),
	}
}
