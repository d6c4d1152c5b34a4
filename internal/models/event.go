package models

import "time"

// Inventory event types, also used as routing keys.
const (
	InventoryAdded   = "inventory.added"
	InventoryUpdated = "inventory.updated"
	InventoryDeleted = "inventory.deleted"
)

// InventoryEvent is published whenever a user's owned quantity changes.
type InventoryEvent struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	UserID         uint      `json:"user_id"`
	ItemID         uint      `json:"item_id"`
	SupplyDetailID uint      `json:"supply_detail_id"`
	Quantity       int       `json:"quantity"`
	Timestamp      time.Time `json:"timestamp"`
}
