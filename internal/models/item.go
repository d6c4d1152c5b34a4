package models

import (
	"encoding/json"
	"errors"
	"time"
)

// Item is a user's owned quantity of one SupplyDetail.
// There is at most one row per (user, supply detail).
type Item struct {
	ID             uint          `json:"id" gorm:"primaryKey"`
	UserID         uint          `json:"user_id" gorm:"not null;uniqueIndex:idx_items_user_supply"`
	SupplyDetailID uint          `json:"supply_detail_id" gorm:"not null;uniqueIndex:idx_items_user_supply"`
	Quantity       int           `json:"quantity" gorm:"not null"`
	User           *User         `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	SupplyDetail   *SupplyDetail `json:"-"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// InventoryRow is an item flattened together with its catalog details.
type InventoryRow struct {
	ItemID         uint    `json:"item_id"`
	SupplyDetailID uint    `json:"supply_detail_id"`
	SupplyType     string  `json:"supply_type"`
	Brand          *string `json:"brand"`
	Color          *string `json:"color"`
	Units          string  `json:"units"`
	PurchaseURL    *string `json:"purchase_url"`
	Quantity       int     `json:"quantity"`
}

// FilterCriteria narrows an inventory listing. Nil fields are not applied.
type FilterCriteria struct {
	SupplyType *string
	Brand      *string
	Color      *string
	// Search matches any of type, brand or color as a substring.
	Search     string
}

// QuantityUpdate describes the outcome of overwriting an item's quantity.
type QuantityUpdate struct {
	ItemID   uint   `json:"item_id"`
	Deleted  bool   `json:"deleted"`
	Quantity int    `json:"quantity"`
	Units    string `json:"units"`
	Message  string `json:"message"`
}

// AddSupplyInput is the "add supply" form: a supply description plus the
// quantity acquired, as submitted.
type AddSupplyInput struct {
	SupplyInput
	Quantity QuantityText `json:"quantity" form:"quantity" validate:"required"`
}

// QuantityText is a quantity exactly as submitted. JSON clients may send a
// number or a string; either way it reaches reconcile.ParseQuantity as text.
type QuantityText string

func (q *QuantityText) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*q = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*q = QuantityText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("quantity must be a number or a string")
	}
	*q = QuantityText(n.String())
	return nil
}
