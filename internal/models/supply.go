package models

import "time"

// SupplyDetail is a catalog entry describing one kind of craft supply.
// It is shared by every user and project.
type SupplyDetail struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SupplyType  string    `json:"supply_type" gorm:"type:varchar(32);not null"`
	Brand       *string   `json:"brand" gorm:"type:varchar(64)"`
	Color       *string   `json:"color" gorm:"type:varchar(32)"`
	Units       string    `json:"units" gorm:"type:varchar(16);not null"`
	PurchaseURL *string   `json:"purchase_url" gorm:"type:varchar(256)"`
	CreatedAt   time.Time `json:"created_at"`
}

// SupplyMatch holds the attributes used to look up an existing catalog entry.
// Empty fields are not constrained.
type SupplyMatch struct {
	SupplyType string `json:"supply_type" query:"supply_type"`
	Brand      string `json:"brand" query:"brand"`
	Color      string `json:"color" query:"color"`
	Units      string `json:"units" query:"units"`
}

// SupplyInput is the user-entered description of a supply.
type SupplyInput struct {
	SupplyType  string `json:"supply_type" form:"supply_type" validate:"required,max=32"`
	Brand       string `json:"brand" form:"brand" validate:"omitempty,max=64"`
	Color       string `json:"color" form:"color" validate:"omitempty,max=32"`
	Units       string `json:"units" form:"units" validate:"required,max=16"`
	PurchaseURL string `json:"purchase_url" form:"purchase_url" validate:"omitempty,url,max=256"`
}

// Match returns the lookup attributes of the input.
func (in SupplyInput) Match() SupplyMatch {
	return SupplyMatch{
		SupplyType: in.SupplyType,
		Brand:      in.Brand,
		Color:      in.Color,
		Units:      in.Units,
	}
}

// StringValue dereferences a nullable column, returning "" for NULL.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// NullableString maps "" to NULL.
func NullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
