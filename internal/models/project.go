package models

import "time"

// Project is a craft project authored by a user.
type Project struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"user_id" gorm:"not null;index"`
	Title          string    `json:"title" gorm:"type:varchar(64);not null"`
	Description    *string   `json:"description" gorm:"type:varchar(500)"`
	InstructionURL *string   `json:"instruction_url" gorm:"type:varchar(256)"`
	ImageURL       *string   `json:"image_url" gorm:"type:varchar(256)"`
	User           *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProjectSupply records how much of a SupplyDetail a project requires.
type ProjectSupply struct {
	ID             uint          `json:"id" gorm:"primaryKey"`
	ProjectID      uint          `json:"project_id" gorm:"not null;index"`
	SupplyDetailID uint          `json:"supply_detail_id" gorm:"not null;index"`
	Quantity       int           `json:"quantity" gorm:"not null"`
	Project        *Project      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	SupplyDetail   *SupplyDetail `json:"-"`
}

// ProjectInput is the user-entered form for a new project.
type ProjectInput struct {
	Title          string               `json:"title" form:"title" validate:"required,max=64"`
	Description    string               `json:"description" form:"description" validate:"omitempty,max=500"`
	InstructionURL string               `json:"instruction_url" form:"instruction_url" validate:"omitempty,url,max=256"`
	ImageURL       string               `json:"image_url" form:"image_url" validate:"omitempty,url,max=256"`
	Supplies       []ProjectSupplyInput `json:"supplies" validate:"dive"`
}

// ProjectSupplyInput is one required supply on a new project.
type ProjectSupplyInput struct {
	SupplyInput
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// RequirementRow is a project requirement flattened with its catalog details.
type RequirementRow struct {
	ProjectSupplyID  uint    `json:"project_supply_id"`
	SupplyDetailID   uint    `json:"supply_detail_id"`
	SupplyType       string  `json:"supply_type"`
	Brand            *string `json:"brand"`
	Color            *string `json:"color"`
	Units            string  `json:"units"`
	PurchaseURL      *string `json:"purchase_url"`
	QuantityRequired int     `json:"qty_specified"`
}

// BuyListEntry is one line of a project's shopping list for a user.
type BuyListEntry struct {
	RequirementRow
	QuantityOwned int `json:"qty_owned"`
	QuantityToBuy int `json:"qty_to_buy"`
}

// ProjectSearchResult is a deduplicated project hit from a free-text search.
type ProjectSearchResult struct {
	ID          uint    `json:"project_id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
}
