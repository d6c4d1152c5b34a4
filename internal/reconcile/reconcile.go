// Package reconcile holds the pure rules that compare owned supplies with
// what projects require, and that interpret user-entered quantities.
// Nothing in this package touches storage.
package reconcile

import (
	"strconv"
	"strings"

	"crafterscloset/internal/models"
)

// DeletedMessage is returned to the client when an overwrite removes an item.
const DeletedMessage = "Deleted!"

// AmountToBuy is the shortfall between what a project requires and what the
// user owns. It is never negative.
func AmountToBuy(required, owned int) int {
	if owned >= required {
		return 0
	}
	return required - owned
}

// BuildBuyList pairs every requirement with the owned quantity of its supply
// detail. Supplies missing from owned count as zero, which is also how an
// anonymous visitor is treated.
func BuildBuyList(requirements []models.RequirementRow, owned map[uint]int) []models.BuyListEntry {
	entries := make([]models.BuyListEntry, 0, len(requirements))
	for _, req := range requirements {
		have := owned[req.SupplyDetailID]
		entries = append(entries, models.BuyListEntry{
			RequirementRow: req,
			QuantityOwned:  have,
			QuantityToBuy:  AmountToBuy(req.QuantityRequired, have),
		})
	}
	return entries
}

// ParseQuantity coerces a submitted quantity. A blank value reports
// present=false so callers can treat it as "no change".
func ParseQuantity(raw string) (qty int, present bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false, nil
	}
	qty, err = strconv.Atoi(raw)
	if err != nil {
		return 0, true, models.NewValidationError("quantity", "must be a whole number")
	}
	if qty < 0 {
		return 0, true, models.NewValidationError("quantity", "cannot be negative")
	}
	return qty, true, nil
}

// ContainsFold reports whether needle occurs anywhere in haystack, ignoring case.
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// MatchesSupply applies the catalog lookup rule: every non-empty field of m
// must be a case-insensitive substring of the stored value. A NULL stored
// value never matches a constrained field.
//
// Substring matching tolerates extra words ("Red" finds "Bright Red") at the
// price of occasional false positives.
func MatchesSupply(sd models.SupplyDetail, m models.SupplyMatch) bool {
	if m.SupplyType != "" && !ContainsFold(sd.SupplyType, m.SupplyType) {
		return false
	}
	if m.Brand != "" && (sd.Brand == nil || !ContainsFold(*sd.Brand, m.Brand)) {
		return false
	}
	if m.Color != "" && (sd.Color == nil || !ContainsFold(*sd.Color, m.Color)) {
		return false
	}
	if m.Units != "" && !ContainsFold(sd.Units, m.Units) {
		return false
	}
	return true
}

// MatchesFilter reports whether an inventory row passes the criteria.
// Field filters compare case-insensitively for equality; Search is a
// substring test across type, brand and color.
func MatchesFilter(row models.InventoryRow, f models.FilterCriteria) bool {
	if f.SupplyType != nil && !strings.EqualFold(row.SupplyType, *f.SupplyType) {
		return false
	}
	if f.Brand != nil && !strings.EqualFold(models.StringValue(row.Brand), *f.Brand) {
		return false
	}
	if f.Color != nil && !strings.EqualFold(models.StringValue(row.Color), *f.Color) {
		return false
	}
	if f.Search != "" {
		return ContainsFold(row.SupplyType, f.Search) ||
			(row.Brand != nil && ContainsFold(*row.Brand, f.Search)) ||
			(row.Color != nil && ContainsFold(*row.Color, f.Search))
	}
	return true
}
