package reconcile

import (
	"sort"
	"strings"

	"crafterscloset/internal/models"
)

// DistinctSorted drops NULLs and duplicates and sorts the rest.
func DistinctSorted(values []*string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == nil {
			continue
		}
		if _, ok := seen[*v]; ok {
			continue
		}
		seen[*v] = struct{}{}
		out = append(out, *v)
	}
	sort.Strings(out)
	return out
}

// SupplyTypes lists the distinct supply types in the catalog.
func SupplyTypes(supplies []models.SupplyDetail) []string {
	return DistinctSorted(column(supplies, func(sd models.SupplyDetail) *string { return &sd.SupplyType }))
}

// Brands lists the distinct non-null brands in the catalog.
func Brands(supplies []models.SupplyDetail) []string {
	return DistinctSorted(column(supplies, func(sd models.SupplyDetail) *string { return sd.Brand }))
}

// Colors lists the distinct non-null colors in the catalog.
func Colors(supplies []models.SupplyDetail) []string {
	return DistinctSorted(column(supplies, func(sd models.SupplyDetail) *string { return sd.Color }))
}

// Units lists the distinct units of measure in the catalog.
func Units(supplies []models.SupplyDetail) []string {
	return DistinctSorted(column(supplies, func(sd models.SupplyDetail) *string { return &sd.Units }))
}

// BrandsByType maps each supply type to its distinct brands.
func BrandsByType(supplies []models.SupplyDetail) map[string][]string {
	return groupBy(supplies,
		func(sd models.SupplyDetail) *string { return &sd.SupplyType },
		func(sd models.SupplyDetail) *string { return sd.Brand })
}

// ColorsByType maps each supply type to its distinct colors.
func ColorsByType(supplies []models.SupplyDetail) map[string][]string {
	return groupBy(supplies,
		func(sd models.SupplyDetail) *string { return &sd.SupplyType },
		func(sd models.SupplyDetail) *string { return sd.Color })
}

// ColorsByBrand maps each non-null brand to its distinct colors.
func ColorsByBrand(supplies []models.SupplyDetail) map[string][]string {
	return groupBy(supplies,
		func(sd models.SupplyDetail) *string { return sd.Brand },
		func(sd models.SupplyDetail) *string { return sd.Color })
}

// UnitsByType maps each supply type to the units of its oldest entry.
func UnitsByType(supplies []models.SupplyDetail) map[string]string {
	units := make(map[string]string)
	firstID := make(map[string]uint)
	for _, sd := range supplies {
		if id, ok := firstID[sd.SupplyType]; ok && id < sd.ID {
			continue
		}
		firstID[sd.SupplyType] = sd.ID
		units[sd.SupplyType] = sd.Units
	}
	return units
}

// ColorsForBrand returns the colors of every entry whose brand contains
// brand, ignoring case. Used for typeahead.
func ColorsForBrand(supplies []models.SupplyDetail, brand string) []string {
	var colors []*string
	for _, sd := range supplies {
		if sd.Brand != nil && ContainsFold(*sd.Brand, brand) {
			colors = append(colors, sd.Color)
		}
	}
	return DistinctSorted(colors)
}

// SortSearchResults removes duplicate projects and orders the hits by
// title, then description, then id.
func SortSearchResults(results []models.ProjectSearchResult) []models.ProjectSearchResult {
	seen := make(map[uint]struct{}, len(results))
	out := make([]models.ProjectSearchResult, 0, len(results))
	for _, r := range results {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		if da, db := models.StringValue(a.Description), models.StringValue(b.Description); da != db {
			return da < db
		}
		return a.ID < b.ID
	})
	return out
}

func column(supplies []models.SupplyDetail, field func(models.SupplyDetail) *string) []*string {
	values := make([]*string, 0, len(supplies))
	for _, sd := range supplies {
		values = append(values, field(sd))
	}
	return values
}

func groupBy(supplies []models.SupplyDetail, key, value func(models.SupplyDetail) *string) map[string][]string {
	raw := make(map[string][]*string)
	for _, sd := range supplies {
		k := key(sd)
		if k == nil || strings.TrimSpace(*k) == "" {
			continue
		}
		raw[*k] = append(raw[*k], value(sd))
	}
	grouped := make(map[string][]string, len(raw))
	for k, values := range raw {
		grouped[k] = DistinctSorted(values)
	}
	return grouped
}
