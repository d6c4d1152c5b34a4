package reconcile_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crafterscloset/internal/models"
	"crafterscloset/internal/reconcile"
)

func strPtr(s string) *string { return &s }

func TestAmountToBuy(t *testing.T) {
	cases := []struct {
		required, owned, want int
	}{
		{4, 0, 4},
		{4, 10, 0},
		{45, 45, 0},
		{6, 2, 4},
		{0, 0, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, reconcile.AmountToBuy(tc.required, tc.owned), "required=%d owned=%d", tc.required, tc.owned)
	}
}

func TestAmountToBuy_NeverNegative(t *testing.T) {
	for required := 0; required < 20; required++ {
		for owned := 0; owned < 20; owned++ {
			got := reconcile.AmountToBuy(required, owned)
			assert.GreaterOrEqual(t, got, 0)
			assert.Equal(t, max(0, required-owned), got)
		}
	}
}

func TestBuildBuyList(t *testing.T) {
	reqs := []models.RequirementRow{
		{ProjectSupplyID: 1, SupplyDetailID: 1, SupplyType: "Oven-Bake Clay", Units: "oz", QuantityRequired: 5},
		{ProjectSupplyID: 2, SupplyDetailID: 3, SupplyType: "Acrylic Paint", Units: "oz", QuantityRequired: 6},
	}
	owned := map[uint]int{1: 10}

	list := reconcile.BuildBuyList(reqs, owned)
	require.Len(t, list, 2)

	assert.Equal(t, 10, list[0].QuantityOwned)
	assert.Equal(t, 5, list[0].QuantityRequired)
	assert.Equal(t, 0, list[0].QuantityToBuy)

	assert.Equal(t, 0, list[1].QuantityOwned)
	assert.Equal(t, 6, list[1].QuantityToBuy)

	// Same inputs, same answer.
	assert.Equal(t, list, reconcile.BuildBuyList(reqs, owned))
}

func TestBuildBuyList_Empty(t *testing.T) {
	list := reconcile.BuildBuyList(nil, nil)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestParseQuantity(t *testing.T) {
	qty, present, err := reconcile.ParseQuantity(" 12 ")
	assert.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, 12, qty)

	_, present, err = reconcile.ParseQuantity("   ")
	assert.NoError(t, err)
	assert.False(t, present)

	_, _, err = reconcile.ParseQuantity("a dozen")
	assert.True(t, errors.Is(err, models.ErrValidation))

	_, _, err = reconcile.ParseQuantity("-3")
	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "quantity", verr.Field)
}

func TestMatchesSupply(t *testing.T) {
	stored := models.SupplyDetail{
		ID:         1,
		SupplyType: "Acrylic Paint",
		Brand:      strPtr("Americana"),
		Color:      strPtr("Calypso Blue"),
		Units:      "oz",
	}

	assert.True(t, reconcile.MatchesSupply(stored, models.SupplyMatch{SupplyType: "ACRYLIC paint"}))
	assert.True(t, reconcile.MatchesSupply(stored, models.SupplyMatch{SupplyType: "acrylic", Brand: "americana", Color: "blue"}))
	assert.True(t, reconcile.MatchesSupply(stored, models.SupplyMatch{SupplyType: "Acrylic Paint", Units: "OZ"}))
	assert.False(t, reconcile.MatchesSupply(stored, models.SupplyMatch{SupplyType: "Acrylic Paint", Color: "Red"}))
	assert.False(t, reconcile.MatchesSupply(stored, models.SupplyMatch{SupplyType: "Acrylic Paint", Units: "ml"}))

	noBrand := models.SupplyDetail{ID: 2, SupplyType: "Felt", Units: "sheets"}
	assert.False(t, reconcile.MatchesSupply(noBrand, models.SupplyMatch{SupplyType: "Felt", Brand: "Kunin"}))
	assert.True(t, reconcile.MatchesSupply(noBrand, models.SupplyMatch{SupplyType: "felt"}))
}

func TestMatchesSupply_SubstringTradeoff(t *testing.T) {
	// "Red" is found inside "Bright Red"; the reverse does not hold.
	brightRed := models.SupplyDetail{SupplyType: "Yarn", Color: strPtr("Bright Red"), Units: "yd"}
	red := models.SupplyDetail{SupplyType: "Yarn", Color: strPtr("Red"), Units: "yd"}

	assert.True(t, reconcile.MatchesSupply(brightRed, models.SupplyMatch{SupplyType: "Yarn", Color: "Red"}))
	assert.False(t, reconcile.MatchesSupply(red, models.SupplyMatch{SupplyType: "Yarn", Color: "Bright Red"}))
}

func TestMatchesFilter(t *testing.T) {
	row := models.InventoryRow{SupplyType: "Yarn", Brand: strPtr("Lion Brand"), Color: strPtr("Navy"), Units: "yd", Quantity: 40}

	assert.True(t, reconcile.MatchesFilter(row, models.FilterCriteria{}))
	assert.True(t, reconcile.MatchesFilter(row, models.FilterCriteria{SupplyType: strPtr("yarn")}))
	assert.False(t, reconcile.MatchesFilter(row, models.FilterCriteria{SupplyType: strPtr("yar")}))
	assert.True(t, reconcile.MatchesFilter(row, models.FilterCriteria{Brand: strPtr("LION BRAND"), Color: strPtr("navy")}))
	assert.True(t, reconcile.MatchesFilter(row, models.FilterCriteria{Search: "lion"}))
	assert.False(t, reconcile.MatchesFilter(row, models.FilterCriteria{Search: "felt"}))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Terra Cotta Bowl", reconcile.TitleCase("terra cotta bowl"))
	assert.Equal(t, "Blue Clay Bowl", reconcile.TitleCase("  bLUE clay BOWL "))
}
