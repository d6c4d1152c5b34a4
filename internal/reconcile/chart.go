package reconcile

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"crafterscloset/internal/models"
)

// ChartColors is the palette cycled over chart slices.
var ChartColors = []string{
	"#b366ff", "#0059b3", "#00cc99", "#ffd480",
	"#ff99cc", "#b3e6ff", "#bfff80", "#ffccb3",
}

// DefaultChartWeights scales unlike units onto a comparable footing, so a
// yard of fabric outweighs a single LED. Keys are lower case.
var DefaultChartWeights = map[string]decimal.Decimal{
	"fabric":            decimal.NewFromInt(10),
	"felt":              decimal.NewFromInt(10),
	"yarn":              decimal.NewFromInt(10),
	"acrylic paint":     decimal.NewFromInt(1),
	"oven-bake clay":    decimal.NewFromInt(1),
	"conductive thread": decimal.NewFromInt(1),
	"leds":              decimal.RequireFromString("0.1"),
	"color sensor":      decimal.NewFromInt(1),
	"arduino board":     decimal.NewFromInt(1),
}

// InventoryChart totals a user's inventory per supply type. Each item's
// quantity is multiplied by its type weight (1 when unlisted) and floored
// before being added to the type total.
func InventoryChart(rows []models.InventoryRow, weights map[string]decimal.Decimal) models.ChartData {
	totals := make(map[string]int64)
	for _, row := range rows {
		weight, ok := weights[strings.ToLower(row.SupplyType)]
		if !ok {
			weight = decimal.NewFromInt(1)
		}
		totals[row.SupplyType] += decimal.NewFromInt(int64(row.Quantity)).Mul(weight).Floor().IntPart()
	}

	labels := make([]string, 0, len(totals))
	for label := range totals {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	data := make([]int64, len(labels))
	colors := make([]string, len(labels))
	for i, label := range labels {
		data[i] = totals[label]
		colors[i] = ChartColors[i%len(ChartColors)]
	}

	return models.ChartData{
		Labels:   labels,
		Datasets: []models.ChartDataset{{Data: data, BackgroundColor: colors}},
	}
}
