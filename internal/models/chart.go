package models

// ChartData is the Chart.js shape of an inventory breakdown.
type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// ChartDataset holds values parallel to ChartData.Labels.
type ChartDataset struct {
	Data            []int64  `json:"data"`
	BackgroundColor []string `json:"backgroundColor"`
}
