package domain

// ROEPoint is one bar of the top-N ROE ranking series.
type ROEPoint struct {
	Name string  `json:"name"`
	ROE  float64 `json:"roe"`
}

// RatioPoint is one bar of the top-N PE/PB comparison series. PE and PB are
// stacked by the presentation layer.
type RatioPoint struct {
	Name string  `json:"name"`
	PE   float64 `json:"pe"`
	PB   float64 `json:"pb"`
}

// ChartData bundles the two derived series for the top-N subset of a
// screening result. Both slices are empty when nothing passed the criteria;
// the presentation layer renders no chart in that case.
type ChartData struct {
	ROESeries   []ROEPoint   `json:"roe_series"`
	RatioSeries []RatioPoint `json:"ratio_series"`
}

// Empty reports whether there is anything to chart.
func (c ChartData) Empty() bool {
	return len(c.ROESeries) == 0 && len(c.RatioSeries) == 0
}
