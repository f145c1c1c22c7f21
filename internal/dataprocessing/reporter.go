package dataprocessing

import (
	"screener/pkg/contracts/domain"
)

// DefaultTopN is the chart subset size when the caller does not specify one.
const DefaultTopN = 10

// TopN returns the first n records of an already-ranked screening result, or
// fewer when the result is shorter. No re-sorting happens here; the input is
// assumed to be the output of Screen.
func TopN(filtered []domain.Record, n int) []domain.Record {
	if n <= 0 {
		n = DefaultTopN
	}
	if n > len(filtered) {
		n = len(filtered)
	}
	return filtered[:n]
}

// BuildChartData derives the two presentation series over the top-N subset:
// a ranked (name, roe) bar series and a (name, pe, pb) comparison series.
// Both series are empty when the subset is empty; that is a reportable empty
// state, not an error.
func BuildChartData(top []domain.Record) domain.ChartData {
	chart := domain.ChartData{
		ROESeries:   make([]domain.ROEPoint, 0, len(top)),
		RatioSeries: make([]domain.RatioPoint, 0, len(top)),
	}
	for _, r := range top {
		chart.ROESeries = append(chart.ROESeries, domain.ROEPoint{Name: r.Name, ROE: r.ROE})
		chart.RatioSeries = append(chart.RatioSeries, domain.RatioPoint{Name: r.Name, PE: r.PE, PB: r.PB})
	}
	return chart
}
