package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screener/pkg/contracts/domain"
)

func rankedRecords(n int) []domain.Record {
	records := make([]domain.Record, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, domain.Record{
			Name: string(rune('A' + i)),
			EPS:  1,
			ROE:  float64(50 - i),
			PE:   10,
			PB:   1,
		})
	}
	return records
}

func TestTopN(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		n       int
		wantLen int
	}{
		{name: "n smaller than result", length: 12, n: 10, wantLen: 10},
		{name: "n larger than result", length: 3, n: 10, wantLen: 3},
		{name: "n equal to result", length: 5, n: 5, wantLen: 5},
		{name: "zero n falls back to default", length: 15, n: 0, wantLen: 10},
		{name: "negative n falls back to default", length: 15, n: -1, wantLen: 10},
		{name: "empty result", length: 0, n: 10, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := rankedRecords(tt.length)
			top := TopN(filtered, tt.n)

			require.Len(t, top, tt.wantLen)
			// Prefix property: top-N is the head of the ranked input.
			for i := range top {
				assert.Equal(t, filtered[i], top[i])
			}
		})
	}
}

func TestBuildChartData(t *testing.T) {
	t.Run("derives both series in rank order", func(t *testing.T) {
		top := []domain.Record{
			{Name: "A", EPS: 1, ROE: 25, PE: 18, PB: 1.8},
			{Name: "B", EPS: 1, ROE: 12, PE: 20, PB: 1.5},
		}

		chart := BuildChartData(top)

		require.Len(t, chart.ROESeries, 2)
		require.Len(t, chart.RatioSeries, 2)
		assert.False(t, chart.Empty())

		assert.Equal(t, domain.ROEPoint{Name: "A", ROE: 25}, chart.ROESeries[0])
		assert.Equal(t, domain.ROEPoint{Name: "B", ROE: 12}, chart.ROESeries[1])
		assert.Equal(t, domain.RatioPoint{Name: "A", PE: 18, PB: 1.8}, chart.RatioSeries[0])
		assert.Equal(t, domain.RatioPoint{Name: "B", PE: 20, PB: 1.5}, chart.RatioSeries[1])
	})

	t.Run("empty subset yields empty chart", func(t *testing.T) {
		chart := BuildChartData(nil)

		assert.True(t, chart.Empty())
		assert.Empty(t, chart.ROESeries)
		assert.Empty(t, chart.RatioSeries)
	})
}
