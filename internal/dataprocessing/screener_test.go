package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screener/pkg/contracts/domain"
)

func dataset(records ...domain.Record) *domain.Dataset {
	return &domain.Dataset{Records: records}
}

func TestScreen(t *testing.T) {
	t.Run("filters and ranks by ROE descending", func(t *testing.T) {
		ds := dataset(
			domain.Record{Name: "A", EPS: 1.0, ROE: 12, PE: 20, PB: 1.5},
			domain.Record{Name: "B", EPS: 0.5, ROE: 8, PE: 15, PB: 1.0},
			domain.Record{Name: "C", EPS: 2.0, ROE: 25, PE: 18, PB: 1.8},
		)
		c := domain.Criteria{MinEPS: 0, MinROE: 10, MaxPE: 30, MaxPB: 2.0}

		got := Screen(ds, c)

		require.Len(t, got, 2)
		assert.Equal(t, "C", got[0].Name)
		assert.Equal(t, "A", got[1].Name)
	})

	t.Run("spec scenario drops boundary ROE", func(t *testing.T) {
		// B has roe exactly 8 < 10, A passes; C was removed by cleaning.
		ds := dataset(
			domain.Record{Name: "A", EPS: 1.0, ROE: 12, PE: 20, PB: 1.5},
			domain.Record{Name: "B", EPS: 0.5, ROE: 8, PE: 15, PB: 1.0},
		)
		c := domain.Criteria{MinEPS: 0, MinROE: 10, MaxPE: 30, MaxPB: 2.0}

		got := Screen(ds, c)

		require.Len(t, got, 1)
		assert.Equal(t, "A", got[0].Name)
	})

	t.Run("thresholds are strict on every predicate", func(t *testing.T) {
		c := domain.Criteria{MinEPS: 1.0, MinROE: 10, MaxPE: 30, MaxPB: 2.0}

		tests := []struct {
			name   string
			record domain.Record
			want   bool
		}{
			{
				name:   "all strictly inside",
				record: domain.Record{Name: "in", EPS: 1.1, ROE: 10.1, PE: 29.9, PB: 1.9},
				want:   true,
			},
			{
				name:   "eps equal to minimum",
				record: domain.Record{Name: "eps", EPS: 1.0, ROE: 10.1, PE: 29.9, PB: 1.9},
				want:   false,
			},
			{
				name:   "roe equal to minimum",
				record: domain.Record{Name: "roe", EPS: 1.1, ROE: 10, PE: 29.9, PB: 1.9},
				want:   false,
			},
			{
				name:   "pe equal to maximum",
				record: domain.Record{Name: "pe", EPS: 1.1, ROE: 10.1, PE: 30, PB: 1.9},
				want:   false,
			},
			{
				name:   "pb equal to maximum",
				record: domain.Record{Name: "pb", EPS: 1.1, ROE: 10.1, PE: 29.9, PB: 2.0},
				want:   false,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got := Screen(dataset(tt.record), c)
				if tt.want {
					assert.Len(t, got, 1)
				} else {
					assert.Empty(t, got)
				}
			})
		}
	})

	t.Run("equal ROE preserves dataset order", func(t *testing.T) {
		ds := dataset(
			domain.Record{Name: "first", EPS: 1, ROE: 15, PE: 10, PB: 1},
			domain.Record{Name: "second", EPS: 1, ROE: 15, PE: 11, PB: 1.1},
			domain.Record{Name: "third", EPS: 1, ROE: 15, PE: 12, PB: 1.2},
		)
		c := domain.Criteria{MinEPS: 0, MinROE: 0, MaxPE: 100, MaxPB: 10}

		got := Screen(ds, c)

		require.Len(t, got, 3)
		assert.Equal(t, "first", got[0].Name)
		assert.Equal(t, "second", got[1].Name)
		assert.Equal(t, "third", got[2].Name)
	})

	t.Run("empty dataset yields empty result", func(t *testing.T) {
		got := Screen(dataset(), domain.DefaultCriteria())
		assert.Empty(t, got)
	})

	t.Run("does not mutate the dataset", func(t *testing.T) {
		ds := dataset(
			domain.Record{Name: "low", EPS: 1, ROE: 5, PE: 10, PB: 1},
			domain.Record{Name: "high", EPS: 1, ROE: 50, PE: 10, PB: 1},
		)
		c := domain.Criteria{MinEPS: 0, MinROE: 0, MaxPE: 100, MaxPB: 10}

		_ = Screen(ds, c)

		assert.Equal(t, "low", ds.Records[0].Name)
		assert.Equal(t, "high", ds.Records[1].Name)
	})
}
