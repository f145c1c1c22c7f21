package dataprocessing

import (
	"sort"

	"screener/pkg/contracts/domain"
)

// Screen applies the four threshold predicates to the dataset and returns the
// matching records sorted by ROE descending. The sort is stable: records with
// equal ROE keep their relative order from the dataset. An empty result is a
// valid outcome, not an error.
//
// All four comparisons are strict: a record whose value sits exactly on a
// threshold is excluded.
func Screen(ds *domain.Dataset, c domain.Criteria) []domain.Record {
	filtered := make([]domain.Record, 0, ds.Len())
	for _, r := range ds.Records {
		if c.Matches(r) {
			filtered = append(filtered, r)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].ROE > filtered[j].ROE
	})

	return filtered
}
