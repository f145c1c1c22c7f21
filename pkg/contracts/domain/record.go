package domain

// Record is one row of uploaded equity fundamentals. Field order matches the
// column order of the source workbook and of every export.
type Record struct {
	Name string  `json:"name" validate:"required"`
	EPS  float64 `json:"eps"`
	ROE  float64 `json:"roe"`
	PE   float64 `json:"pe"`
	PB   float64 `json:"pb"`
}

// Dataset is the validated, cleaned contents of one uploaded workbook.
// It is immutable for the lifetime of its session; screening never mutates it.
type Dataset struct {
	Records []Record `json:"records"`
}

// Len returns the number of records in the dataset.
func (d Dataset) Len() int { return len(d.Records) }

// Criteria holds the four screening thresholds. All four predicates are
// strict: a record exactly equal to a threshold is excluded.
type Criteria struct {
	MinEPS float64 `json:"min_eps"`
	MinROE float64 `json:"min_roe" validate:"gte=0,lte=100"`
	MaxPE  float64 `json:"max_pe" validate:"gte=0"`
	MaxPB  float64 `json:"max_pb" validate:"gte=0"`
}

// DefaultCriteria mirrors the defaults of the interactive controls.
func DefaultCriteria() Criteria {
	return Criteria{
		MinEPS: 0,
		MinROE: 10,
		MaxPE:  30,
		MaxPB:  2.0,
	}
}

// Matches reports whether the record passes all four threshold predicates.
func (c Criteria) Matches(r Record) bool {
	return r.EPS > c.MinEPS && r.ROE > c.MinROE && r.PE < c.MaxPE && r.PB < c.MaxPB
}
