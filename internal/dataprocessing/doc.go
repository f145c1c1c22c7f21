// Package dataprocessing implements the screening pipeline: workbook parsing
// and validation, row cleaning, threshold filtering, ROE ranking, and top-N
// chart series derivation.
//
// The pipeline is a pure function of (Dataset, Criteria, n). Parsing and
// cleaning happen once per upload; Screen and TopN are safe to call
// repeatedly with different criteria against the same dataset.
package dataprocessing
