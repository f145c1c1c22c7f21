// Package exporter writes screening results to xlsx and csv. Exports carry
// the configured column headers in workbook order and no index column.
package exporter
