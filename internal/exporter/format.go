package exporter

import (
	"fmt"
	"io"
	"strings"

	"screener/pkg/contracts/domain"
)

// Format identifies an export encoding.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// ParseFormat maps a request parameter to a Format. The empty string
// defaults to xlsx.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "xlsx":
		return FormatXLSX, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported export format: %q", s)
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	default:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatCSV:
		return ".csv"
	default:
		return ".xlsx"
	}
}

// Write encodes the records in the given format.
func Write(w io.Writer, format Format, headers []string, records []domain.Record) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, headers, records)
	case FormatXLSX:
		return WriteXLSX(w, headers, records)
	default:
		return fmt.Errorf("unsupported export format: %q", format)
	}
}

// formatFloat formats a float64 value for CSV output with exactly 2 decimal places
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}
