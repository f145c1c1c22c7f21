package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"screener/pkg/contracts/domain"
)

// WriteCSV writes the records as UTF-8 CSV with a BOM prefix so Excel
// recognizes the encoding.
func WriteCSV(w io.Writer, headers []string, records []domain.Record) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(w)

	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for i, r := range records {
		row := []string{
			r.Name,
			formatFloat(r.EPS),
			formatFloat(r.ROE),
			formatFloat(r.PE),
			formatFloat(r.PB),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
