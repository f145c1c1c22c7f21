package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"screener/pkg/contracts/domain"
)

const sheetName = "Sheet1"

// WriteXLSX writes the records as an xlsx workbook. Numeric fields stay
// numeric cells so the workbook remains usable for further analysis.
func WriteXLSX(w io.Writer, headers []string, records []domain.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i, err)
		}
		row := []interface{}{r.Name, r.EPS, r.ROE, r.PE, r.PB}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
