package dataprocessing

import (
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"screener/pkg/contracts/domain"
)

// ColumnMapping names the five required workbook columns. Defaults match the
// headers of the source data vendor's export; deployments with differently
// labelled workbooks override these through configuration.
type ColumnMapping struct {
	Name string `yaml:"name" envconfig:"NAME"`
	EPS  string `yaml:"eps" envconfig:"EPS"`
	ROE  string `yaml:"roe" envconfig:"ROE"`
	PE   string `yaml:"pe" envconfig:"PE"`
	PB   string `yaml:"pb" envconfig:"PB"`
}

// DefaultColumnMapping returns the mapping for the standard vendor export.
func DefaultColumnMapping() ColumnMapping {
	return ColumnMapping{
		Name: "最新股票名称_Lstknm",
		EPS:  "每股收益(摊薄)(元/股)_EPS",
		ROE:  "净资产收益率(摊薄)(%)_ROE",
		PE:   "市盈率_PE",
		PB:   "市净率_PB",
	}
}

// Required returns the column headers in their canonical export order.
func (m ColumnMapping) Required() []string {
	return []string{m.Name, m.EPS, m.ROE, m.PE, m.PB}
}

// ParseStats reports what the loader saw and what cleaning removed.
type ParseStats struct {
	DataRows int `json:"data_rows"`
	Dropped  int `json:"dropped"`
}

// ParseWorkbook reads an xlsx payload, validates the required columns, and
// returns the cleaned dataset. An unreadable payload yields *ParseError;
// absent required columns yield *SchemaError listing every missing header.
// Rows with a missing or non-numeric value in any required field and rows
// with pe <= 0 or pb <= 0 are dropped during cleaning.
func ParseWorkbook(r io.Reader, mapping ColumnMapping, logger *slog.Logger) (*domain.Dataset, ParseStats, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var stats ParseStats

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, stats, &ParseError{Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, stats, &SchemaError{Missing: mapping.Required()}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, stats, &ParseError{Err: err}
	}

	headerRow, columns, missing := locateHeader(rows, mapping)
	if len(missing) > 0 {
		return nil, stats, &SchemaError{Missing: missing}
	}

	logger.Debug("workbook header located",
		slog.String("sheet", sheets[0]),
		slog.Int("header_row", headerRow),
		slog.Int("total_rows", len(rows)))

	var parsed []domain.Record
	for i := headerRow + 1; i < len(rows); i++ {
		if emptyRow(rows[i]) {
			continue
		}
		stats.DataRows++
		rec, ok := parseRow(rows[i], columns, mapping)
		if !ok {
			continue
		}
		parsed = append(parsed, rec)
	}

	cleaned := Clean(parsed)
	stats.Dropped = stats.DataRows - len(cleaned)

	logger.Info("workbook parsed",
		slog.String("sheet", sheets[0]),
		slog.Int("rows", stats.DataRows),
		slog.Int("kept", len(cleaned)),
		slog.Int("dropped", stats.Dropped))

	return &domain.Dataset{Records: cleaned}, stats, nil
}

// locateHeader finds the first row containing at least one required header
// and maps each required column to its index. When no row mentions any
// required column, every column is reported missing.
func locateHeader(rows [][]string, mapping ColumnMapping) (int, map[string]int, []string) {
	required := mapping.Required()

	for i, row := range rows {
		columns := make(map[string]int, len(required))
		for j, cell := range row {
			header := strings.TrimSpace(cell)
			for _, want := range required {
				if header == want {
					if _, seen := columns[want]; !seen {
						columns[want] = j
					}
				}
			}
		}
		if len(columns) == 0 {
			continue
		}

		var missing []string
		for _, want := range required {
			if _, ok := columns[want]; !ok {
				missing = append(missing, want)
			}
		}
		return i, columns, missing
	}

	return -1, nil, required
}

// parseRow extracts one record. A row whose name cell is blank or whose
// numeric cells fail to parse counts as having missing values and is
// rejected entirely.
func parseRow(row []string, columns map[string]int, mapping ColumnMapping) (domain.Record, bool) {
	cell := func(header string) (string, bool) {
		idx, ok := columns[header]
		if !ok || idx >= len(row) {
			return "", false
		}
		v := strings.TrimSpace(row[idx])
		return v, v != ""
	}
	number := func(header string) (float64, bool) {
		raw, ok := cell(header)
		if !ok {
			return 0, false
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if err != nil || !finite(v) {
			return 0, false
		}
		return v, true
	}

	var rec domain.Record
	var ok bool

	if rec.Name, ok = cell(mapping.Name); !ok {
		return rec, false
	}
	if rec.EPS, ok = number(mapping.EPS); !ok {
		return rec, false
	}
	if rec.ROE, ok = number(mapping.ROE); !ok {
		return rec, false
	}
	if rec.PE, ok = number(mapping.PE); !ok {
		return rec, false
	}
	if rec.PB, ok = number(mapping.PB); !ok {
		return rec, false
	}

	return rec, true
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Clean drops records that carry a non-finite value in any field or a
// non-positive price ratio. It is idempotent: cleaning an already clean
// slice returns an equal slice.
func Clean(records []domain.Record) []domain.Record {
	cleaned := make([]domain.Record, 0, len(records))
	for _, r := range records {
		if r.Name == "" {
			continue
		}
		if !finite(r.EPS) || !finite(r.ROE) || !finite(r.PE) || !finite(r.PB) {
			continue
		}
		if r.PE <= 0 || r.PB <= 0 {
			continue
		}
		cleaned = append(cleaned, r)
	}
	return cleaned
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
