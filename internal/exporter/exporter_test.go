package exporter

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"screener/pkg/contracts/domain"
)

var exportHeaders = []string{
	"最新股票名称_Lstknm",
	"每股收益(摊薄)(元/股)_EPS",
	"净资产收益率(摊薄)(%)_ROE",
	"市盈率_PE",
	"市净率_PB",
}

var exportRecords = []domain.Record{
	{Name: "贵州茅台", EPS: 49.93, ROE: 31.2, PE: 28.5, PB: 8.9},
	{Name: "平安银行", EPS: 2.1, ROE: 11.4, PE: 5.3, PB: 0.6},
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatXLSX},
		{in: "xlsx", want: FormatXLSX},
		{in: "XLSX", want: FormatXLSX},
		{in: " csv ", want: FormatCSV},
		{in: "pdf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, exportHeaders, exportRecords))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Header row carries the configured names and nothing else; in
	// particular there is no leading index column.
	assert.Equal(t, exportHeaders, rows[0])
	assert.Equal(t, "贵州茅台", rows[1][0])
	assert.Equal(t, "平安银行", rows[2][0])

	roe, err := f.GetCellValue(f.GetSheetName(0), "C2")
	require.NoError(t, err)
	assert.Equal(t, "31.2", roe)
}

func TestWriteXLSXEmptyResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, exportHeaders, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, exportHeaders, rows[0])
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, exportHeaders, exportRecords))

	raw := buf.Bytes()
	require.True(t, bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}), "missing UTF-8 BOM")

	reader := csv.NewReader(bytes.NewReader(raw[3:]))
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, exportHeaders, rows[0])
	assert.Equal(t, []string{"贵州茅台", "49.93", "31.20", "28.50", "8.90"}, rows[1])
}

func TestWriteDispatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, exportHeaders, exportRecords))
	assert.Contains(t, buf.String(), "贵州茅台")

	err := Write(&buf, Format("pdf"), exportHeaders, exportRecords)
	assert.Error(t, err)
}
