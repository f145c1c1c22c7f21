package services

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"screener/internal/config"
	"screener/internal/dataprocessing"
	"screener/internal/exporter"
	"screener/pkg/contracts/domain"
)

func testConfig() *config.Config {
	cfg := config.Default()
	return &cfg
}

func testService(t *testing.T) *ScreeningService {
	t.Helper()
	store := NewDatasetStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewScreeningService(store, testConfig(), logger, nil)
}

// workbook builds an xlsx payload with the default headers and the given rows.
func workbook(t *testing.T, rows [][]interface{}) io.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	headers := dataprocessing.DefaultColumnMapping().Required()
	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &headerRow))

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestLoadDataset(t *testing.T) {
	svc := testService(t)

	session, err := svc.LoadDataset(context.Background(), "fundamentals.xlsx", workbook(t, [][]interface{}{
		{"贵州茅台", 49.93, 31.2, 28.5, 8.9},
		{"亏损股", -1.2, -5.0, -12.0, 1.1},
	}))
	require.NoError(t, err)

	assert.NotEmpty(t, session.ID)
	assert.Equal(t, "fundamentals.xlsx", session.Filename)
	assert.Equal(t, 1, session.Dataset.Len())
	assert.Equal(t, 1, session.Stats.Dropped)

	got, err := svc.GetDataset(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
}

func TestLoadDatasetPassesThroughParseErrors(t *testing.T) {
	svc := testService(t)

	_, err := svc.LoadDataset(context.Background(), "bad.xlsx", strings.NewReader("not a workbook"))
	require.Error(t, err)

	var parseErr *dataprocessing.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestScreen(t *testing.T) {
	svc := testService(t)

	session, err := svc.LoadDataset(context.Background(), "f.xlsx", workbook(t, [][]interface{}{
		{"甲", 1.0, 12.0, 20.0, 1.5},
		{"乙", 0.5, 8.0, 15.0, 1.0},
		{"丙", 2.0, 25.0, 18.0, 1.8},
	}))
	require.NoError(t, err)

	result, err := svc.Screen(context.Background(), session.ID, domain.DefaultCriteria(), 0)
	require.NoError(t, err)

	require.Equal(t, 2, result.Count)
	assert.Equal(t, "丙", result.Rows[0].Name)
	assert.Equal(t, "甲", result.Rows[1].Name)
	assert.Equal(t, dataprocessing.DefaultTopN, result.TopN)
	require.Len(t, result.Chart.ROESeries, 2)
	assert.Equal(t, "丙", result.Chart.ROESeries[0].Name)
}

func TestScreenEmptyResultIsValid(t *testing.T) {
	svc := testService(t)

	session, err := svc.LoadDataset(context.Background(), "f.xlsx", workbook(t, [][]interface{}{
		{"乙", 0.5, 8.0, 15.0, 1.0},
	}))
	require.NoError(t, err)

	result, err := svc.Screen(context.Background(), session.ID, domain.DefaultCriteria(), 5)
	require.NoError(t, err)

	assert.Zero(t, result.Count)
	assert.Empty(t, result.Rows)
	assert.True(t, result.Chart.Empty())
}

func TestScreenTopNBounds(t *testing.T) {
	svc := testService(t)

	session, err := svc.LoadDataset(context.Background(), "f.xlsx", workbook(t, [][]interface{}{
		{"甲", 1.0, 12.0, 20.0, 1.5},
	}))
	require.NoError(t, err)

	_, err = svc.Screen(context.Background(), session.ID, domain.DefaultCriteria(), 11)
	assert.ErrorIs(t, err, ErrInvalidTopN)

	_, err = svc.Screen(context.Background(), session.ID, domain.DefaultCriteria(), -1)
	assert.ErrorIs(t, err, ErrInvalidTopN)

	result, err := svc.Screen(context.Background(), session.ID, domain.DefaultCriteria(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, result.TopN)
}

func TestScreenRejectsInvalidCriteria(t *testing.T) {
	svc := testService(t)

	_, err := svc.Screen(context.Background(), "any", domain.Criteria{MinROE: -5, MaxPE: 30, MaxPB: 2}, 0)
	assert.ErrorIs(t, err, ErrInvalidCriteria)
}

func TestScreenUnknownDataset(t *testing.T) {
	svc := testService(t)

	_, err := svc.Screen(context.Background(), "missing", domain.DefaultCriteria(), 0)
	assert.ErrorIs(t, err, ErrDatasetNotFound)
}

func TestExport(t *testing.T) {
	svc := testService(t)

	session, err := svc.LoadDataset(context.Background(), "f.xlsx", workbook(t, [][]interface{}{
		{"甲", 1.0, 12.0, 20.0, 1.5},
		{"乙", 0.5, 8.0, 15.0, 1.0},
	}))
	require.NoError(t, err)

	var buf bytes.Buffer
	count, err := svc.Export(context.Background(), session.ID, domain.DefaultCriteria(), exporter.FormatXLSX, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, dataprocessing.DefaultColumnMapping().Required(), rows[0])
	assert.Equal(t, "甲", rows[1][0])
}

func TestDeleteDataset(t *testing.T) {
	svc := testService(t)

	session, err := svc.LoadDataset(context.Background(), "f.xlsx", workbook(t, [][]interface{}{
		{"甲", 1.0, 12.0, 20.0, 1.5},
	}))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDataset(context.Background(), session.ID))
	assert.ErrorIs(t, svc.DeleteDataset(context.Background(), session.ID), ErrDatasetNotFound)
}
