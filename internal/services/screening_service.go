package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"screener/internal/config"
	"screener/internal/dataprocessing"
	"screener/internal/exporter"
	"screener/internal/infrastructure"
	"screener/pkg/contracts/domain"
)

// ScreeningService runs uploads through the parse, screen and export pipeline
// and owns the dataset sessions they produce.
type ScreeningService struct {
	store    *DatasetStore
	columns  dataprocessing.ColumnMapping
	maxTopN  int
	validate *validator.Validate
	logger   *slog.Logger
	metrics  *infrastructure.Metrics
}

// NewScreeningService creates a new screening service
func NewScreeningService(store *DatasetStore, cfg *config.Config, logger *slog.Logger, metrics *infrastructure.Metrics) *ScreeningService {
	if logger == nil {
		logger = slog.Default()
	}

	return &ScreeningService{
		store:    store,
		columns:  cfg.Upload.Columns,
		maxTopN:  cfg.Screening.MaxTopN,
		validate: validator.New(),
		logger:   logger.With(slog.String("component", "screening_service")),
		metrics:  metrics,
	}
}

// ScreenResult is the outcome of one screening run.
type ScreenResult struct {
	Rows  []domain.Record
	Count int
	TopN  int
	Chart domain.ChartData
}

// LoadDataset parses an uploaded workbook and stores it as a new session.
// Parse and schema failures pass through unwrapped so callers can map them
// to their HTTP contract.
func (s *ScreeningService) LoadDataset(ctx context.Context, filename string, r io.Reader) (*Session, error) {
	dataset, stats, err := dataprocessing.ParseWorkbook(r, s.columns, s.logger)
	if err != nil {
		if s.metrics != nil {
			s.metrics.ParseFailuresTotal.WithLabelValues(failureKind(err)).Inc()
		}
		return nil, err
	}

	now := time.Now()
	session := &Session{
		ID:         uuid.New().String(),
		Filename:   filename,
		Dataset:    dataset,
		Stats:      stats,
		CreatedAt:  now,
		LastAccess: now,
	}

	if err := s.store.Create(session); err != nil {
		return nil, fmt.Errorf("store dataset: %w", err)
	}

	if s.metrics != nil {
		s.metrics.UploadsTotal.Inc()
		s.metrics.UploadRows.Observe(float64(dataset.Len()))
		s.metrics.ActiveSessions.Set(float64(s.store.Count()))
	}

	s.logger.InfoContext(ctx, "dataset loaded",
		slog.String("dataset_id", session.ID),
		slog.String("filename", filename),
		slog.Int("rows", dataset.Len()),
		slog.Int("dropped", stats.Dropped),
	)

	return session, nil
}

// GetDataset returns the session for the given ID.
func (s *ScreeningService) GetDataset(ctx context.Context, id string) (*Session, error) {
	return s.store.Get(id)
}

// DeleteDataset removes the session for the given ID.
func (s *ScreeningService) DeleteDataset(ctx context.Context, id string) error {
	if err := s.store.Delete(id); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.ActiveSessions.Set(float64(s.store.Count()))
	}

	s.logger.InfoContext(ctx, "dataset deleted", slog.String("dataset_id", id))
	return nil
}

// Screen filters and ranks the dataset, then derives the chart series from
// the top-N subset. topN zero selects the default; values outside [1, max]
// are rejected. An empty result is a valid outcome, not an error.
func (s *ScreeningService) Screen(ctx context.Context, id string, criteria domain.Criteria, topN int) (*ScreenResult, error) {
	if err := s.validate.Struct(criteria); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCriteria, err)
	}

	n := topN
	if n == 0 {
		n = dataprocessing.DefaultTopN
		if n > s.maxTopN {
			n = s.maxTopN
		}
	}
	if n < 1 || n > s.maxTopN {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidTopN, topN, s.maxTopN)
	}

	session, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	filtered := dataprocessing.Screen(session.Dataset, criteria)
	top := dataprocessing.TopN(filtered, n)

	if s.metrics != nil {
		s.metrics.ScreensTotal.Inc()
	}

	s.logger.InfoContext(ctx, "screening complete",
		slog.String("dataset_id", id),
		slog.Int("matched", len(filtered)),
		slog.Int("top_n", n),
	)

	return &ScreenResult{
		Rows:  filtered,
		Count: len(filtered),
		TopN:  n,
		Chart: dataprocessing.BuildChartData(top),
	}, nil
}

// Export screens the dataset and writes every matching row to w in the given
// format, using the configured column headers. It returns the exported row
// count.
func (s *ScreeningService) Export(ctx context.Context, id string, criteria domain.Criteria, format exporter.Format, w io.Writer) (int, error) {
	if err := s.validate.Struct(criteria); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidCriteria, err)
	}

	session, err := s.store.Get(id)
	if err != nil {
		return 0, err
	}

	filtered := dataprocessing.Screen(session.Dataset, criteria)

	if err := exporter.Write(w, format, s.columns.Required(), filtered); err != nil {
		return 0, fmt.Errorf("export dataset %s: %w", id, err)
	}

	if s.metrics != nil {
		s.metrics.ExportsTotal.WithLabelValues(string(format)).Inc()
	}

	s.logger.InfoContext(ctx, "export complete",
		slog.String("dataset_id", id),
		slog.String("format", string(format)),
		slog.Int("rows", len(filtered)),
	)

	return len(filtered), nil
}

// failureKind labels parse failures for metrics.
func failureKind(err error) string {
	switch err.(type) {
	case *dataprocessing.ParseError:
		return "unreadable"
	case *dataprocessing.SchemaError:
		return "schema"
	default:
		return "other"
	}
}
