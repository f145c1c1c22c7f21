package http

import (
	"context"
	"io"

	"screener/internal/exporter"
	"screener/internal/services"
	"screener/pkg/contracts/domain"
)

// ScreeningServiceInterface is the surface the dataset handler needs from
// the screening service.
type ScreeningServiceInterface interface {
	LoadDataset(ctx context.Context, filename string, r io.Reader) (*services.Session, error)
	GetDataset(ctx context.Context, id string) (*services.Session, error)
	DeleteDataset(ctx context.Context, id string) error
	Screen(ctx context.Context, id string, criteria domain.Criteria, topN int) (*services.ScreenResult, error)
	Export(ctx context.Context, id string, criteria domain.Criteria, format exporter.Format, w io.Writer) (int, error)
}

// HealthServiceInterface is the surface the health handler needs.
type HealthServiceInterface interface {
	CheckHealth(ctx context.Context) services.HealthStatus
	IsReady(ctx context.Context) bool
}
