package services

import (
	"context"
	"log/slog"
	"time"

	"screener/pkg/contracts"
)

// HealthStatus is the payload of the health endpoints.
type HealthStatus struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
	Sessions  int       `json:"sessions"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthService reports process health and the state of the dataset store.
type HealthService struct {
	store     *DatasetStore
	logger    *slog.Logger
	startTime time.Time
}

// NewHealthService creates a new health service
func NewHealthService(store *DatasetStore, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	return &HealthService{
		store:     store,
		logger:    logger.With(slog.String("component", "health_service")),
		startTime: time.Now(),
	}
}

// CheckHealth returns the current health snapshot. The store lives in
// process memory, so the service is healthy whenever it can answer.
func (h *HealthService) CheckHealth(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "healthy",
		Version:   contracts.Version,
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Sessions:  h.store.Count(),
		Timestamp: time.Now(),
	}
}

// IsReady reports whether the service can accept traffic.
func (h *HealthService) IsReady(ctx context.Context) bool {
	return h.store != nil
}
