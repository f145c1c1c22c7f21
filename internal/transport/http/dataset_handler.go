package http

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"screener/internal/config"
	apierrors "screener/internal/errors"
	"screener/internal/exporter"
	"screener/internal/services"
	"screener/internal/validation"
	"screener/pkg/contracts/domain"
)

// DatasetHandler handles dataset upload, screening and export requests.
type DatasetHandler struct {
	service      ScreeningServiceInterface
	cfg          *config.Config
	validator    *validation.UploadValidator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDatasetHandler creates a new dataset handler
func NewDatasetHandler(service ScreeningServiceInterface, cfg *config.Config, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DatasetHandler {
	return &DatasetHandler{
		service:      service,
		cfg:          cfg,
		validator:    validation.NewUploadValidator(cfg.Upload.MaxFileSize, logger),
		logger:       logger.With(slog.String("component", "dataset_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dataset routes
func (h *DatasetHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Upload)

	r.Route("/{datasetID}", func(r chi.Router) {
		r.Use(h.DatasetCtx)
		r.Get("/", h.Get)
		r.Post("/screen", h.Screen)
		r.Post("/export", h.Export)
		r.Delete("/", h.Delete)
	})

	return r
}

// DatasetCtx validates the dataset ID parameter
func (h *DatasetHandler) DatasetCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "datasetID") == "" {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("dataset_id", "Dataset ID is required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// datasetResponse describes one stored dataset.
type datasetResponse struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Rows      int       `json:"rows"`
	Dropped   int       `json:"dropped"`
	CreatedAt time.Time `json:"created_at"`
}

func newDatasetResponse(s *services.Session) datasetResponse {
	return datasetResponse{
		ID:        s.ID,
		Filename:  s.Filename,
		Rows:      s.Dataset.Len(),
		Dropped:   s.Stats.Dropped,
		CreatedAt: s.CreatedAt,
	}
}

// Upload handles POST /api/datasets. The workbook arrives as the multipart
// form field "file".
func (h *DatasetHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.Upload.MaxFileSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.errorHandler.HandleError(w, r, apierrors.ErrPayloadTooLarge)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", "Multipart field \"file\" is required"))
		return
	}
	defer file.Close()

	if err := h.validator.ValidateFilename(header.Filename); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrUnsupportedMedia)
		return
	}
	if err := h.validator.ValidateSize(header.Size); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrPayloadTooLarge)
		return
	}

	// The sniff consumes a prefix; the returned reader replays it for the
	// parser either way, so parse errors still carry the full payload.
	payload, err := h.validator.ValidateContent(file)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrUnsupportedMedia)
		return
	}

	session, err := h.service.LoadDataset(r.Context(), filepath.Base(header.Filename), payload)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, newDatasetResponse(session))
}

// Get handles GET /api/datasets/{datasetID}
func (h *DatasetHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.GetDataset(r.Context(), chi.URLParam(r, "datasetID"))
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}

	render.JSON(w, r, newDatasetResponse(session))
}

// Delete handles DELETE /api/datasets/{datasetID}
func (h *DatasetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteDataset(r.Context(), chi.URLParam(r, "datasetID")); err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// screenRequest is the body of POST /api/datasets/{id}/screen. A missing
// criteria object selects the defaults; top_n zero selects the default size.
type screenRequest struct {
	Criteria *domain.Criteria `json:"criteria"`
	TopN     int              `json:"top_n"`
}

func (req *screenRequest) Bind(r *http.Request) error {
	if req.Criteria == nil {
		c := domain.DefaultCriteria()
		req.Criteria = &c
	}
	return nil
}

// screenResponse is the result of one screening run.
type screenResponse struct {
	Rows        []domain.Record  `json:"rows"`
	Count       int              `json:"count"`
	TopN        int              `json:"top_n"`
	Chart       domain.ChartData `json:"chart"`
	ChartConfig chartConfig      `json:"chart_config"`
}

// chartConfig carries the rendering hints for chart labels.
type chartConfig struct {
	FontFamily    string   `json:"font_family"`
	FallbackFonts []string `json:"fallback_fonts,omitempty"`
}

// Screen handles POST /api/datasets/{datasetID}/screen
func (h *DatasetHandler) Screen(w http.ResponseWriter, r *http.Request) {
	req := &screenRequest{}
	if err := render.Bind(r, req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	result, err := h.service.Screen(r.Context(), chi.URLParam(r, "datasetID"), *req.Criteria, req.TopN)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}

	render.JSON(w, r, screenResponse{
		Rows:  result.Rows,
		Count: result.Count,
		TopN:  result.TopN,
		Chart: result.Chart,
		ChartConfig: chartConfig{
			FontFamily:    h.cfg.Chart.FontFamily,
			FallbackFonts: h.cfg.Chart.FallbackFonts,
		},
	})
}

// exportRequest is the body of POST /api/datasets/{id}/export.
type exportRequest struct {
	Criteria *domain.Criteria `json:"criteria"`
	Format   string           `json:"format"`
}

func (req *exportRequest) Bind(r *http.Request) error {
	if req.Criteria == nil {
		c := domain.DefaultCriteria()
		req.Criteria = &c
	}
	return nil
}

// Export handles POST /api/datasets/{datasetID}/export. The export is
// buffered so a late failure still produces a problem document instead of a
// truncated download.
func (h *DatasetHandler) Export(w http.ResponseWriter, r *http.Request) {
	req := &exportRequest{}
	if err := render.Bind(r, req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	format, err := exporter.ParseFormat(req.Format)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("format", err.Error()))
		return
	}

	id := chi.URLParam(r, "datasetID")
	session, err := h.service.GetDataset(r.Context(), id)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}

	var buf bytes.Buffer
	count, err := h.service.Export(r.Context(), id, *req.Criteria, format, &buf)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}

	filename := exportFilename(session.Filename, format)

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("X-Export-Rows", fmt.Sprintf("%d", count))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// exportFilename derives the download name from the uploaded filename.
func exportFilename(uploaded string, format exporter.Format) string {
	base := strings.TrimSuffix(filepath.Base(uploaded), filepath.Ext(uploaded))
	if base == "" || base == "." {
		base = "screening_results"
	}
	return base + "_screened" + format.Extension()
}

// mapServiceError translates service sentinels into API errors. Workbook
// parse and schema errors pass through untouched; the error handler owns
// their problem mapping.
func mapServiceError(err error) error {
	switch {
	case errors.Is(err, services.ErrDatasetNotFound):
		return apierrors.ErrDatasetNotFound
	case errors.Is(err, services.ErrInvalidCriteria):
		return apierrors.ErrValidation("criteria", err.Error())
	case errors.Is(err, services.ErrInvalidTopN):
		return apierrors.ErrValidation("top_n", err.Error())
	case errors.Is(err, services.ErrUnsupportedFormat):
		return apierrors.ErrValidation("format", err.Error())
	default:
		return err
	}
}
