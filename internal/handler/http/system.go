package http

import (
	"log/slog"
	"net/http"

	"github.com/ayurbloom/catalog-service/internal/service"
	"github.com/ayurbloom/catalog-service/pkg/httputil"
)

// SystemHandler handles the root, seed and diagnostics endpoints.
type SystemHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewSystemHandler creates a new system HTTP handler.
func NewSystemHandler(svc *service.CatalogService, logger *slog.Logger) *SystemHandler {
	return &SystemHandler{
		service: svc,
		logger:  logger,
	}
}

// Root handles GET /, a plain liveness message.
func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Ayurbloom Catalog API is running",
	})
}

// Seed handles POST /api/seed. Seeding is idempotent; the response status
// field reports what happened.
func (h *SystemHandler) Seed(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.SeedCatalog(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// Diagnostics handles GET /test, the store connectivity probe. It always
// responds 200 with a report.
func (h *SystemHandler) Diagnostics(w http.ResponseWriter, r *http.Request) {
	report := h.service.Diagnose(r.Context())
	httputil.WriteJSON(w, http.StatusOK, report)
}
