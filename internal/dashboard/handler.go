package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bima/pkg/platform/httputil"
	"bima/pkg/requestcontext"
)

// Handler serves the dashboard projection.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the dashboard endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/dashboard", h.HandleOverview)
}

// HandleOverview handles GET /dashboard.
func (h *Handler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	overview, err := h.service.Overview(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "dashboard projection failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, overview)
}
