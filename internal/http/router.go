// Package httpapi assembles the HTTP surface: middleware chain, public
// endpoints, and the authenticated API. Handlers stay thin and delegate to
// domain services.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bima/internal/auth"
	"bima/internal/dashboard"
	"bima/internal/platform/metrics"
	"bima/internal/platform/middleware"
	quotehandler "bima/internal/quote/handler"
	"bima/pkg/platform/httputil"
)

// HealthCheck probes one backing dependency.
type HealthCheck func(ctx context.Context) error

// Deps carries everything the router mounts.
type Deps struct {
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Tokens    *auth.JWTService
	Auth      *auth.Handler
	Quotes    *quotehandler.Handler
	Dashboard *dashboard.Handler

	// HealthChecks are probed by /healthz, keyed by component name.
	HealthChecks map[string]HealthCheck
}

// NewRouter wires the middleware chain and mounts all endpoints.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)
	if deps.Metrics != nil {
		r.Use(middleware.Latency(deps.Metrics))
	}

	r.Get("/healthz", healthHandler(deps.HealthChecks))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	deps.Auth.RegisterPublic(r)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(deps.Tokens))
		deps.Auth.RegisterProtected(r)
		deps.Quotes.Register(r)
		deps.Dashboard.Register(r)
	})

	return r
}

type healthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok"}
		status := http.StatusOK
		if len(checks) > 0 {
			resp.Components = make(map[string]string, len(checks))
			for name, check := range checks {
				if err := check(ctx); err != nil {
					resp.Components[name] = err.Error()
					resp.Status = "degraded"
					status = http.StatusServiceUnavailable
				} else {
					resp.Components[name] = "ok"
				}
			}
		}
		httputil.WriteJSON(w, status, resp)
	}
}
