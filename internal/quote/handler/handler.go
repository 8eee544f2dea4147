package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"bima/internal/payment"
	"bima/internal/quote/models"
	"bima/internal/rating"
	"bima/pkg/domain"
	dErrors "bima/pkg/domain-errors"
	"bima/pkg/platform/httputil"
	"bima/pkg/requestcontext"
)

// Service defines the quote lifecycle operations the handler needs.
type Service interface {
	CreateTravel(ctx context.Context, holder models.Holder, in rating.TravelInput) (*models.Quote, error)
	CreateGolf(ctx context.Context, holder models.Holder, in rating.GolfInput) (*models.Quote, error)
	CreateMarine(ctx context.Context, holder models.Holder, in rating.MarineInput) (*models.Quote, error)
	CreateAccident(ctx context.Context, holder models.Holder, in rating.AccidentInput) (*models.Quote, error)
	Get(ctx context.Context, product domain.ProductType, id domain.QuoteID) (*models.Quote, error)
	List(ctx context.Context, product domain.ProductType) ([]*models.Quote, error)
	Delete(ctx context.Context, product domain.ProductType, id domain.QuoteID) error
	Validity() time.Duration
}

// Payments defines the checkout operation the handler needs.
type Payments interface {
	Pay(ctx context.Context, product domain.ProductType, id domain.QuoteID, method payment.Method, payer string) (*models.Quote, error)
}

// Handler wires quote endpoints to the quote and payment services.
type Handler struct {
	service  Service
	payments Payments
	logger   *slog.Logger
}

func New(service Service, payments Payments, logger *slog.Logger) *Handler {
	return &Handler{service: service, payments: payments, logger: logger}
}

// Register mounts quote endpoints on the router. The router is expected to
// run authentication middleware before these handlers.
func (h *Handler) Register(r chi.Router) {
	r.Route("/quotes/{product}", func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.Get("/", h.HandleList)
		r.Get("/{quoteID}", h.HandleGet)
		r.Post("/{quoteID}/pay", h.HandlePay)
		r.Delete("/{quoteID}", h.HandleDelete)
	})
}

func productParam(w http.ResponseWriter, r *http.Request) (domain.ProductType, bool) {
	product, err := domain.ParseProduct(chi.URLParam(r, "product"))
	if err != nil {
		httputil.WriteError(w, err)
		return "", false
	}
	return product, true
}

func quoteIDParam(w http.ResponseWriter, r *http.Request) (domain.QuoteID, bool) {
	id, err := domain.ParseQuoteID(chi.URLParam(r, "quoteID"))
	if err != nil {
		httputil.WriteError(w, err)
		return "", false
	}
	return id, true
}

// HandleCreate handles POST /quotes/{product}. The body shape depends on the
// product line.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	product, ok := productParam(w, r)
	if !ok {
		return
	}

	var (
		quote *models.Quote
		err   error
	)
	switch product {
	case domain.ProductTravel:
		req, ok := httputil.DecodeAndPrepare[CreateTravelRequest](w, r)
		if !ok {
			return
		}
		quote, err = h.service.CreateTravel(ctx, req.Holder.toModel(), req.Parsed())
	case domain.ProductGolf:
		req, ok := httputil.DecodeAndPrepare[CreateGolfRequest](w, r)
		if !ok {
			return
		}
		quote, err = h.service.CreateGolf(ctx, req.Holder.toModel(), req.Parsed())
	case domain.ProductMarine:
		req, ok := httputil.DecodeAndPrepare[CreateMarineRequest](w, r)
		if !ok {
			return
		}
		quote, err = h.service.CreateMarine(ctx, req.Holder.toModel(), req.Parsed())
	case domain.ProductPersonalAccident:
		req, ok := httputil.DecodeAndPrepare[CreateAccidentRequest](w, r)
		if !ok {
			return
		}
		quote, err = h.service.CreateAccident(ctx, req.Holder.toModel(), req.Parsed())
	default:
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "unknown product type"))
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "quote creation failed",
			"request_id", requestcontext.RequestID(ctx),
			"product", product,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "quote created",
		"request_id", requestcontext.RequestID(ctx),
		"product", product,
		"quote_id", quote.ID,
		"total_payable", quote.Breakdown.TotalPayable,
	)
	httputil.WriteJSON(w, http.StatusCreated, FromQuote(quote, h.service.Validity()))
}

// HandleList handles GET /quotes/{product}.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	product, ok := productParam(w, r)
	if !ok {
		return
	}

	quotes, err := h.service.List(r.Context(), product)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromQuotes(quotes, h.service.Validity()))
}

// HandleGet handles GET /quotes/{product}/{quoteID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	product, ok := productParam(w, r)
	if !ok {
		return
	}
	id, ok := quoteIDParam(w, r)
	if !ok {
		return
	}

	quote, err := h.service.Get(r.Context(), product, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromQuote(quote, h.service.Validity()))
}

// HandlePay handles POST /quotes/{product}/{quoteID}/pay.
func (h *Handler) HandlePay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	product, ok := productParam(w, r)
	if !ok {
		return
	}
	id, ok := quoteIDParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[PayRequest](w, r)
	if !ok {
		return
	}

	quote, err := h.payments.Pay(ctx, product, id, req.ParsedMethod(), req.Payer)
	if err != nil {
		h.logger.ErrorContext(ctx, "payment failed",
			"request_id", requestcontext.RequestID(ctx),
			"product", product,
			"quote_id", id,
			"method", req.Method,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "quote paid",
		"request_id", requestcontext.RequestID(ctx),
		"product", product,
		"quote_id", id,
		"method", req.Method,
	)
	httputil.WriteJSON(w, http.StatusOK, FromQuote(quote, h.service.Validity()))
}

// HandleDelete handles DELETE /quotes/{product}/{quoteID}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	product, ok := productParam(w, r)
	if !ok {
		return
	}
	id, ok := quoteIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), product, id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
