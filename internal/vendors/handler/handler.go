package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"bloodhound/internal/vendors"
	id "bloodhound/pkg/domain"
	dErrors "bloodhound/pkg/domain-errors"
	"bloodhound/pkg/platform/httputil"
	"bloodhound/pkg/requestcontext"
)

// Service defines the interface for vendor operations.
type Service interface {
	Evaluate(ctx context.Context, req vendor.EvaluateRequest) (*vendor.Assessment, error)
	List(ctx context.Context) ([]vendor.Vendor, error)
	SetWatchlist(ctx context.Context, vendorID id.VendorID, watchlisted bool) error
}

// Handler wires vendor endpoints to the vendor service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a vendor handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts vendor endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/vendors/evaluate", h.HandleEvaluate)
	r.Get("/vendors", h.HandleList)
	r.Put("/vendors/{vendorID}/watchlist", h.HandleWatchlist)
}

// HandleEvaluate handles POST /vendors/evaluate requests.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	userID := requestcontext.UserID(ctx)
	if userID == (id.UserID{}) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[EvaluateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	assessment, err := h.service.Evaluate(ctx, req.ToDomain())
	if err != nil {
		h.logger.ErrorContext(ctx, "vendor evaluation failed",
			"request_id", requestID,
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "vendor evaluation served",
		"request_id", requestID,
		"user_id", userID,
		"risk_tier", assessment.Tier.String(),
		"degraded", assessment.Degraded,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromAssessment(assessment))
}

// HandleList handles GET /vendors requests.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	userID := requestcontext.UserID(ctx)
	if userID == (id.UserID{}) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	records, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "vendor list failed",
			"request_id", requestID,
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromVendors(records))
}

// HandleWatchlist handles PUT /vendors/{vendorID}/watchlist requests.
func (h *Handler) HandleWatchlist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	userID := requestcontext.UserID(ctx)
	if userID == (id.UserID{}) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	vendorID, err := id.ParseVendorID(chi.URLParam(r, "vendorID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[WatchlistRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.service.SetWatchlist(ctx, vendorID, req.Watchlisted); err != nil {
		h.logger.ErrorContext(ctx, "watchlist update failed",
			"request_id", requestID,
			"user_id", userID,
			"vendor_id", vendorID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "watchlist updated",
		"request_id", requestID,
		"user_id", userID,
		"vendor_id", vendorID,
		"watchlisted", req.Watchlisted,
	)

	w.WriteHeader(http.StatusNoContent)
}
