package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "fomcdots/internal/errors"
	"fomcdots/internal/exporter"
	"fomcdots/internal/reshape"
	"fomcdots/internal/services"
)

// DotplotHandler handles dot plot HTTP requests
type DotplotHandler struct {
	service      *services.DotplotService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDotplotHandler creates a new dot plot handler
func NewDotplotHandler(service *services.DotplotService, logger *slog.Logger) *DotplotHandler {
	return &DotplotHandler{
		service:      service,
		logger:       logger,
		errorHandler: apierrors.NewErrorHandler(logger, false),
	}
}

// RegisterRoutes registers the dot plot routes
func (h *DotplotHandler) RegisterRoutes(r chi.Router) {
	r.Route("/dotplot", func(r chi.Router) {
		r.Get("/", h.GetBeeswarm)
		r.Get("/csv", h.GetBeeswarmCSV)
		r.Get("/wide", h.GetWideTable)
	})
}

// GetBeeswarm returns the display-ready vote list as JSON.
func (h *DotplotHandler) GetBeeswarm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	opts, err := parseOptions(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result, err := h.service.Beeswarm(ctx, opts)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, result)
}

// GetBeeswarmCSV streams the display-ready vote table as CSV.
func (h *DotplotHandler) GetBeeswarmCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	opts, err := parseOptions(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result, err := h.service.Beeswarm(ctx, opts)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="dots_beeswarm.csv"`)

	if err := exporter.WriteBeeswarmTo(w, result.Votes); err != nil {
		h.logger.ErrorContext(ctx, "failed to stream beeswarm CSV",
			slog.String("error", err.Error()))
	}
}

// GetWideTable returns the unreshaped wide projection table as JSON.
func (h *DotplotHandler) GetWideTable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rows, err := h.service.WideTable(ctx)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, rows)
}

// parseOptions reads the filter_last_year query parameter. Filtering
// defaults to on, matching the published chart.
func parseOptions(r *http.Request) (reshape.Options, error) {
	opts := reshape.DefaultOptions()

	raw := r.URL.Query().Get("filter_last_year")
	if raw == "" {
		return opts, nil
	}

	filter, err := strconv.ParseBool(raw)
	if err != nil {
		return opts, apierrors.InvalidParameterError("filter_last_year",
			fmt.Errorf("expected a boolean, got %q", raw))
	}

	opts.FilterLastYear = filter
	return opts, nil
}
