package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "fundingpulse/internal/errors"
	mw "fundingpulse/internal/middleware"
	"fundingpulse/internal/services"
	api "fundingpulse/pkg/contracts/api/v1"
)

// FundingHandler serves the dashboard views
type FundingHandler struct {
	service      FundingServiceInterface
	validator    *mw.QueryValidator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewFundingHandler creates a new funding handler
func NewFundingHandler(service FundingServiceInterface, validator *mw.QueryValidator, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *FundingHandler {
	return &FundingHandler{
		service:      service,
		validator:    validator,
		logger:       logger.With(slog.String("component", "funding_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the funding routes, mounted under /api/funding
func (h *FundingHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/metrics", h.GetMetrics)
	r.Get("/regions", h.GetRegions)
	r.Get("/regions/top", h.GetTopRegions)
	r.Get("/verticals/top", h.GetTopVerticals)
	r.Get("/stages/boxplot", h.GetStageBoxplot)
	r.Get("/stages/summary", h.GetStageSummary)
	r.Get("/deals", h.GetDeals)
	r.Get("/deals/largest", h.GetLargestRounds)
	r.Get("/query/stage", h.GetStageQuery)

	return r
}

// bind fills req from the query string and answers 400 on failure
func (h *FundingHandler) bind(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := h.validator.Bind(r, req); err != nil {
		h.logger.InfoContext(r.Context(), "invalid query parameters",
			slog.String("path", r.URL.Path),
			slog.String("query", r.URL.RawQuery),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
		h.errorHandler.HandleError(w, r, err)
		return false
	}
	return true
}

func renderList(w http.ResponseWriter, r *http.Request, data interface{}, count int) {
	render.JSON(w, r, api.NewListResponse(data, count))
}

// GetMetrics handles GET /api/funding/metrics
func (h *FundingHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Metrics(r.Context()))
}

// GetRegions handles GET /api/funding/regions
func (h *FundingHandler) GetRegions(w http.ResponseWriter, r *http.Request) {
	options := h.service.RegionOptions(r.Context())
	renderList(w, r, options, len(options))
}

// GetTopRegions handles GET /api/funding/regions/top?k=10
func (h *FundingHandler) GetTopRegions(w http.ResponseWriter, r *http.Request) {
	req := api.NewTopGroupsRequest()
	if !h.bind(w, r, req) {
		return
	}
	totals := h.service.TopRegions(r.Context(), req.K)
	renderList(w, r, totals, len(totals))
}

// GetTopVerticals handles GET /api/funding/verticals/top?k=10
func (h *FundingHandler) GetTopVerticals(w http.ResponseWriter, r *http.Request) {
	req := api.NewTopGroupsRequest()
	if !h.bind(w, r, req) {
		return
	}
	totals := h.service.TopVerticals(r.Context(), req.K)
	renderList(w, r, totals, len(totals))
}

// GetStageBoxplot handles GET /api/funding/stages/boxplot
func (h *FundingHandler) GetStageBoxplot(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.StageBoxplot(r.Context()))
}

// GetStageSummary handles GET /api/funding/stages/summary
func (h *FundingHandler) GetStageSummary(w http.ResponseWriter, r *http.Request) {
	rows := h.service.StageSummary(r.Context())
	renderList(w, r, rows, len(rows))
}

// GetDeals handles GET /api/funding/deals?region=All
func (h *FundingHandler) GetDeals(w http.ResponseWriter, r *http.Request) {
	req := api.NewRegionDealsRequest()
	if !h.bind(w, r, req) {
		return
	}
	rows := h.service.RegionDeals(r.Context(), req.Region)
	renderList(w, r, rows, len(rows))
}

// GetLargestRounds handles GET /api/funding/deals/largest?n=10
func (h *FundingHandler) GetLargestRounds(w http.ResponseWriter, r *http.Request) {
	req := api.NewLargestRoundsRequest()
	if !h.bind(w, r, req) {
		return
	}
	rows := h.service.LargestRounds(r.Context(), req.N)
	renderList(w, r, rows, len(rows))
}

// GetStageQuery handles GET /api/funding/query/stage?stage=Seed&limit=10
func (h *FundingHandler) GetStageQuery(w http.ResponseWriter, r *http.Request) {
	req := api.NewStageQueryRequest()
	if !h.bind(w, r, req) {
		return
	}

	deals, err := h.service.StageDeals(r.Context(), req.Stage, req.Limit)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDatasetNotLoaded):
			h.errorHandler.HandleError(w, r, apierrors.ErrDatasetNotFound)
		case errors.Is(err, services.ErrStoreUnavailable):
			h.errorHandler.HandleError(w, r, apierrors.ErrServiceUnavailable)
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			h.errorHandler.HandleError(w, r, err)
		default:
			h.errorHandler.HandleError(w, r, apierrors.QueryError(err))
		}
		return
	}
	renderList(w, r, deals, len(deals))
}
