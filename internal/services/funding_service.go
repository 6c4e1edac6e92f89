package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"fundingpulse/internal/config"
	"fundingpulse/internal/dataprocessing"
	"fundingpulse/internal/infrastructure"
	"fundingpulse/internal/store"
	api "fundingpulse/pkg/contracts/api/v1"
	"fundingpulse/pkg/contracts/domain"
)

// View names reported on funding_view_requests_total
const (
	ViewMetrics       = "metrics"
	ViewTopRegions    = "top_regions"
	ViewTopVerticals  = "top_verticals"
	ViewBoxplot       = "stage_boxplot"
	ViewStageSummary  = "stage_summary"
	ViewRegions       = "regions"
	ViewRegionDeals   = "region_deals"
	ViewLargestRounds = "largest_rounds"
	ViewStageQuery    = "stage_query"
	ViewReport        = "report"
)

// DealQuerier runs SQL queries over the raw dataset
type DealQuerier interface {
	StageDeals(ctx context.Context, stage string, limit int) ([]domain.StageDeal, error)
	Count(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}

// FundingService serves the dashboard views of one cleaned dataset
type FundingService struct {
	dataset  *domain.Dataset
	stats    dataprocessing.CleanStats
	store    DealQuerier
	pipeline *dataprocessing.Pipeline
	metrics  *infrastructure.PipelineMetrics
	logger   *slog.Logger
}

// LoadOptions carries the collaborators of LoadFundingService. Metrics and
// Tracer may be nil.
type LoadOptions struct {
	Dataset config.DatasetConfig
	Metrics *infrastructure.PipelineMetrics
	Tracer  trace.Tracer
	Logger  *slog.Logger
}

// LoadFundingService loads the configured file, cleans it and loads the raw
// rows into the SQL store. Cleaning errors are returned unchanged so callers
// can test them with errors.Is against the dataprocessing sentinels.
func LoadFundingService(ctx context.Context, opts LoadOptions) (*FundingService, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = tracenoop.NewTracerProvider().Tracer(infrastructure.MeterName)
	}

	ctx, span := tracer.Start(ctx, "funding.load",
		trace.WithAttributes(attribute.String("dataset.path", opts.Dataset.Path)))
	defer span.End()

	start := time.Now()

	raw, err := dataprocessing.NewLoader(logger, opts.Dataset.Sheet).Load(ctx, opts.Dataset.Path)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}
	infrastructure.AddSpanEvent(ctx, "dataset.read", attribute.Int("rows", len(raw.Rows)))

	pipeline := dataprocessing.NewPipeline(logger)
	ds, stats, err := pipeline.Clean(ctx, raw)
	opts.Metrics.RecordClean(ctx, stats.FinalRows, stats.DroppedAmount, stats.DroppedDate, time.Since(start))
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	dealStore, err := store.NewDealStore(ctx, raw, logger)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, fmt.Errorf("load query store: %w", err)
	}

	span.SetAttributes(
		attribute.Int("records.initial", stats.InitialRows),
		attribute.Int("records.final", stats.FinalRows),
	)

	svc := NewFundingService(ds, stats, dealStore, opts.Metrics, logger)
	svc.pipeline = pipeline
	return svc, nil
}

// NewFundingService wraps an already cleaned dataset
func NewFundingService(ds *domain.Dataset, stats dataprocessing.CleanStats, querier DealQuerier, metrics *infrastructure.PipelineMetrics, logger *slog.Logger) *FundingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FundingService{
		dataset:  ds,
		stats:    stats,
		store:    querier,
		pipeline: dataprocessing.NewPipeline(logger),
		metrics:  metrics,
		logger:   logger.With(slog.String("component", "funding_service")),
	}
}

// Dataset returns the cleaned dataset
func (s *FundingService) Dataset() *domain.Dataset {
	return s.dataset
}

// CleanStats returns the row counts of the cleaning pass
func (s *FundingService) CleanStats() dataprocessing.CleanStats {
	return s.stats
}

func (s *FundingService) view(ctx context.Context, name string) {
	s.metrics.RecordView(ctx, name)
	s.logger.DebugContext(ctx, "computing view", slog.String("view", name))
}

// Metrics returns the overview block
func (s *FundingService) Metrics(ctx context.Context) api.MetricsResponse {
	s.view(ctx, ViewMetrics)
	m := dataprocessing.AggregateMetrics(s.dataset)
	return api.MetricsResponse{
		Metrics:       m,
		TotalDisplay:  dataprocessing.FormatUSD(m.Total),
		MeanDisplay:   dataprocessing.FormatUSD(m.Mean),
		MedianDisplay: dataprocessing.FormatUSD(m.Median),
	}
}

// TopRegions returns the k regions with the largest funding totals
func (s *FundingService) TopRegions(ctx context.Context, k int) []domain.GroupTotal {
	s.view(ctx, ViewTopRegions)
	return dataprocessing.TopKByGroup(s.dataset, domain.ColumnRegion, k)
}

// TopVerticals returns the k primary verticals with the largest totals
func (s *FundingService) TopVerticals(ctx context.Context, k int) []domain.GroupTotal {
	s.view(ctx, ViewTopVerticals)
	return dataprocessing.TopKByGroup(s.dataset, domain.ColumnVertical, k)
}

// StageBoxplot returns the outlier-trimmed distribution and its box stats
func (s *FundingService) StageBoxplot(ctx context.Context) api.BoxplotResponse {
	s.view(ctx, ViewBoxplot)
	view := dataprocessing.StageBoxplotView(s.dataset)
	return api.BoxplotResponse{
		Cutoff: view.Cutoff,
		Points: view.Points,
		Boxes:  dataprocessing.StageBoxStats(view),
	}
}

// StageSummary returns the per-stage benchmark table
func (s *FundingService) StageSummary(ctx context.Context) []domain.StageSummaryRow {
	s.view(ctx, ViewStageSummary)
	return dataprocessing.StageSummary(s.dataset)
}

// RegionOptions returns "All" followed by the sorted distinct regions
func (s *FundingService) RegionOptions(ctx context.Context) []string {
	s.view(ctx, ViewRegions)
	return dataprocessing.RegionOptions(s.dataset)
}

// RegionDeals returns the deal table for region ("All" = most recent deals)
func (s *FundingService) RegionDeals(ctx context.Context, region string) []domain.DealRow {
	s.view(ctx, ViewRegionDeals)
	records := dataprocessing.RegionFilter(s.dataset, region)
	return dataprocessing.DealRows(s.dataset, records, dataprocessing.DealDateLayout)
}

// LargestRounds returns the spotlight table of the n largest rounds
func (s *FundingService) LargestRounds(ctx context.Context, n int) []domain.DealRow {
	s.view(ctx, ViewLargestRounds)
	records := dataprocessing.Spotlight(s.dataset, n)
	return dataprocessing.DealRows(s.dataset, records, dataprocessing.SpotlightDateLayout)
}

// StageDeals runs the SQL stage query
func (s *FundingService) StageDeals(ctx context.Context, stage string, limit int) ([]domain.StageDeal, error) {
	if s.store == nil {
		return nil, ErrStoreUnavailable
	}
	s.view(ctx, ViewStageQuery)

	deals, err := s.store.StageDeals(ctx, stage, limit)
	if err != nil {
		s.logger.ErrorContext(ctx, "stage query failed",
			slog.String("stage", stage),
			slog.Int("limit", limit),
			slog.String("error", err.Error()))
		return nil, err
	}
	return deals, nil
}

// Report computes every view at once for batch export
func (s *FundingService) Report(ctx context.Context, opts dataprocessing.ReportOptions) *dataprocessing.Report {
	s.view(ctx, ViewReport)
	return s.pipeline.BuildReport(ctx, s.dataset, opts)
}

// Ready reports whether the dataset is loaded and the store answers with
// every raw row in place
func (s *FundingService) Ready(ctx context.Context) error {
	if s.dataset == nil || s.dataset.Len() == 0 {
		return ErrDatasetNotLoaded
	}
	if s.store == nil {
		return ErrStoreUnavailable
	}
	if err := s.store.Ping(ctx); err != nil {
		return err
	}
	n, err := s.store.Count(ctx)
	if err != nil {
		return err
	}
	if n != int64(s.stats.InitialRows) {
		return fmt.Errorf("%w: holds %d of %d rows", ErrStoreUnavailable, n, s.stats.InitialRows)
	}
	return nil
}

// Close releases the SQL store
func (s *FundingService) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}
