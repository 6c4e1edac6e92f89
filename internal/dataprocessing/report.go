package dataprocessing

import (
	"context"
	"log/slog"

	"fundingpulse/pkg/contracts/domain"
)

// ReportOptions sizes the views of a full report.
type ReportOptions struct {
	TopRegions    int
	TopVerticals  int
	Region        string
	LargestRounds int
}

// DefaultReportOptions mirrors the dashboard defaults.
func DefaultReportOptions() ReportOptions {
	return ReportOptions{
		TopRegions:    10,
		TopVerticals:  10,
		Region:        domain.RegionAll,
		LargestRounds: 10,
	}
}

// Report bundles every view derived from one cleaned dataset.
type Report struct {
	Metrics       domain.Metrics           `json:"metrics"`
	TopRegions    []domain.GroupTotal      `json:"top_regions"`
	TopVerticals  []domain.GroupTotal      `json:"top_verticals"`
	Boxplot       domain.BoxplotView       `json:"stage_boxplot"`
	BoxStats      []domain.BoxStats        `json:"stage_box_stats"`
	StageSummary  []domain.StageSummaryRow `json:"stage_summary"`
	Region        string                   `json:"region"`
	RegionDeals   []domain.DealRow         `json:"region_deals"`
	LargestRounds []domain.DealRow         `json:"largest_rounds"`
}

// Pipeline cleans a raw dataset and derives reports from it.
type Pipeline struct {
	logger *slog.Logger
}

// NewPipeline creates a pipeline that logs under the "pipeline" component.
func NewPipeline(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{logger: logger.With(slog.String("component", "pipeline"))}
}

// Clean runs Clean and logs the outcome.
func (p *Pipeline) Clean(ctx context.Context, raw *domain.RawDataset) (*domain.Dataset, CleanStats, error) {
	ds, stats, err := Clean(raw)
	attrs := []any{
		slog.Int("initial_rows", stats.InitialRows),
		slog.Int("dropped_amount", stats.DroppedAmount),
		slog.Int("dropped_date", stats.DroppedDate),
		slog.Int("final_rows", stats.FinalRows),
	}
	if err != nil {
		p.logger.ErrorContext(ctx, "data cleaning failed", append(attrs, slog.String("error", err.Error()))...)
		return nil, stats, err
	}
	p.logger.InfoContext(ctx, "data cleaning complete", attrs...)
	return ds, stats, nil
}

// BuildReport computes every view of ds.
func (p *Pipeline) BuildReport(ctx context.Context, ds *domain.Dataset, opts ReportOptions) *Report {
	if opts.Region == "" {
		opts.Region = domain.RegionAll
	}

	boxplot := StageBoxplotView(ds)
	report := &Report{
		Metrics:       AggregateMetrics(ds),
		TopRegions:    TopKByGroup(ds, domain.ColumnRegion, opts.TopRegions),
		TopVerticals:  TopKByGroup(ds, domain.ColumnVertical, opts.TopVerticals),
		Boxplot:       boxplot,
		BoxStats:      StageBoxStats(boxplot),
		StageSummary:  StageSummary(ds),
		Region:        opts.Region,
		RegionDeals:   DealRows(ds, RegionFilter(ds, opts.Region), DealDateLayout),
		LargestRounds: DealRows(ds, Spotlight(ds, opts.LargestRounds), SpotlightDateLayout),
	}

	p.logger.InfoContext(ctx, "report built",
		slog.Int("records", ds.Len()),
		slog.Int("stages", len(report.StageSummary)),
		slog.Float64("outlier_cutoff", boxplot.Cutoff))
	return report
}
