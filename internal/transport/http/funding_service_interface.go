package http

import (
	"context"

	api "fundingpulse/pkg/contracts/api/v1"
	"fundingpulse/pkg/contracts/domain"
)

// FundingServiceInterface defines the views served by FundingHandler
type FundingServiceInterface interface {
	Metrics(ctx context.Context) api.MetricsResponse
	TopRegions(ctx context.Context, k int) []domain.GroupTotal
	TopVerticals(ctx context.Context, k int) []domain.GroupTotal
	StageBoxplot(ctx context.Context) api.BoxplotResponse
	StageSummary(ctx context.Context) []domain.StageSummaryRow
	RegionOptions(ctx context.Context) []string
	RegionDeals(ctx context.Context, region string) []domain.DealRow
	LargestRounds(ctx context.Context, n int) []domain.DealRow
	StageDeals(ctx context.Context, stage string, limit int) ([]domain.StageDeal, error)
}
