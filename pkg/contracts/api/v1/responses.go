package api

import (
	"fundingpulse/pkg/contracts/domain"
)

// MetricsResponse is the overview block with display strings
type MetricsResponse struct {
	domain.Metrics
	TotalDisplay  string `json:"total_display"`
	MeanDisplay   string `json:"mean_display"`
	MedianDisplay string `json:"median_display"`
}

// BoxplotResponse bundles the distribution points with per-stage box stats
type BoxplotResponse struct {
	Cutoff float64               `json:"cutoff"`
	Points []domain.StagedRecord `json:"points"`
	Boxes  []domain.BoxStats     `json:"boxes"`
}

// ListResponse is the success envelope for every collection endpoint
type ListResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
	Count  int         `json:"count"`
}

// NewListResponse wraps data with its item count
func NewListResponse(data interface{}, count int) ListResponse {
	return ListResponse{Status: "success", Data: data, Count: count}
}
