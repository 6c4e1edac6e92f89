// Package api contains the request contracts of the funding JSON feed.
// Version v1 represents the current stable API version.
package api

import (
	"fundingpulse/pkg/contracts/domain"
)

// Bounds shared by the query parameters below and the report command flags.
const (
	DefaultTopK     = 10
	DefaultLargestN = 10
	DefaultLimit    = 10
	DefaultStage    = "Seed"
)

// TopGroupsRequest selects the number of bars in a top-K chart
type TopGroupsRequest struct {
	K int `json:"k" form:"k" validate:"min=3,max=20"`
}

// NewTopGroupsRequest returns a request populated with defaults
func NewTopGroupsRequest() *TopGroupsRequest {
	return &TopGroupsRequest{K: DefaultTopK}
}

// RegionDealsRequest selects the region of the recent-deals table
type RegionDealsRequest struct {
	Region string `json:"region" form:"region" validate:"required,max=128"`
}

// NewRegionDealsRequest returns a request populated with defaults
func NewRegionDealsRequest() *RegionDealsRequest {
	return &RegionDealsRequest{Region: domain.RegionAll}
}

// LargestRoundsRequest selects the size of the spotlight table
type LargestRoundsRequest struct {
	N int `json:"n" form:"n" validate:"min=1,max=100"`
}

// NewLargestRoundsRequest returns a request populated with defaults
func NewLargestRoundsRequest() *LargestRoundsRequest {
	return &LargestRoundsRequest{N: DefaultLargestN}
}

// StageQueryRequest parameterises the SQL stage query
type StageQueryRequest struct {
	Stage string `json:"stage" form:"stage" validate:"required,max=64"`
	Limit int    `json:"limit" form:"limit" validate:"min=1,max=100"`
}

// NewStageQueryRequest returns a request populated with defaults
func NewStageQueryRequest() *StageQueryRequest {
	return &StageQueryRequest{Stage: DefaultStage, Limit: DefaultLimit}
}
