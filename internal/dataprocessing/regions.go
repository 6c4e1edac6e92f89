package dataprocessing

import (
	"sort"

	"fundingpulse/pkg/contracts/domain"
)

// RecentDealsLimit is the number of records returned for the "All" region.
const RecentDealsLimit = 20

// RegionFilter returns the records of one region in original order. The
// special region "All" instead returns the most recent RecentDealsLimit
// records by funding date, newest first, ties in original order. Without a
// Region column, or for "All" without a date column, the result is empty.
func RegionFilter(ds *domain.Dataset, region string) []domain.FundingRecord {
	if !ds.HasColumn(domain.ColumnRegion) {
		return []domain.FundingRecord{}
	}

	if region == domain.RegionAll {
		if !ds.HasColumn(domain.ColumnDate) {
			return []domain.FundingRecord{}
		}
		recent := append([]domain.FundingRecord(nil), ds.Records...)
		sort.SliceStable(recent, func(i, j int) bool {
			return recent[i].Date.After(recent[j].Date)
		})
		if len(recent) > RecentDealsLimit {
			recent = recent[:RecentDealsLimit]
		}
		return recent
	}

	out := make([]domain.FundingRecord, 0)
	for _, rec := range ds.Records {
		if rec.Region == region {
			out = append(out, rec)
		}
	}
	return out
}

// RegionOptions lists the selectable regions: "All" followed by every
// distinct non-empty region in sorted order.
func RegionOptions(ds *domain.Dataset) []string {
	options := []string{domain.RegionAll}
	if !ds.HasColumn(domain.ColumnRegion) {
		return options
	}

	seen := make(map[string]struct{})
	regions := make([]string, 0)
	for _, rec := range ds.Records {
		if rec.Region == "" {
			continue
		}
		if _, ok := seen[rec.Region]; ok {
			continue
		}
		seen[rec.Region] = struct{}{}
		regions = append(regions, rec.Region)
	}
	sort.Strings(regions)
	return append(options, regions...)
}
