package dataprocessing

import (
	"sort"
	"strings"

	"fundingpulse/pkg/contracts/domain"
)

// groupableColumns maps a grouping column to the key extracted from a record.
var groupableColumns = map[string]func(domain.FundingRecord) string{
	domain.ColumnRegion:   func(r domain.FundingRecord) string { return r.Region },
	domain.ColumnVertical: func(r domain.FundingRecord) string { return PrimaryVertical(r.Vertical) },
	domain.ColumnStage:    func(r domain.FundingRecord) string { return r.Stage },
	domain.ColumnCompany:  func(r domain.FundingRecord) string { return r.Company },
}

// PrimaryVertical returns the part of a comma-separated vertical list before
// the first comma, trimmed.
func PrimaryVertical(vertical string) string {
	if i := strings.IndexByte(vertical, ','); i >= 0 {
		vertical = vertical[:i]
	}
	return strings.TrimSpace(vertical)
}

// TopKByGroup sums amounts per distinct value of column and returns the k
// largest totals in descending order. Equal totals keep the order in which
// their group was first seen. Records with an empty key are skipped. An
// unsupported or absent column, or k <= 0, yields an empty result.
func TopKByGroup(ds *domain.Dataset, column string, k int) []domain.GroupTotal {
	keyOf, ok := groupableColumns[column]
	if !ok || k <= 0 || !ds.HasColumn(column) {
		return []domain.GroupTotal{}
	}

	positions := make(map[string]int)
	totals := make([]domain.GroupTotal, 0)
	for _, rec := range ds.Records {
		key := keyOf(rec)
		if key == "" {
			continue
		}
		pos, seen := positions[key]
		if !seen {
			pos = len(totals)
			positions[key] = pos
			totals = append(totals, domain.GroupTotal{Group: key})
		}
		totals[pos].Total += rec.Amount
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total > totals[j].Total
	})
	if len(totals) > k {
		totals = totals[:k]
	}
	return totals
}

// TopNByAmount returns the n records with the largest amounts in descending
// order, ties in original order.
func TopNByAmount(ds *domain.Dataset, n int) []domain.FundingRecord {
	if n <= 0 {
		return []domain.FundingRecord{}
	}
	ranked := append([]domain.FundingRecord(nil), ds.Records...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount > ranked[j].Amount
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Spotlight returns the largest rounds for the spotlight table. It requires
// both the Company and Funding Date columns and is empty without either.
func Spotlight(ds *domain.Dataset, n int) []domain.FundingRecord {
	if !ds.HasColumn(domain.ColumnCompany) || !ds.HasColumn(domain.ColumnDate) {
		return []domain.FundingRecord{}
	}
	return TopNByAmount(ds, n)
}

// AggregateMetrics reduces the whole dataset to total, mean and median.
func AggregateMetrics(ds *domain.Dataset) domain.Metrics {
	amounts := ds.Amounts()
	m := domain.Metrics{Count: len(amounts)}
	if len(amounts) == 0 {
		return m
	}
	m.Total = sum(amounts)
	m.Mean = mean(amounts)
	m.Median = Median(amounts)
	return m
}
