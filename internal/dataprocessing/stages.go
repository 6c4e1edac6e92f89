package dataprocessing

import (
	"sort"

	"fundingpulse/pkg/contracts/domain"
)

// OutlierQuantile is the amount quantile at and above which records are
// excluded from the stage box plot.
const OutlierQuantile = 0.995

// StageBoxplotView ranks records by stage for the box plot. The cutoff is
// computed over every record before any filtering; records at or above it
// and records with a stage outside the vocabulary are left out. Points are
// stable-sorted by stage rank. The dataset itself is not modified.
func StageBoxplotView(ds *domain.Dataset) domain.BoxplotView {
	view := domain.BoxplotView{Points: []domain.StagedRecord{}}
	if ds.Len() == 0 {
		return view
	}
	view.Cutoff = Percentile(ds.Amounts(), OutlierQuantile)
	if !ds.HasColumn(domain.ColumnStage) {
		return view
	}

	for _, rec := range ds.Records {
		rank, known := domain.StageRank(rec.Stage)
		if !known || rec.Amount >= view.Cutoff {
			continue
		}
		view.Points = append(view.Points, domain.StagedRecord{Rank: rank, Record: rec})
	}

	sort.SliceStable(view.Points, func(i, j int) bool {
		return view.Points[i].Rank < view.Points[j].Rank
	})
	return view
}

// StageBoxStats computes the five-number summary of each stage present in a
// box plot view, in vocabulary order.
func StageBoxStats(view domain.BoxplotView) []domain.BoxStats {
	byRank := make(map[int][]float64)
	for _, p := range view.Points {
		byRank[p.Rank] = append(byRank[p.Rank], p.Record.Amount)
	}

	out := make([]domain.BoxStats, 0, len(byRank))
	for rank, stage := range domain.StageVocabulary {
		amounts, ok := byRank[rank]
		if !ok {
			continue
		}
		sort.Float64s(amounts)
		out = append(out, domain.BoxStats{
			Stage:  stage,
			Count:  len(amounts),
			Min:    amounts[0],
			Q1:     percentileSorted(amounts, 0.25),
			Median: percentileSorted(amounts, 0.5),
			Q3:     percentileSorted(amounts, 0.75),
			Max:    amounts[len(amounts)-1],
		})
	}
	return out
}

// StageSummary aggregates count, total, mean and median per stage. Rows
// follow the stage vocabulary; stages outside it come last in lexicographic
// order. Records without a stage are skipped.
func StageSummary(ds *domain.Dataset) []domain.StageSummaryRow {
	if !ds.HasColumn(domain.ColumnStage) {
		return []domain.StageSummaryRow{}
	}

	groups := make(map[string][]float64)
	for _, rec := range ds.Records {
		if rec.Stage == "" {
			continue
		}
		groups[rec.Stage] = append(groups[rec.Stage], rec.Amount)
	}

	stages := make([]string, 0, len(groups))
	for stage := range groups {
		stages = append(stages, stage)
	}
	sort.Strings(stages)
	sort.SliceStable(stages, func(i, j int) bool {
		ri, okI := domain.StageRank(stages[i])
		rj, okJ := domain.StageRank(stages[j])
		switch {
		case okI && okJ:
			return ri < rj
		default:
			return okI && !okJ
		}
	})

	rows := make([]domain.StageSummaryRow, 0, len(stages))
	for _, stage := range stages {
		amounts := groups[stage]
		row := domain.StageSummaryRow{
			Stage:  stage,
			Count:  len(amounts),
			Total:  sum(amounts),
			Mean:   mean(amounts),
			Median: Median(amounts),
		}
		row.TotalDisplay = FormatUSD(row.Total)
		row.MeanDisplay = FormatUSD(row.Mean)
		row.MedianDisplay = FormatUSD(row.Median)
		rows = append(rows, row)
	}
	return rows
}
