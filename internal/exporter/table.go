package exporter

import (
	"fundingpulse/internal/dataprocessing"
	"fundingpulse/pkg/contracts/domain"
)

// Table names double as CSV base names and workbook sheet names.
const (
	TableMetrics       = "metrics"
	TableTopRegions    = "top_regions"
	TableTopVerticals  = "top_verticals"
	TableStageBoxplot  = "stage_boxplot"
	TableStageBoxStats = "stage_box_stats"
	TableStageSummary  = "stage_summary"
	TableRecentDeals   = "recent_deals"
	TableLargestRounds = "largest_rounds"
	TableSeedDeals     = "seed_deals"
)

// Table is one rectangular report section
type Table struct {
	Name    string
	Headers []string
	Rows    [][]string
}

var dealHeaders = []string{
	domain.ColumnCompany,
	domain.ColumnVertical,
	domain.ColumnAmount,
	domain.ColumnStage,
	domain.ColumnDate,
	domain.ColumnRegion,
}

// ReportTables flattens a report into its tables, in file order. stageDeals
// may be nil when no SQL query was run.
func ReportTables(report *dataprocessing.Report, stageDeals []domain.StageDeal) []Table {
	tables := []Table{
		metricsTable(report.Metrics),
		groupTable(TableTopRegions, domain.ColumnRegion, report.TopRegions),
		groupTable(TableTopVerticals, domain.ColumnVertical, report.TopVerticals),
		boxplotTable(report.Boxplot),
		boxStatsTable(report.BoxStats),
		stageSummaryTable(report.StageSummary),
		dealTable(TableRecentDeals, report.RegionDeals),
		dealTable(TableLargestRounds, report.LargestRounds),
	}
	if stageDeals != nil {
		tables = append(tables, stageDealTable(stageDeals))
	}
	return tables
}

func metricsTable(m domain.Metrics) Table {
	return Table{
		Name:    TableMetrics,
		Headers: []string{"Metric", "Value", "Display"},
		Rows: [][]string{
			{"Total Funding (USD)", formatFloat(m.Total), dataprocessing.FormatUSD(m.Total)},
			{"Average Funding (USD)", formatFloat(m.Mean), dataprocessing.FormatUSD(m.Mean)},
			{"Median Funding (USD)", formatFloat(m.Median), dataprocessing.FormatUSD(m.Median)},
			{"Number of Deals", formatInt(m.Count), formatInt(m.Count)},
		},
	}
}

func groupTable(name, column string, totals []domain.GroupTotal) Table {
	rows := make([][]string, 0, len(totals))
	for _, g := range totals {
		rows = append(rows, []string{g.Group, formatFloat(g.Total)})
	}
	return Table{Name: name, Headers: []string{column, "Total Funding (USD)"}, Rows: rows}
}

func boxplotTable(view domain.BoxplotView) Table {
	rows := make([][]string, 0, len(view.Points))
	for _, p := range view.Points {
		rows = append(rows, []string{
			p.Record.Stage,
			formatInt(p.Rank),
			p.Record.Company,
			formatFloat(p.Record.Amount),
			formatDate(p.Record.Date),
		})
	}
	return Table{
		Name:    TableStageBoxplot,
		Headers: []string{domain.ColumnStage, "Stage Rank", domain.ColumnCompany, domain.ColumnAmount, domain.ColumnDate},
		Rows:    rows,
	}
}

func boxStatsTable(stats []domain.BoxStats) Table {
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{
			s.Stage,
			formatInt(s.Count),
			formatFloat(s.Min),
			formatFloat(s.Q1),
			formatFloat(s.Median),
			formatFloat(s.Q3),
			formatFloat(s.Max),
		})
	}
	return Table{
		Name:    TableStageBoxStats,
		Headers: []string{domain.ColumnStage, "Count", "Min", "Q1", "Median", "Q3", "Max"},
		Rows:    rows,
	}
}

func stageSummaryTable(summary []domain.StageSummaryRow) Table {
	rows := make([][]string, 0, len(summary))
	for _, s := range summary {
		rows = append(rows, []string{
			s.Stage,
			formatInt(s.Count),
			s.TotalDisplay,
			s.MeanDisplay,
			s.MedianDisplay,
		})
	}
	return Table{
		Name: TableStageSummary,
		Headers: []string{
			domain.ColumnStage,
			"Number of Deals",
			"Total Funding (USD)",
			"Average Funding (USD)",
			"Median Funding (USD)",
		},
		Rows: rows,
	}
}

func dealTable(name string, deals []domain.DealRow) Table {
	rows := make([][]string, 0, len(deals))
	for _, d := range deals {
		rows = append(rows, []string{d.Company, d.Vertical, d.Amount, d.Stage, d.Date, d.Region})
	}
	return Table{Name: name, Headers: dealHeaders, Rows: rows}
}

func stageDealTable(deals []domain.StageDeal) Table {
	rows := make([][]string, 0, len(deals))
	for _, d := range deals {
		rows = append(rows, []string{d.Company, d.Region, d.Vertical, formatOptionalFloat(d.Amount), d.Date})
	}
	return Table{
		Name: TableSeedDeals,
		Headers: []string{
			domain.ColumnCompany,
			domain.ColumnRegion,
			domain.ColumnVertical,
			domain.ColumnAmount,
			domain.ColumnDate,
		},
		Rows: rows,
	}
}
