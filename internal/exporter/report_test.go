package exporter

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fundingpulse/internal/dataprocessing"
	"fundingpulse/internal/shared/testutil"
	"fundingpulse/pkg/contracts/domain"
)

func sampleReport() *dataprocessing.Report {
	seed := domain.FundingRecord{
		Company: "Acme",
		Region:  "United States",
		Amount:  1000000,
		Stage:   "Seed",
		Date:    time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	return &dataprocessing.Report{
		Metrics:      domain.Metrics{Total: 1250000, Mean: 625000, Median: 625000, Count: 2},
		TopRegions:   []domain.GroupTotal{{Group: "United States", Total: 1250000}},
		TopVerticals: []domain.GroupTotal{{Group: "Fintech", Total: 1000000}, {Group: "AI", Total: 250000}},
		Boxplot: domain.BoxplotView{
			Cutoff: 998750,
			Points: []domain.StagedRecord{{Rank: 1, Record: seed}},
		},
		BoxStats: []domain.BoxStats{{Stage: "Seed", Count: 1, Min: 1, Q1: 1, Median: 1, Q3: 1, Max: 1}},
		StageSummary: []domain.StageSummaryRow{
			{Stage: "Seed", Count: 1, TotalDisplay: "$1,000,000", MeanDisplay: "$1,000,000", MedianDisplay: "$1,000,000"},
		},
		Region: domain.RegionAll,
		RegionDeals: []domain.DealRow{
			{Company: "Acme", Vertical: "Fintech", Amount: "$1,000,000", Stage: "Seed", Date: "2023-01-01", Region: "United States"},
		},
		LargestRounds: []domain.DealRow{
			{Company: "Acme", Vertical: "Fintech", Amount: "$1,000,000", Stage: "Seed", Date: "Jan 2023", Region: "United States"},
		},
	}
}

func TestReportWriter_Write(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	dir := t.TempDir()
	amount := 1000000.0
	deals := []domain.StageDeal{
		{Company: "Acme", Region: "United States", Vertical: "Fintech", Amount: &amount, Date: "Jan-23"},
		{Company: "Delta", Region: "Asia", Vertical: "Healthtech", Date: "Mar-23"},
	}

	writer := NewReportWriter(dir, ReportFormat{BOMPrefix: true, Workbook: true}, logger)
	files, err := writer.Write(context.Background(), sampleReport(), deals)
	require.NoError(t, err)

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	assert.Equal(t, []string{
		"metrics.csv",
		"top_regions.csv",
		"top_verticals.csv",
		"stage_boxplot.csv",
		"stage_box_stats.csv",
		"stage_summary.csv",
		"recent_deals.csv",
		"largest_rounds.csv",
		"seed_deals.csv",
		"funding_report.xlsx",
	}, names)

	hasBOM, metrics := readCSV(t, filepath.Join(dir, "metrics.csv"))
	assert.True(t, hasBOM)
	assert.Equal(t, []string{"Total Funding (USD)", "1250000.00", "$1,250,000"}, metrics[1])

	_, seed := readCSV(t, filepath.Join(dir, "seed_deals.csv"))
	require.Len(t, seed, 3)
	assert.Equal(t, "1000000.00", seed[1][3])
	assert.Equal(t, "", seed[2][3])

	_, boxplot := readCSV(t, filepath.Join(dir, "stage_boxplot.csv"))
	assert.Equal(t, []string{"Seed", "1", "Acme", "1000000.00", "2023-01-01"}, boxplot[1])
}

func TestReportWriter_WithoutWorkbookOrQuery(t *testing.T) {
	dir := t.TempDir()
	writer := NewReportWriter(dir, ReportFormat{}, nil)

	files, err := writer.Write(context.Background(), sampleReport(), nil)
	require.NoError(t, err)
	assert.Len(t, files, 8)
	assert.NoFileExists(t, filepath.Join(dir, WorkbookFile))
	assert.NoFileExists(t, filepath.Join(dir, "seed_deals.csv"))
}

func TestReportWriter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files, err := NewReportWriter(t.TempDir(), ReportFormat{}, nil).Write(ctx, sampleReport(), nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, files)
}

func TestWorkbookWriter_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), WorkbookFile)
	tables := ReportTables(sampleReport(), nil)

	require.NoError(t, NewWorkbookWriter(nil).Write(path, tables))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{
		TableMetrics, TableTopRegions, TableTopVerticals, TableStageBoxplot,
		TableStageBoxStats, TableStageSummary, TableRecentDeals, TableLargestRounds,
	}, f.GetSheetList())

	rows, err := f.GetRows(TableTopVerticals)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Vertical", "Total Funding (USD)"},
		{"Fintech", "1000000"},
		{"AI", "250000"},
	}, rows)

	header, err := f.GetRows(TableMetrics)
	require.NoError(t, err)
	assert.Equal(t, []string{"Metric", "Value", "Display"}, header[0])
}

func TestWorkbookWriter_NoTables(t *testing.T) {
	err := NewWorkbookWriter(nil).Write(filepath.Join(t.TempDir(), "x.xlsx"), nil)
	assert.Error(t, err)
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "metrics", sheetName("metrics"))
	assert.Len(t, sheetName("a_table_name_that_is_far_too_long_for_excel"), maxSheetName)
}
