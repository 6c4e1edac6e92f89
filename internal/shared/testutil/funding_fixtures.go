package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// FundingHeader is the header row of the sample funding CSV.
var FundingHeader = []string{
	"index", "Company", "Website", "Region", "Vertical",
	"Funding Amount (USD)", "Funding Stage", "Funding Date",
}

// SampleFundingRows are small, hand-checked rows covering the cleaning rules:
// a non-numeric amount, a blank date, an unparseable date and a comma-joined
// vertical.
var SampleFundingRows = [][]string{
	{"0", "Acme", "acme.io", "United States", "Fintech, Payments", "1000000", "Seed", "Jan-23"},
	{"1", "Beta", "beta.ai", "Europe", "AI", "5000000", "Series A", "Feb-23"},
	{"2", "Gamma", "gamma.dev", "Europe", "AI, Robotics", "250000", "Pre-Seed", "Mar-23"},
	{"3", "Delta", "delta.co", "Asia", "Healthtech", "undisclosed", "Seed", "Mar-23"},
	{"4", "Epsilon", "eps.com", "United States", "Fintech", "20000000", "Series B", ""},
	{"5", "Zeta", "zeta.app", "Asia", "AI", "750000", "Seed", "2023-04-01"},
	{"6", "Eta", "eta.org", "United States", "Climate", "3000000", "Grant", "Apr-23"},
}

// FundingCSV renders header and rows as CSV text.
func FundingCSV(header []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	b.WriteString("\n")
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if strings.ContainsAny(cell, ",\"") {
				cell = `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
			}
			cells[i] = cell
		}
		b.WriteString(strings.Join(cells, ","))
		b.WriteString("\n")
	}
	return b.String()
}

// WriteFundingCSV writes the sample dataset to a temp file and returns its path.
func WriteFundingCSV(t *testing.T) string {
	t.Helper()
	return WriteCSVFile(t, FundingCSV(FundingHeader, SampleFundingRows))
}

// WriteCSVFile writes content to a temp .csv file and returns its path.
func WriteCSVFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "funding.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
