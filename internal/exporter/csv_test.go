package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundingpulse/internal/shared/testutil"
)

func readCSV(t *testing.T, path string) (bool, [][]string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	hasBOM := bytes.HasPrefix(data, utf8BOM)
	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM))).ReadAll()
	require.NoError(t, err)
	return hasBOM, records
}

func TestCSVWriter_WriteCSV(t *testing.T) {
	tests := []struct {
		name    string
		options WriteOptions
		wantBOM bool
		want    [][]string
	}{
		{
			name: "headers and records with BOM",
			options: WriteOptions{
				Headers:   []string{"Region", "Total Funding (USD)"},
				Records:   [][]string{{"United States", "4000000.00"}, {"Europe", "5250000.00"}},
				BOMPrefix: true,
			},
			wantBOM: true,
			want: [][]string{
				{"Region", "Total Funding (USD)"},
				{"United States", "4000000.00"},
				{"Europe", "5250000.00"},
			},
		},
		{
			name: "quoted cells without BOM",
			options: WriteOptions{
				Headers: []string{"Company", "Vertical"},
				Records: [][]string{{"Acme, Inc.", `The "AI" company`}},
			},
			wantBOM: false,
			want: [][]string{
				{"Company", "Vertical"},
				{"Acme, Inc.", `The "AI" company`},
			},
		},
		{
			name:    "header only",
			options: WriteOptions{Headers: []string{"Company"}},
			want:    [][]string{{"Company"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			dir := t.TempDir()
			writer := NewCSVWriter(dir, logger)

			path, err := writer.WriteCSV("out.csv", tt.options)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, "out.csv"), path)

			hasBOM, records := readCSV(t, path)
			assert.Equal(t, tt.wantBOM, hasBOM)
			assert.Equal(t, tt.want, records)
		})
	}
}

func TestCSVWriter_OverwritesAndCreatesDirs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	writer := NewCSVWriter(dir, nil)

	_, err := writer.WriteCSV("t.csv", WriteOptions{Headers: []string{"a"}, Records: [][]string{{"1"}, {"2"}}})
	require.NoError(t, err)
	path, err := writer.WriteCSV("t.csv", WriteOptions{Headers: []string{"a"}, Records: [][]string{{"3"}}})
	require.NoError(t, err)

	_, records := readCSV(t, path)
	assert.Equal(t, [][]string{{"a"}, {"3"}}, records)
}

func TestCSVWriter_AbsolutePath(t *testing.T) {
	target := filepath.Join(t.TempDir(), "elsewhere.csv")
	writer := NewCSVWriter(t.TempDir(), nil)

	path, err := writer.WriteCSV(target, WriteOptions{Headers: []string{"x"}})
	require.NoError(t, err)
	assert.Equal(t, target, path)
}

func TestFormatHelpers(t *testing.T) {
	amount := 1234.5
	assert.Equal(t, "1234.50", formatFloat(amount))
	assert.Equal(t, "1234.50", formatOptionalFloat(&amount))
	assert.Equal(t, "", formatOptionalFloat(nil))
	assert.Equal(t, "42", formatInt(42))
}
