package dataprocessing

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "fundingpulse/internal/errors"
	"fundingpulse/pkg/contracts/domain"
)

func rawDataset(header []string, rows ...[]string) *domain.RawDataset {
	return &domain.RawDataset{Header: header, Rows: rows}
}

func TestClean(t *testing.T) {
	raw := rawDataset(
		[]string{"index", "Company", "Website", "Region", "Vertical", "Funding Amount (USD)", "Funding Stage", "Funding Date", "Notes"},
		[]string{"0", "Acme", "acme.io", "US", "AI", "100", "Seed", "Jan-20", "first"},
		[]string{"1", "Beta", "beta.io", "EU", "AI", "abc", "Seed", "Feb-20", ""},
		[]string{"2", "Gamma", "g.io", "EU", "AI", "", "Seed", "Feb-20", ""},
		[]string{"3", "Delta", "d.io", "US", "AI", "300", "Seed", "2020-03", ""},
		[]string{"4", "Eps", "e.io", "US", "AI", " 2.5e3 ", "Series A", "mar-21", "x"},
		[]string{"5", "Zeta", "z.io", "US", "AI", "-5", "Grant", "Dec-99", ""},
	)

	ds, stats, err := Clean(raw)
	require.NoError(t, err)

	assert.Equal(t, CleanStats{InitialRows: 6, DroppedAmount: 2, DroppedDate: 1, FinalRows: 3}, stats)
	assert.Equal(t, []string{"Company", "Region", "Vertical", "Funding Amount (USD)", "Funding Stage", "Funding Date", "Notes"}, ds.Columns)
	assert.Equal(t, []string{"Acme", "Eps", "Zeta"}, companies(ds.Records))
	assert.Equal(t, []int{0, 4, 5}, []int{ds.Records[0].Index, ds.Records[1].Index, ds.Records[2].Index})

	assert.Equal(t, 100.0, ds.Records[0].Amount)
	assert.Equal(t, 2500.0, ds.Records[1].Amount)
	assert.Equal(t, -5.0, ds.Records[2].Amount)

	assert.Equal(t, month(2020, time.January), ds.Records[0].Date)
	assert.Equal(t, month(2021, time.March), ds.Records[1].Date)
	assert.Equal(t, month(1999, time.December), ds.Records[2].Date)

	assert.Equal(t, map[string]string{"Notes": "first"}, ds.Records[0].Extra)
	assert.False(t, ds.HasColumn(domain.ColumnWebsite))
	assert.False(t, ds.HasColumn(domain.ColumnIndex))
}

func TestClean_NeverReturnsInvalidAmountOrDate(t *testing.T) {
	amounts := []string{"1", "NaN", "inf", "-Inf", "1,000", "0x10", "1_000", "", "  ", "12.5", "1e3", "abc"}
	dates := []string{"Jan-20", "", "Foo-20", "January-20", "Jan-2020", "FEB-21", "Jan-20 ", "Dec-68"}

	var rows [][]string
	for _, a := range amounts {
		for _, d := range dates {
			rows = append(rows, []string{a, d})
		}
	}
	raw := rawDataset([]string{domain.ColumnAmount, domain.ColumnDate}, rows...)

	ds, _, err := Clean(raw)
	require.NoError(t, err)
	require.NotZero(t, ds.Len())

	for _, r := range ds.Records {
		assert.False(t, math.IsNaN(r.Amount) || math.IsInf(r.Amount, 0))
		assert.False(t, r.Date.IsZero())
		assert.Equal(t, 1, r.Date.Day())
	}
	// amounts 1, 12.5 and 1e3 times dates Jan-20, FEB-21 and Dec-68
	assert.Equal(t, 9, ds.Len())
}

func TestClean_WithoutDateColumn(t *testing.T) {
	raw := rawDataset([]string{domain.ColumnAmount, domain.ColumnRegion},
		[]string{"10", "US"},
		[]string{"x", "EU"},
	)

	ds, stats, err := Clean(raw)
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())
	assert.True(t, ds.Records[0].Date.IsZero())
	assert.Zero(t, stats.DroppedDate)
}

func TestClean_MissingAmountColumn(t *testing.T) {
	raw := rawDataset([]string{"Company", "Funding Date"}, []string{"Acme", "Jan-20"})

	ds, _, err := Clean(raw)
	assert.Nil(t, ds)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrTypeMissingColumn, appErr.Type)
	assert.True(t, appErr.Fatal())
	assert.Equal(t, domain.ColumnAmount, appErr.Context["column"])
}

func TestClean_EmptyResult(t *testing.T) {
	raw := rawDataset([]string{domain.ColumnAmount}, []string{"not a number"})

	_, stats, err := Clean(raw)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyResult))
	assert.False(t, errors.Is(err, ErrMissingColumn))
	assert.Equal(t, 1, stats.DroppedAmount)
}

func TestClean_ShortRows(t *testing.T) {
	raw := rawDataset([]string{domain.ColumnCompany, domain.ColumnAmount, domain.ColumnRegion},
		[]string{"Acme", "10"},
	)

	ds, _, err := Clean(raw)
	require.NoError(t, err)
	assert.Equal(t, "", ds.Records[0].Region)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"100", 100, true},
		{" 42.5\t", 42.5, true},
		{"0", 0, true},
		{"-3", -3, true},
		{"1e6", 1e6, true},
		{"", 0, false},
		{"1,000", 0, false},
		{"$100", 0, false},
		{"NaN", 0, false},
		{"Infinity", 0, false},
		{"0x1p3", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseAmount(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFundingDate(t *testing.T) {
	tests := []struct {
		in     string
		want   time.Time
		wantOK bool
	}{
		{"Jan-20", month(2020, time.January), true},
		{"sep-21", month(2021, time.September), true},
		{"Jun-69", month(1969, time.June), true},
		{"Jun-68", month(2068, time.June), true},
		{"Jan-2020", time.Time{}, false},
		{"2020-01-01", time.Time{}, false},
		{"", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseFundingDate(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}
