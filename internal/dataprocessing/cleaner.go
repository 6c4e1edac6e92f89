package dataprocessing

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	apperrors "fundingpulse/internal/errors"
	"fundingpulse/pkg/contracts/domain"
)

// FundingDateLayout is the abbreviated-month, two-digit-year format of the
// Funding Date column, e.g. "Jan-20".
const FundingDateLayout = "Jan-06"

// Sentinels for the two fatal cleaning outcomes. Clean wraps them in an
// *errors.AppError.
var (
	ErrMissingColumn = errors.New("missing required column")
	ErrEmptyResult   = errors.New("no valid records after cleaning")
)

// ignoredColumns are dropped by Clean when present.
var ignoredColumns = []string{domain.ColumnIndex, domain.ColumnWebsite}

// CleanStats summarizes how many rows each cleaning rule removed.
type CleanStats struct {
	InitialRows   int `json:"initial_rows"`
	DroppedAmount int `json:"dropped_amount"`
	DroppedDate   int `json:"dropped_date"`
	FinalRows     int `json:"final_rows"`
}

// Clean turns a raw table into the typed, read-only Dataset. Rows with a
// missing or non-numeric amount are dropped, as are rows whose date fails to
// parse when the date column exists. The surviving rows keep their order.
func Clean(raw *domain.RawDataset) (*domain.Dataset, CleanStats, error) {
	stats := CleanStats{InitialRows: len(raw.Rows)}

	amountCol := raw.ColumnIndex(domain.ColumnAmount)
	if amountCol < 0 {
		return nil, stats, apperrors.NewMissingColumnError(domain.ColumnAmount, ErrMissingColumn)
	}
	dateCol := raw.ColumnIndex(domain.ColumnDate)

	columns := make([]string, 0, len(raw.Header))
	for _, name := range raw.Header {
		if !isIgnored(name) {
			columns = append(columns, name)
		}
	}

	records := make([]domain.FundingRecord, 0, len(raw.Rows))
	for i, row := range raw.Rows {
		amount, ok := ParseAmount(raw.Cell(row, amountCol))
		if !ok {
			stats.DroppedAmount++
			continue
		}

		var date time.Time
		if dateCol >= 0 {
			date, ok = ParseFundingDate(raw.Cell(row, dateCol))
			if !ok {
				stats.DroppedDate++
				continue
			}
		}

		records = append(records, buildRecord(raw, row, i, amount, date))
	}

	stats.FinalRows = len(records)
	if len(records) == 0 {
		return nil, stats, apperrors.NewEmptyResultError(
			"no valid data remaining after cleaning amounts and dates", ErrEmptyResult).
			WithContext("initial_rows", stats.InitialRows)
	}

	return &domain.Dataset{Columns: columns, Records: records}, stats, nil
}

func buildRecord(raw *domain.RawDataset, row []string, index int, amount float64, date time.Time) domain.FundingRecord {
	rec := domain.FundingRecord{
		Index:  index,
		Amount: amount,
		Date:   date,
	}
	for col, name := range raw.Header {
		cell := raw.Cell(row, col)
		switch name {
		case domain.ColumnCompany:
			rec.Company = cell
		case domain.ColumnRegion:
			rec.Region = cell
		case domain.ColumnVertical:
			rec.Vertical = cell
		case domain.ColumnStage:
			rec.Stage = cell
		case domain.ColumnAmount, domain.ColumnDate:
		default:
			if isIgnored(name) {
				continue
			}
			if rec.Extra == nil {
				rec.Extra = make(map[string]string)
			}
			rec.Extra[name] = cell
		}
	}
	return rec
}

func isIgnored(name string) bool {
	for _, c := range ignoredColumns {
		if c == name {
			return true
		}
	}
	return false
}

// ParseAmount parses a funding amount. Surrounding whitespace is ignored;
// thousands separators, hex notation and non-finite values are rejected.
func ParseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "xX_,") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseFundingDate parses a FundingDateLayout value into the first day of
// that month, UTC. Month names match case-insensitively and two-digit years
// 69-99 fall in the 1900s.
func ParseFundingDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(FundingDateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
