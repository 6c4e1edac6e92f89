package dataprocessing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"fundingpulse/pkg/contracts/domain"
)

// Date layouts used by presentation rows.
const (
	DealDateLayout      = "2006-01-02"
	SpotlightDateLayout = "Jan 2006"
)

var usdPrinter = message.NewPrinter(language.English)

// FormatUSD renders an amount as whole dollars with thousands separators,
// e.g. 1234567.4 -> "$1,234,567".
func FormatUSD(v float64) string {
	return usdPrinter.Sprintf("$%.0f", v)
}

// DealRows formats records for a deal table. Dates are rendered with
// dateLayout when the dataset carries a date column.
func DealRows(ds *domain.Dataset, records []domain.FundingRecord, dateLayout string) []domain.DealRow {
	withDate := ds.HasColumn(domain.ColumnDate)
	rows := make([]domain.DealRow, 0, len(records))
	for _, rec := range records {
		row := domain.DealRow{
			Company:  rec.Company,
			Vertical: rec.Vertical,
			Amount:   FormatUSD(rec.Amount),
			Stage:    rec.Stage,
			Region:   rec.Region,
		}
		if withDate {
			row.Date = rec.Date.Format(dateLayout)
		}
		rows = append(rows, row)
	}
	return rows
}
