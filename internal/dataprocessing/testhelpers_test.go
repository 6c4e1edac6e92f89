package dataprocessing

import (
	"time"

	"fundingpulse/pkg/contracts/domain"
)

var allColumns = []string{
	domain.ColumnCompany, domain.ColumnRegion, domain.ColumnVertical,
	domain.ColumnAmount, domain.ColumnStage, domain.ColumnDate,
}

func month(year int, m time.Month) time.Time {
	return time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
}

// rec builds a record; Index is assigned by dataset().
func rec(company, region string, amount float64, stage string) domain.FundingRecord {
	return domain.FundingRecord{Company: company, Region: region, Amount: amount, Stage: stage}
}

func dataset(columns []string, records ...domain.FundingRecord) *domain.Dataset {
	for i := range records {
		records[i].Index = i
	}
	return &domain.Dataset{Columns: columns, Records: records}
}

func without(columns []string, drop string) []string {
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		if c != drop {
			out = append(out, c)
		}
	}
	return out
}

func companies(records []domain.FundingRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Company
	}
	return out
}
