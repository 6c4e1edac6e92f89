package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fundingpulse/pkg/contracts/domain"
)

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{999, "$999"},
		{1234567.4, "$1,234,567"},
		{1500000000, "$1,500,000,000"},
		{-1500, "$-1,500"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatUSD(tt.in))
		})
	}
}

func TestDealRows(t *testing.T) {
	r := domain.FundingRecord{
		Company:  "Acme",
		Region:   "US",
		Vertical: "AI, Robotics",
		Amount:   2500000,
		Stage:    "Series A",
		Date:     month(2021, time.March),
	}

	rows := DealRows(dataset(allColumns), []domain.FundingRecord{r}, DealDateLayout)
	assert.Equal(t, []domain.DealRow{{
		Company:  "Acme",
		Vertical: "AI, Robotics",
		Amount:   "$2,500,000",
		Stage:    "Series A",
		Date:     "2021-03-01",
		Region:   "US",
	}}, rows)

	spot := DealRows(dataset(allColumns), []domain.FundingRecord{r}, SpotlightDateLayout)
	assert.Equal(t, "Mar 2021", spot[0].Date)

	noDate := DealRows(dataset(without(allColumns, domain.ColumnDate)), []domain.FundingRecord{r}, DealDateLayout)
	assert.Empty(t, noDate[0].Date)
}
