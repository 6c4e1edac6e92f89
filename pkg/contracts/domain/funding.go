package domain

import (
	"time"
)

// Column names of the funding dataset, exactly as they appear in the header row.
const (
	ColumnIndex    = "index"
	ColumnCompany  = "Company"
	ColumnWebsite  = "Website"
	ColumnRegion   = "Region"
	ColumnVertical = "Vertical"
	ColumnAmount   = "Funding Amount (USD)"
	ColumnStage    = "Funding Stage"
	ColumnDate     = "Funding Date"
)

// RegionAll selects every region in region-scoped views.
const RegionAll = "All"

// StageVocabulary is the fixed ordering used by every stage-grouped output.
var StageVocabulary = []string{
	"Pre-Seed",
	"Seed",
	"Angel",
	"Series A",
	"Series B",
	"Series C",
	"Series D",
	"Series E",
	"Series F",
	"Series G",
	"Series H",
	"ICO",
	"Debt Financing",
	"Private Equity",
	"Crowdfunding",
	"Grant",
	"Unknown",
	"Undisclosed",
}

var stageRanks = func() map[string]int {
	ranks := make(map[string]int, len(StageVocabulary))
	for i, stage := range StageVocabulary {
		ranks[stage] = i
	}
	return ranks
}()

// StageRank returns the vocabulary position of stage and whether it is known.
func StageRank(stage string) (int, bool) {
	rank, ok := stageRanks[stage]
	return rank, ok
}

// RawDataset is the untyped table yielded by a loader. Empty cells are null.
type RawDataset struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// ColumnIndex returns the position of name in the header, or -1.
func (r *RawDataset) ColumnIndex(name string) int {
	for i, h := range r.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the header contains name.
func (r *RawDataset) HasColumn(name string) bool {
	return r.ColumnIndex(name) >= 0
}

// Cell returns the value of column col in row, or "" when the row is short.
func (r *RawDataset) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// FundingRecord is one funding round.
type FundingRecord struct {
	Index    int               `json:"-"`
	Company  string            `json:"company"`
	Region   string            `json:"region"`
	Vertical string            `json:"vertical"`
	Amount   float64           `json:"funding_amount_usd"`
	Stage    string            `json:"funding_stage"`
	Date     time.Time         `json:"funding_date"`
	Extra    map[string]string `json:"extra,omitempty"`
}

// Dataset is the cleaned, read-only collection of funding records.
type Dataset struct {
	Columns []string        `json:"columns"`
	Records []FundingRecord `json:"records"`
}

// HasColumn reports whether the cleaned dataset carries name.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.Records)
}

// Amounts returns the funding amounts in record order.
func (d *Dataset) Amounts() []float64 {
	out := make([]float64, len(d.Records))
	for i, r := range d.Records {
		out[i] = r.Amount
	}
	return out
}
