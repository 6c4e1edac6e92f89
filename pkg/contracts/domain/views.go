package domain

// Metrics is the whole-dataset reduction shown in the overview section.
type Metrics struct {
	Total  float64 `json:"total"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Count  int     `json:"count"`
}

// GroupTotal is one bar of a top-K chart.
type GroupTotal struct {
	Group string  `json:"group"`
	Total float64 `json:"total"`
}

// StagedRecord is a record annotated with its stage rank for one view only.
type StagedRecord struct {
	Rank   int           `json:"rank"`
	Record FundingRecord `json:"record"`
}

// BoxplotView holds the stage distribution points after outlier exclusion.
type BoxplotView struct {
	Cutoff float64        `json:"cutoff"`
	Points []StagedRecord `json:"points"`
}

// BoxStats is the five-number summary drawn for one stage.
type BoxStats struct {
	Stage  string  `json:"stage"`
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// StageSummaryRow is one row of the stage benchmark table.
type StageSummaryRow struct {
	Stage         string  `json:"stage"`
	Count         int     `json:"number_of_deals"`
	Total         float64 `json:"-"`
	Mean          float64 `json:"-"`
	Median        float64 `json:"-"`
	TotalDisplay  string  `json:"total_funding_usd"`
	MeanDisplay   string  `json:"average_funding_usd"`
	MedianDisplay string  `json:"median_funding_usd"`
}

// DealRow is a presentation row for deal tables.
type DealRow struct {
	Company  string `json:"company"`
	Vertical string `json:"vertical,omitempty"`
	Amount   string `json:"funding_amount_usd"`
	Stage    string `json:"funding_stage,omitempty"`
	Date     string `json:"funding_date,omitempty"`
	Region   string `json:"region,omitempty"`
}

// StageDeal is a row returned by the SQL stage query.
type StageDeal struct {
	Company  string   `json:"company"`
	Region   string   `json:"region"`
	Vertical string   `json:"vertical"`
	Amount   *float64 `json:"funding_amount_usd"`
	Date     string   `json:"funding_date"`
}
