// Package dataprocessing implements the funding data pipeline: loading a raw
// funding table, cleaning it into typed records and deriving the aggregates
// and filtered views consumed by the HTTP API and the report exporter.
//
// # Architecture
//
// The package is organized into four parts:
//
// 1. Loader: reads CSV (via gota dataframes) or XLSX (via excelize) into a RawDataset
// 2. Cleaner: drops ignored columns, coerces amounts and dates, rejects bad rows
// 3. Views: top-K groupings, stage box plot and summary, region filter, spotlight
// 4. Formatting: currency and date rendering for presentation rows
//
// # Usage
//
//	raw, err := dataprocessing.NewLoader(logger, "").Load(ctx, "tech_fundings.csv")
//	if err != nil {
//	    return err
//	}
//	ds, stats, err := dataprocessing.Clean(raw)
//	if err != nil {
//	    // ErrMissingColumn and ErrEmptyResult are fatal for the run
//	    return err
//	}
//	top := dataprocessing.TopKByGroup(ds, domain.ColumnRegion, 10)
//
// # Data Flow
//
//	CSV/XLSX → Loader → RawDataset → Clean → Dataset → Views → Presentation rows
//
// # Error Handling
//
// Only Clean fails. Its two failures wrap ErrMissingColumn and ErrEmptyResult
// in an *errors.AppError so callers can match either with errors.Is and read
// the structured context with errors.As. Every view degrades to an empty
// result when the columns it needs are absent.
//
// The cleaned Dataset is never mutated after Clean returns, so views may be
// computed concurrently from multiple goroutines.
package dataprocessing
