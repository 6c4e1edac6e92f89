// Package services implements the business layer of Funding Pulse.
// It sits between the HTTP handlers and the data pipeline: handlers never
// touch a dataset or the SQL store directly.
//
// # Services
//
//	- FundingService: owns the cleaned dataset and the SQL store, and
//	  computes every dashboard view on demand
//	- HealthService: health, readiness and liveness checks
//
// The cleaned dataset is immutable once loaded, so a FundingService is safe
// for concurrent use by any number of requests without locking.
//
// # Error Handling
//
// Fatal load errors (missing column, empty result) surface as
// *errors.AppError values from LoadFundingService and stop start-up.
// View methods never fail; anomalies degrade to empty views. StageDeals
// returns STORAGE errors from the SQL layer unchanged.
package services
