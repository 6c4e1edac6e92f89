// Package config loads the fundingpulse configuration.
//
// # Configuration Sources
//
// Values are resolved in order of increasing precedence:
//
//	1. Built-in defaults (Default)
//	2. A YAML file: the --config flag, else config.yaml or configs/config.yaml
//	3. Environment variables prefixed with FUNDING_
//
// # Environment Variables
//
// Nested sections map to underscore-joined names:
//
//	FUNDING_SERVER_PORT=8080
//	FUNDING_DATASET_PATH=data/tech_fundings.csv
//	FUNDING_REPORT_TOP_REGIONS=15
//	FUNDING_LOGGING_LEVEL=debug
//	FUNDING_TELEMETRY_TRACE_EXPORTER=stdout
//
// Run `fundingpulse config env` for the full list.
//
// # Validation
//
// Load rejects out-of-range values with a CONFIG *errors.AppError. View
// sizes follow the dashboard bounds: top-K between 3 and 20, query limits
// between 1 and 100.
package config
