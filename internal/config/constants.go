package config

// Application constants
const (
	AppName     = "Funding Pulse"
	ServiceName = "fundingpulse"
	EnvPrefix   = "FUNDING"
)

// Defaults
const (
	DefaultDatasetFile   = "data/tech_fundings.csv"
	DefaultReportsDir    = "data/reports"
	DefaultLogFile       = "logs/fundingpulse.log"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "json"
	DefaultQueryStage    = "Seed"
	DefaultQueryLimit    = 10
	DefaultTopK          = 10
	DefaultLargestRounds = 10
)

// Bounds for user-supplied view sizes
const (
	MinTopK          = 3
	MaxTopK          = 20
	MinQueryLimit    = 1
	MaxQueryLimit    = 100
	MaxLargestRounds = 100
)

// API paths
const (
	APIBasePath     = "/api"
	FundingBasePath = "/api/funding"
	HealthEndpoint  = "/api/health"
	MetricsEndpoint = "/metrics"
)

// CompressionLevel is the gzip level applied to API responses
const CompressionLevel = 5
