package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "fundingpulse/internal/errors"
)

// Config represents the complete application configuration. Environment
// names are FUNDING_<SECTION>_<FIELD>, e.g. FUNDING_REPORT_TOP_REGIONS.
type Config struct {
	Server    ServerConfig    `yaml:"server" split_words:"true"`
	Security  SecurityConfig  `yaml:"security" split_words:"true"`
	Logging   LoggingConfig   `yaml:"logging" split_words:"true"`
	Dataset   DatasetConfig   `yaml:"dataset" split_words:"true"`
	Report    ReportConfig    `yaml:"report" split_words:"true"`
	Telemetry TelemetryConfig `yaml:"telemetry" split_words:"true"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" split_words:"true"`
	ReadTimeout     time.Duration `yaml:"read_timeout" split_words:"true"`
	WriteTimeout    time.Duration `yaml:"write_timeout" split_words:"true"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" split_words:"true"`
	RequestTimeout  time.Duration `yaml:"request_timeout" split_words:"true"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" split_words:"true"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" split_words:"true"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" split_words:"true"`
	EnableCORS     bool            `yaml:"enable_cors" split_words:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" split_words:"true"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" split_words:"true"`
	RPS     float64 `yaml:"rps" split_words:"true"`
	Burst   int     `yaml:"burst" split_words:"true"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" split_words:"true"`
	Format      string `yaml:"format" split_words:"true"`
	Output      string `yaml:"output" split_words:"true"`
	FilePath    string `yaml:"file_path" split_words:"true"`
	Development bool   `yaml:"development" split_words:"true"`
}

// DatasetConfig locates the funding dataset and the demo query
type DatasetConfig struct {
	Path       string `yaml:"path" split_words:"true"`
	Sheet      string `yaml:"sheet" split_words:"true"`
	QueryStage string `yaml:"query_stage" split_words:"true"`
	QueryLimit int    `yaml:"query_limit" split_words:"true"`
}

// ReportConfig controls batch report generation
type ReportConfig struct {
	OutputDir     string `yaml:"output_dir" split_words:"true"`
	TopRegions    int    `yaml:"top_regions" split_words:"true"`
	TopVerticals  int    `yaml:"top_verticals" split_words:"true"`
	LargestRounds int    `yaml:"largest_rounds" split_words:"true"`
	BOMPrefix     bool   `yaml:"bom_prefix" split_words:"true"`
	Workbook      bool   `yaml:"workbook" split_words:"true"`
}

// TelemetryConfig contains tracing and metrics configuration
type TelemetryConfig struct {
	ServiceName    string  `yaml:"service_name" split_words:"true"`
	TraceExporter  string  `yaml:"trace_exporter" split_words:"true"`
	SampleRatio    float64 `yaml:"sample_ratio" split_words:"true"`
	MetricsEnabled bool    `yaml:"metrics_enabled" split_words:"true"`
}

// Load builds the configuration from defaults, then the YAML file at path
// (or the first file found in the standard locations when path is empty),
// then FUNDING_* environment variables. Later sources win.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = getConfigFilePath()
	}
	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, apperrors.NewConfigError("load config file", err).WithContext("path", path)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("load config from env", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg; keys absent from the file
// keep their current values.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate checks ranges and normalizes enumerations
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return apperrors.NewConfigError(fmt.Sprintf("invalid server port: %d", c.Server.Port), nil)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return apperrors.NewConfigError("server read and write timeouts must be positive", nil)
	}
	if c.Security.EnableCORS && len(c.Security.AllowedOrigins) == 0 {
		return apperrors.NewConfigError("at least one allowed origin must be specified", nil)
	}
	if c.Security.RateLimit.Enabled && (c.Security.RateLimit.RPS <= 0 || c.Security.RateLimit.Burst <= 0) {
		return apperrors.NewConfigError("rate limit rps and burst must be positive", nil)
	}

	if c.Dataset.Path == "" {
		return apperrors.NewConfigError("dataset path must be set", nil)
	}
	if c.Dataset.QueryLimit < MinQueryLimit || c.Dataset.QueryLimit > MaxQueryLimit {
		return apperrors.NewConfigError(
			fmt.Sprintf("dataset query limit must be between %d and %d", MinQueryLimit, MaxQueryLimit), nil)
	}

	for name, k := range map[string]int{"top_regions": c.Report.TopRegions, "top_verticals": c.Report.TopVerticals} {
		if k < MinTopK || k > MaxTopK {
			return apperrors.NewConfigError(
				fmt.Sprintf("report %s must be between %d and %d", name, MinTopK, MaxTopK), nil).
				WithContext("value", k)
		}
	}
	if c.Report.LargestRounds < 1 || c.Report.LargestRounds > MaxLargestRounds {
		return apperrors.NewConfigError(
			fmt.Sprintf("report largest_rounds must be between 1 and %d", MaxLargestRounds), nil)
	}

	c.Logging.Level = strings.ToLower(c.Logging.Level)
	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		return apperrors.NewConfigError(fmt.Sprintf("invalid logging output %q", c.Logging.Output), nil)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		c.Logging.Format = DefaultLogFormat
	}
	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFile
	}

	switch c.Telemetry.TraceExporter {
	case "stdout", "none":
	default:
		return apperrors.NewConfigError(fmt.Sprintf("invalid trace exporter %q", c.Telemetry.TraceExporter), nil)
	}
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return apperrors.NewConfigError("telemetry sample ratio must be within [0, 1]", nil)
	}

	return nil
}

// getConfigFilePath returns the first config file found, or "".
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			RequestTimeout:  30 * time.Second,
			MaxHeaderBytes:  1 << 20,
			ShutdownTimeout: 30 * time.Second,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:8080"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     100,
				Burst:   50,
			},
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Dataset: DatasetConfig{
			Path:       DefaultDatasetFile,
			QueryStage: DefaultQueryStage,
			QueryLimit: DefaultQueryLimit,
		},
		Report: ReportConfig{
			OutputDir:     DefaultReportsDir,
			TopRegions:    DefaultTopK,
			TopVerticals:  DefaultTopK,
			LargestRounds: DefaultLargestRounds,
			BOMPrefix:     true,
			Workbook:      true,
		},
		Telemetry: TelemetryConfig{
			ServiceName:    ServiceName,
			TraceExporter:  "none",
			SampleRatio:    1.0,
			MetricsEnabled: true,
		},
	}
}

// Usage writes the table of recognized environment variables to w.
func Usage(w io.Writer) error {
	return envconfig.Usagef(EnvPrefix, Default(), w, envconfig.DefaultTableFormat)
}
