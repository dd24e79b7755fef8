package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Scrape  ScrapeConfig  `yaml:"scrape" envconfig:"SCRAPE"`
	Export  ExportConfig  `yaml:"export" envconfig:"EXPORT"`
	Sheets  SheetsConfig  `yaml:"sheets" envconfig:"SHEETS"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" validate:"gt=0,lte=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" validate:"gt=0"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" validate:"gt=0"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS" validate:"gt=0"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST" validate:"gt=0"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required"`
}

// ScrapeConfig controls the Federal Reserve site client.
type ScrapeConfig struct {
	BaseURL           string        `yaml:"base_url" envconfig:"BASE_URL" validate:"url"`
	Timeout           time.Duration `yaml:"timeout" envconfig:"TIMEOUT" validate:"gt=0"`
	RequestsPerSecond float64       `yaml:"requests_per_second" envconfig:"REQUESTS_PER_SECOND" validate:"gt=0"`
	Burst             int           `yaml:"burst" envconfig:"BURST" validate:"gt=0"`
	Concurrency       int           `yaml:"concurrency" envconfig:"CONCURRENCY" validate:"gt=0"`
	UserAgent         string        `yaml:"user_agent" envconfig:"USER_AGENT"`
}

// ExportConfig controls where CSV and workbook outputs land.
type ExportConfig struct {
	OutputDir      string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	WideCSV        string `yaml:"wide_csv" envconfig:"WIDE_CSV" validate:"required"`
	BeeswarmCSV    string `yaml:"beeswarm_csv" envconfig:"BEESWARM_CSV" validate:"required"`
	BeeswarmXLSX   string `yaml:"beeswarm_xlsx" envconfig:"BEESWARM_XLSX" validate:"required"`
	FilterLastYear bool   `yaml:"filter_last_year" envconfig:"FILTER_LAST_YEAR"`
}

// SheetsConfig controls the optional Google Sheets publish step. The
// publisher only runs when a spreadsheet ID is set.
type SheetsConfig struct {
	SpreadsheetID   string `yaml:"spreadsheet_id" envconfig:"SPREADSHEET_ID"`
	Range           string `yaml:"range" envconfig:"RANGE"`
	CredentialsFile string `yaml:"credentials_file" envconfig:"CREDENTIALS_FILE"`
}

// Enabled reports whether a Sheets target is configured.
func (s SheetsConfig) Enabled() bool {
	return s.SpreadsheetID != ""
}

// Load loads configuration in precedence order: built-in defaults, then an
// optional YAML file over them, then FOMC_* environment variables over both.
// Defaults live in Default() rather than envconfig tags so that file values
// survive the env pass: envconfig only touches fields whose variable is set.
func Load() (*Config, error) {
	cfg := *Default()

	if path := configFilePath(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process("FOMC", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// configFilePath returns the first config file found in common locations.
func configFilePath() string {
	if path := os.Getenv("FOMC_CONFIG_FILE"); path != "" {
		return path
	}

	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns the default configuration, as Load would produce with no
// file and no environment overrides.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			RateLimitRPS:    100,
			RateLimitBurst:  50,
		},
		Logging: LoggingConfig{
			Level:    "info",
			FilePath: "logs/app.log",
		},
		Scrape: ScrapeConfig{
			BaseURL:           "https://www.federalreserve.gov",
			Timeout:           30 * time.Second,
			RequestsPerSecond: 2,
			Burst:             1,
			Concurrency:       4,
			UserAgent:         "fomcdots/1.0",
		},
		Export: ExportConfig{
			OutputDir:      "data",
			WideCSV:        "dots_wide.csv",
			BeeswarmCSV:    "dots_beeswarm.csv",
			BeeswarmXLSX:   "dots_beeswarm.xlsx",
			FilterLastYear: true,
		},
		Sheets: SheetsConfig{
			Range: "dotplot!A:C",
		},
	}
}
