package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for moneymap
type Config struct {
	// Dataset generation configuration
	Generate GenerateConfig `mapstructure:"generate"`

	// Anomaly injection and detection configuration
	Anomaly AnomalyConfig `mapstructure:"anomaly"`

	// Database configuration (import command)
	Database DatabaseConfig `mapstructure:"database"`

	// Logging
	Verbose bool `mapstructure:"verbose"`
}

// GenerateConfig holds dataset generation settings
type GenerateConfig struct {
	// Seed phrase for reproducibility; the same phrase always yields the
	// same profile and history
	Seed string `mapstructure:"seed"`

	// First month of history, YYYY-MM
	StartMonth string `mapstructure:"start_month"`

	// Number of months to generate
	Months int `mapstructure:"months"`

	// Output file; format picked from the extension (.csv or .json)
	Output string `mapstructure:"output"`

	// Existing dataset to extend instead of starting fresh
	Extend string `mapstructure:"extend"`
}

// AnomalyConfig bounds how many anomalies a run plants
type AnomalyConfig struct {
	CountMin int `mapstructure:"count_min"`
	CountMax int `mapstructure:"count_max"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	// Connection string (DSN)
	// Format: user:password@tcp(host:port)/database
	DSN string `mapstructure:"dsn"`

	// Driver (mysql)
	Driver string `mapstructure:"driver"`

	// Connection pool settings
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`

	// Rows per INSERT statement during import
	BatchSize int `mapstructure:"batch_size"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Generate: GenerateConfig{
			Seed:       "",
			StartMonth: "2024-01",
			Months:     12,
			Output:     "./transactions.json",
			Extend:     "",
		},
		Anomaly: AnomalyConfig{
			CountMin: 2,
			CountMax: 6,
		},
		Database: DatabaseConfig{
			Driver:          "mysql",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
			ConnMaxIdleTime: 1 * time.Minute,
			BatchSize:       500,
		},
		Verbose: false,
	}
}

// Load reads configuration from viper into a Config struct
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []string

	if c.Generate.Seed == "" {
		errs = append(errs, "generate.seed must not be empty")
	}
	if _, err := time.Parse("2006-01", c.Generate.StartMonth); err != nil {
		errs = append(errs, fmt.Sprintf("generate.start_month must be YYYY-MM (got %q)", c.Generate.StartMonth))
	}
	if c.Generate.Months <= 0 {
		errs = append(errs, "generate.months must be positive")
	}
	if c.Generate.Output == "" {
		errs = append(errs, "generate.output must not be empty")
	}

	if c.Anomaly.CountMin < 0 {
		errs = append(errs, "anomaly.count_min must be non-negative")
	}
	if c.Anomaly.CountMax < c.Anomaly.CountMin {
		errs = append(errs, "anomaly.count_max must be >= anomaly.count_min")
	}

	if c.Database.MaxOpenConns < 1 {
		errs = append(errs, "database.max_open_conns must be >= 1")
	}
	if c.Database.MaxIdleConns < 0 {
		errs = append(errs, "database.max_idle_conns must be >= 0")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		errs = append(errs, "database.max_idle_conns should not exceed max_open_conns")
	}
	if c.Database.BatchSize < 1 {
		errs = append(errs, "database.batch_size must be >= 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation errors:\n  - %s", joinErrors(errs))
	}

	return nil
}

// joinErrors joins error messages with newline and bullet points
func joinErrors(errs []string) string {
	result := errs[0]
	for i := 1; i < len(errs); i++ {
		result += "\n  - " + errs[i]
	}
	return result
}
