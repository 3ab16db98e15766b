package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/suzannejin/propr/internal/errors"
)

// Config represents the complete library configuration
type Config struct {
	Fdr    FdrConfig
	Ledger LedgerConfig
}

// FdrConfig holds defaults for FDR curve construction
type FdrConfig struct {
	// NBins is the default number of quantile bins for the auto cutoff grid.
	NBins int
	// Workers is the default concurrency degree for the pairwise builder.
	Workers int
	// ProgressEvery controls how often sequential loops report progress (permutations).
	ProgressEvery int
}

// LedgerConfig holds settings for the optional FDR result ledger
type LedgerConfig struct {
	DatabaseURL string
	Enabled     bool
}

// Load reads configuration from the environment, honoring a .env file if present
func Load() (*Config, error) {
	// .env is optional; environment variables win when both exist
	_ = godotenv.Load()

	cfg := &Config{
		Fdr: FdrConfig{
			NBins:         getEnvInt("PROPR_NBINS", 1000),
			Workers:       getEnvInt("PROPR_WORKERS", 1),
			ProgressEvery: getEnvInt("PROPR_PROGRESS_EVERY", 10),
		},
		Ledger: LedgerConfig{
			DatabaseURL: os.Getenv("PROPR_DATABASE_URL"),
		},
	}
	cfg.Ledger.Enabled = cfg.Ledger.DatabaseURL != ""

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Fdr.NBins < 1 {
		return errors.ConfigInvalid("PROPR_NBINS must be at least 1")
	}
	if c.Fdr.Workers < 1 {
		return errors.ConfigInvalid("PROPR_WORKERS must be at least 1")
	}
	if c.Fdr.ProgressEvery < 1 {
		return errors.ConfigInvalid("PROPR_PROGRESS_EVERY must be at least 1")
	}
	return nil
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
