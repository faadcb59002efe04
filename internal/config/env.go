package config

import (
	"fmt"

	"github.com/dmitrijs2005/storekeeper/internal/records"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment variable the shell reads.
const EnvPrefix = "STOREKEEPER"

// EnvConfig is a DTO for envconfig. Unset variables stay empty.
type EnvConfig struct {
	DataDir  string `envconfig:"DATA_DIR"`
	Format   string `envconfig:"FORMAT"`
	LogLevel string `envconfig:"LOG_LEVEL"`
	Users    string `envconfig:"USERS"`
	Branches string `envconfig:"BRANCHES"`
	Products string `envconfig:"PRODUCTS"`
	Sales    string `envconfig:"SALES"`
}

// parseEnv overlays Config with STOREKEEPER_* environment variables.
func parseEnv(cfg *Config) error {
	var ec EnvConfig
	if err := envconfig.Process(EnvPrefix, &ec); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}

	if ec.DataDir != "" {
		cfg.DataDir = ec.DataDir
	}
	if ec.Format != "" {
		cfg.Format = ec.Format
	}
	if ec.LogLevel != "" {
		cfg.LogLevel = ec.LogLevel
	}
	cfg.setContainer(records.KindUsers, ec.Users)
	cfg.setContainer(records.KindBranches, ec.Branches)
	cfg.setContainer(records.KindProducts, ec.Products)
	cfg.setContainer(records.KindSales, ec.Sales)
	return nil
}
