package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/storekeeper/internal/records"
	"github.com/go-playground/validator/v10"
)

// SQLiteFile is the database file name used when every container lives in
// one embedded database.
const SQLiteFile = "storekeeper.db"

// Config holds runtime settings for the storekeeper shell.
type Config struct {
	DataDir    string                  `validate:"required"`
	Format     string                  `validate:"required,oneof=csv xlsx sqlite"`
	LogLevel   string                  `validate:"required,oneof=debug info warn error"`
	Containers map[records.Kind]string `validate:"dive,keys,kind,endkeys,required"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = "data"
	c.Format = records.FormatCSV
	c.LogLevel = "info"
	c.Containers = map[records.Kind]string{}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones. The result is validated.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("kind", func(fl validator.FieldLevel) bool {
		return records.Kind(fl.Field().String()).Valid()
	})
	return v
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Locations returns where every container lives.
func (c *Config) Locations() []records.Location {
	out := make([]records.Location, 0, len(records.Kinds))
	for _, k := range records.Kinds {
		out = append(out, c.Location(k))
	}
	return out
}

// Location returns where the container of kind k lives.
func (c *Config) Location(k records.Kind) records.Location {
	if p, ok := c.Containers[k]; ok && p != "" {
		return records.Location{Kind: k, Format: FormatOf(p, c.Format), Path: p}
	}
	return records.Location{Kind: k, Format: c.Format, Path: c.defaultPath(k)}
}

func (c *Config) defaultPath(k records.Kind) string {
	switch c.Format {
	case records.FormatSQLite:
		return filepath.Join(c.DataDir, SQLiteFile)
	case records.FormatXLSX:
		return filepath.Join(c.DataDir, string(k)+".xlsx")
	default:
		return filepath.Join(c.DataDir, string(k)+".csv")
	}
}

// FormatOf guesses the storage format from the extension of path and falls
// back to fallback for unknown extensions.
func FormatOf(path, fallback string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return records.FormatCSV
	case ".xlsx", ".xlsm":
		return records.FormatXLSX
	case ".db", ".sqlite", ".sqlite3":
		return records.FormatSQLite
	default:
		return fallback
	}
}

func (c *Config) setContainer(k records.Kind, path string) {
	if path == "" {
		return
	}
	if c.Containers == nil {
		c.Containers = map[records.Kind]string{}
	}
	c.Containers[k] = path
}
