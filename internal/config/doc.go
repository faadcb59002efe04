// Package config loads runtime configuration for the storekeeper shell.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables prefixed with STOREKEEPER_ (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   data directory holding the containers
//	-f string   storage format: csv, xlsx or sqlite
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
//	{
//	  "data_dir": "data",
//	  "format": "csv",
//	  "log_level": "info",
//	  "containers": {
//	    "sales": "/srv/shared/sales.xlsx"
//	  }
//	}
//
// A container path overrides the default <data_dir>/<kind>.<ext> location.
// Its format follows the file extension when that is a known one, so a
// single deployment may keep sales in a workbook and the rest in CSV.
//
// # Environment
//
//	STOREKEEPER_DATA_DIR, STOREKEEPER_FORMAT, STOREKEEPER_LOG_LEVEL,
//	STOREKEEPER_USERS, STOREKEEPER_BRANCHES, STOREKEEPER_PRODUCTS,
//	STOREKEEPER_SALES
package config
