package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/storekeeper/internal/flagx"
	"github.com/dmitrijs2005/storekeeper/internal/records"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Empty values
// leave the corresponding Config field untouched.
type JsonConfig struct {
	DataDir    string            `json:"data_dir"`
	Format     string            `json:"format"`
	LogLevel   string            `json:"log_level"`
	Containers map[string]string `json:"containers"`
}

// parseJson overlays Config with values loaded from a JSON file named by the
// -c or -config flag. Without either flag it does nothing. Read and unmarshal
// errors panic; so do container keys that are not a known kind.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.Format != "" {
		cfg.Format = jc.Format
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	for name, path := range jc.Containers {
		k, err := records.KindFromName(name)
		if err != nil {
			panic(err)
		}
		cfg.setContainer(k, path)
	}
}
