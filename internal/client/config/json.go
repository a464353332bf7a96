package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rafiqdev/fieldforce/internal/flagx"
	"github.com/rafiqdev/fieldforce/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "12s" or as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL  string         `json:"api_base_url"`
	DatabaseDSN string         `json:"database_dsn"`
	HTTPTimeout timex.Duration `json:"http_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file whose path
// is given via the -c or -config flags. Missing flag means no JSON overlay.
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
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

	cfg.APIBaseURL = jc.APIBaseURL
	cfg.DatabaseDSN = jc.DatabaseDSN
	cfg.HTTPTimeout = time.Duration(jc.HTTPTimeout.Duration)
}
