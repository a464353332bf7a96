package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, "http://127.0.0.1:8080", cfg.APIBaseURL)
	require.Equal(t, "fieldforce.db", cfg.DatabaseDSN)
	require.Equal(t, 12*time.Second, cfg.HTTPTimeout)
}

func TestParseFlags_Overrides(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = []string{"cli", "-a", "https://api.example.com", "-d", "local.db", "-t", "5"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	require.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	require.Equal(t, "local.db", cfg.DatabaseDSN)
	require.Equal(t, 5*time.Second, cfg.HTTPTimeout)
}

func TestParseJson_Overrides(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "conf*.json")
	require.NoError(t, err)
	_, err = f.WriteString(`{"api_base_url":"https://json.example.com","database_dsn":"json.db","http_timeout":"7s"}`)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = []string{"cli", "-c", f.Name()}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	require.Equal(t, "https://json.example.com", cfg.APIBaseURL)
	require.Equal(t, "json.db", cfg.DatabaseDSN)
	require.Equal(t, 7*time.Second, cfg.HTTPTimeout)
}

func TestLoadConfig_FlagsBeatJson(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "conf*.json")
	require.NoError(t, err)
	_, err = f.WriteString(`{"api_base_url":"https://json.example.com","database_dsn":"json.db","http_timeout":"7s"}`)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = []string{"cli", "-c", f.Name(), "-a", "https://flags.example.com"}

	cfg := LoadConfig()

	require.Equal(t, "https://flags.example.com", cfg.APIBaseURL)
	require.Equal(t, "json.db", cfg.DatabaseDSN)
}
