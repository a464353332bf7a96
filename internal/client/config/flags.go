package config

import (
	"flag"
	"os"
	"time"

	"github.com/rafiqdev/fieldforce/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend API (default from Config)
//	-d string   local database path (default from Config)
//	-t int      HTTP timeout in seconds (default from Config)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend API")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "local database path")
	httpTimeout := fs.Int("t", int(cfg.HTTPTimeout.Seconds()), "HTTP timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.HTTPTimeout = time.Duration(*httpTimeout) * time.Second
}
