package config

import (
	"os"
	"time"

	"github.com/spf13/cast"
)

type Config struct {
	Addr           string
	CatalogBaseURL string
	CatalogTimeout time.Duration
	// CatalogMode selects the collaborator implementation:
	// "remote" (default) or "inmemory" for local development.
	CatalogMode string
}

func Load() Config {
	addr := os.Getenv("CONSOLE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	base := os.Getenv("CATALOG_BASE_URL")
	if base == "" {
		base = "http://localhost:9090"
	}

	timeout := 10 * time.Second
	if v := os.Getenv("CATALOG_TIMEOUT"); v != "" {
		if secs := cast.ToInt(v); secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}
	}

	mode := os.Getenv("CATALOG_MODE")
	if mode == "" {
		mode = "remote"
	}

	return Config{
		Addr:           addr,
		CatalogBaseURL: base,
		CatalogTimeout: timeout,
		CatalogMode:    mode,
	}
}
