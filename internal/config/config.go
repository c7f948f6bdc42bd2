// Package config resolves process settings from the environment and loads the
// optional YAML promotion catalog.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/Zhima-Mochi/minishop-pos/internal/pkg/money"
)

const (
	DefaultServiceName    = "minishop-pos"
	DefaultEnv            = "dev"
	DefaultAddr           = ":8080"
	DefaultCatalogTimeout = 5 * time.Second
	DefaultCurrencyPrefix = money.DefaultPrefix
)

type Config struct {
	ServiceName string
	Env         string
	Addr        string
	LogLevel    string
	LogFile     string
	// CatalogURL is the base URL serving /Products.json. Empty means the built-in catalog.
	CatalogURL     string
	CatalogTimeout time.Duration
	// PromotionsFile points at a YAML promotion catalog. Empty means the default promotions.
	PromotionsFile string
	CurrencyPrefix string
}

// FromEnv reads the configuration using lookup (os.LookupEnv when nil).
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		ServiceName:    get("SERVICE_NAME", DefaultServiceName),
		Env:            get("ENV", DefaultEnv),
		Addr:           get("HTTP_ADDR", DefaultAddr),
		LogLevel:       get("LOG_LEVEL", ""),
		LogFile:        get("LOG_FILE", ""),
		CatalogURL:     get("CATALOG_URL", ""),
		CatalogTimeout: DefaultCatalogTimeout,
		PromotionsFile: get("PROMOTIONS_FILE", ""),
		CurrencyPrefix: get("CURRENCY_PREFIX", DefaultCurrencyPrefix),
	}

	if raw := get("CATALOG_TIMEOUT", ""); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("config: CATALOG_TIMEOUT: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("config: CATALOG_TIMEOUT must be positive, got %s", d)
		}
		cfg.CatalogTimeout = d
	}

	return cfg, nil
}
