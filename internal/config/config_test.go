package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Zhima-Mochi/minishop-pos/internal/domain/promotion"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(env(nil))
	require.NoError(t, err)

	assert.Equal(t, DefaultServiceName, cfg.ServiceName)
	assert.Equal(t, DefaultEnv, cfg.Env)
	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.Equal(t, DefaultCatalogTimeout, cfg.CatalogTimeout)
	assert.Equal(t, DefaultCurrencyPrefix, cfg.CurrencyPrefix)
	assert.Empty(t, cfg.CatalogURL)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"SERVICE_NAME":    "pos",
		"HTTP_ADDR":       ":9090",
		"CATALOG_URL":     "https://example.com",
		"CATALOG_TIMEOUT": "2s",
		"PROMOTIONS_FILE": "/etc/pos/promotions.yaml",
	}))
	require.NoError(t, err)

	assert.Equal(t, "pos", cfg.ServiceName)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "https://example.com", cfg.CatalogURL)
	assert.Equal(t, 2*time.Second, cfg.CatalogTimeout)
	assert.Equal(t, "/etc/pos/promotions.yaml", cfg.PromotionsFile)
}

func TestFromEnvRejectsBadTimeout(t *testing.T) {
	_, err := FromEnv(env(map[string]string{"CATALOG_TIMEOUT": "soon"}))
	assert.Error(t, err)

	_, err = FromEnv(env(map[string]string{"CATALOG_TIMEOUT": "-1s"}))
	assert.Error(t, err)
}

func TestLoadPromotionsFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "promotions.yaml")
	content := `
promotions:
  - id: TWO_FOR_ONE_VOUCHER
    kind: paired_unit
    codes: [VOUCHER]
    description: "2-for-1: Buy 2, get 1 free"
  - id: BULK_MUG
    kind: volume_threshold
    codes: [MUG]
    threshold: 2
    amount: "0.50"
    description: "Buy 2+ mugs, get € 0.50 off each"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := LoadPromotions(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"MUG", "VOUCHER"}, c.CodesWithActiveDeals())
	rule := c.RulesFor("MUG")[0]
	assert.Equal(t, promotion.KindVolumeThreshold, rule.Kind)
	assert.Equal(t, 2, rule.Threshold)
	assert.True(t, decimal.RequireFromString("0.5").Equal(rule.Amount))
}

func TestLoadPromotionsDefaultsWhenUnset(t *testing.T) {
	c, err := LoadPromotions("")
	require.NoError(t, err)
	assert.Equal(t, promotion.Default().CodesWithActiveDeals(), c.CodesWithActiveDeals())
}

func TestParsePromotionsErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "promotions: [\n"},
		{"bad amount", "promotions:\n  - {id: A, kind: volume_threshold, codes: [X], threshold: 1, amount: lots}\n"},
		{"unknown kind", "promotions:\n  - {id: A, kind: mystery, codes: [X]}\n"},
		{"overlap", "promotions:\n  - {id: A, kind: paired_unit, codes: [X]}\n  - {id: B, kind: paired_unit, codes: [X]}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePromotions([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadPromotionsMissingFile(t *testing.T) {
	_, err := LoadPromotions(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
