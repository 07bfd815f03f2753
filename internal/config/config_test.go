package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"translation-quote/internal/errors"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := Default()
	cfg.Regime.Path = "/etc/quote/ca.hcl"
	cfg.Regime.DefaultRegion = "CA-AB"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))
	_, err := Load(path)
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("QUOTE_REGIME_PATH", "/srv/regime.hcl")
	t.Setenv("QUOTE_DEFAULT_REGION", "CA-QC")
	t.Setenv("QUOTE_LOG_LEVEL", "debug")
	t.Setenv("QUOTE_SERVER_READ_TIMEOUT_SECONDS", "3")

	// A named env file must exist.
	assert.True(t, errors.IsType(Default().ApplyEnv(filepath.Join(t.TempDir(), "absent.env")), errors.TypeConfig))

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(writeEnv(t, "")))

	assert.Equal(t, "/srv/regime.hcl", cfg.Regime.Path)
	assert.Equal(t, "CA-QC", cfg.Regime.DefaultRegion)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 3, cfg.Server.ReadTimeoutSeconds)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestApplyEnvFileDoesNotOverrideEnvironment(t *testing.T) {
	t.Setenv("QUOTE_OUTPUT_FORMAT", "json")
	t.Cleanup(func() { os.Unsetenv("QUOTE_DIFF_THRESHOLD") })

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(writeEnv(t, "QUOTE_OUTPUT_FORMAT=markdown\nQUOTE_DIFF_THRESHOLD=0.05\n")))
	assert.Equal(t, "json", cfg.Output.DefaultFormat)
	assert.Equal(t, "0.05", cfg.Regime.DiffThreshold)
}

func TestApplyEnvRejectsBadNumbers(t *testing.T) {
	t.Setenv("QUOTE_SERVER_WRITE_TIMEOUT_SECONDS", "soon")
	err := Default().ApplyEnv(writeEnv(t, ""))
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}

func TestFallbackTax(t *testing.T) {
	cfg := Default()
	tax, err := cfg.FallbackTax()
	require.NoError(t, err)
	assert.Nil(t, tax)

	cfg.Regime.FallbackTaxRate = "0.05"
	cfg.Regime.FallbackTaxName = "GST"
	tax, err = cfg.FallbackTax()
	require.NoError(t, err)
	assert.Equal(t, "GST", tax.DisplayName)
	assert.Equal(t, "0.05", tax.TotalRate.String())

	cfg.Regime.FallbackTaxRate = "-1"
	_, err = cfg.FallbackTax()
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}
