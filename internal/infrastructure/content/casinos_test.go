package content

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roulettesim/roulettesim-go/internal/infrastructure/observability/logging"
)

func newQuietLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()

	cfg := logging.DefaultLoggerConfig()
	cfg.OutputToFile = false
	cfg.OutputToConsole = false
	cfg.IncludeSource = false
	cfg.DefaultLevel = slog.LevelError

	logger, err := logging.NewChanneledLogger(cfg)
	require.NoError(t, err)
	return logger
}

func TestLoadCasinoCatalogFromDir(t *testing.T) {
	dir := t.TempDir()
	entry := `{
		"casinoId": "test-casino",
		"name": "Test Casino",
		"supportedVariants": ["european"],
		"features": {"liveDealers": true, "mobileApp": false, "bonusOffering": "", "reputation": 8},
		"affiliateUrl": "https://example.com/test",
		"geographicAvailability": ["GB"],
		"conversionPriority": 1,
		"lastVerified": "2026-06-01T00:00:00Z"
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test-casino.json"), []byte(entry), 0644))

	casinos, err := LoadCasinoCatalog(dir, newQuietLogger(t))
	require.NoError(t, err)
	require.Len(t, casinos, 1)
	assert.Equal(t, "test-casino", casinos[0].CasinoID)
	assert.Equal(t, 8, casinos[0].Features.Reputation)
}

func TestLoadCasinoCatalogInvalidEntry(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{"casinoId": "bad"}`), 0644))

	_, err := LoadCasinoCatalog(dir, newQuietLogger(t))
	assert.Error(t, err)
}

func TestLoadCasinoCatalogMissingDirUsesDefaults(t *testing.T) {
	casinos, err := LoadCasinoCatalog(filepath.Join(t.TempDir(), "nope"), newQuietLogger(t))
	require.NoError(t, err)
	assert.NotEmpty(t, casinos)
	for _, casino := range casinos {
		assert.NoError(t, casino.Validate())
	}
}

func TestDefaultCatalogsValid(t *testing.T) {
	for _, casino := range DefaultCasinoCatalog() {
		assert.NoError(t, casino.Validate())
	}
	assert.NotEmpty(t, MockGameCatalog())
}
