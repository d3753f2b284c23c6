package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abelbrown/catalog/internal/catalog"
	"github.com/abelbrown/catalog/internal/fetch"
)

// clearEnv blanks every override so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	for _, k := range []string{"CATALOG_ENDPOINT", "CATALOG_TIMEOUT", "CATALOG_LOCALE", "CATALOG_SORT", "CATALOG_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, fetch.DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, catalog.SortByName, cfg.UI.DefaultSort)
	assert.False(t, cfg.UI.Thumbnails)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
endpoint: http://localhost:9000/items
timeout: 5s
ui:
  locale: de
  default_sort: rating
  card_width: 40
  thumbnails: true
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/items", cfg.Endpoint)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "de", cfg.UI.Locale)
	assert.Equal(t, catalog.SortByRating, cfg.UI.DefaultSort)
	assert.Equal(t, 40, cfg.UI.CardWidth)
	assert.True(t, cfg.UI.Thumbnails)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "endpoint: http://from-file\ntimeout: 5s\n")
	t.Setenv("CATALOG_ENDPOINT", "http://from-env")
	t.Setenv("CATALOG_TIMEOUT", "2s")
	t.Setenv("CATALOG_SORT", "price")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env", cfg.Endpoint)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, catalog.SortByPrice, cfg.UI.DefaultSort)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{name: "bad sort key", body: "ui:\n  default_sort: popularity\n"},
		{name: "bad yaml", body: "endpoint: [unterminated\n"},
		{name: "bad locale", body: "ui:\n  locale: \"!!\"\n"},
		{name: "zero timeout", body: "timeout: 0s\n"},
		{name: "bad env timeout", env: map[string]string{"CATALOG_TIMEOUT": "soon"}},
		{name: "bad env sort", env: map[string]string{"CATALOG_SORT": "stars"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	cfg := DefaultConfig()
	cfg.UI.DefaultSort = catalog.SortByPrice
	cfg.Timeout = 12 * time.Second

	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, catalog.SortByPrice, loaded.UI.DefaultSort)
	assert.Equal(t, 12*time.Second, loaded.Timeout)
}

func TestLoadClampsCardWidth(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, "ui:\n  card_width: 3\n"))
	require.NoError(t, err)
	assert.Equal(t, MinCardWidth, cfg.UI.CardWidth)
}

func TestValidateDoesNotModify(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UI.CardWidth = 3
	before := *cfg

	assert.Error(t, cfg.Validate())
	assert.Equal(t, before, *cfg)

	cfg.UI.CardWidth = MinCardWidth
	assert.NoError(t, cfg.Validate())
}

func TestLoadMalformedDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BAD-KEY=1\n"), 0644))
	t.Chdir(dir)

	_, err := Load(filepath.Join(dir, "config.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".env")
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CATALOG_LOCALE=de\n"), 0644))
	t.Chdir(dir)
	// godotenv does not override variables that are already set.
	require.NoError(t, os.Unsetenv("CATALOG_LOCALE"))

	cfg, err := Load(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "de", cfg.UI.Locale)
}
