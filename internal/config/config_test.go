package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "config.json"), envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, DriverJSON, cfg.CatalogDriver)
	assert.Equal(t, BackendLine, cfg.Backend)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, 0, cfg.TermWidth)
	assert.Equal(t, "catalog.json", filepath.Base(cfg.CatalogPath))
	assert.Equal(t, "rbook.log", filepath.Base(cfg.LogPath))
}

func TestLoadFileReadsJSON(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "catalog_path": "/books/catalog.db",
  "catalog_driver": "SQLite",
  "log_level": "debug",
  "term_width": 72,
  "backend": "screen"
}`), 0o600))

	cfg, err := LoadFile(path, envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, "/books/catalog.db", cfg.CatalogPath)
	assert.Equal(t, DriverSQLite, cfg.CatalogDriver)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 72, cfg.TermWidth)
	assert.Equal(t, BackendScreen, cfg.Backend)
	assert.Equal(t, path, cfg.Path())
}

func TestLoadFileEnvOverridesFile(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"term_width": 72, "backend": "screen"}`), 0o600))

	cfg, err := LoadFile(path, envMap(map[string]string{
		"RBOOK_WIDTH":     "100",
		"RBOOK_BACKEND":   "line",
		"RBOOK_CATALOG":   "/tmp/other.json",
		"RBOOK_LOG_LEVEL": "error",
	}))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.TermWidth)
	assert.Equal(t, BackendLine, cfg.Backend)
	assert.Equal(t, "/tmp/other.json", cfg.CatalogPath)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadFileSQLiteDriverSwitchesDefaultCatalogFile(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "config.json"), envMap(map[string]string{
		"RBOOK_CATALOG_DRIVER": "sqlite",
	}))
	require.NoError(t, err)
	assert.Equal(t, "catalog.db", filepath.Base(cfg.CatalogPath))
}

func TestLoadFileRejectsInvalidValues(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	dir := t.TempDir()

	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{"bad json", `{"backend":`, nil},
		{"unknown driver", `{"catalog_driver": "redis"}`, nil},
		{"unknown backend", `{"backend": "gui"}`, nil},
		{"negative width", `{"term_width": -1}`, nil},
		{"bad level", `{"log_level": "loud"}`, nil},
		{"bad width env", `{}`, map[string]string{"RBOOK_WIDTH": "wide"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".json")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o600))
			_, err := LoadFile(path, envMap(tt.env))
			assert.Error(t, err)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg, err := LoadFile(path, envMap(nil))
	require.NoError(t, err)

	cfg.TermWidth = 64
	cfg.Backend = BackendScreen
	require.NoError(t, cfg.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"path"`)

	loaded, err := LoadFile(path, envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, 64, loaded.TermWidth)
	assert.Equal(t, BackendScreen, loaded.Backend)
}
