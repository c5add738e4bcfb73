package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func TestLoadDir_Defaults(t *testing.T) {
	cfg, err := LoadDir(t.TempDir(), "")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "go-container-controller", cfg.App.Name)
	assert.Equal(t, "local", cfg.App.Environment)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, int64(DefaultMaxRequestSize), cfg.Server.MaxRequestSize)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.File.Enabled)
	assert.Equal(t, DefaultLogFileMaxSizeMB, cfg.Log.File.MaxSizeMB)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.True(t, cfg.Telemetry.Insecure)
	assert.InDelta(t, 1.0, cfg.Telemetry.SamplingRate, 0)

	assert.Equal(t, DefaultContainerName, cfg.Container.Name)
	assert.Empty(t, cfg.Container.Stores)
	assert.False(t, cfg.Container.RecreateOnFailure)
	assert.True(t, cfg.Container.Lifecycle.Signals)
}

func TestLoadDir_Layering(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "base.yaml", `
log:
  level: debug
  format: text
container:
  name: notes
  stores:
    - name: primary
      type: sqlite
      path: /var/lib/notes/primary.sqlite
`)
	writeYAML(t, dir, "qa.yaml", `
log:
  level: warn
container:
  recreate_on_failure: true
  stores:
    - name: primary
      type: postgres
      dsn: postgres://notes@db/notes
    - name: tags
      type: badger
      path: /var/lib/notes/tags
      entities: [tag, label]
`)

	t.Setenv("APP_SERVER__PORT", "9090")
	t.Setenv("APP_SERVER__READ_TIMEOUT", "5s")
	t.Setenv("APP_CONTAINER__LIFECYCLE__SIGNALS", "false")

	cfg, err := LoadDir(dir, "qa")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "warn", cfg.Log.Level, "profile beats base")
	assert.Equal(t, "text", cfg.Log.Format, "base beats defaults")
	assert.Equal(t, 9090, cfg.Server.Port, "env beats everything")
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.False(t, cfg.Container.Lifecycle.Signals)

	assert.Equal(t, "notes", cfg.Container.Name)
	assert.True(t, cfg.Container.RecreateOnFailure)
	require.Len(t, cfg.Container.Stores, 2, "profile lists replace base lists")
	assert.Equal(t, StoreConfig{Name: "primary", Type: "postgres", DSN: "postgres://notes@db/notes"}, cfg.Container.Stores[0])
	assert.Equal(t, []string{"tag", "label"}, cfg.Container.Stores[1].Entities)
}

func TestLoadDir_MissingProfileIsSkipped(t *testing.T) {
	cfg, err := LoadDir(t.TempDir(), "nonexistent")
	require.NoError(t, err)

	assert.Equal(t, DefaultContainerName, cfg.Container.Name)
}

func TestLoadDir_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "base.yaml", "container: [unclosed")

	_, err := LoadDir(dir, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base.yaml")
}

func TestLoad_ReadsDefaultDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, DefaultDir), 0o755))
	writeYAML(t, filepath.Join(dir, DefaultDir), "local.yaml", "container:\n  name: scratch\n")
	t.Chdir(dir)

	cfg, err := Load("local")
	require.NoError(t, err)

	assert.Equal(t, "scratch", cfg.Container.Name)
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"APP_SERVER__PORT", "server.port"},
		{"APP_SERVER__SHUTDOWN_TIMEOUT", "server.shutdown_timeout"},
		{"APP_CONTAINER__RECREATE_ON_FAILURE", "container.recreate_on_failure"},
		{"APP_LOG__FILE__MAX_SIZE", "log.file.max_size"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, envKey(tt.in))
		})
	}
}
