package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	cfg, path, err := Load(LoadOptions{ConfigDirPath: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, DefaultConfig(), *cfg)
}

func TestLoad_FileFromDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, `
db: /tmp/pbi-test.db
export:
  url: https://script.example/exec
  timeout: 5s
  retry:
    max_attempts: 5
    initial_wait: 250ms
admin:
  username: ops
log:
  level: debug
`)

	cfg, path, err := Load(LoadOptions{ConfigDirPath: dir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ConfigFileName), path)
	assert.Equal(t, "/tmp/pbi-test.db", cfg.DB)
	assert.Equal(t, "https://script.example/exec", cfg.Export.URL)
	assert.Equal(t, 5*time.Second, cfg.Export.Timeout)
	assert.Equal(t, 5, cfg.Export.Retry.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Export.Retry.InitialWait)
	// Untouched keys keep defaults.
	assert.Equal(t, 10*time.Second, cfg.Export.Retry.MaxWait)
	assert.Equal(t, "ops", cfg.Admin.Username)
	assert.Equal(t, "admin", cfg.Admin.Password)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "custom.yaml", "export:\n  url: https://from-file\n")

	t.Setenv("PBI_EXPORT_URL", "https://from-env")
	t.Setenv("PBI_ADMIN_PASSWORD", "s3cret")
	t.Setenv("PBI_EXPORT_RETRY_MAX_ATTEMPTS", "2")

	cfg, path, err := Load(LoadOptions{ConfigFilePath: p})
	require.NoError(t, err)
	assert.Equal(t, p, path)
	assert.Equal(t, "https://from-env", cfg.Export.URL)
	assert.Equal(t, "s3cret", cfg.Admin.Password)
	assert.Equal(t, 2, cfg.Export.Retry.MaxAttempts)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, _, err := Load(LoadOptions{ConfigFilePath: filepath.Join(t.TempDir(), "nope.yaml")})
	assert.ErrorContains(t, err, "not found")
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, "export:\n  retry:\n    max_attempts: 0\nlog:\n  level: loud\n")

	_, _, err := Load(LoadOptions{ConfigDirPath: dir})
	require.Error(t, err)
	assert.ErrorContains(t, err, "max_attempts")
	assert.ErrorContains(t, err, "log.level")
}

func TestValidate_Defaults(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestConfigDir_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	got, err := ConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pbi"), got)
}
