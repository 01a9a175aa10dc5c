package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadDefaultsAndFile(t *testing.T) {
	p := writeYAML(t, `
jwt:
  secret: file-secret
store:
  driver: sqlite
  dsn: file:test.db
`)
	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "file-secret", c.JWT.Secret)
	assert.Equal(t, 10080, c.JWT.AccessTokenTTLMin)
	assert.Equal(t, "sqlite", c.Store.Driver)
	assert.Equal(t, 5000, c.App.HTTP.Port)
	assert.Equal(t, int64(10), c.Limits.AuthPerUser)
}

func TestLoadEnvOverrides(t *testing.T) {
	p := writeYAML(t, "jwt:\n  secret: file-secret\n")
	t.Setenv("APP_JWT_SECRET", "env-secret")
	t.Setenv("APP_APP_HTTP_PORT", "8088")
	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "env-secret", c.JWT.Secret)
	assert.Equal(t, 8088, c.App.HTTP.Port)
}

func TestLoadMissingDefaultFileIsFine(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("APP_JWT_SECRET", "s")
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "memory", c.Store.Driver)
}

func TestLoadRejects(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err, "explicit path must exist")

	_, err = Load(writeYAML(t, "store:\n  driver: mongo\njwt:\n  secret: s\n"))
	assert.ErrorContains(t, err, "store.driver")

	_, err = Load(writeYAML(t, "store:\n  driver: postgres\njwt:\n  secret: s\n"))
	assert.ErrorContains(t, err, "store.dsn")

	t.Setenv("APP_JWT_SECRET", "")
	_, err = Load(writeYAML(t, "app:\n  name: x\n"))
	assert.ErrorContains(t, err, "jwt.secret")
}
