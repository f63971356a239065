package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMissingFileUsesDefaults(t *testing.T) {
	c, err := Get(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)

	assert.Equal(t, "8080", c.ApiPort)
	assert.Equal(t, "sqlite3", c.Database)
	assert.Equal(t, "db/cadastro.db", c.DbPath)
	assert.Equal(t, "uploads", c.Upload.Dir)
	assert.Equal(t, int64(10<<20), c.Upload.MaxBytes)
	assert.Equal(t, "token", c.Security.CookieName)
	assert.Equal(t, 12*time.Hour, c.TokenTTL())
	assert.Equal(t, 30*time.Minute, c.JanitorInterval())
	assert.True(t, c.DefaultSecret())
}

func TestGetReadsCommentedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{
		// porta da API
		"api_port": "9090",
		"database": "sqlite3",
		"upload": {"dir": "/tmp/fotos",},
		"security": {"jwt_secret": "segredo", "token_ttl_hours": 2},
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	c, err := Get(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", c.ApiPort)
	assert.Equal(t, "/tmp/fotos", c.Upload.Dir)
	assert.Equal(t, "segredo", c.Security.JwtSecret)
	assert.False(t, c.DefaultSecret())
	assert.Equal(t, 2*time.Hour, c.TokenTTL())
}

func TestGetEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api_port": "9090"}`), 0o600))

	t.Setenv("CADASTRO_API_PORT", "7070")
	t.Setenv("CADASTRO_JWT_SECRET", "do-ambiente")

	c, err := Get(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", c.ApiPort)
	assert.Equal(t, "do-ambiente", c.Security.JwtSecret)
}

func TestGetInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api_port": `), 0o600))

	_, err := Get(path)
	require.Error(t, err)
}
