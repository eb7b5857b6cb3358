package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig("")
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, 8000, cfg.Web.Port)
	assert.Equal(t, 100, cfg.Database.MaxConn)
}

func TestLoadConfigFile(t *testing.T) {
	cfile := filepath.Join(t.TempDir(), "test.yml")
	content := []byte("web:\n  host: 127.0.0.1\n  port: 9000\ndatabase:\n  type: sqlite\n  name: catalog\n")
	require.NoError(t, os.WriteFile(cfile, content, 0644))

	cfg := LoadConfig(cfile)
	assert.Equal(t, "127.0.0.1", cfg.Web.Host)
	assert.Equal(t, 9000, cfg.Web.Port)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "catalog", cfg.Database.Name)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("PCS_DB_HOST", "db.internal")
	t.Setenv("PCS_WEB_PORT", "8080")

	cfg := LoadConfig("")
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 8080, cfg.Web.Port)
}
