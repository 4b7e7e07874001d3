package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaults_AutoPicksSqlite(t *testing.T) {
	cfg := Config{DBDriver: "auto", SQLiteDBFile: "characters.db"}
	require.NoError(t, cfg.ResolveDefaults())
	assert.Equal(t, "sqlite", cfg.DBDriver)
}

func TestResolveDefaults_AutoPicksPostgresWithDSN(t *testing.T) {
	cfg := Config{DBDriver: "auto", SQLiteDBFile: "characters.db", PostgresDSN: "postgres://localhost/chars"}
	require.NoError(t, cfg.ResolveDefaults())
	assert.Equal(t, "postgres", cfg.DBDriver)
}

func TestResolveDefaults_RejectsUnknownDriver(t *testing.T) {
	cfg := Config{DBDriver: "oracle"}
	assert.Error(t, cfg.ResolveDefaults())
}

func TestResolveDefaults_PostgresRequiresDSN(t *testing.T) {
	cfg := Config{DBDriver: "postgres"}
	assert.Error(t, cfg.ResolveDefaults())
}

func TestNew_ReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "4100")
	t.Setenv("ELIZA_SERVER_URL", "http://eliza.local")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 4100, cfg.Port)
	assert.Equal(t, ":4100", cfg.HTTPAddr())
	assert.Equal(t, "http://eliza.local", cfg.ElizaServerURL)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "sqlite", cfg.DBDriver)
}
