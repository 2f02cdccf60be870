package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := parse(map[string]string{"DATABASE_URL": "postgres://localhost/ledger"})
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/ledger", cfg.DatabaseURL)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.SerializablePosting)
	assert.Equal(t, 5, cfg.SerializationRetries)
	assert.Equal(t, 0, cfg.MaxAllocationAttempts)
}

func TestParse_MissingDatabaseURL(t *testing.T) {
	_, err := parse(map[string]string{})
	require.Error(t, err)
}

func TestParse_NegativeAllocationAttempts(t *testing.T) {
	_, err := parse(map[string]string{
		"DATABASE_URL":                "postgres://localhost/ledger",
		"ACCOUNT_NUMBER_MAX_ATTEMPTS": "-1",
	})
	require.Error(t, err)
}

func TestLoad_FileWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.yaml")
	content := "DATABASE_URL: postgres://file/ledger\nPORT: 9090\nLEDGER_SERIALIZABLE_POSTING: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://file/ledger", cfg.DatabaseURL)
	assert.Equal(t, 7070, cfg.Port, "environment wins over file")
	assert.True(t, cfg.SerializablePosting)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	require.Error(t, err)
}
