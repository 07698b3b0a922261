package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.kdl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestInitializeConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
log-level "warn"
server-port 9090
bruteforce {
    max-length 5
    alphabet "abc"
}
dictionary {
    file "words.txt"
}
`)
	cfg, err := InitializeConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, 5, cfg.BruteforceConfig.MaxLength)
	assert.Equal(t, "abc", cfg.BruteforceConfig.Alphabet)
	assert.Equal(t, "words.txt", cfg.DictionaryConfig.File)
	assert.Equal(t, DefaultDelay, cfg.OnlineConfig.Delay)
	assert.Equal(t, "servers.json", cfg.OnlineConfig.ServersFile)
}

func TestInitializeConfigMissingExplicitFile(t *testing.T) {
	_, err := InitializeConfig(filepath.Join(t.TempDir(), "absent.kdl"))
	assert.Error(t, err)
}

func TestInitializeConfigRejectsDuplicateAlphabet(t *testing.T) {
	path := writeConfig(t, `
bruteforce {
    alphabet "abca"
}
`)
	_, err := InitializeConfig(path)
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	a, err := cfg.Alphabet()
	require.NoError(t, err)
	assert.Equal(t, 52, a.Len())
	assert.Equal(t, DefaultMaxLength, cfg.BruteforceConfig.MaxLength)
}
