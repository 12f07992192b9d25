package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDefaults(t *testing.T) {
	cfg, err := Build("", nil)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Empty(t, cfg.OutputDir)
	assert.Equal(t, "default", cfg.AccountID)
}

func TestBuildFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: \":9999\"\naccount_id: hdfc\n"), 0o644))

	cfg, err := Build(path, nil)
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.ListenAddr)
	assert.Equal(t, "hdfc", cfg.AccountID)
	assert.Empty(t, cfg.OutputDir)
}

func TestBuildMissingExplicitFile(t *testing.T) {
	_, err := Build(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestBuildFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: \":9999\"\n"), 0o644))

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("listen", "", "")
	flags.String("output", "", "")
	flags.String("account", "", "")
	require.NoError(t, flags.Parse([]string{"--listen", ":7777", "--account", "icici-current"}))

	cfg, err := Build(path, flags)
	require.NoError(t, err)

	assert.Equal(t, ":7777", cfg.ListenAddr)
	assert.Equal(t, "icici-current", cfg.AccountID)
	// Unset flags fall back to the file, then defaults.
	assert.Empty(t, cfg.OutputDir)
}

func TestBuildEnvOverride(t *testing.T) {
	t.Setenv("WEALTHWISE_ACCOUNT_ID", "from-env")

	cfg, err := Build("", nil)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.AccountID)
}
