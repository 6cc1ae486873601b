package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalConfig(t *testing.T) {
	t.Setenv(EnvHome, t.TempDir())
	t.Setenv(EnvOutputFormat, "")
	SetResolvedProjectDir("")
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)

	cfg := GetGlobalConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, "table", cfg.Output.DefaultFormat)
	assert.Same(t, cfg, GetGlobalConfig())

	ResetGlobalConfigForTest()
	assert.NotSame(t, cfg, GetGlobalConfig())

	custom := Default()
	custom.Output.Precision = 5
	SetGlobalConfig(custom)
	assert.Equal(t, 5, GetOutputPrecision())
	assert.Equal(t, "table", GetDefaultOutputFormat())
	assert.Equal(t, "warn", GetLogLevel())
	assert.Equal(t, "warn", GetLoggingConfig().Level)
}

func TestGetConfigDir(t *testing.T) {
	t.Setenv(EnvHome, "/opt/albedo")
	dir, err := GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/opt/albedo", dir)

	home := t.TempDir()
	t.Setenv(EnvHome, "")
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	dir, err = GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".albedo"), dir)
}

func TestEnsureDirs(t *testing.T) {
	home := filepath.Join(t.TempDir(), "albedo-home")
	t.Setenv(EnvHome, home)
	require.NoError(t, EnsureConfigDir())
	info, err := os.Stat(home)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	t.Cleanup(ResetGlobalConfigForTest)
	cfg := Default()
	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "albedo.log")
	SetGlobalConfig(cfg)
	require.NoError(t, EnsureLogDir())
	_, err = os.Stat(filepath.Dir(cfg.Logging.File))
	require.NoError(t, err)
}
