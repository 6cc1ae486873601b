package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/albedo/internal/config"
)

// TestConfigInit_Project verifies that "config init --project" creates
// .albedo/config.yaml and .albedo/.gitignore in the working directory.
func TestConfigInit_Project(t *testing.T) {
	setupCLITest(t)
	wd, err := os.Getwd()
	require.NoError(t, err)

	out, err := executeCmd(t, "config", "init", "--project")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized at")
	assert.Contains(t, out, "Created .gitignore")

	_, err = os.Stat(filepath.Join(wd, config.ProjectDirName, "config.yaml"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(wd, config.ProjectDirName, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, config.GitignoreContent(), string(data))
}

// TestConfigInit_InsideProject verifies that an existing .albedo directory is
// found without --project, and that a custom .gitignore is preserved.
func TestConfigInit_InsideProject(t *testing.T) {
	home := setupCLITest(t)
	projectRoot := t.TempDir()
	projectDir := filepath.Join(projectRoot, config.ProjectDirName)
	require.NoError(t, os.MkdirAll(projectDir, 0o750))
	custom := "# mine\n*.secret\n"
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, ".gitignore"), []byte(custom), 0o600))
	t.Setenv(config.EnvProjectDir, projectRoot)

	out, err := executeCmd(t, "config", "init")
	require.NoError(t, err)
	assert.NotContains(t, out, "Created .gitignore")

	_, err = os.Stat(filepath.Join(projectDir, "config.yaml"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(home, "config.yaml"))
	assert.True(t, os.IsNotExist(err), "global config should not be written")

	data, err := os.ReadFile(filepath.Join(projectDir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, custom, string(data))
}

// TestConfigInit_GlobalFlag verifies that --global writes $ALBEDO_HOME even
// inside a project.
func TestConfigInit_GlobalFlag(t *testing.T) {
	home := setupCLITest(t)
	projectRoot := t.TempDir()
	t.Setenv(config.EnvProjectDir, projectRoot)

	out, err := executeCmd(t, "config", "init", "--global")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")

	_, err = os.Stat(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(projectRoot, config.ProjectDirName, "config.yaml"))
	assert.True(t, os.IsNotExist(err))
}

func TestConfigInit_ExistingFile(t *testing.T) {
	home := setupCLITest(t)

	_, err := executeCmd(t, "config", "init")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("output:\n  precision: 4\n"), 0o600))

	_, err = executeCmd(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = executeCmd(t, "config", "init", "--force")
	require.NoError(t, err)
	cfg, err := config.LoadFile(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultPrecision, cfg.Output.Precision)
}

func TestConfigInit_ConflictingFlags(t *testing.T) {
	setupCLITest(t)
	_, err := executeCmd(t, "config", "init", "--global", "--project")
	require.Error(t, err)
}
