package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/albedo/internal/config"
)

// projectDirPerm is the mode of a created .albedo directory.
const projectDirPerm = 0o750

// NewConfigInitCmd creates the config init command. Inside a project (a
// directory tree with .albedo/, or --project) it writes the project overlay
// and a .gitignore; otherwise it writes $ALBEDO_HOME/config.yaml.
func NewConfigInitCmd() *cobra.Command {
	var (
		force   bool
		global  bool
		project bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

Inside a project that already has a .albedo/ directory, or with --project,
creates $PROJECT/.albedo/config.yaml with a .gitignore for logs and exported
quotes. Use --global to write the user configuration even inside a project.`,
		Example: `  # Create the user configuration
  albedo config init

  # Create a project overlay in the current directory
  albedo config init --project

  # Overwrite an existing file
  albedo config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if global && project {
				return errors.New("--global and --project are mutually exclusive")
			}
			if global {
				return initGlobalConfig(cmd, force)
			}

			projectDir := config.GetResolvedProjectDir()
			if project && projectDir == "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("resolving working directory: %w", err)
				}
				projectDir = filepath.Join(wd, config.ProjectDirName)
			}
			if projectDir != "" {
				return initProjectConfig(cmd, projectDir, force)
			}

			return initGlobalConfig(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&global, "global", false, "write the user configuration even inside a project")
	cmd.Flags().BoolVar(&project, "project", false, "create a project overlay in the current directory")

	return cmd
}

// checkWritable refuses to replace an existing file unless force is set.
func checkWritable(path string, force bool) error {
	if force {
		return nil
	}
	_, err := os.Stat(path)
	if err == nil {
		return errors.New("configuration file already exists, use --force to overwrite")
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("cannot access config path %s: %w", path, err)
	}
	return nil
}

// initProjectConfig creates projectDir/config.yaml and its .gitignore.
func initProjectConfig(cmd *cobra.Command, projectDir string, force bool) error {
	configPath := filepath.Join(projectDir, "config.yaml")
	if err := checkWritable(configPath, force); err != nil {
		return err
	}

	if err := os.MkdirAll(projectDir, projectDirPerm); err != nil {
		return fmt.Errorf("failed to create project config directory: %w", err)
	}

	cfg := config.Default()
	cfg.SetConfigPath(configPath)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	created, err := config.EnsureGitignore(projectDir)
	if err != nil {
		return fmt.Errorf("failed to create .gitignore: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", configPath)
	if created {
		cmd.Printf("Created .gitignore for logs and exported quotes\n")
	}

	return nil
}

// initGlobalConfig creates $ALBEDO_HOME/config.yaml.
func initGlobalConfig(cmd *cobra.Command, force bool) error {
	dir, err := config.GetConfigDir()
	if err != nil {
		return err
	}
	configPath := filepath.Join(dir, "config.yaml")
	if err = checkWritable(configPath, force); err != nil {
		return err
	}

	cfg := config.Default()
	cfg.SetConfigPath(configPath)
	if err = cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", configPath)

	return nil
}
