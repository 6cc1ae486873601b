// Package cli implements the albedo command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/albedo/internal/config"
	"github.com/rshade/albedo/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the albedo CLI. It loads
// configuration, wires logging, tracing and audit logging, and adds the
// estimate, batch, catalog and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:   "albedo",
		Short: "Retrofit cost and cooling impact estimator",
		Long: `albedo estimates the cost, subsidies, payback and cooling impact of
retrofitting a building's roof, greenery and ground surfaces.`,
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (default $ALBEDO_HOME/config.yaml)")
	cmd.PersistentFlags().String("project-dir", "", "project directory holding .albedo/config.yaml")
	cmd.AddCommand(NewEstimateCmd(), NewBatchCmd(), newCatalogCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Estimate the default building
  albedo estimate

  # Cool tiles on a 2,500 sq.ft roof with a solar canopy over parking
  albedo estimate --roof 2500 --roof-material tiles --ground-material canopy

  # Explore options interactively
  albedo estimate --interactive

  # Write a PDF quote
  albedo estimate --output pdf --out quote.pdf

  # Compare a portfolio of sites by payback
  albedo batch --file sites.yaml --sort-by payback

  # List the material catalog
  albedo catalog list

  # Set configuration values
  albedo config set estimator.currency USD`

// loadConfig installs the global configuration: an explicit --config file,
// or the user file with any project overlay. .env files are loaded first so
// their variables count as environment.
func loadConfig(cmd *cobra.Command) error {
	config.LoadDotEnv()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return fmt.Errorf("loading config %s: %w", path, err)
		}
		cfg.ApplyEnv(os.LookupEnv)
		config.SetGlobalConfig(cfg)
		return nil
	}

	projectDirFlag, _ := cmd.Flags().GetString("project-dir")
	wd, _ := os.Getwd()
	projectDir := config.ResolveProjectDir(cmd.Context(), projectDirFlag, wd)
	config.SetResolvedProjectDir(projectDir)
	config.SetGlobalConfig(config.NewWithProjectDir(cmd.Context(), projectDir))
	return nil
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	return cmd
}

// newCatalogCmd creates the catalog command group.
func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "catalog", Short: "Material catalog commands"}
	cmd.AddCommand(NewCatalogListCmd(), NewCatalogValidateCmd(), NewCatalogExportCmd())
	return cmd
}
