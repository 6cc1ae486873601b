package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/albedo/internal/catalog"
	"github.com/rshade/albedo/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		Long: `Validates the effective configuration (user file, project overlay and
environment) for syntax and semantic correctness.

This includes:
- Output format and precision
- Logging level, format and audit file
- Estimator unit and rate overrides
- The catalog file, when one is configured`,
		Example: `  # Validate current configuration
  albedo config validate

  # Validate and show detailed information
  albedo config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	var cat *catalog.Catalog
	if cfg.Estimator.CatalogFile != "" {
		var err error
		if cat, err = catalog.LoadFile(cfg.Estimator.CatalogFile); err != nil {
			return fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	cmd.Printf("✅ Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg, cat)
	}

	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config, cat *catalog.Catalog) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Config file: %s\n", cfg.ConfigPath())
	if dir := config.GetResolvedProjectDir(); dir != "" {
		cmd.Printf("  Project overlay: %s\n", dir)
	}
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Output precision: %d\n", cfg.Output.Precision)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	cmd.Printf("  Unit: %s\n", cfg.Estimator.UnitOrDefault())
	cmd.Printf("  Currency: %s\n", cfg.Estimator.Currency)

	if cat != nil {
		cmd.Printf("  Catalog: %s (%d options)\n", cfg.Estimator.CatalogFile, cat.Len())
	} else {
		cmd.Println("  Catalog: built-in")
	}

	if len(cfg.Estimator.Rates) == 0 {
		cmd.Println("  No rate overrides")
		return
	}
	cmd.Printf("  Rate overrides: %d\n", len(cfg.Estimator.Rates))
	for _, key := range config.Keys() {
		name, isRate := strings.CutPrefix(key, "estimator.rates.")
		if v, ok := cfg.Estimator.Rates[name]; isRate && ok {
			cmd.Printf("    - %s: %g\n", name, v)
		}
	}
}
