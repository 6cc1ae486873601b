package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/albedo/internal/config"
)

// NewConfigSetCmd creates the config set command. The value is written to
// the configuration file only; environment overrides are not saved.
func NewConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Example: `  # Quote amounts in US dollars with no decimals
  albedo config set estimator.currency USD
  albedo config set output.precision 0

  # Raise the green subsidy to 15%
  albedo config set estimator.rates.green_subsidy_rate 0.15`,
		Args: cobra.ExactArgs(2), //nolint:mnd // KEY VALUE
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.GetGlobalConfig().ConfigPath()
			cfg, err := config.LoadFile(path)
			if err != nil {
				return fmt.Errorf("loading %s: %w", path, err)
			}
			if err = cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err = cfg.Validate(); err != nil {
				return fmt.Errorf("refusing to save invalid configuration: %w", err)
			}
			if err = cfg.Save(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}
			cmd.Printf("Set %s = %s\n", args[0], args[1])
			return nil
		},
	}
}

// NewConfigGetCmd creates the config get command, which prints the effective
// value after environment and project overrides.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get KEY",
		Short:   "Print a configuration value",
		Example: `  albedo config get estimator.rates.canopy_savings_per_sqft`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.GetGlobalConfig().Get(args[0])
			if err != nil {
				return err
			}
			cmd.Println(v)
			return nil
		},
	}
}

// NewConfigListCmd creates the config list command.
func NewConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every configuration key with its effective value",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
			fmt.Fprintln(w, "KEY\tVALUE")
			for _, key := range config.Keys() {
				v, err := cfg.Get(key)
				if err != nil {
					v = "<" + err.Error() + ">"
				}
				fmt.Fprintf(w, "%s\t%s\n", key, v)
			}
			return w.Flush()
		},
	}
}
