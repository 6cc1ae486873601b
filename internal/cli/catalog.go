package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/albedo/internal/catalog"
	"github.com/rshade/albedo/internal/config"
	"github.com/rshade/albedo/internal/greenops"
)

const (
	tabPadding        = 2
	catalogFormatJSON = "json"
)

// loadCatalog returns the catalog at path, the configured catalog file, or
// the built-in catalog.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		path = config.GetGlobalConfig().Estimator.CatalogFile
	}
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(path)
}

// NewCatalogListCmd creates the catalog list command.
func NewCatalogListCmd() *cobra.Command {
	var (
		category    string
		output      string
		catalogPath string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List material options",
		Example: `  # Every option
  albedo catalog list

  # Parking options as JSON
  albedo catalog list --category parking --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := loadCatalog(catalogPath)
			if err != nil {
				return err
			}

			cats := catalog.Categories()
			if category != "" {
				c, parseErr := catalog.ParseCategory(category)
				if parseErr != nil {
					return parseErr
				}
				cats = []catalog.Category{c}
			}

			var opts []catalog.MaterialOption
			for _, c := range cats {
				opts = append(opts, cat.Options(c)...)
			}

			switch output {
			case "", "table":
				return writeOptionsTable(cmd.OutOrStdout(), opts, config.GetGlobalConfig().Estimator.Currency)
			case catalogFormatJSON:
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(opts)
			default:
				return fmt.Errorf("unsupported output format %q (use table or json)", output)
			}
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only list one surface: roof, garden (facade), ground (parking)")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table or json")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog YAML file (default: built-in catalog)")

	return cmd
}

func writeOptionsTable(out io.Writer, opts []catalog.MaterialOption, currency string) error {
	w := tabwriter.NewWriter(out, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(w, "SURFACE\tID\tNAME\tPARTNER\tPRICE/SQFT\tTEMP\tALBEDO\tCO2 KG/SQFT")
	fmt.Fprintln(w, "-------\t--\t----\t-------\t----------\t----\t------\t-----------")
	for _, o := range opts {
		partner := o.Partner
		if partner == "" {
			partner = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%.2f\t%s\n",
			o.Category.Label(),
			o.ID,
			o.Name,
			partner,
			greenops.FormatMoney(o.UnitPrice, currency, 0),
			o.TemperatureLabel(),
			o.Albedo,
			greenops.FormatFloat(o.CO2OffsetKg, 1),
		)
	}
	return w.Flush()
}

// NewCatalogValidateCmd creates the catalog validate command.
func NewCatalogValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a catalog file",
		Long: `Checks a catalog YAML file: the schema_version, that every surface has a
free "none" option, unique ids, known classes and non-negative prices.`,
		Example: `  albedo catalog validate ./materials.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.LoadFile(args[0])
			if err != nil {
				return fmt.Errorf("catalog validation failed: %w", err)
			}
			cmd.Printf("✅ Catalog is valid: %d options\n", cat.Len())
			for _, c := range catalog.Categories() {
				cmd.Printf("  %s: %d\n", c.Label(), len(cat.Options(c)))
			}
			return nil
		},
	}
}

// NewCatalogExportCmd creates the catalog export command, which writes the
// active catalog as YAML to start a custom one from.
func NewCatalogExportCmd() *cobra.Command {
	var (
		out         string
		catalogPath string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the active catalog as YAML",
		Example: `  # Start a custom catalog from the built-in one
  albedo catalog export --out materials.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := loadCatalog(catalogPath)
			if err != nil {
				return err
			}
			data, err := cat.Marshal()
			if err != nil {
				return err
			}
			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err = os.WriteFile(out, data, outputFilePerm); err != nil {
				return fmt.Errorf("writing catalog: %w", err)
			}
			cmd.PrintErrf("Catalog written to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "write to FILE instead of stdout")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog YAML file to re-export")

	return cmd
}
