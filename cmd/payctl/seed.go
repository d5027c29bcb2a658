package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/groblegark/payctl/internal/fixtures"
)

var seedCmd = &cobra.Command{
	Use:   "seed <file.toml>",
	Short: "Create products and prices from a TOML fixture file",
	Long: `Create products and prices from a TOML fixture file, in declaration
order, against the active project. Prices without a currency use the
project's default currency. Creation stops at the first failure; nothing
already created is rolled back.`,
	Args:              cobra.ExactArgs(1),
	PersistentPreRunE: requireProject,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := fixtures.Load(args[0])
		if err != nil {
			return err
		}

		reports, err := fixtures.Apply(cmd.Context(), api, doc, activeProject.DefaultCurrency)
		if jsonOutput {
			if jerr := printJSON(reports); jerr != nil {
				return jerr
			}
			return err
		}
		for _, r := range reports {
			fmt.Printf("created product %s (%s) with %d prices\n", r.ProductID, r.Name, len(r.PriceIDs))
		}
		if err != nil {
			return err
		}
		fmt.Printf("seeded %d products into project %q\n", len(reports), activeProject.Name)
		return nil
	},
}
