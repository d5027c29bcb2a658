package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/groblegark/payctl/internal/client"
)

var pricesCmd = &cobra.Command{
	Use:               "prices",
	Short:             "Manage prices on the platform",
	PersistentPreRunE: requireProject,
}

var pricesCreateCmd = &cobra.Command{
	Use:   "create <product-id> <amount>",
	Short: "Create a price for a product",
	Long: `Create a price for a product. The amount is in the currency's smallest
unit (1500 = $15.00 for usd). Without --interval the price is one-time.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		productID := args[0]
		var amount int64
		if _, err := fmt.Sscanf(args[1], "%d", &amount); err != nil || amount <= 0 {
			return fmt.Errorf("invalid amount %q: want a positive integer in the smallest currency unit", args[1])
		}
		currency, _ := cmd.Flags().GetString("currency")
		if currency == "" {
			currency = activeProject.DefaultCurrency
		}
		interval, _ := cmd.Flags().GetString("interval")
		switch interval {
		case "", "day", "week", "month", "year":
		default:
			return fmt.Errorf("invalid interval %q (want day, week, month, or year)", interval)
		}
		lookupKey, _ := cmd.Flags().GetString("lookup-key")

		p, err := api.CreatePrice(cmd.Context(), &client.CreatePriceRequest{
			ProductID:  productID,
			UnitAmount: amount,
			Currency:   strings.ToLower(currency),
			Interval:   interval,
			LookupKey:  lookupKey,
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(p)
		}
		printPriceTable(p)
		return nil
	},
}

var pricesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List prices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		productID, _ := cmd.Flags().GetString("product")
		limit, _ := cmd.Flags().GetInt64("limit")

		prices, err := api.ListPrices(cmd.Context(), &client.ListPricesRequest{
			ProductID: productID,
			Limit:     limit,
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(prices)
		}
		printPriceListTable(prices)
		return nil
	},
}

var pricesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a price",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := api.GetPrice(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(p)
		}
		printPriceTable(p)
		return nil
	},
}

var pricesDeactivateCmd = &cobra.Command{
	Use:   "deactivate <id>",
	Short: "Deactivate a price (prices cannot be deleted)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := api.DeactivatePrice(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(p)
		}
		fmt.Printf("price %s deactivated\n", p.ID)
		return nil
	},
}

func init() {
	pricesCreateCmd.Flags().StringP("currency", "c", "", "currency code (default: the project's default currency)")
	pricesCreateCmd.Flags().StringP("interval", "i", "", "recurring interval: day, week, month, or year")
	pricesCreateCmd.Flags().String("lookup-key", "", "lookup key for retrieving the price by name")

	pricesListCmd.Flags().StringP("product", "p", "", "filter by product ID")
	pricesListCmd.Flags().Int64("limit", 0, "maximum number of prices to list")

	pricesCmd.AddCommand(pricesCreateCmd)
	pricesCmd.AddCommand(pricesListCmd)
	pricesCmd.AddCommand(pricesGetCmd)
	pricesCmd.AddCommand(pricesDeactivateCmd)
}
