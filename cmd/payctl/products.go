package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/groblegark/payctl/internal/client"
)

// parseMetadata converts -m key=value pairs into a string map.
func parseMetadata(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	m := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid metadata %q: expected key=value", p)
		}
		m[k] = v
	}
	return m, nil
}

var productsCmd = &cobra.Command{
	Use:               "products",
	Short:             "Manage products on the platform",
	PersistentPreRunE: requireProject,
}

var productsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")
		metaPairs, _ := cmd.Flags().GetStringArray("metadata")
		metadata, err := parseMetadata(metaPairs)
		if err != nil {
			return err
		}

		p, err := api.CreateProduct(cmd.Context(), &client.CreateProductRequest{
			Name:        args[0],
			Description: description,
			Metadata:    metadata,
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(p)
		}
		printProductTable(p)
		return nil
	},
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt64("limit")
		req := &client.ListProductsRequest{Limit: limit}
		if cmd.Flags().Changed("active") {
			active, _ := cmd.Flags().GetBool("active")
			req.Active = &active
		}

		products, err := api.ListProducts(cmd.Context(), req)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(products)
		}
		printProductListTable(products)
		return nil
	},
}

var productsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := api.GetProduct(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(p)
		}
		printProductTable(p)
		return nil
	},
}

var productsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var req client.UpdateProductRequest
		if cmd.Flags().Changed("name") {
			v, _ := cmd.Flags().GetString("name")
			req.Name = &v
		}
		if cmd.Flags().Changed("description") {
			v, _ := cmd.Flags().GetString("description")
			req.Description = &v
		}
		if cmd.Flags().Changed("active") {
			v, _ := cmd.Flags().GetBool("active")
			req.Active = &v
		}
		if req.Name == nil && req.Description == nil && req.Active == nil {
			return fmt.Errorf("no fields to update; pass at least one flag")
		}

		p, err := api.UpdateProduct(cmd.Context(), args[0], &req)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(p)
		}
		printProductTable(p)
		return nil
	},
}

var productsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		if err := api.DeleteProduct(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("product %s deleted\n", id)
		return nil
	},
}

func init() {
	productsCreateCmd.Flags().StringP("description", "d", "", "product description")
	productsCreateCmd.Flags().StringArrayP("metadata", "m", nil, "metadata (key=value, repeatable)")

	productsListCmd.Flags().Int64("limit", 0, "maximum number of products to list")
	productsListCmd.Flags().Bool("active", false, "filter by active state")

	productsUpdateCmd.Flags().String("name", "", "product name")
	productsUpdateCmd.Flags().StringP("description", "d", "", "product description")
	productsUpdateCmd.Flags().Bool("active", false, "active state")

	productsCmd.AddCommand(productsCreateCmd)
	productsCmd.AddCommand(productsListCmd)
	productsCmd.AddCommand(productsGetCmd)
	productsCmd.AddCommand(productsUpdateCmd)
	productsCmd.AddCommand(productsDeleteCmd)
}
