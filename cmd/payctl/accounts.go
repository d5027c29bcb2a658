package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/groblegark/payctl/internal/client"
)

var accountsCmd = &cobra.Command{
	Use:               "accounts",
	Short:             "Manage connected accounts on the platform",
	PersistentPreRunE: requireProject,
}

var accountsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a connected account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		accountType, _ := cmd.Flags().GetString("type")
		switch accountType {
		case "express", "standard":
		default:
			return fmt.Errorf("invalid account type %q (want express or standard)", accountType)
		}
		email, _ := cmd.Flags().GetString("email")
		country, _ := cmd.Flags().GetString("country")

		a, err := api.CreateAccount(cmd.Context(), &client.CreateAccountRequest{
			Type:    accountType,
			Email:   email,
			Country: country,
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(a)
		}
		printAccountTable(a)
		return nil
	},
}

var accountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List connected accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt64("limit")
		accounts, err := api.ListAccounts(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(accounts)
		}
		printAccountListTable(accounts)
		return nil
	},
}

var accountsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a connected account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := api.GetAccount(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(a)
		}
		printAccountTable(a)
		return nil
	},
}

var accountsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a connected account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		if err := api.DeleteAccount(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("account %s deleted\n", id)
		return nil
	},
}

var accountsOnboardCmd = &cobra.Command{
	Use:   "onboard <id>",
	Short: "Generate a hosted onboarding link for a connected account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		refreshURL, _ := cmd.Flags().GetString("refresh-url")
		returnURL, _ := cmd.Flags().GetString("return-url")
		if refreshURL == "" || returnURL == "" {
			return fmt.Errorf("--refresh-url and --return-url are required")
		}

		link, err := api.OnboardingLink(cmd.Context(), &client.OnboardingLinkRequest{
			AccountID:  args[0],
			RefreshURL: refreshURL,
			ReturnURL:  returnURL,
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(link)
		}
		fmt.Println(link.URL)
		fmt.Printf("expires %s\n", formatTime(link.ExpiresAt))
		return nil
	},
}

func init() {
	accountsCreateCmd.Flags().StringP("type", "t", "express", "account type: express or standard")
	accountsCreateCmd.Flags().String("email", "", "account holder email")
	accountsCreateCmd.Flags().String("country", "", "two-letter country code")

	accountsListCmd.Flags().Int64("limit", 0, "maximum number of accounts to list")

	accountsOnboardCmd.Flags().String("refresh-url", "", "URL the user returns to if the link expires")
	accountsOnboardCmd.Flags().String("return-url", "", "URL the user returns to after onboarding")

	accountsCmd.AddCommand(accountsCreateCmd)
	accountsCmd.AddCommand(accountsListCmd)
	accountsCmd.AddCommand(accountsGetCmd)
	accountsCmd.AddCommand(accountsDeleteCmd)
	accountsCmd.AddCommand(accountsOnboardCmd)
}
