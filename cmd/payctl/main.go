package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/groblegark/payctl/internal/client"
	"github.com/groblegark/payctl/internal/config"
	"github.com/groblegark/payctl/internal/model"
	"github.com/groblegark/payctl/internal/ui"
)

var (
	configPath  string
	projectFlag string
	jsonOutput  bool

	store *config.Store

	// Set by requireProject for command groups that call the platform.
	activeProject *model.Project
	api           client.PaymentsClient
)

var rootCmd = &cobra.Command{
	Use:   "payctl",
	Short: "Manage Stripe project credentials and run product, price, account, and webhook operations",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !ui.ShouldUseColor() {
			ui.ForceNoColor()
		}
		var err error
		store, err = openStore()
		return err
	},
}

// openStore resolves the config document path: --config flag, then
// PAYCTL_CONFIG, then ~/.config/payctl/config.json.
func openStore() (*config.Store, error) {
	path := configPath
	if path == "" {
		path = os.Getenv("PAYCTL_CONFIG")
	}
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolving config path: %w", err)
		}
	}
	return config.NewStore(path), nil
}

// requireProject is the PersistentPreRunE for every command group that
// talks to the platform. It resolves the project named by --project (the
// default project otherwise) and builds the payments client from its
// secret key. PAYCTL_API_BASE redirects API calls to a mock server.
func requireProject(cmd *cobra.Command, args []string) error {
	if !ui.ShouldUseColor() {
		ui.ForceNoColor()
	}
	var err error
	store, err = openStore()
	if err != nil {
		return err
	}

	var p *model.Project
	if projectFlag != "" {
		p, err = store.GetProject(projectFlag)
	} else {
		p, err = store.GetDefaultProject()
	}
	if err != nil {
		return err
	}
	activeProject = p

	if base := os.Getenv("PAYCTL_API_BASE"); base != "" {
		api = client.NewStripeClientWithBackend(p.SecretKey, base)
	} else {
		api = client.NewStripeClient(p.SecretKey)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the config document (default ~/.config/payctl/config.json)")
	rootCmd.PersistentFlags().StringVarP(&projectFlag, "project", "P", "", "project to operate as (default: the default project)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(pricesCmd)
	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(webhooksCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
