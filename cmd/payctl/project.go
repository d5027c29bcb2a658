package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/groblegark/payctl/internal/model"
	"github.com/groblegark/payctl/internal/ui"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage local project credential profiles",
}

var projectAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new project",
	Long: `Add a new project (a named credential bundle) to the local config.

Keys not supplied as flags are collected interactively; the secret key is
read without echo. The first project added becomes the default.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		env, _ := cmd.Flags().GetString("environment")
		pubKey, _ := cmd.Flags().GetString("publishable-key")
		secKey, _ := cmd.Flags().GetString("secret-key")
		webhookSecret, _ := cmd.Flags().GetString("webhook-secret")
		currency, _ := cmd.Flags().GetString("currency")
		orgID, _ := cmd.Flags().GetString("org")

		var err error
		if pubKey == "" && ui.IsInteractive() {
			if pubKey, err = ui.Prompt("Publishable key (pk_...)", ""); err != nil {
				return err
			}
		}
		if secKey == "" && ui.IsInteractive() {
			if secKey, err = ui.PromptSecret("Secret key (sk_...)"); err != nil {
				return err
			}
		}
		if env == "" {
			// Infer the environment from the secret key mode.
			env = model.KeyEnvironment(secKey).String()
		}

		candidate := model.Project{
			Name:            name,
			Environment:     model.Environment(env),
			PublishableKey:  pubKey,
			SecretKey:       secKey,
			WebhookSecret:   webhookSecret,
			DefaultCurrency: strings.ToLower(currency),
			OrgID:           orgID,
		}
		if err := model.ValidateProjectInput(&candidate); err != nil {
			return err
		}

		p, err := store.AddProject(candidate)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(maskProject(p))
		}
		defaultName := ""
		if def, err := store.GetDefaultProject(); err == nil {
			defaultName = def.Name
		}
		fmt.Printf("project %q added\n", p.Name)
		printProjectTable(p, p.Name == defaultName)
		return nil
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all projects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := store.Load()
		if err != nil {
			return err
		}
		if jsonOutput {
			masked := make([]maskedProject, len(doc.Projects))
			for i := range doc.Projects {
				masked[i] = maskProject(&doc.Projects[i])
			}
			return printJSON(masked)
		}
		if len(doc.Projects) == 0 {
			fmt.Println("no projects configured")
			return nil
		}
		printProjectListTable(doc.Projects, doc.DefaultProject)
		return nil
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show [<name>]",
	Short: "Show details for a project (defaults to the default project)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			p   *model.Project
			err error
		)
		if len(args) == 1 {
			p, err = store.GetProject(args[0])
		} else {
			p, err = store.GetDefaultProject()
		}
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(maskProject(p))
		}
		isDefault := false
		if def, derr := store.GetDefaultProject(); derr == nil && def.Name == p.Name {
			isDefault = true
		}
		printProjectTable(p, isDefault)
		return nil
	},
}

var projectUpdateCmd = &cobra.Command{
	Use:   "update <name>",
	Short: "Update a project's mutable fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		var u model.ProjectUpdate
		if cmd.Flags().Changed("environment") {
			v, _ := cmd.Flags().GetString("environment")
			env := model.Environment(v)
			if !env.IsValid() {
				return fmt.Errorf("invalid environment %q (want test or live)", v)
			}
			u.Environment = &env
		}
		if cmd.Flags().Changed("publishable-key") {
			v, _ := cmd.Flags().GetString("publishable-key")
			if !model.ValidPublishableKey(v) {
				return fmt.Errorf("invalid publishable key (must start with pk_test_ or pk_live_)")
			}
			u.PublishableKey = &v
		}
		if cmd.Flags().Changed("secret-key") {
			v, _ := cmd.Flags().GetString("secret-key")
			if !model.ValidSecretKey(v) {
				return fmt.Errorf("invalid secret key (must start with sk_test_, sk_live_, rk_test_, or rk_live_)")
			}
			u.SecretKey = &v
		}
		if cmd.Flags().Changed("webhook-secret") {
			v, _ := cmd.Flags().GetString("webhook-secret")
			u.WebhookSecret = &v
		}
		if cmd.Flags().Changed("currency") {
			v, _ := cmd.Flags().GetString("currency")
			if !model.ValidCurrency(v) {
				return fmt.Errorf("invalid currency %q (want a 3-letter code like usd)", v)
			}
			v = strings.ToLower(v)
			u.DefaultCurrency = &v
		}
		if cmd.Flags().Changed("org") {
			v, _ := cmd.Flags().GetString("org")
			u.OrgID = &v
		}
		if u.IsZero() {
			return fmt.Errorf("no fields to update; pass at least one flag")
		}

		p, err := store.UpdateProject(name, u)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(maskProject(p))
		}
		fmt.Printf("project %q updated\n", p.Name)
		return nil
	},
}

var projectRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := store.DeleteProject(name); err != nil {
			return err
		}
		fmt.Printf("project %q removed\n", name)
		return nil
	},
}

var projectUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the default project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := store.SetDefaultProject(name); err != nil {
			return err
		}
		fmt.Printf("default project set to %q\n", name)
		return nil
	},
}

var projectDefaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Show the default project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := store.GetDefaultProject()
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(maskProject(p))
		}
		printProjectTable(p, true)
		return nil
	},
}

func init() {
	addFlags := projectAddCmd.Flags()
	addFlags.StringP("environment", "e", "", "project environment: test or live (default: inferred from the secret key)")
	addFlags.String("publishable-key", "", "publishable API key (pk_...)")
	addFlags.String("secret-key", "", "secret API key (sk_...)")
	addFlags.String("webhook-secret", "", "webhook signing secret (whsec_...)")
	addFlags.StringP("currency", "c", "usd", "default currency (3-letter code)")
	addFlags.String("org", "", "organization ID")

	updateFlags := projectUpdateCmd.Flags()
	updateFlags.StringP("environment", "e", "", "project environment: test or live")
	updateFlags.String("publishable-key", "", "publishable API key (pk_...)")
	updateFlags.String("secret-key", "", "secret API key (sk_...)")
	updateFlags.String("webhook-secret", "", "webhook signing secret (empty string clears it)")
	updateFlags.StringP("currency", "c", "", "default currency (3-letter code)")
	updateFlags.String("org", "", "organization ID (empty string clears it)")

	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectUpdateCmd)
	projectCmd.AddCommand(projectRemoveCmd)
	projectCmd.AddCommand(projectUseCmd)
	projectCmd.AddCommand(projectDefaultCmd)
}
