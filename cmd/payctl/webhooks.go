package main

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/groblegark/payctl/internal/client"
	"github.com/groblegark/payctl/internal/model"
)

// validWebhookURL requires an absolute https URL (http allowed for
// localhost development endpoints).
func validWebhookURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid webhook URL %q: %w", raw, err)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid webhook URL %q: missing host", raw)
	}
	switch u.Scheme {
	case "https":
		return nil
	case "http":
		if u.Hostname() == "localhost" || u.Hostname() == "127.0.0.1" {
			return nil
		}
		return fmt.Errorf("webhook URL %q must use https", raw)
	default:
		return fmt.Errorf("invalid webhook URL %q: unsupported scheme %q", raw, u.Scheme)
	}
}

var webhooksCmd = &cobra.Command{
	Use:               "webhooks",
	Short:             "Manage webhook endpoints on the platform",
	PersistentPreRunE: requireProject,
}

var webhooksCreateCmd = &cobra.Command{
	Use:   "create <url>",
	Short: "Register a webhook endpoint",
	Long: `Register a webhook endpoint for the active project. The signing secret
is returned exactly once; --save-secret stores it on the project record.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpointURL := args[0]
		if err := validWebhookURL(endpointURL); err != nil {
			return err
		}
		events, _ := cmd.Flags().GetStringSlice("event")
		if len(events) == 0 {
			return fmt.Errorf("at least one --event is required")
		}
		saveSecret, _ := cmd.Flags().GetBool("save-secret")

		e, err := api.CreateWebhookEndpoint(cmd.Context(), &client.CreateWebhookRequest{
			URL:           endpointURL,
			EnabledEvents: events,
		})
		if err != nil {
			return err
		}

		if saveSecret && e.Secret != "" {
			u := model.ProjectUpdate{WebhookSecret: &e.Secret}
			if _, err := store.UpdateProject(activeProject.Name, u); err != nil {
				return fmt.Errorf("endpoint %s created but saving the secret failed: %w", e.ID, err)
			}
		}

		if jsonOutput {
			return printJSON(e)
		}
		printWebhookTable(e)
		if saveSecret && e.Secret != "" {
			fmt.Printf("signing secret saved to project %q\n", activeProject.Name)
		}
		return nil
	},
}

var webhooksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List webhook endpoints",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt64("limit")
		endpoints, err := api.ListWebhookEndpoints(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(endpoints)
		}
		printWebhookListTable(endpoints)
		return nil
	},
}

var webhooksGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a webhook endpoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := api.GetWebhookEndpoint(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(e)
		}
		printWebhookTable(e)
		return nil
	},
}

var webhooksUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a webhook endpoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var req client.UpdateWebhookRequest
		if cmd.Flags().Changed("url") {
			v, _ := cmd.Flags().GetString("url")
			if err := validWebhookURL(v); err != nil {
				return err
			}
			req.URL = &v
		}
		if cmd.Flags().Changed("event") {
			req.EnabledEvents, _ = cmd.Flags().GetStringSlice("event")
		}
		if cmd.Flags().Changed("disabled") {
			v, _ := cmd.Flags().GetBool("disabled")
			req.Disabled = &v
		}
		if req.URL == nil && len(req.EnabledEvents) == 0 && req.Disabled == nil {
			return fmt.Errorf("no fields to update; pass at least one flag")
		}

		e, err := api.UpdateWebhookEndpoint(cmd.Context(), args[0], &req)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(e)
		}
		printWebhookTable(e)
		return nil
	},
}

var webhooksDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a webhook endpoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		if err := api.DeleteWebhookEndpoint(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("webhook endpoint %s deleted\n", id)
		return nil
	},
}

func init() {
	webhooksCreateCmd.Flags().StringSliceP("event", "e", nil, "event types to subscribe to (repeatable)")
	webhooksCreateCmd.Flags().Bool("save-secret", false, "store the signing secret on the active project")

	webhooksListCmd.Flags().Int64("limit", 0, "maximum number of endpoints to list")

	webhooksUpdateCmd.Flags().String("url", "", "endpoint URL")
	webhooksUpdateCmd.Flags().StringSliceP("event", "e", nil, "event types to subscribe to (repeatable, replaces the full set)")
	webhooksUpdateCmd.Flags().Bool("disabled", false, "disable or re-enable the endpoint")

	webhooksCmd.AddCommand(webhooksCreateCmd)
	webhooksCmd.AddCommand(webhooksListCmd)
	webhooksCmd.AddCommand(webhooksGetCmd)
	webhooksCmd.AddCommand(webhooksUpdateCmd)
	webhooksCmd.AddCommand(webhooksDeleteCmd)
}
