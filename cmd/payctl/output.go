package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/groblegark/payctl/internal/client"
	"github.com/groblegark/payctl/internal/model"
	"github.com/groblegark/payctl/internal/ui"
)

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

// --- Projects ---

// maskedProject is the display form of a project: credentials shortened so
// full keys never hit the terminal or logs.
type maskedProject struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Environment     string `json:"environment"`
	PublishableKey  string `json:"publishableKey"`
	SecretKey       string `json:"secretKey"`
	WebhookSecret   string `json:"webhookSecret,omitempty"`
	DefaultCurrency string `json:"defaultCurrency"`
	OrgID           string `json:"orgId,omitempty"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

func maskProject(p *model.Project) maskedProject {
	return maskedProject{
		ID:              p.ID,
		Name:            p.Name,
		Environment:     p.Environment.String(),
		PublishableKey:  p.PublishableKey,
		SecretKey:       ui.MaskSecret(p.SecretKey),
		WebhookSecret:   ui.MaskSecret(p.WebhookSecret),
		DefaultCurrency: p.DefaultCurrency,
		OrgID:           p.OrgID,
		CreatedAt:       formatTime(p.CreatedAt),
		UpdatedAt:       formatTime(p.UpdatedAt),
	}
}

func printProjectTable(p *model.Project, isDefault bool) {
	m := maskProject(p)
	name := m.Name
	if isDefault {
		name += " (default)"
	}
	env := m.Environment
	if p.Environment == model.EnvLive {
		env = ui.RenderWarn(env)
	}
	fmt.Printf("Name:             %s\n", ui.RenderAccent(name))
	fmt.Printf("ID:               %s\n", m.ID)
	fmt.Printf("Environment:      %s\n", env)
	fmt.Printf("Publishable Key:  %s\n", m.PublishableKey)
	fmt.Printf("Secret Key:       %s\n", m.SecretKey)
	if m.WebhookSecret != "" {
		fmt.Printf("Webhook Secret:   %s\n", m.WebhookSecret)
	}
	fmt.Printf("Default Currency: %s\n", m.DefaultCurrency)
	if m.OrgID != "" {
		fmt.Printf("Org ID:           %s\n", m.OrgID)
	}
	fmt.Printf("Created At:       %s\n", m.CreatedAt)
	fmt.Printf("Updated At:       %s\n", m.UpdatedAt)
}

func printProjectListTable(projects []model.Project, defaultName string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  NAME\tENV\tCURRENCY\tPUBLISHABLE KEY\tCREATED")
	for i := range projects {
		p := &projects[i]
		marker := "  "
		if p.Name == defaultName {
			marker = "* "
		}
		fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\t%s\n",
			marker, p.Name, p.Environment, p.DefaultCurrency,
			ui.MaskSecret(p.PublishableKey), formatTime(p.CreatedAt))
	}
	w.Flush()
}

// --- Products ---

func printProductTable(p *client.Product) {
	fmt.Printf("ID:          %s\n", p.ID)
	fmt.Printf("Name:        %s\n", p.Name)
	if p.Description != "" {
		fmt.Printf("Description: %s\n", p.Description)
	}
	fmt.Printf("Active:      %t\n", p.Active)
	if len(p.Metadata) > 0 {
		pairs := make([]string, 0, len(p.Metadata))
		for k, v := range p.Metadata {
			pairs = append(pairs, k+"="+v)
		}
		fmt.Printf("Metadata:    %s\n", strings.Join(pairs, ", "))
	}
	fmt.Printf("Created:     %s\n", formatTime(p.Created))
}

func printProductListTable(products []*client.Product) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tACTIVE\tCREATED")
	for _, p := range products {
		name := p.Name
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", p.ID, name, p.Active, formatTime(p.Created))
	}
	w.Flush()
	fmt.Printf("\n%d products\n", len(products))
}

// --- Prices ---

func formatAmount(amount int64, currency string) string {
	return fmt.Sprintf("%d %s", amount, strings.ToUpper(currency))
}

func printPriceTable(p *client.Price) {
	fmt.Printf("ID:         %s\n", p.ID)
	fmt.Printf("Product:    %s\n", p.ProductID)
	fmt.Printf("Amount:     %s\n", formatAmount(p.UnitAmount, p.Currency))
	if p.Interval != "" {
		fmt.Printf("Interval:   %s\n", p.Interval)
	}
	if p.LookupKey != "" {
		fmt.Printf("Lookup Key: %s\n", p.LookupKey)
	}
	fmt.Printf("Active:     %t\n", p.Active)
	fmt.Printf("Created:    %s\n", formatTime(p.Created))
}

func printPriceListTable(prices []*client.Price) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRODUCT\tAMOUNT\tINTERVAL\tACTIVE")
	for _, p := range prices {
		interval := p.Interval
		if interval == "" {
			interval = "one-time"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n",
			p.ID, p.ProductID, formatAmount(p.UnitAmount, p.Currency), interval, p.Active)
	}
	w.Flush()
	fmt.Printf("\n%d prices\n", len(prices))
}

// --- Accounts ---

func printAccountTable(a *client.Account) {
	fmt.Printf("ID:                %s\n", a.ID)
	fmt.Printf("Type:              %s\n", a.Type)
	if a.Email != "" {
		fmt.Printf("Email:             %s\n", a.Email)
	}
	if a.Country != "" {
		fmt.Printf("Country:           %s\n", a.Country)
	}
	fmt.Printf("Charges Enabled:   %t\n", a.ChargesEnabled)
	fmt.Printf("Details Submitted: %t\n", a.DetailsSubmitted)
	fmt.Printf("Created:           %s\n", formatTime(a.Created))
}

func printAccountListTable(accounts []*client.Account) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tEMAIL\tCHARGES\tDETAILS")
	for _, a := range accounts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%t\n",
			a.ID, a.Type, a.Email, a.ChargesEnabled, a.DetailsSubmitted)
	}
	w.Flush()
	fmt.Printf("\n%d accounts\n", len(accounts))
}

// --- Webhook endpoints ---

func printWebhookTable(e *client.WebhookEndpoint) {
	fmt.Printf("ID:     %s\n", e.ID)
	fmt.Printf("URL:    %s\n", e.URL)
	fmt.Printf("Status: %s\n", e.Status)
	fmt.Printf("Events: %s\n", strings.Join(e.EnabledEvents, ", "))
	if e.Secret != "" {
		fmt.Printf("Secret: %s\n", e.Secret)
		fmt.Println(ui.RenderMuted("The signing secret is shown only once; store it now."))
	}
}

func printWebhookListTable(endpoints []*client.WebhookEndpoint) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tURL\tSTATUS\tEVENTS")
	for _, e := range endpoints {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", e.ID, e.URL, e.Status, len(e.EnabledEvents))
	}
	w.Flush()
	fmt.Printf("\n%d webhook endpoints\n", len(endpoints))
}
