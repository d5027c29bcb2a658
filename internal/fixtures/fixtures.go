// Package fixtures loads TOML seed files describing products and their
// prices, and applies them against a payments client. Seed files let a
// project's catalog be recreated from a checked-in description instead of
// hand-run create commands.
package fixtures

import (
	"context"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/groblegark/payctl/internal/client"
	"github.com/groblegark/payctl/internal/model"
)

// Document is the root of a seed file.
//
//	[[product]]
//	name = "Pro Plan"
//	description = "Monthly subscription"
//	  [product.metadata]
//	  tier = "pro"
//	  [[product.price]]
//	  amount = 1500
//	  currency = "usd"
//	  interval = "month"
//	  lookup_key = "pro_monthly"
type Document struct {
	Products []Product `toml:"product"`
}

// Product is one product declaration with its nested prices.
type Product struct {
	Name        string            `toml:"name"`
	Description string            `toml:"description"`
	Metadata    map[string]string `toml:"metadata"`
	Prices      []Price           `toml:"price"`
}

// Price is one price declaration. Currency may be empty; Apply falls back
// to the project's default currency. Interval is empty for one-time prices.
type Price struct {
	Amount    int64  `toml:"amount"`
	Currency  string `toml:"currency"`
	Interval  string `toml:"interval"`
	LookupKey string `toml:"lookup_key"`
}

// Report records what Apply created for one product declaration.
type Report struct {
	ProductID string   `json:"product_id"`
	Name      string   `json:"name"`
	PriceIDs  []string `json:"price_ids"`
}

var validIntervals = map[string]bool{"day": true, "week": true, "month": true, "year": true}

// Load reads and validates a seed file.
func Load(path string) (*Document, error) {
	var doc Document
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, fmt.Errorf("loading fixtures %s: %w", path, err)
	}
	if len(doc.Products) == 0 {
		return nil, fmt.Errorf("fixtures %s: no products declared", path)
	}
	for i, p := range doc.Products {
		if p.Name == "" {
			return nil, fmt.Errorf("fixtures %s: product %d has no name", path, i+1)
		}
		for j, pr := range p.Prices {
			if pr.Amount <= 0 {
				return nil, fmt.Errorf("fixtures %s: product %q price %d: amount must be positive", path, p.Name, j+1)
			}
			if pr.Currency != "" && !model.ValidCurrency(pr.Currency) {
				return nil, fmt.Errorf("fixtures %s: product %q price %d: invalid currency %q", path, p.Name, j+1, pr.Currency)
			}
			if pr.Interval != "" && !validIntervals[pr.Interval] {
				return nil, fmt.Errorf("fixtures %s: product %q price %d: invalid interval %q (want day, week, month, or year)", path, p.Name, j+1, pr.Interval)
			}
		}
	}
	return &doc, nil
}

// Apply creates every declared product and its prices, in order. Prices
// without a currency use fallbackCurrency. On the first failure the error
// is returned together with the reports for everything created so far;
// nothing already created is rolled back.
func Apply(ctx context.Context, pc client.PaymentsClient, doc *Document, fallbackCurrency string) ([]Report, error) {
	var reports []Report
	for _, p := range doc.Products {
		created, err := pc.CreateProduct(ctx, &client.CreateProductRequest{
			Name:        p.Name,
			Description: p.Description,
			Metadata:    p.Metadata,
		})
		if err != nil {
			return reports, fmt.Errorf("product %q: %w", p.Name, err)
		}
		report := Report{ProductID: created.ID, Name: created.Name}
		for _, pr := range p.Prices {
			currency := pr.Currency
			if currency == "" {
				currency = fallbackCurrency
			}
			price, err := pc.CreatePrice(ctx, &client.CreatePriceRequest{
				ProductID:  created.ID,
				UnitAmount: pr.Amount,
				Currency:   currency,
				Interval:   pr.Interval,
				LookupKey:  pr.LookupKey,
			})
			if err != nil {
				reports = append(reports, report)
				return reports, fmt.Errorf("product %q price: %w", p.Name, err)
			}
			report.PriceIDs = append(report.PriceIDs, price.ID)
		}
		reports = append(reports, report)
	}
	return reports, nil
}
