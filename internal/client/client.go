// Package client provides a transport-agnostic interface for the Stripe
// operations payctl exposes and an implementation backed by the official
// Stripe SDK. Every CLI command that talks to the remote platform goes
// through PaymentsClient, so tests can substitute a fake.
package client

import (
	"context"
	"time"
)

// PaymentsClient is the interface payctl commands use to reach the payment
// platform. It is implemented by StripeClient.
type PaymentsClient interface {
	// Products
	CreateProduct(ctx context.Context, req *CreateProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context, req *ListProductsRequest) ([]*Product, error)
	UpdateProduct(ctx context.Context, id string, req *UpdateProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error

	// Prices
	CreatePrice(ctx context.Context, req *CreatePriceRequest) (*Price, error)
	GetPrice(ctx context.Context, id string) (*Price, error)
	ListPrices(ctx context.Context, req *ListPricesRequest) ([]*Price, error)
	DeactivatePrice(ctx context.Context, id string) (*Price, error)

	// Connected accounts
	CreateAccount(ctx context.Context, req *CreateAccountRequest) (*Account, error)
	GetAccount(ctx context.Context, id string) (*Account, error)
	ListAccounts(ctx context.Context, limit int64) ([]*Account, error)
	DeleteAccount(ctx context.Context, id string) error
	OnboardingLink(ctx context.Context, req *OnboardingLinkRequest) (*OnboardingLink, error)

	// Webhook endpoints
	CreateWebhookEndpoint(ctx context.Context, req *CreateWebhookRequest) (*WebhookEndpoint, error)
	GetWebhookEndpoint(ctx context.Context, id string) (*WebhookEndpoint, error)
	ListWebhookEndpoints(ctx context.Context, limit int64) ([]*WebhookEndpoint, error)
	UpdateWebhookEndpoint(ctx context.Context, id string, req *UpdateWebhookRequest) (*WebhookEndpoint, error)
	DeleteWebhookEndpoint(ctx context.Context, id string) error
}

// Product is a catalog product on the platform.
type Product struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Active      bool              `json:"active"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Created     time.Time         `json:"created"`
}

// CreateProductRequest holds the fields for a new product.
type CreateProductRequest struct {
	Name        string
	Description string
	Metadata    map[string]string
}

// ListProductsRequest filters a product listing. Active is a tri-state:
// nil lists everything.
type ListProductsRequest struct {
	Active *bool
	Limit  int64
}

// UpdateProductRequest holds partial product changes; nil fields are left as is.
type UpdateProductRequest struct {
	Name        *string
	Description *string
	Active      *bool
}

// Price attaches an amount and billing cadence to a product. Interval is
// empty for one-time prices.
type Price struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	UnitAmount int64     `json:"unit_amount"`
	Currency   string    `json:"currency"`
	Interval   string    `json:"interval,omitempty"`
	LookupKey  string    `json:"lookup_key,omitempty"`
	Active     bool      `json:"active"`
	Created    time.Time `json:"created"`
}

// CreatePriceRequest holds the fields for a new price. Interval, when set,
// must be one of day, week, month, or year.
type CreatePriceRequest struct {
	ProductID  string
	UnitAmount int64
	Currency   string
	Interval   string
	LookupKey  string
}

// ListPricesRequest filters a price listing, optionally by product.
type ListPricesRequest struct {
	ProductID string
	Limit     int64
}

// Account is a connected account on the platform.
type Account struct {
	ID               string    `json:"id"`
	Type             string    `json:"type"`
	Email            string    `json:"email,omitempty"`
	Country          string    `json:"country,omitempty"`
	ChargesEnabled   bool      `json:"charges_enabled"`
	DetailsSubmitted bool      `json:"details_submitted"`
	Created          time.Time `json:"created"`
}

// CreateAccountRequest holds the fields for a new connected account.
// Type must be express or standard.
type CreateAccountRequest struct {
	Type    string
	Email   string
	Country string
}

// OnboardingLinkRequest asks the platform for a hosted onboarding URL for
// a connected account.
type OnboardingLinkRequest struct {
	AccountID  string
	RefreshURL string
	ReturnURL  string
}

// OnboardingLink is a single-use hosted onboarding URL.
type OnboardingLink struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// WebhookEndpoint is a registered webhook destination. Secret is only
// populated on the create response; the platform never returns it again.
type WebhookEndpoint struct {
	ID            string   `json:"id"`
	URL           string   `json:"url"`
	Status        string   `json:"status"`
	EnabledEvents []string `json:"enabled_events"`
	Secret        string   `json:"secret,omitempty"`
}

// CreateWebhookRequest holds the fields for a new webhook endpoint.
type CreateWebhookRequest struct {
	URL           string
	EnabledEvents []string
}

// UpdateWebhookRequest holds partial webhook endpoint changes.
type UpdateWebhookRequest struct {
	URL           *string
	EnabledEvents []string
	Disabled      *bool
}
