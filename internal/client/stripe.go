package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	stripe "github.com/stripe/stripe-go/v81"
	stripeclient "github.com/stripe/stripe-go/v81/client"
)

// StripeClient implements PaymentsClient over the official Stripe SDK.
// All requests are authenticated with the secret key of the project the
// client was built from.
type StripeClient struct {
	sc *stripeclient.API
}

// NewStripeClient creates a client authenticated with the given secret key.
func NewStripeClient(secretKey string) *StripeClient {
	sc := &stripeclient.API{}
	sc.Init(secretKey, nil)
	return &StripeClient{sc: sc}
}

// NewStripeClientWithBackend creates a client whose API calls go to baseURL
// instead of the live platform. Used for tests and local mock servers.
func NewStripeClientWithBackend(secretKey, baseURL string) *StripeClient {
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL: stripe.String(baseURL),
	})
	sc := &stripeclient.API{}
	sc.Init(secretKey, &stripe.Backends{API: backend, Connect: backend, Uploads: backend})
	return &StripeClient{sc: sc}
}

// apiErr unwraps the SDK's error type into a readable message; the raw
// Error() form is a JSON blob not fit for terminal output.
func apiErr(op string, err error) error {
	var sErr *stripe.Error
	if errors.As(err, &sErr) && sErr.Msg != "" {
		return fmt.Errorf("%s: %s", op, sErr.Msg)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// --- Products ---

func (c *StripeClient) CreateProduct(ctx context.Context, req *CreateProductRequest) (*Product, error) {
	params := &stripe.ProductParams{
		Params: stripe.Params{Context: ctx},
		Name:   stripe.String(req.Name),
	}
	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	p, err := c.sc.Products.New(params)
	if err != nil {
		return nil, apiErr("creating product", err)
	}
	return productFrom(p), nil
}

func (c *StripeClient) GetProduct(ctx context.Context, id string) (*Product, error) {
	p, err := c.sc.Products.Get(id, &stripe.ProductParams{Params: stripe.Params{Context: ctx}})
	if err != nil {
		return nil, apiErr("fetching product "+id, err)
	}
	return productFrom(p), nil
}

func (c *StripeClient) ListProducts(ctx context.Context, req *ListProductsRequest) ([]*Product, error) {
	params := &stripe.ProductListParams{
		ListParams: stripe.ListParams{Context: ctx},
	}
	if req.Limit > 0 {
		params.Limit = stripe.Int64(req.Limit)
	}
	if req.Active != nil {
		params.Active = stripe.Bool(*req.Active)
	}
	var out []*Product
	iter := c.sc.Products.List(params)
	for iter.Next() {
		out = append(out, productFrom(iter.Product()))
	}
	if err := iter.Err(); err != nil {
		return nil, apiErr("listing products", err)
	}
	return out, nil
}

func (c *StripeClient) UpdateProduct(ctx context.Context, id string, req *UpdateProductRequest) (*Product, error) {
	params := &stripe.ProductParams{Params: stripe.Params{Context: ctx}}
	if req.Name != nil {
		params.Name = stripe.String(*req.Name)
	}
	if req.Description != nil {
		params.Description = stripe.String(*req.Description)
	}
	if req.Active != nil {
		params.Active = stripe.Bool(*req.Active)
	}
	p, err := c.sc.Products.Update(id, params)
	if err != nil {
		return nil, apiErr("updating product "+id, err)
	}
	return productFrom(p), nil
}

func (c *StripeClient) DeleteProduct(ctx context.Context, id string) error {
	if _, err := c.sc.Products.Del(id, &stripe.ProductParams{Params: stripe.Params{Context: ctx}}); err != nil {
		return apiErr("deleting product "+id, err)
	}
	return nil
}

func productFrom(p *stripe.Product) *Product {
	return &Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Active:      p.Active,
		Metadata:    p.Metadata,
		Created:     time.Unix(p.Created, 0).UTC(),
	}
}

// --- Prices ---

func (c *StripeClient) CreatePrice(ctx context.Context, req *CreatePriceRequest) (*Price, error) {
	params := &stripe.PriceParams{
		Params:     stripe.Params{Context: ctx},
		Product:    stripe.String(req.ProductID),
		UnitAmount: stripe.Int64(req.UnitAmount),
		Currency:   stripe.String(req.Currency),
	}
	if req.Interval != "" {
		params.Recurring = &stripe.PriceRecurringParams{Interval: stripe.String(req.Interval)}
	}
	if req.LookupKey != "" {
		params.LookupKey = stripe.String(req.LookupKey)
	}
	p, err := c.sc.Prices.New(params)
	if err != nil {
		return nil, apiErr("creating price", err)
	}
	return priceFrom(p), nil
}

func (c *StripeClient) GetPrice(ctx context.Context, id string) (*Price, error) {
	p, err := c.sc.Prices.Get(id, &stripe.PriceParams{Params: stripe.Params{Context: ctx}})
	if err != nil {
		return nil, apiErr("fetching price "+id, err)
	}
	return priceFrom(p), nil
}

func (c *StripeClient) ListPrices(ctx context.Context, req *ListPricesRequest) ([]*Price, error) {
	params := &stripe.PriceListParams{
		ListParams: stripe.ListParams{Context: ctx},
	}
	if req.ProductID != "" {
		params.Product = stripe.String(req.ProductID)
	}
	if req.Limit > 0 {
		params.Limit = stripe.Int64(req.Limit)
	}
	var out []*Price
	iter := c.sc.Prices.List(params)
	for iter.Next() {
		out = append(out, priceFrom(iter.Price()))
	}
	if err := iter.Err(); err != nil {
		return nil, apiErr("listing prices", err)
	}
	return out, nil
}

// DeactivatePrice marks a price inactive. The platform does not allow
// deleting prices, so this is the closest lifecycle end state.
func (c *StripeClient) DeactivatePrice(ctx context.Context, id string) (*Price, error) {
	params := &stripe.PriceParams{
		Params: stripe.Params{Context: ctx},
		Active: stripe.Bool(false),
	}
	p, err := c.sc.Prices.Update(id, params)
	if err != nil {
		return nil, apiErr("deactivating price "+id, err)
	}
	return priceFrom(p), nil
}

func priceFrom(p *stripe.Price) *Price {
	out := &Price{
		ID:         p.ID,
		UnitAmount: p.UnitAmount,
		Currency:   string(p.Currency),
		LookupKey:  p.LookupKey,
		Active:     p.Active,
		Created:    time.Unix(p.Created, 0).UTC(),
	}
	if p.Product != nil {
		out.ProductID = p.Product.ID
	}
	if p.Recurring != nil {
		out.Interval = string(p.Recurring.Interval)
	}
	return out
}

// --- Connected accounts ---

func (c *StripeClient) CreateAccount(ctx context.Context, req *CreateAccountRequest) (*Account, error) {
	params := &stripe.AccountParams{
		Params: stripe.Params{Context: ctx},
		Type:   stripe.String(req.Type),
	}
	if req.Email != "" {
		params.Email = stripe.String(req.Email)
	}
	if req.Country != "" {
		params.Country = stripe.String(req.Country)
	}
	a, err := c.sc.Accounts.New(params)
	if err != nil {
		return nil, apiErr("creating account", err)
	}
	return accountFrom(a), nil
}

func (c *StripeClient) GetAccount(ctx context.Context, id string) (*Account, error) {
	a, err := c.sc.Accounts.GetByID(id, &stripe.AccountParams{Params: stripe.Params{Context: ctx}})
	if err != nil {
		return nil, apiErr("fetching account "+id, err)
	}
	return accountFrom(a), nil
}

func (c *StripeClient) ListAccounts(ctx context.Context, limit int64) ([]*Account, error) {
	params := &stripe.AccountListParams{
		ListParams: stripe.ListParams{Context: ctx},
	}
	if limit > 0 {
		params.Limit = stripe.Int64(limit)
	}
	var out []*Account
	iter := c.sc.Accounts.List(params)
	for iter.Next() {
		out = append(out, accountFrom(iter.Account()))
	}
	if err := iter.Err(); err != nil {
		return nil, apiErr("listing accounts", err)
	}
	return out, nil
}

func (c *StripeClient) DeleteAccount(ctx context.Context, id string) error {
	if _, err := c.sc.Accounts.Del(id, &stripe.AccountParams{Params: stripe.Params{Context: ctx}}); err != nil {
		return apiErr("deleting account "+id, err)
	}
	return nil
}

// OnboardingLink asks the platform for a hosted onboarding URL. The link
// is single-use and expires; generation logic is entirely platform-side.
func (c *StripeClient) OnboardingLink(ctx context.Context, req *OnboardingLinkRequest) (*OnboardingLink, error) {
	params := &stripe.AccountLinkParams{
		Params:     stripe.Params{Context: ctx},
		Account:    stripe.String(req.AccountID),
		RefreshURL: stripe.String(req.RefreshURL),
		ReturnURL:  stripe.String(req.ReturnURL),
		Type:       stripe.String("account_onboarding"),
	}
	link, err := c.sc.AccountLinks.New(params)
	if err != nil {
		return nil, apiErr("creating onboarding link for "+req.AccountID, err)
	}
	return &OnboardingLink{
		URL:       link.URL,
		ExpiresAt: time.Unix(link.ExpiresAt, 0).UTC(),
	}, nil
}

func accountFrom(a *stripe.Account) *Account {
	return &Account{
		ID:               a.ID,
		Type:             string(a.Type),
		Email:            a.Email,
		Country:          a.Country,
		ChargesEnabled:   a.ChargesEnabled,
		DetailsSubmitted: a.DetailsSubmitted,
		Created:          time.Unix(a.Created, 0).UTC(),
	}
}

// --- Webhook endpoints ---

func (c *StripeClient) CreateWebhookEndpoint(ctx context.Context, req *CreateWebhookRequest) (*WebhookEndpoint, error) {
	params := &stripe.WebhookEndpointParams{
		Params:        stripe.Params{Context: ctx},
		URL:           stripe.String(req.URL),
		EnabledEvents: stripe.StringSlice(req.EnabledEvents),
	}
	e, err := c.sc.WebhookEndpoints.New(params)
	if err != nil {
		return nil, apiErr("creating webhook endpoint", err)
	}
	return webhookFrom(e), nil
}

func (c *StripeClient) GetWebhookEndpoint(ctx context.Context, id string) (*WebhookEndpoint, error) {
	e, err := c.sc.WebhookEndpoints.Get(id, &stripe.WebhookEndpointParams{Params: stripe.Params{Context: ctx}})
	if err != nil {
		return nil, apiErr("fetching webhook endpoint "+id, err)
	}
	return webhookFrom(e), nil
}

func (c *StripeClient) ListWebhookEndpoints(ctx context.Context, limit int64) ([]*WebhookEndpoint, error) {
	params := &stripe.WebhookEndpointListParams{
		ListParams: stripe.ListParams{Context: ctx},
	}
	if limit > 0 {
		params.Limit = stripe.Int64(limit)
	}
	var out []*WebhookEndpoint
	iter := c.sc.WebhookEndpoints.List(params)
	for iter.Next() {
		out = append(out, webhookFrom(iter.WebhookEndpoint()))
	}
	if err := iter.Err(); err != nil {
		return nil, apiErr("listing webhook endpoints", err)
	}
	return out, nil
}

func (c *StripeClient) UpdateWebhookEndpoint(ctx context.Context, id string, req *UpdateWebhookRequest) (*WebhookEndpoint, error) {
	params := &stripe.WebhookEndpointParams{Params: stripe.Params{Context: ctx}}
	if req.URL != nil {
		params.URL = stripe.String(*req.URL)
	}
	if len(req.EnabledEvents) > 0 {
		params.EnabledEvents = stripe.StringSlice(req.EnabledEvents)
	}
	if req.Disabled != nil {
		params.Disabled = stripe.Bool(*req.Disabled)
	}
	e, err := c.sc.WebhookEndpoints.Update(id, params)
	if err != nil {
		return nil, apiErr("updating webhook endpoint "+id, err)
	}
	return webhookFrom(e), nil
}

func (c *StripeClient) DeleteWebhookEndpoint(ctx context.Context, id string) error {
	if _, err := c.sc.WebhookEndpoints.Del(id, &stripe.WebhookEndpointParams{Params: stripe.Params{Context: ctx}}); err != nil {
		return apiErr("deleting webhook endpoint "+id, err)
	}
	return nil
}

func webhookFrom(e *stripe.WebhookEndpoint) *WebhookEndpoint {
	return &WebhookEndpoint{
		ID:            e.ID,
		URL:           e.URL,
		Status:        e.Status,
		EnabledEvents: e.EnabledEvents,
		Secret:        e.Secret,
	}
}
