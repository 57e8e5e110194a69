package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/trailheadsupply/storefront/pkg/config"
	pkgerrors "github.com/trailheadsupply/storefront/pkg/errors"
	"github.com/trailheadsupply/storefront/pkg/logger"
	"github.com/trailheadsupply/storefront/pkg/types"
)

var errCheckoutURLRequired = errors.New("checkout url is required")

// Client talks to the remote order service: a single checkout endpoint and
// an optional product catalog feed. The endpoint itself is opaque; the
// client only shapes requests and decodes outcomes.
type Client struct {
	http           *http.Client
	checkoutURL    string
	catalogBaseURL string
	logg           *logger.Logger
}

// NewClient validates the configured endpoints and builds a client.
func NewClient(cfg config.ServicesConfig, logg *logger.Logger) (*Client, error) {
	checkoutURL := strings.TrimSpace(cfg.CheckoutURL)
	if checkoutURL == "" {
		return nil, errCheckoutURLRequired
	}
	return &Client{
		http:           &http.Client{Timeout: cfg.HTTPTimeout},
		checkoutURL:    checkoutURL,
		catalogBaseURL: strings.TrimRight(strings.TrimSpace(cfg.CatalogBaseURL), "/"),
		logg:           logg,
	}, nil
}

// CheckoutURL reports the endpoint orders are posted to.
func (c *Client) CheckoutURL() string {
	if c == nil {
		return ""
	}
	return c.checkoutURL
}

// Checkout posts the order as JSON. A 2xx answer yields the decoded
// confirmation with the raw body preserved; a non-2xx answer yields a
// ServiceError carrying the verbatim payload. No retries are attempted.
func (c *Client) Checkout(ctx context.Context, order types.OrderSubmission) (*types.OrderConfirmation, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode order")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.checkoutURL, bytes.NewReader(body))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build checkout request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "post order")
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read checkout response")
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		if !json.Valid(payload) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency,
				fmt.Errorf("status %d", res.StatusCode), "checkout response is not json")
		}
		return nil, pkgerrors.NewServiceError(res.StatusCode, json.RawMessage(payload))
	}

	var confirmation types.OrderConfirmation
	if err := json.Unmarshal(payload, &confirmation); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode checkout response")
	}
	confirmation.Body = json.RawMessage(payload)

	if c.logg != nil {
		c.logg.Info(c.logg.WithOrderID(ctx, confirmation.OrderID), "order submitted")
	}
	return &confirmation, nil
}

// Products fetches the catalog feed for a category.
func (c *Client) Products(ctx context.Context, category string) ([]types.Product, error) {
	if c.catalogBaseURL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog base url not configured")
	}
	if strings.TrimSpace(category) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}

	url := fmt.Sprintf("%s/%s.json", c.catalogBaseURL, category)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build catalog request")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch catalog")
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read catalog response")
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		if !json.Valid(payload) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency,
				fmt.Errorf("status %d", res.StatusCode), "catalog response is not json")
		}
		return nil, pkgerrors.NewServiceError(res.StatusCode, json.RawMessage(payload))
	}

	var products []types.Product
	if err := json.Unmarshal(payload, &products); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode catalog response")
	}
	return products, nil
}

// FindProductByID scans the category feed for the matching product.
func (c *Client) FindProductByID(ctx context.Context, category, id string) (*types.Product, error) {
	products, err := c.Products(ctx, category)
	if err != nil {
		return nil, err
	}
	for _, product := range products {
		if product.ID == id {
			return &product, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}
