// Package catalog wraps the remote product catalog API: list a bounded
// batch of products, create one product. No retries, no caching; failures
// surface as coded dependency errors with fixed messages so callers can
// show them verbatim.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/helioretail/cartkit/pkg/config"
	pkgerrors "github.com/helioretail/cartkit/pkg/errors"
	"github.com/helioretail/cartkit/pkg/logger"
	"github.com/helioretail/cartkit/pkg/metrics"
)

const (
	// Messages surfaced to the cart on failure. The store copies these
	// into its error field, so they are part of the client's contract.
	MsgFetchFailed  = "failed to fetch products"
	MsgCreateFailed = "failed to create product"

	callListProducts  = "list_products"
	callCreateProduct = "create_product"
)

var errLoggerRequired = errors.New("catalog logger is required")

// Product is the remote catalog's wire representation.
type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
}

// ProductInput is a product payload lacking an id, as accepted by the
// catalog's create endpoint.
type ProductInput struct {
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
}

// Client issues catalog calls with centralized logging, metrics, and
// error mapping.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logg       *logger.Logger
	metrics    *metrics.CatalogMetrics
}

// NewClient validates the configuration and builds a catalog client.
func NewClient(cfg config.CatalogConfig, logg *logger.Logger, m *metrics.CatalogMetrics) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("catalog base url is required")
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logg:       logg,
		metrics:    m,
	}, nil
}

// ListProducts fetches at most limit products from the catalog.
func (c *Client) ListProducts(ctx context.Context, limit int) ([]Product, error) {
	ctx = c.logg.WithField(ctx, "limit", limit)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+"/products?limit="+strconv.Itoa(limit),
		nil,
	)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, MsgFetchFailed)
	}

	var products []Product
	if err := c.do(ctx, req, callListProducts, MsgFetchFailed, &products); err != nil {
		return nil, err
	}

	c.logg.Debug(c.logg.WithField(ctx, "count", len(products)), "catalog products fetched")
	return products, nil
}

// CreateProduct creates a product from the given payload and returns the
// catalog's record of it, id included.
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (Product, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return Product{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, MsgCreateFailed)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/products",
		bytes.NewReader(body),
	)
	if err != nil {
		return Product{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, MsgCreateFailed)
	}
	req.Header.Set("Content-Type", "application/json")

	var product Product
	if err := c.do(ctx, req, callCreateProduct, MsgCreateFailed, &product); err != nil {
		return Product{}, err
	}

	c.logg.Debug(c.logg.WithField(ctx, "product_id", product.ID), "catalog product created")
	return product, nil
}

// do executes the request and decodes a success response into dest,
// recording metrics and mapping every failure mode to a dependency error
// carrying failureMsg.
func (c *Client) do(ctx context.Context, req *http.Request, call, failureMsg string, dest any) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ObserveDuration(call, time.Since(start))
	if err != nil {
		c.metrics.IncFailure(call)
		c.logg.Error(ctx, "catalog call failed", err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, failureMsg)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.metrics.IncFailure(call)
		err := fmt.Errorf("catalog responded with status %d", resp.StatusCode)
		c.logg.Error(ctx, "catalog call failed", err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, failureMsg).
			WithDetails(map[string]any{"status": resp.StatusCode})
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		c.metrics.IncFailure(call)
		c.logg.Error(ctx, "catalog response undecodable", err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, failureMsg)
	}

	c.metrics.IncSuccess(call)
	return nil
}
