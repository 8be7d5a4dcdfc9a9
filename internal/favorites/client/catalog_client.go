package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/avelora/storefront/pkg/logger"
)

// CatalogServiceClient checks product existence against the catalog
// service over HTTP. It implements the favorites domain ProductChecker.
type CatalogServiceClient struct {
	baseURL string
	client  *http.Client
}

// NewCatalogServiceClient creates a new catalog service client
func NewCatalogServiceClient(baseURL string) *CatalogServiceClient {
	logger.Logger.Info().
		Str("base_url", baseURL).
		Msg("Catalog service client initialized")

	return &CatalogServiceClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout:   3 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Exists reports whether a product exists. A 404 is a definitive "no";
// any other failure propagates so the caller can surface a retryable
// error instead of silently rejecting the favorite.
func (c *CatalogServiceClient) Exists(ctx context.Context, productID uint) (bool, error) {
	url := fmt.Sprintf("%s/api/products/%d", c.baseURL, productID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create product request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to reach catalog service: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("catalog service returned status %d", resp.StatusCode)
	}
}
