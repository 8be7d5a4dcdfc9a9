package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/avelora/storefront/pkg/logger"
)

// FavoritesServiceClient calls the favorites service merge endpoint
// after a successful login. It implements the customer domain
// FavoritesMerger.
type FavoritesServiceClient struct {
	baseURL string
	client  *http.Client
}

// NewFavoritesServiceClient creates a new favorites service client
func NewFavoritesServiceClient(baseURL string) *FavoritesServiceClient {
	logger.Logger.Info().
		Str("base_url", baseURL).
		Msg("Favorites service client initialized")

	return &FavoritesServiceClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout:   5 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Merge folds the guest's favorites into the customer account. The
// favorites service treats an empty or unknown guest id as a no-op, so
// callers do not have to pre-validate.
func (c *FavoritesServiceClient) Merge(ctx context.Context, guestID string, customerID uint) error {
	payload, err := json.Marshal(map[string]interface{}{
		"guest_id":    guestID,
		"customer_id": customerID,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal merge request: %w", err)
	}

	url := c.baseURL + "/internal/favorites/merge"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create merge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach favorites service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("favorites service returned status %d", resp.StatusCode)
	}
	return nil
}
