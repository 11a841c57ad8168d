package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/strompris/strompris/internal/pkg/cache"
	"github.com/strompris/strompris/internal/pkg/model"
	"go.uber.org/zap"
)

var (
	// ErrNoData means the provider has not published prices for the
	// requested day yet. Not a failure.
	ErrNoData = errors.New("no price data published")
	// ErrUpstream is any other non-OK provider response.
	ErrUpstream = errors.New("upstream request failed")
)

// PriceClient fetches day-ahead prices from a hvakosterstrommen-style API.
// Responses are cached by full URL for the lifetime of the process, so a
// repeated (date, zone) request is served from the snapshot taken at the
// first fetch. No retries.
type PriceClient struct {
	baseURL    string
	httpClient *http.Client
	cache      cache.Cache
	logger     *zap.Logger
}

func NewPriceClient(baseURL string, httpClient *http.Client, responseCache cache.Cache) *PriceClient {
	return &PriceClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		cache:      responseCache,
		logger:     zap.L(),
	}
}

// Prices returns the raw provider records for one date and zone. The date
// must already be validated to the YYYY-MM-DD shape.
func (c *PriceClient) Prices(ctx context.Context, date, zone string) (model.ExternalPriceItems, error) {
	parts := strings.SplitN(date, "-", 3)
	url := fmt.Sprintf("%s/%s/%s-%s_%s.json", c.baseURL, parts[0], parts[1], parts[2], zone)

	if body, ok := c.cache.Get(ctx, url); ok {
		c.logger.Debug("price response served from cache", zap.String("url", url))
		return decodePrices(body)
	}

	c.logger.Info("fetching prices", zap.String("url", url))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, ErrNoData
	}
	if res.StatusCode != http.StatusOK {
		c.logger.Error("price provider returned non-OK status",
			zap.String("url", url), zap.Int("status", res.StatusCode))
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	items, err := decodePrices(body)
	if err != nil {
		return nil, err
	}
	c.cache.Set(ctx, url, body)
	return items, nil
}

func decodePrices(body []byte) (model.ExternalPriceItems, error) {
	var items model.ExternalPriceItems
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("decoding price response: %w", err)
	}
	return items, nil
}
