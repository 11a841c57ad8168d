package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/strompris/strompris/internal/pkg/model"
	"go.uber.org/zap"
)

type priceUnitsParameters struct {
	Currency   string  `json:"currency"`
	EnergyUnit string  `json:"energyUnit"`
	VATRate    float64 `json:"vatRate"`
}

type segmentOptionsParameters struct {
	SegmentSize int `json:"segmentSize"`
}

type adviceRequest struct {
	PriceUnitsParameters     priceUnitsParameters     `json:"priceUnitsParameters"`
	SegmentOptionsParameters segmentOptionsParameters `json:"segmentOptionsParameters"`
}

// ForecastClient fetches charging advice from a ladeassistent-style API.
// Every call hits the provider; forecast responses are never cached.
type ForecastClient struct {
	baseURL    string
	origin     string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewForecastClient(baseURL string, httpClient *http.Client) *ForecastClient {
	origin := ""
	if u, err := url.Parse(baseURL); err == nil {
		origin = u.Scheme + "://" + u.Host
	}
	return &ForecastClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		origin:     origin,
		httpClient: httpClient,
		logger:     zap.L(),
	}
}

// Advice requests the forecast for one zone with the fixed configuration:
// NOK, kWh, VAT rate factor 1 and 6 hour segments.
func (c *ForecastClient) Advice(ctx context.Context, zone string) (*model.ForecastResponse, error) {
	payload := adviceRequest{
		PriceUnitsParameters: priceUnitsParameters{
			Currency:   "NOK",
			EnergyUnit: "kWh",
			VATRate:    1,
		},
		SegmentOptionsParameters: segmentOptionsParameters{
			SegmentSize: 6,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s/advice", c.baseURL, zone)
	c.logger.Info("fetching forecast", zap.String("url", endpoint))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "*/*")
	if c.origin != "" {
		req.Header.Set("Origin", c.origin)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		c.logger.Error("forecast provider returned non-OK status",
			zap.String("url", endpoint), zap.Int("status", res.StatusCode))
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, res.StatusCode)
	}

	var out model.ForecastResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding forecast response: %w", err)
	}
	return &out, nil
}
