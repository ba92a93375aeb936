// Package exchangerate is a client for the exchangerate-api.com v6 "latest"
// endpoint.
package exchangerate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public v6 API root.
const DefaultBaseURL = "https://v6.exchangerate-api.com/v6/"

// LatestRates is a parsed successful response.
type LatestRates struct {
	Base  string
	Rates map[string]float64
	// LastUpdate is zero when the provider omitted time_last_update_unix.
	LastUpdate time.Time
}

// Client fetches rate tables from the provider.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

type latestResponse struct {
	Result          string             `json:"result"`
	ErrorType       string             `json:"error-type"`
	BaseCode        string             `json:"base_code"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
	TimeLastUpdate  *int64             `json:"time_last_update_unix"`
}

// NewClient creates a client for baseURL. A zero timeout leaves requests
// bounded only by the caller's context and the transport defaults.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Latest fetches the rate table for base using apiKey.
func (c *Client) Latest(ctx context.Context, apiKey, base string) (*LatestRates, error) {
	endpoint := fmt.Sprintf("%s/%s/latest/%s", c.baseURL, url.PathEscape(apiKey), url.PathEscape(base))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrNetwork, err)
	}

	var payload latestResponse
	decodeErr := json.Unmarshal(body, &payload)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		kind := KindUnknown
		if decodeErr == nil && payload.ErrorType != "" {
			kind = ErrorKind(payload.ErrorType)
		}
		return nil, &ProviderError{Kind: kind, StatusCode: resp.StatusCode}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, decodeErr)
	}
	if payload.Result != "success" {
		kind := ErrorKind(payload.ErrorType)
		if kind == "" {
			kind = KindUnknown
		}
		return nil, &ProviderError{Kind: kind, StatusCode: resp.StatusCode}
	}
	if len(payload.ConversionRates) == 0 {
		return nil, fmt.Errorf("%w: no conversion_rates", ErrMalformedResponse)
	}

	latest := &LatestRates{
		Base:  base,
		Rates: payload.ConversionRates,
	}
	if payload.BaseCode != "" {
		latest.Base = payload.BaseCode
	}
	if payload.TimeLastUpdate != nil {
		latest.LastUpdate = time.Unix(*payload.TimeLastUpdate, 0)
	}
	return latest, nil
}
