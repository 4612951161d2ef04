package price

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultFeedURL is the public CoinGecko simple-price endpoint
const DefaultFeedURL = "https://api.coingecko.com/api/v3/simple/price"

// Quote is a single ETH price reading in both display currencies
type Quote struct {
	USD float64
	INR float64
}

// Client fetches ETH quotes from a CoinGecko-compatible price feed
type Client struct {
	feedURL    string
	httpClient *http.Client
}

// NewClient creates a price feed client. An empty feedURL selects the
// public CoinGecko endpoint.
func NewClient(feedURL string) *Client {
	if feedURL == "" {
		feedURL = DefaultFeedURL
	}
	return &Client{
		feedURL: feedURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// feedResponse mirrors the simple-price payload:
// {"ethereum":{"usd":123.45,"inr":10234.56}}
type feedResponse struct {
	Ethereum struct {
		USD float64 `json:"usd"`
		INR float64 `json:"inr"`
	} `json:"ethereum"`
}

// Fetch retrieves the current ETH quote
func (c *Client) Fetch(ctx context.Context) (Quote, error) {
	q := url.Values{}
	q.Set("ids", "ethereum")
	q.Set("vs_currencies", "usd,inr")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL+"?"+q.Encode(), nil)
	if err != nil {
		return Quote{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Quote{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("price feed returned HTTP %d", resp.StatusCode)
	}

	var body feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Quote{}, fmt.Errorf("failed to parse price feed response: %w", err)
	}

	return Quote{
		USD: body.Ethereum.USD,
		INR: body.Ethereum.INR,
	}, nil
}
