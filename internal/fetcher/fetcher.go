package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"bazaarsetu/internal/config"
)

// Client fetches raw price records from the data.gov.in Agmarknet resource.
// One GET per ingestion run; any HTTP or decode failure aborts the run
// before a single row is written.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limit      int
}

// RawRecord is one row as returned by the upstream API. All price fields may
// arrive as JSON strings or numbers, so they are captured as FlexFloat and
// parsed defensively.
type RawRecord struct {
	State       string    `json:"state"`
	District    string    `json:"district"`
	Market      string    `json:"market"`
	Commodity   string    `json:"commodity"`
	Variety     string    `json:"variety"`
	MinPrice    FlexFloat `json:"min_price"`
	MaxPrice    FlexFloat `json:"max_price"`
	ModalPrice  FlexFloat `json:"modal_price"`
	ArrivalDate string    `json:"arrival_date"`
}

type apiResponse struct {
	Total   FlexFloat   `json:"total"`
	Records []RawRecord `json:"records"`
}

// NewClient creates a fetcher client from configuration
func NewClient(cfg config.FetcherConfig) *Client {
	timeout := cfg.GetTimeout()
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.ResourceURL(),
		apiKey:     cfg.APIKey,
		limit:      cfg.RecordLimit,
	}
}

// FetchPrices retrieves up to the configured number of raw records.
func (c *Client) FetchPrices(ctx context.Context) ([]RawRecord, error) {
	params := url.Values{}
	params.Set("api-key", c.apiKey)
	params.Set("format", "json")
	params.Set("limit", fmt.Sprintf("%d", c.limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build price request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("price source unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("price source returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode price response: %w", err)
	}

	log.Printf("Fetcher: total available %d, fetched %d records", int(payload.Total), len(payload.Records))
	return payload.Records, nil
}
