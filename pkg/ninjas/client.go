package ninjas

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultBaseURL is the api-ninjas API base URL.
	DefaultBaseURL = "https://api.api-ninjas.com/v1"
)

// ErrUnexpectedStatus is returned when the upstream API answers with a
// non-success status code.
var ErrUnexpectedStatus = errors.New("ninjas: unexpected upstream status")

// Config configures a Client.
type Config struct {
	APIKey  string
	BaseURL string // defaults to DefaultBaseURL when empty
}

// Client is a minimal HTTP client for the api-ninjas API. All requests
// carry the static X-Api-Key credential header.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	debug      bool
}

// NewClient constructs a new api-ninjas client with sane defaults.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		debug:      os.Getenv("ENV") == "development",
	}
}

// BitcoinInfo fetches the current bitcoin price payload and returns the
// raw JSON body so callers can relay it unmodified.
func (c *Client) BitcoinInfo(ctx context.Context) ([]byte, error) {
	return c.doRequest(ctx, "/bitcoin")
}

// doRequest performs an HTTP GET against the API and returns the response
// body. One attempt only: retry policy is the caller's concern.
func (c *Client) doRequest(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		log.Debug().
			Str("endpoint", c.baseURL+endpoint).
			Int("status_code", resp.StatusCode).
			Msg("[NINJAS] Incoming response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return body, nil
}
