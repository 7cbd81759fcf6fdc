package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"offer-proxy/internal/offers"
)

// Client talks to the offer feed: a GET endpoint taking the visitor's ip and
// user_agent plus ctype=0 (all conversion types), authenticated with a
// bearer credential.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// Configured reports whether a feed credential is present.
func (c *Client) Configured() bool { return c.apiKey != "" }

type feedResponse struct {
	Success bool              `json:"success"`
	Error   json.RawMessage   `json:"error"`
	Offers  []offers.RawOffer `json:"offers"`
}

// Fetch requests offers for one visitor. Transport failures return a plain
// error; a non-2xx status or an explicit success=false returns an *APIError
// carrying the status to relay (the feed's own when >= 400, 502 otherwise)
// and the flattened error payload. A body that fails to parse is reported by
// status alone.
func (c *Client) Fetch(ctx context.Context, ip, userAgent string) ([]offers.RawOffer, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse feed URL: %w", err)
	}
	q := u.Query()
	q.Set("ip", ip)
	q.Set("user_agent", userAgent)
	q.Set("ctype", "0")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("offer feed request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read feed response: %w", err)
	}

	var fr feedResponse
	if err := json.Unmarshal(body, &fr); err != nil {
		return nil, &APIError{
			StatusCode: relayStatus(resp.StatusCode),
			Message:    fmt.Sprintf("offer feed returned status %d", resp.StatusCode),
		}
	}
	if resp.StatusCode >= 400 || !fr.Success {
		return nil, &APIError{
			StatusCode: relayStatus(resp.StatusCode),
			Message:    FormatError(fr.Error),
		}
	}
	return fr.Offers, nil
}

func relayStatus(code int) int {
	if code >= 400 {
		return code
	}
	return http.StatusBadGateway
}
