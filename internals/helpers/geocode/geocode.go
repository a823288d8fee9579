package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// The lookup is user-correctable ("not found") or not ("unavailable");
// callers surface the two very differently.
var (
	ErrNotFound    = errors.New("geocode: location not found")
	ErrUnavailable = errors.New("geocode: service unavailable")
)

// Client queries a nominatim-style search endpoint and keeps only the first
// candidate's display_name. Free-text input is discarded in favor of the
// provider's canonical string.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

func New(baseURL, appVersion string) *Client {
	return &Client{
		baseURL:   baseURL,
		userAgent: fmt.Sprintf("eventhub/%s", appVersion),
		http:      &http.Client{Timeout: 5 * time.Second},
	}
}

type candidate struct {
	DisplayName string `json:"display_name"`
}

// Normalize resolves a free-text location to the provider's canonical
// display name. An empty result set is ErrNotFound; transport and decode
// problems are ErrUnavailable.
func (c *Client) Normalize(ctx context.Context, query string) (string, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s&format=json", c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var candidates []candidate
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(candidates) == 0 {
		return "", ErrNotFound
	}
	return candidates[0].DisplayName, nil
}
