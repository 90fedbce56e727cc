package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// GoogleCSEProvider implements the Google Custom Search JSON API.
type GoogleCSEProvider struct {
	apiURL   string
	apiKey   string
	engineID string
	client   *http.Client
}

// NewGoogleCSEProvider creates a Google CSE provider. Both the API key and
// the engine id are required.
func NewGoogleCSEProvider(apiKey, engineID, apiURL string, timeout time.Duration) (*GoogleCSEProvider, error) {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(engineID) == "" {
		return nil, fmt.Errorf("google cse api key and engine id are required")
	}
	if strings.TrimSpace(apiURL) == "" {
		apiURL = "https://www.googleapis.com/customsearch/v1"
	}
	if timeout <= 0 {
		timeout = 6 * time.Second
	}
	return &GoogleCSEProvider{
		apiURL:   apiURL,
		apiKey:   apiKey,
		engineID: engineID,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

type cseResponse struct {
	Items []struct {
		Title       string `json:"title"`
		Link        string `json:"link"`
		DisplayLink string `json:"displayLink"`
		Snippet     string `json:"snippet"`
	} `json:"items"`
}

// Search executes a query, using the API's native siteSearch scoping when a
// site restriction is requested.
func (p *GoogleCSEProvider) Search(ctx context.Context, query string, opts SearchOptions) ([]Result, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 3
	}
	if limit > 10 {
		limit = 10
	}

	params := url.Values{}
	params.Set("key", p.apiKey)
	params.Set("cx", p.engineID)
	params.Set("q", strings.TrimSpace(query))
	params.Set("num", strconv.Itoa(limit))
	params.Set("safe", "off")
	if opts.Site != "" {
		params.Set("siteSearch", opts.Site)
		params.Set("siteSearchFilter", "i")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create cse request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cse request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("cse request failed with status %d", resp.StatusCode)
	}

	var decoded cseResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode cse response: %w", err)
	}

	results := make([]Result, 0, len(decoded.Items))
	for _, item := range decoded.Items {
		if strings.TrimSpace(item.Link) == "" {
			continue
		}
		results = append(results, Result{
			Title:   item.Title,
			URL:     item.Link,
			Content: strings.TrimSpace(item.Snippet),
		})
	}

	return results, nil
}
