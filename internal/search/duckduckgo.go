package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const ddgUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// DuckDuckGoProvider scrapes the JS-free HTML result page of DuckDuckGo.
// It needs no API key; brittleness against markup changes is the price.
type DuckDuckGoProvider struct {
	baseURL string
	client  *http.Client
}

// NewDuckDuckGoProvider creates a DuckDuckGo HTML provider. An empty
// baseURL selects the public endpoint.
func NewDuckDuckGoProvider(baseURL string, timeout time.Duration) *DuckDuckGoProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://duckduckgo.com/html/"
	}
	if timeout <= 0 {
		timeout = 6 * time.Second
	}
	return &DuckDuckGoProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Search fetches the HTML results page and extracts organic result links.
// The primary selector targets the result anchor class; a looser any-https
// anchor fallback trades precision for availability when the markup shifts.
func (p *DuckDuckGoProvider) Search(ctx context.Context, query string, opts SearchOptions) ([]Result, error) {
	q := strings.TrimSpace(query)
	if opts.Site != "" {
		q = fmt.Sprintf("site:%s %s", opts.Site, q)
	}

	endpoint, err := url.Parse(p.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse duckduckgo url: %w", err)
	}
	values := endpoint.Query()
	values.Set("q", q)
	endpoint.RawQuery = values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create duckduckgo request: %w", err)
	}
	req.Header.Set("User-Agent", ddgUserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("duckduckgo request failed with status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse duckduckgo response: %w", err)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 5
	}

	results := make([]Result, 0, limit)
	doc.Find("a.result__a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		if !ok {
			return true
		}
		link := unwrapRedirect(href)
		if link == "" {
			return true
		}
		results = append(results, Result{
			Title: strings.TrimSpace(sel.Text()),
			URL:   link,
		})
		return len(results) < limit
	})

	if len(results) == 0 {
		doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			href, _ := sel.Attr("href")
			link := unwrapRedirect(href)
			if !strings.HasPrefix(link, "https://") || strings.Contains(link, "duckduckgo.com") {
				return true
			}
			results = append(results, Result{
				Title: strings.TrimSpace(sel.Text()),
				URL:   link,
			})
			return len(results) < limit
		})
	}

	return results, nil
}

// unwrapRedirect resolves DuckDuckGo's /l/?uddg= redirect wrapper to the
// destination URL.
func unwrapRedirect(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}
	if strings.HasSuffix(parsed.Hostname(), "duckduckgo.com") && parsed.Path == "/l/" {
		if target := parsed.Query().Get("uddg"); target != "" {
			return target
		}
	}
	return href
}
