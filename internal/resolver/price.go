package resolver

import (
	"context"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// pricePatterns holds ordered extraction attempts per retail domain:
// structured data fields first, a generic currency-amount pattern last.
var pricePatterns = map[string][]*regexp.Regexp{
	"mouser.com": {
		regexp.MustCompile(`itemprop="price"\s+content="([\d.,]+)"`),
		regexp.MustCompile(`"unitPrice"\s*:\s*"([\d.,]+)"`),
	},
	"digikey.com": {
		regexp.MustCompile(`"price"\s*:\s*"([\d.,]+)"`),
		regexp.MustCompile(`data-testid="pricing"[^>]*>\s*([^<]+)`),
	},
	"rs-online.com": {
		regexp.MustCompile(`"unitPrice"\s*:\s*"([\d.,]+)"`),
	},
	"farnell.com": {
		regexp.MustCompile(`"price"\s*:\s*"([\d.,]+)"`),
	},
	"newark.com": {
		regexp.MustCompile(`"price"\s*:\s*"([\d.,]+)"`),
	},
	"arrow.com": {
		regexp.MustCompile(`"price"\s*:\s*"([\d.,]+)"`),
	},
}

var genericAmountPattern = regexp.MustCompile(`(?:£|\$|€)\s*(\d+(?:[.,]\d{3})*[.,]\d{2})`)

var amountPattern = regexp.MustCompile(`(\d{1,3}(?:[.,]\d{3})*[.,]\d{2}|\d+[.,]\d+|\d+)`)

// ExtractPrice attempts to pull a unit price out of raw product page markup
// using the per-domain pattern table, with a generic currency-amount
// fallback. Returns false when nothing parses.
func ExtractPrice(html, rawURL string) (float64, bool) {
	lower := strings.ToLower(rawURL)
	for domain, patterns := range pricePatterns {
		if !strings.Contains(lower, domain) {
			continue
		}
		for _, pattern := range patterns {
			if m := pattern.FindStringSubmatch(html); m != nil {
				if v, ok := ParseAmount(m[1]); ok {
					return v, true
				}
			}
		}
		break
	}
	if m := genericAmountPattern.FindStringSubmatch(html); m != nil {
		return ParseAmount(m[1])
	}
	return 0, false
}

// ParseAmount parses a price string in either decimal locale: both
// "1.234,56" and "1,234.56" yield 1234.56. Thousands separators are
// stripped before parsing.
func ParseAmount(s string) (float64, bool) {
	m := amountPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	raw := m[1]

	lastDot := strings.LastIndex(raw, ".")
	lastComma := strings.LastIndex(raw, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		// Both present: the later one is the decimal separator.
		if lastComma > lastDot {
			raw = strings.ReplaceAll(raw, ".", "")
			raw = strings.Replace(raw, ",", ".", 1)
		} else {
			raw = strings.ReplaceAll(raw, ",", "")
		}
	case lastComma >= 0:
		// Comma only: decimal unless it groups exactly three trailing digits
		// more than once (then it is a thousands separator).
		if strings.Count(raw, ",") > 1 {
			raw = strings.ReplaceAll(raw, ",", "")
		} else {
			raw = strings.Replace(raw, ",", ".", 1)
		}
	case lastDot >= 0:
		if strings.Count(raw, ".") > 1 {
			raw = strings.ReplaceAll(raw, ".", "")
		}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// PriceScraper fetches a known product URL and extracts a unit price.
type PriceScraper struct {
	client  *http.Client
	timeout time.Duration
}

// NewPriceScraper creates a price scraper with the given fetch timeout.
func NewPriceScraper(timeout time.Duration, client *http.Client) *PriceScraper {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if client == nil {
		client = &http.Client{Transport: newSSRFSafeTransport()}
	}
	return &PriceScraper{client: client, timeout: timeout}
}

// FetchUnitPrice downloads the page and runs ExtractPrice on it. Fetch or
// parse failures yield (0, false); they are never errors.
func (s *PriceScraper) FetchUnitPrice(ctx context.Context, rawURL string) (float64, bool) {
	parsed, err := validateProbeURL(normalizeURL(rawURL))
	if err != nil {
		return 0, false
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return 0, false
	}
	req.Header.Set("User-Agent", probeUserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		priceScrapesTotal.WithLabelValues("fetch_error").Inc()
		return 0, false
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		priceScrapesTotal.WithLabelValues("bad_status").Inc()
		return 0, false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		priceScrapesTotal.WithLabelValues("read_error").Inc()
		return 0, false
	}

	price, ok := ExtractPrice(string(body), rawURL)
	if ok {
		priceScrapesTotal.WithLabelValues("ok").Inc()
	} else {
		priceScrapesTotal.WithLabelValues("no_match").Inc()
	}
	return price, ok
}
