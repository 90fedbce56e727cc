package resolver

import (
	"regexp"
	"strings"
)

// productPagePatterns classifies a URL as a genuine product-detail page per
// retail domain, as opposed to a search or listing page. Unknown domains
// are never trusted without live verification.
var productPagePatterns = map[string]*regexp.Regexp{
	"digikey.com":    regexp.MustCompile(`/(?:en/)?products?/detail/|/product-detail/`),
	"mouser.com":     regexp.MustCompile(`/ProductDetail/`),
	"rs-online.com":  regexp.MustCompile(`/web/p/[\w-]+/\d+`),
	"farnell.com":    regexp.MustCompile(`/dp/\w+`),
	"newark.com":     regexp.MustCompile(`/dp/\w+`),
	"ti.com":         regexp.MustCompile(`/product/[\w-]+`),
	"st.com":         regexp.MustCompile(`/en/[\w-]+/[\w-]+\.html`),
	"microchip.com":  regexp.MustCompile(`/en-us/product/[\w-]+`),
	"aliexpress.com": regexp.MustCompile(`/item/\d+\.html`),
	"amazon.com":     regexp.MustCompile(`/dp/[A-Z0-9]{10}`),
}

// LooksLikeProductPage reports whether the URL structurally matches a known
// product-detail page shape for its domain.
func LooksLikeProductPage(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for domain, pattern := range productPagePatterns {
		if !strings.Contains(lower, domain) {
			continue
		}
		return pattern.MatchString(rawURL)
	}
	return false
}
