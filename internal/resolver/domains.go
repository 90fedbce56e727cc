package resolver

import (
	"net/url"
	"strings"
)

// defaultDomains is the fallback ordering of general electronics
// distributors used when the supplier name matches nothing.
var defaultDomains = []string{
	"digikey.com",
	"mouser.com",
	"rs-online.com",
	"farnell.com",
	"newark.com",
}

type supplierRule struct {
	match  string
	domain string
}

// supplierRules maps supplier-name substrings to retailer domains, in
// priority order. Matching is case-insensitive.
var supplierRules = []supplierRule{
	{"digikey", "digikey.com"},
	{"digi-key", "digikey.com"},
	{"mouser", "mouser.com"},
	{"rs", "rs-online.com"},
	{"farnell", "farnell.com"},
	{"newark", "newark.com"},
	{"texas instruments", "ti.com"},
	{"stmicro", "st.com"},
	{"microchip", "microchip.com"},
	{"aliexpress", "aliexpress.com"},
	{"amazon", "amazon.com"},
}

// PreferredDomains maps a supplier name to an ordered list of retailer
// domains to search. Pure function, no network or state.
func PreferredDomains(supplier string) []string {
	s := strings.ToLower(strings.TrimSpace(supplier))
	if s == "" {
		return defaultDomains
	}
	switch s {
	case "ti":
		return []string{"ti.com"}
	case "st":
		return []string{"st.com"}
	}
	for _, rule := range supplierRules {
		if strings.Contains(s, rule.match) {
			return []string{rule.domain}
		}
	}
	return defaultDomains
}

// searchURLTemplates builds a keyword-search URL on each major retailer.
var searchURLTemplates = map[string]string{
	"digikey.com":   "https://www.digikey.com/en/products/result?keywords=",
	"mouser.com":    "https://www.mouser.com/c/?q=",
	"rs-online.com": "https://www.rs-online.com/web/c/?searchTerm=",
	"farnell.com":   "https://www.farnell.com/search?st=",
	"newark.com":    "https://www.newark.com/search?st=",
}

// SearchLinks constructs a manual search link per major retailer for the
// given query. Pure string construction; it cannot fail, so the UI always
// has a search escape hatch even when every resolution tier does.
func SearchLinks(query string) map[string]string {
	q := url.QueryEscape(strings.TrimSpace(query))
	links := make(map[string]string, len(defaultDomains))
	for _, domain := range defaultDomains {
		links[domain] = searchURLTemplates[domain] + q
	}
	return links
}
