package resolver

import (
	"strings"
	"testing"
)

func TestPreferredDomains(t *testing.T) {
	tests := []struct {
		supplier string
		want     []string
	}{
		{"Mouser", []string{"mouser.com"}},
		{"Digi-Key Electronics", []string{"digikey.com"}},
		{"DigiKey", []string{"digikey.com"}},
		{"RS Components", []string{"rs-online.com"}},
		{"ti", []string{"ti.com"}},
		{"st", []string{"st.com"}},
		{"Texas Instruments", []string{"ti.com"}},
		{"AliExpress", []string{"aliexpress.com"}},
	}

	for _, tt := range tests {
		got := PreferredDomains(tt.supplier)
		if len(got) != len(tt.want) {
			t.Errorf("PreferredDomains(%q) = %v, want %v", tt.supplier, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("PreferredDomains(%q) = %v, want %v", tt.supplier, got, tt.want)
				break
			}
		}
	}
}

func TestPreferredDomainsFallback(t *testing.T) {
	for _, supplier := range []string{"", "Unknown Vendor GmbH"} {
		got := PreferredDomains(supplier)
		if len(got) != len(defaultDomains) {
			t.Fatalf("PreferredDomains(%q) returned %d domains, want the %d defaults", supplier, len(got), len(defaultDomains))
		}
		if got[0] != "digikey.com" {
			t.Errorf("PreferredDomains(%q)[0] = %q, want digikey.com first", supplier, got[0])
		}
	}
}

func TestSearchLinks(t *testing.T) {
	links := SearchLinks("LM317T voltage regulator")
	if len(links) != len(defaultDomains) {
		t.Fatalf("SearchLinks returned %d links, want %d", len(links), len(defaultDomains))
	}
	for domain, link := range links {
		if !strings.Contains(link, "LM317T") {
			t.Errorf("link for %s missing query: %s", domain, link)
		}
		if strings.Contains(link, " ") {
			t.Errorf("link for %s not escaped: %s", domain, link)
		}
		if !strings.HasPrefix(link, "https://") {
			t.Errorf("link for %s not https: %s", domain, link)
		}
	}
}
