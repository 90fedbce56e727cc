package resolver

import "testing"

func TestLooksLikeProductPage(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://www.digikey.com/en/products/detail/texas-instruments/LM317T/555", true},
		{"https://www.digikey.com/en/products/result?keywords=LM317T", false},
		{"https://www.mouser.com/ProductDetail/511-LM317T", true},
		{"https://www.mouser.com/c/?q=LM317T", false},
		{"https://uk.rs-online.com/web/p/linear-voltage-regulators/6866721", true},
		{"https://www.farnell.com/dp/1234567", true},
		{"https://www.ti.com/product/LM317", true},
		{"https://www.aliexpress.com/item/1005001234567890.html", true},
		{"https://www.amazon.com/dp/B00B886OZM", true},
		{"https://www.amazon.com/s?k=lm317", false},
		{"https://example.com/products/detail/foo", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := LooksLikeProductPage(tt.url); got != tt.want {
			t.Errorf("LooksLikeProductPage(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}
