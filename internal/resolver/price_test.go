package resolver

import "testing"

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"1.234,56", 1234.56, true},
		{"1,234.56", 1234.56, true},
		{"0.59", 0.59, true},
		{"0,59", 0.59, true},
		{"12", 12, true},
		{"1,234,567.89", 1234567.89, true},
		{"1.234.567,89", 1234567.89, true},
		{"  4,20 ", 4.20, true},
		{"no digits", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseAmount(tt.in)
		if ok != tt.wantOK {
			t.Errorf("ParseAmount(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestExtractPrice(t *testing.T) {
	tests := []struct {
		name   string
		html   string
		url    string
		want   float64
		wantOK bool
	}{
		{
			name:   "mouser itemprop",
			html:   `<span itemprop="price" content="4.56"></span>`,
			url:    "https://www.mouser.com/ProductDetail/511-LM317T",
			want:   4.56,
			wantOK: true,
		},
		{
			name:   "digikey json blob",
			html:   `{"price":"1.234,56"}`,
			url:    "https://www.digikey.com/en/products/detail/x/y/1",
			want:   1234.56,
			wantOK: true,
		},
		{
			name:   "generic currency fallback on unknown domain",
			html:   `<div class="price">€ 12,30</div>`,
			url:    "https://shop.example.com/p/123",
			want:   12.30,
			wantOK: true,
		},
		{
			name:   "known domain falls through to generic",
			html:   `<b>$3.99</b>`,
			url:    "https://www.mouser.com/ProductDetail/something",
			want:   3.99,
			wantOK: true,
		},
		{
			name:   "nothing parseable",
			html:   `<html><body>out of stock</body></html>`,
			url:    "https://www.mouser.com/ProductDetail/something",
			want:   0,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractPrice(tt.html, tt.url)
			if ok != tt.wantOK {
				t.Fatalf("ExtractPrice() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ExtractPrice() = %v, want %v", got, tt.want)
			}
		})
	}
}
