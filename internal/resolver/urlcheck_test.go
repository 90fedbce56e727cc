package resolver

import (
	"net"
	"testing"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"www.mouser.com/ProductDetail/x", "https://www.mouser.com/ProductDetail/x"},
		{"http://example.com/p", "http://example.com/p"},
		{"https://example.com/p#reviews", "https://example.com/p"},
		{"  https://example.com  ", "https://example.com"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeURL(tt.in); got != tt.want {
			t.Errorf("normalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateProbeURL(t *testing.T) {
	valid := []string{"https://example.com/p", "http://example.com"}
	for _, raw := range valid {
		if _, err := validateProbeURL(raw); err != nil {
			t.Errorf("validateProbeURL(%q) error: %v", raw, err)
		}
	}

	invalid := []string{"ftp://example.com/f", "file:///etc/passwd", "https://", "not a url at all\x00"}
	for _, raw := range invalid {
		if _, err := validateProbeURL(raw); err == nil {
			t.Errorf("validateProbeURL(%q) error = nil, want non-nil", raw)
		}
	}
}

func TestIsPrivateIP(t *testing.T) {
	private := []string{"127.0.0.1", "10.1.2.3", "172.16.0.1", "192.168.1.1", "169.254.1.1", "100.64.0.1", "::1", "fc00::1"}
	for _, s := range private {
		if !isPrivateIP(net.ParseIP(s)) {
			t.Errorf("isPrivateIP(%s) = false, want true", s)
		}
	}

	public := []string{"8.8.8.8", "1.1.1.1", "2606:4700::1111"}
	for _, s := range public {
		if isPrivateIP(net.ParseIP(s)) {
			t.Errorf("isPrivateIP(%s) = true, want false", s)
		}
	}
}
